package debugui

import (
	"reflect"

	"github.com/plus3/kite/ecs"
)

// EntityBrowserComponent lists live entities with paging, a text filter and
// an optional component type filter.
type EntityBrowserComponent struct {
	cache              *EntityBrowserCache
	selectedEntity     ecs.Entity
	filterText         string
	filterType         reflect.Type
	maxEntitiesPerPage int
	currentPage        int
}

type ComponentInspectorComponent struct {
	selectedEntity ecs.Entity
}

// StorageViewerComponent lists one row per component storage.
type StorageViewerComponent struct {
	cache        *StorageViewerCache
	selectedType reflect.Type
}

// PerformanceStatsComponent keeps a ring of recent frame times in milliseconds.
type PerformanceStatsComponent struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
	samples       int
}

type QueryDebuggerComponent struct {
	selectedComponentTypes map[string]bool
	cache                  *QueryDebuggerCache
}
