package debugui

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/kite/ecs"
)

const maxListedMatches = 50

type QueryDebuggerCache struct {
	componentTypes []reflect.Type
	registered     int
}

func NewQueryDebuggerComponent() QueryDebuggerComponent {
	return QueryDebuggerComponent{
		selectedComponentTypes: make(map[string]bool),
		cache: &QueryDebuggerCache{
			registered: -1,
		},
	}
}

// Render lets the user pick component types and shows the entities owning all of them.
func (qd *QueryDebuggerComponent) Render(w *ecs.World) {
	if !imgui.BeginV("Query Debugger", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	qd.rebuildCacheIfNeeded(w)

	imgui.Text("Select Component Types:")
	imgui.Separator()

	if imgui.Button("Clear All") {
		clear(qd.selectedComponentTypes)
	}

	for _, compType := range qd.cache.componentTypes {
		name := compType.String()
		selected := qd.selectedComponentTypes[name]
		if imgui.Checkbox(name, &selected) {
			qd.Toggle(compType, selected)
		}
	}

	imgui.Separator()

	selectedTypes := qd.SelectedTypes()
	if len(selectedTypes) == 0 {
		imgui.Text("No component types selected")
		imgui.End()
		return
	}

	matches := MatchQuery(w, selectedTypes...)
	imgui.Text(fmt.Sprintf("Matching Entities: %d", len(matches)))

	if imgui.TreeNodeStr("Entities") {
		for _, e := range matches[:min(len(matches), maxListedMatches)] {
			imgui.BulletText(e.String())
		}
		if len(matches) > maxListedMatches {
			imgui.Text(fmt.Sprintf("... and %d more", len(matches)-maxListedMatches))
		}
		imgui.TreePop()
	}

	imgui.End()
}

// Toggle adds or removes a component type from the query.
func (qd *QueryDebuggerComponent) Toggle(t reflect.Type, selected bool) {
	if selected {
		qd.selectedComponentTypes[t.String()] = true
	} else {
		delete(qd.selectedComponentTypes, t.String())
	}
}

// SelectedTypes returns the registered types currently part of the query, in registration order.
func (qd *QueryDebuggerComponent) SelectedTypes() []reflect.Type {
	selected := make([]reflect.Type, 0, len(qd.selectedComponentTypes))
	for _, t := range qd.cache.componentTypes {
		if qd.selectedComponentTypes[t.String()] {
			selected = append(selected, t)
		}
	}
	return selected
}

func (qd *QueryDebuggerComponent) rebuildCacheIfNeeded(w *ecs.World) {
	registry := w.Registry()
	if qd.cache.registered == registry.Len() {
		return
	}

	qd.cache.registered = registry.Len()
	qd.cache.componentTypes = registry.Types()
}

// MatchQuery collects the entities owning every listed component type.
func MatchQuery(w *ecs.World, types ...reflect.Type) []ecs.Entity {
	return slices.Collect(w.Query(types...))
}
