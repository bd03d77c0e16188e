package ecs

import (
	"reflect"
	"slices"
)

// WorldStats is a snapshot of the world's bookkeeping, used by diagnostics.
type WorldStats struct {
	EntityCount     int
	ComponentTypes  int
	TotalComponents int
	Storages        []StorageStats
	SingletonCount  int
	SingletonTypes  []reflect.Type
	QueuedEvents    int
	PendingCommands int
}

// StorageStats describes one component storage.
type StorageStats struct {
	ID    ComponentID
	Type  reflect.Type
	Count int
}

// CollectStats gathers statistics about the world's current state.
// Storages are ordered by ComponentID and singleton types by name.
func (w *World) CollectStats() *WorldStats {
	w.syncStorages()

	stats := &WorldStats{
		EntityCount:     w.entities.count(),
		ComponentTypes:  len(w.storages),
		Storages:        make([]StorageStats, 0, len(w.storages)),
		SingletonCount:  len(w.singletons),
		SingletonTypes:  make([]reflect.Type, 0, len(w.singletons)),
		QueuedEvents:    w.events.Len(),
		PendingCommands: w.commands.Len(),
	}

	for _, st := range w.storages {
		stats.Storages = append(stats.Storages, StorageStats{
			ID:    st.ID(),
			Type:  st.Type(),
			Count: st.Len(),
		})
		stats.TotalComponents += st.Len()
	}

	for t := range w.singletons {
		stats.SingletonTypes = append(stats.SingletonTypes, t)
	}
	slices.SortFunc(stats.SingletonTypes, func(a, b reflect.Type) int {
		if a.String() < b.String() {
			return -1
		}
		if a.String() > b.String() {
			return 1
		}
		return 0
	})

	return stats
}
