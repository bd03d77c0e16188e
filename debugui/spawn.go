package debugui

import (
	"time"

	"github.com/plus3/kite/ecs"
	"github.com/plus3/kite/input"
)

// SpawnDebugUI creates one entity per panel.
func SpawnDebugUI(w *ecs.World) {
	w.Spawn(NewEntityBrowserComponent(100))
	w.Spawn(NewComponentInspectorComponent())
	w.Spawn(NewStorageViewerComponent())
	w.Spawn(NewPerformanceStatsComponent(120))
	w.Spawn(NewQueryDebuggerComponent())
}

func RegisterDebugUIComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
	ecs.RegisterComponent[EntityBrowserComponent](registry)
	ecs.RegisterComponent[ComponentInspectorComponent](registry)
	ecs.RegisterComponent[StorageViewerComponent](registry)
	ecs.RegisterComponent[PerformanceStatsComponent](registry)
	ecs.RegisterComponent[QueryDebuggerComponent](registry)
}

// PanelSystem draws the panels spawned by SpawnDebugUI. The toggle key hides
// and shows them; frame timings are recorded either way.
type PanelSystem struct {
	Scheduler *ecs.Scheduler
	ToggleKey input.KeyModifier
	Hidden    bool

	Browsers    ecs.Query[struct{ *EntityBrowserComponent }]
	Inspectors  ecs.Query[struct{ *ComponentInspectorComponent }]
	Storages    ecs.Query[struct{ *StorageViewerComponent }]
	Performance ecs.Query[struct{ *PerformanceStatsComponent }]
	Queries     ecs.Query[struct{ *QueryDebuggerComponent }]
}

func (s *PanelSystem) Priority() int { return PriorityOverlay }

func (s *PanelSystem) Update(w *ecs.World, dt time.Duration) {
	if s.ToggleKey.Code != input.KeyUnknown {
		for key := range ecs.Drain[ecs.KeyUp](w.Events()) {
			if key.Matches(s.ToggleKey) {
				s.Hidden = !s.Hidden
			}
		}
	}

	for row := range s.Performance.Values() {
		row.Record(dt)
	}

	if s.Hidden {
		return
	}

	var browser *EntityBrowserComponent
	if _, row, ok := s.Browsers.First(); ok {
		browser = row.EntityBrowserComponent
	}

	for row := range s.Storages.Values() {
		if clicked := row.Render(w); clicked != nil && browser != nil {
			browser.FilterByType(row.SelectedType())
		}
	}

	var selected ecs.Entity
	if browser != nil {
		browser.Render(w)
		selected = browser.SelectedEntity()
	}

	for row := range s.Inspectors.Values() {
		row.Render(w, selected)
	}
	for row := range s.Performance.Values() {
		row.Render(w, s.Scheduler)
	}
	for row := range s.Queries.Values() {
		row.Render(w)
	}
}
