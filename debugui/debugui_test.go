package debugui

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/kite/components"
	"github.com/plus3/kite/ecs"
	"github.com/plus3/kite/input"
)

func newTestWorld(t *testing.T) *ecs.World {
	t.Helper()
	registry := ecs.NewComponentRegistry()
	components.Register(registry)
	RegisterDebugUIComponents(registry)
	return ecs.NewWorld(registry)
}

func TestReflectionCache(t *testing.T) {
	cache := NewReflectionCache()

	fields := cache.GetFields(reflect.TypeFor[components.Label]())
	require.Len(t, fields, 4)
	assert.Equal(t, "Text", fields[0].Name)
	assert.True(t, fields[3].IsStruct, "Alignment is a nested struct")

	layout := cache.GetFields(reflect.TypeFor[components.Layout]())
	require.Len(t, layout, 1)
	assert.True(t, layout[0].Embedded)

	assert.Empty(t, cache.GetFields(reflect.TypeFor[components.Hidden]()))
	assert.Empty(t, cache.GetFields(reflect.TypeFor[int]()))

	again := cache.GetFields(reflect.TypeFor[components.Label]())
	assert.Same(t, &fields[0], &again[0], "fields are memoized")

	effect := cache.GetFields(reflect.TypeFor[components.AlternateColor]())
	require.Len(t, effect, 7)
	assert.False(t, effect[0].ReadOnly, "colors are edited field by field")
	assert.True(t, effect[2].ReadOnly, "durations are shown as text")
	assert.False(t, effect[6].ReadOnly)
}

func TestSetField(t *testing.T) {
	effect := components.AlternateColor{}
	val := reflect.ValueOf(&effect).Elem()

	assert.True(t, SetField(val.FieldByName("Cycles"), int64(3)))
	assert.True(t, SetField(val.FieldByName("Pause"), true))
	assert.False(t, SetField(val.FieldByName("Pause"), "yes"), "kinds must agree")
	assert.Equal(t, 3, effect.Cycles)
	assert.True(t, effect.Pause)

	color := components.Color{}
	cval := reflect.ValueOf(&color).Elem()
	assert.True(t, SetField(cval.FieldByName("R"), uint64(200)))
	assert.False(t, SetField(cval.FieldByName("G"), uint64(300)), "overflow is rejected")
	assert.Equal(t, uint8(200), color.R)
	assert.Equal(t, uint8(0), color.G)

	label := components.Label{}
	lval := reflect.ValueOf(&label).Elem()
	assert.True(t, SetField(lval.FieldByName("Text"), "hello"))
	assert.True(t, SetField(lval.FieldByName("Size"), float64(12)))
	assert.Equal(t, "hello", label.Text)
	assert.Equal(t, float32(12), label.Size)

	assert.False(t, SetField(reflect.ValueOf(label).FieldByName("Text"), "copy"), "unaddressable values are read-only")
}

func TestEntityBrowserCache(t *testing.T) {
	w := newTestWorld(t)
	a := w.Spawn(components.Position{}, components.Size{})
	b := w.Spawn(components.Position{})
	c := w.Spawn(components.Label{Text: "hi"})

	browser := NewEntityBrowserComponent(10)
	browser.rebuildCacheIfNeeded(w)
	require.Len(t, browser.cache.entities, 3)
	assert.Equal(t, a, browser.cache.entities[0].ID)
	assert.Equal(t, []string{"components.Position", "components.Size"}, browser.cache.entities[0].ComponentTypes)

	t.Run("filter by type", func(t *testing.T) {
		browser.FilterByType(reflect.TypeFor[components.Position]())
		defer browser.FilterByType(nil)

		var ids []ecs.Entity
		for _, info := range browser.filteredEntities() {
			ids = append(ids, info.ID)
		}
		assert.Equal(t, []ecs.Entity{a, b}, ids)
	})

	t.Run("filter by text", func(t *testing.T) {
		browser.filterText = "label"
		defer func() { browser.filterText = "" }()

		filtered := browser.filteredEntities()
		require.Len(t, filtered, 1)
		assert.Equal(t, c, filtered[0].ID)
	})

	t.Run("sort by component count", func(t *testing.T) {
		browser.cache.sortColumn = 3
		browser.cache.sortAscending = false
		browser.sortEntities()
		assert.Equal(t, a, browser.cache.entities[0].ID)
	})

	t.Run("rebuild after changes", func(t *testing.T) {
		browser.Select(b)
		require.NoError(t, w.Destroy(b))
		browser.rebuildCacheIfNeeded(w)

		assert.Len(t, browser.cache.entities, 2)
		assert.True(t, browser.SelectedEntity().IsZero(), "destroyed selection is dropped")
	})
}

func TestStorageViewerRefresh(t *testing.T) {
	w := newTestWorld(t)
	w.Spawn(components.Position{}, components.Size{})
	w.Spawn(components.Position{})

	viewer := NewStorageViewerComponent()
	viewer.refresh(w)

	require.NotEmpty(t, viewer.cache.storages)
	top := viewer.cache.storages[0]
	assert.Equal(t, reflect.TypeFor[components.Position](), top.Type, "sorted by count, descending")
	assert.Equal(t, 2, top.Count)

	viewer.cache.sortColumn = 0
	viewer.cache.sortAscending = true
	viewer.sortStorages()
	for i := 1; i < len(viewer.cache.storages); i++ {
		assert.Less(t, viewer.cache.storages[i-1].ID, viewer.cache.storages[i].ID)
	}
}

func TestQueryDebugger(t *testing.T) {
	w := newTestWorld(t)
	a := w.Spawn(components.Position{}, components.Size{})
	w.Spawn(components.Position{})
	w.Spawn(components.Size{})

	qd := NewQueryDebuggerComponent()
	qd.rebuildCacheIfNeeded(w)
	assert.Len(t, qd.cache.componentTypes, w.Registry().Len())

	position := reflect.TypeFor[components.Position]()
	size := reflect.TypeFor[components.Size]()
	qd.Toggle(size, true)
	qd.Toggle(position, true)

	assert.Equal(t, []reflect.Type{position, size}, qd.SelectedTypes(), "registration order")
	assert.Equal(t, []ecs.Entity{a}, MatchQuery(w, qd.SelectedTypes()...))

	qd.Toggle(size, false)
	assert.Len(t, MatchQuery(w, qd.SelectedTypes()...), 2)
}

func TestPerformanceStatsHistory(t *testing.T) {
	ps := NewPerformanceStatsComponent(4)
	assert.Zero(t, ps.AverageFrameTime())

	ps.Record(10 * time.Millisecond)
	ps.Record(20 * time.Millisecond)
	assert.InDelta(t, 15, ps.AverageFrameTime(), 0.001)

	for range 4 {
		ps.Record(5 * time.Millisecond)
	}
	assert.InDelta(t, 5, ps.AverageFrameTime(), 0.001, "old samples fall out of the ring")
}

func TestHiddenPanelsStillRecordFrames(t *testing.T) {
	w := newTestWorld(t)
	SpawnDebugUI(w)

	scheduler := ecs.NewScheduler(w)
	panels := &PanelSystem{
		Scheduler: scheduler,
		ToggleKey: input.Key(input.KeyF1, input.ModNone),
		Hidden:    true,
	}
	require.NoError(t, scheduler.Register(panels))

	require.NoError(t, scheduler.Once(10*time.Millisecond))
	require.NoError(t, scheduler.Once(10*time.Millisecond))

	_, row, ok := panels.Performance.First()
	require.True(t, ok)
	assert.InDelta(t, 10, row.AverageFrameTime(), 0.001)
	assert.True(t, panels.Hidden)
}
