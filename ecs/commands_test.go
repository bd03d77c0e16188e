package ecs_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/kite/ecs"
)

func TestRemoveDuringIterationIsDeferred(t *testing.T) {
	w := newTestWorld(t)

	var all []ecs.Entity
	for i := range 10 {
		all = append(all, w.Spawn(Score(i)))
	}

	var visited []ecs.Entity
	for e, score := range ecs.Each[Score](w) {
		visited = append(visited, e)
		if *score%2 == 0 {
			_, err := ecs.Remove[Score](w, e)
			require.NoError(t, err)
			assert.True(t, ecs.Has[Score](w, e), "removal is invisible while iterating")
		}
	}

	assert.Equal(t, all, visited, "no entity is skipped or visited twice")
	assert.Equal(t, 5, ecs.Count[Score](w), "applied when the iteration ends")
	for _, e := range all {
		assert.Equal(t, ecs.Get[Score](w, e) != nil, e.Index()%2 == 1)
	}
}

func TestDoubleRemoveInSameFlushWindow(t *testing.T) {
	w := newTestWorld(t)
	e := w.Spawn(Name{Value: "sprite"})

	for range ecs.Each[Name](w) {
		removed, err := ecs.Remove[Name](w, e)
		require.NoError(t, err)
		assert.Equal(t, "sprite", removed.Value)

		_, err = ecs.Remove[Name](w, e)
		assert.ErrorIs(t, err, ecs.ErrNotFound, "second removal sees the pending one")
	}

	assert.False(t, ecs.Has[Name](w, e))
}

func TestDestroyDuringIterationIsDeferred(t *testing.T) {
	w := newTestWorld(t)
	a := w.Spawn(Position{}, Health{Current: 0})
	b := w.Spawn(Position{}, Health{Current: 10})

	view := ecs.NewView[struct {
		ecs.Entity
		*Health
	}](w)

	count := 0
	for row := range view.Values() {
		count++
		if row.Current <= 0 {
			require.NoError(t, w.Destroy(row.Entity))
			assert.True(t, w.IsAlive(row.Entity))
			assert.ErrorIs(t, w.Destroy(row.Entity), ecs.ErrNotFound, "already scheduled")
			assert.ErrorIs(t, ecs.Add(w, row.Entity, Score(1)), ecs.ErrNotFound)
		}
	}

	assert.Equal(t, 2, count)
	assert.False(t, w.IsAlive(a))
	assert.True(t, w.IsAlive(b))
	assert.Equal(t, 1, ecs.Count[Position](w))
}

func TestAddToUnlockedStorageDuringIteration(t *testing.T) {
	w := newTestWorld(t)
	a := w.Spawn(Position{})
	b := w.Spawn(Position{})

	for e := range ecs.Each[Position](w) {
		require.NoError(t, ecs.Add(w, e, Velocity{DX: 1}))
		assert.True(t, ecs.Has[Velocity](w, e), "only iterated storages defer")
		assert.ErrorIs(t, ecs.Add(w, e, Velocity{DX: 2}), ecs.ErrAlreadyPresent)
		assert.ErrorIs(t, ecs.Add(w, e, Position{X: 1}), ecs.ErrAlreadyPresent)
	}

	assert.Equal(t, float32(1), ecs.Get[Velocity](w, a).DX)
	assert.Equal(t, float32(1), ecs.Get[Velocity](w, b).DX)
}

func TestOperationsQueueBehindPendingCommands(t *testing.T) {
	w := newTestWorld(t)
	e := w.Spawn(Position{})

	for range ecs.Each[Position](w) {
		_, err := ecs.Remove[Position](w, e)
		require.NoError(t, err)

		// Velocity is not iterated but must not overtake the pending removal
		require.NoError(t, ecs.Add(w, e, Velocity{DX: 1}))
		assert.False(t, ecs.Has[Velocity](w, e))
		assert.Equal(t, 2, w.Commands().Len())
	}

	assert.False(t, ecs.Has[Position](w, e))
	assert.True(t, ecs.Has[Velocity](w, e))
}

func TestRemovePendingAddReturnsPendingValue(t *testing.T) {
	w := newTestWorld(t)
	e := w.Spawn(Position{})

	for range ecs.Each[Position](w) {
		_, err := ecs.Remove[Position](w, e)
		require.NoError(t, err)
		require.NoError(t, ecs.Add(w, e, Name{Value: "pending"}))

		value, err := ecs.Remove[Name](w, e)
		require.NoError(t, err)
		assert.Equal(t, "pending", value.Value)
	}

	assert.False(t, ecs.Has[Position](w, e))
	assert.False(t, ecs.Has[Name](w, e))
	assert.True(t, w.IsAlive(e))
}

func TestCommandsDeferAndSpawn(t *testing.T) {
	w := newTestWorld(t)
	w.Spawn(Position{})

	var ran []string
	w.Commands().Defer(func() { ran = append(ran, "first") })
	w.Commands().Spawn(Name{Value: "queued"})
	w.Commands().Defer(func() {
		ran = append(ran, "second")
		w.Commands().Defer(func() { ran = append(ran, "nested") })
	})

	assert.Equal(t, 3, w.Commands().Len())
	assert.Zero(t, ecs.Count[Name](w))

	w.Flush()

	assert.Equal(t, []string{"first", "second", "nested"}, ran)
	assert.Equal(t, 1, ecs.Count[Name](w))
	assert.Zero(t, w.Commands().Len())
}

func TestFlushIsNoOpWhileIterating(t *testing.T) {
	w := newTestWorld(t)
	e := w.Spawn(Position{})

	for range ecs.Each[Position](w) {
		_, err := ecs.Remove[Position](w, e)
		require.NoError(t, err)
		w.Flush()
		assert.True(t, ecs.Has[Position](w, e))
	}
	assert.False(t, ecs.Has[Position](w, e))
}

func TestNestedIterationFlushesOnce(t *testing.T) {
	w := newTestWorld(t)
	a := w.Spawn(Position{}, Velocity{})
	w.Spawn(Position{}, Velocity{})

	inner := 0
	for range ecs.Each[Position](w) {
		for e := range ecs.Each[Velocity](w) {
			inner++
			if e == a {
				_, _ = ecs.Remove[Velocity](w, a)
			}
		}
		assert.True(t, ecs.Has[Velocity](w, a), "outer iteration still holds the flush")
	}

	assert.Equal(t, 4, inner)
	assert.False(t, ecs.Has[Velocity](w, a))
}

type expireSystem struct {
	Scores ecs.Query[struct {
		ecs.Entity
		*Score
	}]
}

func (s *expireSystem) Priority() int { return 0 }

func (s *expireSystem) Update(w *ecs.World, _ time.Duration) {
	for row := range s.Scores.Values() {
		if *row.Score == 0 {
			_, _ = ecs.Remove[Score](w, row.Entity)
		}
	}
}

type countScoresSystem struct {
	counts []int
}

func (s *countScoresSystem) Priority() int { return 1 }

func (s *countScoresSystem) Update(w *ecs.World, _ time.Duration) {
	s.counts = append(s.counts, ecs.Count[Score](w))
}

func TestDeferredChangesVisibleToNextSystem(t *testing.T) {
	w := newTestWorld(t)
	w.Spawn(Score(0))
	w.Spawn(Score(1))

	scheduler := ecs.NewScheduler(w)
	counter := &countScoresSystem{}
	require.NoError(t, scheduler.Register(counter))
	require.NoError(t, scheduler.Register(&expireSystem{}))

	require.NoError(t, scheduler.Once(time.Millisecond))
	assert.Equal(t, []int{1}, counter.counts, "flushed at the end of the expiring system's turn")
}
