package ecs

import "iter"

// Query is a View meant to live as a system field. The scheduler initializes
// Query fields when the system is registered, so a system only declares the
// shape of the rows it wants.
type Query[T any] struct {
	view  *View[T]
	world *World
}

// NewQuery creates a new Query over the world.
func NewQuery[T any](world *World) *Query[T] {
	q := &Query[T]{}
	q.Init(world)
	return q
}

// Init initializes or re-initializes the Query with a world.
// Called by the Scheduler during system registration.
func (q *Query[T]) Init(world *World) {
	q.view = NewView[T](world)
	q.world = world
}

// Iter returns an iterator over entities and their rows.
// Panics if the Query was never initialized.
func (q *Query[T]) Iter() iter.Seq2[Entity, T] {
	if q.view == nil {
		panic("Query.Iter() called before Query.Init()")
	}
	return q.view.Iter()
}

// Values returns an iterator over rows only.
func (q *Query[T]) Values() iter.Seq[T] {
	if q.view == nil {
		panic("Query.Values() called before Query.Init()")
	}
	return q.view.Values()
}

// Get returns the row of a single entity, or nil if it does not match.
func (q *Query[T]) Get(e Entity) *T {
	if q.view == nil {
		return nil
	}
	return q.view.Get(e)
}

// Count returns the number of matching entities.
func (q *Query[T]) Count() int {
	count := 0
	for range q.Iter() {
		count++
	}
	return count
}

// First returns the first matching row.
func (q *Query[T]) First() (Entity, T, bool) {
	for e, row := range q.Iter() {
		return e, row, true
	}
	var zero T
	return 0, zero, false
}
