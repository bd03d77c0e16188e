package ecs

import "reflect"

// Singleton provides access to a single value that is not associated with any
// entity. Use this for global state such as input snapshots or configuration.
type Singleton[T any] struct {
	world *World
	value *T
}

// NewSingleton creates a new Singleton accessor for the given world.
// If the singleton does not exist yet it is created from the initializer,
// or the zero value. This guarantees the singleton exists after the call.
func NewSingleton[T any](world *World, initializer ...T) *Singleton[T] {
	if GetSingleton[T](world) == nil {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		SetSingleton(world, value)
	}

	s := &Singleton[T]{}
	s.Init(world)
	return s
}

// Init initializes the Singleton with a world reference.
// This is called automatically by the Scheduler during system registration.
func (s *Singleton[T]) Init(world *World) {
	s.world = world
	s.value = GetSingleton[T](world)
}

// Get returns a pointer to the singleton value.
// Returns nil if the singleton has not been set.
func (s *Singleton[T]) Get() *T {
	if s.value == nil && s.world != nil {
		s.value = GetSingleton[T](s.world)
	}
	return s.value
}

// Exists returns true if the singleton has been set
func (s *Singleton[T]) Exists() bool {
	return s.Get() != nil
}

// SetSingleton stores value as the world's T singleton, overwriting any previous value
// in place so that existing accessors observe the update.
func SetSingleton[T any](w *World, value T) *T {
	t := reflect.TypeFor[T]()
	if existing, ok := w.singletons[t].(*T); ok {
		*existing = value
		return existing
	}

	ptr := new(T)
	*ptr = value
	w.singletons[t] = ptr
	return ptr
}

// GetSingleton returns the world's T singleton, or nil.
func GetSingleton[T any](w *World) *T {
	ptr, _ := w.singletons[reflect.TypeFor[T]()].(*T)
	return ptr
}

// RemoveSingleton deletes the world's T singleton.
func RemoveSingleton[T any](w *World) bool {
	t := reflect.TypeFor[T]()
	if _, ok := w.singletons[t]; !ok {
		return false
	}
	delete(w.singletons, t)
	return true
}
