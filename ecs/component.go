package ecs

import (
	"iter"
	"reflect"

	"github.com/rotisserie/eris"
)

// Add attaches a component to an entity. T must be registered.
// Returns ErrNotFound for dead entities and ErrAlreadyPresent if the entity
// already owns a T, taking buffered changes into account.
func Add[T any](w *World, e Entity, value T) error {
	st := mustStorageFor[T](w)

	if !w.commands.alive(w, e) {
		return eris.Wrapf(ErrNotFound, "add %s to %s", st.typ, e)
	}
	if w.commands.has(w, e, st.id) {
		return eris.Wrapf(ErrAlreadyPresent, "add %s to %s", st.typ, e)
	}

	if w.shouldDefer(st) {
		w.commands.add(e, st.id, value)
		return nil
	}
	return st.Add(e, value)
}

// Remove detaches a component from an entity and returns its value.
// While the storage is being iterated the removal is buffered and the returned
// value is the one the entity holds at request time.
func Remove[T any](w *World, e Entity) (T, error) {
	var zero T

	st := storageFor[T](w)
	if st == nil || !w.commands.alive(w, e) || !w.commands.has(w, e, st.id) {
		return zero, eris.Wrapf(ErrNotFound, "remove %s from %s", reflect.TypeFor[T](), e)
	}

	if w.shouldDefer(st) {
		value := zero
		if p := st.Get(e); p != nil {
			value = *p
		} else if pending, ok := w.commands.pendingValue(e, st.id).(T); ok {
			value = pending
		}
		w.commands.remove(e, st.id)
		return value, nil
	}
	return st.Remove(e)
}

// Get returns a pointer to the entity's component, or nil if it does not own one.
// The pointer is invalidated by the next structural change of the same storage.
func Get[T any](w *World, e Entity) *T {
	st := storageFor[T](w)
	if st == nil || !w.entities.isAlive(e) {
		return nil
	}
	return st.Get(e)
}

// Has reports whether the entity owns a T.
func Has[T any](w *World, e Entity) bool {
	st := storageFor[T](w)
	if st == nil || !w.entities.isAlive(e) {
		return false
	}
	return st.Has(e)
}

// Replace overwrites the entity's T in place, or adds it if the entity has none.
func Replace[T any](w *World, e Entity, value T) error {
	st := mustStorageFor[T](w)
	if p := st.Get(e); p != nil && w.commands.has(w, e, st.id) {
		*p = value
		return nil
	}
	return Add(w, e, value)
}

// Each yields every entity owning a T together with a pointer to it.
// Structural changes to T issued while iterating are buffered.
func Each[T any](w *World) iter.Seq2[Entity, *T] {
	return func(yield func(Entity, *T) bool) {
		st := storageFor[T](w)
		if st == nil {
			return
		}

		w.iterating++
		defer func() {
			w.iterating--
			if w.iterating == 0 && !w.inTurn && !w.flushing {
				w.Flush()
			}
		}()

		for e, value := range st.Each() {
			if !yield(e, value) {
				return
			}
		}
	}
}

// Count returns the number of entities owning a T.
func Count[T any](w *World) int {
	st := storageFor[T](w)
	if st == nil {
		return 0
	}
	return st.Len()
}
