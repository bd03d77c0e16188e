package ecs

import (
	"iter"
	"reflect"
	"unsafe"

	"github.com/kamstrup/intmap"
)

// ComponentID is the dense index a component type receives when it is registered.
type ComponentID uint16

// ComponentRegistry maps component types to the factories of their storages.
// Each World is created from a registry; registering the same registry with
// several worlds gives each its own independent storages.
type ComponentRegistry struct {
	ids       map[reflect.Type]ComponentID
	types     []reflect.Type
	factories []func(id ComponentID) iComponentStorage
}

// NewComponentRegistry creates a new component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		ids: make(map[reflect.Type]ComponentID),
	}
}

// RegisterComponent registers a new component type with the given registry.
// This must be called for each component type before it can be added to an entity.
// Registering a type twice returns the existing ID.
func RegisterComponent[T any](r *ComponentRegistry) ComponentID {
	t := reflect.TypeFor[T]()
	if id, ok := r.ids[t]; ok {
		return id
	}

	switch t.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
		panic("components cannot be pointers, maps, channels, functions or interfaces: " + t.String())
	}

	id := ComponentID(len(r.types))
	r.ids[t] = id
	r.types = append(r.types, t)
	r.factories = append(r.factories, func(id ComponentID) iComponentStorage {
		return newComponentStorage[T](id)
	})
	return id
}

// Lookup returns the ID of a registered component type.
func (r *ComponentRegistry) Lookup(t reflect.Type) (ComponentID, bool) {
	id, ok := r.ids[t]
	return id, ok
}

// Len returns the number of registered component types.
func (r *ComponentRegistry) Len() int {
	return len(r.types)
}

// Types returns the registered component types ordered by ComponentID.
func (r *ComponentRegistry) Types() []reflect.Type {
	return r.types
}

// componentStorage keeps the values of one component type densely packed.
// The reverse index maps an entity slot index to its position in dense.
// Removal swaps the last element into the freed position, so iteration order
// is insertion order until the first removal.
type componentStorage[T any] struct {
	id       ComponentID
	typ      reflect.Type
	dense    []T
	entities []Entity
	index    *intmap.Map[uint32, int]
	readers  int
}

func newComponentStorage[T any](id ComponentID) *componentStorage[T] {
	return &componentStorage[T]{
		id:    id,
		typ:   reflect.TypeFor[T](),
		index: intmap.New[uint32, int](64),
	}
}

func (cs *componentStorage[T]) ID() ComponentID    { return cs.id }
func (cs *componentStorage[T]) Type() reflect.Type { return cs.typ }
func (cs *componentStorage[T]) Len() int           { return len(cs.dense) }

// Entities returns the entities that own a component, in dense order.
// The slice is owned by the storage and only valid until the next mutation.
func (cs *componentStorage[T]) Entities() []Entity {
	return cs.entities
}

// slot returns the dense position of the entity's component
func (cs *componentStorage[T]) slot(e Entity) (int, bool) {
	pos, ok := cs.index.Get(e.Index())
	if !ok || cs.entities[pos] != e {
		return -1, false
	}
	return pos, true
}

// Has checks if the entity owns a component in this storage.
func (cs *componentStorage[T]) Has(e Entity) bool {
	_, ok := cs.slot(e)
	return ok
}

// Add stores value for the entity, rejecting a second component for the same entity.
func (cs *componentStorage[T]) Add(e Entity, value T) error {
	if _, ok := cs.index.Get(e.Index()); ok {
		return ErrAlreadyPresent
	}

	cs.index.Put(e.Index(), len(cs.dense))
	cs.dense = append(cs.dense, value)
	cs.entities = append(cs.entities, e)
	return nil
}

// Remove deletes the entity's component and returns its previous value.
// The last element is moved into the freed slot.
func (cs *componentStorage[T]) Remove(e Entity) (T, error) {
	var zero T

	pos, ok := cs.slot(e)
	if !ok {
		return zero, ErrNotFound
	}

	removed := cs.dense[pos]
	last := len(cs.dense) - 1
	if pos != last {
		moved := cs.entities[last]
		cs.dense[pos] = cs.dense[last]
		cs.entities[pos] = moved
		cs.index.Put(moved.Index(), pos)
	}

	cs.dense[last] = zero // release references held by the value
	cs.dense = cs.dense[:last]
	cs.entities = cs.entities[:last]
	cs.index.Del(e.Index())
	return removed, nil
}

// Get returns a pointer to the entity's component, or nil.
// The pointer is only valid until the next structural change of this storage.
func (cs *componentStorage[T]) Get(e Entity) *T {
	pos, ok := cs.slot(e)
	if !ok {
		return nil
	}
	return &cs.dense[pos]
}

// Each yields every (entity, component) pair in dense order.
// The storage is locked for the duration of the iteration.
func (cs *componentStorage[T]) Each() iter.Seq2[Entity, *T] {
	return func(yield func(Entity, *T) bool) {
		cs.lock()
		defer cs.unlock()

		for i := 0; i < len(cs.dense); i++ {
			if !yield(cs.entities[i], &cs.dense[i]) {
				return
			}
		}
	}
}

func (cs *componentStorage[T]) addAny(e Entity, value any) error {
	switch v := value.(type) {
	case T:
		return cs.Add(e, v)
	case *T:
		return cs.Add(e, *v)
	default:
		panic("component value of type " + reflect.TypeOf(value).String() + " does not match storage " + cs.typ.String())
	}
}

func (cs *componentStorage[T]) removeAny(e Entity) error {
	_, err := cs.Remove(e)
	return err
}

func (cs *componentStorage[T]) pointer(e Entity) unsafe.Pointer {
	pos, ok := cs.slot(e)
	if !ok {
		return nil
	}
	return unsafe.Pointer(&cs.dense[pos])
}

func (cs *componentStorage[T]) getAny(e Entity) any {
	if p := cs.Get(e); p != nil {
		return p
	}
	return nil
}

func (cs *componentStorage[T]) lock()        { cs.readers++ }
func (cs *componentStorage[T]) unlock()      { cs.readers-- }
func (cs *componentStorage[T]) locked() bool { return cs.readers > 0 }

func (cs *componentStorage[T]) clear() {
	clear(cs.dense)
	cs.dense = cs.dense[:0]
	cs.entities = cs.entities[:0]
	cs.index.Clear()
}
