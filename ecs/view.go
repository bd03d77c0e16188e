package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

var entityType = reflect.TypeFor[Entity]()

// View represents a query for entities with a specific combination of components
// The type T should be a struct with pointer fields for each component type
// Named fields can be marked as optional using the `ecs:"optional"` struct tag
// A field of type Entity receives the entity the row belongs to
type View[T any] struct {
	world       *World
	types       []reflect.Type
	optional    []bool
	fieldOffset []uintptr
	storages    []iComponentStorage

	entityOffset uintptr
	hasEntity    bool
}

// NewView creates a new view for the given struct type
// Embedded fields are always required
// Named fields can be marked as optional using the `ecs:"optional"` struct tag
func NewView[T any](world *World) *View[T] {
	structType := reflect.TypeFor[T]()

	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	v := &View[T]{
		world:       world,
		types:       make([]reflect.Type, 0, structType.NumField()),
		optional:    make([]bool, 0, structType.NumField()),
		fieldOffset: make([]uintptr, 0, structType.NumField()),
	}

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		fieldType := field.Type

		if fieldType == entityType {
			if v.hasEntity {
				panic("View struct can hold at most one Entity field")
			}
			v.hasEntity = true
			v.entityOffset = field.Offset
			continue
		}

		if fieldType.Kind() != reflect.Ptr {
			panic("View struct fields must be pointer types or Entity")
		}

		// Embedded fields are always required
		isOptional := false
		if !field.Anonymous {
			if tag := field.Tag.Get("ecs"); tag != "" {
				if tag != "optional" {
					panic("invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
				}
				isOptional = true
			}
		}

		v.types = append(v.types, fieldType.Elem())
		v.fieldOffset = append(v.fieldOffset, field.Offset)
		v.optional = append(v.optional, isOptional)
	}

	v.resolveStorages()
	return v
}

// resolveStorages looks up the storage of each field. Unregistered types resolve to nil.
func (v *View[T]) resolveStorages() {
	v.storages = make([]iComponentStorage, len(v.types))
	for i, t := range v.types {
		v.storages[i] = v.world.storageByType(t)
	}
}

// Fill populates the provided struct pointer with component data for the given entity
// Returns false if the entity is missing any required components
// Optional components are set to nil if not present
func (v *View[T]) Fill(e Entity, ptr *T) bool {
	if !v.world.IsAlive(e) {
		return false
	}
	if v.storages == nil || len(v.storages) != len(v.types) {
		v.resolveStorages()
	}
	return v.populate(unsafe.Pointer(ptr), e)
}

func (v *View[T]) populate(structPtr unsafe.Pointer, e Entity) bool {
	for i, st := range v.storages {
		fieldPtr := unsafe.Add(structPtr, v.fieldOffset[i])

		var component unsafe.Pointer
		if st != nil {
			component = st.pointer(e)
		}

		if component == nil {
			if !v.optional[i] {
				return false
			}
			*(*unsafe.Pointer)(fieldPtr) = nil
			continue
		}
		*(*unsafe.Pointer)(fieldPtr) = component
	}

	if v.hasEntity {
		*(*Entity)(unsafe.Add(structPtr, v.entityOffset)) = e
	}
	return true
}

// Get returns a populated view struct for the given entity, or nil if the entity
// doesn't have all the required components
func (v *View[T]) Get(e Entity) *T {
	var result T
	if !v.Fill(e, &result) {
		return nil
	}
	return &result
}

// required returns the storages of the non-optional fields, or false if one of
// them was never registered
func (v *View[T]) required() ([]iComponentStorage, bool) {
	required := make([]iComponentStorage, 0, len(v.storages))
	for i, st := range v.storages {
		if v.optional[i] {
			continue
		}
		if st == nil {
			return nil, false
		}
		required = append(required, st)
	}
	return required, true
}

// Iter returns an iterator over all entities that have all the required components for this view
// The smallest required storage drives the scan and the other storages are probed
// Every storage the view touches is locked until the iteration ends
func (v *View[T]) Iter() iter.Seq2[Entity, T] {
	return func(yield func(Entity, T) bool) {
		v.resolveStorages()

		required, ok := v.required()
		if !ok || len(required) == 0 {
			return
		}

		touched := make([]iComponentStorage, 0, len(v.storages))
		for _, st := range v.storages {
			if st != nil {
				touched = append(touched, st)
			}
		}

		driver := smallest(required)

		v.world.beginIteration(touched...)
		defer v.world.endIteration(touched...)

		var result T
		resultPtr := unsafe.Pointer(&result)

		entities := driver.Entities()
		for i := 0; i < len(entities); i++ {
			e := entities[i]
			if !v.populate(resultPtr, e) {
				continue
			}
			if !yield(e, result) {
				return
			}
		}
	}
}

// Values returns an iterator over just the view structs (without entities)
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}

// Spawn creates a new entity with components copied from the view struct
// Nil optional fields are skipped
func (v *View[T]) Spawn(data T) Entity {
	structPtr := unsafe.Pointer(&data)

	components := make([]any, 0, len(v.types))
	for i, componentType := range v.types {
		componentPtr := *(*unsafe.Pointer)(unsafe.Add(structPtr, v.fieldOffset[i]))
		if componentPtr == nil {
			if !v.optional[i] {
				panic("required component is nil in View.Spawn")
			}
			continue
		}
		components = append(components, reflect.NewAt(componentType, componentPtr).Elem().Interface())
	}

	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}
	return v.world.Spawn(components...)
}
