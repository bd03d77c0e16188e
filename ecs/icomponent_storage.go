package ecs

import (
	"reflect"
	"unsafe"
)

// iComponentStorage is the type-erased view of a componentStorage[T] that the
// World uses for operations that span every component type.
type iComponentStorage interface {
	ID() ComponentID
	Type() reflect.Type
	Len() int
	Has(e Entity) bool
	Entities() []Entity

	addAny(e Entity, value any) error
	removeAny(e Entity) error
	pointer(e Entity) unsafe.Pointer
	getAny(e Entity) any

	lock()
	unlock()
	locked() bool
	clear()
}
