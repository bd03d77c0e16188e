package ecs

import (
	"iter"
	"log/slog"
	"reflect"

	"github.com/rotisserie/eris"

	"github.com/plus3/kite/logging"
)

// World owns the entity registry, one storage per registered component type,
// the world singletons and the event channel of the current frame. It is the
// only place where structural changes (create, destroy, add, remove) happen.
//
// Structural changes requested while a storage they touch is being iterated
// are buffered and applied at the next flush point; see Commands.
type World struct {
	registry   *ComponentRegistry
	entities   *entityRegistry
	storages   []iComponentStorage
	events     *EventChannel
	commands   *Commands
	singletons map[reflect.Type]any
	frame      Frame

	iterating int
	inTurn    bool
	flushing  bool
}

// NewWorld creates a world with one storage for every component type of the registry.
// Types registered after the world was created are picked up lazily.
func NewWorld(registry *ComponentRegistry) *World {
	w := &World{
		registry:   registry,
		entities:   newEntityRegistry(256),
		events:     NewEventChannel(),
		commands:   newCommands(),
		singletons: make(map[reflect.Type]any),
	}
	w.syncStorages()
	return w
}

// syncStorages creates the storages of component types registered since the last call
func (w *World) syncStorages() {
	for id := len(w.storages); id < len(w.registry.factories); id++ {
		w.storages = append(w.storages, w.registry.factories[id](ComponentID(id)))
	}
}

// storageByID returns the storage of a registered component ID
func (w *World) storageByID(id ComponentID) iComponentStorage {
	if int(id) >= len(w.storages) {
		w.syncStorages()
	}
	if int(id) >= len(w.storages) {
		return nil
	}
	return w.storages[id]
}

// storageByType returns the storage of a component type, or nil if it was never registered
func (w *World) storageByType(t reflect.Type) iComponentStorage {
	id, ok := w.registry.Lookup(t)
	if !ok {
		return nil
	}
	return w.storageByID(id)
}

func storageFor[T any](w *World) *componentStorage[T] {
	st := w.storageByType(reflect.TypeFor[T]())
	if st == nil {
		return nil
	}
	return st.(*componentStorage[T])
}

func mustStorageFor[T any](w *World) *componentStorage[T] {
	st := storageFor[T](w)
	if st == nil {
		panic("component type " + reflect.TypeFor[T]().String() + " not registered")
	}
	return st
}

// Registry returns the component registry the world was built from.
func (w *World) Registry() *ComponentRegistry {
	return w.registry
}

// Events returns the event channel of the current frame.
func (w *World) Events() *EventChannel {
	return w.events
}

// Emit appends an event to the current frame's channel.
func (w *World) Emit(event Event) {
	w.events.Emit(event)
}

// Commands returns the deferred command buffer.
func (w *World) Commands() *Commands {
	return w.commands
}

// Frame returns timing information about the frame being executed.
func (w *World) Frame() Frame {
	return w.frame
}

// Create allocates a new entity without components.
func (w *World) Create() Entity {
	return w.entities.create()
}

// Spawn creates a new entity with the provided components.
// Components may be passed by value or by pointer; every type must be registered.
func (w *World) Spawn(components ...any) Entity {
	e := w.entities.create()
	for _, component := range components {
		st := w.storageByType(componentType(component))
		if st == nil {
			panic("component type " + componentType(component).String() + " not registered")
		}
		if err := w.addAny(e, st, component); err != nil {
			panic(eris.Wrapf(err, "spawn %s", e))
		}
	}
	return e
}

// IsAlive reports whether the entity handle still refers to a live entity.
func (w *World) IsAlive(e Entity) bool {
	return w.entities.isAlive(e)
}

// Count returns the number of live entities.
func (w *World) Count() int {
	return w.entities.count()
}

// Entities yields every live entity.
func (w *World) Entities() iter.Seq[Entity] {
	return w.entities.each
}

// Destroy removes the entity from every storage and invalidates its handle.
// Destroying an unknown or already destroyed entity returns ErrNotFound.
func (w *World) Destroy(e Entity) error {
	if !w.commands.alive(w, e) {
		return eris.Wrapf(ErrNotFound, "destroy %s", e)
	}

	if w.shouldDeferDestroy(e) {
		w.commands.destroy(e)
		return nil
	}
	return w.destroyNow(e)
}

// Components returns pointers to every component owned by the entity, ordered by ComponentID.
func (w *World) Components(e Entity) []any {
	if !w.entities.isAlive(e) {
		return nil
	}

	var components []any
	for _, st := range w.storages {
		if value := st.getAny(e); value != nil {
			components = append(components, value)
		}
	}
	return components
}

// ComponentTypes returns the types of every component owned by the entity.
func (w *World) ComponentTypes(e Entity) []reflect.Type {
	if !w.entities.isAlive(e) {
		return nil
	}

	var types []reflect.Type
	for _, st := range w.storages {
		if st.Has(e) {
			types = append(types, st.Type())
		}
	}
	return types
}

// Flush applies buffered structural changes and pending add-component requests.
// It is a no-op while an iteration is in progress.
func (w *World) Flush() {
	if w.flushing || w.iterating > 0 {
		return
	}

	w.flushing = true
	defer func() { w.flushing = false }()

	w.commands.Flush(w)

	for _, request := range w.events.pendingRequests() {
		if err := request.apply(w); err != nil {
			logging.Logger().Debug("add component request rejected",
				slog.String("entity", request.Target().String()),
				slog.String("component", request.ComponentType().String()),
				slog.Any("error", err))
		}
	}
}

// Clear destroys every entity, drops queued events and buffered commands.
// Singletons are kept.
func (w *World) Clear() {
	for _, st := range w.storages {
		st.clear()
	}
	w.entities.reset()
	w.events.Clear()
	w.commands = newCommands()
}

// Query yields the entities that own every listed component type. The smallest
// storage drives the scan and the others are probed. Structural changes issued
// while consuming the sequence are deferred.
func (w *World) Query(types ...reflect.Type) iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		if len(types) == 0 {
			return
		}

		storages := make([]iComponentStorage, 0, len(types))
		for _, t := range types {
			st := w.storageByType(t)
			if st == nil {
				return
			}
			storages = append(storages, st)
		}

		driver := smallest(storages)

		w.beginIteration(storages...)
		defer w.endIteration(storages...)

		entities := driver.Entities()
		for i := 0; i < len(entities); i++ {
			e := entities[i]
			if !hasAll(storages, driver, e) {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}

func smallest(storages []iComponentStorage) iComponentStorage {
	driver := storages[0]
	for _, st := range storages[1:] {
		if st.Len() < driver.Len() {
			driver = st
		}
	}
	return driver
}

func hasAll(storages []iComponentStorage, skip iComponentStorage, e Entity) bool {
	for _, st := range storages {
		if st == skip {
			continue
		}
		if !st.Has(e) {
			return false
		}
	}
	return true
}

func (w *World) beginIteration(storages ...iComponentStorage) {
	w.iterating++
	for _, st := range storages {
		st.lock()
	}
}

// endIteration releases the storages. Outside of a system turn the buffered
// changes are applied as soon as the outermost iteration finishes.
func (w *World) endIteration(storages ...iComponentStorage) {
	for _, st := range storages {
		st.unlock()
	}
	w.iterating--
	if w.iterating == 0 && !w.inTurn && !w.flushing {
		w.Flush()
	}
}

func (w *World) beginTurn() {
	w.inTurn = true
	w.events.beginTurn()
}

func (w *World) endTurn() {
	w.inTurn = false
	w.events.endTurn()
	w.Flush()
}

func (w *World) shouldDefer(st iComponentStorage) bool {
	if w.flushing {
		return st.locked()
	}
	return st.locked() || w.commands.Len() > 0
}

func (w *World) shouldDeferDestroy(e Entity) bool {
	if !w.flushing && w.commands.Len() > 0 {
		return true
	}
	for _, st := range w.storages {
		if st.locked() && st.Has(e) {
			return true
		}
	}
	return false
}

func (w *World) addAny(e Entity, st iComponentStorage, value any) error {
	if !w.commands.alive(w, e) {
		return eris.Wrapf(ErrNotFound, "add %s to %s", st.Type(), e)
	}
	if w.commands.has(w, e, st.ID()) {
		return eris.Wrapf(ErrAlreadyPresent, "add %s to %s", st.Type(), e)
	}

	if w.shouldDefer(st) {
		w.commands.add(e, st.ID(), value)
		return nil
	}
	return st.addAny(e, value)
}

func (w *World) addNow(e Entity, id ComponentID, value any) error {
	if !w.entities.isAlive(e) {
		return ErrNotFound
	}
	return w.storageByID(id).addAny(e, value)
}

func (w *World) removeNow(e Entity, id ComponentID) error {
	if !w.entities.isAlive(e) {
		return ErrNotFound
	}
	return w.storageByID(id).removeAny(e)
}

func (w *World) destroyNow(e Entity) error {
	if !w.entities.isAlive(e) {
		return ErrNotFound
	}
	for _, st := range w.storages {
		if st.Has(e) {
			_ = st.removeAny(e)
		}
	}
	w.entities.destroy(e)
	return nil
}

// componentType returns the component type of a value, dereferencing pointers
func componentType(component any) reflect.Type {
	t := reflect.TypeOf(component)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}
