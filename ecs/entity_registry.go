package ecs

// entitySlot tracks the current generation of one identity slot.
type entitySlot struct {
	generation uint32
	alive      bool
}

// entityRegistry hands out entity identities and recycles the slots of destroyed
// entities. Every reuse of a slot carries a new generation, so handles to the
// previous occupant stop resolving.
type entityRegistry struct {
	slots []entitySlot
	free  []uint32
	alive int
}

func newEntityRegistry(capacity int) *entityRegistry {
	return &entityRegistry{
		slots: make([]entitySlot, 0, capacity),
		free:  make([]uint32, 0, capacity/4),
	}
}

// create allocates a fresh identity, recycling a free slot when one exists
func (r *entityRegistry) create() Entity {
	var index uint32
	if n := len(r.free); n > 0 {
		index = r.free[n-1]
		r.free = r.free[:n-1]
	} else {
		index = uint32(len(r.slots))
		// generation starts at 1 so the zero Entity never resolves
		r.slots = append(r.slots, entitySlot{generation: 1})
	}

	slot := &r.slots[index]
	slot.alive = true
	r.alive++
	return NewEntity(index, slot.generation)
}

// destroy invalidates the entity. The slot generation is bumped right away so
// that stale handles fail even before the slot is reused.
func (r *entityRegistry) destroy(e Entity) bool {
	if !r.isAlive(e) {
		return false
	}

	slot := &r.slots[e.Index()]
	slot.alive = false
	slot.generation++
	if slot.generation == 0 {
		slot.generation = 1
	}
	r.free = append(r.free, e.Index())
	r.alive--
	return true
}

// reset kills every live entity and returns all slots to the free list. Slots
// keep their generation history so handles from before the reset stay stale.
func (r *entityRegistry) reset() {
	r.free = r.free[:0]
	for i := len(r.slots) - 1; i >= 0; i-- {
		slot := &r.slots[i]
		if slot.alive {
			slot.alive = false
			slot.generation++
			if slot.generation == 0 {
				slot.generation = 1
			}
		}
		r.free = append(r.free, uint32(i))
	}
	r.alive = 0
}

func (r *entityRegistry) isAlive(e Entity) bool {
	index := e.Index()
	if int(index) >= len(r.slots) {
		return false
	}
	slot := r.slots[index]
	return slot.alive && slot.generation == e.Generation()
}

func (r *entityRegistry) count() int {
	return r.alive
}

// each yields every live entity in slot order
func (r *entityRegistry) each(yield func(Entity) bool) {
	for i, slot := range r.slots {
		if !slot.alive {
			continue
		}
		if !yield(NewEntity(uint32(i), slot.generation)) {
			return
		}
	}
}
