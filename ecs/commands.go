package ecs

import (
	"log/slog"

	"github.com/plus3/kite/logging"
)

type commandKind uint8

const (
	commandAdd commandKind = iota
	commandRemove
	commandDestroy
	commandSpawn
	commandDefer
)

type command struct {
	kind       commandKind
	entity     Entity
	component  ComponentID
	value      any
	components []any
	fn         func()
}

type presenceKey struct {
	entity    Entity
	component ComponentID
}

// Commands buffers structural changes requested while the storages they touch
// are being iterated. The buffer is applied in request order at the flush point
// that ends the current system turn.
//
// Besides the queue it tracks the state the World will have once the queue is
// applied, so a second removal of the same component is rejected at request
// time rather than failing silently at flush time.
type Commands struct {
	ops       []command
	presence  map[presenceKey]bool
	destroyed map[Entity]bool
}

func newCommands() *Commands {
	return &Commands{
		presence:  make(map[presenceKey]bool),
		destroyed: make(map[Entity]bool),
	}
}

// Len returns the number of buffered operations.
func (c *Commands) Len() int {
	return len(c.ops)
}

// Defer queues a function to run at the next flush point.
func (c *Commands) Defer(fn func()) {
	c.ops = append(c.ops, command{kind: commandDefer, fn: fn})
}

// Spawn queues the creation of an entity with the given components.
func (c *Commands) Spawn(components ...any) {
	c.ops = append(c.ops, command{kind: commandSpawn, components: components})
}

func (c *Commands) add(e Entity, id ComponentID, value any) {
	c.ops = append(c.ops, command{kind: commandAdd, entity: e, component: id, value: value})
	c.presence[presenceKey{e, id}] = true
}

func (c *Commands) remove(e Entity, id ComponentID) {
	c.ops = append(c.ops, command{kind: commandRemove, entity: e, component: id})
	c.presence[presenceKey{e, id}] = false
}

func (c *Commands) destroy(e Entity) {
	c.ops = append(c.ops, command{kind: commandDestroy, entity: e})
	c.destroyed[e] = true
}

// has reports whether the entity will own the component after the queue is applied
func (c *Commands) has(w *World, e Entity, id ComponentID) bool {
	if c.destroyed[e] {
		return false
	}
	if present, ok := c.presence[presenceKey{e, id}]; ok {
		return present
	}
	return w.storageByID(id).Has(e)
}

// pendingValue returns the value of the latest buffered add of the component
func (c *Commands) pendingValue(e Entity, id ComponentID) any {
	for i := len(c.ops) - 1; i >= 0; i-- {
		op := c.ops[i]
		if op.kind == commandAdd && op.entity == e && op.component == id {
			return op.value
		}
	}
	return nil
}

func (c *Commands) alive(w *World, e Entity) bool {
	return !c.destroyed[e] && w.entities.isAlive(e)
}

// Flush applies every buffered operation to the world and resets the buffer.
// Operations queued by deferred functions run in the same flush.
func (c *Commands) Flush(w *World) {
	if len(c.ops) == 0 {
		return
	}

	logging.Logger().Debug("flushing deferred commands", slog.Int("count", len(c.ops)))

	for i := 0; i < len(c.ops); i++ {
		cmd := c.ops[i]

		var err error
		switch cmd.kind {
		case commandAdd:
			err = w.addNow(cmd.entity, cmd.component, cmd.value)
		case commandRemove:
			err = w.removeNow(cmd.entity, cmd.component)
		case commandDestroy:
			err = w.destroyNow(cmd.entity)
		case commandSpawn:
			w.Spawn(cmd.components...)
		case commandDefer:
			cmd.fn()
		}

		if err != nil {
			logging.Logger().Debug("deferred command failed",
				slog.String("entity", cmd.entity.String()),
				slog.Any("error", err))
		}
	}

	clear(c.ops)
	c.ops = c.ops[:0]
	clear(c.presence)
	clear(c.destroyed)
}
