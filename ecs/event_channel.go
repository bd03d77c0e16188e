package ecs

import "iter"

// EventChannel is the per-frame event queue owned by the World.
//
// Reading never consumes: every reader sees the queue as it stood when the
// current system turn began, so a system observes the events emitted by the
// systems that ran before it in the same frame, but not its own until the next
// system's turn. Outside of a scheduler turn the whole queue is visible.
// The scheduler clears the channel once every system has run.
type EventChannel struct {
	queue   []Event
	visible int // number of visible events, -1 when the whole queue is visible
	applied int // add-component requests are applied up to this position
}

// NewEventChannel creates an empty event channel.
func NewEventChannel() *EventChannel {
	return &EventChannel{
		queue:   make([]Event, 0, 64),
		visible: -1,
	}
}

// Emit appends an event to the current frame's queue. Nil events are ignored.
func (c *EventChannel) Emit(event Event) {
	if event == nil {
		return
	}
	c.queue = append(c.queue, event)
}

// Len returns the number of queued events, visible or not.
func (c *EventChannel) Len() int {
	return len(c.queue)
}

// Clear drops every queued event, read or not.
func (c *EventChannel) Clear() {
	clear(c.queue)
	c.queue = c.queue[:0]
	c.applied = 0
	if c.visible > 0 {
		c.visible = 0
	}
}

// All yields every visible event in emission order.
func (c *EventChannel) All() iter.Seq[Event] {
	events := c.snapshot()
	return func(yield func(Event) bool) {
		for _, event := range events {
			if !yield(event) {
				return
			}
		}
	}
}

// DrainKind yields the visible events with the given discriminant in emission order.
func (c *EventChannel) DrainKind(kind EventKind) iter.Seq[Event] {
	events := c.snapshot()
	return func(yield func(Event) bool) {
		for _, event := range events {
			if event.Kind() != kind {
				continue
			}
			if !yield(event) {
				return
			}
		}
	}
}

// Drain yields, in emission order, the visible events that match T. T may be a
// concrete payload such as KeyDown or a family interface such as KeyEvent.
// A type that was never emitted yields an empty sequence.
func Drain[T Event](c *EventChannel) iter.Seq[T] {
	events := c.snapshot()
	return func(yield func(T) bool) {
		for _, event := range events {
			matched, ok := event.(T)
			if !ok {
				continue
			}
			if !yield(matched) {
				return
			}
		}
	}
}

// snapshot returns the visible part of the queue. The slice header is captured,
// so events appended while iterating are not observed.
func (c *EventChannel) snapshot() []Event {
	if c.visible < 0 || c.visible > len(c.queue) {
		return c.queue
	}
	return c.queue[:c.visible]
}

func (c *EventChannel) beginTurn() {
	c.visible = len(c.queue)
}

func (c *EventChannel) endTurn() {
	c.visible = -1
}

// pendingRequests returns the add-component requests emitted since the last call.
func (c *EventChannel) pendingRequests() []ComponentRequest {
	var requests []ComponentRequest
	for _, event := range c.queue[c.applied:] {
		if request, ok := event.(ComponentRequest); ok {
			requests = append(requests, request)
		}
	}
	c.applied = len(c.queue)
	return requests
}
