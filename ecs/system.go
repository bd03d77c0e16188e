package ecs

import "time"

// Standard priorities. Lower values run earlier in a frame.
const (
	PriorityInput   = -100
	PriorityNormal  = 0
	PriorityEffects = 100
	PriorityLayout  = 200
	PriorityRender  = 300
	PriorityLast    = 1000
)

// System represents a behavior that runs once per frame.
// User-defined systems can include Query and Singleton fields, which the
// Scheduler initializes on registration, as well as private state that
// persists between frames.
type System interface {
	// Priority orders systems within a frame. It must not change after registration.
	Priority() int
	Update(w *World, dt time.Duration)
}

// Initializer is implemented by systems that need setup once they are attached to a world.
type Initializer interface {
	Init(w *World) error
}

// Finalizer is implemented by systems that release resources when the scheduler closes.
type Finalizer interface {
	End(w *World)
}

// NewSystemFunc adapts a function to the System interface.
func NewSystemFunc(name string, priority int, fn func(w *World, dt time.Duration)) System {
	return &funcSystem{name: name, priority: priority, fn: fn}
}

type funcSystem struct {
	name     string
	priority int
	fn       func(w *World, dt time.Duration)
}

func (s *funcSystem) Priority() int                     { return s.priority }
func (s *funcSystem) Update(w *World, dt time.Duration) { s.fn(w, dt) }
func (s *funcSystem) String() string                    { return s.name }
