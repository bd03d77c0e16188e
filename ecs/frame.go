package ecs

import "time"

// Frame describes the frame the scheduler is currently executing.
type Frame struct {
	Number  uint64
	Delta   time.Duration
	Elapsed time.Duration
}

// Seconds returns the frame delta in seconds.
func (f Frame) Seconds() float64 {
	return f.Delta.Seconds()
}

func (w *World) advance(dt time.Duration) {
	w.frame.Number++
	w.frame.Delta = dt
	w.frame.Elapsed += dt
}
