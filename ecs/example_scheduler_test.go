package ecs_test

import (
	"context"
	"fmt"
	"time"

	"github.com/plus3/kite/ecs"
)

type Transform struct {
	X, Y float32
}

type Speed struct {
	DX, DY float32
}

type Hitpoints struct {
	Current, Max int
}

type PhysicsSystem struct {
	Entities ecs.Query[struct {
		*Transform
		*Speed
	}]
}

func (s *PhysicsSystem) Priority() int { return ecs.PriorityNormal }

func (s *PhysicsSystem) Update(w *ecs.World, dt time.Duration) {
	seconds := float32(dt.Seconds())
	for entity := range s.Entities.Values() {
		entity.Transform.X += entity.Speed.DX * seconds
		entity.Transform.Y += entity.Speed.DY * seconds
	}
}

type HealingSystem struct {
	Entities  ecs.Query[struct{ *Hitpoints }]
	RegenRate float64
}

func (s *HealingSystem) Priority() int { return ecs.PriorityNormal }

func (s *HealingSystem) Update(w *ecs.World, dt time.Duration) {
	for entity := range s.Entities.Values() {
		if entity.Hitpoints.Current < entity.Hitpoints.Max {
			entity.Hitpoints.Current += int(s.RegenRate * dt.Seconds())
			entity.Hitpoints.Current = min(entity.Hitpoints.Current, entity.Hitpoints.Max)
		}
	}
}

// ExampleScheduler demonstrates building a frame loop with multiple systems.
// The Scheduler orders systems by priority, initializes their Query fields
// and flushes deferred commands after every system's turn.
// Systems sharing a priority run in registration order.
func ExampleScheduler() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Transform](registry)
	ecs.RegisterComponent[Speed](registry)
	ecs.RegisterComponent[Hitpoints](registry)
	w := ecs.NewWorld(registry)

	w.Spawn(
		Transform{X: 0, Y: 0},
		Speed{DX: 10, DY: 5},
		Hitpoints{Current: 80, Max: 100},
	)
	w.Spawn(
		Transform{X: 100, Y: 100},
		Speed{DX: -5, DY: -5},
		Hitpoints{Current: 50, Max: 100},
	)

	scheduler := ecs.NewScheduler(w)
	_ = scheduler.Register(&PhysicsSystem{})
	_ = scheduler.Register(&HealingSystem{RegenRate: 10})

	_ = scheduler.Once(time.Second)

	view := ecs.NewView[struct {
		*Transform
		*Hitpoints
	}](w)

	fmt.Println("After one frame:")
	for item := range view.Values() {
		fmt.Printf("Position: (%.0f, %.0f), Health: %d/%d\n",
			item.Transform.X, item.Transform.Y,
			item.Hitpoints.Current, item.Hitpoints.Max)
	}

	// Output:
	// After one frame:
	// Position: (10, 5), Health: 90/100
	// Position: (95, 95), Health: 60/100
}

// ExampleScheduler_Run demonstrates running a continuous loop.
// Run blocks and executes all systems at a fixed interval until the
// context is cancelled.
func ExampleScheduler_Run() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Transform](registry)
	ecs.RegisterComponent[Speed](registry)
	w := ecs.NewWorld(registry)

	w.Spawn(Transform{X: 0, Y: 0}, Speed{DX: 1, DY: 1})

	scheduler := ecs.NewScheduler(w)
	_ = scheduler.Register(&PhysicsSystem{})
	defer scheduler.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	if err := scheduler.Run(ctx, 16*time.Millisecond); err != nil {
		fmt.Println("run failed:", err)
	}

	fmt.Println("Scheduler stopped")
	// Output:
	// Scheduler stopped
}

type GameTime struct {
	TotalFrames int
	TotalTime   time.Duration
}

type TimeTracker struct {
	GameTime ecs.Singleton[GameTime]
}

func (s *TimeTracker) Priority() int { return ecs.PriorityInput }

func (s *TimeTracker) Update(w *ecs.World, dt time.Duration) {
	gameTime := s.GameTime.Get()
	gameTime.TotalFrames++
	gameTime.TotalTime += dt
}

type ScoreTracker struct {
	Points int
}

type PointsSystem struct {
	Entities ecs.Query[struct{ *Transform }]
	Score    ecs.Singleton[ScoreTracker]
}

func (s *PointsSystem) Priority() int { return ecs.PriorityNormal }

func (s *PointsSystem) Update(w *ecs.World, dt time.Duration) {
	s.Score.Get().Points += s.Entities.Count() * 10
}

// ExampleScheduler_withSingletons demonstrates using singleton components in systems.
// Singleton fields are initialized by the Scheduler, just like Query fields.
func ExampleScheduler_withSingletons() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Transform](registry)
	w := ecs.NewWorld(registry)

	ecs.NewSingleton(w, GameTime{})
	ecs.NewSingleton(w, ScoreTracker{})

	w.Spawn(Transform{X: 0, Y: 0})
	w.Spawn(Transform{X: 10, Y: 10})
	w.Spawn(Transform{X: 20, Y: 20})

	scheduler := ecs.NewScheduler(w)
	_ = scheduler.Register(&TimeTracker{})
	_ = scheduler.Register(&PointsSystem{})

	for range 3 {
		_ = scheduler.Once(16 * time.Millisecond)
	}

	gameTime := ecs.GetSingleton[GameTime](w)
	fmt.Printf("Frames: %d, Time: %s\n", gameTime.TotalFrames, gameTime.TotalTime)

	score := ecs.GetSingleton[ScoreTracker](w)
	fmt.Printf("Score: %d points\n", score.Points)

	// Output:
	// Frames: 3, Time: 48ms
	// Score: 90 points
}
