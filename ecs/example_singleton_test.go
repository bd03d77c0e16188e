package ecs_test

import (
	"fmt"
	"time"

	"github.com/plus3/kite/ecs"
)

type GameConfig struct {
	MaxPlayers int
	Difficulty string
}

type GameScore struct {
	Points int
	Level  int
}

// ExampleNewSingleton demonstrates creating and accessing singletons.
// Singletons are world values not associated with any entity, useful for
// input state, configuration, or other application-wide data.
func ExampleNewSingleton() {
	w := ecs.NewWorld(ecs.NewComponentRegistry())

	// Create singleton with initializer
	config := ecs.NewSingleton(w, GameConfig{
		MaxPlayers: 4,
		Difficulty: "Normal",
	})

	fmt.Printf("Config: %d players, %s difficulty\n", config.Get().MaxPlayers, config.Get().Difficulty)

	// Modify the singleton
	config.Get().Difficulty = "Hard"
	fmt.Printf("Updated difficulty: %s\n", config.Get().Difficulty)

	// Create another reference to the same singleton
	sameConfig := ecs.NewSingleton[GameConfig](w)
	fmt.Printf("Same config: %s difficulty\n", sameConfig.Get().Difficulty)

	// Output:
	// Config: 4 players, Normal difficulty
	// Updated difficulty: Hard
	// Same config: Hard difficulty
}

// ExampleSetSingleton shows that replacing a singleton value is observed by
// every existing accessor.
func ExampleSetSingleton() {
	w := ecs.NewWorld(ecs.NewComponentRegistry())

	score := ecs.NewSingleton(w, GameScore{Points: 0, Level: 1})
	ecs.SetSingleton(w, GameScore{Points: 100, Level: 2})
	fmt.Printf("Score: %d points, Level %d\n", score.Get().Points, score.Get().Level)

	if ecs.GetSingleton[GameConfig](w) == nil {
		fmt.Println("Config not found")
	}

	ecs.RemoveSingleton[GameScore](w)
	fmt.Println("Removed:", ecs.GetSingleton[GameScore](w) == nil)

	// Output:
	// Score: 100 points, Level 2
	// Config not found
	// Removed: true
}

type scoreSystem struct {
	Score ecs.Singleton[GameScore]
}

func (s *scoreSystem) Priority() int { return ecs.PriorityNormal }

func (s *scoreSystem) Update(w *ecs.World, dt time.Duration) {
	s.Score.Get().Points += 10
}

// ExampleSingleton_inSystem shows a Singleton field initialized by the scheduler.
func ExampleSingleton_inSystem() {
	w := ecs.NewWorld(ecs.NewComponentRegistry())
	ecs.NewSingleton(w, GameScore{Level: 1})

	scheduler := ecs.NewScheduler(w)
	_ = scheduler.Register(&scoreSystem{})
	for range 3 {
		_ = scheduler.Once(time.Second / 60)
	}

	fmt.Println("Points:", ecs.GetSingleton[GameScore](w).Points)

	// Output:
	// Points: 30
}
