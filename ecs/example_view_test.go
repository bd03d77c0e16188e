package ecs_test

import (
	"fmt"

	"github.com/plus3/kite/ecs"
)

// ExampleView demonstrates using Views for one-off lookups outside of systems.
// A view is a struct of component pointers; the pointers refer to the stored
// components, so writes through them are visible to every other reader.
func ExampleView() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Health](registry)
	w := ecs.NewWorld(registry)

	player := w.Spawn(
		Position{X: 10, Y: 20},
		Velocity{DX: 1, DY: 0},
		Health{Current: 100, Max: 100},
	)

	view := ecs.NewView[struct {
		*Position
		*Velocity
	}](w)

	if item := view.Get(player); item != nil {
		fmt.Printf("Player at (%.0f, %.0f) moving (%.0f, %.0f)\n",
			item.Position.X, item.Position.Y, item.Velocity.DX, item.Velocity.DY)
	}

	// Output:
	// Player at (10, 20) moving (1, 0)
}

// ExampleView_Iter shows iterating over all entities matching a view.
//
// By including an Entity field in the view struct, you can access each
// entity during iteration. This is useful for storing references,
// destroying entities, or requesting components for them.
func ExampleView_Iter() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Health](registry)
	w := ecs.NewWorld(registry)

	w.Spawn(Position{X: 0, Y: 0}, Velocity{DX: 1, DY: 0})
	w.Spawn(Position{X: 10, Y: 10}, Velocity{DX: 0, DY: 1}, Health{Current: 50, Max: 100})
	w.Spawn(Position{X: 20, Y: 20}, Velocity{DX: -1, DY: -1})
	w.Spawn(Position{X: 100, Y: 100})

	view := ecs.NewView[struct {
		Id ecs.Entity
		*Position
		*Velocity
	}](w)

	fmt.Println("Entities with position and velocity:")
	for item := range view.Values() {
		item.Position.X += item.Velocity.DX
		item.Position.Y += item.Velocity.DY
		fmt.Printf("%s new position: (%.0f, %.0f)\n", item.Id, item.Position.X, item.Position.Y)
	}

	// Output:
	// Entities with position and velocity:
	// entity(0:1) new position: (1, 0)
	// entity(1:1) new position: (10, 11)
	// entity(2:1) new position: (19, 19)
}

// ExampleView_optional demonstrates using optional components in views.
// Optional components allow a single view to match entities that may or may not
// have certain components, like rendering entities with an optional effect.
func ExampleView_optional() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Health](registry)
	w := ecs.NewWorld(registry)

	w.Spawn(Position{X: 10, Y: 10}, Velocity{DX: 1, DY: 0}, Health{Current: 50, Max: 100})
	w.Spawn(Position{X: 20, Y: 20}, Velocity{DX: 0, DY: 1}, Health{Current: 75, Max: 100})
	w.Spawn(Position{X: 30, Y: 30}, Velocity{DX: -1, DY: 0})

	view := ecs.NewView[struct {
		Position *Position
		Velocity *Velocity
		Health   *Health `ecs:"optional"`
	}](w)

	fmt.Println("All moving entities:")
	for item := range view.Values() {
		if item.Health != nil {
			fmt.Printf("Entity at (%.0f, %.0f) with health %d/%d\n",
				item.Position.X, item.Position.Y, item.Health.Current, item.Health.Max)
		} else {
			fmt.Printf("Invulnerable entity at (%.0f, %.0f)\n", item.Position.X, item.Position.Y)
		}
	}

	// Output:
	// All moving entities:
	// Entity at (10, 10) with health 50/100
	// Entity at (20, 20) with health 75/100
	// Invulnerable entity at (30, 30)
}
