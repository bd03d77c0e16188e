package components

import "github.com/plus3/kite/ecs"

// Register registers every built-in component type with the registry.
func Register(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Size](registry)
	ecs.RegisterComponent[Rect](registry)
	ecs.RegisterComponent[Line](registry)
	ecs.RegisterComponent[Box](registry)
	ecs.RegisterComponent[SolidBox](registry)
	ecs.RegisterComponent[BorderBox](registry)
	ecs.RegisterComponent[Color](registry)
	ecs.RegisterComponent[Renderable](registry)
	ecs.RegisterComponent[Hidden](registry)
	ecs.RegisterComponent[Sprite](registry)
	ecs.RegisterComponent[Label](registry)
	ecs.RegisterComponent[Alignment](registry)
	ecs.RegisterComponent[Anchor](registry)
	ecs.RegisterComponent[Layout](registry)
	ecs.RegisterComponent[AlternateColor](registry)
}
