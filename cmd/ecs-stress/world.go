package main

import (
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/plus3/kite/components"
	"github.com/plus3/kite/ecs"
	"github.com/plus3/kite/logging"
)

type Velocity struct {
	X, Y float32
}

type Health struct {
	Current, Max int
}

// Lifetime destroys its entity once it runs out.
type Lifetime struct {
	Remaining time.Duration
}

type Damage struct {
	Amount int
}

type Spawned struct{}

func registerComponents(registry *ecs.ComponentRegistry) {
	components.Register(registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Health](registry)
	ecs.RegisterComponent[Lifetime](registry)
	ecs.RegisterComponent[Damage](registry)
	ecs.RegisterComponent[Spawned](registry)
}

// spawnRandomEntity creates an entity with a random subset of the stress components.
func spawnRandomEntity(w *ecs.World, rng *rand.Rand) ecs.Entity {
	values := []any{components.Position{X: rng.Float32() * 1000, Y: rng.Float32() * 1000}}

	if rng.IntN(2) == 0 {
		values = append(values, Velocity{X: rng.Float32()*2 - 1, Y: rng.Float32()*2 - 1})
	}
	if rng.IntN(3) == 0 {
		values = append(values, Health{Current: 100, Max: 100})
	}
	if rng.IntN(4) == 0 {
		values = append(values, Lifetime{Remaining: time.Duration(rng.IntN(2000)) * time.Millisecond})
	}
	if rng.IntN(5) == 0 {
		values = append(values, components.NewAlternateColor(components.Red, components.Blue), components.White)
	}
	return w.Spawn(values...)
}

type MovementSystem struct {
	Movers ecs.Query[struct {
		*components.Position
		*Velocity
	}]
}

func (s *MovementSystem) Priority() int { return ecs.PriorityNormal }

func (s *MovementSystem) Update(w *ecs.World, dt time.Duration) {
	step := float32(dt.Seconds()) * 60
	for row := range s.Movers.Values() {
		row.Position.X += row.Velocity.X * step
		row.Position.Y += row.Velocity.Y * step
	}
}

// CombatSystem hands out damage and removes the Damage component once it is applied.
type CombatSystem struct {
	rng     *rand.Rand
	Targets ecs.Query[struct {
		ecs.Entity
		*Health
		Damage *Damage `ecs:"optional"`
	}]
}

func (s *CombatSystem) Priority() int { return ecs.PriorityNormal + 1 }

func (s *CombatSystem) Update(w *ecs.World, dt time.Duration) {
	for row := range s.Targets.Values() {
		if row.Damage != nil {
			row.Health.Current -= row.Damage.Amount
			if _, err := ecs.Remove[Damage](w, row.Entity); err != nil {
				logRejected("remove damage", row.Entity, err)
			}
			if row.Health.Current <= 0 {
				if err := w.Destroy(row.Entity); err != nil {
					logRejected("destroy", row.Entity, err)
				}
			}
			continue
		}
		if s.rng.IntN(10) == 0 {
			if err := ecs.Add(w, row.Entity, Damage{Amount: s.rng.IntN(30)}); err != nil {
				logRejected("add damage", row.Entity, err)
			}
		}
	}
}

type LifetimeSystem struct {
	Expiring ecs.Query[struct {
		ecs.Entity
		*Lifetime
	}]
	destroyed int
}

func (s *LifetimeSystem) Priority() int { return ecs.PriorityNormal + 2 }

func (s *LifetimeSystem) Update(w *ecs.World, dt time.Duration) {
	for row := range s.Expiring.Values() {
		row.Remaining -= dt
		if row.Remaining <= 0 {
			// combat may already have scheduled the entity for destruction
			if err := w.Destroy(row.Entity); err != nil {
				logRejected("destroy", row.Entity, err)
				continue
			}
			s.destroyed++
		}
	}
}

// SpawnerSystem keeps the population at its target by replacing destroyed entities.
type SpawnerSystem struct {
	Target  int
	rng     *rand.Rand
	spawned int
}

func (s *SpawnerSystem) Priority() int { return ecs.PriorityLast }

func (s *SpawnerSystem) Update(w *ecs.World, dt time.Duration) {
	for range s.Target - w.Count() {
		e := spawnRandomEntity(w, s.rng)
		if err := ecs.Add(w, e, Spawned{}); err != nil {
			logRejected("add spawned", e, err)
		}
		s.spawned++
	}
}

func logRejected(op string, e ecs.Entity, err error) {
	logging.Logger().Debug("structural change rejected",
		slog.String("op", op),
		slog.String("entity", e.String()),
		slog.Any("error", err))
}
