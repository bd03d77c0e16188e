package systems

import (
	"time"

	"github.com/plus3/kite/components"
	"github.com/plus3/kite/ecs"
)

type alternateColorRow struct {
	Effect *components.AlternateColor
	Color  *components.Color
}

// EffectsSystem advances AlternateColor effects. Each half cycle blends Color
// from From to To over Time, then holds for Delay and swaps the two colors.
// Effects with a Cycles budget are removed once it is spent.
type EffectsSystem struct {
	Colors ecs.Query[alternateColorRow]
}

func (s *EffectsSystem) Priority() int { return ecs.PriorityEffects }

func (s *EffectsSystem) Update(w *ecs.World, dt time.Duration) {
	for e, row := range s.Colors.Iter() {
		effect := row.Effect
		*row.Color = effect.From
		effect.CurrentTime += dt

		if effect.Pause {
			if effect.CurrentTime > effect.Delay {
				effect.Pause = false
				effect.CurrentTime = 0
			}
			continue
		}

		if effect.CurrentTime > effect.Time {
			effect.CurrentTime = 0
			effect.Pause = true
			effect.From, effect.To = effect.To, effect.From
			*row.Color = effect.From

			if effect.Cycles > 0 {
				effect.Cycles--
				if effect.Cycles == 0 {
					// removal is deferred until the iteration ends
					if _, err := ecs.Remove[components.AlternateColor](w, e); err != nil {
						logRejected("remove alternate color", e, err)
					}
				}
			}
			continue
		}

		if effect.Time > 0 {
			*row.Color = effect.From.Blend(effect.To, float32(effect.CurrentTime)/float32(effect.Time))
		}
	}
}
