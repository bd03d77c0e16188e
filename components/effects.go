package components

import "time"

// AlternateColor blends an entity's Color from one color to another and back,
// pausing between each half cycle. It can be used for blinking or fading.
type AlternateColor struct {
	From  Color
	To    Color
	Time  time.Duration
	Delay time.Duration
	Pause bool

	CurrentTime time.Duration

	// Cycles is the number of half cycles to run before the effect is removed.
	// Zero runs forever.
	Cycles int
}

// NewAlternateColor returns an effect with the default timings.
func NewAlternateColor(from, to Color) AlternateColor {
	return AlternateColor{
		From:  from,
		To:    to,
		Time:  150 * time.Millisecond,
		Delay: 100 * time.Millisecond,
	}
}
