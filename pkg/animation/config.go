// Package animation owns the per-frame behavior of the eyes: blink
// timing, idle wandering, and the phase machine that arbitrates between
// them and the tracker. One Machine drives both eyes; the renderer
// consumes the directive it emits each tick.
package animation

import (
	"fmt"
	"time"
)

// Config holds all tunable parameters for the animation machine.
type Config struct {
	// BlinkMin/BlinkMax bound the randomized interval between blinks.
	BlinkMin time.Duration
	BlinkMax time.Duration

	// BlinkDuration is the full close-then-open time of one blink.
	BlinkDuration time.Duration

	// WanderMin/WanderMax bound how long an idle wander point is held
	// before a new one is chosen.
	WanderMin time.Duration
	WanderMax time.Duration

	// WanderRadius bounds how far from center the idle wander points
	// may land, in normalized gaze units.
	WanderRadius float64

	// MaxDt clamps a single tick's elapsed time. Protects the blink
	// curve and timers when the process was suspended between ticks.
	MaxDt time.Duration

	// Seed makes the wander/blink randomness reproducible when nonzero.
	Seed int64
}

// DefaultConfig returns the recommended animation configuration.
// Blink cadence matches the prop's original tuning (2-5s apart, ~200ms).
func DefaultConfig() Config {
	return Config{
		BlinkMin:      2 * time.Second,
		BlinkMax:      5 * time.Second,
		BlinkDuration: 200 * time.Millisecond,
		WanderMin:     1 * time.Second,
		WanderMax:     3 * time.Second,
		WanderRadius:  0.6,
		MaxDt:         100 * time.Millisecond,
	}
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.BlinkMin <= 0 || c.BlinkMax < c.BlinkMin {
		return fmt.Errorf("blink interval range [%v, %v] is invalid", c.BlinkMin, c.BlinkMax)
	}
	if c.BlinkDuration <= 0 {
		return fmt.Errorf("blink duration must be positive, got %v", c.BlinkDuration)
	}
	if c.WanderMin <= 0 || c.WanderMax < c.WanderMin {
		return fmt.Errorf("wander interval range [%v, %v] is invalid", c.WanderMin, c.WanderMax)
	}
	if c.WanderRadius <= 0 || c.WanderRadius > 1 {
		return fmt.Errorf("wander radius must be in (0, 1], got %v", c.WanderRadius)
	}
	if c.MaxDt <= 0 {
		return fmt.Errorf("max dt must be positive, got %v", c.MaxDt)
	}
	return nil
}
