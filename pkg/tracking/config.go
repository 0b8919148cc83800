package tracking

import (
	"fmt"
	"time"
)

// Config holds all tunable parameters for the gaze filter.
type Config struct {
	// Smoothing is the exponential smoothing factor applied to raw
	// detections (0-1, higher = more weight on the new reading).
	Smoothing float64

	// MaxStep limits how far the gaze vector may move per update,
	// in normalized units, so a jumpy detector cannot teleport the pupil.
	MaxStep float64

	// Debounce is how many consecutive detections are required before
	// Acquiring promotes to Tracking. Rejects single-frame false positives.
	Debounce int

	// LossGrace is how long the last smoothed position is held after
	// detections stop before giving up and returning to NoTarget.
	LossGrace time.Duration

	// IdleDecay is the per-update interpolation factor used to drift
	// toward the idle-wander target while no target is held.
	IdleDecay float64
}

// DefaultConfig returns the recommended filter configuration.
func DefaultConfig() Config {
	return Config{
		Smoothing: 0.3,
		MaxStep:   0.15,
		Debounce:  2,
		LossGrace: 500 * time.Millisecond,
		IdleDecay: 0.08,
	}
}

// Validate checks that the configuration is usable.
// Called once at construction; the filter never re-validates mid-run.
func (c Config) Validate() error {
	if c.Smoothing <= 0 || c.Smoothing > 1 {
		return fmt.Errorf("smoothing must be in (0, 1], got %v", c.Smoothing)
	}
	if c.MaxStep <= 0 {
		return fmt.Errorf("max step must be positive, got %v", c.MaxStep)
	}
	if c.Debounce < 1 {
		return fmt.Errorf("debounce must be at least 1, got %d", c.Debounce)
	}
	if c.LossGrace <= 0 {
		return fmt.Errorf("loss grace must be positive, got %v", c.LossGrace)
	}
	if c.IdleDecay <= 0 || c.IdleDecay > 1 {
		return fmt.Errorf("idle decay must be in (0, 1], got %v", c.IdleDecay)
	}
	return nil
}
