// Package eyes wires the gaze pipeline together and runs the fixed-rate
// control loop: poll the source, advance the filter and animation
// machine, render both eyes, submit both channels, keep pace.
package eyes

import (
	"time"

	"github.com/teslashibe/go-eyes/pkg/animation"
	"github.com/teslashibe/go-eyes/pkg/render"
	"github.com/teslashibe/go-eyes/pkg/tracking"
)

// Config holds all configuration for the eye controller.
// Flag parsing is done in cmd/eyes/main.go; this struct is data only.
type Config struct {
	// Tick is the control loop interval. ~33ms gives the 30Hz the
	// panels comfortably sustain over SPI.
	Tick time.Duration

	// Filter configures the gaze filter.
	Filter tracking.Config

	// Anim configures the animation machine.
	Anim animation.Config

	// LeftEye/RightEye are the per-eye drawing constants.
	LeftEye  render.EyeConfig
	RightEye render.EyeConfig

	// FailLimit is how many consecutive submit failures disable a
	// channel. Zero keeps retrying forever.
	FailLimit int

	// Preview opens a desktop window mirroring the rendered eyes.
	Preview bool

	// Bench bypasses display submission entirely to measure pure
	// render and loop cost.
	Bench bool

	// HeartbeatTicks is how often loop statistics are logged.
	// Zero disables the heartbeat.
	HeartbeatTicks uint64
}

// DefaultConfig returns the standard prop configuration.
func DefaultConfig() Config {
	return Config{
		Tick:           33 * time.Millisecond,
		Filter:         tracking.DefaultConfig(),
		Anim:           animation.DefaultConfig(),
		LeftEye:        render.DefaultEyeConfig(),
		RightEye:       render.DefaultEyeConfig(),
		FailLimit:      30,
		HeartbeatTicks: 300,
	}
}

// Validate checks the whole configuration tree. Any error here is fatal
// before the loop starts; nothing is re-validated mid-run.
func (c Config) Validate() error {
	if c.Tick <= 0 {
		return &ConfigError{Field: "Tick", Message: "tick interval must be positive"}
	}
	if err := c.Filter.Validate(); err != nil {
		return &ConfigError{Field: "Filter", Message: err.Error()}
	}
	if err := c.Anim.Validate(); err != nil {
		return &ConfigError{Field: "Anim", Message: err.Error()}
	}
	if err := c.LeftEye.Validate(); err != nil {
		return &ConfigError{Field: "LeftEye", Message: err.Error()}
	}
	if err := c.RightEye.Validate(); err != nil {
		return &ConfigError{Field: "RightEye", Message: err.Error()}
	}
	if c.FailLimit < 0 {
		return &ConfigError{Field: "FailLimit", Message: "fail limit must not be negative"}
	}
	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
