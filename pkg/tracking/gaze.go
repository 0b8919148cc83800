// Package tracking converts intermittent camera detections into a smooth,
// bounded gaze vector for the eye renderer. It owns the target acquisition
// state machine: debounce before locking on, a grace period before letting go.
package tracking

import (
	"math"
	"time"
)

// Gaze is the normalized offset of the pupil from the iris center.
// Both axes are in [-1, 1]; (0, 0) looks straight ahead.
type Gaze struct {
	X, Y float64
}

// Clamp returns a Gaze with magnitude limited to 1 so the pupil
// can never be driven outside the iris boundary.
func (g Gaze) Clamp() Gaze {
	mag := math.Hypot(g.X, g.Y)
	if mag <= 1 {
		return g
	}
	return Gaze{X: g.X / mag, Y: g.Y / mag}
}

// Sub returns g - other.
func (g Gaze) Sub(other Gaze) Gaze {
	return Gaze{X: g.X - other.X, Y: g.Y - other.Y}
}

// Magnitude returns the vector length.
func (g Gaze) Magnitude() float64 {
	return math.Hypot(g.X, g.Y)
}

// Detection is a single raw target sighting in camera-normalized
// coordinates ([-1, 1] on both axes, positive X to the right).
type Detection struct {
	X, Y float64
	Time time.Time
}

// Source supplies detections to the filter. Poll must not block beyond
// the caller's tick budget; returning false means no target was seen
// this tick, which is a normal result, not an error.
type Source interface {
	Poll() (Detection, bool)
}

// State is the target acquisition state.
type State int

const (
	// StateNoTarget means nothing has been seen, or the grace period
	// after a loss has fully elapsed.
	StateNoTarget State = iota

	// StateAcquiring means detections have started arriving but the
	// debounce count has not been reached yet.
	StateAcquiring

	// StateTracking means the target is locked.
	StateTracking

	// StateLosing means detections stopped arriving; the last smoothed
	// position is held until the grace period expires.
	StateLosing
)

// String returns the state name for logging.
func (s State) String() string {
	switch s {
	case StateNoTarget:
		return "no-target"
	case StateAcquiring:
		return "acquiring"
	case StateTracking:
		return "tracking"
	case StateLosing:
		return "losing"
	default:
		return "unknown"
	}
}

// Tracked reports whether the state counts as an active lock for the
// animation layer (Acquiring and Tracking both do).
func (s State) Tracked() bool {
	return s == StateAcquiring || s == StateTracking
}

// clamp restricts v to the range [min, max].
func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
