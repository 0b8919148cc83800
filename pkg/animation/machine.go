package animation

import (
	"math/rand"
	"time"

	"github.com/teslashibe/go-eyes/pkg/tracking"
)

// Phase is the animation state for the current tick.
type Phase int

const (
	// PhaseIdle wanders the gaze between random rest points.
	PhaseIdle Phase = iota

	// PhaseTracking follows the filtered gaze directly.
	PhaseTracking

	// PhaseBlinking overrides the eyelid with the blink curve; gaze is
	// frozen at its pre-blink value until the curve completes.
	PhaseBlinking

	// PhaseReturning is the hand-back after a lost target, while the
	// gaze drifts from its held position to the wander point.
	PhaseReturning
)

// String returns the phase name for logging.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseTracking:
		return "tracking"
	case PhaseBlinking:
		return "blinking"
	case PhaseReturning:
		return "returning"
	default:
		return "unknown"
	}
}

// Directive is everything the renderer needs for one frame. It is a
// value, produced each tick and discarded after use.
type Directive struct {
	Gaze       tracking.Gaze
	Eyelid     float64 // 0 closed .. 1 fully open
	PupilScale float64 // relative pupil size, 1 = nominal
	Tracking   bool    // switches the tracked look (round pupil, alt color)
}

// Machine is the animation state machine. It is driven once per tick by
// the controller and is not safe for concurrent use.
type Machine struct {
	cfg Config
	rng *rand.Rand

	phase Phase

	// Blink state. The timer runs in every phase; blinking happens
	// whether idle or tracking.
	untilBlink   float64 // seconds until the next blink starts
	blinkElapsed float64
	frozenGaze   tracking.Gaze

	// Idle wander state.
	wanderTarget tracking.Gaze
	untilWander  float64 // seconds until a new wander point is chosen
}

// NewMachine creates the animation machine. Configuration errors are
// fatal at startup.
func NewMachine(cfg Config) (*Machine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var rng *rand.Rand
	if cfg.Seed != 0 {
		rng = rand.New(rand.NewSource(cfg.Seed))
	} else {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	m := &Machine{
		cfg: cfg,
		rng: rng,
	}
	m.untilBlink = m.nextBlinkInterval()
	m.retarget()
	return m, nil
}

// Phase returns the current animation phase.
func (m *Machine) Phase() Phase {
	return m.phase
}

// WanderTarget returns the current idle rest point. The controller hands
// this to the gaze filter so idle drift and tracking share one pipeline.
func (m *Machine) WanderTarget() tracking.Gaze {
	return m.wanderTarget
}

// Tick advances the machine by dt and produces the frame directive.
// state is the tracker's acquisition state and gaze the filtered vector
// for this tick.
func (m *Machine) Tick(dt time.Duration, state tracking.State, gaze tracking.Gaze) Directive {
	if dt > m.cfg.MaxDt {
		dt = m.cfg.MaxDt
	}
	secs := dt.Seconds()

	m.advanceWander(secs)

	if m.phase == PhaseBlinking {
		return m.blinkTick(secs, state)
	}

	// The blink countdown runs in every non-blinking phase.
	m.untilBlink -= secs
	if m.untilBlink <= timerSlop {
		m.phase = PhaseBlinking
		m.blinkElapsed = 0
		m.frozenGaze = gaze
		return m.directive(gaze, m.eyelid(0), state.Tracked())
	}

	switch {
	case state.Tracked():
		m.phase = PhaseTracking
	case m.phase == PhaseTracking || state == tracking.StateLosing:
		// Target gone: drift back toward the wander point before
		// settling into plain idle.
		m.phase = PhaseReturning
	case m.phase == PhaseReturning:
		if gaze.Sub(m.wanderTarget).Magnitude() < 0.05 {
			m.phase = PhaseIdle
		}
	default:
		m.phase = PhaseIdle
	}

	return m.directive(gaze, 1, state.Tracked())
}

// blinkTick advances the blink curve. On completion the machine lands in
// whatever phase the tracker indicates now, which may differ from the
// phase the blink interrupted.
func (m *Machine) blinkTick(secs float64, state tracking.State) Directive {
	m.blinkElapsed += secs
	progress := m.blinkElapsed / m.cfg.BlinkDuration.Seconds()

	if progress >= 1 {
		m.untilBlink = m.nextBlinkInterval()
		if state.Tracked() {
			m.phase = PhaseTracking
		} else {
			m.phase = PhaseIdle
		}
		return m.directive(m.frozenGaze, 1, state.Tracked())
	}

	return m.directive(m.frozenGaze, m.eyelid(progress), state.Tracked())
}

// eyelid maps blink progress (0..1) to eyelid openness: eased shut over
// the first half, eased open over the second, fully closed at midpoint.
func (m *Machine) eyelid(progress float64) float64 {
	if progress < 0.5 {
		return 1 - smoothstep(progress/0.5)
	}
	return smoothstep((progress - 0.5) / 0.5)
}

// timerSlop absorbs the float residue left by repeatedly subtracting a
// tick duration, so a countdown that should hit zero on the Nth tick
// actually expires then.
const timerSlop = 1e-9

// advanceWander picks a new idle rest point when the hold interval
// expires. Movement toward it is smooth because the filter interpolates;
// the target itself may jump.
func (m *Machine) advanceWander(secs float64) {
	m.untilWander -= secs
	if m.untilWander <= timerSlop {
		m.retarget()
	}
}

// retarget chooses a new wander point within the configured radius and a
// new hold interval.
func (m *Machine) retarget() {
	r := m.cfg.WanderRadius
	m.wanderTarget = tracking.Gaze{
		X: (m.rng.Float64()*2 - 1) * r,
		Y: (m.rng.Float64()*2 - 1) * r,
	}.Clamp()
	m.untilWander = m.randDuration(m.cfg.WanderMin, m.cfg.WanderMax)
}

// nextBlinkInterval draws a fresh randomized countdown to the next blink.
func (m *Machine) nextBlinkInterval() float64 {
	return m.randDuration(m.cfg.BlinkMin, m.cfg.BlinkMax)
}

// randDuration returns a uniform draw from [min, max] in seconds.
func (m *Machine) randDuration(min, max time.Duration) float64 {
	lo := min.Seconds()
	hi := max.Seconds()
	return lo + m.rng.Float64()*(hi-lo)
}

// directive assembles the per-frame value. PupilScale is constant for
// now; it is a directive field so dilation effects can land later
// without touching the renderer contract.
func (m *Machine) directive(gaze tracking.Gaze, eyelid float64, tracked bool) Directive {
	return Directive{
		Gaze:       gaze.Clamp(),
		Eyelid:     eyelid,
		PupilScale: 1,
		Tracking:   tracked,
	}
}

// smoothstep provides smooth easing (slow start/end).
func smoothstep(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t * t * (3 - 2*t)
}
