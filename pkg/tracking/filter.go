package tracking

// Filter turns raw optional detections into a continuous gaze vector.
// It is driven once per control-loop tick and is not safe for
// concurrent use; the controller owns it.
type Filter struct {
	cfg Config

	state       State
	gaze        Gaze
	consecutive int // consecutive detections while acquiring

	sinceSeen  float64 // seconds since last detection, drives the grace period
	idleTarget Gaze    // wander point supplied by the animation layer
}

// NewFilter creates a gaze filter. Configuration errors are fatal here,
// before the control loop ever starts.
func NewFilter(cfg Config) (*Filter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Filter{cfg: cfg}, nil
}

// State returns the current acquisition state.
func (f *Filter) State() State {
	return f.state
}

// Gaze returns the current smoothed gaze vector.
func (f *Filter) Gaze() Gaze {
	return f.gaze
}

// SetIdleTarget hands in the wander point the gaze should drift toward
// while no target is held. Set by the controller each tick before Update.
func (f *Filter) SetIdleTarget(g Gaze) {
	f.idleTarget = g.Clamp()
}

// Update advances the filter by one tick. det is ignored when ok is
// false. dt is the tick duration in seconds. The returned gaze is
// magnitude-clamped and rate-limited against the previous value.
func (f *Filter) Update(det Detection, ok bool, dt float64) Gaze {
	if ok {
		f.observe(det)
	} else {
		f.miss(dt)
	}

	switch f.state {
	case StateNoTarget:
		// Hand off to idle behavior: drift toward the wander point
		// instead of snapping to center.
		f.gaze = f.step(Gaze{
			X: f.gaze.X + (f.idleTarget.X-f.gaze.X)*f.cfg.IdleDecay,
			Y: f.gaze.Y + (f.idleTarget.Y-f.gaze.Y)*f.cfg.IdleDecay,
		})
	case StateLosing:
		// Hold the last smoothed position; no movement until the
		// grace period resolves one way or the other.
	default:
		// Acquiring/Tracking: gaze already advanced in observe.
	}

	return f.gaze
}

// observe folds a fresh detection into the smoothed position and
// advances the acquisition state.
func (f *Filter) observe(det Detection) {
	// Out-of-range coordinates are clamped, not rejected.
	tx := clamp(det.X, -1, 1)
	ty := clamp(det.Y, -1, 1)

	switch f.state {
	case StateNoTarget:
		f.state = StateAcquiring
		f.consecutive = 1
	case StateAcquiring:
		f.consecutive++
		if f.consecutive >= f.cfg.Debounce {
			f.state = StateTracking
		}
	case StateLosing:
		// Reappeared within the grace period: resume without re-debouncing.
		f.state = StateTracking
	}
	f.sinceSeen = 0

	a := f.cfg.Smoothing
	f.gaze = f.step(Gaze{
		X: f.gaze.X + (tx-f.gaze.X)*a,
		Y: f.gaze.Y + (ty-f.gaze.Y)*a,
	})
}

// miss advances the loss timers when no detection arrived this tick.
func (f *Filter) miss(dt float64) {
	switch f.state {
	case StateAcquiring:
		// A gap during debounce resets acquisition entirely.
		f.state = StateNoTarget
		f.consecutive = 0
	case StateTracking:
		f.state = StateLosing
		f.sinceSeen = dt
	case StateLosing:
		f.sinceSeen += dt
		if f.sinceSeen >= f.cfg.LossGrace.Seconds() {
			f.state = StateNoTarget
			f.consecutive = 0
		}
	}
}

// step rate-limits the move from the current gaze to next and clamps
// the result to the unit disc.
func (f *Filter) step(next Gaze) Gaze {
	delta := next.Sub(f.gaze)
	if mag := delta.Magnitude(); mag > f.cfg.MaxStep {
		scale := f.cfg.MaxStep / mag
		next = Gaze{X: f.gaze.X + delta.X*scale, Y: f.gaze.Y + delta.Y*scale}
	}
	return next.Clamp()
}
