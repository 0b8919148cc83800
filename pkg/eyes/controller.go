package eyes

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/teslashibe/go-eyes/internal/log"
	"github.com/teslashibe/go-eyes/pkg/animation"
	"github.com/teslashibe/go-eyes/pkg/display"
	"github.com/teslashibe/go-eyes/pkg/render"
	"github.com/teslashibe/go-eyes/pkg/tracking"
)

// eye pairs a renderer with the channel that owns its frame buffer.
type eye struct {
	renderer *render.Renderer
	channel  *display.Channel
}

// Controller runs the fixed-rate control loop. One logical thread
// drives the state; only rendering and submission fan out per channel,
// and both rejoin before the next state update.
type Controller struct {
	cfg     Config
	source  tracking.Source
	filter  *tracking.Filter
	machine *animation.Machine
	left    eye
	right   eye

	ticks    atomic.Uint64
	overruns atomic.Uint64
}

// Stats is a snapshot of loop and channel counters.
type Stats struct {
	Ticks    uint64
	Overruns uint64

	LeftSubmitted  uint64
	LeftFailed     uint64
	LeftDisabled   bool
	RightSubmitted uint64
	RightFailed    uint64
	RightDisabled  bool
}

// New builds a controller around the given source and transports.
// source may be nil: the prop then animates idle behavior forever.
// All configuration errors surface here, before the loop exists.
func New(cfg Config, source tracking.Source, leftT, rightT display.Transport) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	filter, err := tracking.NewFilter(cfg.Filter)
	if err != nil {
		return nil, err
	}
	machine, err := animation.NewMachine(cfg.Anim)
	if err != nil {
		return nil, err
	}

	leftR, err := render.NewRenderer(cfg.LeftEye)
	if err != nil {
		return nil, err
	}
	rightR, err := render.NewRenderer(cfg.RightEye)
	if err != nil {
		return nil, err
	}

	leftC, err := display.NewChannel("left", leftT, cfg.LeftEye.Width, cfg.LeftEye.Height, cfg.FailLimit)
	if err != nil {
		return nil, err
	}
	rightC, err := display.NewChannel("right", rightT, cfg.RightEye.Width, cfg.RightEye.Height, cfg.FailLimit)
	if err != nil {
		return nil, err
	}

	return &Controller{
		cfg:     cfg,
		source:  source,
		filter:  filter,
		machine: machine,
		left:    eye{renderer: leftR, channel: leftC},
		right:   eye{renderer: rightR, channel: rightC},
	}, nil
}

// Run drives the loop until ctx is canceled. The stop signal is
// observed between ticks, never mid-render; on the way out both
// channels get a best-effort rest frame before their transports close.
func (c *Controller) Run(ctx context.Context) error {
	log.Info("eye controller started",
		"tick", c.cfg.Tick, "bench", c.cfg.Bench, "preview", c.cfg.Preview)

	var pv *previewWindow
	if c.cfg.Preview {
		pv = openPreview(c.cfg.LeftEye.Width, c.cfg.LeftEye.Height)
		defer pv.close()
	}

	timer := time.NewTimer(c.cfg.Tick)
	defer timer.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			c.shutdown()
			return nil
		default:
		}

		start := time.Now()
		dt := start.Sub(last)
		last = start

		c.tick(dt)

		if pv != nil {
			pv.show(c.left.channel.Frame(), c.right.channel.Frame())
		}

		n := c.ticks.Add(1)
		if c.cfg.HeartbeatTicks > 0 && n%c.cfg.HeartbeatTicks == 0 {
			s := c.Stats()
			log.Debug("loop heartbeat",
				"ticks", s.Ticks, "overruns", s.Overruns,
				"phase", c.machine.Phase().String(), "track", c.filter.State().String(),
				"left_ok", s.LeftSubmitted, "left_err", s.LeftFailed,
				"right_ok", s.RightSubmitted, "right_err", s.RightFailed)
		}

		// Sleep out the remainder of the budget; on overrun proceed
		// immediately and record it. Best-effort soft real-time.
		elapsed := time.Since(start)
		if elapsed >= c.cfg.Tick {
			c.overruns.Add(1)
			continue
		}
		timer.Reset(c.cfg.Tick - elapsed)
		select {
		case <-ctx.Done():
			c.shutdown()
			return nil
		case <-timer.C:
		}
	}
}

// tick runs one control cycle: poll, filter, animate, render, submit.
func (c *Controller) tick(dt time.Duration) {
	var det tracking.Detection
	var ok bool
	if c.source != nil {
		det, ok = c.source.Poll()
	}

	c.filter.SetIdleTarget(c.machine.WanderTarget())
	gaze := c.filter.Update(det, ok, dt.Seconds())
	directive := c.machine.Tick(dt, c.filter.State(), gaze)

	// Left and right are fully independent: disjoint frame buffers,
	// disjoint transports. Both must rejoin before the next state
	// update, but neither waits on the other's transport mid-write.
	var wg sync.WaitGroup
	for _, e := range []eye{c.left, c.right} {
		wg.Add(1)
		go func(e eye) {
			defer wg.Done()
			e.renderer.Render(directive, e.channel.Frame())
			if c.cfg.Bench {
				return
			}
			// Submit failures are counted and logged by the channel;
			// a faulted display never stops the loop.
			_ = e.channel.Submit()
		}(e)
	}
	wg.Wait()
}

// shutdown pushes rest frames and releases both transports.
func (c *Controller) shutdown() {
	s := c.Stats()
	log.Info("eye controller stopping",
		"ticks", s.Ticks, "overruns", s.Overruns,
		"left_err", s.LeftFailed, "right_err", s.RightFailed)

	if !c.cfg.Bench {
		c.left.channel.Rest()
		c.right.channel.Rest()
	}
	if err := c.left.channel.Close(); err != nil {
		log.Warn("left channel close", "error", err)
	}
	if err := c.right.channel.Close(); err != nil {
		log.Warn("right channel close", "error", err)
	}
}

// Stats returns a snapshot of the loop counters.
func (c *Controller) Stats() Stats {
	return Stats{
		Ticks:          c.ticks.Load(),
		Overruns:       c.overruns.Load(),
		LeftSubmitted:  c.left.channel.Submitted(),
		LeftFailed:     c.left.channel.Failed(),
		LeftDisabled:   c.left.channel.Disabled(),
		RightSubmitted: c.right.channel.Submitted(),
		RightFailed:    c.right.channel.Failed(),
		RightDisabled:  c.right.channel.Disabled(),
	}
}
