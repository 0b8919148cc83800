// Package display owns the path from a rendered frame to a physical
// screen. Each Channel wraps one display with its own frame buffer and
// transport handle, so a stalled or failing screen can never block its
// sibling.
package display

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/teslashibe/go-eyes/internal/log"
	"github.com/teslashibe/go-eyes/pkg/render"
)

// ErrDisabled is returned by Submit once a channel has exceeded its
// failure threshold and stopped attempting transport writes.
var ErrDisabled = errors.New("display channel disabled")

// Transport is the hardware write boundary: one fixed-dimension pixel
// buffer in, success or failure out.
type Transport interface {
	// WriteFrame pushes a full RGB565 frame to the display.
	WriteFrame(pix []byte) error

	// Close releases the transport.
	Close() error
}

// Channel drives one display. The frame buffer is exclusively owned by
// the channel; the renderer draws into it and Submit pushes it out.
// Submit and the counters are safe to use from the controller's
// per-channel worker goroutines.
type Channel struct {
	name      string
	transport Transport
	frame     *render.Frame

	failLimit int // consecutive failures before the channel disables itself

	submitted atomic.Uint64
	failed    atomic.Uint64
	streak    atomic.Uint64 // current consecutive failure run
	disabled  atomic.Bool
}

// NewChannel creates a display channel with its own w x h frame buffer.
// failLimit <= 0 means the channel never disables itself.
func NewChannel(name string, t Transport, w, h, failLimit int) (*Channel, error) {
	frame, err := render.NewFrame(w, h)
	if err != nil {
		return nil, fmt.Errorf("channel %s: %w", name, err)
	}
	return &Channel{
		name:      name,
		transport: t,
		frame:     frame,
		failLimit: failLimit,
	}, nil
}

// Name returns the channel's identifier ("left", "right").
func (c *Channel) Name() string {
	return c.name
}

// Frame returns the channel-owned frame buffer for the renderer to
// draw into. Never shared across channels.
func (c *Channel) Frame() *render.Frame {
	return c.frame
}

// Submit writes the current frame to the transport. A failure is
// counted and logged but is never fatal: the caller skips this frame
// for this channel and carries on.
func (c *Channel) Submit() error {
	if c.disabled.Load() {
		return ErrDisabled
	}

	if err := c.transport.WriteFrame(c.frame.Pix); err != nil {
		c.failed.Add(1)
		streak := c.streak.Add(1)
		if c.failLimit > 0 && streak >= uint64(c.failLimit) && !c.disabled.Swap(true) {
			log.Error("display channel disabled after repeated failures",
				"channel", c.name, "consecutive", streak, "total", c.failed.Load())
		}
		return fmt.Errorf("channel %s: %w", c.name, err)
	}

	c.streak.Store(0)
	c.submitted.Add(1)
	return nil
}

// Rest draws the shutdown frame (eyes closed: all black) and pushes it
// best-effort, even on a disabled channel.
func (c *Channel) Rest() {
	c.frame.Fill(0, 0, 0)
	if err := c.transport.WriteFrame(c.frame.Pix); err != nil {
		log.Warn("rest frame not delivered", "channel", c.name, "error", err)
	}
}

// Disabled reports whether the channel has given up on its transport.
func (c *Channel) Disabled() bool {
	return c.disabled.Load()
}

// Submitted returns how many frames reached the transport successfully.
func (c *Channel) Submitted() uint64 {
	return c.submitted.Load()
}

// Failed returns how many submissions errored.
func (c *Channel) Failed() uint64 {
	return c.failed.Load()
}

// Close releases the transport handle.
func (c *Channel) Close() error {
	return c.transport.Close()
}
