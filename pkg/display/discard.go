package display

import "sync/atomic"

// Discard is a Transport that accepts and drops every frame. Used by
// the throughput-measurement mode to isolate render and loop cost from
// display I/O, and by tests.
type Discard struct {
	frames atomic.Uint64
}

// NewDiscard returns a no-op transport.
func NewDiscard() *Discard {
	return &Discard{}
}

// WriteFrame counts the frame and drops it.
func (d *Discard) WriteFrame(pix []byte) error {
	d.frames.Add(1)
	return nil
}

// Frames returns how many frames were written.
func (d *Discard) Frames() uint64 {
	return d.frames.Load()
}

// Close is a no-op.
func (d *Discard) Close() error {
	return nil
}
