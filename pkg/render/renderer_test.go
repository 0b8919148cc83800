package render

import (
	"bytes"
	"testing"

	"github.com/teslashibe/go-eyes/pkg/animation"
	"github.com/teslashibe/go-eyes/pkg/tracking"
)

func newTestRenderer(t *testing.T, cfg EyeConfig) *Renderer {
	t.Helper()
	r, err := NewRenderer(cfg)
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	return r
}

func newTestFrame(t *testing.T, cfg EyeConfig) *Frame {
	t.Helper()
	f, err := NewFrame(cfg.Width, cfg.Height)
	if err != nil {
		t.Fatalf("NewFrame: %v", err)
	}
	return f
}

func open(gaze tracking.Gaze, tracked bool) animation.Directive {
	return animation.Directive{Gaze: gaze, Eyelid: 1, PupilScale: 1, Tracking: tracked}
}

func TestEyeConfig_Validate(t *testing.T) {
	if err := DefaultEyeConfig().Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*EyeConfig)
	}{
		{"zero width", func(c *EyeConfig) { c.Width = 0 }},
		{"zero iris", func(c *EyeConfig) { c.IrisRadius = 0 }},
		{"iris too large", func(c *EyeConfig) { c.IrisRadius = 200 }},
		{"glow level above one", func(c *EyeConfig) { c.GlowLevel = 1.5 }},
		{"zero idle pupil", func(c *EyeConfig) { c.IdlePupilSize = 0 }},
		{"zero slit width", func(c *EyeConfig) { c.IdlePupilWidth = 0 }},
		{"zero tracked pupil", func(c *EyeConfig) { c.TrackedPupilSize = 0 }},
	}
	for _, tc := range cases {
		cfg := DefaultEyeConfig()
		tc.mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error, got nil", tc.name)
		}
	}
}

func TestRenderer_Deterministic(t *testing.T) {
	cfg := DefaultEyeConfig()
	r := newTestRenderer(t, cfg)
	a := newTestFrame(t, cfg)
	b := newTestFrame(t, cfg)

	d := open(tracking.Gaze{X: 0.3, Y: -0.2}, true)
	r.Render(d, a)
	r.Render(d, b)

	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("identical directives produced different frames")
	}
}

func TestRenderer_CenteredIdleEye(t *testing.T) {
	cfg := DefaultEyeConfig()
	r := newTestRenderer(t, cfg)
	f := newTestFrame(t, cfg)

	r.Render(open(tracking.Gaze{}, false), f)

	cx, cy := cfg.Width/2, cfg.Height/2

	// Center sits inside the cat-slit pupil: black.
	if rr, g, b := f.RGBAt(cx, cy); rr != 0 || g != 0 || b != 0 {
		t.Errorf("pupil center: got (%d,%d,%d), want black", rr, g, b)
	}

	// Left of center, outside the slit but inside the iris: idle yellow.
	ix := cx - cfg.IrisRadius + 10
	rr, g, b := f.RGBAt(ix, cy)
	if rr < 200 || g < 150 || b != 0 {
		t.Errorf("iris pixel: got (%d,%d,%d), want yellow-ish", rr, g, b)
	}

	// Well outside the glow: black.
	if rr, g, b := f.RGBAt(5, 5); rr != 0 || g != 0 || b != 0 {
		t.Errorf("corner pixel: got (%d,%d,%d), want black", rr, g, b)
	}
}

func TestRenderer_TrackedLook(t *testing.T) {
	cfg := DefaultEyeConfig()
	r := newTestRenderer(t, cfg)
	f := newTestFrame(t, cfg)

	r.Render(open(tracking.Gaze{}, true), f)

	cx, cy := cfg.Width/2, cfg.Height/2
	ix := cx - cfg.IrisRadius + 10
	rr, g, b := f.RGBAt(ix, cy)
	if rr < 200 || g != 0 || b != 0 {
		t.Errorf("tracked iris pixel: got (%d,%d,%d), want red", rr, g, b)
	}

	// The tracked pupil is round, so a point above center that the
	// narrow idle slit would miss is black here.
	py := cy - int(float64(cfg.IrisRadius)*cfg.TrackedPupilSize) + 5
	px := cx + 10
	if rr, g, b := f.RGBAt(px, py); rr != 0 || g != 0 || b != 0 {
		t.Errorf("round pupil pixel: got (%d,%d,%d), want black", rr, g, b)
	}
}

func TestRenderer_GazeMovesEye(t *testing.T) {
	cfg := DefaultEyeConfig()
	r := newTestRenderer(t, cfg)
	f := newTestFrame(t, cfg)

	r.Render(open(tracking.Gaze{X: 1}, false), f)

	cy := cfg.Height / 2

	// Eye is hard right; the old center is empty now.
	if rr, g, b := f.RGBAt(cfg.Width/2-cfg.IrisRadius, cy); rr != 0 || g != 0 || b != 0 {
		t.Error("left-of-center should be black with the gaze hard right")
	}

	// The iris edge reaches the right border without clipping off screen.
	edge := cfg.Width - 5
	rr, g, b := f.RGBAt(edge, cy)
	if rr == 0 && g == 0 && b == 0 {
		t.Error("right edge should be inside the shifted iris")
	}
}

func TestRenderer_MirrorX(t *testing.T) {
	cfg := DefaultEyeConfig()
	mirrored := cfg
	mirrored.MirrorX = true

	plain := newTestRenderer(t, cfg)
	flipped := newTestRenderer(t, mirrored)

	a := newTestFrame(t, cfg)
	b := newTestFrame(t, cfg)

	// Mirroring the renderer equals negating the horizontal gaze.
	plain.Render(open(tracking.Gaze{X: -0.5, Y: 0.2}, false), a)
	flipped.Render(open(tracking.Gaze{X: 0.5, Y: 0.2}, false), b)

	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("mirrored render does not match negated gaze")
	}
}

func TestRenderer_EyelidClosed(t *testing.T) {
	cfg := DefaultEyeConfig()
	r := newTestRenderer(t, cfg)
	f := newTestFrame(t, cfg)

	d := animation.Directive{Gaze: tracking.Gaze{}, Eyelid: 0, PupilScale: 1}
	r.Render(d, f)

	for _, p := range f.Pix {
		if p != 0 {
			t.Fatal("closed eyelid should leave the frame black")
		}
	}
}

func TestRenderer_EyelidHalf(t *testing.T) {
	cfg := DefaultEyeConfig()
	r := newTestRenderer(t, cfg)
	f := newTestFrame(t, cfg)

	r.Render(open(tracking.Gaze{}, false), f)
	halfOpen := animation.Directive{Eyelid: 0.5, PupilScale: 1}
	g := newTestFrame(t, cfg)
	r.Render(halfOpen, g)

	cx, cy := cfg.Width/2, cfg.Height/2
	glowR := cfg.IrisRadius + cfg.GlowSize

	// A row just inside the full glow disc is lit when open and
	// occluded at half.
	y := cy - glowR + 3
	x := cx
	if rr, gg, bb := f.RGBAt(x, y); rr == 0 && gg == 0 && bb == 0 {
		t.Error("open eye should light the top of the glow disc")
	}
	if rr, gg, bb := g.RGBAt(x, y); rr != 0 || gg != 0 || bb != 0 {
		t.Error("half-closed eyelid should occlude the top of the glow disc")
	}

	// The equator row is still lit at half.
	ix := cx - cfg.IrisRadius + 10
	if rr, gg, bb := g.RGBAt(ix, cy); rr == 0 && gg == 0 && bb == 0 {
		t.Error("half-closed eye should still show the iris at the equator")
	}
}

func TestRenderer_ExtremeGazeNoClip(t *testing.T) {
	cfg := DefaultEyeConfig()
	r := newTestRenderer(t, cfg)
	f := newTestFrame(t, cfg)

	// Corners of the unit disc: must render without panics and keep
	// all writes in bounds (SetRGB guards, but exercise the loop).
	for _, g := range []tracking.Gaze{
		{X: 1}, {X: -1}, {Y: 1}, {Y: -1},
		(tracking.Gaze{X: 1, Y: 1}).Clamp(),
		(tracking.Gaze{X: -1, Y: -1}).Clamp(),
	} {
		r.Render(open(g, true), f)
	}
}

func TestFrame_SetRGBBounds(t *testing.T) {
	f, err := NewFrame(4, 4)
	if err != nil {
		t.Fatalf("NewFrame: %v", err)
	}
	// Out-of-range writes are ignored, not panics.
	f.SetRGB(-1, 0, 255, 255, 255)
	f.SetRGB(0, -1, 255, 255, 255)
	f.SetRGB(4, 0, 255, 255, 255)
	f.SetRGB(0, 4, 255, 255, 255)
	for _, p := range f.Pix {
		if p != 0 {
			t.Fatal("out-of-bounds write modified the frame")
		}
	}
}

func TestFrame_RGB565RoundTrip(t *testing.T) {
	f, err := NewFrame(2, 2)
	if err != nil {
		t.Fatalf("NewFrame: %v", err)
	}
	f.SetRGB(1, 1, 255, 220, 0)
	r, g, b := f.RGBAt(1, 1)
	// RGB565 keeps the top 5/6/5 bits.
	if r != 248 || g != 220 || b != 0 {
		t.Errorf("round trip: got (%d,%d,%d), want (248,220,0)", r, g, b)
	}
}

func TestNewFrame_RejectsBadDimensions(t *testing.T) {
	if _, err := NewFrame(0, 240); err == nil {
		t.Error("zero width should be rejected")
	}
	if _, err := NewFrame(240, -1); err == nil {
		t.Error("negative height should be rejected")
	}
}
