package render

import (
	"github.com/teslashibe/go-eyes/pkg/animation"
)

// Renderer draws one eye. Construct one per display channel; Render has
// no hidden state so left and right may run concurrently.
type Renderer struct {
	cfg EyeConfig
}

// NewRenderer validates the eye config and returns a renderer.
func NewRenderer(cfg EyeConfig) (*Renderer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Renderer{cfg: cfg}, nil
}

// Config returns the renderer's eye constants.
func (r *Renderer) Config() EyeConfig {
	return r.cfg
}

// Render draws the directive into dst, overwriting it entirely.
// The whole eye (glow, iris, pupil, highlight) shifts with the gaze;
// the eyelid band occludes it proportionally to 1 - Eyelid.
func (r *Renderer) Render(d animation.Directive, dst *Frame) {
	cfg := r.cfg

	if d.Eyelid <= 0 {
		dst.Fill(0, 0, 0)
		return
	}

	gx := d.Gaze.X
	if cfg.MirrorX {
		gx = -gx
	}
	gy := d.Gaze.Y

	// Eye center. Travel keeps the iris fully on screen at |gaze| = 1.
	travelX := float64(cfg.Width)/2 - float64(cfg.IrisRadius)
	travelY := float64(cfg.Height)/2 - float64(cfg.IrisRadius)
	ex := float64(cfg.Width)/2 + gx*travelX
	ey := float64(cfg.Height)/2 + gy*travelY

	irisR := float64(cfg.IrisRadius)
	glowR := irisR + float64(cfg.GlowSize)

	// Pupil geometry: round when tracked, cat slit when idle.
	var pupilHalfW, pupilHalfH float64
	if d.Tracking {
		pr := irisR * cfg.TrackedPupilSize * d.PupilScale
		pupilHalfW, pupilHalfH = pr, pr
	} else {
		pr := irisR * cfg.IdlePupilSize * d.PupilScale
		pupilHalfW, pupilHalfH = pr*cfg.IdlePupilWidth, pr
	}

	iris := cfg.IdleColor
	if d.Tracking {
		iris = cfg.TrackedColor
	}
	glow := RGB{
		R: uint8(float64(iris.R) * cfg.GlowLevel),
		G: uint8(float64(iris.G) * cfg.GlowLevel),
		B: uint8(float64(iris.B) * cfg.GlowLevel),
	}

	// Highlight: small white catch-light offset toward the upper right.
	hlX := ex + irisR*0.2
	hlY := ey - irisR*0.1
	hlR := irisR * 0.25

	// Eyelid band: rows outside it stay black. Fully open covers the
	// whole glow disc, fully closed covers nothing.
	lidHalf := glowR * clamp01(d.Eyelid)
	lidTop := ey - lidHalf
	lidBottom := ey + lidHalf

	dst.Fill(0, 0, 0)

	y0 := int(ey - glowR)
	y1 := int(ey + glowR)
	x0 := int(ex - glowR)
	x1 := int(ex + glowR)

	for y := y0; y <= y1; y++ {
		if y < 0 || y >= cfg.Height {
			continue
		}
		fy := float64(y)
		if fy < lidTop || fy > lidBottom {
			continue
		}
		dy := fy - ey
		for x := x0; x <= x1; x++ {
			if x < 0 || x >= cfg.Width {
				continue
			}
			dx := float64(x) - ex
			d2 := dx*dx + dy*dy

			if d2 > glowR*glowR {
				continue
			}

			// Innermost shape wins: pupil, then highlight, then iris,
			// then glow.
			nx := dx / pupilHalfW
			ny := dy / pupilHalfH
			if nx*nx+ny*ny <= 1 {
				dst.SetRGB(x, y, 0, 0, 0)
				continue
			}

			hdx := float64(x) - hlX
			hdy := fy - hlY
			if d2 <= irisR*irisR {
				if hdx*hdx+hdy*hdy <= hlR*hlR {
					dst.SetRGB(x, y, 255, 255, 255)
					continue
				}
				dst.SetRGB(x, y, iris.R, iris.G, iris.B)
				continue
			}

			dst.SetRGB(x, y, glow.R, glow.G, glow.B)
		}
	}
}

// clamp01 limits v to [0, 1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
