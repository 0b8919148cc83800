package render

import "fmt"

// RGB is an 8-bit color triple.
type RGB struct {
	R, G, B uint8
}

// EyeConfig holds the per-eye drawing constants. Supplied once at
// construction; the renderer never mutates it.
type EyeConfig struct {
	Width  int // Frame width in pixels
	Height int // Frame height in pixels

	IrisRadius int     // Iris radius in pixels
	GlowSize   int     // How far the glow extends beyond the iris
	GlowLevel  float64 // Glow brightness relative to the iris color (0-1)

	// Pupil geometry. The idle pupil is a narrow cat slit; the tracked
	// pupil is round. Both sizes are relative to the iris radius.
	IdlePupilSize    float64 // e.g. 0.8
	IdlePupilWidth   float64 // slit width as a fraction of pupil size, e.g. 0.2
	TrackedPupilSize float64 // e.g. 0.6

	IdleColor    RGB // Iris color with no target (yellow on the prop)
	TrackedColor RGB // Iris color while locked on (red on the prop)

	// MirrorX flips the horizontal gaze offset so the two eyes can
	// converge instead of staring in parallel.
	MirrorX bool
}

// DefaultEyeConfig returns the prop's standard 240x240 eye.
func DefaultEyeConfig() EyeConfig {
	return EyeConfig{
		Width:            240,
		Height:           240,
		IrisRadius:       50,
		GlowSize:         15,
		GlowLevel:        0.3,
		IdlePupilSize:    0.8,
		IdlePupilWidth:   0.2,
		TrackedPupilSize: 0.6,
		IdleColor:        RGB{255, 220, 0},
		TrackedColor:     RGB{255, 0, 0},
	}
}

// Validate checks the drawing constants. Fatal at startup only.
func (c EyeConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("eye dimensions must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.IrisRadius <= 0 {
		return fmt.Errorf("iris radius must be positive, got %d", c.IrisRadius)
	}
	if c.IrisRadius+c.GlowSize > c.Width/2 || c.IrisRadius+c.GlowSize > c.Height/2 {
		return fmt.Errorf("iris radius %d + glow %d exceeds half the %dx%d frame",
			c.IrisRadius, c.GlowSize, c.Width, c.Height)
	}
	if c.GlowSize < 0 {
		return fmt.Errorf("glow size must not be negative, got %d", c.GlowSize)
	}
	if c.GlowLevel < 0 || c.GlowLevel > 1 {
		return fmt.Errorf("glow level must be in [0, 1], got %v", c.GlowLevel)
	}
	if c.IdlePupilSize <= 0 || c.IdlePupilSize > 1 {
		return fmt.Errorf("idle pupil size must be in (0, 1], got %v", c.IdlePupilSize)
	}
	if c.IdlePupilWidth <= 0 || c.IdlePupilWidth > 1 {
		return fmt.Errorf("idle pupil width must be in (0, 1], got %v", c.IdlePupilWidth)
	}
	if c.TrackedPupilSize <= 0 || c.TrackedPupilSize > 1 {
		return fmt.Errorf("tracked pupil size must be in (0, 1], got %v", c.TrackedPupilSize)
	}
	return nil
}
