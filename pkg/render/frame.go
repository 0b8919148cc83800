// Package render draws eye frames from animation directives. The
// renderer is pure: identical directive and config always produce an
// identical frame, and two renderers can run concurrently because
// nothing is shared.
package render

import "fmt"

// Frame is a fixed-size RGB565 pixel buffer in the display's native
// byte order (big-endian, as the GC9A01 expects over SPI). Each display
// channel owns exactly one Frame and overwrites it in place every tick.
type Frame struct {
	W, H int
	Pix  []byte // len = W*H*2
}

// NewFrame allocates a zeroed (black) frame.
func NewFrame(w, h int) (*Frame, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("frame dimensions must be positive, got %dx%d", w, h)
	}
	return &Frame{W: w, H: h, Pix: make([]byte, w*h*2)}, nil
}

// SetRGB writes one pixel, converting 8-bit RGB to RGB565.
// Out-of-bounds coordinates are ignored.
func (f *Frame) SetRGB(x, y int, r, g, b uint8) {
	if x < 0 || x >= f.W || y < 0 || y >= f.H {
		return
	}
	v := uint16(r&0xF8)<<8 | uint16(g&0xFC)<<3 | uint16(b)>>3
	off := (y*f.W + x) * 2
	f.Pix[off] = byte(v >> 8)
	f.Pix[off+1] = byte(v)
}

// Fill paints the whole frame with one color.
func (f *Frame) Fill(r, g, b uint8) {
	v := uint16(r&0xF8)<<8 | uint16(g&0xFC)<<3 | uint16(b)>>3
	hi, lo := byte(v>>8), byte(v)
	for i := 0; i < len(f.Pix); i += 2 {
		f.Pix[i] = hi
		f.Pix[i+1] = lo
	}
}

// RGBAt reads back one pixel as 8-bit RGB (lossy through RGB565).
// Used by tests and the preview path.
func (f *Frame) RGBAt(x, y int) (r, g, b uint8) {
	off := (y*f.W + x) * 2
	v := uint16(f.Pix[off])<<8 | uint16(f.Pix[off+1])
	return uint8(v >> 11 << 3), uint8(v >> 5 << 2), uint8(v << 3)
}

// BGRBytes expands the frame to packed 8-bit BGR rows, the layout the
// preview window (OpenCV) expects.
func (f *Frame) BGRBytes() []byte {
	out := make([]byte, f.W*f.H*3)
	for i := 0; i < f.W*f.H; i++ {
		v := uint16(f.Pix[i*2])<<8 | uint16(f.Pix[i*2+1])
		out[i*3] = uint8(v << 3)        // B
		out[i*3+1] = uint8(v >> 5 << 2) // G
		out[i*3+2] = uint8(v >> 11 << 3) // R
	}
	return out
}
