package eyes

import (
	"gocv.io/x/gocv"

	"github.com/teslashibe/go-eyes/internal/log"
	"github.com/teslashibe/go-eyes/pkg/render"
)

// previewWindow mirrors the two rendered eyes into a desktop window.
// Purely an output-stage convenience for bench-top tuning; the control
// loop behaves identically with it off.
type previewWindow struct {
	win  *gocv.Window
	w, h int
}

// openPreview creates the window sized for two side-by-side eyes.
func openPreview(w, h int) *previewWindow {
	return &previewWindow{
		win: gocv.NewWindow("go-eyes"),
		w:   w,
		h:   h,
	}
}

// show blits both frames side by side. Conversion goes through the
// frames' BGR expansion, so the preview shows exactly the RGB565
// quantization the panels receive.
func (p *previewWindow) show(left, right *render.Frame) {
	combined := make([]byte, p.w*2*p.h*3)
	lb := left.BGRBytes()
	rb := right.BGRBytes()
	rowBytes := p.w * 3
	for y := 0; y < p.h; y++ {
		copy(combined[y*rowBytes*2:], lb[y*rowBytes:(y+1)*rowBytes])
		copy(combined[y*rowBytes*2+rowBytes:], rb[y*rowBytes:(y+1)*rowBytes])
	}

	img, err := gocv.NewMatFromBytes(p.h, p.w*2, gocv.MatTypeCV8UC3, combined)
	if err != nil {
		log.Warn("preview mat", "error", err)
		return
	}
	defer img.Close()

	p.win.IMShow(img)
	p.win.WaitKey(1)
}

// close tears the window down.
func (p *previewWindow) close() {
	if err := p.win.Close(); err != nil {
		log.Warn("preview close", "error", err)
	}
}
