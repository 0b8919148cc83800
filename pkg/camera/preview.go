package camera

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/teslashibe/go-eyes/internal/log"
	"github.com/teslashibe/go-eyes/pkg/tracking/detection"
)

// FeedWindow shows the raw camera feed with the selected detection
// boxed, for aiming the camera and tuning the detector. Its Show method
// is a FrameHook; the window is created lazily so all GUI work happens
// in the capture goroutine.
type FeedWindow struct {
	win *gocv.Window
}

// NewFeedWindow returns a feed window that opens on the first frame.
func NewFeedWindow() *FeedWindow {
	return &FeedWindow{}
}

// Show draws the winning detection onto the frame and displays it.
func (f *FeedWindow) Show(img *gocv.Mat, best *detection.Detection) {
	if img == nil || img.Empty() {
		return
	}
	if f.win == nil {
		f.win = gocv.NewWindow("camera feed")
	}

	if best != nil {
		w := float64(img.Cols())
		h := float64(img.Rows())
		rect := image.Rect(
			int(best.X*w), int(best.Y*h),
			int((best.X+best.W)*w), int((best.Y+best.H)*h),
		)
		gocv.Rectangle(img, rect, color.RGBA{G: 255}, 2)
	}

	f.win.IMShow(*img)
	f.win.WaitKey(1)
}

// Close tears the window down if it was ever opened.
func (f *FeedWindow) Close() {
	if f.win == nil {
		return
	}
	if err := f.win.Close(); err != nil {
		log.Warn("feed window close", "error", err)
	}
}
