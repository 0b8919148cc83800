// Package camera adapts a V4L2 camera plus a vision detector into the
// gaze source the control loop polls. Capture runs in its own goroutine
// at the camera's pace; the loop only ever reads the latest result, so
// a stalled sensor can never stall the animation.
package camera

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gocv.io/x/gocv"

	"github.com/teslashibe/go-eyes/internal/log"
	"github.com/teslashibe/go-eyes/pkg/tracking"
	"github.com/teslashibe/go-eyes/pkg/tracking/detection"
)

// Config holds camera source parameters.
type Config struct {
	Device      int // V4L2 device index
	Width       int // Capture width
	Height      int // Capture height
	DetectEvery int // Run the detector every Nth frame

	// MirrorX flips the horizontal axis so the eyes look toward the
	// target instead of away from it (camera faces the viewer).
	MirrorX bool
}

// DefaultConfig returns low-resolution capture tuned for a Pi.
func DefaultConfig() Config {
	return Config{
		Device:      0,
		Width:       320,
		Height:      240,
		DetectEvery: 3,
		MirrorX:     true,
	}
}

// Validate checks the capture parameters.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("capture dimensions must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.DetectEvery < 1 {
		return fmt.Errorf("detect-every must be at least 1, got %d", c.DetectEvery)
	}
	return nil
}

// FrameHook receives each analyzed camera frame and the detection that
// won selection, or nil when nothing was found. Called from the capture
// goroutine; the frame is only valid for the duration of the call.
type FrameHook func(img *gocv.Mat, best *detection.Detection)

// Source polls the camera and publishes the newest detection. It
// implements tracking.Source.
type Source struct {
	cfg      Config
	capture  *gocv.VideoCapture
	detector detection.Detector
	hook     FrameHook

	mu     sync.Mutex
	latest tracking.Detection
	has    bool

	lastWarn time.Time
	done     chan struct{}
}

// Open opens the camera device and wraps it with the given detector.
// The capture loop starts when Run is called.
func Open(cfg Config, det detection.Detector) (*Source, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	capture, err := gocv.VideoCaptureDevice(cfg.Device)
	if err != nil {
		return nil, fmt.Errorf("open camera %d: %w", cfg.Device, err)
	}
	capture.Set(gocv.VideoCaptureFrameWidth, float64(cfg.Width))
	capture.Set(gocv.VideoCaptureFrameHeight, float64(cfg.Height))

	return &Source{
		cfg:      cfg,
		capture:  capture,
		detector: det,
		done:     make(chan struct{}),
	}, nil
}

// Run captures frames until the context is canceled. Call from its own
// goroutine. Capture or detection failures degrade to "no detection"
// and are logged with suppression; they never propagate.
func (s *Source) Run(ctx context.Context) {
	defer close(s.done)

	img := gocv.NewMat()
	defer img.Close()

	frame := 0
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if ok := s.capture.Read(&img); !ok || img.Empty() {
			s.warn("camera read failed, retrying")
			time.Sleep(100 * time.Millisecond)
			continue
		}

		frame++
		if frame%s.cfg.DetectEvery != 0 {
			continue
		}

		dets, err := s.detector.Detect(&img)
		if err != nil {
			s.warn("detection failed", "error", err)
			continue
		}
		s.process(&img, dets)
	}
}

// SetFrameHook installs the preview hook. Must be called before Run.
func (s *Source) SetFrameHook(hook FrameHook) {
	s.hook = hook
}

// process selects the best detection, feeds the preview hook, and
// publishes the normalized result for Poll.
func (s *Source) process(img *gocv.Mat, dets []detection.Detection) {
	best := detection.SelectBest(dets)
	if s.hook != nil {
		s.hook(img, best)
	}
	if best == nil {
		return
	}

	cx, cy := best.Center()
	// Camera-normalized [0,1] to gaze-normalized [-1,1].
	x := cx*2 - 1
	y := cy*2 - 1
	if s.cfg.MirrorX {
		x = -x
	}

	s.mu.Lock()
	s.latest = tracking.Detection{X: x, Y: y, Time: time.Now()}
	s.has = true
	s.mu.Unlock()
}

// Poll returns the newest unconsumed detection, if any. Each detection
// is handed out exactly once.
func (s *Source) Poll() (tracking.Detection, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.has {
		return tracking.Detection{}, false
	}
	s.has = false
	return s.latest, true
}

// Close waits for the capture loop to stop and releases the camera and
// detector. Call only after the Run context is canceled.
func (s *Source) Close() error {
	<-s.done
	if err := s.detector.Close(); err != nil {
		log.Warn("detector close", "error", err)
	}
	return s.capture.Close()
}

// warn logs at most one warning per five seconds so a dead sensor does
// not flood the log at capture rate.
func (s *Source) warn(msg string, args ...any) {
	if time.Since(s.lastWarn) < 5*time.Second {
		return
	}
	s.lastWarn = time.Now()
	log.Warn(msg, args...)
}
