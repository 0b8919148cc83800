package camera

import (
	"math"
	"sync"
	"testing"

	"gocv.io/x/gocv"

	"github.com/teslashibe/go-eyes/pkg/tracking/detection"
)

const floatTolerance = 1e-9

func floatEquals(a, b float64) bool {
	return math.Abs(a-b) < floatTolerance
}

// hookRecorder captures FrameHook calls for inspection
type hookRecorder struct {
	mu    sync.Mutex
	calls int
	bests []*detection.Detection
}

func (h *hookRecorder) hook(img *gocv.Mat, best *detection.Detection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.calls++
	h.bests = append(h.bests, best)
}

func TestConfig_Validate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}

	cfg := DefaultConfig()
	cfg.Width = 0
	if err := cfg.Validate(); err == nil {
		t.Error("zero width should be rejected")
	}
	cfg = DefaultConfig()
	cfg.DetectEvery = 0
	if err := cfg.Validate(); err == nil {
		t.Error("zero detect-every should be rejected")
	}
}

func TestSource_ProcessPublishesBest(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MirrorX = false
	s := &Source{cfg: cfg}

	weak := detection.Detection{X: 0.1, Y: 0.1, W: 0.1, H: 0.1, Confidence: 0.2}
	strong := detection.Detection{X: 0.65, Y: 0.4, W: 0.1, H: 0.1, Confidence: 0.9}
	s.process(nil, []detection.Detection{weak, strong})

	got, ok := s.Poll()
	if !ok {
		t.Fatal("Poll should return the published detection")
	}
	// Center (0.7, 0.45) maps to gaze (0.4, -0.1).
	if !floatEquals(got.X, 0.4) || !floatEquals(got.Y, -0.1) {
		t.Errorf("published detection: got (%v, %v), want (0.4, -0.1)", got.X, got.Y)
	}

	// Consume-once: a second poll comes up empty.
	if _, ok := s.Poll(); ok {
		t.Error("Poll handed out the same detection twice")
	}
}

func TestSource_ProcessMirrorsX(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MirrorX = true
	s := &Source{cfg: cfg}

	s.process(nil, []detection.Detection{{X: 0.65, Y: 0.4, W: 0.1, H: 0.1, Confidence: 0.9}})

	got, ok := s.Poll()
	if !ok {
		t.Fatal("Poll should return the published detection")
	}
	if !floatEquals(got.X, -0.4) {
		t.Errorf("mirrored X: got %v, want -0.4", got.X)
	}
}

func TestSource_ProcessNoDetections(t *testing.T) {
	s := &Source{cfg: DefaultConfig()}
	s.process(nil, nil)
	if _, ok := s.Poll(); ok {
		t.Error("empty detection set must not publish")
	}
}

func TestSource_FrameHookSeesEveryFrame(t *testing.T) {
	rec := &hookRecorder{}
	s := &Source{cfg: DefaultConfig()}
	s.SetFrameHook(rec.hook)

	d := detection.Detection{X: 0.4, Y: 0.4, W: 0.2, H: 0.2, Confidence: 0.8}
	s.process(nil, []detection.Detection{d})
	s.process(nil, nil)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if rec.calls != 2 {
		t.Fatalf("hook calls: got %d, want 2", rec.calls)
	}
	if rec.bests[0] == nil || *rec.bests[0] != d {
		t.Errorf("hook selection on hit: got %v, want %v", rec.bests[0], d)
	}
	if rec.bests[1] != nil {
		t.Errorf("hook selection on miss: got %v, want nil", rec.bests[1])
	}
}
