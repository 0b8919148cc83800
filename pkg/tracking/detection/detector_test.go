package detection

import (
	"math"
	"testing"
)

func TestDetection_Center(t *testing.T) {
	d := Detection{X: 0.2, Y: 0.4, W: 0.2, H: 0.2}
	cx, cy := d.Center()
	if math.Abs(cx-0.3) > 1e-9 || math.Abs(cy-0.5) > 1e-9 {
		t.Errorf("Center: got (%v, %v), want (0.3, 0.5)", cx, cy)
	}
}

func TestSelectBest_Empty(t *testing.T) {
	if got := SelectBest(nil); got != nil {
		t.Errorf("SelectBest(nil): got %v, want nil", got)
	}
}

func TestSelectBest_Single(t *testing.T) {
	dets := []Detection{{X: 0.1, Y: 0.1, W: 0.2, H: 0.2, Confidence: 0.4}}
	got := SelectBest(dets)
	if got == nil || *got != dets[0] {
		t.Errorf("SelectBest single: got %v, want %v", got, dets[0])
	}
}

func TestSelectBest_ConfidenceBeatsArea(t *testing.T) {
	confident := Detection{X: 0.1, Y: 0.1, W: 0.1, H: 0.1, Confidence: 0.95}
	large := Detection{X: 0.4, Y: 0.4, W: 0.5, H: 0.5, Confidence: 0.3}
	got := SelectBest([]Detection{large, confident})
	if got == nil || *got != confident {
		t.Errorf("SelectBest: got %v, want the confident detection", got)
	}
}

func TestSelectBest_AreaBreaksNearTies(t *testing.T) {
	small := Detection{X: 0.1, Y: 0.1, W: 0.1, H: 0.1, Confidence: 0.8}
	big := Detection{X: 0.4, Y: 0.4, W: 0.4, H: 0.4, Confidence: 0.8}
	got := SelectBest([]Detection{small, big})
	if got == nil || *got != big {
		t.Errorf("SelectBest: got %v, want the larger detection at equal confidence", got)
	}
}
