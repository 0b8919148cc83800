package detection

import (
	"image"
	"sync"

	"gocv.io/x/gocv"
)

// Motion detection working resolution. Frames are downsampled this far
// before differencing; coarse enough to be cheap, fine enough to localize
// a person crossing the camera's view.
const (
	motionCols = 80
	motionRows = 60
)

// MotionDetector finds the centroid of inter-frame motion. It keeps the
// previous downsampled grayscale frame and reports a single fake bounding
// box around the motion centroid, so it slots in behind the same Detector
// interface as the face backend.
type MotionDetector struct {
	config Config

	mu       sync.Mutex
	prev     gocv.Mat
	havePrev bool
}

// NewMotion creates a frame-difference motion detector.
func NewMotion(cfg Config) *MotionDetector {
	return &MotionDetector{
		config: cfg,
		prev:   gocv.NewMat(),
	}
}

// Detect diffs the frame against the previous one and returns the motion
// centroid, if any. No blur, no dilation, moments instead of contours;
// this runs on every polled frame so it has to stay cheap.
func (d *MotionDetector) Detect(img *gocv.Mat) ([]Detection, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	gray := gocv.NewMat()
	defer gray.Close()
	if img.Channels() > 1 {
		gocv.CvtColor(*img, &gray, gocv.ColorBGRToGray)
	} else {
		img.CopyTo(&gray)
	}

	tiny := gocv.NewMat()
	defer tiny.Close()
	gocv.Resize(gray, &tiny, image.Pt(motionCols, motionRows), 0, 0, gocv.InterpolationNearestNeighbor)

	if !d.havePrev {
		tiny.CopyTo(&d.prev)
		d.havePrev = true
		return nil, nil
	}

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(d.prev, tiny, &diff)

	thresh := gocv.NewMat()
	defer thresh.Close()
	gocv.Threshold(diff, &thresh, float32(d.config.MotionThreshold), 255, gocv.ThresholdBinary)

	tiny.CopyTo(&d.prev)

	moments := gocv.Moments(thresh, true)
	mass := moments["m00"]
	if mass < d.config.MinMotionArea {
		return nil, nil
	}

	cx := moments["m10"] / mass / motionCols
	cy := moments["m01"] / mass / motionRows

	// Synthesize a small box around the centroid. Confidence scales with
	// how much of the frame moved, capped at 1.
	conf := mass / (motionCols * motionRows)
	if conf > 1 {
		conf = 1
	}
	const boxSize = 0.12
	return []Detection{{
		X:          cx - boxSize/2,
		Y:          cy - boxSize/2,
		W:          boxSize,
		H:          boxSize,
		Confidence: conf,
	}}, nil
}

// Close releases the retained previous frame.
func (d *MotionDetector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.prev.Close()
}
