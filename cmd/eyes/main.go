// Animated eyes prop - dual round displays tracking faces/motion
//
// Renders a pair of eyes on two GC9A01 displays. Pupils follow whatever
// the camera sees; with nobody around the eyes wander and blink on
// their own.
package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"
	"time"

	"github.com/teslashibe/go-eyes/internal/config"
	"github.com/teslashibe/go-eyes/internal/log"
	"github.com/teslashibe/go-eyes/pkg/camera"
	"github.com/teslashibe/go-eyes/pkg/display"
	"github.com/teslashibe/go-eyes/pkg/eyes"
	"github.com/teslashibe/go-eyes/pkg/tracking"
	"github.com/teslashibe/go-eyes/pkg/tracking/detection"
)

func main() {
	debug := flag.Bool("debug", false, "Enable verbose debug logging")
	preview := flag.Bool("preview", false, "Open a desktop window mirroring the eyes")
	bench := flag.Bool("bench", false, "Bypass displays and measure render+loop throughput")
	rate := flag.Int("rate", 30, "Control loop rate in Hz")
	device := flag.Int("device", config.CameraDevice(), "Camera device index")
	noCamera := flag.Bool("no-camera", false, "Run without a camera (idle behavior only)")
	detectorKind := flag.String("detector", "motion", "Detection backend: motion or face")
	modelPath := flag.String("model", detection.DefaultConfig().ModelPath, "YuNet ONNX model path (face detector)")
	converge := flag.Bool("converge", false, "Mirror the right eye so the pair converges")
	flag.Parse()

	if *debug {
		log.Init("debug")
	} else {
		log.Init("info")
	}

	cfg := eyes.DefaultConfig()
	if *rate > 0 {
		cfg.Tick = time.Second / time.Duration(*rate)
	} else {
		cfg.Tick = 0 // rejected by Validate below
	}
	cfg.Preview = *preview
	cfg.Bench = *bench
	cfg.RightEye.MirrorX = *converge

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	source := openSource(*noCamera, *device, *detectorKind, *modelPath)
	if source != nil {
		if *preview {
			feed := camera.NewFeedWindow()
			source.SetFrameHook(feed.Show)
			defer feed.Close()
		}
		go source.Run(ctx)
		defer func() {
			cancel()
			if err := source.Close(); err != nil {
				log.Warn("camera close", "error", err)
			}
		}()
	}

	left := openTransport("left", config.LeftSPI(), config.DefaultLeftDC, config.DefaultLeftRST, *bench)
	right := openTransport("right", config.RightSPI(), config.DefaultRightDC, config.DefaultRightRST, *bench)

	var src tracking.Source
	if source != nil {
		src = source
	}
	ctrl, err := eyes.New(cfg, src, left, right)
	if err != nil {
		log.Error("configuration error", "error", err)
		return
	}

	if err := ctrl.Run(ctx); err != nil {
		log.Error("runtime error", "error", err)
	}
}

// openTransport opens one display, falling back to a discard transport
// so a single dead screen never takes the prop down.
func openTransport(name, port, dc, rst string, bench bool) display.Transport {
	if bench {
		return display.NewDiscard()
	}
	t, err := display.OpenGC9A01(display.DefaultGC9A01Config(port, dc, rst))
	if err != nil {
		log.Error("display unavailable, continuing without it", "channel", name, "error", err)
		return display.NewDiscard()
	}
	return t
}

// openSource builds the camera-backed gaze source, or nil when running
// blind. A missing camera degrades to idle-only animation.
func openSource(noCamera bool, device int, kind, model string) *camera.Source {
	if noCamera {
		return nil
	}

	detCfg := detection.DefaultConfig()
	detCfg.ModelPath = model

	var det detection.Detector
	switch kind {
	case "face":
		d, err := detection.NewYuNet(detCfg)
		if err != nil {
			log.Warn("face detector unavailable, falling back to motion", "error", err)
			det = detection.NewMotion(detCfg)
		} else {
			det = d
		}
	default:
		det = detection.NewMotion(detCfg)
	}

	camCfg := camera.DefaultConfig()
	camCfg.Device = device
	source, err := camera.Open(camCfg, det)
	if err != nil {
		log.Warn("camera unavailable, running idle-only", "error", err)
		return nil
	}
	return source
}
