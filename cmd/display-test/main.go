// Hardware smoke test for the dual GC9A01 displays.
//
// Cycles solid colors on each screen, sweeps the eyes left to right,
// and plays a blink so wiring and refresh rate can be checked without
// the camera or the full control loop.
package main

import (
	"flag"
	"math"
	"time"

	"github.com/teslashibe/go-eyes/internal/config"
	"github.com/teslashibe/go-eyes/internal/log"
	"github.com/teslashibe/go-eyes/pkg/animation"
	"github.com/teslashibe/go-eyes/pkg/display"
	"github.com/teslashibe/go-eyes/pkg/render"
	"github.com/teslashibe/go-eyes/pkg/tracking"
)

func main() {
	debug := flag.Bool("debug", false, "Enable verbose debug logging")
	sweepSecs := flag.Int("sweep", 5, "Seconds to run the gaze sweep")
	flag.Parse()

	if *debug {
		log.Init("debug")
	} else {
		log.Init("info")
	}

	left, err := display.OpenGC9A01(display.DefaultGC9A01Config(config.LeftSPI(), config.DefaultLeftDC, config.DefaultLeftRST))
	if err != nil {
		log.Error("left display init failed", "error", err)
		return
	}
	defer left.Close()

	right, err := display.OpenGC9A01(display.DefaultGC9A01Config(config.RightSPI(), config.DefaultRightDC, config.DefaultRightRST))
	if err != nil {
		log.Error("right display init failed", "error", err)
		return
	}
	defer right.Close()

	frame, err := render.NewFrame(display.GC9A01Width, display.GC9A01Height)
	if err != nil {
		log.Error("frame alloc failed", "error", err)
		return
	}

	log.Info("solid color test")
	colors := []render.RGB{
		{R: 255}, {G: 255}, {B: 255}, {R: 255, G: 220},
	}
	for _, c := range colors {
		frame.Fill(c.R, c.G, c.B)
		writeBoth(left, right, frame)
		time.Sleep(500 * time.Millisecond)
	}

	leftCfg := render.DefaultEyeConfig()
	rightCfg := render.DefaultEyeConfig()
	leftRen, err := render.NewRenderer(leftCfg)
	if err != nil {
		log.Error("renderer init failed", "error", err)
		return
	}
	rightRen, err := render.NewRenderer(rightCfg)
	if err != nil {
		log.Error("renderer init failed", "error", err)
		return
	}
	rightFrame, err := render.NewFrame(display.GC9A01Width, display.GC9A01Height)
	if err != nil {
		log.Error("frame alloc failed", "error", err)
		return
	}

	log.Info("gaze sweep test", "seconds", *sweepSecs)
	start := time.Now()
	frames := 0
	for time.Since(start) < time.Duration(*sweepSecs)*time.Second {
		t := time.Since(start).Seconds()
		d := animation.Directive{
			Gaze:       tracking.Gaze{X: math.Sin(t * 2), Y: 0.3 * math.Sin(t*0.7)},
			Eyelid:     1,
			PupilScale: 1,
		}
		leftRen.Render(d, frame)
		rightRen.Render(d, rightFrame)
		if err := left.WriteFrame(frame.Pix); err != nil {
			log.Warn("left write failed", "error", err)
		}
		if err := right.WriteFrame(rightFrame.Pix); err != nil {
			log.Warn("right write failed", "error", err)
		}
		frames++
	}
	elapsed := time.Since(start).Seconds()
	log.Info("sweep done", "frames", frames, "fps", float64(frames)/elapsed)

	log.Info("blink test")
	for _, lid := range []float64{1, 0.6, 0.2, 0, 0.2, 0.6, 1} {
		d := animation.Directive{Eyelid: lid, PupilScale: 1}
		leftRen.Render(d, frame)
		rightRen.Render(d, rightFrame)
		left.WriteFrame(frame.Pix)
		right.WriteFrame(rightFrame.Pix)
		time.Sleep(40 * time.Millisecond)
	}
	time.Sleep(time.Second)

	frame.Fill(0, 0, 0)
	writeBoth(left, right, frame)
	log.Info("display test complete")
}

func writeBoth(left, right *display.GC9A01, f *render.Frame) {
	if err := left.WriteFrame(f.Pix); err != nil {
		log.Warn("left write failed", "error", err)
	}
	if err := right.WriteFrame(f.Pix); err != nil {
		log.Warn("right write failed", "error", err)
	}
}
