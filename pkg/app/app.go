// Package app drives the assistant's main loop: camera capture,
// ambient narration, overlay rendering, and voice-session dispatch.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gocv.io/x/gocv"

	"github.com/sightkit/go-sight/pkg/announcer"
	"github.com/sightkit/go-sight/pkg/debug"
	"github.com/sightkit/go-sight/pkg/depth"
	"github.com/sightkit/go-sight/pkg/detection"
	"github.com/sightkit/go-sight/pkg/session"
	"github.com/sightkit/go-sight/pkg/speech"
)

// ErrCameraClosed is returned when the camera stream ends or a frame
// cannot be read. Camera loss is the one fatal condition.
var ErrCameraClosed = errors.New("app: camera stream ended")

// Key bindings for the display window.
const (
	keyQuit = 'q'
	keyAsk  = 'a'
)

// overlayConfidence is the detection floor for on-screen boxes.
const overlayConfidence = 0.5

// drainTimeout bounds how long shutdown waits for in-flight speech and
// voice sessions.
const drainTimeout = 10 * time.Second

// Options holds main loop settings.
type Options struct {
	CameraID    int
	FrameWidth  int
	FrameHeight int
	WindowTitle string
}

// App wires the assistant components into the capture loop.
type App struct {
	opts      Options
	detector  detection.Detector
	estimator *depth.Estimator
	announcer *announcer.Announcer
	speaker   *speech.Speaker
	session   *session.Session
	sup       *Supervisor
	snapshot  Snapshot
	logger    *slog.Logger
}

// New creates the assistant app. The speaker's detached utterances are
// rebound to the app supervisor so shutdown can drain them.
func New(opts Options, detector detection.Detector, estimator *depth.Estimator, ann *announcer.Announcer, speaker *speech.Speaker, sess *session.Session, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.WindowTitle == "" {
		opts.WindowTitle = "go-sight"
	}
	a := &App{
		opts:      opts,
		detector:  detector,
		estimator: estimator,
		announcer: ann,
		speaker:   speaker,
		session:   sess,
		sup:       NewSupervisor(logger),
		logger:    logger.With("component", "app"),
	}
	speaker.SetSpawner(a.sup.Go)
	return a
}

// Run executes the main loop until the context is cancelled, the quit
// key is pressed, or the camera fails. In-flight speech and voice
// sessions are drained (with a timeout) before returning.
func (a *App) Run(ctx context.Context) error {
	webcam, err := gocv.OpenVideoCapture(a.opts.CameraID)
	if err != nil {
		return fmt.Errorf("app: open camera %d: %w", a.opts.CameraID, err)
	}
	defer webcam.Close()

	webcam.Set(gocv.VideoCaptureFrameWidth, float64(a.opts.FrameWidth))
	webcam.Set(gocv.VideoCaptureFrameHeight, float64(a.opts.FrameHeight))

	window := gocv.NewWindow(a.opts.WindowTitle)
	defer window.Close()

	img := gocv.NewMat()
	defer img.Close()

	a.logger.Info("main loop started",
		"camera", a.opts.CameraID,
		"width", a.opts.FrameWidth,
		"height", a.opts.FrameHeight,
	)
	defer a.sup.Drain(drainTimeout)

	for {
		select {
		case <-ctx.Done():
			a.logger.Info("main loop stopped", "reason", ctx.Err())
			return nil
		default:
		}

		if ok := webcam.Read(&img); !ok {
			return ErrCameraClosed
		}
		if img.Empty() {
			continue
		}

		frame, err := encodeJPEG(img)
		if err != nil {
			return fmt.Errorf("app: encode frame: %w", err)
		}
		a.snapshot.Store(frame)

		// Ambient narration only runs while no voice session or
		// utterance is active.
		if !a.speaker.Gate().Busy() {
			a.ambientTick(frame)
		}

		// Overlay drawing always runs for a smooth display.
		a.drawOverlays(&img, frame)
		window.IMShow(img)

		switch window.WaitKey(1) {
		case keyQuit:
			a.logger.Info("quit requested")
			return nil
		case keyAsk:
			snap := a.snapshot.Load()
			a.sup.Go("voice-session", func() {
				a.session.Run(ctx, snap)
			})
		}
	}
}

// ambientTick evaluates one frame for ambient announcements and
// submits each independently; the gate drops all but the first.
func (a *App) ambientTick(frame []byte) {
	dets, err := a.detector.Detect(frame)
	if err != nil {
		a.logger.Warn("ambient detection failed", "error", err)
		return
	}
	for _, ann := range a.announcer.Tick(dets, time.Now()) {
		debug.VisionLog("announcing %q\n", ann.Text)
		a.speaker.Say(ann.Text)
	}
}

// drawOverlays runs detection for display and draws boxes and labels.
func (a *App) drawOverlays(img *gocv.Mat, frame []byte) {
	dets, err := a.detector.Detect(frame)
	if err != nil {
		a.logger.Warn("overlay detection failed", "error", err)
		return
	}
	drawDetections(img, detection.FilterConfidence(dets, overlayConfidence), a.estimator)
}

// encodeJPEG encodes the frame for snapshotting and detection.
func encodeJPEG(img gocv.Mat) ([]byte, error) {
	buf, err := gocv.IMEncode(gocv.JPEGFileExt, img)
	if err != nil {
		return nil, err
	}
	defer buf.Close()

	out := make([]byte, len(buf.GetBytes()))
	copy(out, buf.GetBytes())
	return out, nil
}
