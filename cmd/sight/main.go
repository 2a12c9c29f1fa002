// Sight is a wearable vision assistant: it narrates nearby objects with
// distance estimates and answers spoken questions about the scene.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/sightkit/go-sight/internal/config"
	"github.com/sightkit/go-sight/internal/log"
	"github.com/sightkit/go-sight/pkg/announcer"
	"github.com/sightkit/go-sight/pkg/app"
	"github.com/sightkit/go-sight/pkg/audio"
	"github.com/sightkit/go-sight/pkg/debug"
	"github.com/sightkit/go-sight/pkg/depth"
	"github.com/sightkit/go-sight/pkg/detection"
	"github.com/sightkit/go-sight/pkg/interpreter"
	"github.com/sightkit/go-sight/pkg/ocr"
	"github.com/sightkit/go-sight/pkg/session"
	"github.com/sightkit/go-sight/pkg/speech"
	"github.com/sightkit/go-sight/pkg/stt"
	"github.com/sightkit/go-sight/pkg/tts"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "sight: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Best effort; credentials may come from the real environment.
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	logLevel := flag.String("log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	debugFlag := flag.Bool("debug", false, "Enable verbose debug logging")
	debugVision := flag.Bool("debug-vision", false, "Enable per-frame detection logging")
	modelPath := flag.String("model", cfg.ModelPath, "Path to YOLOv8 ONNX model")
	cameraID := flag.Int("camera", cfg.CameraID, "Camera device ID")
	flag.Parse()

	cfg.LogLevel = *logLevel
	cfg.ModelPath = *modelPath
	cfg.CameraID = *cameraID
	debug.Enabled = *debugFlag
	debug.Vision = *debugVision

	if err := cfg.Validate(); err != nil {
		return err
	}

	log.Init(cfg.LogLevel)
	logger := log.L()

	estimator := depth.NewEstimator(cfg.FocalLengthPx, cfg.KnownWidths)

	yoloCfg := detection.DefaultYOLOConfig()
	yoloCfg.ModelPath = cfg.ModelPath
	detector, err := detection.NewYOLO(yoloCfg)
	if err != nil {
		return err
	}
	defer detector.Close()

	openaiTTS, err := tts.NewOpenAI(
		tts.WithAPIKey(cfg.OpenAIKey),
		tts.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("tts: %w", err)
	}

	// Single-provider chain today; fallback providers slot in here.
	synth, err := tts.NewChain(openaiTTS)
	if err != nil {
		return fmt.Errorf("tts: %w", err)
	}
	defer synth.Close()

	player := audio.NewExecPlayer(cfg.PlayerArgs()...)

	gate := &speech.Gate{}
	speaker := speech.NewSpeaker(gate, synth, player, logger)

	transcriber, err := stt.NewWhisper(cfg.OpenAIKey, logger)
	if err != nil {
		return fmt.Errorf("stt: %w", err)
	}
	recognizer, err := stt.NewMicRecognizer(transcriber, stt.DefaultListenConfig(), logger)
	if err != nil {
		return fmt.Errorf("mic: %w", err)
	}
	defer recognizer.Close()

	reader, err := ocr.NewTesseract(cfg.OCRLanguage)
	if err != nil {
		return fmt.Errorf("ocr: %w", err)
	}
	defer reader.Close()

	interp := interpreter.New(detector, estimator, reader, speaker, logger)
	sess := session.New(speaker, recognizer, interp, logger)

	ann := announcer.New(estimator, announcer.Config{
		MinConfidence: announcer.DefaultConfig().MinConfidence,
		Cooldown:      cfg.AnnounceCooldown,
		MaxIdle:       cfg.AnnounceMaxIdle,
	})

	a := app.New(app.Options{
		CameraID:    cfg.CameraID,
		FrameWidth:  cfg.FrameWidth,
		FrameHeight: cfg.FrameHeight,
	}, detector, estimator, ann, speaker, sess, logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := a.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("shutdown complete")
	return nil
}
