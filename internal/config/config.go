// Package config provides configuration for the go-sight assistant.
// Values come from environment variables (optionally loaded from a .env
// file by the caller) with sensible defaults for everything except
// credentials.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sightkit/go-sight/pkg/depth"
)

// Defaults for the capture and announcement pipeline.
const (
	DefaultModelPath   = "models/yolov8n.onnx"
	DefaultCameraID    = 0
	DefaultFrameWidth  = 1280
	DefaultFrameHeight = 720
	DefaultCooldown    = 10 * time.Second
	DefaultMaxIdle     = 10 * time.Minute
)

// Config holds all assistant settings.
type Config struct {
	// Logging
	LogLevel string

	// Camera
	CameraID    int
	FrameWidth  int
	FrameHeight int

	// Detection
	ModelPath string

	// Distance estimation
	FocalLengthPx float64
	KnownWidths   []depth.Entry

	// Ambient announcements
	AnnounceCooldown time.Duration
	AnnounceMaxIdle  time.Duration // 0 disables eviction

	// Speech services
	OpenAIKey string

	// Audio playback command with optional flags, e.g. "mpg123 -q";
	// empty means autodetect a player binary
	PlayerCommand string

	// OCR language passed to Tesseract
	OCRLanguage string
}

// Default returns a Config with built-in defaults and no credentials.
func Default() Config {
	return Config{
		LogLevel:         "info",
		CameraID:         DefaultCameraID,
		FrameWidth:       DefaultFrameWidth,
		FrameHeight:      DefaultFrameHeight,
		ModelPath:        DefaultModelPath,
		FocalLengthPx:    depth.DefaultFocalLengthPx,
		KnownWidths:      depth.DefaultEntries(),
		AnnounceCooldown: DefaultCooldown,
		AnnounceMaxIdle:  DefaultMaxIdle,
		OCRLanguage:      "eng",
	}
}

// FromEnv builds a Config from SIGHT_* environment variables layered on
// top of Default. OPENAI_API_KEY is read for credentials.
func FromEnv() (Config, error) {
	cfg := Default()

	cfg.LogLevel = envOr("SIGHT_LOG_LEVEL", cfg.LogLevel)
	cfg.ModelPath = envOr("SIGHT_MODEL", cfg.ModelPath)
	cfg.OpenAIKey = os.Getenv("OPENAI_API_KEY")
	cfg.PlayerCommand = envOr("SIGHT_AUDIO_PLAYER", cfg.PlayerCommand)
	cfg.OCRLanguage = envOr("SIGHT_OCR_LANG", cfg.OCRLanguage)

	var err error
	if cfg.CameraID, err = envInt("SIGHT_CAMERA", cfg.CameraID); err != nil {
		return cfg, err
	}
	if cfg.FrameWidth, err = envInt("SIGHT_FRAME_WIDTH", cfg.FrameWidth); err != nil {
		return cfg, err
	}
	if cfg.FrameHeight, err = envInt("SIGHT_FRAME_HEIGHT", cfg.FrameHeight); err != nil {
		return cfg, err
	}
	if cfg.FocalLengthPx, err = envFloat("SIGHT_FOCAL_LENGTH", cfg.FocalLengthPx); err != nil {
		return cfg, err
	}
	if cfg.AnnounceCooldown, err = envDuration("SIGHT_COOLDOWN", cfg.AnnounceCooldown); err != nil {
		return cfg, err
	}
	if cfg.AnnounceMaxIdle, err = envDuration("SIGHT_MAX_IDLE", cfg.AnnounceMaxIdle); err != nil {
		return cfg, err
	}

	if raw := os.Getenv("SIGHT_KNOWN_WIDTHS"); raw != "" {
		entries, err := ParseKnownWidths(raw)
		if err != nil {
			return cfg, err
		}
		cfg.KnownWidths = entries
	}

	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.OpenAIKey == "" {
		return errors.New("config: OPENAI_API_KEY is required for speech services")
	}
	if c.ModelPath == "" {
		return errors.New("config: detection model path is required")
	}
	if c.FocalLengthPx <= 0 {
		return errors.New("config: focal length must be positive")
	}
	if len(c.KnownWidths) == 0 {
		return errors.New("config: known-width table must not be empty")
	}
	if c.AnnounceCooldown <= 0 {
		return errors.New("config: announcement cooldown must be positive")
	}
	return nil
}

// PlayerArgs splits the configured player command into argv form.
// Returns nil when no command is configured, which selects autodetection.
func (c *Config) PlayerArgs() []string {
	return strings.Fields(c.PlayerCommand)
}

// ParseKnownWidths parses a known-width table of the form
// "person=0.5,car=1.8". Entry order is preserved, since question
// parsing matches labels in table order.
func ParseKnownWidths(raw string) ([]depth.Entry, error) {
	var entries []depth.Entry
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		label, value, found := strings.Cut(part, "=")
		if !found {
			return nil, fmt.Errorf("config: malformed known-width entry %q", part)
		}
		width, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("config: known width for %q: %w", label, err)
		}
		if width <= 0 {
			return nil, fmt.Errorf("config: known width for %q must be positive", label)
		}
		entries = append(entries, depth.Entry{
			Label:       strings.TrimSpace(label),
			WidthMeters: width,
		})
	}
	if len(entries) == 0 {
		return nil, errors.New("config: empty known-width table")
	}
	return entries, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return n, nil
}

func envFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return f, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return d, nil
}
