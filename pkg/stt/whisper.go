package stt

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// Whisper transcribes audio via the OpenAI transcription API.
type Whisper struct {
	client *openai.Client
	logger *slog.Logger
	model  string
}

// NewWhisper creates a Whisper transcriber.
func NewWhisper(apiKey string, logger *slog.Logger) (*Whisper, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("stt: API key required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Whisper{
		client: openai.NewClient(apiKey),
		logger: logger.With("component", "stt.whisper"),
		model:  openai.Whisper1,
	}, nil
}

// Transcribe sends the WAV recording for transcription.
func (w *Whisper) Transcribe(ctx context.Context, wav []byte) (string, error) {
	start := time.Now()

	resp, err := w.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    w.model,
		Reader:   bytes.NewReader(wav),
		FilePath: "phrase.wav",
	})
	if err != nil {
		return "", fmt.Errorf("stt: transcription: %w", err)
	}

	text := strings.TrimSpace(resp.Text)
	w.logger.Debug("transcribed phrase",
		"bytes", len(wav),
		"chars", len(text),
		"latency_ms", time.Since(start).Milliseconds(),
	)
	return text, nil
}

// Verify Whisper implements Transcriber at compile time.
var _ Transcriber = (*Whisper)(nil)
