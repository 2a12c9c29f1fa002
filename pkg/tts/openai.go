package tts

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const providerOpenAI = "openai"

// OpenAI implements Provider using the OpenAI speech API.
type OpenAI struct {
	config *Config
	client *openai.Client
	logger *slog.Logger
	voice  openai.SpeechVoice
	model  openai.SpeechModel
}

// NewOpenAI creates a new OpenAI TTS provider.
func NewOpenAI(opts ...Option) (*OpenAI, error) {
	cfg := DefaultConfig()
	cfg.ModelID = string(openai.TTSModel1)
	cfg.VoiceID = string(openai.VoiceShimmer)
	cfg.Apply(opts...)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &OpenAI{
		config: cfg,
		client: openai.NewClientWithConfig(clientCfg),
		logger: cfg.Logger.With("component", "tts.openai"),
		voice:  openai.SpeechVoice(cfg.VoiceID),
		model:  openai.SpeechModel(cfg.ModelID),
	}, nil
}

// Synthesize converts text to MP3 audio.
func (o *OpenAI) Synthesize(ctx context.Context, text string) (*AudioResult, error) {
	if text == "" {
		return nil, WrapError(providerOpenAI, ErrEmptyText)
	}

	ctx, cancel := context.WithTimeout(ctx, o.config.Timeout)
	defer cancel()

	start := time.Now()

	resp, err := o.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          o.model,
		Input:          text,
		Voice:          o.voice,
		ResponseFormat: openai.SpeechResponseFormatMp3,
	})
	if err != nil {
		return nil, WrapError(providerOpenAI, fmt.Errorf("create speech: %w", err))
	}
	defer resp.Close()

	audio, err := io.ReadAll(resp)
	if err != nil {
		return nil, WrapError(providerOpenAI, fmt.Errorf("read audio: %w", err))
	}

	latency := time.Since(start)
	o.logger.Debug("synthesized audio",
		"chars", len(text),
		"bytes", len(audio),
		"latency_ms", latency.Milliseconds(),
		"voice", o.config.VoiceID,
	)

	return &AudioResult{
		Audio:     audio,
		Encoding:  "mp3",
		CharCount: len(text),
		Latency:   latency,
	}, nil
}

// Health checks API connectivity and key validity.
func (o *OpenAI) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, o.config.Timeout)
	defer cancel()

	if _, err := o.client.ListModels(ctx); err != nil {
		return WrapError(providerOpenAI, err)
	}
	return nil
}

// Close releases resources. The underlying HTTP client needs no teardown.
func (o *OpenAI) Close() error {
	return nil
}

// Verify OpenAI implements Provider at compile time.
var _ Provider = (*OpenAI)(nil)
