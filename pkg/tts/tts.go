// Package tts provides a unified interface for text-to-speech providers.
//
// All providers implement the Provider interface, enabling seamless
// switching without changing caller code. Synthesis failures are never
// fatal to the assistant: callers log them and drop the utterance.
//
// Example usage:
//
//	provider, _ := tts.NewOpenAI(
//	    tts.WithAPIKey(os.Getenv("OPENAI_API_KEY")),
//	)
//	defer provider.Close()
//
//	result, _ := provider.Synthesize(ctx, "Hello world")
//	// result.Audio contains MP3 audio bytes
package tts

import (
	"context"
	"time"
)

// Provider defines the TTS provider interface.
type Provider interface {
	// Synthesize converts text to audio, returning the complete audio buffer.
	Synthesize(ctx context.Context, text string) (*AudioResult, error)

	// Health checks provider connectivity and API key validity.
	Health(ctx context.Context) error

	// Close releases any resources held by the provider.
	Close() error
}

// AudioResult represents a complete audio synthesis result.
type AudioResult struct {
	// Audio contains the raw audio data in the specified encoding.
	Audio []byte

	// Encoding describes the audio container (e.g. "mp3", "wav").
	Encoding string

	// CharCount is the number of characters synthesized.
	CharCount int

	// Latency is the round-trip synthesis time.
	Latency time.Duration
}
