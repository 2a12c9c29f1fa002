// Package stt provides speech-to-text for voice sessions.
//
// A Recognizer captures one spoken phrase from the microphone and
// returns its transcript. Capture follows the ask-a-question contract:
// a short ambient-noise calibration, a bounded wait for speech to start,
// and a bounded phrase length.
package stt

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors. Anything else returned by Listen is a service
// failure (network, API) and callers should log it without spoken
// feedback.
var (
	// ErrNoSpeech is returned when audio was captured but no speech
	// could be recognized in it.
	ErrNoSpeech = errors.New("stt: no speech recognized")

	// ErrWaitTimeout is returned when no speech started within the
	// start timeout.
	ErrWaitTimeout = errors.New("stt: timed out waiting for speech")
)

// Recognizer captures and transcribes one phrase.
type Recognizer interface {
	// Listen blocks until a phrase is captured and transcribed, or a
	// timeout elapses. Returns the transcript text.
	Listen(ctx context.Context) (string, error)
}

// Transcriber converts captured audio into text.
type Transcriber interface {
	// Transcribe converts a WAV-encoded recording into text.
	// Returns an empty string when the service heard nothing.
	Transcribe(ctx context.Context, wav []byte) (string, error)
}

// ListenConfig holds capture timing parameters.
type ListenConfig struct {
	// SampleRate of microphone capture in Hz.
	SampleRate int

	// AmbientDuration is how long to sample background noise before
	// listening, to calibrate the energy threshold.
	AmbientDuration time.Duration

	// StartTimeout is how long to wait for speech to begin.
	StartTimeout time.Duration

	// MaxPhrase caps the captured phrase length.
	MaxPhrase time.Duration

	// EndSilence is the trailing silence that ends a phrase early.
	EndSilence time.Duration
}

// DefaultListenConfig returns the standard ask-a-question timings.
func DefaultListenConfig() ListenConfig {
	return ListenConfig{
		SampleRate:      16000,
		AmbientDuration: 1 * time.Second,
		StartTimeout:    5 * time.Second,
		MaxPhrase:       5 * time.Second,
		EndSilence:      800 * time.Millisecond,
	}
}
