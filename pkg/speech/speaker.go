package speech

import (
	"context"
	"log/slog"

	"github.com/sightkit/go-sight/pkg/audio"
	"github.com/sightkit/go-sight/pkg/tts"
)

// Speaker turns text into audible speech through the gate.
//
// Say is fire-and-forget: synthesis and playback happen on a detached
// task and never block the caller. Synthesis or playback failures are
// logged and swallowed; the only user-visible effect is that the one
// utterance is not heard. The speaking flag is released on every path.
type Speaker struct {
	gate     *Gate
	provider tts.Provider
	player   audio.Player
	logger   *slog.Logger

	// spawn runs a detached task; replaced by the app supervisor so
	// in-flight utterances can be drained at shutdown.
	spawn func(name string, fn func())
}

// NewSpeaker creates a speaker on the given gate.
func NewSpeaker(gate *Gate, provider tts.Provider, player audio.Player, logger *slog.Logger) *Speaker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Speaker{
		gate:     gate,
		provider: provider,
		player:   player,
		logger:   logger.With("component", "speaker"),
		spawn: func(name string, fn func()) {
			go fn()
		},
	}
}

// SetSpawner replaces the detached-task runner.
func (s *Speaker) SetSpawner(spawn func(name string, fn func())) {
	s.spawn = spawn
}

// Gate returns the speaker's gate.
func (s *Speaker) Gate() *Gate {
	return s.gate
}

// Say speaks the text without blocking the caller.
// Returns false when the text is empty or another utterance is already
// in flight (the request is dropped, not queued).
func (s *Speaker) Say(text string) bool {
	if text == "" {
		return false
	}
	if !s.gate.TrySpeak() {
		s.logger.Debug("utterance dropped, already speaking", "text", text)
		return false
	}
	s.spawn("speak", func() {
		defer s.gate.FinishSpeak()
		s.speak(context.Background(), text)
	})
	return true
}

// SayWait speaks the text and blocks until playback completes.
// Same drop semantics as Say.
func (s *Speaker) SayWait(ctx context.Context, text string) bool {
	if text == "" {
		return false
	}
	if !s.gate.TrySpeak() {
		s.logger.Debug("utterance dropped, already speaking", "text", text)
		return false
	}
	defer s.gate.FinishSpeak()
	s.speak(ctx, text)
	return true
}

// speak synthesizes and plays one utterance. Never returns an error:
// capability failures suppress the utterance and nothing else.
func (s *Speaker) speak(ctx context.Context, text string) {
	result, err := s.provider.Synthesize(ctx, text)
	if err != nil {
		s.logger.Warn("synthesis failed", "error", err, "text", text)
		return
	}
	if err := s.player.Play(ctx, result.Audio); err != nil {
		s.logger.Warn("playback failed", "error", err)
	}
}
