// Package session runs one interactive voice turn: acquire the
// listening latch, prompt, capture and transcribe a question, answer it
// through the interpreter, and always release the latch.
package session

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/sightkit/go-sight/pkg/interpreter"
	"github.com/sightkit/go-sight/pkg/speech"
	"github.com/sightkit/go-sight/pkg/stt"
)

// Fixed prompts.
const (
	promptText      = "Ask a question."
	didNotCatchText = "I didn't catch that."
)

// Session orchestrates interactive voice turns.
// One Session value serves the whole process; each Run is one turn.
type Session struct {
	gate       *speech.Gate
	speaker    *speech.Speaker
	recognizer stt.Recognizer
	interp     *interpreter.Interpreter
	logger     *slog.Logger
}

// New creates a voice session runner.
func New(speaker *speech.Speaker, recognizer stt.Recognizer, interp *interpreter.Interpreter, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		gate:       speaker.Gate(),
		speaker:    speaker,
		recognizer: recognizer,
		interp:     interp,
		logger:     logger.With("component", "session"),
	}
}

// Run executes one voice turn against the given frame snapshot.
// Returns false when another session is already listening (the request
// is dropped, not queued). The listening latch is released on every
// exit path.
func (s *Session) Run(ctx context.Context, frame []byte) bool {
	if !s.gate.TryListen() {
		s.logger.Debug("ask ignored, already listening")
		return false
	}
	defer s.gate.EndListen()

	logger := s.logger.With("session_id", uuid.NewString())
	logger.Info("voice session started")

	// Best-effort prompt; dropped if an utterance is mid-flight.
	s.speaker.SayWait(ctx, promptText)

	question, err := s.recognizer.Listen(ctx)
	switch {
	case err == nil:
		logger.Info("heard question", "question", question)
		s.interp.Answer(ctx, question, frame)
	case errors.Is(err, stt.ErrNoSpeech), errors.Is(err, stt.ErrWaitTimeout):
		logger.Info("no usable speech", "reason", err)
		s.speaker.SayWait(ctx, didNotCatchText)
	default:
		// Service failure: log only, no spoken feedback.
		logger.Warn("transcription failed", "error", err)
	}

	logger.Info("voice session finished")
	return true
}
