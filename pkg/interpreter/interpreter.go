// Package interpreter answers spoken questions about the current frame.
//
// Intent classification is an ordered list of (predicate, handler)
// rules evaluated in fixed priority: distance queries, then
// enumerate-visible-objects, then read-text, then an out-of-scope
// fallback. Matching is substring based over the lowercased transcript.
package interpreter

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sightkit/go-sight/pkg/depth"
	"github.com/sightkit/go-sight/pkg/detection"
	"github.com/sightkit/go-sight/pkg/ocr"
	"github.com/sightkit/go-sight/pkg/speech"
)

// Fixed answers for branches with no dynamic content.
const (
	answerNoDistanceTarget = "I can only measure distances for objects like people, cars, or chairs."
	answerSeeNothing       = "I don't see anything clearly."
	answerReadNothing      = "I can't read anything."
	answerOutOfScope       = "Sorry, I can only answer questions about what I see or how far things are."
)

// answerConfidence is the detection floor for question answers,
// looser than the ambient announcer's.
const answerConfidence = 0.5

// Interpreter answers questions using detection, distance estimation
// and OCR over a frame snapshot.
type Interpreter struct {
	detector  detection.Detector
	estimator *depth.Estimator
	reader    ocr.Reader
	speaker   *speech.Speaker
	logger    *slog.Logger
	rules     []rule
}

// rule pairs an intent predicate with its answer handler.
type rule struct {
	match  func(question string) bool
	answer func(ctx context.Context, question string, frame []byte) string
}

// New creates an interpreter. The speaker may be nil when only
// Interpret (no spoken side effect) is used.
func New(detector detection.Detector, estimator *depth.Estimator, reader ocr.Reader, speaker *speech.Speaker, logger *slog.Logger) *Interpreter {
	if logger == nil {
		logger = slog.Default()
	}
	it := &Interpreter{
		detector:  detector,
		estimator: estimator,
		reader:    reader,
		speaker:   speaker,
		logger:    logger.With("component", "interpreter"),
	}
	it.rules = []rule{
		{contains("how far"), it.answerDistance},
		{contains("see"), it.answerVisible},
		{containsAny("read", "say"), it.answerReadText},
	}
	return it
}

func contains(sub string) func(string) bool {
	return func(q string) bool { return strings.Contains(q, sub) }
}

func containsAny(subs ...string) func(string) bool {
	return func(q string) bool {
		for _, sub := range subs {
			if strings.Contains(q, sub) {
				return true
			}
		}
		return false
	}
}

// Interpret classifies the question and produces the answer text.
// It never fails: capability errors degrade to the fixed fallback for
// the matched intent.
func (it *Interpreter) Interpret(ctx context.Context, question string, frame []byte) string {
	question = strings.ToLower(question)
	for _, r := range it.rules {
		if r.match(question) {
			return r.answer(ctx, question, frame)
		}
	}
	return answerOutOfScope
}

// Answer interprets the question and speaks the result through the
// gate, fire-and-forget. Returns the answer text.
func (it *Interpreter) Answer(ctx context.Context, question string, frame []byte) string {
	answer := it.Interpret(ctx, question, frame)
	it.logger.Info("answering question", "question", question, "answer", answer)
	it.speaker.Say(answer)
	return answer
}

// answerDistance handles "how far is the <object>" questions.
// The target is the first known-width label, in table order, that
// appears in the question.
func (it *Interpreter) answerDistance(ctx context.Context, question string, frame []byte) string {
	var target string
	for _, label := range it.estimator.Labels() {
		if strings.Contains(question, label) {
			target = label
			break
		}
	}
	if target == "" {
		return answerNoDistanceTarget
	}

	dets := it.detect(frame)
	d := detection.FirstLabel(dets, target, answerConfidence)
	if d == nil {
		return fmt.Sprintf("I don't see a %s.", target)
	}

	dist, ok := it.estimator.Estimate(target, d.PixelWidth())
	if !ok {
		return fmt.Sprintf("I don't see a %s.", target)
	}
	return fmt.Sprintf("The %s is about %s away.", target, depth.FormatMeters(dist))
}

// answerVisible handles "what do you see" questions.
func (it *Interpreter) answerVisible(ctx context.Context, question string, frame []byte) string {
	labels := detection.DistinctLabels(it.detect(frame), answerConfidence)
	if len(labels) == 0 {
		return answerSeeNothing
	}
	return "I see " + strings.Join(labels, ", ")
}

// answerReadText handles "read this" / "what does it say" questions.
func (it *Interpreter) answerReadText(ctx context.Context, question string, frame []byte) string {
	text, err := it.reader.ExtractText(ctx, frame)
	if err != nil {
		it.logger.Warn("ocr failed", "error", err)
		return answerReadNothing
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return answerReadNothing
	}
	return "It says: " + text
}

// detect runs detection, treating failure as an empty frame.
func (it *Interpreter) detect(frame []byte) []detection.Detection {
	dets, err := it.detector.Detect(frame)
	if err != nil {
		it.logger.Warn("detection failed", "error", err)
		return nil
	}
	return dets
}
