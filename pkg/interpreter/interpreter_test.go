package interpreter

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/sightkit/go-sight/pkg/audio"
	"github.com/sightkit/go-sight/pkg/depth"
	"github.com/sightkit/go-sight/pkg/detection"
	"github.com/sightkit/go-sight/pkg/ocr"
	"github.com/sightkit/go-sight/pkg/speech"
	"github.com/sightkit/go-sight/pkg/tts"
)

func det(label string, conf float64, pixelWidth int) detection.Detection {
	return detection.Detection{
		Label:      label,
		Confidence: conf,
		Box:        image.Rect(0, 0, pixelWidth, 100),
	}
}

func newTestInterpreter(detector detection.Detector, reader ocr.Reader) *Interpreter {
	return New(detector, depth.NewDefaultEstimator(), reader, nil, nil)
}

func TestDistanceIntent(t *testing.T) {
	ctx := context.Background()

	t.Run("detected target with distance", func(t *testing.T) {
		// car: 1.8m * 700 / 350px = 3.6m
		it := newTestInterpreter(detection.NewMock(det("car", 0.8, 350)), &ocr.Mock{})
		got := it.Interpret(ctx, "how far is the car", nil)
		want := "The car is about 3.6 meters away."
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("target not detected", func(t *testing.T) {
		it := newTestInterpreter(detection.NewMock(), &ocr.Mock{})
		got := it.Interpret(ctx, "how far is the car", nil)
		if got != "I don't see a car." {
			t.Errorf("got %q", got)
		}
	})

	t.Run("low-confidence target ignored", func(t *testing.T) {
		it := newTestInterpreter(detection.NewMock(det("car", 0.4, 350)), &ocr.Mock{})
		got := it.Interpret(ctx, "how far is the car", nil)
		if got != "I don't see a car." {
			t.Errorf("got %q", got)
		}
	})

	t.Run("no known object in question", func(t *testing.T) {
		it := newTestInterpreter(detection.NewMock(), &ocr.Mock{})
		got := it.Interpret(ctx, "how far is the moon", nil)
		if got != answerNoDistanceTarget {
			t.Errorf("got %q", got)
		}
	})

	t.Run("first table-order label wins", func(t *testing.T) {
		// Question mentions both person and car; person comes first in
		// the table.
		it := newTestInterpreter(detection.NewMock(
			det("person", 0.9, 350),
			det("car", 0.9, 350),
		), &ocr.Mock{})
		got := it.Interpret(ctx, "how far is the person by the car", nil)
		if got != "The person is about 1.0 meters away." {
			t.Errorf("got %q", got)
		}
	})

	t.Run("detection error degrades to not seen", func(t *testing.T) {
		failing := &detection.Mock{DetectFunc: func([]byte) ([]detection.Detection, error) {
			return nil, errors.New("model exploded")
		}}
		it := newTestInterpreter(failing, &ocr.Mock{})
		got := it.Interpret(ctx, "how far is the car", nil)
		if got != "I don't see a car." {
			t.Errorf("got %q", got)
		}
	})
}

func TestVisibleIntent(t *testing.T) {
	ctx := context.Background()

	t.Run("distinct labels joined", func(t *testing.T) {
		it := newTestInterpreter(detection.NewMock(
			det("person", 0.9, 100),
			det("person", 0.7, 100),
			det("chair", 0.6, 100),
			det("dog", 0.2, 100),
		), &ocr.Mock{})
		got := it.Interpret(ctx, "what do you see", nil)
		if got != "I see person, chair" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("nothing visible", func(t *testing.T) {
		it := newTestInterpreter(detection.NewMock(), &ocr.Mock{})
		got := it.Interpret(ctx, "what do you see", nil)
		if got != answerSeeNothing {
			t.Errorf("got %q", got)
		}
	})
}

func TestReadIntent(t *testing.T) {
	ctx := context.Background()

	t.Run("text found", func(t *testing.T) {
		it := newTestInterpreter(detection.NewMock(), &ocr.Mock{Text: "EXIT"})
		got := it.Interpret(ctx, "read this", nil)
		if got != "It says: EXIT" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("say keyword also matches", func(t *testing.T) {
		it := newTestInterpreter(detection.NewMock(), &ocr.Mock{Text: "open"})
		got := it.Interpret(ctx, "what does it say", nil)
		if got != "It says: open" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("whitespace-only text", func(t *testing.T) {
		it := newTestInterpreter(detection.NewMock(), &ocr.Mock{Text: "  \n "})
		got := it.Interpret(ctx, "read this", nil)
		if got != answerReadNothing {
			t.Errorf("got %q", got)
		}
	})

	t.Run("ocr error degrades to fallback", func(t *testing.T) {
		reader := &ocr.Mock{ExtractFunc: func(context.Context, []byte) (string, error) {
			return "", errors.New("tesseract missing")
		}}
		it := newTestInterpreter(detection.NewMock(), reader)
		got := it.Interpret(ctx, "read this", nil)
		if got != answerReadNothing {
			t.Errorf("got %q", got)
		}
	})
}

func TestPriorityOrder(t *testing.T) {
	ctx := context.Background()

	// "how far" outranks "see" even when both substrings appear.
	it := newTestInterpreter(detection.NewMock(det("car", 0.9, 350)), &ocr.Mock{Text: "nope"})
	got := it.Interpret(ctx, "how far is the car you see", nil)
	if got != "The car is about 3.6 meters away." {
		t.Errorf("got %q", got)
	}

	// "see" outranks "read".
	got = it.Interpret(ctx, "do you see anything to read", nil)
	if got != "I see car" {
		t.Errorf("got %q", got)
	}
}

func TestOutOfScope(t *testing.T) {
	it := newTestInterpreter(detection.NewMock(), &ocr.Mock{})
	got := it.Interpret(context.Background(), "what time is it", nil)
	if got != answerOutOfScope {
		t.Errorf("got %q", got)
	}
}

func TestAnswerSpeaks(t *testing.T) {
	var gate speech.Gate
	mock := tts.NewMock()
	speaker := speech.NewSpeaker(&gate, mock, &audio.Mock{}, nil)
	speaker.SetSpawner(func(name string, fn func()) { fn() })

	it := New(detection.NewMock(), depth.NewDefaultEstimator(), &ocr.Mock{}, speaker, nil)
	answer := it.Answer(context.Background(), "what time is it", nil)
	if answer != answerOutOfScope {
		t.Errorf("answer: got %q", answer)
	}

	spoken := mock.Spoken()
	if len(spoken) != 1 || spoken[0] != answerOutOfScope {
		t.Errorf("spoken: got %v", spoken)
	}
}
