package session

import (
	"context"
	"errors"
	"testing"

	"github.com/sightkit/go-sight/pkg/audio"
	"github.com/sightkit/go-sight/pkg/depth"
	"github.com/sightkit/go-sight/pkg/detection"
	"github.com/sightkit/go-sight/pkg/interpreter"
	"github.com/sightkit/go-sight/pkg/ocr"
	"github.com/sightkit/go-sight/pkg/speech"
	"github.com/sightkit/go-sight/pkg/stt"
	"github.com/sightkit/go-sight/pkg/tts"
)

type fixture struct {
	gate    *speech.Gate
	tts     *tts.Mock
	session *Session
}

func newFixture(recognizer stt.Recognizer) *fixture {
	gate := &speech.Gate{}
	mock := tts.NewMock()
	speaker := speech.NewSpeaker(gate, mock, &audio.Mock{}, nil)
	speaker.SetSpawner(func(name string, fn func()) { fn() })
	interp := interpreter.New(detection.NewMock(), depth.NewDefaultEstimator(), &ocr.Mock{}, speaker, nil)
	return &fixture{
		gate:    gate,
		tts:     mock,
		session: New(speaker, recognizer, interp, nil),
	}
}

func TestRunAnswersQuestion(t *testing.T) {
	f := newFixture(stt.NewMock("what do you see"))

	if !f.session.Run(context.Background(), nil) {
		t.Fatal("expected session to run")
	}

	spoken := f.tts.Spoken()
	if len(spoken) != 2 {
		t.Fatalf("spoken: got %v", spoken)
	}
	if spoken[0] != "Ask a question." {
		t.Errorf("prompt: got %q", spoken[0])
	}
	if spoken[1] != "I don't see anything clearly." {
		t.Errorf("answer: got %q", spoken[1])
	}
	if f.gate.Listening() {
		t.Error("listening latch must be released")
	}
}

func TestRunAbortsWhenAlreadyListening(t *testing.T) {
	f := newFixture(stt.NewMock("hello"))
	f.gate.TryListen()

	if f.session.Run(context.Background(), nil) {
		t.Error("expected session to abort")
	}
	// No prompt, no answer, no gate change.
	if len(f.tts.Spoken()) != 0 {
		t.Errorf("aborted session must not speak: %v", f.tts.Spoken())
	}
	if !f.gate.Listening() {
		t.Error("pre-existing listening latch must be untouched")
	}
}

func TestRunReleaseOnEveryExitPath(t *testing.T) {
	cases := []struct {
		name       string
		recognizer stt.Recognizer
		wantSpoken []string
	}{
		{
			name:       "success",
			recognizer: stt.NewMock("read this"),
			wantSpoken: []string{"Ask a question.", "I can't read anything."},
		},
		{
			name:       "no speech recognized",
			recognizer: stt.NewMockError(stt.ErrNoSpeech),
			wantSpoken: []string{"Ask a question.", "I didn't catch that."},
		},
		{
			name:       "wait timeout",
			recognizer: stt.NewMockError(stt.ErrWaitTimeout),
			wantSpoken: []string{"Ask a question.", "I didn't catch that."},
		},
		{
			name:       "service error is silent",
			recognizer: stt.NewMockError(errors.New("api unreachable")),
			wantSpoken: []string{"Ask a question."},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(tc.recognizer)
			f.session.Run(context.Background(), nil)

			if f.gate.Listening() {
				t.Error("listening latch must be released")
			}
			spoken := f.tts.Spoken()
			if len(spoken) != len(tc.wantSpoken) {
				t.Fatalf("spoken: got %v, want %v", spoken, tc.wantSpoken)
			}
			for i := range spoken {
				if spoken[i] != tc.wantSpoken[i] {
					t.Errorf("spoken[%d]: got %q, want %q", i, spoken[i], tc.wantSpoken[i])
				}
			}
		})
	}
}

func TestRunSecondSessionAfterRelease(t *testing.T) {
	f := newFixture(stt.NewMock("what do you see"))

	f.session.Run(context.Background(), nil)
	if !f.session.Run(context.Background(), nil) {
		t.Error("second session should run after the first released the latch")
	}
}
