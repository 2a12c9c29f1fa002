package stt

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/gordonklaus/portaudio"
	"golang.org/x/sync/errgroup"

	"github.com/sightkit/go-sight/pkg/audio"
)

const (
	// captureFrameSize is the samples per capture frame (64ms at 16kHz).
	captureFrameSize = 1024

	// energyFactor scales the calibrated ambient level into the
	// speech-start threshold.
	energyFactor = 1.8

	// minEnergy is the threshold floor for very quiet rooms.
	minEnergy = 250.0

	// prefixFrames of audio kept from before speech start, so the
	// first syllable is not clipped.
	prefixFrames = 4
)

// MicRecognizer captures a phrase from the default microphone and
// transcribes it. Endpointing is energy based: a short ambient sample
// sets the threshold, then speech is bounded by a start timeout, a
// maximum phrase length, and a trailing-silence cutoff.
type MicRecognizer struct {
	cfg         ListenConfig
	transcriber Transcriber
	logger      *slog.Logger
}

// NewMicRecognizer initializes the audio subsystem and returns a
// recognizer. Call Close when done.
func NewMicRecognizer(transcriber Transcriber, cfg ListenConfig, logger *slog.Logger) (*MicRecognizer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("stt: init audio: %w", err)
	}
	return &MicRecognizer{
		cfg:         cfg,
		transcriber: transcriber,
		logger:      logger.With("component", "stt.mic"),
	}, nil
}

// Close terminates the audio subsystem.
func (m *MicRecognizer) Close() error {
	return portaudio.Terminate()
}

// Listen captures one phrase and returns its transcript.
func (m *MicRecognizer) Listen(ctx context.Context) (string, error) {
	samples, err := m.capture(ctx)
	if err != nil {
		return "", err
	}

	wav := audio.EncodeWAV(samples, m.cfg.SampleRate)
	text, err := m.transcriber.Transcribe(ctx, wav)
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", ErrNoSpeech
	}
	return text, nil
}

// capture runs the microphone until a phrase is endpointed.
func (m *MicRecognizer) capture(ctx context.Context) ([]int16, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	frames := make(chan []int16, 16)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(frames)
		return m.readMic(ctx, frames)
	})

	phrase, err := m.endpoint(ctx, frames)

	// Stop the reader and collect its result; a clean cancellation is
	// not an error.
	cancel()
	if rerr := g.Wait(); err == nil && rerr != nil && !errors.Is(rerr, context.Canceled) {
		err = rerr
	}
	if err != nil {
		return nil, err
	}
	return phrase, nil
}

// readMic streams capture frames into the channel until ctx is done.
func (m *MicRecognizer) readMic(ctx context.Context, frames chan<- []int16) error {
	buf := make([]int16, captureFrameSize)
	stream, err := portaudio.OpenDefaultStream(1, 0, float64(m.cfg.SampleRate), len(buf), buf)
	if err != nil {
		return fmt.Errorf("stt: open stream: %w", err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return fmt.Errorf("stt: start stream: %w", err)
	}
	defer stream.Stop()

	for {
		if err := stream.Read(); err != nil && !errors.Is(err, portaudio.InputOverflowed) {
			return fmt.Errorf("stt: read stream: %w", err)
		}
		frame := make([]int16, len(buf))
		copy(frame, buf)

		select {
		case frames <- frame:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// endpoint assembles one phrase from the frame stream.
// Time budgets are counted in samples, which arrive at real-time rate.
func (m *MicRecognizer) endpoint(ctx context.Context, frames <-chan []int16) ([]int16, error) {
	rate := m.cfg.SampleRate
	ambientBudget := int(m.cfg.AmbientDuration.Seconds() * float64(rate))
	startBudget := int(m.cfg.StartTimeout.Seconds() * float64(rate))
	phraseBudget := int(m.cfg.MaxPhrase.Seconds() * float64(rate))
	silenceBudget := int(m.cfg.EndSilence.Seconds() * float64(rate))

	// Phase 1: ambient calibration.
	var ambientSum float64
	var ambientN, sampled int
	for sampled < ambientBudget {
		frame, err := nextFrame(ctx, frames)
		if err != nil {
			return nil, err
		}
		ambientSum += rms(frame)
		ambientN++
		sampled += len(frame)
	}
	threshold := math.Max(ambientSum/float64(ambientN)*energyFactor, minEnergy)
	m.logger.Debug("ambient calibration complete", "threshold", threshold)

	// Phase 2: wait for speech to start, keeping a short prefix.
	var prefix [][]int16
	waited := 0
	for {
		if waited >= startBudget {
			return nil, ErrWaitTimeout
		}
		frame, err := nextFrame(ctx, frames)
		if err != nil {
			return nil, err
		}
		if rms(frame) > threshold {
			prefix = append(prefix, frame)
			break
		}
		prefix = append(prefix, frame)
		if len(prefix) > prefixFrames {
			prefix = prefix[1:]
		}
		waited += len(frame)
	}

	// Phase 3: capture until max phrase length or trailing silence.
	var phrase []int16
	for _, f := range prefix {
		phrase = append(phrase, f...)
	}
	silenceRun := 0
	for len(phrase) < phraseBudget {
		frame, err := nextFrame(ctx, frames)
		if err != nil {
			return nil, err
		}
		phrase = append(phrase, frame...)
		if rms(frame) > threshold {
			silenceRun = 0
		} else {
			silenceRun += len(frame)
			if silenceRun >= silenceBudget {
				break
			}
		}
	}

	m.logger.Debug("phrase captured",
		"samples", len(phrase),
		"seconds", float64(len(phrase))/float64(rate),
	)
	return phrase, nil
}

func nextFrame(ctx context.Context, frames <-chan []int16) ([]int16, error) {
	select {
	case frame, ok := <-frames:
		if !ok {
			return nil, errors.New("stt: capture stream closed")
		}
		return frame, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// rms returns the root-mean-square energy of a frame.
func rms(frame []int16) float64 {
	if len(frame) == 0 {
		return 0
	}
	var sum float64
	for _, s := range frame {
		f := float64(s)
		sum += f * f
	}
	return math.Sqrt(sum / float64(len(frame)))
}

// Verify MicRecognizer implements Recognizer at compile time.
var _ Recognizer = (*MicRecognizer)(nil)
