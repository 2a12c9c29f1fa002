// Package audio provides audio playback for synthesized speech.
//
// Playback shells out to an external player binary. The assistant only
// ever plays short utterances, so a process per utterance is fine and
// keeps the module free of platform audio bindings.
package audio

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"
)

// ErrNoPlayer is returned when no playback binary is available.
var ErrNoPlayer = errors.New("audio: no player binary found")

// Player plays a complete audio buffer and blocks until playback ends.
type Player interface {
	Play(ctx context.Context, audio []byte) error
}

// playerCandidates are tried in order when no command is configured.
// Each must accept a file path argument and exit when playback ends.
var playerCandidates = [][]string{
	{"afplay"},       // macOS
	{"mpg123", "-q"}, // Linux, MP3
	{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet"}, // anywhere ffmpeg is
}

// ExecPlayer plays audio by writing a temporary file and invoking an
// external player process.
type ExecPlayer struct {
	once    sync.Once
	command []string
	lookErr error
}

// NewExecPlayer creates a player using the given command, or autodetects
// one of the known player binaries when command is empty.
func NewExecPlayer(command ...string) *ExecPlayer {
	return &ExecPlayer{command: command}
}

// Play writes the audio to a temp file and runs the player to completion.
// The temp file is removed on every path.
func (p *ExecPlayer) Play(ctx context.Context, audio []byte) error {
	if len(audio) == 0 {
		return nil
	}

	cmd, err := p.resolve()
	if err != nil {
		return err
	}

	f, err := os.CreateTemp("", "sight-speech-*.mp3")
	if err != nil {
		return fmt.Errorf("audio: temp file: %w", err)
	}
	defer os.Remove(f.Name())

	if _, err := f.Write(audio); err != nil {
		f.Close()
		return fmt.Errorf("audio: write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("audio: close temp file: %w", err)
	}

	args := append(cmd[1:], f.Name())
	if err := exec.CommandContext(ctx, cmd[0], args...).Run(); err != nil {
		return fmt.Errorf("audio: playback: %w", err)
	}
	return nil
}

// resolve picks the player command once, caching the result.
func (p *ExecPlayer) resolve() ([]string, error) {
	p.once.Do(func() {
		if len(p.command) > 0 {
			if _, err := exec.LookPath(p.command[0]); err != nil {
				p.lookErr = fmt.Errorf("audio: %s: %w", p.command[0], ErrNoPlayer)
			}
			return
		}
		for _, cand := range playerCandidates {
			if _, err := exec.LookPath(cand[0]); err == nil {
				p.command = cand
				return
			}
		}
		p.lookErr = ErrNoPlayer
	})
	return p.command, p.lookErr
}

// Mock implements Player for testing.
type Mock struct {
	// PlayFunc is called when Play is invoked. If nil, Play succeeds.
	PlayFunc func(ctx context.Context, audio []byte) error

	mu     sync.Mutex
	played [][]byte
}

// Play records the call and delegates to PlayFunc.
func (m *Mock) Play(ctx context.Context, audio []byte) error {
	m.mu.Lock()
	m.played = append(m.played, audio)
	m.mu.Unlock()
	if m.PlayFunc != nil {
		return m.PlayFunc(ctx, audio)
	}
	return nil
}

// PlayCount returns the number of Play calls.
func (m *Mock) PlayCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.played)
}

// Verify implementations at compile time.
var (
	_ Player = (*ExecPlayer)(nil)
	_ Player = (*Mock)(nil)
)
