package stt

import (
	"context"
	"sync"
)

// Mock implements Recognizer for testing.
type Mock struct {
	// ListenFunc is called when Listen is invoked.
	// If nil, returns ErrNoSpeech.
	ListenFunc func(ctx context.Context) (string, error)

	mu      sync.Mutex
	listens int
}

// NewMock creates a mock recognizer that always hears the given phrase.
func NewMock(phrase string) *Mock {
	return &Mock{
		ListenFunc: func(context.Context) (string, error) {
			return phrase, nil
		},
	}
}

// NewMockError creates a mock recognizer that always fails with err.
func NewMockError(err error) *Mock {
	return &Mock{
		ListenFunc: func(context.Context) (string, error) {
			return "", err
		},
	}
}

// Listen calls ListenFunc and records the call.
func (m *Mock) Listen(ctx context.Context) (string, error) {
	m.mu.Lock()
	m.listens++
	m.mu.Unlock()
	if m.ListenFunc != nil {
		return m.ListenFunc(ctx)
	}
	return "", ErrNoSpeech
}

// ListenCount returns the number of Listen calls.
func (m *Mock) ListenCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listens
}

// Verify Mock implements Recognizer at compile time.
var _ Recognizer = (*Mock)(nil)
