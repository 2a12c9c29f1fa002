package tts

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common error conditions.
var (
	// ErrNoAPIKey is returned when the API key is missing.
	ErrNoAPIKey = errors.New("tts: API key required")

	// ErrEmptyText is returned when asked to synthesize an empty string.
	ErrEmptyText = errors.New("tts: empty text")

	// ErrProviderUnavailable is returned when no providers are available.
	ErrProviderUnavailable = errors.New("tts: no providers available")

	// ErrAllProvidersFailed is returned when all providers in a chain fail.
	ErrAllProvidersFailed = errors.New("tts: all providers failed")
)

// ProviderError wraps an error with provider context.
type ProviderError struct {
	Provider string
	Err      error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	return fmt.Sprintf("tts [%s]: %v", e.Provider, e.Err)
}

// Unwrap returns the underlying error.
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// WrapError wraps an error with provider context.
func WrapError(provider string, err error) error {
	if err == nil {
		return nil
	}
	return &ProviderError{Provider: provider, Err: err}
}

// ChainError aggregates the errors from every provider in a failed chain.
type ChainError struct {
	Errors []error
}

// Error implements the error interface.
func (e *ChainError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("tts: all %d providers failed: %s", len(e.Errors), strings.Join(msgs, "; "))
}

// Unwrap returns the underlying errors for errors.Is/As matching.
func (e *ChainError) Unwrap() []error {
	return e.Errors
}

// Is reports that a ChainError matches ErrAllProvidersFailed, so callers
// can test for total chain failure without unpacking the error list.
func (e *ChainError) Is(target error) bool {
	return target == ErrAllProvidersFailed
}
