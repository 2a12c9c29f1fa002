// Package speech arbitrates spoken output for the assistant.
//
// The Gate enforces single-flight semantics on two independent flags:
// at most one utterance may be speaking and at most one voice session
// may be listening at any time. Requests that lose the race are dropped,
// never queued; stale narration is worse than silence.
package speech

import "sync"

// Gate is a single-flight latch pair for the speaking and listening
// states. The zero value is ready to use.
//
// The mutex is held only for the flag check-and-set, never across
// synthesis, playback, or audio capture.
type Gate struct {
	mu        sync.Mutex
	speaking  bool
	listening bool
}

// TrySpeak attempts to acquire the speaking flag.
// Returns false if an utterance is already in flight; the caller must
// drop the request. On success the caller must call FinishSpeak once
// playback completes or fails.
func (g *Gate) TrySpeak() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.speaking {
		return false
	}
	g.speaking = true
	return true
}

// FinishSpeak releases the speaking flag.
func (g *Gate) FinishSpeak() {
	g.mu.Lock()
	g.speaking = false
	g.mu.Unlock()
}

// TryListen attempts to acquire the listening flag.
// Returns false if a voice session is already listening. On success the
// caller must call EndListen on every exit path.
func (g *Gate) TryListen() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.listening {
		return false
	}
	g.listening = true
	return true
}

// EndListen releases the listening flag.
func (g *Gate) EndListen() {
	g.mu.Lock()
	g.listening = false
	g.mu.Unlock()
}

// Speaking reports whether an utterance is in flight.
func (g *Gate) Speaking() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.speaking
}

// Listening reports whether a voice session is listening.
func (g *Gate) Listening() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.listening
}

// Busy reports whether the assistant is listening or speaking.
// Ambient narration suspends itself while Busy is true.
func (g *Gate) Busy() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.speaking || g.listening
}
