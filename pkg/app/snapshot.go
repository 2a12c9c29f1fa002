package app

import "sync/atomic"

// Snapshot is an atomic handle to the most recent camera frame,
// JPEG-encoded. The main loop overwrites it every tick; a voice session
// reads it once at the start of its turn. Readers may observe a frame
// one tick older than the one on screen, which is acceptable for
// question answering.
type Snapshot struct {
	frame atomic.Pointer[[]byte]
}

// Store replaces the current frame. The slice must not be mutated
// after the call.
func (s *Snapshot) Store(jpeg []byte) {
	s.frame.Store(&jpeg)
}

// Load returns the current frame, or nil before the first capture.
func (s *Snapshot) Load() []byte {
	p := s.frame.Load()
	if p == nil {
		return nil
	}
	return *p
}
