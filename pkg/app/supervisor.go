package app

import (
	"log/slog"
	"sync"
	"time"
)

// Supervisor tracks detached tasks so the process can drain them at
// shutdown. Tasks are fire-and-forget from the caller's point of view:
// Go never blocks and the main loop never joins individual tasks.
type Supervisor struct {
	logger *slog.Logger
	wg     sync.WaitGroup

	mu     sync.Mutex
	active int
}

// NewSupervisor creates a task supervisor.
func NewSupervisor(logger *slog.Logger) *Supervisor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Supervisor{logger: logger.With("component", "supervisor")}
}

// Go runs fn on a detached goroutine. A panic in fn is logged and
// contained; it never crosses into the main loop.
func (s *Supervisor) Go(name string, fn func()) {
	s.wg.Add(1)
	s.mu.Lock()
	s.active++
	s.mu.Unlock()

	go func() {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("task panicked", "task", name, "panic", r)
			}
			s.mu.Lock()
			s.active--
			s.mu.Unlock()
			s.wg.Done()
		}()
		fn()
	}()
}

// Active returns the number of tasks currently running.
func (s *Supervisor) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Drain waits for all tasks to finish, up to the timeout.
// Returns false if tasks were still running when the timeout elapsed;
// those tasks are detached and abandoned.
func (s *Supervisor) Drain(timeout time.Duration) bool {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return true
	case <-time.After(timeout):
		s.logger.Warn("shutdown drain timed out", "remaining", s.Active())
		return false
	}
}
