package app

import (
	"image"
	"sync"
	"testing"
	"time"

	"github.com/sightkit/go-sight/pkg/depth"
	"github.com/sightkit/go-sight/pkg/detection"
)

func TestSupervisor(t *testing.T) {
	t.Run("drain waits for tasks", func(t *testing.T) {
		s := NewSupervisor(nil)
		var mu sync.Mutex
		ran := 0

		for i := 0; i < 5; i++ {
			s.Go("task", func() {
				mu.Lock()
				ran++
				mu.Unlock()
			})
		}

		if !s.Drain(time.Second) {
			t.Fatal("drain should complete")
		}
		mu.Lock()
		defer mu.Unlock()
		if ran != 5 {
			t.Errorf("ran: got %d, want 5", ran)
		}
		if s.Active() != 0 {
			t.Errorf("active: got %d, want 0", s.Active())
		}
	})

	t.Run("drain times out on stuck task", func(t *testing.T) {
		s := NewSupervisor(nil)
		release := make(chan struct{})
		s.Go("stuck", func() { <-release })

		if s.Drain(20 * time.Millisecond) {
			t.Error("drain should time out")
		}
		close(release)
	})

	t.Run("panic is contained", func(t *testing.T) {
		s := NewSupervisor(nil)
		s.Go("bad", func() { panic("boom") })
		if !s.Drain(time.Second) {
			t.Error("panicking task must still complete")
		}
	})
}

func TestSnapshot(t *testing.T) {
	var s Snapshot

	if s.Load() != nil {
		t.Error("empty snapshot should load nil")
	}

	first := []byte{1, 2, 3}
	s.Store(first)
	if got := s.Load(); string(got) != string(first) {
		t.Errorf("load: got %v, want %v", got, first)
	}

	// Last write wins; earlier readers keep their slice.
	second := []byte{4, 5}
	s.Store(second)
	if got := s.Load(); string(got) != string(second) {
		t.Errorf("load after overwrite: got %v", got)
	}
	if string(first) != "\x01\x02\x03" {
		t.Error("stored slices must stay immutable")
	}
}

func TestOverlayLabel(t *testing.T) {
	est := depth.NewDefaultEstimator()

	t.Run("known width includes distance", func(t *testing.T) {
		d := detection.Detection{
			Label:      "car",
			Confidence: 0.87,
			Box:        image.Rect(0, 0, 350, 200),
		}
		want := "car 0.87 (3.6 meters)"
		if got := overlayLabel(d, est); got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("unknown width is label and confidence only", func(t *testing.T) {
		d := detection.Detection{
			Label:      "dog",
			Confidence: 0.6,
			Box:        image.Rect(0, 0, 100, 100),
		}
		want := "dog 0.60"
		if got := overlayLabel(d, est); got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})
}
