package speech

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestGateSingleFlightSpeak(t *testing.T) {
	var g Gate

	if !g.TrySpeak() {
		t.Fatal("first TrySpeak should succeed")
	}
	if g.TrySpeak() {
		t.Error("second TrySpeak should fail while in flight")
	}
	if !g.Speaking() {
		t.Error("expected speaking flag set")
	}

	g.FinishSpeak()
	if g.Speaking() {
		t.Error("expected speaking flag cleared")
	}
	if !g.TrySpeak() {
		t.Error("TrySpeak after FinishSpeak should succeed")
	}
	g.FinishSpeak()
}

func TestGateConcurrentTrySpeak(t *testing.T) {
	var g Gate
	var wins int64
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if g.TrySpeak() {
				atomic.AddInt64(&wins, 1)
			}
		}()
	}
	wg.Wait()

	if wins != 1 {
		t.Errorf("exactly one TrySpeak should win, got %d", wins)
	}
}

func TestGateListenIndependentOfSpeak(t *testing.T) {
	var g Gate

	if !g.TrySpeak() {
		t.Fatal("TrySpeak should succeed")
	}
	// Listening and answering are independent latches and may overlap.
	if !g.TryListen() {
		t.Error("TryListen should succeed while speaking")
	}
	if g.TryListen() {
		t.Error("second TryListen should fail")
	}

	if !g.Busy() {
		t.Error("expected busy")
	}

	g.EndListen()
	if !g.Busy() {
		t.Error("still speaking, should remain busy")
	}
	g.FinishSpeak()
	if g.Busy() {
		t.Error("expected idle")
	}
}
