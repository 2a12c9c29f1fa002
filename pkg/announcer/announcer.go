// Package announcer decides which detected objects are worth narrating.
//
// Each label has an independent cooldown: once announced, it stays quiet
// until the cooldown elapses, no matter how many frames it appears in.
// The announcer only builds announcement texts; actually speaking them
// goes through the speech gate, which may drop overlapping requests.
package announcer

import (
	"fmt"
	"sync"
	"time"

	"github.com/sightkit/go-sight/pkg/depth"
	"github.com/sightkit/go-sight/pkg/detection"
)

// Config holds announcer tuning parameters.
type Config struct {
	// MinConfidence is the detection confidence floor (exclusive).
	MinConfidence float64

	// Cooldown is the minimum interval between announcements of the
	// same label.
	Cooldown time.Duration

	// MaxIdle evicts labels not seen for this long, bounding the
	// tracking map over long sessions. Zero disables eviction.
	// Eviction never shortens a cooldown: MaxIdle is clamped to be at
	// least the cooldown.
	MaxIdle time.Duration
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		MinConfidence: 0.6,
		Cooldown:      10 * time.Second,
		MaxIdle:       10 * time.Minute,
	}
}

// Announcement is one utterance request produced by a tick.
type Announcement struct {
	Label string
	Text  string
}

// Announcer tracks per-label announcement times.
// Safe for concurrent use, though ticks normally come from one loop.
type Announcer struct {
	cfg       Config
	estimator *depth.Estimator

	mu         sync.Mutex
	lastSpoken map[string]time.Time
	lastSeen   map[string]time.Time
}

// New creates an announcer using the estimator for distance phrasing.
func New(estimator *depth.Estimator, cfg Config) *Announcer {
	if cfg.MaxIdle > 0 && cfg.MaxIdle < cfg.Cooldown {
		cfg.MaxIdle = cfg.Cooldown
	}
	return &Announcer{
		cfg:        cfg,
		estimator:  estimator,
		lastSpoken: make(map[string]time.Time),
		lastSeen:   make(map[string]time.Time),
	}
}

// Tick evaluates one frame's detections and returns the announcements
// that are due. Cooldown state is updated before returning, so a caller
// that drops an announcement (gate busy) will not see it again until the
// cooldown expires.
func (a *Announcer) Tick(dets []detection.Detection, now time.Time) []Announcement {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.evict(now)

	var out []Announcement
	for _, d := range dets {
		if d.Confidence <= a.cfg.MinConfidence {
			continue
		}
		a.lastSeen[d.Label] = now

		last, seen := a.lastSpoken[d.Label]
		if seen && now.Sub(last) <= a.cfg.Cooldown {
			continue
		}
		a.lastSpoken[d.Label] = now

		text := d.Label
		if dist, ok := a.estimator.Estimate(d.Label, d.PixelWidth()); ok {
			text = fmt.Sprintf("%s, about %s away", d.Label, depth.FormatMeters(dist))
		}
		out = append(out, Announcement{Label: d.Label, Text: text})
	}
	return out
}

// evict drops labels idle longer than MaxIdle. Caller holds the lock.
func (a *Announcer) evict(now time.Time) {
	if a.cfg.MaxIdle <= 0 {
		return
	}
	for label, seen := range a.lastSeen {
		if now.Sub(seen) > a.cfg.MaxIdle {
			delete(a.lastSeen, label)
			delete(a.lastSpoken, label)
		}
	}
}

// Tracked returns the number of labels currently tracked.
func (a *Announcer) Tracked() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.lastSpoken)
}
