// Package depth estimates physical distance to detected objects from
// their apparent pixel width, using a pinhole camera model with a known
// per-label physical width table and a fixed focal length.
package depth

import "fmt"

// DefaultFocalLengthPx is the calibrated focal length in pixels.
// Calibrated for a 1280x720 wearable camera.
const DefaultFocalLengthPx = 700.0

// Entry pairs a detector label with its assumed real-world width.
type Entry struct {
	Label       string
	WidthMeters float64
}

// DefaultEntries returns the built-in known-width table.
// Order matters: question parsing matches labels in table order.
func DefaultEntries() []Entry {
	return []Entry{
		{"person", 0.5},
		{"car", 1.8},
		{"bicycle", 1.0},
		{"stop sign", 0.76},
		{"chair", 0.6},
	}
}

// Estimator computes distance estimates from pixel widths.
// It is immutable after construction and safe for concurrent use.
type Estimator struct {
	focalPx float64
	labels  []string
	widths  map[string]float64
}

// NewEstimator creates an estimator with the given focal length (pixels)
// and known-width table. Entry order is preserved by Labels().
func NewEstimator(focalPx float64, entries []Entry) *Estimator {
	e := &Estimator{
		focalPx: focalPx,
		widths:  make(map[string]float64, len(entries)),
	}
	for _, ent := range entries {
		if _, dup := e.widths[ent.Label]; dup {
			continue
		}
		e.labels = append(e.labels, ent.Label)
		e.widths[ent.Label] = ent.WidthMeters
	}
	return e
}

// NewDefaultEstimator creates an estimator with the built-in table.
func NewDefaultEstimator() *Estimator {
	return NewEstimator(DefaultFocalLengthPx, DefaultEntries())
}

// Estimate returns the estimated distance in meters for an object of the
// given label occupying pixelWidth pixels. The second return value is
// false when the label has no known width or pixelWidth is not positive.
//
// distance = knownWidth * focalLength / pixelWidth
func (e *Estimator) Estimate(label string, pixelWidth float64) (float64, bool) {
	width, ok := e.widths[label]
	if !ok || pixelWidth <= 0 {
		return 0, false
	}
	return width * e.focalPx / pixelWidth, true
}

// Knows reports whether the label has a known width.
func (e *Estimator) Knows(label string) bool {
	_, ok := e.widths[label]
	return ok
}

// Labels returns the known labels in table order.
func (e *Estimator) Labels() []string {
	out := make([]string, len(e.labels))
	copy(out, e.labels)
	return out
}

// FormatMeters renders a distance for speech and overlays, e.g. "3.6 meters".
func FormatMeters(meters float64) string {
	return fmt.Sprintf("%.1f meters", meters)
}
