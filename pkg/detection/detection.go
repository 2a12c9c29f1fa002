// Package detection provides object detection over camera frames.
package detection

import "image"

// Detection represents one detected object in a frame.
type Detection struct {
	Label      string          // COCO class name
	Confidence float64         // Detection confidence (0-1)
	Box        image.Rectangle // Bounding box in pixel coordinates
}

// PixelWidth returns the bounding box width in pixels.
func (d Detection) PixelWidth() float64 {
	return float64(d.Box.Dx())
}

// Center returns the center point of the bounding box.
func (d Detection) Center() image.Point {
	return d.Box.Min.Add(d.Box.Max).Div(2)
}

// Detector is the interface for object detection backends.
// Implementations must be safe for concurrent use.
type Detector interface {
	// Detect finds objects in the JPEG-encoded frame.
	// Returns an empty slice when nothing is detected.
	Detect(jpeg []byte) ([]Detection, error)

	// Close releases resources
	Close() error
}

// FilterConfidence returns the detections strictly above the threshold.
func FilterConfidence(dets []Detection, min float64) []Detection {
	var out []Detection
	for _, d := range dets {
		if d.Confidence > min {
			out = append(out, d)
		}
	}
	return out
}

// FirstLabel returns the first detection matching label with confidence
// above min, or nil.
func FirstLabel(dets []Detection, label string, min float64) *Detection {
	for i := range dets {
		if dets[i].Label == label && dets[i].Confidence > min {
			return &dets[i]
		}
	}
	return nil
}

// DistinctLabels returns the set of distinct labels with confidence above
// min, in first-seen order.
func DistinctLabels(dets []Detection, min float64) []string {
	seen := make(map[string]bool)
	var out []string
	for _, d := range dets {
		if d.Confidence <= min || seen[d.Label] {
			continue
		}
		seen[d.Label] = true
		out = append(out, d.Label)
	}
	return out
}
