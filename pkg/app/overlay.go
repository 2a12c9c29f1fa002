package app

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/sightkit/go-sight/pkg/depth"
	"github.com/sightkit/go-sight/pkg/detection"
)

// overlayColor is the box and label color (blue in BGR terms).
var overlayColor = color.RGBA{R: 255, G: 0, B: 0, A: 0}

// overlayLabel builds the on-screen label for one detection, e.g.
// "car 0.87 (3.6 meters)".
func overlayLabel(d detection.Detection, estimator *depth.Estimator) string {
	label := fmt.Sprintf("%s %.2f", d.Label, d.Confidence)
	if dist, ok := estimator.Estimate(d.Label, d.PixelWidth()); ok {
		label += fmt.Sprintf(" (%s)", depth.FormatMeters(dist))
	}
	return label
}

// drawDetections draws bounding boxes and labels onto the frame.
func drawDetections(img *gocv.Mat, dets []detection.Detection, estimator *depth.Estimator) {
	for _, d := range dets {
		gocv.Rectangle(img, d.Box, overlayColor, 2)
		origin := image.Pt(d.Box.Min.X, d.Box.Min.Y-10)
		gocv.PutText(img, overlayLabel(d, estimator), origin, gocv.FontHersheySimplex, 0.5, overlayColor, 2)
	}
}
