package detection

import (
	"image"
	"testing"
)

func det(label string, conf float64, x1, y1, x2, y2 int) Detection {
	return Detection{Label: label, Confidence: conf, Box: image.Rect(x1, y1, x2, y2)}
}

func TestPixelWidth(t *testing.T) {
	d := det("car", 0.9, 100, 50, 400, 250)
	if d.PixelWidth() != 300 {
		t.Errorf("pixel width: got %v, want 300", d.PixelWidth())
	}
}

func TestCenter(t *testing.T) {
	d := det("person", 0.9, 100, 100, 300, 500)
	c := d.Center()
	if c.X != 200 || c.Y != 300 {
		t.Errorf("center: got %v, want (200,300)", c)
	}
}

func TestFilterConfidence(t *testing.T) {
	dets := []Detection{
		det("person", 0.9, 0, 0, 10, 10),
		det("car", 0.6, 0, 0, 10, 10),
		det("dog", 0.3, 0, 0, 10, 10),
	}

	got := FilterConfidence(dets, 0.5)
	if len(got) != 2 {
		t.Fatalf("got %d detections, want 2", len(got))
	}

	// Threshold is exclusive
	got = FilterConfidence(dets, 0.6)
	if len(got) != 1 || got[0].Label != "person" {
		t.Errorf("exclusive threshold: got %v", got)
	}
}

func TestFirstLabel(t *testing.T) {
	dets := []Detection{
		det("car", 0.4, 0, 0, 10, 10),
		det("person", 0.9, 0, 0, 10, 10),
		det("car", 0.8, 0, 0, 200, 10),
		det("car", 0.7, 0, 0, 50, 10),
	}

	t.Run("skips low confidence, returns first match", func(t *testing.T) {
		d := FirstLabel(dets, "car", 0.5)
		if d == nil {
			t.Fatal("expected a match")
		}
		if d.PixelWidth() != 200 {
			t.Errorf("wrong detection returned: width %v", d.PixelWidth())
		}
	})

	t.Run("no match", func(t *testing.T) {
		if d := FirstLabel(dets, "bicycle", 0.5); d != nil {
			t.Errorf("expected nil, got %v", d)
		}
	})
}

func TestDistinctLabels(t *testing.T) {
	dets := []Detection{
		det("person", 0.9, 0, 0, 10, 10),
		det("person", 0.8, 0, 0, 10, 10),
		det("chair", 0.7, 0, 0, 10, 10),
		det("dog", 0.2, 0, 0, 10, 10),
	}

	got := DistinctLabels(dets, 0.5)
	if len(got) != 2 {
		t.Fatalf("got %d labels, want 2", len(got))
	}
	if got[0] != "person" || got[1] != "chair" {
		t.Errorf("labels: got %v", got)
	}
}

func TestMock(t *testing.T) {
	m := NewMock(det("person", 0.9, 0, 0, 10, 10))

	dets, err := m.Detect(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dets) != 1 || dets[0].Label != "person" {
		t.Errorf("unexpected detections: %v", dets)
	}
	if m.DetectCount() != 1 {
		t.Errorf("detect count: got %d, want 1", m.DetectCount())
	}
}

func TestCOCOClasses(t *testing.T) {
	if len(COCOClasses) != 80 {
		t.Errorf("COCO class count: got %d, want 80", len(COCOClasses))
	}
	if COCOClasses[0] != "person" {
		t.Errorf("first class: got %q, want person", COCOClasses[0])
	}
}
