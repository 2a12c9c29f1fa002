package detection

import "sync"

// Mock implements Detector for testing.
type Mock struct {
	// DetectFunc is called when Detect is invoked.
	// If nil, returns no detections.
	DetectFunc func(jpeg []byte) ([]Detection, error)

	// CloseFunc is called when Close is invoked.
	CloseFunc func() error

	mu      sync.Mutex
	detects int
}

// NewMock creates a mock detector returning the given fixed detections.
func NewMock(dets ...Detection) *Mock {
	return &Mock{
		DetectFunc: func([]byte) ([]Detection, error) {
			return dets, nil
		},
	}
}

// Detect calls DetectFunc and records the call.
func (m *Mock) Detect(jpeg []byte) ([]Detection, error) {
	m.mu.Lock()
	m.detects++
	m.mu.Unlock()
	if m.DetectFunc != nil {
		return m.DetectFunc(jpeg)
	}
	return nil, nil
}

// Close calls CloseFunc.
func (m *Mock) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// DetectCount returns the number of Detect calls.
func (m *Mock) DetectCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.detects
}

// Verify Mock implements Detector at compile time.
var _ Detector = (*Mock)(nil)
