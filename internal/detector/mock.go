package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	hands    []HandLandmarks
	sequence [][]HandLandmarks
	err      error
	calls    int
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.hands = hands
}

// SetSequence queues per-frame results. Each Detect call consumes one entry;
// once the queue is drained Detect falls back to the hands set by SetHands.
func (m *MockDetector) SetSequence(frames [][]HandLandmarks) {
	m.sequence = frames
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Calls returns how many times Detect has been invoked.
func (m *MockDetector) Calls() int {
	return m.calls
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if len(m.sequence) > 0 {
		next := m.sequence[0]
		m.sequence = m.sequence[1:]
		return next, nil
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// PoseLandmarks returns a right hand, as seen in a mirrored frame, whose extended fingers match f.
// The hand is built upright with the wrist near the bottom of a normalized frame;
// use PoseLandmarksAt to place the index fingertip somewhere specific.
func PoseLandmarks(f Fingers) HandLandmarks {
	lm := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	lm.Points[Wrist] = Point3D{X: 0.50, Y: 0.80}

	// Thumb: reaching outward to the left when extended, tucked across the palm otherwise.
	lm.Points[ThumbCMC] = Point3D{X: 0.45, Y: 0.76}
	lm.Points[ThumbMCP] = Point3D{X: 0.41, Y: 0.72}
	if f[Thumb] {
		lm.Points[ThumbIP] = Point3D{X: 0.36, Y: 0.68}
		lm.Points[ThumbTip] = Point3D{X: 0.31, Y: 0.64}
	} else {
		lm.Points[ThumbIP] = Point3D{X: 0.43, Y: 0.68}
		lm.Points[ThumbTip] = Point3D{X: 0.47, Y: 0.67}
	}

	columns := map[int]float64{Index: 0.45, Middle: 0.50, Ring: 0.55, Pinky: 0.60}
	for finger := Index; finger <= Pinky; finger++ {
		x := columns[finger]
		mcp := fingerTips[finger] - 3
		lm.Points[mcp] = Point3D{X: x, Y: 0.66}
		if f[finger] {
			lm.Points[mcp+1] = Point3D{X: x, Y: 0.54}
			lm.Points[mcp+2] = Point3D{X: x, Y: 0.44}
			lm.Points[mcp+3] = Point3D{X: x, Y: 0.36}
		} else {
			lm.Points[mcp+1] = Point3D{X: x, Y: 0.61, Z: -0.04}
			lm.Points[mcp+2] = Point3D{X: x - 0.01, Y: 0.65, Z: -0.04}
			lm.Points[mcp+3] = Point3D{X: x - 0.02, Y: 0.68, Z: -0.02}
		}
	}

	return lm
}

// PoseLandmarksAt returns PoseLandmarks(f) translated so that the index fingertip
// lands on the normalized coordinate (x, y).
func PoseLandmarksAt(f Fingers, x, y float64) HandLandmarks {
	lm := PoseLandmarks(f)
	dx := x - lm.Points[IndexTip].X
	dy := y - lm.Points[IndexTip].Y
	for i := range lm.Points {
		lm.Points[i].X += dx
		lm.Points[i].Y += dy
	}
	return lm
}

// OpenPalmLandmarks returns a preset HandLandmarks with every finger extended.
func OpenPalmLandmarks() HandLandmarks {
	return PoseLandmarks(Fingers{true, true, true, true, true})
}

// FistLandmarks returns a preset HandLandmarks with every finger curled.
func FistLandmarks() HandLandmarks {
	return PoseLandmarks(Fingers{})
}
