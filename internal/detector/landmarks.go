// Package detector provides hand detection interfaces and types for gesture recognition.
package detector

import (
	"image"
	"math"
)

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Finger positions within a Fingers vector.
const (
	Thumb = iota
	Index
	Middle
	Ring
	Pinky
)

// Fingers records which fingers are extended, ordered thumb, index, middle, ring, pinky.
type Fingers [5]bool

// fingerTips and fingerPIPs pair each finger's tip with the joint it is compared against.
var (
	fingerTips = [5]int{ThumbTip, IndexTip, MiddleTip, RingTip, PinkyTip}
	fingerPIPs = [5]int{ThumbIP, IndexPIP, MiddlePIP, RingPIP, PinkyPIP}
)

// Point3D represents a 3D point in space with x, y, z coordinates.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// HandLandmarks represents the 21 hand landmarks detected by MediaPipe.
// Coordinates are normalized to the frame: x and y in 0..1, y growing downward.
type HandLandmarks struct {
	Points     [NumLandmarks]Point3D `json:"points"`
	Handedness string                `json:"handedness"` // "Left" or "Right"
	Score      float64               `json:"score"`
}

// FingersUp reports which fingers are extended.
//
// A finger other than the thumb is extended when its tip sits above its PIP joint.
// The thumb folds sideways, so it is compared on x against its IP joint. Frames are
// mirrored before detection, so an extended right thumb points toward smaller x and
// an extended left thumb toward larger x.
func (h *HandLandmarks) FingersUp() Fingers {
	var f Fingers
	if h == nil {
		return f
	}

	tip, ip := h.Points[ThumbTip], h.Points[ThumbIP]
	if h.Handedness == "Left" {
		f[Thumb] = tip.X > ip.X
	} else {
		f[Thumb] = tip.X < ip.X
	}

	for finger := Index; finger <= Pinky; finger++ {
		f[finger] = h.Points[fingerTips[finger]].Y < h.Points[fingerPIPs[finger]].Y
	}

	return f
}

// Pixel projects landmark i onto a frame of the given size.
func (h *HandLandmarks) Pixel(i, width, height int) image.Point {
	p := h.Points[i]
	return image.Point{
		X: int(math.Round(p.X * float64(width))),
		Y: int(math.Round(p.Y * float64(height))),
	}
}

// Bounds returns the pixel bounding box of all landmarks on a frame of the given size.
func (h *HandLandmarks) Bounds(width, height int) image.Rectangle {
	r := image.Rectangle{Min: h.Pixel(0, width, height)}
	r.Max = r.Min
	for i := 1; i < NumLandmarks; i++ {
		p := h.Pixel(i, width, height)
		r.Min.X = min(r.Min.X, p.X)
		r.Min.Y = min(r.Min.Y, p.Y)
		r.Max.X = max(r.Max.X, p.X)
		r.Max.Y = max(r.Max.Y, p.Y)
	}
	return r
}
