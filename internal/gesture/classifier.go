// Package gesture turns detected hands into the discrete gestures that drive a presentation.
package gesture

import (
	"image"
	"math"

	"github.com/ayusman/mudra/internal/detector"
)

// Gesture is a discrete symbol derived from a finger-extension pattern.
type Gesture string

const (
	None     Gesture = "none"
	Previous Gesture = "previous"
	Next     Gesture = "next"
	Point    Gesture = "point"
	Draw     Gesture = "draw"
	Erase    Gesture = "erase"
)

// patterns binds each gesture to exactly one finger vector (thumb, index, middle, ring, pinky).
var patterns = map[detector.Fingers]Gesture{
	{true, false, false, false, false}: Previous,
	{false, false, false, false, true}: Next,
	{false, true, true, false, false}:  Point,
	{false, true, false, false, false}: Draw,
	{false, false, true, true, true}:   Erase,
}

// Classify maps a finger vector to its gesture. Unlisted vectors are None.
func Classify(f detector.Fingers) Gesture {
	if g, ok := patterns[f]; ok {
		return g
	}
	return None
}

// Reading is the per-frame interpretation of the detector output.
type Reading struct {
	Gesture Gesture
	Fingers detector.Fingers
	// Cursor is the index fingertip in display space. Valid only when HasHand is set.
	Cursor  image.Point
	HasHand bool
}

// Mapper converts fingertip positions on the camera frame into display coordinates.
//
// Only the right half of the frame horizontally, and the band between MarginY and
// Height-MarginY vertically, are used, so a small hand movement sweeps the whole slide.
type Mapper struct {
	Width   int
	Height  int
	MarginY int
}

// Cursor remaps a camera-space fingertip into display space.
func (m Mapper) Cursor(tip image.Point) image.Point {
	w, h := float64(m.Width), float64(m.Height)
	x := Interp(float64(tip.X), w/2, w, 0, w)
	y := Interp(float64(tip.Y), float64(m.MarginY), h-float64(m.MarginY), 0, h)
	return image.Point{X: int(x), Y: int(y)}
}

// Read classifies the hands found on one frame.
// Anything other than exactly one hand yields a None reading without a cursor.
func (m Mapper) Read(hands []detector.HandLandmarks) Reading {
	if len(hands) != 1 {
		return Reading{Gesture: None}
	}

	hand := &hands[0]
	fingers := hand.FingersUp()

	return Reading{
		Gesture: Classify(fingers),
		Fingers: fingers,
		Cursor:  m.Cursor(hand.Pixel(detector.IndexTip, m.Width, m.Height)),
		HasHand: true,
	}
}

// Interp maps v linearly from [inLo, inHi] onto [outLo, outHi], clamping to the ends.
func Interp(v, inLo, inHi, outLo, outHi float64) float64 {
	if inHi == inLo {
		return outLo
	}
	t := (v - inLo) / (inHi - inLo)
	t = math.Max(0, math.Min(1, t))
	return outLo + t*(outHi-outLo)
}
