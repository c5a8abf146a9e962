// Package render draws annotations, the pointer and the webcam thumbnail onto slides.
package render

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/presenter"
)

// Style fixes the colors and sizes used when composing a frame.
type Style struct {
	StrokeColor     color.RGBA
	StrokeThickness int

	PointerColor  color.RGBA
	PointerRadius int

	ThumbWidth  int
	ThumbHeight int

	// GuideY is where the gesture threshold line is drawn on the webcam feed.
	GuideY         int
	GuideColor     color.RGBA
	GuideThickness int

	LandmarkColor color.RGBA
}

// DefaultStyle returns the stock look: dark red ink, a red pointer and a 200x150 thumbnail.
func DefaultStyle() Style {
	return Style{
		StrokeColor:     color.RGBA{R: 200, A: 255},
		StrokeThickness: 12,
		PointerColor:    color.RGBA{R: 255, A: 255},
		PointerRadius:   12,
		ThumbWidth:      200,
		ThumbHeight:     150,
		GuideY:          300,
		GuideColor:      color.RGBA{G: 255, A: 255},
		GuideThickness:  10,
		LandmarkColor:   color.RGBA{R: 255, G: 0, B: 255, A: 255},
	}
}

// Compositor renders display frames. It keeps no state between calls.
type Compositor struct {
	style Style
}

// NewCompositor creates a Compositor with the given style.
func NewCompositor(style Style) *Compositor {
	return &Compositor{style: style}
}

// Compose draws layer, the pointer (when out shows one) and a thumbnail of feed onto a
// copy of slide. The slide itself is left untouched; the caller closes the returned Mat.
func (c *Compositor) Compose(slide gocv.Mat, layer presenter.Layer, out presenter.Output, feed gocv.Mat) gocv.Mat {
	dst := slide.Clone()

	for _, stroke := range layer.Strokes {
		for j := 1; j < len(stroke); j++ {
			gocv.Line(&dst, stroke[j-1], stroke[j], c.style.StrokeColor, c.style.StrokeThickness)
		}
	}

	if out.ShowPointer {
		gocv.Circle(&dst, out.Pointer, c.style.PointerRadius, c.style.PointerColor, -1)
	}

	if !feed.Empty() {
		c.overlayThumbnail(&dst, feed)
	}

	return dst
}

// overlayThumbnail pastes a downscaled feed into the top-right corner of dst.
func (c *Compositor) overlayThumbnail(dst *gocv.Mat, feed gocv.Mat) {
	tw := min(c.style.ThumbWidth, dst.Cols())
	th := min(c.style.ThumbHeight, dst.Rows())
	if tw <= 0 || th <= 0 {
		return
	}

	small := gocv.NewMat()
	defer small.Close()
	gocv.Resize(feed, &small, image.Point{X: tw, Y: th}, 0, 0, gocv.InterpolationArea)

	w := dst.Cols()
	roi := dst.Region(image.Rect(w-tw, 0, w, th))
	defer roi.Close()
	small.CopyTo(&roi)
}

// AnnotateFeed draws the gesture threshold line and every detected hand onto the webcam frame.
func (c *Compositor) AnnotateFeed(feed *gocv.Mat, hands []detector.HandLandmarks) {
	w, h := feed.Cols(), feed.Rows()

	gocv.Line(feed, image.Point{X: 0, Y: c.style.GuideY}, image.Point{X: w, Y: c.style.GuideY},
		c.style.GuideColor, c.style.GuideThickness)

	for i := range hands {
		hand := &hands[i]
		for j := 0; j < detector.NumLandmarks; j++ {
			gocv.Circle(feed, hand.Pixel(j, w, h), 5, c.style.LandmarkColor, -1)
		}
		gocv.Rectangle(feed, hand.Bounds(w, h).Inset(-20), c.style.LandmarkColor, 2)
	}
}

// Instructions renders the controls panel shown beside the slides.
func Instructions() gocv.Mat {
	lines := []string{
		"Controls:",
		"Thumb up: Previous slide",
		"Pinky up: Next slide",
		"Index + Middle up: Pointer",
		"Index up: Draw",
		"Last 3 fingers up: Erase",
		"Press 'q' to quit",
	}
	return TextPanel(400, 400, lines)
}

// TextPanel renders lines of white text on a black width x height panel.
func TextPanel(width, height int, lines []string) gocv.Mat {
	panel := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), height, width, gocv.MatTypeCV8UC3)
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	for i, text := range lines {
		gocv.PutText(&panel, text, image.Point{X: 10, Y: 50 + i*40}, gocv.FontHersheySimplex, 0.7, white, 2)
	}
	return panel
}
