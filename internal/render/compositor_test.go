package render

import (
	"image"
	"testing"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/presenter"
	"github.com/ayusman/mudra/internal/testutil"
)

// bgr reads the pixel at p as blue, green, red.
func bgr(m gocv.Mat, p image.Point) [3]uint8 {
	v := m.GetVecbAt(p.Y, p.X)
	return [3]uint8{v[0], v[1], v[2]}
}

func TestCompositor_Compose(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	slide := testutil.SolidFrame(640, 360, 100)
	defer slide.Close()
	feed := testutil.SolidFrame(1280, 720, 30)
	defer feed.Close()

	c := NewCompositor(DefaultStyle())

	layer := presenter.NewLayer().
		Extend(image.Point{X: 50, Y: 200}).
		Extend(image.Point{X: 150, Y: 200})
	out := presenter.Output{Action: presenter.ActionPoint, Pointer: image.Point{X: 300, Y: 300}, ShowPointer: true}

	frame := c.Compose(slide, layer, out, feed)
	defer frame.Close()

	if frame.Cols() != 640 || frame.Rows() != 360 {
		t.Fatalf("composed frame is %dx%d, want 640x360", frame.Cols(), frame.Rows())
	}

	t.Run("strokes are drawn", func(t *testing.T) {
		if got := bgr(frame, image.Point{X: 100, Y: 200}); got != [3]uint8{0, 0, 200} {
			t.Errorf("stroke pixel = %v, want dark red", got)
		}
	})

	t.Run("pointer is drawn", func(t *testing.T) {
		if got := bgr(frame, image.Point{X: 300, Y: 300}); got != [3]uint8{0, 0, 255} {
			t.Errorf("pointer pixel = %v, want red", got)
		}
	})

	t.Run("thumbnail sits in the top-right corner", func(t *testing.T) {
		if got := bgr(frame, image.Point{X: 639 - 5, Y: 5}); got != [3]uint8{30, 30, 30} {
			t.Errorf("thumbnail pixel = %v, want feed gray", got)
		}
		if got := bgr(frame, image.Point{X: 639 - 205, Y: 5}); got != [3]uint8{100, 100, 100} {
			t.Errorf("pixel left of thumbnail = %v, want slide gray", got)
		}
		if got := bgr(frame, image.Point{X: 639 - 5, Y: 155}); got != [3]uint8{100, 100, 100} {
			t.Errorf("pixel below thumbnail = %v, want slide gray", got)
		}
	})

	t.Run("background untouched", func(t *testing.T) {
		if got := bgr(frame, image.Point{X: 20, Y: 20}); got != [3]uint8{100, 100, 100} {
			t.Errorf("background pixel = %v, want slide gray", got)
		}
	})

	t.Run("source slide is not modified", func(t *testing.T) {
		if got := bgr(slide, image.Point{X: 100, Y: 200}); got != [3]uint8{100, 100, 100} {
			t.Errorf("slide was drawn on: %v", got)
		}
		if got := bgr(slide, image.Point{X: 634, Y: 5}); got != [3]uint8{100, 100, 100} {
			t.Errorf("slide got the thumbnail: %v", got)
		}
	})
}

func TestCompositor_ComposeWithoutPointer(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	slide := testutil.SolidFrame(640, 360, 100)
	defer slide.Close()

	c := NewCompositor(DefaultStyle())
	out := presenter.Output{Action: presenter.ActionNone, Pointer: image.Point{X: 300, Y: 300}}

	empty := gocv.NewMat()
	defer empty.Close()

	frame := c.Compose(slide, presenter.NewLayer(), out, empty)
	defer frame.Close()

	if got := bgr(frame, image.Point{X: 300, Y: 300}); got != [3]uint8{100, 100, 100} {
		t.Errorf("pointer drawn although hidden: %v", got)
	}
	if got := bgr(frame, image.Point{X: 634, Y: 5}); got != [3]uint8{100, 100, 100} {
		t.Errorf("thumbnail drawn from an empty feed: %v", got)
	}
}

func TestCompositor_AnnotateFeed(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	feed := testutil.SolidFrame(1280, 720, 0)
	defer feed.Close()

	c := NewCompositor(DefaultStyle())
	hand := detector.PoseLandmarksAt(detector.Fingers{false, true, false, false, false}, 0.5, 0.5)
	c.AnnotateFeed(&feed, []detector.HandLandmarks{hand})

	if got := bgr(feed, image.Point{X: 10, Y: 300}); got != [3]uint8{0, 255, 0} {
		t.Errorf("threshold line pixel = %v, want green", got)
	}
	if got := bgr(feed, image.Point{X: 640, Y: 360}); got != [3]uint8{255, 0, 255} {
		t.Errorf("index tip pixel = %v, want landmark color", got)
	}
}

func TestInstructions(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	panel := Instructions()
	defer panel.Close()

	if panel.Cols() != 400 || panel.Rows() != 400 {
		t.Fatalf("panel is %dx%d, want 400x400", panel.Cols(), panel.Rows())
	}

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(panel, &gray, gocv.ColorBGRToGray)
	if gocv.CountNonZero(gray) == 0 {
		t.Error("instructions panel has no text")
	}
}
