// Package display shows composed slides, the annotated webcam feed and error dialogs in OpenCV windows.
package display

import (
	"errors"
	"os"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/deck"
	"github.com/ayusman/mudra/internal/render"
)

// Window titles.
const (
	SlidesWindow       = "Slides"
	WebcamWindow       = "Webcam"
	InstructionsWindow = "Instructions"
	ErrorWindow        = "Error"
)

// QuitKey ends the session when pressed in any window.
const QuitKey = 'q'

// Display is where a session's frames end up.
type Display interface {
	// ShowInstructions shows the controls panel once at session start.
	ShowInstructions(panel gocv.Mat)
	// Show presents one iteration's composed slide and annotated webcam frame.
	Show(slide, feed gocv.Mat)
	// Quit reports whether the user asked to end the session since the last Show.
	Quit() bool
	// ShowError blocks on a dialog carrying msg until a key is pressed.
	ShowError(msg string)
	Close() error
}

// Windows is the OpenCV highgui Display.
type Windows struct {
	slides       *gocv.Window
	webcam       *gocv.Window
	instructions *gocv.Window
	key          int
}

// NewWindows opens the slide and webcam windows.
func NewWindows() *Windows {
	return &Windows{
		slides: gocv.NewWindow(SlidesWindow),
		webcam: gocv.NewWindow(WebcamWindow),
		key:    -1,
	}
}

func (w *Windows) ShowInstructions(panel gocv.Mat) {
	if w.instructions == nil {
		w.instructions = gocv.NewWindow(InstructionsWindow)
	}
	w.instructions.IMShow(panel)
}

func (w *Windows) Show(slide, feed gocv.Mat) {
	w.slides.IMShow(slide)
	w.webcam.IMShow(feed)
	w.key = w.slides.WaitKey(1)
}

// Quit is true after 'q' was pressed or the slide window was closed.
func (w *Windows) Quit() bool {
	if w.key&0xFF == QuitKey {
		return true
	}
	return w.slides.GetWindowProperty(gocv.WindowPropertyVisible) < 1
}

func (w *Windows) ShowError(msg string) {
	ShowDialog(msg)
}

func (w *Windows) Close() error {
	var errs []error
	for _, win := range []*gocv.Window{w.slides, w.webcam, w.instructions} {
		if win != nil {
			errs = append(errs, win.Close())
		}
	}
	return errors.Join(errs...)
}

// ShowDialog opens a standalone error window with msg and waits for any key.
// It is usable before any session window exists.
func ShowDialog(msg string) {
	panel := render.TextPanel(640, 160, []string{"Error", msg, "Press any key to close"})
	defer panel.Close()

	win := gocv.NewWindow(ErrorWindow)
	defer win.Close()
	win.IMShow(panel)
	win.WaitKey(0)
}

// UserMessage turns an error from a session into the text shown in the error dialog.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, deck.ErrUnsupportedFormat):
		return "Selected file is not a PowerPoint (.pptx) file."
	case errors.Is(err, os.ErrNotExist):
		return "Presentation file not found."
	case errors.Is(err, deck.ErrRasterizerUnavailable):
		return "Could not convert slides. Is LibreOffice installed?"
	case errors.Is(err, deck.ErrTimeout):
		return "Converting the presentation took too long."
	case errors.Is(err, deck.ErrCorruptDeck), errors.Is(err, deck.ErrEmptyDeck):
		return "The presentation could not be read."
	case errors.Is(err, capture.ErrCameraUnavailable):
		return "Could not access webcam."
	case errors.Is(err, capture.ErrFrameRead):
		return "Failed to capture webcam frame."
	default:
		return "An error occurred: " + err.Error()
	}
}
