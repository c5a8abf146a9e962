package display

import (
	"sync"

	"gocv.io/x/gocv"
)

// Recorder is a headless Display that keeps what it was shown.
type Recorder struct {
	mu sync.Mutex

	// QuitAfter ends the session once this many frames were shown. Zero never quits.
	QuitAfter int

	frames       int
	instructions bool
	last         gocv.Mat
	errors       []string
}

// NewRecorder creates a Recorder that asks to quit after quitAfter frames.
func NewRecorder(quitAfter int) *Recorder {
	return &Recorder{QuitAfter: quitAfter, last: gocv.NewMat()}
}

func (r *Recorder) ShowInstructions(panel gocv.Mat) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.instructions = !panel.Empty()
}

func (r *Recorder) Show(slide, feed gocv.Mat) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames++
	r.last.Close()
	r.last = slide.Clone()
}

func (r *Recorder) Quit() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.QuitAfter > 0 && r.frames >= r.QuitAfter
}

func (r *Recorder) ShowError(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, msg)
}

func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last.Close()
}

// Frames returns how many frames were shown.
func (r *Recorder) Frames() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

// SawInstructions reports whether a non-empty instructions panel was shown.
func (r *Recorder) SawInstructions() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.instructions
}

// Last returns a copy of the most recent slide frame. The caller closes it.
func (r *Recorder) Last() gocv.Mat {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last.Clone()
}

// Errors returns the messages passed to ShowError.
func (r *Recorder) Errors() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.errors...)
}
