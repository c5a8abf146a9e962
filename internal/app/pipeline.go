package app

import (
	"context"
	"fmt"
	"log"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/presenter"
)

// runLoop is the presentation loop. Each iteration is strictly sequential:
//
//  1. Read a mirrored frame (blocking); a failed read ends the session
//  2. Detect hands and classify the gesture
//  3. Advance the presenter state machine
//  4. Annotate the feed and compose the slide
//  5. Show both and poll for quit
func (a *App) runLoop(ctx context.Context) error {
	for {
		if ctx.Err() != nil || a.quit.Load() {
			return nil
		}

		frame, err := a.camera.ReadFrame()
		if err != nil {
			return fmt.Errorf("read frame: %w", err)
		}

		composed, _ := a.processFrame(frame)
		a.display.Show(composed, *frame)
		composed.Close()
		frame.Close()

		if a.display.Quit() {
			return nil
		}
	}
}

// processFrame runs one frame through detection, the state machine and the compositor.
// The feed is annotated in place. The caller closes the returned Mat.
func (a *App) processFrame(frame *gocv.Mat) (gocv.Mat, presenter.Output) {
	hands, err := a.detector.Detect(frame)
	if err != nil {
		log.Printf("Error detecting hands: %v", err)
		hands = nil
	}

	reading := a.mapper.Read(hands)

	a.mu.Lock()
	a.frame++
	frameNo := a.frame
	next, out := presenter.Step(a.state, reading, a.rules)
	a.state = next
	slide := a.deck.Slide(next.Index)
	a.mu.Unlock()

	a.compositor.AnnotateFeed(frame, hands)
	composed := a.compositor.Compose(*slide, next.Layer, out, *frame)

	if out.Action.Latching() {
		a.journal(ActionEvent{
			Frame:   frameNo,
			Gesture: reading.Gesture,
			Action:  out.Action,
			Slide:   next.Index,
		})
	}

	return composed, out
}
