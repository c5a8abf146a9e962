// Package presenter holds the navigation and annotation state machine of a slideshow.
//
// The machine is a pure function: Step takes the session state and one frame's gesture
// reading and returns the next state together with what happened on that frame.
package presenter

import (
	"image"

	"github.com/ayusman/mudra/internal/gesture"
)

// Action names the effect a frame had on the session.
type Action string

const (
	ActionNone     Action = "none"
	ActionPrevious Action = "previous"
	ActionNext     Action = "next"
	ActionPoint    Action = "point"
	ActionDraw     Action = "draw"
	ActionErase    Action = "erase"
)

// Changes reports whether the action moved the slide index.
func (a Action) Changes() bool {
	return a == ActionPrevious || a == ActionNext
}

// Latching reports whether the action starts a cooldown.
func (a Action) Latching() bool {
	return a == ActionPrevious || a == ActionNext || a == ActionErase
}

// Rules are the fixed tunables of the machine.
type Rules struct {
	// Threshold is the display y a navigation cursor must not pass below.
	Threshold int
	// Delay is the number of frames suppressed after a latching action.
	Delay int
}

// DefaultRules returns the stock gesture line and cooldown.
func DefaultRules() Rules {
	return Rules{Threshold: 300, Delay: 30}
}

// Cooldown suppresses gestures for a number of frames after a latching action.
type Cooldown struct {
	Active  bool
	Counter int
}

// State is everything a session mutates from frame to frame.
type State struct {
	Index    int
	Slides   int
	Layer    Layer
	Cooldown Cooldown
	// Drawing is set while consecutive DRAW frames extend the same stroke.
	Drawing bool
}

// NewState returns the state at the first slide of a deck with the given length.
func NewState(slides int) State {
	return State{Slides: slides, Layer: NewLayer()}
}

// Idle reports whether gestures are currently interpreted.
func (s State) Idle() bool {
	return !s.Cooldown.Active
}

// Output is what a single frame produced besides the next state.
type Output struct {
	Action Action
	// Pointer is the marker position; meaningful only when ShowPointer is set.
	Pointer     image.Point
	ShowPointer bool
}

// Step advances the machine by one frame.
//
// While a cooldown is active every gesture is ignored. A cooldown started on frame n
// suppresses frames n+1 through n+Delay. Out-of-range navigation and erasing an empty
// layer are silent no-ops and do not start a cooldown.
func Step(s State, in gesture.Reading, r Rules) (State, Output) {
	out := Output{Action: ActionNone}

	if s.Cooldown.Active {
		s.Drawing = false
	} else {
		s, out = interpret(s, in, r)
	}

	if s.Cooldown.Active {
		s.Cooldown.Counter++
		if s.Cooldown.Counter > r.Delay {
			s.Cooldown = Cooldown{}
		}
	}

	return s, out
}

func interpret(s State, in gesture.Reading, r Rules) (State, Output) {
	out := Output{Action: ActionNone}

	if in.Gesture != gesture.Draw {
		s.Drawing = false
	}
	if !in.HasHand {
		return s, out
	}

	switch in.Gesture {
	case gesture.Previous:
		if in.Cursor.Y <= r.Threshold && s.Index > 0 {
			s = s.turnTo(s.Index - 1)
			out.Action = ActionPrevious
		}

	case gesture.Next:
		if in.Cursor.Y <= r.Threshold && s.Index < s.Slides-1 {
			s = s.turnTo(s.Index + 1)
			out.Action = ActionNext
		}

	case gesture.Point:
		out = Output{Action: ActionPoint, Pointer: in.Cursor, ShowPointer: true}

	case gesture.Draw:
		if !s.Drawing {
			s.Layer = s.Layer.Begin()
			s.Drawing = true
		}
		s.Layer = s.Layer.Extend(in.Cursor)
		out = Output{Action: ActionDraw, Pointer: in.Cursor, ShowPointer: true}

	case gesture.Erase:
		if !s.Layer.Empty() {
			s.Layer = s.Layer.Undo()
			s.Cooldown.Active = true
			out.Action = ActionErase
		}
	}

	return s, out
}

// turnTo moves to slide i, discards the annotations and starts a cooldown.
func (s State) turnTo(i int) State {
	s.Index = i
	s.Layer = NewLayer()
	s.Cooldown.Active = true
	return s
}
