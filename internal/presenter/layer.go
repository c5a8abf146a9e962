package presenter

import (
	"image"
	"slices"
)

// Stroke is one continuous freehand annotation, in display coordinates.
type Stroke []image.Point

// Layer is the annotation overlay of the current slide.
//
// Active indexes the stroke being drawn, or is -1 when the layer is empty; when set it
// always references the last stroke. Layer values are never modified in place: every
// operation returns a new Layer, so an older State keeps its strokes.
type Layer struct {
	Strokes []Stroke
	Active  int
}

// NewLayer returns an empty layer.
func NewLayer() Layer {
	return Layer{Active: -1}
}

// Len returns the number of strokes.
func (l Layer) Len() int {
	return len(l.Strokes)
}

// Empty reports whether the layer has no stroke to erase.
func (l Layer) Empty() bool {
	return l.Active < 0
}

// Begin starts a new, empty stroke and makes it active.
func (l Layer) Begin() Layer {
	strokes := append(slices.Clip(l.Strokes), Stroke{})
	return Layer{Strokes: strokes, Active: len(strokes) - 1}
}

// Extend appends p to the active stroke, starting one if the layer is empty.
func (l Layer) Extend(p image.Point) Layer {
	if l.Empty() {
		l = l.Begin()
	}
	strokes := slices.Clone(l.Strokes)
	strokes[l.Active] = append(slices.Clip(strokes[l.Active]), p)
	return Layer{Strokes: strokes, Active: l.Active}
}

// Undo removes the most recent stroke. An empty layer is returned unchanged.
func (l Layer) Undo() Layer {
	if l.Empty() {
		return l
	}
	strokes := slices.Clip(l.Strokes[:len(l.Strokes)-1])
	return Layer{Strokes: strokes, Active: l.Active - 1}
}
