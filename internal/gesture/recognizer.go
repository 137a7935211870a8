// Package gesture lifts raw pointer events into canvas events.
package gesture

import (
	"errors"
	"fmt"

	"github.com/inamate/sketchpad/internal/draw"
	"github.com/inamate/sketchpad/internal/event"
	"github.com/inamate/sketchpad/internal/geom"
)

// ErrEmptyRect is returned when the surface has no on-screen area, so screen
// coordinates cannot be mapped onto it.
var ErrEmptyRect = errors.New("surface has empty bounding rect")

// Recognizer remembers the last canvas event it emitted and uses it to decide
// whether a move is a drag or a hover and whether a release is a click or the
// end of a drag.
type Recognizer struct {
	last event.Event
}

func New() *Recognizer {
	return &Recognizer{}
}

// Last returns the last emitted canvas event, or nil.
func (r *Recognizer) Last() event.Event {
	return r.last
}

// Reset forgets any gesture in progress.
func (r *Recognizer) Reset() {
	r.last = nil
}

// Process maps p onto the surface and returns the resulting canvas event. A
// nil event with a nil error means the input produced nothing. On error the
// input is dropped and the recognizer state is left untouched.
func (r *Recognizer) Process(s draw.Surface, p event.Pointer) (event.Event, error) {
	at, err := Position(s, p)
	if err != nil {
		return nil, err
	}

	var out event.Event
	switch p.Type {
	case event.PointerDown:
		if err := s.SetPointerCapture(p.PointerID); err != nil {
			return nil, fmt.Errorf("capture pointer %d: %w", p.PointerID, err)
		}
		out = event.PointerStart{At: at}

	case event.PointerMove:
		switch last := r.last.(type) {
		case event.PointerStart:
			out = event.DragMove{Start: last.At, End: at}
		case event.DragMove:
			out = event.DragMove{Start: last.Start, End: at}
		default:
			out = event.Hover{At: at}
		}

	case event.PointerUp:
		if err := s.ReleasePointerCapture(p.PointerID); err != nil {
			return nil, fmt.Errorf("release pointer %d: %w", p.PointerID, err)
		}
		switch last := r.last.(type) {
		case event.PointerStart:
			out = event.Click{At: at}
		case event.DragMove:
			out = event.DragEnd{Start: last.Start, End: at}
		}
	}

	r.last = out
	return out, nil
}

// Position converts screen coordinates to canvas pixel coordinates, scaling
// by the ratio of the canvas bitmap size to its on-screen size.
func Position(s draw.Surface, p event.Pointer) (geom.Point, error) {
	rect, err := s.BoundingRect()
	if err != nil {
		return geom.Point{}, fmt.Errorf("bounding rect: %w", err)
	}
	if rect.Width <= 0 || rect.Height <= 0 {
		return geom.Point{}, ErrEmptyRect
	}
	width, height := s.Size()
	return geom.Point{
		X: (p.ClientX - rect.Left) * (width / rect.Width),
		Y: (p.ClientY - rect.Top) * (height / rect.Height),
	}, nil
}
