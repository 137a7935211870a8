// Package event defines the semantic canvas events that tools consume.
package event

import (
	"fmt"

	"github.com/inamate/sketchpad/internal/geom"
)

// Event is one of PointerStart, Hover, DragMove, DragEnd, Click, KeyPress,
// SelectTool or DeselectTool.
type Event interface {
	fmt.Stringer
	isEvent()
}

type PointerStart struct {
	At geom.Point
}

type Hover struct {
	At geom.Point
}

// DragMove reports the pointer at End while held since Start.
type DragMove struct {
	Start geom.Point
	End   geom.Point
}

type DragEnd struct {
	Start geom.Point
	End   geom.Point
}

type Click struct {
	At geom.Point
}

// KeyPress carries the platform key name ("Delete", "Escape", "a", ...).
type KeyPress struct {
	Key string
}

// SelectTool is delivered to a tool when it becomes active.
type SelectTool struct{}

// DeselectTool is delivered to a tool just before it is replaced.
type DeselectTool struct{}

func (PointerStart) isEvent() {}
func (Hover) isEvent()        {}
func (DragMove) isEvent()     {}
func (DragEnd) isEvent()      {}
func (Click) isEvent()        {}
func (KeyPress) isEvent()     {}
func (SelectTool) isEvent()   {}
func (DeselectTool) isEvent() {}

func (e PointerStart) String() string { return fmt.Sprintf("PointerStart(%g,%g)", e.At.X, e.At.Y) }
func (e Hover) String() string        { return fmt.Sprintf("Hover(%g,%g)", e.At.X, e.At.Y) }
func (e Click) String() string        { return fmt.Sprintf("Click(%g,%g)", e.At.X, e.At.Y) }
func (e KeyPress) String() string     { return fmt.Sprintf("KeyPress(%q)", e.Key) }
func (SelectTool) String() string     { return "SelectTool" }
func (DeselectTool) String() string   { return "DeselectTool" }

func (e DragMove) String() string {
	return fmt.Sprintf("DragMove((%g,%g),(%g,%g))", e.Start.X, e.Start.Y, e.End.X, e.End.Y)
}

func (e DragEnd) String() string {
	return fmt.Sprintf("DragEnd((%g,%g),(%g,%g))", e.Start.X, e.Start.Y, e.End.X, e.End.Y)
}

// Pointer input types as delivered by the platform.
const (
	PointerDown = "pointerdown"
	PointerMove = "pointermove"
	PointerUp   = "pointerup"
)

// Pointer is a raw pointer event in screen coordinates.
type Pointer struct {
	Type      string
	ClientX   float64
	ClientY   float64
	PointerID int
}
