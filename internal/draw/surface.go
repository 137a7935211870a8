// Package draw defines the drawing surface contract consumed by the core and
// the drawables that render shapes, selections and tool previews onto it.
package draw

import (
	"errors"

	"github.com/inamate/sketchpad/internal/geom"
)

// ErrDetached is returned by surface operations when the backing element is
// missing or no longer attached to its display.
var ErrDetached = errors.New("surface detached")

// Context is the 2-D drawing interface of a surface. Its method set mirrors
// the subset of CanvasRenderingContext2D the renderer needs.
type Context interface {
	Save()
	Restore()
	BeginPath()
	Rect(x, y, width, height float64)
	Ellipse(x, y, radiusX, radiusY, rotation, startAngle, endAngle float64)
	SetFillStyle(style string)
	SetStrokeStyle(style string)
	SetLineWidth(width float64)
	SetLineDash(segments []float64)
	ClearRect(x, y, width, height float64)
	FillRect(x, y, width, height float64)
	Fill()
	Stroke()
}

// Surface is the element hosting the canvas.
type Surface interface {
	// ClientSize is the measured on-screen size of the element.
	ClientSize() (width, height float64)
	// Size is the bitmap size of the canvas.
	Size() (width, height float64)
	// SetSize resizes the bitmap, which clears it and resets context state.
	SetSize(width, height float64)
	// BoundingRect is the element's rectangle in screen coordinates.
	BoundingRect() (geom.BBox, error)
	Context() Context
	SetPointerCapture(pointerID int) error
	ReleasePointerCapture(pointerID int) error
	Focus()
	SetCursor(cursor string)
}
