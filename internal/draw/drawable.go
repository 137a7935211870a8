package draw

import (
	"math"

	"github.com/inamate/sketchpad/internal/document"
	"github.com/inamate/sketchpad/internal/geom"
)

const (
	selectionStroke = "blue"
	selectionDash   = 5.0
)

// Drawable is a value that can trace, draw and hit-test itself. The set of
// implementations is closed: Rectangle, Ellipse and Selection.
type Drawable interface {
	Kind() document.Kind
	BBox() geom.BBox
	// Trace adds the drawable's outline to a fresh path without painting it.
	Trace(ctx Context)
	// Draw paints the drawable with whatever style the context carries,
	// except Selection, which sets its own.
	Draw(ctx Context)
	IsIn(bbox geom.BBox) bool
	Contains(p geom.Point, margin float64) bool

	sealed()
}

// New builds the drawable for kind spanning bbox.
func New(kind document.Kind, bbox geom.BBox) Drawable {
	switch kind {
	case document.KindEllipse:
		return NewEllipse(bbox)
	case document.KindSelection:
		return NewSelection(bbox)
	default:
		return NewRectangle(bbox)
	}
}

// FromShape builds the drawable for a persisted shape.
func FromShape(s document.Shape) Drawable {
	return New(s.Kind, s.BBox)
}

type Rectangle struct {
	box geom.BBox
}

func NewRectangle(bbox geom.BBox) Rectangle {
	return Rectangle{box: bbox}
}

func (r Rectangle) Kind() document.Kind { return document.KindRectangle }
func (r Rectangle) BBox() geom.BBox     { return r.box }
func (r Rectangle) sealed()             {}

func (r Rectangle) Trace(ctx Context) {
	ctx.BeginPath()
	ctx.Rect(r.box.Left, r.box.Top, r.box.Width, r.box.Height)
}

func (r Rectangle) Draw(ctx Context) {
	r.Trace(ctx)
	ctx.Stroke()
}

func (r Rectangle) IsIn(bbox geom.BBox) bool {
	return r.box.In(bbox)
}

func (r Rectangle) Contains(p geom.Point, margin float64) bool {
	return r.box.ContainsPoint(p, margin)
}

// Ellipse is inscribed in its bounding box.
type Ellipse struct {
	center  geom.Point
	radiusX float64
	radiusY float64
}

func NewEllipse(bbox geom.BBox) Ellipse {
	return Ellipse{
		center:  bbox.Center(),
		radiusX: bbox.Width / 2,
		radiusY: bbox.Height / 2,
	}
}

func (e Ellipse) Kind() document.Kind { return document.KindEllipse }
func (e Ellipse) sealed()             {}

func (e Ellipse) BBox() geom.BBox {
	return geom.BBox{
		Left:   e.center.X - e.radiusX,
		Top:    e.center.Y - e.radiusY,
		Width:  e.radiusX + e.radiusX,
		Height: e.radiusY + e.radiusY,
	}
}

func (e Ellipse) Trace(ctx Context) {
	ctx.BeginPath()
	ctx.Ellipse(e.center.X, e.center.Y, e.radiusX, e.radiusY, 0, 0, 2*math.Pi)
}

func (e Ellipse) Draw(ctx Context) {
	e.Trace(ctx)
	ctx.Stroke()
}

func (e Ellipse) IsIn(bbox geom.BBox) bool {
	return e.BBox().In(bbox)
}

// Contains uses the normalized distance test against radii grown by margin.
func (e Ellipse) Contains(p geom.Point, margin float64) bool {
	rx := e.radiusX + margin
	ry := e.radiusY + margin
	if rx <= 0 || ry <= 0 {
		return false
	}
	dx := (p.X - e.center.X) / rx
	dy := (p.Y - e.center.Y) / ry
	return dx*dx+dy*dy <= 1
}

// Selection is a dashed blue frame. It is never filled.
type Selection struct {
	Rectangle
}

func NewSelection(bbox geom.BBox) Selection {
	return Selection{Rectangle: NewRectangle(bbox)}
}

func (s Selection) Kind() document.Kind { return document.KindSelection }

func (s Selection) Draw(ctx Context) {
	ctx.Save()
	ctx.SetStrokeStyle(selectionStroke)
	ctx.SetLineDash([]float64{selectionDash})
	s.Trace(ctx)
	ctx.Stroke()
	ctx.Restore()
}
