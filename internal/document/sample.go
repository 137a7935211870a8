package document

import "github.com/inamate/sketchpad/internal/geom"

// SampleState returns a small scene used to seed an empty canvas.
func SampleState() State {
	rect := NewShape(KindRectangle, geom.BBox{Left: 40, Top: 40, Width: 160, Height: 100}, ColorDarkBlue, BackgroundCyan)
	ellipse := NewShape(KindEllipse, geom.BBox{Left: 240, Top: 60, Width: 120, Height: 120}, ColorOrange, BackgroundNone)

	st := DefaultState()
	st.Shapes = []Shape{rect, ellipse}
	return st
}
