//go:build js && wasm

package main

import (
	"fmt"
	"syscall/js"

	"github.com/inamate/sketchpad/internal/draw"
	"github.com/inamate/sketchpad/internal/geom"
)

// canvasSurface is a draw.Surface over an HTMLCanvasElement.
type canvasSurface struct {
	el  js.Value
	ctx canvasContext
}

func newCanvasSurface(el js.Value) *canvasSurface {
	el.Set("tabIndex", 0)
	el.Get("style").Set("touchAction", "none")
	return &canvasSurface{el: el, ctx: canvasContext{v: el.Call("getContext", "2d")}}
}

func (s *canvasSurface) ClientSize() (float64, float64) {
	return s.el.Get("clientWidth").Float(), s.el.Get("clientHeight").Float()
}

func (s *canvasSurface) Size() (float64, float64) {
	return s.el.Get("width").Float(), s.el.Get("height").Float()
}

func (s *canvasSurface) SetSize(width, height float64) {
	s.el.Set("width", width)
	s.el.Set("height", height)
}

func (s *canvasSurface) BoundingRect() (geom.BBox, error) {
	if !s.el.Get("isConnected").Truthy() {
		return geom.BBox{}, draw.ErrDetached
	}
	r := s.el.Call("getBoundingClientRect")
	return geom.BBox{
		Left:   r.Get("left").Float(),
		Top:    r.Get("top").Float(),
		Width:  r.Get("width").Float(),
		Height: r.Get("height").Float(),
	}, nil
}

func (s *canvasSurface) Context() draw.Context { return s.ctx }

func (s *canvasSurface) SetPointerCapture(pointerID int) error {
	return s.call("setPointerCapture", pointerID)
}

func (s *canvasSurface) ReleasePointerCapture(pointerID int) error {
	return s.call("releasePointerCapture", pointerID)
}

func (s *canvasSurface) Focus() { s.el.Call("focus") }

func (s *canvasSurface) SetCursor(cursor string) {
	s.el.Get("style").Set("cursor", cursor)
}

// call invokes a method that throws when the element is detached or the
// pointer is unknown, returning the exception as an error.
func (s *canvasSurface) call(method string, args ...any) (err error) {
	if !s.el.Get("isConnected").Truthy() {
		return draw.ErrDetached
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: %v: %w", method, r, draw.ErrDetached)
		}
	}()
	s.el.Call(method, args...)
	return nil
}

// canvasContext is a draw.Context over a CanvasRenderingContext2D.
type canvasContext struct {
	v js.Value
}

func (c canvasContext) Save()      { c.v.Call("save") }
func (c canvasContext) Restore()   { c.v.Call("restore") }
func (c canvasContext) BeginPath() { c.v.Call("beginPath") }
func (c canvasContext) Fill()      { c.v.Call("fill") }
func (c canvasContext) Stroke()    { c.v.Call("stroke") }

func (c canvasContext) Rect(x, y, width, height float64) {
	c.v.Call("rect", x, y, width, height)
}

func (c canvasContext) Ellipse(x, y, radiusX, radiusY, rotation, startAngle, endAngle float64) {
	c.v.Call("ellipse", x, y, radiusX, radiusY, rotation, startAngle, endAngle)
}

func (c canvasContext) ClearRect(x, y, width, height float64) {
	c.v.Call("clearRect", x, y, width, height)
}

func (c canvasContext) FillRect(x, y, width, height float64) {
	c.v.Call("fillRect", x, y, width, height)
}

func (c canvasContext) SetFillStyle(style string)   { c.v.Set("fillStyle", style) }
func (c canvasContext) SetStrokeStyle(style string) { c.v.Set("strokeStyle", style) }
func (c canvasContext) SetLineWidth(width float64)  { c.v.Set("lineWidth", width) }

func (c canvasContext) SetLineDash(segments []float64) {
	arr := make([]any, len(segments))
	for i, s := range segments {
		arr[i] = s
	}
	c.v.Call("setLineDash", arr)
}
