// Package geom holds the canvas-space geometry shared by shapes, tools and the renderer.
package geom

import "math"

// Point is a position in canvas pixel space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// BBox is an axis-aligned bounding box. Width and Height are never negative
// for boxes built through FromCorner.
type BBox struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// FromCorner returns the normalized box spanning two opposite corners.
func FromCorner(a, b Point) BBox {
	return BBox{
		Left:   math.Min(a.X, b.X),
		Top:    math.Min(a.Y, b.Y),
		Width:  math.Abs(a.X - b.X),
		Height: math.Abs(a.Y - b.Y),
	}
}

// Right returns Left + Width.
func (b BBox) Right() float64 {
	return b.Left + b.Width
}

// Bottom returns Top + Height.
func (b BBox) Bottom() float64 {
	return b.Top + b.Height
}

// Center returns the center point of the box.
func (b BBox) Center() Point {
	return Point{X: b.Left + b.Width/2, Y: b.Top + b.Height/2}
}

// Contains reports whether other lies entirely within b.
func (b BBox) Contains(other BBox) bool {
	return b.Left <= other.Left &&
		b.Top <= other.Top &&
		other.Right() <= b.Right() &&
		other.Bottom() <= b.Bottom()
}

// In reports whether b lies entirely within other.
func (b BBox) In(other BBox) bool {
	return other.Contains(b)
}

// ContainsPoint reports whether p lies inside b grown by margin on every side.
func (b BBox) ContainsPoint(p Point, margin float64) bool {
	return b.Top-margin <= p.Y && p.Y <= b.Bottom()+margin &&
		b.Left-margin <= p.X && p.X <= b.Right()+margin
}

// AddPadding grows b by p on all four sides.
func (b *BBox) AddPadding(p float64) {
	b.Left -= p
	b.Top -= p
	b.Width += p + p
	b.Height += p + p
}

// AddBBox replaces b with the axis-aligned union of b and other.
func (b *BBox) AddBBox(other BBox) {
	left := math.Min(b.Left, other.Left)
	top := math.Min(b.Top, other.Top)
	right := math.Max(b.Right(), other.Right())
	bottom := math.Max(b.Bottom(), other.Bottom())

	b.Left = left
	b.Top = top
	b.Width = right - left
	b.Height = bottom - top
}

// Padded returns a copy of b grown by p on all four sides.
func (b BBox) Padded(p float64) BBox {
	b.AddPadding(p)
	return b
}
