package main

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/inamate/sketchpad/internal/draw"
	"github.com/inamate/sketchpad/internal/geom"
)

// A terminal cell stands for a block of canvas pixels.
const (
	cellWidth  = 8
	cellHeight = 16
)

type cell struct {
	ch     rune
	fg, bg tcell.Color
}

var blank = cell{ch: ' ', fg: tcell.ColorDefault, bg: tcell.ColorDefault}

type pathElem struct {
	ellipse bool
	box     geom.BBox // rect
	cx, cy  float64   // ellipse center
	rx, ry  float64
	from    float64
	to      float64
}

type drawStyle struct {
	fill   tcell.Color
	stroke tcell.Color
	dashed bool
}

// termSurface rasterizes canvas drawing calls onto a grid of terminal cells.
// It is both the draw.Surface and its draw.Context.
type termSurface struct {
	cols, rows    int // client area in cells
	width, height float64
	gridW, gridH  int
	cells         []cell

	path   []pathElem
	style  drawStyle
	saved  []drawStyle
	cursor string
}

func newTermSurface(cols, rows int) *termSurface {
	s := &termSurface{}
	s.Resize(cols, rows)
	s.SetSize(s.ClientSize())
	return s
}

// Resize sets the client area the canvas occupies on screen.
func (s *termSurface) Resize(cols, rows int) {
	s.cols, s.rows = max(cols, 0), max(rows, 0)
}

func (s *termSurface) ClientSize() (float64, float64) {
	return float64(s.cols * cellWidth), float64(s.rows * cellHeight)
}

func (s *termSurface) Size() (float64, float64) { return s.width, s.height }

func (s *termSurface) SetSize(width, height float64) {
	s.width, s.height = width, height
	s.gridW = int(math.Ceil(width / cellWidth))
	s.gridH = int(math.Ceil(height / cellHeight))
	s.cells = make([]cell, s.gridW*s.gridH)
	for i := range s.cells {
		s.cells[i] = blank
	}
	s.path = nil
	s.saved = nil
	s.style = drawStyle{fill: tcell.ColorBlack, stroke: tcell.ColorBlack}
}

func (s *termSurface) BoundingRect() (geom.BBox, error) {
	w, h := s.ClientSize()
	return geom.BBox{Width: w, Height: h}, nil
}

func (s *termSurface) Context() draw.Context { return s }

// The terminal reports the mouse wherever it goes, so capture is implicit.
func (s *termSurface) SetPointerCapture(int) error     { return nil }
func (s *termSurface) ReleasePointerCapture(int) error { return nil }
func (s *termSurface) Focus()                          {}
func (s *termSurface) SetCursor(cursor string)         { s.cursor = cursor }

func (s *termSurface) Save() { s.saved = append(s.saved, s.style) }

func (s *termSurface) Restore() {
	if n := len(s.saved); n > 0 {
		s.style = s.saved[n-1]
		s.saved = s.saved[:n-1]
	}
}

func (s *termSurface) BeginPath() { s.path = s.path[:0] }

func (s *termSurface) Rect(x, y, width, height float64) {
	s.path = append(s.path, pathElem{box: geom.BBox{Left: x, Top: y, Width: width, Height: height}})
}

func (s *termSurface) Ellipse(x, y, radiusX, radiusY, _, startAngle, endAngle float64) {
	s.path = append(s.path, pathElem{ellipse: true, cx: x, cy: y, rx: radiusX, ry: radiusY, from: startAngle, to: endAngle})
}

func (s *termSurface) SetFillStyle(style string)   { s.style.fill = tcell.GetColor(style) }
func (s *termSurface) SetStrokeStyle(style string) { s.style.stroke = tcell.GetColor(style) }
func (s *termSurface) SetLineWidth(float64)        {}

func (s *termSurface) SetLineDash(segments []float64) { s.style.dashed = len(segments) > 0 }

func (s *termSurface) ClearRect(x, y, width, height float64) {
	s.eachCellIn(x, y, width, height, func(c *cell) { *c = blank })
}

func (s *termSurface) FillRect(x, y, width, height float64) {
	s.eachCellIn(x, y, width, height, func(c *cell) {
		c.ch = ' '
		c.bg = s.style.fill
	})
}

// Fill paints every cell whose center lies inside the current path.
func (s *termSurface) Fill() {
	for row := 0; row < s.gridH; row++ {
		for col := 0; col < s.gridW; col++ {
			p := geom.Point{X: (float64(col) + 0.5) * cellWidth, Y: (float64(row) + 0.5) * cellHeight}
			for _, e := range s.path {
				if e.inside(p) {
					s.cells[row*s.gridW+col].bg = s.style.fill
					break
				}
			}
		}
	}
}

func (s *termSurface) Stroke() {
	for _, e := range s.path {
		if e.ellipse {
			s.strokeEllipse(e)
		} else {
			s.strokeRect(e.box)
		}
	}
}

func (e pathElem) inside(p geom.Point) bool {
	if !e.ellipse {
		return e.box.ContainsPoint(p, 0)
	}
	if e.rx <= 0 || e.ry <= 0 {
		return false
	}
	dx, dy := (p.X-e.cx)/e.rx, (p.Y-e.cy)/e.ry
	return dx*dx+dy*dy <= 1
}

func (s *termSurface) strokeRect(b geom.BBox) {
	c0, r0 := cellAt(b.Left, b.Top)
	c1, r1 := cellAt(b.Right(), b.Bottom())

	h, v := '─', '│'
	if s.style.dashed {
		h, v = '╌', '╎'
	}
	for c := c0 + 1; c < c1; c++ {
		s.plot(c, r0, h)
		s.plot(c, r1, h)
	}
	for r := r0 + 1; r < r1; r++ {
		s.plot(c0, r, v)
		s.plot(c1, r, v)
	}
	s.plot(c0, r0, '┌')
	s.plot(c1, r0, '┐')
	s.plot(c0, r1, '└')
	s.plot(c1, r1, '┘')
}

func (s *termSurface) strokeEllipse(e pathElem) {
	glyph := '•'
	if s.style.dashed {
		glyph = '·'
	}
	steps := max(32, int(4*math.Pi*math.Max(e.rx/cellWidth, e.ry/cellHeight)))
	for i := 0; i <= steps; i++ {
		a := e.from + (e.to-e.from)*float64(i)/float64(steps)
		col, row := cellAt(e.cx+e.rx*math.Cos(a), e.cy+e.ry*math.Sin(a))
		s.plot(col, row, glyph)
	}
}

func cellAt(x, y float64) (int, int) {
	return int(math.Floor(x / cellWidth)), int(math.Floor(y / cellHeight))
}

func (s *termSurface) plot(col, row int, ch rune) {
	if col < 0 || row < 0 || col >= s.gridW || row >= s.gridH {
		return
	}
	c := &s.cells[row*s.gridW+col]
	c.ch = ch
	c.fg = s.style.stroke
}

func (s *termSurface) eachCellIn(x, y, width, height float64, fn func(*cell)) {
	c0, r0 := cellAt(x, y)
	c1 := int(math.Ceil((x + width) / cellWidth))
	r1 := int(math.Ceil((y + height) / cellHeight))
	for row := max(r0, 0); row < min(r1, s.gridH); row++ {
		for col := max(c0, 0); col < min(c1, s.gridW); col++ {
			fn(&s.cells[row*s.gridW+col])
		}
	}
}

// At returns the cell at col, row, or a blank cell outside the grid.
func (s *termSurface) At(col, row int) cell {
	if col < 0 || row < 0 || col >= s.gridW || row >= s.gridH {
		return blank
	}
	return s.cells[row*s.gridW+col]
}

// Show copies the raster onto the client area of screen.
func (s *termSurface) Show(screen tcell.Screen) {
	for row := 0; row < s.rows; row++ {
		for col := 0; col < s.cols; col++ {
			c := s.At(col, row)
			screen.SetContent(col, row, c.ch, nil, tcell.StyleDefault.Foreground(c.fg).Background(c.bg))
		}
	}
}
