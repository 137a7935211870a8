package document

import (
	"github.com/inamate/sketchpad/internal/geom"
	"github.com/inamate/sketchpad/internal/typeid"
)

// Version is a monotonic change counter. Increment wraps on overflow.
type Version uint64

func (v *Version) Increment() {
	*v++
}

type Kind string

const (
	KindRectangle Kind = "Rectangle"
	KindEllipse   Kind = "Ellipse"
	KindSelection Kind = "Selection"
)

// ParseKind maps a persisted kind name to a Kind, falling back to KindRectangle.
func ParseKind(s string) Kind {
	switch k := Kind(s); k {
	case KindRectangle, KindEllipse, KindSelection:
		return k
	default:
		return KindRectangle
	}
}

type ToolKind string

const (
	ToolSelect    ToolKind = "SelectTool"
	ToolRectangle ToolKind = "RectangleTool"
	ToolEllipse   ToolKind = "EllipseTool"
	ToolErase     ToolKind = "EraseTool"
)

// ParseToolKind maps a persisted tool name to a ToolKind, falling back to ToolSelect.
func ParseToolKind(s string) ToolKind {
	switch t := ToolKind(s); t {
	case ToolSelect, ToolRectangle, ToolEllipse, ToolErase:
		return t
	default:
		return ToolSelect
	}
}

// Shape is a persisted scene element. Two shapes are equal iff both ID and
// Version match; every change to geometry, stroke or fill bumps Version.
type Shape struct {
	ID      string          `json:"id"`
	BBox    geom.BBox       `json:"bbox"`
	Kind    Kind            `json:"kind"`
	Version Version         `json:"version"`
	Color   Color           `json:"color"`
	BgColor BackgroundColor `json:"bgColor"`
}

// NewShape creates a shape with a fresh id at version zero.
func NewShape(kind Kind, bbox geom.BBox, color Color, bg BackgroundColor) Shape {
	return Shape{
		ID:      typeid.NewShapeID(),
		BBox:    bbox,
		Kind:    kind,
		Color:   color,
		BgColor: bg,
	}
}

func (s Shape) Equal(other Shape) bool {
	return s.ID == other.ID && s.Version == other.Version
}

// SetColor changes the stroke color. The caller owns the version bump.
func (s *Shape) SetColor(c Color) {
	s.Color = c
}

// SetBgColor changes the fill color. The caller owns the version bump.
func (s *Shape) SetBgColor(bg BackgroundColor) {
	s.BgColor = bg
}

func (s *Shape) normalize() {
	if s.ID == "" {
		s.ID = typeid.NewShapeID()
	}
	s.Kind = ParseKind(string(s.Kind))
	s.Color = ParseColor(string(s.Color))
	s.BgColor = ParseBackgroundColor(string(s.BgColor))
	if s.BBox.Width < 0 || s.BBox.Height < 0 {
		s.BBox = geom.FromCorner(
			geom.Pt(s.BBox.Left, s.BBox.Top),
			geom.Pt(s.BBox.Right(), s.BBox.Bottom()),
		)
	}
}
