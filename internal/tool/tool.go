// Package tool implements the interaction modes that turn canvas events into
// scene mutations and a preview drawable.
package tool

import (
	"github.com/inamate/sketchpad/internal/document"
	"github.com/inamate/sketchpad/internal/draw"
	"github.com/inamate/sketchpad/internal/event"
)

// Key names tools react to.
const (
	KeyDelete = "Delete"
	KeyEscape = "Escape"
)

// Scene is the part of the scene store tools read and mutate.
type Scene interface {
	Shapes() []document.Shape
	Selected() []string
	Color() document.Color
	BgColor() document.BackgroundColor

	AddShape(shape document.Shape)
	RemoveShapes(ids ...string) int
	ReplaceSelected(ids []string)
	SetTool(tool document.ToolKind)
	SetCursor(cursor string)
	ForceRedraw()
}

// Tool maps canvas events to scene mutations. Tools are stateless values;
// anything that must survive between events lives in the Preview or is
// carried by the event itself.
type Tool interface {
	Kind() document.ToolKind
	// Icon is the toolbar icon class.
	Icon() string
	// Title is the toolbar tooltip.
	Title() string
	// HandleEvent returns true when the event changed something, in which
	// case the caller suppresses the platform default for the input.
	HandleEvent(ev event.Event, preview *Preview, sc Scene) bool
}

var (
	selectTool = Select{}
	eraseTool  = Erase{}

	rectangleTool = Shape{
		tool:  document.ToolRectangle,
		shape: document.KindRectangle,
		icon:  "ti-square",
		title: "Rectangle drawing tool.",
	}

	ellipseTool = Shape{
		tool:  document.ToolEllipse,
		shape: document.KindEllipse,
		icon:  "ti-circle",
		title: "Ellipse drawing tool.",
	}
)

// All lists the tools in toolbar order.
func All() []Tool {
	return []Tool{selectTool, rectangleTool, ellipseTool, eraseTool}
}

// For returns the tool for kind, or the select tool for unknown kinds.
func For(kind document.ToolKind) Tool {
	for _, t := range All() {
		if t.Kind() == kind {
			return t
		}
	}
	return selectTool
}

// Preview holds the drawable shown above the scene while a gesture is in
// progress. The zero value is empty.
type Preview struct {
	d draw.Drawable
}

func (p *Preview) Set(d draw.Drawable) {
	p.d = d
}

// Clear empties the slot and reports whether it held anything.
func (p *Preview) Clear() bool {
	had := p.d != nil
	p.d = nil
	return had
}

// Get returns the preview drawable, or nil.
func (p *Preview) Get() draw.Drawable {
	return p.d
}

func (p *Preview) Empty() bool {
	return p.d == nil
}

// discard handles Escape for every tool.
func discard(preview *Preview, sc Scene) bool {
	if !preview.Clear() {
		return false
	}
	sc.ForceRedraw()
	return true
}
