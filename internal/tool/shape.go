package tool

import (
	"github.com/inamate/sketchpad/internal/document"
	"github.com/inamate/sketchpad/internal/draw"
	"github.com/inamate/sketchpad/internal/event"
	"github.com/inamate/sketchpad/internal/geom"
)

// Shape draws one kind of shape by dragging out its bounding box. After a
// shape is committed it is selected and the select tool becomes active.
type Shape struct {
	tool  document.ToolKind
	shape document.Kind
	icon  string
	title string
}

func (t Shape) Kind() document.ToolKind { return t.tool }
func (t Shape) Icon() string            { return t.icon }
func (t Shape) Title() string           { return t.title }

// ShapeKind is the kind of shape the tool creates.
func (t Shape) ShapeKind() document.Kind { return t.shape }

func (t Shape) HandleEvent(ev event.Event, preview *Preview, sc Scene) bool {
	switch e := ev.(type) {
	case event.SelectTool:
		sc.SetCursor(document.CursorCrosshair)
		return true

	case event.DeselectTool:
		if preview.Clear() {
			sc.ForceRedraw()
		}
		sc.SetCursor(document.CursorDefault)
		return true

	case event.DragMove:
		preview.Set(draw.New(t.shape, geom.FromCorner(e.Start, e.End)))
		sc.ForceRedraw()
		return true

	case event.DragEnd:
		shape := document.NewShape(t.shape, geom.FromCorner(e.Start, e.End), sc.Color(), sc.BgColor())
		sc.AddShape(shape)
		sc.ReplaceSelected([]string{shape.ID})
		preview.Clear()
		sc.SetTool(document.ToolSelect)
		return true

	case event.KeyPress:
		if e.Key == KeyEscape {
			return discard(preview, sc)
		}
	}
	return false
}
