package tool

import (
	"github.com/inamate/sketchpad/internal/document"
	"github.com/inamate/sketchpad/internal/draw"
	"github.com/inamate/sketchpad/internal/event"
	"github.com/inamate/sketchpad/internal/geom"
)

// Select rubber-band selects shapes and deletes the selection on Delete.
type Select struct{}

func (Select) Kind() document.ToolKind { return document.ToolSelect }
func (Select) Icon() string            { return "ti-marquee-2" }
func (Select) Title() string           { return "Selection tool." }

func (Select) HandleEvent(ev event.Event, preview *Preview, sc Scene) bool {
	switch e := ev.(type) {
	case event.PointerStart:
		preview.Clear()
		sc.ReplaceSelected(nil)
		return true

	case event.DragMove:
		area := geom.FromCorner(e.Start, e.End)
		sc.ReplaceSelected(shapesIn(sc.Shapes(), area))
		preview.Set(draw.NewSelection(area))
		return true

	case event.DragEnd:
		area := geom.FromCorner(e.Start, e.End)
		sc.ReplaceSelected(shapesIn(sc.Shapes(), area))
		preview.Clear()
		return true

	case event.DeselectTool:
		preview.Clear()
		sc.ReplaceSelected(nil)
		sc.SetCursor(document.CursorDefault)
		return true

	case event.KeyPress:
		switch e.Key {
		case KeyDelete:
			selected := sc.Selected()
			if len(selected) == 0 {
				return false
			}
			return sc.RemoveShapes(selected...) > 0
		case KeyEscape:
			return discard(preview, sc)
		}
	}
	return false
}

func shapesIn(shapes []document.Shape, area geom.BBox) []string {
	var ids []string
	for _, s := range shapes {
		if draw.FromShape(s).IsIn(area) {
			ids = append(ids, s.ID)
		}
	}
	return ids
}
