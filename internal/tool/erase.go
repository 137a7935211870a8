package tool

import (
	"github.com/inamate/sketchpad/internal/document"
	"github.com/inamate/sketchpad/internal/draw"
	"github.com/inamate/sketchpad/internal/event"
	"github.com/inamate/sketchpad/internal/geom"
)

// EraseMargin is how far outside a shape a click still hits it, in pixels.
const EraseMargin = 10

// Erase removes every shape under a click or under the end of a drag.
type Erase struct{}

func (Erase) Kind() document.ToolKind { return document.ToolErase }
func (Erase) Icon() string            { return "ti-eraser" }
func (Erase) Title() string           { return "Eraser Tool." }

func (Erase) HandleEvent(ev event.Event, preview *Preview, sc Scene) bool {
	switch e := ev.(type) {
	case event.Click:
		return erase(e.At, sc)
	case event.DragEnd:
		return erase(e.End, sc)
	case event.KeyPress:
		if e.Key == KeyEscape {
			return discard(preview, sc)
		}
	}
	return false
}

func erase(at geom.Point, sc Scene) bool {
	var ids []string
	for _, s := range sc.Shapes() {
		if draw.FromShape(s).Contains(at, EraseMargin) {
			ids = append(ids, s.ID)
		}
	}
	if len(ids) == 0 {
		return false
	}
	return sc.RemoveShapes(ids...) > 0
}
