package engine

import (
	"github.com/inamate/sketchpad/internal/document"
	"github.com/inamate/sketchpad/internal/draw"
	"github.com/inamate/sketchpad/internal/geom"
)

const (
	// SelectionPadding is the gap between a selected shape and its frame.
	SelectionPadding = 5
	StrokeWidth      = 1.5
	Background       = "white"
)

// Renderer redraws a whole scene onto a surface. It owns the shape cache.
type Renderer struct {
	cache *ShapeCache
}

func NewRenderer() *Renderer {
	return &Renderer{cache: NewShapeCache()}
}

func (r *Renderer) Cache() *ShapeCache {
	return r.cache
}

// Render resizes the surface to its client size and draws, in painter's
// order: the background, every shape, a frame around each selected shape,
// a group frame around all of them, and finally the preview if any.
func (r *Renderer) Render(s draw.Surface, st document.State, preview draw.Drawable) {
	width, height := s.ClientSize()
	s.SetSize(width, height)

	ctx := s.Context()
	ctx.ClearRect(0, 0, width, height)
	ctx.SetFillStyle(Background)
	ctx.FillRect(0, 0, width, height)

	selected := make(map[string]bool, len(st.Selected))
	for _, id := range st.Selected {
		selected[id] = true
	}

	var frames []geom.BBox
	for _, shape := range st.Shapes {
		d := r.cache.Drawable(shape)

		d.Trace(ctx)
		if shape.BgColor.IsSet() {
			ctx.SetFillStyle(shape.BgColor.CSS())
			ctx.Fill()
		}
		ctx.SetStrokeStyle(shape.Color.CSS())
		ctx.SetLineWidth(StrokeWidth)
		ctx.Stroke()

		if selected[shape.ID] {
			frames = append(frames, shape.BBox.Padded(SelectionPadding))
		}
	}

	if len(frames) > 0 {
		group := frames[0]
		for _, f := range frames {
			draw.NewSelection(f).Draw(ctx)
			group.AddBBox(f)
		}
		draw.NewSelection(group).Draw(ctx)
	}

	if preview != nil {
		ctx.SetLineDash(nil)
		ctx.SetStrokeStyle(st.Color.CSS())
		ctx.SetLineWidth(StrokeWidth)
		preview.Draw(ctx)
	}

	r.cache.Prune(st.Shapes)
}
