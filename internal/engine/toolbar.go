package engine

import (
	"github.com/inamate/sketchpad/internal/document"
	"github.com/inamate/sketchpad/internal/scene"
)

// Recolor makes c the stroke color for new shapes and applies it to the
// selected shapes, as one change.
func Recolor(store *scene.Store, c document.Color) {
	store.Update(func() {
		store.SetColor(c)
		store.ModifySelected(func(s *document.Shape) { s.SetColor(c) })
	})
}

// Refill is Recolor for the fill color.
func Refill(store *scene.Store, bg document.BackgroundColor) {
	store.Update(func() {
		store.SetBgColor(bg)
		store.ModifySelected(func(s *document.Shape) { s.SetBgColor(bg) })
	})
}

// LoadSample replaces the scene's shapes with the sample scene's. It is a
// local change, so it is persisted and replicated like any other.
func LoadSample(store *scene.Store) {
	store.Update(func() {
		var ids []string
		for _, s := range store.Shapes() {
			ids = append(ids, s.ID)
		}
		store.RemoveShapes(ids...)
		for _, s := range document.SampleState().Shapes {
			store.AddShape(s)
		}
	})
}
