package engine

import (
	"github.com/inamate/sketchpad/internal/document"
	"github.com/inamate/sketchpad/internal/draw"
)

// ShapeCache keeps the drawable built for each shape, keyed by id and valid
// for exactly one version of that shape.
type ShapeCache struct {
	entries map[string]cacheEntry
}

type cacheEntry struct {
	version  document.Version
	drawable draw.Drawable
}

func NewShapeCache() *ShapeCache {
	return &ShapeCache{entries: make(map[string]cacheEntry)}
}

// Drawable returns the cached drawable for s, rebuilding it when the cached
// entry is missing or was built from another version.
func (c *ShapeCache) Drawable(s document.Shape) draw.Drawable {
	if e, ok := c.entries[s.ID]; ok && e.version == s.Version {
		return e.drawable
	}
	d := draw.FromShape(s)
	c.entries[s.ID] = cacheEntry{version: s.Version, drawable: d}
	return d
}

// Lookup returns the cached entry for id without rebuilding anything.
func (c *ShapeCache) Lookup(id string) (document.Version, draw.Drawable, bool) {
	e, ok := c.entries[id]
	return e.version, e.drawable, ok
}

// Prune drops entries for shapes that are no longer in the scene.
func (c *ShapeCache) Prune(shapes []document.Shape) {
	if len(c.entries) <= len(shapes) {
		return
	}
	live := make(map[string]bool, len(shapes))
	for _, s := range shapes {
		live[s.ID] = true
	}
	for id := range c.entries {
		if !live[id] {
			delete(c.entries, id)
		}
	}
}

func (c *ShapeCache) Len() int {
	return len(c.entries)
}
