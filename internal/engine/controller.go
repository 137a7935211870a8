package engine

import (
	"log/slog"

	"github.com/inamate/sketchpad/internal/draw"
	"github.com/inamate/sketchpad/internal/event"
	"github.com/inamate/sketchpad/internal/geom"
	"github.com/inamate/sketchpad/internal/gesture"
	"github.com/inamate/sketchpad/internal/scene"
	"github.com/inamate/sketchpad/internal/tool"
)

// Controller binds a surface to a scene store. It owns the gesture
// recognizer, the active tool and the preview, forwards input to the tool,
// and redraws the surface after every published change.
type Controller struct {
	surface    draw.Surface
	store      *scene.Store
	renderer   *Renderer
	recognizer *gesture.Recognizer
	logger     *slog.Logger

	active  tool.Tool
	preview tool.Preview

	unsubscribe func()
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

func WithLogger(l *slog.Logger) ControllerOption { return func(c *Controller) { c.logger = l } }

// WithRenderer shares a renderer, and so its shape cache, with the caller.
func WithRenderer(r *Renderer) ControllerOption { return func(c *Controller) { c.renderer = r } }

// NewController activates the store's current tool and draws the scene once.
func NewController(surface draw.Surface, store *scene.Store, opts ...ControllerOption) *Controller {
	c := &Controller{
		surface:    surface,
		store:      store,
		recognizer: gesture.New(),
		logger:     slog.Default(),
		active:     tool.For(store.Tool()),
	}
	for _, o := range opts {
		o(c)
	}
	if c.renderer == nil {
		c.renderer = NewRenderer()
	}

	c.unsubscribe = store.Subscribe(c.onSnapshot)
	c.store.Update(func() {
		c.active.HandleEvent(event.SelectTool{}, &c.preview, c.store)
	})
	c.Redraw()
	return c
}

// Close detaches the controller from the store.
func (c *Controller) Close() {
	c.unsubscribe()
}

func (c *Controller) Tool() tool.Tool {
	return c.active
}

// Preview returns the drawable shown above the scene, or nil.
func (c *Controller) Preview() draw.Drawable {
	return c.preview.Get()
}

func (c *Controller) Renderer() *Renderer {
	return c.renderer
}

// OnPointer handles a raw pointer event and reports whether the platform
// default action should be prevented.
func (c *Controller) OnPointer(p event.Pointer) bool {
	c.surface.Focus()
	ev, err := c.recognizer.Process(c.surface, p)
	if err != nil {
		c.logger.Debug("drop pointer event", "type", p.Type, "error", err)
		return false
	}
	if ev == nil {
		return false
	}
	return c.dispatch(ev)
}

// OnKey handles a key press and reports whether the platform default action
// should be prevented.
func (c *Controller) OnKey(key string) bool {
	return c.dispatch(event.KeyPress{Key: key})
}

// OnResize redraws at the surface's new size. The scene is unchanged.
func (c *Controller) OnResize() {
	c.Redraw()
}

// Redraw draws the current scene and applies its cursor.
func (c *Controller) Redraw() {
	st := c.store.State()
	c.renderer.Render(c.surface, st, c.preview.Get())
	c.surface.SetCursor(st.Cursor)
}

// HitTest returns the id of the topmost shape containing p, or "".
func (c *Controller) HitTest(p geom.Point) string {
	shapes := c.store.Shapes()
	for i := len(shapes) - 1; i >= 0; i-- {
		if c.renderer.cache.Drawable(shapes[i]).Contains(p, 0) {
			return shapes[i].ID
		}
	}
	return ""
}

// SelectionBounds returns the union of the selected shapes' boxes.
func (c *Controller) SelectionBounds() (geom.BBox, bool) {
	var (
		bounds geom.BBox
		found  bool
	)
	for _, s := range c.store.Shapes() {
		if !c.store.IsSelected(s.ID) {
			continue
		}
		if !found {
			bounds, found = s.BBox, true
			continue
		}
		bounds.AddBBox(s.BBox)
	}
	return bounds, found
}

// dispatch delivers ev to the active tool as a single store batch.
func (c *Controller) dispatch(ev event.Event) bool {
	var changed bool
	c.store.Update(func() {
		changed = c.active.HandleEvent(ev, &c.preview, c.store)
	})
	if changed {
		c.logger.Debug("canvas event", "event", ev.String(), "tool", c.active.Kind())
	}
	return changed
}

func (c *Controller) onSnapshot(snap scene.Snapshot) {
	if next := tool.For(snap.Tool); next.Kind() != c.active.Kind() {
		c.switchTool(next)
	}
	c.Redraw()
}

// switchTool deselects the active tool, swaps in next and selects it. A
// gesture in progress is abandoned.
func (c *Controller) switchTool(next tool.Tool) {
	c.store.Update(func() {
		c.active.HandleEvent(event.DeselectTool{}, &c.preview, c.store)
		c.active = next
		c.recognizer.Reset()
		c.active.HandleEvent(event.SelectTool{}, &c.preview, c.store)
	})
}
