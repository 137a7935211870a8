//go:build js && wasm

package main

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"syscall/js"

	"github.com/inamate/sketchpad/internal/document"
	"github.com/inamate/sketchpad/internal/engine"
	"github.com/inamate/sketchpad/internal/event"
	"github.com/inamate/sketchpad/internal/geom"
	"github.com/inamate/sketchpad/internal/scene"
	"github.com/inamate/sketchpad/internal/tool"
)

// app serializes every store access: JS callbacks and remote updates both go
// through do. Change listeners run after the lock is released so they may call
// back into the API.
type app struct {
	mu        sync.Mutex
	store     *scene.Store
	ctl       *engine.Controller
	listeners []js.Value
	changed   bool
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	doc := js.Global().Get("document")
	canvasID := "canvas"
	if v := js.Global().Get("sketchpadCanvasId"); v.Type() == js.TypeString {
		canvasID = v.String()
	}
	el := doc.Call("getElementById", canvasID)
	if el.IsNull() {
		slog.Error("canvas element not found", "id", canvasID)
		return
	}

	origin := js.Global().Get("location").Get("hostname").String()
	if !document.ValidOrigin(origin) {
		origin = "local"
	}

	ctx := context.Background()
	a := &app{store: scene.NewStore(document.DefaultState())}
	a.store.Subscribe(func(scene.Snapshot) { a.changed = true })

	kv := newLocalStorageKV()
	persist := scene.NewPersistence(a.store, kv, origin, scene.WithDispatch(a.do))
	a.do(func() {
		if err := persist.Load(ctx); err != nil {
			slog.Warn("load scene", "error", err)
		}
		a.ctl = engine.NewController(newCanvasSurface(el), a.store)
	})
	go persist.Run(ctx)
	if err := persist.Watch(ctx, kv); err != nil {
		slog.Warn("watch scene", "error", err)
	}

	a.bindInput(el)

	api := js.Global().Get("Object").New()

	// --- Commands (frontend → core) ---
	api.Set("setTool", a.command(func(args []js.Value) {
		a.store.SetTool(document.ToolKind(argString(args, 0)))
	}))
	api.Set("setColor", a.command(func(args []js.Value) {
		engine.Recolor(a.store, document.ParseColor(argString(args, 0)))
	}))
	api.Set("setBgColor", a.command(func(args []js.Value) {
		engine.Refill(a.store, document.ParseBackgroundColor(argString(args, 0)))
	}))
	api.Set("loadSampleScene", a.command(func(args []js.Value) {
		engine.LoadSample(a.store)
	}))
	api.Set("onChange", js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) > 0 && args[0].Type() == js.TypeFunction {
			a.mu.Lock()
			a.listeners = append(a.listeners, args[0])
			a.mu.Unlock()
		}
		return nil
	}))

	// --- Queries (frontend ← core) ---
	api.Set("getState", a.query(func(args []js.Value) any {
		return stateJSON(a.store)
	}))
	api.Set("hitTest", a.query(func(args []js.Value) any {
		if len(args) < 2 {
			return ""
		}
		return a.ctl.HitTest(geom.Point{X: args[0].Float(), Y: args[1].Float()})
	}))
	api.Set("getSelectionBounds", a.query(func(args []js.Value) any {
		b, ok := a.ctl.SelectionBounds()
		if !ok {
			return nil
		}
		return map[string]any{"left": b.Left, "top": b.Top, "width": b.Width, "height": b.Height}
	}))
	api.Set("tools", a.query(func(args []js.Value) any {
		var tools []any
		for _, t := range tool.All() {
			tools = append(tools, map[string]any{"kind": string(t.Kind()), "icon": t.Icon(), "title": t.Title()})
		}
		return tools
	}))
	api.Set("colors", a.query(func(args []js.Value) any {
		var colors []any
		for _, c := range document.Colors() {
			colors = append(colors, map[string]any{"name": string(c), "css": c.CSS()})
		}
		return colors
	}))
	api.Set("bgColors", a.query(func(args []js.Value) any {
		var colors []any
		for _, c := range document.BackgroundColors() {
			if c.IsSet() {
				colors = append(colors, map[string]any{"name": string(c), "css": c.CSS()})
			}
		}
		return colors
	}))

	// Register on global scope
	js.Global().Set("sketchpad", api)

	// Signal that WASM is ready
	js.Global().Set("sketchpadWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

// do runs fn with exclusive access to the store, then notifies change
// listeners with the new state if fn changed it.
func (a *app) do(fn func()) {
	a.mu.Lock()
	fn()
	changed := a.changed
	a.changed = false
	var state string
	if changed {
		state = stateJSON(a.store)
	}
	listeners := append([]js.Value(nil), a.listeners...)
	a.mu.Unlock()

	if changed {
		for _, l := range listeners {
			l.Invoke(state)
		}
	}
}

func (a *app) command(fn func(args []js.Value)) js.Func {
	return js.FuncOf(func(this js.Value, args []js.Value) any {
		a.do(func() { fn(args) })
		return nil
	})
}

func (a *app) query(fn func(args []js.Value) any) js.Func {
	return js.FuncOf(func(this js.Value, args []js.Value) any {
		var result any
		a.do(func() { result = fn(args) })
		return js.ValueOf(result)
	})
}

func (a *app) bindInput(el js.Value) {
	for _, typ := range []string{event.PointerDown, event.PointerMove, event.PointerUp} {
		el.Call("addEventListener", typ, js.FuncOf(func(this js.Value, args []js.Value) any {
			ev := args[0]
			p := event.Pointer{
				Type:      ev.Get("type").String(),
				ClientX:   ev.Get("clientX").Float(),
				ClientY:   ev.Get("clientY").Float(),
				PointerID: ev.Get("pointerId").Int(),
			}
			var prevent bool
			a.do(func() { prevent = a.ctl.OnPointer(p) })
			if prevent {
				ev.Call("preventDefault")
			}
			return nil
		}))
	}

	el.Call("addEventListener", "keydown", js.FuncOf(func(this js.Value, args []js.Value) any {
		ev := args[0]
		var prevent bool
		a.do(func() { prevent = a.ctl.OnKey(ev.Get("key").String()) })
		if prevent {
			ev.Call("preventDefault")
		}
		return nil
	}))

	js.Global().Call("addEventListener", "resize", js.FuncOf(func(this js.Value, args []js.Value) any {
		a.do(a.ctl.OnResize)
		return nil
	}))
}

func stateJSON(store *scene.Store) string {
	data, err := store.State().Encode()
	if err != nil {
		slog.Error("encode state", "error", err)
		return "{}"
	}
	return string(data)
}

func argString(args []js.Value, i int) string {
	if i >= len(args) || args[i].Type() != js.TypeString {
		return ""
	}
	return args[i].String()
}
