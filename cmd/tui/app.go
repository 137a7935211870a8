package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/inamate/sketchpad/internal/document"
	"github.com/inamate/sketchpad/internal/engine"
	"github.com/inamate/sketchpad/internal/event"
	"github.com/inamate/sketchpad/internal/scene"
	"github.com/inamate/sketchpad/internal/tool"
)

var toolKeys = map[rune]document.ToolKind{
	's': document.ToolSelect,
	'r': document.ToolRectangle,
	'o': document.ToolEllipse,
	'e': document.ToolErase,
}

// terminal is the display context: the canvas fills the screen above a one
// line toolbar.
type terminal struct {
	screen  tcell.Screen
	surface *termSurface
	store   *scene.Store
	ctl     *engine.Controller
	mouse   mouseTracker
	sync    string
}

func newTerminal(screen tcell.Screen, store *scene.Store, sync string) *terminal {
	cols, rows := screen.Size()
	t := &terminal{
		screen:  screen,
		surface: newTermSurface(cols, rows-1),
		store:   store,
		sync:    sync,
	}
	t.ctl = engine.NewController(t.surface, store)
	return t
}

// handle reacts to one terminal event. It returns false when the user quits.
func (t *terminal) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return t.handleKey(ev)
	case *tcell.EventMouse:
		t.ctl.OnPointer(t.mouse.pointer(ev))
	case *tcell.EventResize:
		t.screen.Sync()
		cols, rows := ev.Size()
		t.surface.Resize(cols, rows-1)
		t.ctl.OnResize()
	}
	return true
}

func (t *terminal) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return false
	case tcell.KeyEscape:
		t.ctl.OnKey(tool.KeyEscape)
	case tcell.KeyDelete, tcell.KeyBackspace, tcell.KeyBackspace2:
		t.ctl.OnKey(tool.KeyDelete)
	case tcell.KeyRune:
		r := ev.Rune()
		switch {
		case r == 'q', r == 'c' && ev.Modifiers()&tcell.ModCtrl != 0:
			return false
		case r >= '1' && r <= '5':
			engine.Recolor(t.store, document.Colors()[r-'1'])
		case r == '0':
			engine.Refill(t.store, document.BackgroundNone)
		case r >= '6' && r <= '9':
			engine.Refill(t.store, document.BackgroundColors()[r-'5'])
		default:
			if kind, ok := toolKeys[r]; ok {
				t.store.SetTool(kind)
			} else {
				t.ctl.OnKey(string(r))
			}
		}
	}
	return true
}

// show draws the canvas and the toolbar and flushes the screen.
func (t *terminal) show() {
	t.surface.Show(t.screen)

	cols, rows := t.screen.Size()
	y := rows - 1
	bar := tcell.StyleDefault.Reverse(true)
	for x := 0; x < cols; x++ {
		t.screen.SetContent(x, y, ' ', nil, bar)
	}

	x := 0
	for _, tl := range tool.All() {
		label := fmt.Sprintf(" %c:%s ", keyFor(tl.Kind()), tl.Title())
		style := bar
		if tl.Kind() == t.store.Tool() {
			style = tcell.StyleDefault.Bold(true)
		}
		x = t.print(x, y, label, style)
	}
	x = t.print(x, y, fmt.Sprintf(" color:%s", t.store.Color()), bar)
	fill := string(t.store.BgColor())
	if fill == "" {
		fill = "none"
	}
	x = t.print(x, y, fmt.Sprintf(" fill:%s", fill), bar)
	t.print(x, y, fmt.Sprintf(" [%s]", t.sync), bar)

	t.screen.Show()
}

func (t *terminal) print(x, y int, s string, style tcell.Style) int {
	for _, r := range s {
		t.screen.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}

func keyFor(kind document.ToolKind) rune {
	for r, k := range toolKeys {
		if k == kind {
			return r
		}
	}
	return '?'
}

// mouseTracker turns terminal mouse reports into pointer events. The
// terminal only reports button state, so transitions are derived from the
// previous report.
type mouseTracker struct {
	down bool
}

func (m *mouseTracker) pointer(ev *tcell.EventMouse) event.Pointer {
	x, y := ev.Position()
	pressed := ev.Buttons()&tcell.Button1 != 0

	typ := event.PointerMove
	switch {
	case pressed && !m.down:
		typ = event.PointerDown
	case !pressed && m.down:
		typ = event.PointerUp
	}
	m.down = pressed

	return event.Pointer{
		Type:      typ,
		ClientX:   (float64(x) + 0.5) * cellWidth,
		ClientY:   (float64(y) + 0.5) * cellHeight,
		PointerID: 1,
	}
}
