package tool

import (
	"testing"

	"github.com/inamate/sketchpad/internal/document"
	"github.com/inamate/sketchpad/internal/draw"
	"github.com/inamate/sketchpad/internal/event"
	"github.com/inamate/sketchpad/internal/geom"
	"github.com/inamate/sketchpad/internal/scene"
)

func rect(l, t, w, h float64) document.Shape {
	return document.NewShape(document.KindRectangle, geom.BBox{Left: l, Top: t, Width: w, Height: h}, document.ColorBlack, document.BackgroundNone)
}

func newScene(tool document.ToolKind, shapes ...document.Shape) *scene.Store {
	st := document.DefaultState()
	st.Tool = tool
	st.Shapes = shapes
	return scene.NewStore(st)
}

func TestRectangleDrawAndReselect(t *testing.T) {
	sc := newScene(document.ToolRectangle)
	sc.SetColor(document.ColorGreen)
	var preview Preview
	tl := For(document.ToolRectangle)

	start, end := geom.Pt(10, 10), geom.Pt(50, 40)
	tl.HandleEvent(event.PointerStart{At: start}, &preview, sc)
	if !tl.HandleEvent(event.DragMove{Start: start, End: end}, &preview, sc) {
		t.Fatal("DragMove should report a change")
	}
	if preview.Empty() || preview.Get().Kind() != document.KindRectangle {
		t.Fatalf("preview = %v, want rectangle", preview.Get())
	}
	if !tl.HandleEvent(event.DragEnd{Start: start, End: end}, &preview, sc) {
		t.Fatal("DragEnd should report a change")
	}

	shapes := sc.Shapes()
	if len(shapes) != 1 {
		t.Fatalf("got %d shapes, want 1", len(shapes))
	}
	s := shapes[0]
	if s.Kind != document.KindRectangle || s.Color != document.ColorGreen || s.BgColor.IsSet() {
		t.Errorf("shape = %+v", s)
	}
	if s.BBox != (geom.BBox{Left: 10, Top: 10, Width: 40, Height: 30}) {
		t.Errorf("bbox = %+v", s.BBox)
	}
	if sel := sc.Selected(); len(sel) != 1 || sel[0] != s.ID {
		t.Errorf("selected = %v, want [%s]", sel, s.ID)
	}
	if sc.Tool() != document.ToolSelect {
		t.Errorf("tool = %q, want SelectTool", sc.Tool())
	}
	if !preview.Empty() {
		t.Error("preview should be cleared")
	}
}

func TestEllipseToolUsesBackground(t *testing.T) {
	sc := newScene(document.ToolEllipse)
	sc.SetBgColor(document.BackgroundYellow)
	var preview Preview

	For(document.ToolEllipse).HandleEvent(event.DragEnd{Start: geom.Pt(60, 60), End: geom.Pt(0, 0)}, &preview, sc)

	s := sc.Shapes()[0]
	if s.Kind != document.KindEllipse || s.BgColor != document.BackgroundYellow {
		t.Errorf("shape = %+v", s)
	}
	if s.BBox != (geom.BBox{Width: 60, Height: 60}) {
		t.Errorf("bbox = %+v", s.BBox)
	}
}

func TestRubberBandSelect(t *testing.T) {
	a := rect(0, 0, 10, 10)
	b := rect(100, 100, 10, 10)
	sc := newScene(document.ToolSelect, a, b)
	var preview Preview
	tl := For(document.ToolSelect)
	before := sc.Version()

	start, end := geom.Pt(-5, -5), geom.Pt(20, 20)
	tl.HandleEvent(event.PointerStart{At: start}, &preview, sc)
	tl.HandleEvent(event.DragMove{Start: start, End: end}, &preview, sc)
	if _, ok := preview.Get().(draw.Selection); !ok {
		t.Errorf("preview = %v, want selection", preview.Get())
	}
	tl.HandleEvent(event.DragEnd{Start: start, End: end}, &preview, sc)

	if sel := sc.Selected(); len(sel) != 1 || sel[0] != a.ID {
		t.Errorf("selected = %v, want [%s]", sel, a.ID)
	}
	if !preview.Empty() {
		t.Error("preview should be cleared")
	}
	if sc.Version() < before+2 {
		t.Errorf("version %d -> %d, want at least +2", before, sc.Version())
	}
}

func TestPointerStartClearsSelection(t *testing.T) {
	a := rect(0, 0, 10, 10)
	sc := newScene(document.ToolSelect, a)
	sc.ReplaceSelected([]string{a.ID})
	var preview Preview
	preview.Set(draw.NewSelection(geom.BBox{Width: 1, Height: 1}))

	if !For(document.ToolSelect).HandleEvent(event.PointerStart{At: geom.Pt(50, 50)}, &preview, sc) {
		t.Fatal("PointerStart should report a change")
	}
	if len(sc.Selected()) != 0 || !preview.Empty() {
		t.Errorf("selected = %v, preview = %v", sc.Selected(), preview.Get())
	}
}

func TestEraseByClick(t *testing.T) {
	c := rect(0, 0, 20, 20)
	sc := newScene(document.ToolErase, c)
	var preview Preview
	tl := For(document.ToolErase)

	if !tl.HandleEvent(event.Click{At: geom.Pt(25, 25)}, &preview, sc) {
		t.Fatal("click within margin should erase")
	}
	if len(sc.Shapes()) != 0 {
		t.Fatalf("shapes = %v", sc.Shapes())
	}

	before := sc.Version()
	if tl.HandleEvent(event.Click{At: geom.Pt(40, 40)}, &preview, sc) {
		t.Error("click on empty scene should be inert")
	}
	if sc.Version() != before {
		t.Errorf("version %d -> %d, want unchanged", before, sc.Version())
	}
}

func TestEraseByDragEnd(t *testing.T) {
	a := rect(0, 0, 20, 20)
	b := rect(200, 200, 20, 20)
	sc := newScene(document.ToolErase, a, b)
	var preview Preview

	if !For(document.ToolErase).HandleEvent(event.DragEnd{Start: geom.Pt(500, 500), End: geom.Pt(210, 210)}, &preview, sc) {
		t.Fatal("DragEnd on a shape should erase")
	}
	shapes := sc.Shapes()
	if len(shapes) != 1 || shapes[0].ID != a.ID {
		t.Errorf("shapes = %v, want only a", shapes)
	}
}

func TestEraseIgnoresOtherEvents(t *testing.T) {
	sc := newScene(document.ToolErase, rect(0, 0, 20, 20))
	var preview Preview
	tl := For(document.ToolErase)
	for _, ev := range []event.Event{
		event.PointerStart{At: geom.Pt(5, 5)},
		event.DragMove{Start: geom.Pt(5, 5), End: geom.Pt(6, 6)},
		event.Hover{At: geom.Pt(5, 5)},
		event.KeyPress{Key: KeyDelete},
	} {
		if tl.HandleEvent(ev, &preview, sc) {
			t.Errorf("%v should be inert", ev)
		}
	}
	if len(sc.Shapes()) != 1 {
		t.Error("shape erased by inert event")
	}
}

func TestDeleteKey(t *testing.T) {
	a := rect(0, 0, 10, 10)
	b := rect(50, 50, 10, 10)
	sc := newScene(document.ToolSelect, a, b)
	sc.ReplaceSelected([]string{a.ID})
	var preview Preview
	before := sc.Version()

	if !For(document.ToolSelect).HandleEvent(event.KeyPress{Key: KeyDelete}, &preview, sc) {
		t.Fatal("Delete with a selection should report a change")
	}
	shapes := sc.Shapes()
	if len(shapes) != 1 || shapes[0].ID != b.ID {
		t.Errorf("shapes = %v, want only b", shapes)
	}
	if len(sc.Selected()) != 0 {
		t.Errorf("selected = %v, want empty", sc.Selected())
	}
	if sc.Version() <= before {
		t.Error("version should increase")
	}
}

func TestDeleteKeyWithoutSelection(t *testing.T) {
	sc := newScene(document.ToolSelect, rect(0, 0, 10, 10))
	var preview Preview
	before := sc.Version()
	if For(document.ToolSelect).HandleEvent(event.KeyPress{Key: KeyDelete}, &preview, sc) {
		t.Error("Delete without a selection should be inert")
	}
	if For(document.ToolSelect).HandleEvent(event.KeyPress{Key: "q"}, &preview, sc) {
		t.Error("unknown key should be inert")
	}
	if sc.Version() != before {
		t.Error("version changed")
	}
}

func TestSelectDeselect(t *testing.T) {
	a := rect(0, 0, 10, 10)
	sc := newScene(document.ToolSelect, a)
	sc.ReplaceSelected([]string{a.ID})
	sc.SetCursor(document.CursorCrosshair)
	var preview Preview
	preview.Set(draw.NewSelection(geom.BBox{Width: 5, Height: 5}))

	For(document.ToolSelect).HandleEvent(event.DeselectTool{}, &preview, sc)

	if len(sc.Selected()) != 0 || !preview.Empty() || sc.Cursor() != document.CursorDefault {
		t.Errorf("selected = %v, preview = %v, cursor = %q", sc.Selected(), preview.Get(), sc.Cursor())
	}
}

func TestShapeToolCursorLifecycle(t *testing.T) {
	sc := newScene(document.ToolSelect)
	var preview Preview
	tl := For(document.ToolEllipse)

	tl.HandleEvent(event.SelectTool{}, &preview, sc)
	if sc.Cursor() != document.CursorCrosshair {
		t.Errorf("cursor after select = %q", sc.Cursor())
	}

	tl.HandleEvent(event.DragMove{Start: geom.Pt(0, 0), End: geom.Pt(5, 5)}, &preview, sc)
	before := sc.Version()
	tl.HandleEvent(event.DeselectTool{}, &preview, sc)
	if sc.Cursor() != document.CursorDefault {
		t.Errorf("cursor after deselect = %q", sc.Cursor())
	}
	if !preview.Empty() {
		t.Error("deselect should discard the preview")
	}
	if sc.Version() == before {
		t.Error("discarding the preview should trigger a redraw")
	}
}

func TestEscapeDiscardsPreview(t *testing.T) {
	for _, tl := range All() {
		sc := newScene(tl.Kind())
		var preview Preview

		if tl.HandleEvent(event.KeyPress{Key: KeyEscape}, &preview, sc) {
			t.Errorf("%s: Escape without preview should be inert", tl.Kind())
		}

		preview.Set(draw.NewSelection(geom.BBox{Width: 5, Height: 5}))
		before := sc.Version()
		if !tl.HandleEvent(event.KeyPress{Key: KeyEscape}, &preview, sc) {
			t.Errorf("%s: Escape should discard the preview", tl.Kind())
		}
		if !preview.Empty() || sc.Version() == before {
			t.Errorf("%s: preview = %v, version %d -> %d", tl.Kind(), preview.Get(), before, sc.Version())
		}
	}
}

func TestRegistry(t *testing.T) {
	want := []struct {
		kind  document.ToolKind
		icon  string
		title string
	}{
		{document.ToolSelect, "ti-marquee-2", "Selection tool."},
		{document.ToolRectangle, "ti-square", "Rectangle drawing tool."},
		{document.ToolEllipse, "ti-circle", "Ellipse drawing tool."},
		{document.ToolErase, "ti-eraser", "Eraser Tool."},
	}
	all := All()
	if len(all) != len(want) {
		t.Fatalf("got %d tools", len(all))
	}
	for i, w := range want {
		if all[i].Kind() != w.kind || all[i].Icon() != w.icon || all[i].Title() != w.title {
			t.Errorf("tool %d = %s %q %q", i, all[i].Kind(), all[i].Icon(), all[i].Title())
		}
		if For(w.kind).Kind() != w.kind {
			t.Errorf("For(%s) = %s", w.kind, For(w.kind).Kind())
		}
	}
	if For("LassoTool").Kind() != document.ToolSelect {
		t.Error("unknown tool should fall back to select")
	}
}
