package gesture

import (
	"errors"
	"testing"

	"github.com/inamate/sketchpad/internal/draw"
	"github.com/inamate/sketchpad/internal/event"
	"github.com/inamate/sketchpad/internal/geom"
)

func ptr(typ string, x, y float64) event.Pointer {
	return event.Pointer{Type: typ, ClientX: x, ClientY: y, PointerID: 7}
}

func feed(t *testing.T, r *Recognizer, s draw.Surface, inputs ...event.Pointer) []event.Event {
	t.Helper()
	var out []event.Event
	for _, in := range inputs {
		ev, err := r.Process(s, in)
		if err != nil {
			t.Fatalf("Process(%+v): %v", in, err)
		}
		out = append(out, ev)
	}
	return out
}

func TestDragSequence(t *testing.T) {
	rec := draw.NewRecorder(200, 100)
	r := New()

	got := feed(t, r, rec,
		ptr(event.PointerDown, 10, 10),
		ptr(event.PointerMove, 30, 20),
		ptr(event.PointerMove, 50, 40),
		ptr(event.PointerUp, 50, 40),
	)

	want := []event.Event{
		event.PointerStart{At: geom.Pt(10, 10)},
		event.DragMove{Start: geom.Pt(10, 10), End: geom.Pt(30, 20)},
		event.DragMove{Start: geom.Pt(10, 10), End: geom.Pt(50, 40)},
		event.DragEnd{Start: geom.Pt(10, 10), End: geom.Pt(50, 40)},
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestClickAndHover(t *testing.T) {
	rec := draw.NewRecorder(100, 100)
	r := New()

	got := feed(t, r, rec,
		ptr(event.PointerMove, 5, 5),
		ptr(event.PointerDown, 25, 25),
		ptr(event.PointerUp, 25, 25),
		ptr(event.PointerMove, 30, 30),
		ptr(event.PointerUp, 30, 30),
	)

	want := []event.Event{
		event.Hover{At: geom.Pt(5, 5)},
		event.PointerStart{At: geom.Pt(25, 25)},
		event.Click{At: geom.Pt(25, 25)},
		event.Hover{At: geom.Pt(30, 30)},
		nil,
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestPointerCapture(t *testing.T) {
	rec := draw.NewRecorder(100, 100)
	r := New()

	feed(t, r, rec, ptr(event.PointerDown, 1, 1))
	if !rec.Captured(7) {
		t.Fatal("pointer should be captured after pointerdown")
	}
	feed(t, r, rec, ptr(event.PointerMove, 2, 2))
	if !rec.Captured(7) {
		t.Fatal("capture should survive moves")
	}
	feed(t, r, rec, ptr(event.PointerUp, 2, 2))
	if rec.Captured(7) {
		t.Fatal("pointer should be released after pointerup")
	}
}

func TestCoordinateMapping(t *testing.T) {
	rec := draw.NewRecorder(200, 100)
	// Element laid out at (50, 20), displayed at half the bitmap size.
	rec.SetBoundingRect(geom.BBox{Left: 50, Top: 20, Width: 100, Height: 50})

	got, err := Position(rec, ptr(event.PointerMove, 60, 30))
	if err != nil {
		t.Fatalf("Position: %v", err)
	}
	if got != geom.Pt(20, 20) {
		t.Errorf("Position = %v, want (20,20)", got)
	}
}

func TestDetachedSurfaceDropsEvent(t *testing.T) {
	rec := draw.NewRecorder(100, 100)
	r := New()
	feed(t, r, rec, ptr(event.PointerDown, 1, 1))

	rec.SetDetached(true)
	ev, err := r.Process(rec, ptr(event.PointerMove, 5, 5))
	if !errors.Is(err, draw.ErrDetached) {
		t.Fatalf("err = %v, want ErrDetached", err)
	}
	if ev != nil {
		t.Errorf("event = %v, want nil", ev)
	}
	if _, ok := r.Last().(event.PointerStart); !ok {
		t.Errorf("state changed on dropped input: %v", r.Last())
	}
}

func TestEmptyRectDropsEvent(t *testing.T) {
	rec := draw.NewRecorder(100, 100)
	rec.SetBoundingRect(geom.BBox{Left: 10, Top: 10})
	_, err := New().Process(rec, ptr(event.PointerDown, 10, 10))
	if !errors.Is(err, ErrEmptyRect) {
		t.Fatalf("err = %v, want ErrEmptyRect", err)
	}
	if rec.Captured(7) {
		t.Error("dropped pointerdown must not capture")
	}
}

func TestUnknownTypeClearsState(t *testing.T) {
	rec := draw.NewRecorder(100, 100)
	r := New()
	feed(t, r, rec, ptr(event.PointerDown, 1, 1))

	got := feed(t, r, rec, ptr("pointercancel", 1, 1), ptr(event.PointerMove, 4, 4))
	if got[0] != nil {
		t.Errorf("unknown type produced %v", got[0])
	}
	if _, ok := got[1].(event.Hover); !ok {
		t.Errorf("move after unknown type = %v, want Hover", got[1])
	}
}

func TestReset(t *testing.T) {
	rec := draw.NewRecorder(100, 100)
	r := New()
	feed(t, r, rec, ptr(event.PointerDown, 1, 1), ptr(event.PointerMove, 3, 3))
	r.Reset()
	got := feed(t, r, rec, ptr(event.PointerUp, 3, 3))
	if got[0] != nil {
		t.Errorf("release after reset = %v, want nil", got[0])
	}
}
