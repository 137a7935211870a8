package geom

import "testing"

func TestFromCornerNormalizes(t *testing.T) {
	cases := []struct {
		a, b Point
		want BBox
	}{
		{Pt(10, 10), Pt(50, 40), BBox{Left: 10, Top: 10, Width: 40, Height: 30}},
		{Pt(50, 40), Pt(10, 10), BBox{Left: 10, Top: 10, Width: 40, Height: 30}},
		{Pt(50, 10), Pt(10, 40), BBox{Left: 10, Top: 10, Width: 40, Height: 30}},
		{Pt(-5, -5), Pt(-5, -5), BBox{Left: -5, Top: -5}},
	}

	for _, tc := range cases {
		got := FromCorner(tc.a, tc.b)
		if got != tc.want {
			t.Errorf("FromCorner(%v, %v) = %+v, want %+v", tc.a, tc.b, got, tc.want)
		}
		if swapped := FromCorner(tc.b, tc.a); swapped != got {
			t.Errorf("FromCorner not symmetric: %+v vs %+v", got, swapped)
		}
		if got.Width < 0 || got.Height < 0 {
			t.Errorf("negative dimensions: %+v", got)
		}
	}
}

func TestContains(t *testing.T) {
	outer := BBox{Left: 0, Top: 0, Width: 100, Height: 100}
	inner := BBox{Left: 10, Top: 10, Width: 20, Height: 20}
	straddling := BBox{Left: 90, Top: 90, Width: 20, Height: 20}

	if !outer.Contains(outer) {
		t.Error("Contains should be reflexive")
	}
	if !outer.Contains(inner) {
		t.Error("outer should contain inner")
	}
	if outer.Contains(straddling) {
		t.Error("outer should not contain straddling box")
	}
	if !inner.In(outer) {
		t.Error("inner should be in outer")
	}
}

func TestContainsPointMargin(t *testing.T) {
	b := BBox{Left: 0, Top: 0, Width: 20, Height: 20}

	if !b.ContainsPoint(Pt(25, 25), 10) {
		t.Error("(25,25) should be within margin 10")
	}
	if b.ContainsPoint(Pt(40, 40), 10) {
		t.Error("(40,40) should be outside margin 10")
	}
	if !b.ContainsPoint(Pt(20, 0), 0) {
		t.Error("edge point should be contained with zero margin")
	}
	if b.ContainsPoint(Pt(20.5, 0), 0) {
		t.Error("point past the edge should not be contained with zero margin")
	}
}

func TestAddPadding(t *testing.T) {
	b := BBox{Left: 10, Top: 10, Width: 40, Height: 30}
	b.AddPadding(5)

	want := BBox{Left: 5, Top: 5, Width: 50, Height: 40}
	if b != want {
		t.Errorf("AddPadding = %+v, want %+v", b, want)
	}

	orig := BBox{Left: 1, Top: 1, Width: 1, Height: 1}
	if got := orig.Padded(1); got != (BBox{Left: 0, Top: 0, Width: 3, Height: 3}) {
		t.Errorf("Padded = %+v", got)
	}
	if orig != (BBox{Left: 1, Top: 1, Width: 1, Height: 1}) {
		t.Error("Padded mutated its receiver")
	}
}

func TestAddBBox(t *testing.T) {
	a := BBox{Left: 0, Top: 0, Width: 10, Height: 10}
	b := BBox{Left: 100, Top: 100, Width: 10, Height: 10}

	u := a
	u.AddBBox(b)
	want := BBox{Left: 0, Top: 0, Width: 110, Height: 110}
	if u != want {
		t.Fatalf("AddBBox = %+v, want %+v", u, want)
	}

	// Idempotent for a contained box.
	again := u
	again.AddBBox(BBox{Left: 5, Top: 5, Width: 1, Height: 1})
	if again != u {
		t.Errorf("AddBBox of contained box changed result: %+v", again)
	}

	// Monotonic: the union contains both operands.
	if !u.Contains(a) || !u.Contains(b) {
		t.Error("union should contain both operands")
	}
}

func TestCenter(t *testing.T) {
	c := BBox{Left: 0, Top: 0, Width: 100, Height: 50}.Center()
	if c != Pt(50, 25) {
		t.Errorf("Center = %v", c)
	}
}
