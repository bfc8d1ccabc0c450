package statusbar

import "testing"

func TestRectContainsEdges(t *testing.T) {
	r := RectXYWH(10, 10, 20, 20)
	tests := []struct {
		p    Point
		want bool
	}{
		{Pt(10, 10), true},  // top-left edge inside
		{Pt(29, 29), true},  // interior
		{Pt(30, 20), false}, // right edge outside
		{Pt(20, 30), false}, // bottom edge outside
		{Pt(9, 10), false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.p); got != tt.want {
			t.Errorf("Contains(%+v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestRectXYWHClampsNegative(t *testing.T) {
	r := RectXYWH(5, 5, -10, -3)
	if r.Width() != 0 || r.Height() != 0 {
		t.Errorf("rect = %vx%v, want 0x0", r.Width(), r.Height())
	}
}

func TestRectInsetCollapsesInsteadOfInverting(t *testing.T) {
	r := RectXYWH(0, 0, 10, 4)
	in := r.Inset(3)
	if in.Width() != 4 {
		t.Errorf("inset width = %v, want 4", in.Width())
	}
	if in.Height() != 0 {
		t.Errorf("inset height = %v, want collapsed 0", in.Height())
	}
	if in.Min.Y != 2 || in.Max.Y != 2 {
		t.Errorf("collapsed at y=%v..%v, want center line 2", in.Min.Y, in.Max.Y)
	}
}

func TestNewRectNormalizes(t *testing.T) {
	r := NewRect(Pt(10, 2), Pt(3, 8))
	if r.Min.X != 3 || r.Min.Y != 2 || r.Max.X != 10 || r.Max.Y != 8 {
		t.Errorf("normalized rect = %+v", r)
	}
}

func TestPointArithmetic(t *testing.T) {
	if got := Pt(1, 2).Add(Pt(3, 4)); got != Pt(4, 6) {
		t.Errorf("Add = %+v, want (4,6)", got)
	}
	if got := Pt(5, 5).Sub(Pt(2, 1)); got != Pt(3, 4) {
		t.Errorf("Sub = %+v, want (3,4)", got)
	}
}
