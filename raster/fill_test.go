// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import "testing"

func rect(el *EdgeList, x0, y0, x1, y1 float32) {
	el.AddLine(x0, y0, x1, y0)
	el.AddLine(x1, y0, x1, y1)
	el.AddLine(x1, y1, x0, y1)
	el.AddLine(x0, y1, x0, y0)
}

func TestFillEmpty(t *testing.T) {
	el := NewEdgeList()
	mask := Fill(el, 8, 8)
	for i, v := range mask.Pix {
		if v != 0 {
			t.Fatalf("Pix[%d] = %d, want 0", i, v)
		}
	}
}

func TestFillRectInterior(t *testing.T) {
	el := NewEdgeList()
	rect(el, 2, 2, 10, 10)
	mask := Fill(el, 12, 12)

	for y := 3; y < 9; y++ {
		for x := 3; x < 9; x++ {
			if got := mask.AlphaAt(x, y).A; got != 255 {
				t.Errorf("AlphaAt(%d, %d) = %d, want 255", x, y, got)
			}
		}
	}
	for y := 0; y < 12; y++ {
		if got := mask.AlphaAt(0, y).A; got != 0 {
			t.Errorf("AlphaAt(0, %d) = %d, want 0", y, got)
		}
		if got := mask.AlphaAt(11, y).A; got != 0 {
			t.Errorf("AlphaAt(11, %d) = %d, want 0", y, got)
		}
	}
}

func TestFillHalfPixelCoverage(t *testing.T) {
	// A rect covering the left half of a pixel column should land
	// near 50% alpha there.
	el := NewEdgeList()
	rect(el, 1, 1, 4.5, 5)
	mask := Fill(el, 6, 6)

	got := mask.AlphaAt(4, 3).A
	if got < 118 || got > 138 {
		t.Errorf("AlphaAt(4, 3) = %d, want about 128", got)
	}
	if full := mask.AlphaAt(3, 3).A; full != 255 {
		t.Errorf("AlphaAt(3, 3) = %d, want 255", full)
	}
}

func TestFillTriangleAntialiased(t *testing.T) {
	el := NewEdgeList()
	el.AddLine(1, 9, 5, 1)
	el.AddLine(5, 1, 9, 9)
	el.AddLine(9, 9, 1, 9)
	mask := Fill(el, 10, 10)

	if got := mask.AlphaAt(5, 6).A; got != 255 {
		t.Errorf("interior AlphaAt(5, 6) = %d, want 255", got)
	}
	if got := mask.AlphaAt(0, 0).A; got != 0 {
		t.Errorf("exterior AlphaAt(0, 0) = %d, want 0", got)
	}
	// The sloped edge should produce partial coverage somewhere along
	// its run.
	partial := false
	for y := 2; y < 9; y++ {
		for x := 0; x < 10; x++ {
			a := mask.AlphaAt(x, y).A
			if a > 20 && a < 235 {
				partial = true
			}
		}
	}
	if !partial {
		t.Error("no partially covered pixels along sloped edges")
	}
}

func TestFillNonZeroWindingOverlap(t *testing.T) {
	// Two same-direction rects overlap; non-zero rule keeps the
	// overlap filled.
	el := NewEdgeList()
	rect(el, 1, 1, 6, 6)
	rect(el, 4, 4, 9, 9)
	mask := Fill(el, 10, 10)

	if got := mask.AlphaAt(5, 5).A; got != 255 {
		t.Errorf("overlap AlphaAt(5, 5) = %d, want 255", got)
	}
}

func TestFillClipsToMask(t *testing.T) {
	el := NewEdgeList()
	rect(el, -4, -4, 20, 20)
	mask := Fill(el, 8, 8)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if got := mask.AlphaAt(x, y).A; got != 255 {
				t.Errorf("AlphaAt(%d, %d) = %d, want 255", x, y, got)
			}
		}
	}
}

func TestEdgeListHorizontalDropped(t *testing.T) {
	el := NewEdgeList()
	el.AddLine(0, 3, 10, 3)
	if el.Len() != 0 {
		t.Errorf("Len() = %d after horizontal line, want 0", el.Len())
	}
}

func TestAddQuadApproximatesChordWhenFlat(t *testing.T) {
	el := NewEdgeList()
	el.AddQuad(0, 0, 2, 2.0001, 4, 4)
	if el.Len() == 0 {
		t.Fatal("flat quad produced no edges")
	}
	// Endpoints preserved.
	minX, minY, maxX, maxY := el.Bounds()
	if minX != 0 || minY != 0 || maxX != 4 || maxY != 4 {
		t.Errorf("Bounds() = (%v, %v, %v, %v), want (0, 0, 4, 4)", minX, minY, maxX, maxY)
	}
}

func TestAddCubicFlattens(t *testing.T) {
	el := NewEdgeList()
	el.AddCubic(0, 0, 0, 8, 8, 8, 8, 0)
	if el.Len() < 4 {
		t.Errorf("Len() = %d for curved cubic, want several segments", el.Len())
	}
}

func TestEdgeWinding(t *testing.T) {
	el := NewEdgeList()
	el.AddLine(0, 0, 0, 5) // downward
	el.AddLine(3, 5, 3, 0) // upward
	if el.edges[0].Winding != 1 {
		t.Errorf("downward Winding = %d, want 1", el.edges[0].Winding)
	}
	if el.edges[1].Winding != -1 {
		t.Errorf("upward Winding = %d, want -1", el.edges[1].Winding)
	}
}

func TestEdgeXAtY(t *testing.T) {
	el := NewEdgeList()
	el.AddLine(0, 0, 10, 10)
	e := &el.edges[0]
	if got := e.XAtY(5); got != 5 {
		t.Errorf("XAtY(5) = %v, want 5", got)
	}
}
