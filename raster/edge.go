// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import "math"

// Epsilon is the float threshold below which an edge counts as
// horizontal and is skipped: it can never cross a scanline.
const Epsilon = 1e-6

// Edge is one monotonic line segment prepared for scanline conversion.
// Curves are flattened into edges before filling.
type Edge struct {
	// YMin and YMax bound the edge vertically, YMin <= YMax.
	YMin, YMax float32

	// XAtYMin is the X coordinate at YMin.
	XAtYMin float32

	// DXDY is the inverse slope: change in X per unit Y.
	DXDY float32

	// Winding is +1 for an edge that originally ran downward, -1 for
	// upward. Non-zero filling sums these at each crossing.
	Winding int8
}

// XAtY returns the edge's X coordinate at scanline y.
func (e *Edge) XAtY(y float32) float32 {
	return e.XAtYMin + (y-e.YMin)*e.DXDY
}

// EdgeList accumulates the edges of one outline. Reset and reuse it
// across glyphs to avoid reallocating.
type EdgeList struct {
	edges []Edge
}

// NewEdgeList creates an empty edge list.
func NewEdgeList() *EdgeList {
	return &EdgeList{edges: make([]Edge, 0, 64)}
}

// Reset clears the list for reuse, keeping its capacity.
func (el *EdgeList) Reset() {
	el.edges = el.edges[:0]
}

// Len returns the number of edges.
func (el *EdgeList) Len() int {
	return len(el.edges)
}

// AddLine adds a line segment. Horizontal segments are dropped; the
// winding is derived from the segment's original direction.
func (el *EdgeList) AddLine(x0, y0, x1, y1 float32) {
	var winding int8 = 1
	if y0 > y1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
		winding = -1
	}
	dy := y1 - y0
	if dy < Epsilon {
		return
	}
	el.edges = append(el.edges, Edge{
		YMin:    y0,
		YMax:    y1,
		XAtYMin: x0,
		DXDY:    (x1 - x0) / dy,
		Winding: winding,
	})
}

// AddQuad flattens a quadratic Bézier into line segments. The segment
// count grows with the control point's deviation from the chord so flat
// curves stay cheap.
func (el *EdgeList) AddQuad(x0, y0, cx, cy, x1, y1 float32) {
	n := flattenSteps(deviation2(x0, y0, cx, cy, x1, y1))
	px, py := x0, y0
	for i := 1; i <= n; i++ {
		t := float32(i) / float32(n)
		u := 1 - t
		x := u*u*x0 + 2*u*t*cx + t*t*x1
		y := u*u*y0 + 2*u*t*cy + t*t*y1
		el.AddLine(px, py, x, y)
		px, py = x, y
	}
}

// AddCubic flattens a cubic Bézier into line segments.
func (el *EdgeList) AddCubic(x0, y0, c1x, c1y, c2x, c2y, x1, y1 float32) {
	d := deviation2(x0, y0, c1x, c1y, x1, y1)
	if d2 := deviation2(x0, y0, c2x, c2y, x1, y1); d2 > d {
		d = d2
	}
	n := flattenSteps(d)
	px, py := x0, y0
	for i := 1; i <= n; i++ {
		t := float32(i) / float32(n)
		u := 1 - t
		x := u*u*u*x0 + 3*u*u*t*c1x + 3*u*t*t*c2x + t*t*t*x1
		y := u*u*u*y0 + 3*u*u*t*c1y + 3*u*t*t*c2y + t*t*t*y1
		el.AddLine(px, py, x, y)
		px, py = x, y
	}
}

// Bounds returns the bounding box of all edges, or zeros for an empty
// list.
func (el *EdgeList) Bounds() (minX, minY, maxX, maxY float32) {
	if len(el.edges) == 0 {
		return 0, 0, 0, 0
	}
	minX = float32(math.MaxFloat32)
	minY = float32(math.MaxFloat32)
	maxX = float32(-math.MaxFloat32)
	maxY = float32(-math.MaxFloat32)
	for i := range el.edges {
		e := &el.edges[i]
		if e.YMin < minY {
			minY = e.YMin
		}
		if e.YMax > maxY {
			maxY = e.YMax
		}
		for _, x := range [2]float32{e.XAtYMin, e.XAtY(e.YMax)} {
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
		}
	}
	return minX, minY, maxX, maxY
}

// deviation2 returns the squared distance of a control point from the
// chord's midpoint, a cheap flatness estimate.
func deviation2(x0, y0, cx, cy, x1, y1 float32) float32 {
	dx := cx - (x0+x1)/2
	dy := cy - (y0+y1)/2
	return dx*dx + dy*dy
}

// flattenSteps maps a squared deviation to a segment count in [1, 24].
func flattenSteps(dev2 float32) int {
	if dev2 <= 0 {
		return 1
	}
	n := int(math.Sqrt(math.Sqrt(float64(dev2)))*4) + 1
	if n > 24 {
		n = 24
	}
	return n
}
