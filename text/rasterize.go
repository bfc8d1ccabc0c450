// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package text

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/statusbar/raster"
)

var alphaOpaque = color.Alpha{A: 255}

// rasterize loads the glyph outline and scan-converts it into an
// alpha mask. Coordinates from sfnt are 26.6 fixed point with Y
// growing downward, so the mask's bearing Y is negative for glyphs
// above the baseline. Missing or unloadable glyphs get a placeholder
// box. Callers hold a.mu.
func (a *Atlas) rasterize(face *Face, gid uint16, sizePx float64) (mask *image.Alpha, bearingX, bearingY float64) {
	if gid == 0 {
		return placeholderBox(sizePx)
	}
	segments, err := face.outline.LoadGlyph(&a.buf, sfnt.GlyphIndex(gid), floatToFixed(sizePx), nil)
	if err != nil {
		return placeholderBox(sizePx)
	}
	if len(segments) == 0 {
		// Whitespace: no mask, advance only.
		return image.NewAlpha(image.Rect(0, 0, 0, 0)), 0, 0
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	pts := func(seg sfnt.Segment, n int) {
		for i := 0; i < n; i++ {
			x := fixedToFloat(seg.Args[i].X)
			y := fixedToFloat(seg.Args[i].Y)
			minX = math.Min(minX, x)
			minY = math.Min(minY, y)
			maxX = math.Max(maxX, x)
			maxY = math.Max(maxY, y)
		}
	}
	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo, sfnt.SegmentOpLineTo:
			pts(seg, 1)
		case sfnt.SegmentOpQuadTo:
			pts(seg, 2)
		case sfnt.SegmentOpCubeTo:
			pts(seg, 3)
		}
	}

	originX := math.Floor(minX) - 1
	originY := math.Floor(minY) - 1
	w := int(math.Ceil(maxX)-originX) + 1
	h := int(math.Ceil(maxY)-originY) + 1

	a.edges.Reset()
	var startX, startY, penX, penY float32
	px := func(v fixed.Int26_6, origin float64) float32 {
		return float32(fixedToFloat(v) - origin)
	}
	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			// Close the previous contour before starting the next.
			if penX != startX || penY != startY {
				a.edges.AddLine(penX, penY, startX, startY)
			}
			penX = px(seg.Args[0].X, originX)
			penY = px(seg.Args[0].Y, originY)
			startX, startY = penX, penY
		case sfnt.SegmentOpLineTo:
			x := px(seg.Args[0].X, originX)
			y := px(seg.Args[0].Y, originY)
			a.edges.AddLine(penX, penY, x, y)
			penX, penY = x, y
		case sfnt.SegmentOpQuadTo:
			cx := px(seg.Args[0].X, originX)
			cy := px(seg.Args[0].Y, originY)
			x := px(seg.Args[1].X, originX)
			y := px(seg.Args[1].Y, originY)
			a.edges.AddQuad(penX, penY, cx, cy, x, y)
			penX, penY = x, y
		case sfnt.SegmentOpCubeTo:
			c1x := px(seg.Args[0].X, originX)
			c1y := px(seg.Args[0].Y, originY)
			c2x := px(seg.Args[1].X, originX)
			c2y := px(seg.Args[1].Y, originY)
			x := px(seg.Args[2].X, originX)
			y := px(seg.Args[2].Y, originY)
			a.edges.AddCubic(penX, penY, c1x, c1y, c2x, c2y, x, y)
			penX, penY = x, y
		}
	}
	if penX != startX || penY != startY {
		a.edges.AddLine(penX, penY, startX, startY)
	}

	return raster.Fill(a.edges, w, h), originX, originY
}

// placeholderBox draws the hollow rectangle shown for glyphs the font
// lacks, sized like a typical character cell.
func placeholderBox(sizePx float64) (*image.Alpha, float64, float64) {
	w := int(math.Round(sizePx * 0.6))
	h := int(math.Round(sizePx * 0.7))
	if w < 3 {
		w = 3
	}
	if h < 3 {
		h = 3
	}
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		mask.SetAlpha(x, 0, alphaOpaque)
		mask.SetAlpha(x, h-1, alphaOpaque)
	}
	for y := 0; y < h; y++ {
		mask.SetAlpha(0, y, alphaOpaque)
		mask.SetAlpha(w-1, y, alphaOpaque)
	}
	return mask, 0, -float64(h)
}
