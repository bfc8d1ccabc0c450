// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package text

import "math"

// GlyphKey identifies one rasterized glyph mask in the atlas. SizeBits
// is the float32 bit pattern of the pixel size, which keeps the key
// comparable without rounding two nearby sizes together.
type GlyphKey struct {
	FaceID   uint32
	GID      uint16
	SizeBits uint32
}

// NewGlyphKey builds the atlas key for a glyph at a pixel size.
func NewGlyphKey(faceID uint32, gid uint16, sizePx float64) GlyphKey {
	return GlyphKey{
		FaceID:   faceID,
		GID:      gid,
		SizeBits: math.Float32bits(float32(sizePx)),
	}
}

// ShapedGlyph is one glyph positioned by the shaper. X and Y are pen
// offsets in pixels from the run origin; Y grows downward.
type ShapedGlyph struct {
	GID     uint16
	Cluster int
	X, Y    float64
}

// ShapedRun is the shaper's output for one single-line text run.
type ShapedRun struct {
	Glyphs  []ShapedGlyph
	Advance float64
	Metrics LineMetrics
}
