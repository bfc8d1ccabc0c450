// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"github.com/gogpu/statusbar"
	"github.com/gogpu/statusbar/text"
)

// Vertex strides in bytes.
//
//	solid: position vec3<f32> + color vec3<f32> = 24
//	glyph: position vec2<f32> + tex_coord vec2<f32> + color vec4<f32> = 32
const (
	solidVertexStride = 24
	glyphVertexStride = 32

	solidVertexFloats = solidVertexStride / 4
	glyphVertexFloats = glyphVertexStride / 4
)

// Batch is one frame's CPU-side draw data: one solid run for
// backgrounds and icons, one textured run for glyphs. Indices are
// uint32, four vertices and six indices per quad.
type Batch struct {
	SolidVertices []float32
	SolidIndices  []uint32

	GlyphVertices []float32
	GlyphIndices  []uint32

	// Generation is the atlas generation the glyph texture
	// coordinates were built against.
	Generation uint64
}

// SolidQuads returns the number of solid quads in the batch.
func (b *Batch) SolidQuads() int { return len(b.SolidIndices) / 6 }

// GlyphQuads returns the number of glyph quads in the batch.
func (b *Batch) GlyphQuads() int { return len(b.GlyphIndices) / 6 }

// Empty reports whether the batch draws nothing.
func (b *Batch) Empty() bool {
	return len(b.SolidIndices) == 0 && len(b.GlyphIndices) == 0
}

// BatchBuilder walks a laid-out widget tree and produces draw batches.
// It owns no GPU resources; the renderer uploads its output.
type BatchBuilder struct {
	engine *text.Engine
	atlas  *text.Atlas

	// fontSize is the fallback for text widgets that declare none.
	fontSize float64

	batch Batch
}

// NewBatchBuilder creates a builder shaping through engine and packing
// glyph masks into atlas.
func NewBatchBuilder(engine *text.Engine, atlas *text.Atlas, fontSize float64) *BatchBuilder {
	if fontSize <= 0 {
		fontSize = statusbar.DefaultFontSize
	}
	return &BatchBuilder{engine: engine, atlas: atlas, fontSize: fontSize}
}

// Build produces the batch for one frame. The tree must already be
// laid out. The returned batch is owned by the builder and valid until
// the next Build call.
//
// Packing a glyph late in the walk can fill the atlas and trigger a
// compaction, which repacks glyphs whose quads were already emitted
// with the old texture coordinates. Build detects this through the
// atlas generation and walks a second time; that pass hits the warm
// entry cache and cannot move anything again, so it is stable.
func (bb *BatchBuilder) Build(t *statusbar.Tree) *Batch {
	gen := bb.atlas.Generation()
	bb.walk(t)
	if g := bb.atlas.Generation(); g != gen {
		gen = g
		bb.walk(t)
	}
	bb.batch.Generation = gen
	return &bb.batch
}

// walk resets the batch and fills it from one draw-order traversal.
func (bb *BatchBuilder) walk(t *statusbar.Tree) {
	b := &bb.batch
	b.SolidVertices = b.SolidVertices[:0]
	b.SolidIndices = b.SolidIndices[:0]
	b.GlyphVertices = b.GlyphVertices[:0]
	b.GlyphIndices = b.GlyphIndices[:0]

	t.Walk(func(id statusbar.WidgetID) bool {
		style := t.Style(id)
		rect := t.Rect(id)

		if style.Background.A > 0 {
			bb.solidQuad(rect, style.Background)
		}
		if t.Kind(id) == statusbar.KindText {
			bb.textQuads(t.Text(id), rect, style)
		}
		return true
	})
}

// solidQuad appends one opaque rectangle in a linear color. The z
// component is always zero; the layout keeps it for the pipeline's
// position vec3.
func (bb *BatchBuilder) solidQuad(r statusbar.Rect, c statusbar.RGBA) {
	b := &bb.batch
	base := uint32(len(b.SolidVertices) / solidVertexFloats)

	x0, y0 := float32(r.Min.X), float32(r.Min.Y)
	x1, y1 := float32(r.Max.X), float32(r.Max.Y)
	cr, cg, cb := float32(c.R), float32(c.G), float32(c.B)

	b.SolidVertices = append(b.SolidVertices,
		x0, y0, 0, cr, cg, cb,
		x1, y0, 0, cr, cg, cb,
		x1, y1, 0, cr, cg, cb,
		x0, y1, 0, cr, cg, cb,
	)
	b.SolidIndices = append(b.SolidIndices,
		base, base+1, base+2,
		base, base+2, base+3,
	)
}

// textQuads shapes one run and appends a textured quad per glyph,
// vertically centered in the widget rectangle.
func (bb *BatchBuilder) textQuads(run string, r statusbar.Rect, style statusbar.Style) {
	if run == "" || style.Foreground.A <= 0 {
		return
	}
	size := style.FontSize
	if size <= 0 {
		size = bb.fontSize
	}
	face := bb.engine.Face()
	shaped := bb.engine.ShapeAndCache(run, face, size)

	baseline := r.Min.Y + (r.Size().H-shaped.Metrics.LineHeight())/2 + shaped.Metrics.Ascent

	p := style.Foreground.Premultiply()
	cr, cg, cb, ca := float32(p.R), float32(p.G), float32(p.B), float32(p.A)
	atlasSize := float32(bb.atlas.Size())

	b := &bb.batch
	for _, g := range shaped.Glyphs {
		region, ok := bb.atlas.Glyph(face, g.GID, size)
		if !ok || region.W == 0 || region.H == 0 {
			continue
		}

		x0 := float32(r.Min.X + g.X + region.BearingX)
		y0 := float32(baseline + g.Y + region.BearingY)
		x1 := x0 + float32(region.W)
		y1 := y0 + float32(region.H)

		u0 := float32(region.X) / atlasSize
		v0 := float32(region.Y) / atlasSize
		u1 := float32(region.X+region.W) / atlasSize
		v1 := float32(region.Y+region.H) / atlasSize

		base := uint32(len(b.GlyphVertices) / glyphVertexFloats)
		b.GlyphVertices = append(b.GlyphVertices,
			x0, y0, u0, v0, cr, cg, cb, ca,
			x1, y0, u1, v0, cr, cg, cb, ca,
			x1, y1, u1, v1, cr, cg, cb, ca,
			x0, y1, u0, v1, cr, cg, cb, ca,
		)
		b.GlyphIndices = append(b.GlyphIndices,
			base, base+1, base+2,
			base, base+2, base+3,
		)
	}
}
