// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/statusbar"
	"github.com/gogpu/statusbar/text"
)

func newTestBuilder(t *testing.T) *BatchBuilder {
	t.Helper()
	face, err := text.NewFace(goregular.TTF)
	if err != nil {
		t.Fatalf("NewFace: %v", err)
	}
	return NewBatchBuilder(text.NewEngine(face), text.NewAtlas(256), 13)
}

func layoutTree(t *testing.T, tree *statusbar.Tree) {
	t.Helper()
	statusbar.Layout(tree, statusbar.Size{W: 400, H: 24})
}

func TestBuildBackgroundsOnly(t *testing.T) {
	bb := newTestBuilder(t)
	tree := statusbar.NewTree(statusbar.Style{Background: statusbar.RGB(0.1, 0.1, 0.1)})
	if _, err := tree.AddIcon(tree.Root(), statusbar.Style{Background: statusbar.White}); err != nil {
		t.Fatalf("AddIcon: %v", err)
	}
	layoutTree(t, tree)

	b := bb.Build(tree)
	if got := b.SolidQuads(); got != 2 {
		t.Errorf("SolidQuads() = %d, want 2 (root + icon)", got)
	}
	if got := b.GlyphQuads(); got != 0 {
		t.Errorf("GlyphQuads() = %d, want 0", got)
	}
}

func TestBuildTextProducesGlyphQuads(t *testing.T) {
	bb := newTestBuilder(t)
	tree := statusbar.NewTree(statusbar.Style{})
	id, err := tree.AddText(tree.Root(), "cpu", statusbar.Style{Foreground: statusbar.White})
	if err != nil {
		t.Fatalf("AddText: %v", err)
	}
	tree.SetIntrinsicSize(id, statusbar.Size{W: 30, H: 13})
	layoutTree(t, tree)

	b := bb.Build(tree)
	if got := b.GlyphQuads(); got != 3 {
		t.Errorf("GlyphQuads() = %d, want 3 for \"cpu\"", got)
	}
	// Quad pattern: 0,1,2 0,2,3 per glyph.
	if len(b.GlyphIndices) >= 6 {
		want := []uint32{0, 1, 2, 0, 2, 3}
		for i, w := range want {
			if b.GlyphIndices[i] != w {
				t.Errorf("GlyphIndices[%d] = %d, want %d", i, b.GlyphIndices[i], w)
			}
		}
	}
	if len(b.GlyphVertices) != b.GlyphQuads()*4*glyphVertexFloats {
		t.Errorf("vertex floats = %d, want %d",
			len(b.GlyphVertices), b.GlyphQuads()*4*glyphVertexFloats)
	}
}

func TestBuildSkipsHiddenAndTransparent(t *testing.T) {
	bb := newTestBuilder(t)
	tree := statusbar.NewTree(statusbar.Style{})
	hidden, err := tree.AddIcon(tree.Root(), statusbar.Style{Background: statusbar.White})
	if err != nil {
		t.Fatalf("AddIcon: %v", err)
	}
	if err := tree.SetHidden(hidden, true); err != nil {
		t.Fatalf("SetHidden: %v", err)
	}
	if _, err := tree.AddText(tree.Root(), "x", statusbar.Style{}); err != nil {
		t.Fatalf("AddText: %v", err)
	}
	layoutTree(t, tree)

	b := bb.Build(tree)
	if !b.Empty() {
		t.Errorf("batch not empty: %d solid, %d glyph quads; hidden and "+
			"transparent-foreground widgets should not draw",
			b.SolidQuads(), b.GlyphQuads())
	}
}

func TestBuildReusesBuffers(t *testing.T) {
	bb := newTestBuilder(t)
	tree := statusbar.NewTree(statusbar.Style{Background: statusbar.Black})
	layoutTree(t, tree)

	b1 := bb.Build(tree)
	n1 := b1.SolidQuads()
	b2 := bb.Build(tree)
	if b1 != b2 {
		t.Error("Build returned a new batch; builder should reuse its batch")
	}
	if b2.SolidQuads() != n1 {
		t.Errorf("second build = %d quads, want %d", b2.SolidQuads(), n1)
	}
}

func TestBuildRecordsAtlasGeneration(t *testing.T) {
	bb := newTestBuilder(t)
	tree := statusbar.NewTree(statusbar.Style{})
	layoutTree(t, tree)
	b := bb.Build(tree)
	if b.Generation != bb.atlas.Generation() {
		t.Errorf("batch generation %d != atlas generation %d",
			b.Generation, bb.atlas.Generation())
	}
}

func TestBuildRebuildsAfterMidBuildCompaction(t *testing.T) {
	face, err := text.NewFace(goregular.TTF)
	if err != nil {
		t.Fatalf("NewFace: %v", err)
	}
	engine := text.NewEngine(face)
	atlas := text.NewAtlas(64)
	bb := NewBatchBuilder(engine, atlas, 13)

	// Enough distinct glyphs at a large size to fill a 64px page while
	// the walk is still appending quads.
	const label = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	const size = 28.0

	tree := statusbar.NewTree(statusbar.Style{})
	id, err := tree.AddText(tree.Root(), label, statusbar.Style{
		Foreground: statusbar.White,
		FontSize:   size,
	})
	if err != nil {
		t.Fatalf("AddText: %v", err)
	}
	tree.SetIntrinsicSize(id, statusbar.Size{W: 1200, H: 34})
	statusbar.Layout(tree, statusbar.Size{W: 1400, H: 40})

	gen0 := atlas.Generation()
	b := bb.Build(tree)
	if atlas.Generation() == gen0 {
		t.Skip("page never filled; compaction not exercised at this size")
	}
	if b.Generation != atlas.Generation() {
		t.Errorf("batch generation %d != atlas generation %d",
			b.Generation, atlas.Generation())
	}

	// Every emitted quad must carry the repacked coordinates, not the
	// ones from before the mid-walk compaction. Re-resolving a glyph
	// now hits the entry cache, so these regions are current.
	shaped := engine.ShapeAndCache(label, face, size)
	atlasSize := float32(atlas.Size())
	qi := 0
	for _, g := range shaped.Glyphs {
		region, ok := atlas.Glyph(face, g.GID, size)
		if !ok || region.W == 0 || region.H == 0 {
			continue
		}
		base := qi * 4 * glyphVertexFloats
		if base >= len(b.GlyphVertices) {
			t.Fatalf("batch holds %d quads, fewer than the placed glyphs", b.GlyphQuads())
		}
		u0 := float32(region.X) / atlasSize
		v0 := float32(region.Y) / atlasSize
		if b.GlyphVertices[base+2] != u0 || b.GlyphVertices[base+3] != v0 {
			t.Errorf("quad %d UV = (%v, %v), want (%v, %v)",
				qi, b.GlyphVertices[base+2], b.GlyphVertices[base+3], u0, v0)
		}
		qi++
	}
	if qi != b.GlyphQuads() {
		t.Errorf("placed glyphs = %d, batch quads = %d", qi, b.GlyphQuads())
	}
}

func TestSolidQuadVertexLayout(t *testing.T) {
	bb := newTestBuilder(t)
	tree := statusbar.NewTree(statusbar.Style{
		Background: statusbar.RGB(1, 0, 0.25),
	})
	layoutTree(t, tree)
	b := bb.Build(tree)
	if b.SolidQuads() != 1 {
		t.Fatalf("SolidQuads() = %d, want 1", b.SolidQuads())
	}
	// Vertex layout: x, y, z, r, g, b.
	v := b.SolidVertices
	if v[0] != 0 || v[1] != 0 || v[2] != 0 {
		t.Errorf("first vertex position = (%v, %v, %v), want origin with z=0", v[0], v[1], v[2])
	}
	if v[3] != 1 || v[4] != 0 || v[5] != 0.25 {
		t.Errorf("first vertex color = (%v, %v, %v), want (1, 0, 0.25)", v[3], v[4], v[5])
	}
	// Second vertex is the top-right corner of the root rect.
	if v[6] != 400 || v[7] != 0 {
		t.Errorf("second vertex = (%v, %v), want (400, 0)", v[6], v[7])
	}
}
