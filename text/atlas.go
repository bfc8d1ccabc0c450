// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package text

import (
	"sort"
	"sync"

	"golang.org/x/image/font/sfnt"

	"github.com/gogpu/statusbar"
	"github.com/gogpu/statusbar/raster"
)

// DefaultAtlasSize is the side length of the atlas page in pixels.
const DefaultAtlasSize = 512

// atlasPadding is the gap kept around each glyph so linear sampling
// never bleeds into a neighbor.
const atlasPadding = 1

// Region is the placement of one glyph mask inside the atlas page.
// BearingX and BearingY position the mask's top-left corner relative
// to the pen position on the baseline; BearingY is negative for
// glyphs that rise above it.
type Region struct {
	X, Y, W, H int
	BearingX   float64
	BearingY   float64
}

type atlasEntry struct {
	region   Region
	lastUsed uint64
}

// shelf is one horizontal packing row.
type shelf struct {
	y, height, nextX int
}

// Atlas packs rasterized glyph alpha masks into one page. Placement is
// append-only: a glyph keeps its slot until the page fills, at which
// point glyphs not used this frame are evicted, the survivors are
// repacked, and the generation counter is bumped so cached vertex
// batches know to rebuild.
//
// A single frame's working set can exceed the page; compaction cannot
// help then, so the overflowing glyphs stay unplaced (and undrawn)
// until the next frame and the page is not compacted again until
// Maintain runs. The fix for a bar that hits this is a larger page.
//
// Atlas is safe for concurrent use, though the bar renders from a
// single goroutine.
type Atlas struct {
	mu sync.Mutex

	size    int
	pix     []uint8
	entries map[GlyphKey]*atlasEntry
	shelves []shelf

	frame      uint64
	generation uint64
	dirty      bool

	// full is set when this frame's working set overflowed the page;
	// it suppresses further compaction attempts until Maintain.
	full bool

	edges *raster.EdgeList
	buf   sfnt.Buffer
}

// NewAtlas creates an empty page of size x size alpha pixels.
func NewAtlas(size int) *Atlas {
	if size <= 0 {
		size = DefaultAtlasSize
	}
	return &Atlas{
		size:    size,
		pix:     make([]uint8, size*size),
		entries: make(map[GlyphKey]*atlasEntry),
		edges:   raster.NewEdgeList(),
	}
}

// Size returns the page side length in pixels.
func (a *Atlas) Size() int { return a.size }

// Generation returns the compaction counter. A batch built against an
// older generation holds stale texture coordinates and must rebuild.
func (a *Atlas) Generation() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.generation
}

// Dirty reports whether the page has pixels not yet uploaded, and
// clears the flag. The renderer calls this once per frame before
// encoding.
func (a *Atlas) Dirty() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	d := a.dirty
	a.dirty = false
	return d
}

// Pixels returns the backing alpha buffer, row-major. The renderer
// reads it for texture upload; callers must not write to it.
func (a *Atlas) Pixels() []uint8 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pix
}

// Maintain advances the frame counter. The renderer calls it after
// present; eviction keeps everything touched since the previous call.
func (a *Atlas) Maintain() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.frame++
	a.full = false
}

// Glyph returns the atlas region for a glyph, rasterizing and packing
// it on first use. A glyph the face cannot load renders as a
// placeholder box. The second result is false only when the glyph
// cannot fit: the page overflowed even after eviction, and stays full
// until the next Maintain.
func (a *Atlas) Glyph(face *Face, gid uint16, sizePx float64) (Region, bool) {
	key := NewGlyphKey(face.ID(), gid, sizePx)

	a.mu.Lock()
	defer a.mu.Unlock()

	if e, ok := a.entries[key]; ok {
		e.lastUsed = a.frame
		return e.region, true
	}

	mask, bearingX, bearingY := a.rasterize(face, gid, sizePx)
	w, h := mask.Rect.Dx(), mask.Rect.Dy()

	x, y, ok := a.alloc(w+2*atlasPadding, h+2*atlasPadding)
	if !ok && !a.full {
		a.compactLocked()
		x, y, ok = a.alloc(w+2*atlasPadding, h+2*atlasPadding)
		if !ok {
			a.full = true
		}
	}
	if !ok {
		return Region{}, false
	}

	x += atlasPadding
	y += atlasPadding
	for row := 0; row < h; row++ {
		src := mask.Pix[row*mask.Stride : row*mask.Stride+w]
		copy(a.pix[(y+row)*a.size+x:], src)
	}
	a.dirty = true

	e := &atlasEntry{
		region: Region{
			X: x, Y: y, W: w, H: h,
			BearingX: bearingX,
			BearingY: bearingY,
		},
		lastUsed: a.frame,
	}
	a.entries[key] = e
	return e.region, true
}

// alloc finds room on an existing shelf or opens a new one.
func (a *Atlas) alloc(w, h int) (x, y int, ok bool) {
	if w > a.size || h > a.size {
		return 0, 0, false
	}
	for i := range a.shelves {
		s := &a.shelves[i]
		if h <= s.height && s.nextX+w <= a.size {
			x = s.nextX
			s.nextX += w
			return x, s.y, true
		}
	}
	top := 0
	if n := len(a.shelves); n > 0 {
		top = a.shelves[n-1].y + a.shelves[n-1].height
	}
	if top+h > a.size {
		return 0, 0, false
	}
	a.shelves = append(a.shelves, shelf{y: top, height: h, nextX: w})
	return 0, top, true
}

// compactLocked evicts glyphs not used this frame and repacks the
// survivors, most recently used first. When even the survivors
// overflow the page the overflow is dropped, the page is marked full
// for the rest of the frame, and a warning is logged once.
func (a *Atlas) compactLocked() {
	type survivor struct {
		key GlyphKey
		e   *atlasEntry
	}
	var kept []survivor
	for k, e := range a.entries {
		if e.lastUsed >= a.frame {
			kept = append(kept, survivor{k, e})
		}
	}
	sort.Slice(kept, func(i, j int) bool {
		return kept[i].e.lastUsed > kept[j].e.lastUsed
	})

	oldPix := a.pix
	a.pix = make([]uint8, a.size*a.size)
	a.shelves = a.shelves[:0]
	a.entries = make(map[GlyphKey]*atlasEntry, len(kept))

	dropped := 0
	for _, s := range kept {
		r := s.e.region
		x, y, ok := a.alloc(r.W+2*atlasPadding, r.H+2*atlasPadding)
		if !ok {
			dropped++
			continue
		}
		x += atlasPadding
		y += atlasPadding
		for row := 0; row < r.H; row++ {
			src := oldPix[(r.Y+row)*a.size+r.X : (r.Y+row)*a.size+r.X+r.W]
			copy(a.pix[(y+row)*a.size+x:], src)
		}
		s.e.region.X = x
		s.e.region.Y = y
		a.entries[s.key] = s.e
	}
	if dropped > 0 {
		a.full = true
		statusbar.Logger().Warn("glyph atlas working set exceeds page",
			"size", a.size, "kept", len(a.entries), "dropped", dropped)
	}

	a.generation++
	a.dirty = true
}
