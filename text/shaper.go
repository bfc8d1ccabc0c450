// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package text

import (
	"math"
	"strings"
	"sync"

	"github.com/go-text/typesetting/di"
	gofont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"

	"github.com/gogpu/statusbar"
	"github.com/gogpu/statusbar/cache"
)

// runKey identifies one memoized shaped run.
type runKey struct {
	text     string
	faceID   uint32
	sizeBits uint32
}

// hashRun is an FNV-1a hash over the key fields.
func hashRun(k runKey) uint64 {
	h := uint64(14695981039346656037)
	for i := 0; i < len(k.text); i++ {
		h ^= uint64(k.text[i])
		h *= 1099511628211
	}
	for _, v := range [2]uint32{k.faceID, k.sizeBits} {
		for s := 0; s < 32; s += 8 {
			h ^= uint64(v>>s) & 0xff
			h *= 1099511628211
		}
	}
	return h
}

// DefaultRunCacheCapacity is the per-shard shaped-run cache capacity
// used by NewEngine.
const DefaultRunCacheCapacity = 128

// Engine shapes text runs through go-text's HarfBuzz implementation
// and memoizes the results, so static widgets cost one map lookup per
// frame instead of a full shaping pass.
//
// Engine is safe for concurrent use. HarfbuzzShaper instances have
// internal mutable buffers and are pooled; gofont.Face wraps the
// thread-safe *gofont.Font and is created per call.
type Engine struct {
	face    *Face
	shapers sync.Pool
	runs    *cache.ShardedCache[runKey, *ShapedRun]
}

// NewEngine creates an Engine bound to a default face.
func NewEngine(face *Face) *Engine {
	return &Engine{
		face: face,
		shapers: sync.Pool{
			New: func() any { return &shaping.HarfbuzzShaper{} },
		},
		runs: cache.NewSharded[runKey, *ShapedRun](DefaultRunCacheCapacity, hashRun),
	}
}

// Face returns the engine's default face.
func (e *Engine) Face() *Face { return e.face }

// ShapeAndCache returns the positioned glyphs for a single-line run at
// the given pixel size, shaping on a cache miss. The returned run is
// shared and must not be mutated.
func (e *Engine) ShapeAndCache(text string, face *Face, sizePx float64) *ShapedRun {
	key := runKey{
		text:     text,
		faceID:   face.ID(),
		sizeBits: math.Float32bits(float32(sizePx)),
	}
	if run, ok := e.runs.Get(key); ok {
		return run
	}
	run := e.shape(text, face, sizePx)
	e.runs.Set(key, run)
	return run
}

// MeasureText returns the intrinsic size of a text run: width is the
// widest line's advance, height is the line count times the line
// height. Bar text is normally one line; embedded newlines still
// measure correctly.
func (e *Engine) MeasureText(text string, sizePx float64) statusbar.Size {
	metrics := e.face.Metrics(sizePx)
	lines := strings.Split(text, "\n")
	var width float64
	for _, line := range lines {
		run := e.ShapeAndCache(line, e.face, sizePx)
		if run.Advance > width {
			width = run.Advance
		}
	}
	return statusbar.Size{
		W: width,
		H: float64(len(lines)) * metrics.LineHeight(),
	}
}

// RunCacheStats reports shaped-run cache hit and eviction counters.
func (e *Engine) RunCacheStats() cache.Stats {
	return e.runs.Stats()
}

// shape runs the HarfBuzz shaper on one line.
func (e *Engine) shape(text string, face *Face, sizePx float64) *ShapedRun {
	run := &ShapedRun{Metrics: face.Metrics(sizePx)}
	if text == "" {
		return run
	}

	runes := []rune(text)
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      gofont.NewFace(face.shaping),
		Size:      floatToFixed(sizePx),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}

	shaper := e.shapers.Get().(*shaping.HarfbuzzShaper)
	output := shaper.Shape(input)
	e.shapers.Put(shaper)

	run.Glyphs = make([]ShapedGlyph, 0, len(output.Glyphs))
	var x, y float64
	for _, g := range output.Glyphs {
		run.Glyphs = append(run.Glyphs, ShapedGlyph{
			GID:     uint16(g.GlyphID),
			Cluster: g.TextIndex(),
			X:       x + fixedToFloat(g.XOffset),
			Y:       y - fixedToFloat(g.YOffset),
		})
		x += fixedToFloat(g.XAdvance)
		y -= fixedToFloat(g.YAdvance)
	}
	run.Advance = x
	return run
}

// detectScript returns the script of the first non-space rune. Mixed
// scripts in one run keep the first script; good enough for status
// widgets.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		switch r {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

var _ statusbar.Measurer = (*Engine)(nil)
