// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package text

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sync/atomic"

	gofont "github.com/go-text/typesetting/font"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// ErrEmptyFontData is returned when a face is created from no bytes.
var ErrEmptyFontData = errors.New("text: empty font data")

// faceIDs hands out process-unique face identifiers for cache keys.
var faceIDs atomic.Uint32

// LineMetrics are the vertical metrics of a face at one pixel size.
// Ascent and Descent are both positive distances from the baseline.
type LineMetrics struct {
	Ascent  float64
	Descent float64
	LineGap float64
}

// LineHeight returns the baseline-to-baseline distance.
func (m LineMetrics) LineHeight() float64 {
	return m.Ascent + m.Descent + m.LineGap
}

// Face is a loaded font file. The data is parsed twice: once for the
// HarfBuzz shaper (go-text) and once for outline extraction (sfnt).
// Face is heavyweight; share one instance across the application.
//
// The shaping font is read-only and safe for concurrent use. Outline
// loading goes through per-call sfnt buffers, so Face as a whole is
// safe for concurrent use.
type Face struct {
	id      uint32
	shaping *gofont.Font
	outline *sfnt.Font
	name    string
}

// NewFace parses TTF or OTF font data. The data slice must not be
// modified after the call.
func NewFace(data []byte) (*Face, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	shaped, err := gofont.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("text: parse font for shaping: %w", err)
	}
	out, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("text: parse font outlines: %w", err)
	}

	f := &Face{
		id:      faceIDs.Add(1),
		shaping: shaped.Font,
		outline: out,
	}
	var buf sfnt.Buffer
	if name, err := out.Name(&buf, sfnt.NameIDFamily); err == nil {
		f.name = name
	}
	return f, nil
}

// NewFaceFromFile loads a face from a font file path.
func NewFaceFromFile(path string) (*Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("text: read font file: %w", err)
	}
	return NewFace(data)
}

// ID returns the process-unique identifier used in cache keys.
func (f *Face) ID() uint32 { return f.id }

// Name returns the font family name, or "" if the font has none.
func (f *Face) Name() string { return f.name }

// Metrics returns the face's line metrics at the given pixel size.
func (f *Face) Metrics(sizePx float64) LineMetrics {
	var buf sfnt.Buffer
	m, err := f.outline.Metrics(&buf, fixed.Int26_6(sizePx*64), xfont.HintingFull)
	if err != nil {
		// Fall back to a plausible geometry so layout stays sane.
		return LineMetrics{Ascent: sizePx * 0.8, Descent: sizePx * 0.2}
	}
	ascent := fixedToFloat(m.Ascent)
	descent := fixedToFloat(m.Descent)
	if descent < 0 {
		descent = -descent
	}
	return LineMetrics{
		Ascent:  ascent,
		Descent: descent,
		LineGap: fixedToFloat(m.Height) - ascent - descent,
	}
}

// GlyphIndex returns the glyph id for a rune, 0 when the font lacks it.
func (f *Face) GlyphIndex(r rune) uint16 {
	var buf sfnt.Buffer
	idx, err := f.outline.GlyphIndex(&buf, r)
	if err != nil {
		return 0
	}
	return uint16(idx)
}

// floatToFixed converts a pixel size to 26.6 fixed point.
func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

// fixedToFloat converts a 26.6 fixed-point value to float64.
func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}
