// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package text shapes and rasterizes single-line text runs for the bar.
//
// A Face is a loaded font file, parsed once for two consumers: the
// HarfBuzz shaper from go-text/typesetting (glyph selection, kerning,
// ligatures) and x/image/font/sfnt (outline extraction for
// rasterization). An Engine wraps one Face with a sharded shaped-run
// cache so static widgets do not re-shape every frame, and an Atlas
// packs rasterized glyph masks into a single texture page with
// least-recently-used eviction when the page fills.
package text
