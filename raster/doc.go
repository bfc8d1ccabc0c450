// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package raster converts glyph outlines into antialiased alpha masks.
//
// The text subsystem flattens font outlines (lines, quadratic and cubic
// Béziers) into an EdgeList and fills it with a non-zero-winding
// scanline pass. Coverage is supersampled vertically and accumulated
// fractionally along each scanline, which is plenty for status-bar text
// sizes. The resulting masks go into the glyph atlas; nothing here
// touches the GPU.
package raster
