// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gpu builds and submits the bar's draw pipelines over
// gogpu/wgpu's hal layer.
//
// Two render pipelines cover everything the bar draws: a solid
// pipeline for widget backgrounds and icon quads, and a glyph pipeline
// that samples the text atlas. Vertices are in pixel coordinates; the
// vertex shaders map them to clip space through a shared screen-size
// uniform, and the fragment shaders apply the piecewise sRGB transfer
// so colors stay linear on the CPU side.
package gpu
