// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import "github.com/chewxy/math32"

// CPU reference for the transfer curve in the fragment shaders. Tests
// validate round-trips here rather than on the GPU.

// SRGBEncode converts a linear component to the sRGB transfer curve.
// The curve is a linear segment with slope 12.92 below 0.0031308 and
// 1.055*c^(1/2.4)-0.055 above it.
func SRGBEncode(c float32) float32 {
	if c <= 0 {
		return 0
	}
	if c >= 1 {
		return 1
	}
	if c <= 0.0031308 {
		return c * 12.92
	}
	return 1.055*math32.Pow(c, 1.0/2.4) - 0.055
}

// SRGBDecode converts an sRGB-encoded component back to linear.
func SRGBDecode(c float32) float32 {
	if c <= 0 {
		return 0
	}
	if c >= 1 {
		return 1
	}
	if c <= 0.04045 {
		return c / 12.92
	}
	return math32.Pow((c+0.055)/1.055, 2.4)
}
