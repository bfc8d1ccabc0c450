// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"math"
	"testing"
)

func TestSRGBEncode(t *testing.T) {
	tests := []struct {
		name string
		in   float32
		want float32
	}{
		{"zero", 0, 0},
		{"one", 1, 1},
		{"below cutoff linear", 0.002, 0.002 * 12.92},
		{"mid gray", 0.5, 0.7353569830524495},
		{"clamps negative", -0.5, 0},
		{"clamps above one", 1.5, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SRGBEncode(tt.in)
			if math.Abs(float64(got-tt.want)) > 1e-5 {
				t.Errorf("SRGBEncode(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSRGBRoundTrip(t *testing.T) {
	for _, v := range []float32{0, 0.001, 0.0031308, 0.01, 0.18, 0.5, 0.9, 1} {
		got := SRGBDecode(SRGBEncode(v))
		if math.Abs(float64(got-v)) > 1e-5 {
			t.Errorf("SRGBDecode(SRGBEncode(%v)) = %v", v, got)
		}
	}
}

func TestSRGBCurveContinuity(t *testing.T) {
	// The linear and power segments must meet at the cutoff.
	below := SRGBEncode(0.0031308)
	above := SRGBEncode(0.0031309)
	if math.Abs(float64(above-below)) > 1e-4 {
		t.Errorf("discontinuity at cutoff: %v vs %v", below, above)
	}
}
