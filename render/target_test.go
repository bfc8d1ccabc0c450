// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"math"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/statusbar"
)

func TestConvertBGRARows(t *testing.T) {
	// 2x2 image with 256-byte padded rows.
	const stride = 256
	src := make([]byte, stride*2)
	// Pixel (0,0): B=1 G=2 R=3 A=4.
	copy(src[0:], []byte{1, 2, 3, 4, 5, 6, 7, 8})
	// Pixel (0,1) starts at the padded stride.
	copy(src[stride:], []byte{9, 10, 11, 12, 13, 14, 15, 16})

	dst := make([]byte, 2*2*4)
	convertBGRARows(src, dst, 2, 2, stride)

	want := []byte{
		3, 2, 1, 4, 7, 6, 5, 8, // row 0, RGBA
		11, 10, 9, 12, 15, 14, 13, 16, // row 1
	}
	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("dst[%d] = %d, want %d", i, dst[i], want[i])
		}
	}
}

func TestRowAlignment(t *testing.T) {
	tests := []struct {
		width uint32
		want  uint32
	}{
		{1, 256},
		{64, 256},
		{65, 512},
		{400, 1792},
	}
	for _, tt := range tests {
		got := (tt.width*4 + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
		if got != tt.want {
			t.Errorf("aligned row for width %d = %d, want %d", tt.width, got, tt.want)
		}
	}
}

func TestClearValueEncoding(t *testing.T) {
	r := &Renderer{clear: statusbar.RGB(0.5, 0.5, 0.5)}
	c := r.clearValue()
	if c.A != 1 {
		t.Errorf("A = %v, want 1", c.A)
	}
	// Mid gray encodes to about 0.735 on the sRGB curve.
	if math.Abs(c.R-0.7353569830524495) > 1e-4 {
		t.Errorf("R = %v, want about 0.7354", c.R)
	}

	r = &Renderer{clear: statusbar.Transparent}
	if c := r.clearValue(); c != (gputypes.Color{}) {
		t.Errorf("transparent clear = %+v, want zero value", c)
	}
}
