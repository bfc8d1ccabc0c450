// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestToClip(t *testing.T) {
	tests := []struct {
		name   string
		x, y   float32
		w, h   uint32
		cx, cy float32
	}{
		{"origin", 0, 0, 400, 24, -1, 1},
		{"far corner", 400, 24, 400, 24, 1, -1},
		{"center", 200, 12, 400, 24, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cx, cy, cz, cw := ToClip(tt.x, tt.y, tt.w, tt.h)
			if cx != tt.cx || cy != tt.cy {
				t.Errorf("ToClip(%v, %v) = (%v, %v), want (%v, %v)",
					tt.x, tt.y, cx, cy, tt.cx, tt.cy)
			}
			if cz != 0 || cw != 1 {
				t.Errorf("ToClip z, w = %v, %v, want 0, 1", cz, cw)
			}
		})
	}
}

func TestEncodeScreenUniform(t *testing.T) {
	buf := encodeScreenUniform(400, 24)
	if len(buf) != screenUniformSize {
		t.Fatalf("len = %d, want %d", len(buf), screenUniformSize)
	}
	w := math.Float32frombits(binary.LittleEndian.Uint32(buf[0:]))
	h := math.Float32frombits(binary.LittleEndian.Uint32(buf[4:]))
	if w != 400 || h != 24 {
		t.Errorf("decoded size = %vx%v, want 400x24", w, h)
	}
	for i := 8; i < 16; i++ {
		if buf[i] != 0 {
			t.Errorf("padding byte %d = %d, want 0", i, buf[i])
		}
	}
}

func TestFloatBytesLittleEndian(t *testing.T) {
	buf := floatBytes([]float32{1.0})
	if len(buf) != 4 {
		t.Fatalf("len = %d, want 4", len(buf))
	}
	if got := binary.LittleEndian.Uint32(buf); got != math.Float32bits(1.0) {
		t.Errorf("encoded = %#x, want %#x", got, math.Float32bits(1.0))
	}
}

func TestUint32Bytes(t *testing.T) {
	buf := uint32Bytes([]uint32{0, 1, 2})
	if len(buf) != 12 {
		t.Fatalf("len = %d, want 12", len(buf))
	}
	if got := binary.LittleEndian.Uint32(buf[4:]); got != 1 {
		t.Errorf("second index = %d, want 1", got)
	}
}

func TestGrowCapacity(t *testing.T) {
	tests := []struct {
		name    string
		current uint64
		needed  uint64
		want    uint64
	}{
		{"first alloc", 0, 100, minBufferCapacity},
		{"exact fit keeps", 512, 512, 512},
		{"doubles once", 256, 300, 512},
		{"doubles repeatedly", 256, 2000, 2048},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := growCapacity(tt.current, tt.needed); got != tt.want {
				t.Errorf("growCapacity(%d, %d) = %d, want %d",
					tt.current, tt.needed, got, tt.want)
			}
		})
	}
}
