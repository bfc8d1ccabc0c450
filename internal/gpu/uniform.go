// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"encoding/binary"
	"math"
)

// screenUniformSize is the byte size of the Screen uniform: a
// vec2<f32> padded to 16 bytes for std140 layout.
const screenUniformSize = 16

// encodeScreenUniform packs the bar size for the Screen uniform shared
// by both pipelines.
func encodeScreenUniform(width, height uint32) []byte {
	buf := make([]byte, screenUniformSize)
	binary.LittleEndian.PutUint32(buf[0:], math.Float32bits(float32(width)))
	binary.LittleEndian.PutUint32(buf[4:], math.Float32bits(float32(height)))
	return buf
}

// floatBytes encodes float32 vertex data as little-endian bytes for
// queue upload.
func floatBytes(data []float32) []byte {
	buf := make([]byte, len(data)*4)
	for i, v := range data {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

// uint32Bytes encodes index data as little-endian bytes.
func uint32Bytes(data []uint32) []byte {
	buf := make([]byte, len(data)*4)
	for i, v := range data {
		binary.LittleEndian.PutUint32(buf[i*4:], v)
	}
	return buf
}

// ToClip maps a pixel coordinate to clip space, mirroring vs_main in
// the shaders: x spans [-1, 1] left to right, y spans [1, -1] top to
// bottom, z is 0, w is 1.
func ToClip(x, y float32, width, height uint32) (cx, cy, cz, cw float32) {
	cx = x*2/float32(width) - 1
	cy = 1 - y*2/float32(height)
	return cx, cy, 0, 1
}
