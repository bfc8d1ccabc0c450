// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

//go:embed shaders/solid.wgsl
var solidShaderSource string

//go:embed shaders/glyph.wgsl
var glyphShaderSource string

// compileShader runs the WGSL source through naga and returns a shader
// source carrying both forms. Compiling at pipeline build means a
// malformed shader fails at init instead of at first draw.
func compileShader(label, wgsl string) (hal.ShaderSource, error) {
	if wgsl == "" {
		return hal.ShaderSource{}, fmt.Errorf("gpu: %s shader source is empty", label)
	}
	spirvBytes, err := naga.Compile(wgsl)
	if err != nil {
		return hal.ShaderSource{}, fmt.Errorf("gpu: compile %s shader: %w", label, err)
	}

	// SPIR-V is little-endian 32-bit words.
	spirv := make([]uint32, len(spirvBytes)/4)
	for i := range spirv {
		spirv[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}

	return hal.ShaderSource{WGSL: wgsl, SPIRV: spirv}, nil
}
