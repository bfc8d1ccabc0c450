// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// GlyphPipeline draws textured glyph quads sampling the atlas page.
// Bind group layout:
//
//	binding 0: Screen uniform (vertex)
//	binding 1: atlas texture (fragment)
//	binding 2: linear clamp sampler (fragment)
type GlyphPipeline struct {
	device hal.Device
	queue  hal.Queue

	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.RenderPipeline
	sampler    hal.Sampler

	uniformBuf hal.Buffer
	atlasTex   *AtlasTexture
	bindGroup  hal.BindGroup

	vertices *GrowBuffer
	indices  *GrowBuffer
}

// NewGlyphPipeline compiles the glyph shader and builds the pipeline
// for the given color target format. The atlas texture is created at
// atlasSize x atlasSize and bound once; uploads rewrite its contents
// in place.
func NewGlyphPipeline(device hal.Device, queue hal.Queue, format gputypes.TextureFormat, atlasSize int) (*GlyphPipeline, error) {
	p := &GlyphPipeline{
		device:   device,
		queue:    queue,
		vertices: NewGrowBuffer(device, queue, "glyph_vertices", gputypes.BufferUsageVertex),
		indices:  NewGrowBuffer(device, queue, "glyph_indices", gputypes.BufferUsageIndex),
	}
	if err := p.create(format, atlasSize); err != nil {
		p.Destroy()
		return nil, err
	}
	return p, nil
}

func (p *GlyphPipeline) create(format gputypes.TextureFormat, atlasSize int) error {
	source, err := compileShader("glyph", glyphShaderSource)
	if err != nil {
		return err
	}
	shader, err := p.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "glyph_shader",
		Source: source,
	})
	if err != nil {
		return fmt.Errorf("gpu: create glyph shader module: %w", err)
	}
	p.shader = shader

	bindLayout, err := p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "glyph_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    2,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("gpu: create glyph bind group layout: %w", err)
	}
	p.bindLayout = bindLayout

	pipeLayout, err := p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "glyph_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("gpu: create glyph pipeline layout: %w", err)
	}
	p.pipeLayout = pipeLayout

	sampler, err := p.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "glyph_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeLinear,
	})
	if err != nil {
		return fmt.Errorf("gpu: create glyph sampler: %w", err)
	}
	p.sampler = sampler

	uniformBuf, err := p.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "glyph_uniform",
		Size:  screenUniformSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("gpu: create glyph uniform buffer: %w", err)
	}
	p.uniformBuf = uniformBuf

	atlasTex, err := NewAtlasTexture(p.device, p.queue, atlasSize)
	if err != nil {
		return err
	}
	p.atlasTex = atlasTex

	bindGroup, err := p.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "glyph_bind",
		Layout: p.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: uniformBuf.NativeHandle(), Offset: 0, Size: screenUniformSize,
			}},
			{Binding: 1, Resource: gputypes.TextureViewBinding{
				TextureView: atlasTex.View().NativeHandle(),
			}},
			{Binding: 2, Resource: gputypes.SamplerBinding{
				Sampler: sampler.NativeHandle(),
			}},
		},
	})
	if err != nil {
		return fmt.Errorf("gpu: create glyph bind group: %w", err)
	}
	p.bindGroup = bindGroup

	premulBlend := gputypes.BlendStatePremultiplied()
	pipeline, err := p.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "glyph_pipeline",
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.shader,
			EntryPoint: "vs_main",
			Buffers: []gputypes.VertexBufferLayout{
				{
					ArrayStride: glyphVertexStride,
					StepMode:    gputypes.VertexStepModeVertex,
					Attributes: []gputypes.VertexAttribute{
						{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
						{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},
						{Format: gputypes.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 2},
					},
				},
			},
		},
		Fragment: &hal.FragmentState{
			Module:     p.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    format,
					Blend:     &premulBlend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("gpu: create glyph pipeline: %w", err)
	}
	p.pipeline = pipeline
	return nil
}

// SetScreenSize rewrites the screen uniform.
func (p *GlyphPipeline) SetScreenSize(width, height uint32) {
	p.queue.WriteBuffer(p.uniformBuf, 0, encodeScreenUniform(width, height))
}

// UploadAtlas rewrites the atlas texture from the page's alpha pixels.
func (p *GlyphPipeline) UploadAtlas(alpha []uint8) {
	p.atlasTex.Upload(alpha)
}

// Upload pushes the batch's glyph run to the GPU.
func (p *GlyphPipeline) Upload(b *Batch) error {
	if err := p.vertices.Upload(floatBytes(b.GlyphVertices)); err != nil {
		return err
	}
	return p.indices.Upload(uint32Bytes(b.GlyphIndices))
}

// Record encodes the glyph draw into the render pass.
func (p *GlyphPipeline) Record(rp hal.RenderPassEncoder, b *Batch) {
	if len(b.GlyphIndices) == 0 {
		return
	}
	rp.SetPipeline(p.pipeline)
	rp.SetBindGroup(0, p.bindGroup, nil)
	rp.SetVertexBuffer(0, p.vertices.Buffer(), 0)
	rp.SetIndexBuffer(p.indices.Buffer(), gputypes.IndexFormatUint32, 0)
	rp.DrawIndexed(uint32(len(b.GlyphIndices)), 1, 0, 0, 0)
}

// Destroy releases all pipeline resources in reverse creation order.
func (p *GlyphPipeline) Destroy() {
	if p.device == nil {
		return
	}
	if p.pipeline != nil {
		p.device.DestroyRenderPipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.bindGroup != nil {
		p.device.DestroyBindGroup(p.bindGroup)
		p.bindGroup = nil
	}
	if p.atlasTex != nil {
		p.atlasTex.Destroy()
		p.atlasTex = nil
	}
	if p.uniformBuf != nil {
		p.device.DestroyBuffer(p.uniformBuf)
		p.uniformBuf = nil
	}
	if p.sampler != nil {
		p.device.DestroySampler(p.sampler)
		p.sampler = nil
	}
	if p.pipeLayout != nil {
		p.device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.bindLayout != nil {
		p.device.DestroyBindGroupLayout(p.bindLayout)
		p.bindLayout = nil
	}
	if p.shader != nil {
		p.device.DestroyShaderModule(p.shader)
		p.shader = nil
	}
	p.vertices.Destroy()
	p.indices.Destroy()
}
