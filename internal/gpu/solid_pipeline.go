// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// SolidPipeline draws untextured quads: widget backgrounds, icons and
// the workspace underline. One uniform bind group carries the screen
// size; vertex and index data come from the frame's batch.
type SolidPipeline struct {
	device hal.Device
	queue  hal.Queue

	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.RenderPipeline

	uniformBuf hal.Buffer
	bindGroup  hal.BindGroup

	vertices *GrowBuffer
	indices  *GrowBuffer
}

// NewSolidPipeline compiles the solid shader and builds the pipeline
// for the given color target format.
func NewSolidPipeline(device hal.Device, queue hal.Queue, format gputypes.TextureFormat) (*SolidPipeline, error) {
	p := &SolidPipeline{
		device:   device,
		queue:    queue,
		vertices: NewGrowBuffer(device, queue, "solid_vertices", gputypes.BufferUsageVertex),
		indices:  NewGrowBuffer(device, queue, "solid_indices", gputypes.BufferUsageIndex),
	}
	if err := p.create(format); err != nil {
		p.Destroy()
		return nil, err
	}
	return p, nil
}

func (p *SolidPipeline) create(format gputypes.TextureFormat) error {
	source, err := compileShader("solid", solidShaderSource)
	if err != nil {
		return err
	}
	shader, err := p.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "solid_shader",
		Source: source,
	})
	if err != nil {
		return fmt.Errorf("gpu: create solid shader module: %w", err)
	}
	p.shader = shader

	bindLayout, err := p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "solid_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("gpu: create solid bind group layout: %w", err)
	}
	p.bindLayout = bindLayout

	pipeLayout, err := p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "solid_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("gpu: create solid pipeline layout: %w", err)
	}
	p.pipeLayout = pipeLayout

	uniformBuf, err := p.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "solid_uniform",
		Size:  screenUniformSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("gpu: create solid uniform buffer: %w", err)
	}
	p.uniformBuf = uniformBuf

	bindGroup, err := p.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "solid_bind",
		Layout: p.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: uniformBuf.NativeHandle(), Offset: 0, Size: screenUniformSize,
			}},
		},
	})
	if err != nil {
		return fmt.Errorf("gpu: create solid bind group: %w", err)
	}
	p.bindGroup = bindGroup

	premulBlend := gputypes.BlendStatePremultiplied()
	pipeline, err := p.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "solid_pipeline",
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.shader,
			EntryPoint: "vs_main",
			Buffers: []gputypes.VertexBufferLayout{
				{
					ArrayStride: solidVertexStride,
					StepMode:    gputypes.VertexStepModeVertex,
					Attributes: []gputypes.VertexAttribute{
						{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
						{Format: gputypes.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
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
		return fmt.Errorf("gpu: create solid pipeline: %w", err)
	}
	p.pipeline = pipeline
	return nil
}

// SetScreenSize rewrites the screen uniform; called on resize and
// before the first frame.
func (p *SolidPipeline) SetScreenSize(width, height uint32) {
	p.queue.WriteBuffer(p.uniformBuf, 0, encodeScreenUniform(width, height))
}

// Upload pushes the batch's solid run to the GPU.
func (p *SolidPipeline) Upload(b *Batch) error {
	if err := p.vertices.Upload(floatBytes(b.SolidVertices)); err != nil {
		return err
	}
	return p.indices.Upload(uint32Bytes(b.SolidIndices))
}

// Record encodes the solid draw into the render pass.
func (p *SolidPipeline) Record(rp hal.RenderPassEncoder, b *Batch) {
	if len(b.SolidIndices) == 0 {
		return
	}
	rp.SetPipeline(p.pipeline)
	rp.SetBindGroup(0, p.bindGroup, nil)
	rp.SetVertexBuffer(0, p.vertices.Buffer(), 0)
	rp.SetIndexBuffer(p.indices.Buffer(), gputypes.IndexFormatUint32, 0)
	rp.DrawIndexed(uint32(len(b.SolidIndices)), 1, 0, 0, 0)
}

// Destroy releases all pipeline resources in reverse creation order.
func (p *SolidPipeline) Destroy() {
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
	if p.uniformBuf != nil {
		p.device.DestroyBuffer(p.uniformBuf)
		p.uniformBuf = nil
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
