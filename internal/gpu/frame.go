// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"fmt"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// gpuWaitTimeout bounds the fence wait after submit.
const gpuWaitTimeout = 5 * time.Second

// SubmitFrame encodes one render pass into view, clearing to the bar
// background first, then runs the pipeline draws recorded by record.
// extra, when non-nil, encodes commands after the pass ends (the
// offscreen target uses it for the readback copy). The call blocks
// until the GPU signals the frame fence.
func SubmitFrame(
	device hal.Device,
	queue hal.Queue,
	view hal.TextureView,
	clear gputypes.Color,
	record func(hal.RenderPassEncoder),
	extra func(hal.CommandEncoder),
) error {
	encoder, err := device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "bar_encoder",
	})
	if err != nil {
		return fmt.Errorf("gpu: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("bar_frame"); err != nil {
		return fmt.Errorf("gpu: begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "bar_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: clear,
		}},
	})
	record(rp)
	rp.End()

	if extra != nil {
		extra(encoder)
	}

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("gpu: end encoding: %w", err)
	}
	defer device.FreeCommandBuffer(cmdBuf)

	fence, err := device.CreateFence()
	if err != nil {
		return fmt.Errorf("gpu: create fence: %w", err)
	}
	defer device.DestroyFence(fence)

	if err := queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("gpu: submit: %w", err)
	}
	ok, err := device.Wait(fence, 1, gpuWaitTimeout)
	if err != nil {
		return fmt.Errorf("gpu: wait for frame fence: %w", err)
	}
	if !ok {
		return fmt.Errorf("gpu: frame fence timed out after %v", gpuWaitTimeout)
	}
	return nil
}
