// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// minBufferCapacity is the smallest allocation a GrowBuffer makes.
const minBufferCapacity = 256

// GrowBuffer wraps a hal.Buffer that is re-created with doubled
// capacity when an upload outgrows it. It never shrinks, so a frame
// that briefly needed a big batch doesn't cause churn afterwards.
type GrowBuffer struct {
	device hal.Device
	queue  hal.Queue
	label  string
	usage  gputypes.BufferUsage

	buf      hal.Buffer
	capacity uint64
}

// NewGrowBuffer creates an empty buffer wrapper. No GPU memory is
// allocated until the first Upload. CopyDst is added to the usage so
// queue writes always work.
func NewGrowBuffer(device hal.Device, queue hal.Queue, label string, usage gputypes.BufferUsage) *GrowBuffer {
	return &GrowBuffer{
		device: device,
		queue:  queue,
		label:  label,
		usage:  usage | gputypes.BufferUsageCopyDst,
	}
}

// Upload writes data to the buffer, reallocating first if it does not
// fit.
func (b *GrowBuffer) Upload(data []byte) error {
	needed := uint64(len(data))
	if needed == 0 {
		return nil
	}
	if needed > b.capacity {
		capacity := growCapacity(b.capacity, needed)
		buf, err := b.device.CreateBuffer(&hal.BufferDescriptor{
			Label: b.label,
			Size:  capacity,
			Usage: b.usage,
		})
		if err != nil {
			return fmt.Errorf("gpu: create %s buffer (%d bytes): %w", b.label, capacity, err)
		}
		if b.buf != nil {
			b.device.DestroyBuffer(b.buf)
		}
		b.buf = buf
		b.capacity = capacity
	}
	b.queue.WriteBuffer(b.buf, 0, data)
	return nil
}

// Buffer returns the current hal buffer, nil before the first Upload.
func (b *GrowBuffer) Buffer() hal.Buffer { return b.buf }

// Capacity returns the allocated byte capacity.
func (b *GrowBuffer) Capacity() uint64 { return b.capacity }

// Destroy releases the GPU buffer. Safe to call repeatedly.
func (b *GrowBuffer) Destroy() {
	if b.buf != nil {
		b.device.DestroyBuffer(b.buf)
		b.buf = nil
		b.capacity = 0
	}
}

// growCapacity doubles from the current capacity until needed fits.
func growCapacity(current, needed uint64) uint64 {
	capacity := current
	if capacity < minBufferCapacity {
		capacity = minBufferCapacity
	}
	for capacity < needed {
		capacity *= 2
	}
	return capacity
}
