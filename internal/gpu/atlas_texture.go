// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// AtlasTexture is the GPU copy of the glyph atlas page. The page
// stores 8-bit coverage; the texture expands it to RGBA8 so the
// pipeline can reuse the common float-sampled 2D layout. The shader
// reads the red channel.
type AtlasTexture struct {
	device hal.Device
	queue  hal.Queue

	size    int
	texture hal.Texture
	view    hal.TextureView

	// rgba is the staging expansion buffer, reused across uploads.
	rgba []uint8
}

// NewAtlasTexture creates the texture and its sampled view.
func NewAtlasTexture(device hal.Device, queue hal.Queue, size int) (*AtlasTexture, error) {
	t := &AtlasTexture{
		device: device,
		queue:  queue,
		size:   size,
		rgba:   make([]uint8, size*size*4),
	}

	texture, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "glyph_atlas",
		Size:          hal.Extent3D{Width: uint32(size), Height: uint32(size), DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create atlas texture: %w", err)
	}
	t.texture = texture

	view, err := device.CreateTextureView(texture, &hal.TextureViewDescriptor{
		Label:         "glyph_atlas_view",
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		device.DestroyTexture(texture)
		return nil, fmt.Errorf("gpu: create atlas texture view: %w", err)
	}
	t.view = view
	return t, nil
}

// View returns the sampled texture view for bind groups.
func (t *AtlasTexture) View() hal.TextureView { return t.view }

// Upload rewrites the whole texture from the page's alpha pixels.
func (t *AtlasTexture) Upload(alpha []uint8) {
	for i, a := range alpha {
		t.rgba[i*4+0] = a
		t.rgba[i*4+1] = a
		t.rgba[i*4+2] = a
		t.rgba[i*4+3] = a
	}
	t.queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: t.texture, MipLevel: 0},
		t.rgba,
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(t.size * 4),
			RowsPerImage: uint32(t.size),
		},
		&hal.Extent3D{Width: uint32(t.size), Height: uint32(t.size), DepthOrArrayLayers: 1},
	)
}

// Destroy releases the view and texture.
func (t *AtlasTexture) Destroy() {
	if t.view != nil {
		t.device.DestroyTextureView(t.view)
		t.view = nil
	}
	if t.texture != nil {
		t.device.DestroyTexture(t.texture)
		t.texture = nil
	}
}
