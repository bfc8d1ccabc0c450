// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"image"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Target is where frames go. Window surfaces implement it over the
// platform swapchain; OffscreenTarget implements it with a texture and
// CPU readback for tests and the demo binary.
//
// Acquire and Present bracket one frame. Acquire errors that mean the
// presentation surface went away are mapped by the renderer to the
// runtime's surface-lost handling, which calls Configure and retries
// once.
type Target interface {
	// Format is the color format the pipelines must render into.
	Format() gputypes.TextureFormat

	// Size returns the current target extent in pixels.
	Size() (width, height uint32)

	// Configure (re)builds the target at the given extent.
	Configure(width, height uint32) error

	// Acquire returns the texture view to render the next frame into.
	Acquire() (hal.TextureView, error)

	// Present finishes the frame.
	Present() error

	// Close releases the target's resources.
	Close()
}

// frameTailEncoder is implemented by targets that need commands
// appended after the render pass; the offscreen target encodes its
// readback copy this way.
type frameTailEncoder interface {
	encodeFrameTail(hal.CommandEncoder)
}

// copyPitchAlignment is the BytesPerRow alignment required for
// texture-to-buffer copies.
const copyPitchAlignment = 256

// OffscreenTarget renders into a BGRA texture and reads every frame
// back into a CPU image. Present blocks on the readback, so offscreen
// rendering is synchronous by construction.
type OffscreenTarget struct {
	device hal.Device
	queue  hal.Queue

	width, height uint32
	texture       hal.Texture
	view          hal.TextureView
	staging       hal.Buffer
	alignedRow    uint32

	frame *image.RGBA
}

// NewOffscreenTarget creates a target at the given extent.
func NewOffscreenTarget(dev *Device, width, height uint32) (*OffscreenTarget, error) {
	device, queue := dev.HAL()
	t := &OffscreenTarget{device: device, queue: queue}
	if err := t.Configure(width, height); err != nil {
		return nil, err
	}
	return t, nil
}

// Format implements Target. Offscreen frames render in BGRA like the
// surface path so the pipelines never care which target is bound.
func (t *OffscreenTarget) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatBGRA8Unorm
}

// Size implements Target.
func (t *OffscreenTarget) Size() (uint32, uint32) { return t.width, t.height }

// Configure implements Target, rebuilding the texture and staging
// buffer at the new extent.
func (t *OffscreenTarget) Configure(width, height uint32) error {
	t.release()

	texture, err := t.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "offscreen_target",
		Size:          hal.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatBGRA8Unorm,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("render: create offscreen texture: %w", err)
	}

	view, err := t.device.CreateTextureView(texture, &hal.TextureViewDescriptor{
		Label:         "offscreen_target_view",
		Format:        gputypes.TextureFormatBGRA8Unorm,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		t.device.DestroyTexture(texture)
		return fmt.Errorf("render: create offscreen view: %w", err)
	}

	// Texture-to-buffer copies need BytesPerRow aligned to 256.
	alignedRow := (width*4 + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
	staging, err := t.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "offscreen_staging",
		Size:  uint64(alignedRow) * uint64(height),
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		t.device.DestroyTextureView(view)
		t.device.DestroyTexture(texture)
		return fmt.Errorf("render: create staging buffer: %w", err)
	}

	t.texture = texture
	t.view = view
	t.staging = staging
	t.alignedRow = alignedRow
	t.width = width
	t.height = height
	t.frame = image.NewRGBA(image.Rect(0, 0, int(width), int(height)))
	return nil
}

// Acquire implements Target.
func (t *OffscreenTarget) Acquire() (hal.TextureView, error) {
	return t.view, nil
}

// encodeFrameTail copies the rendered texture into the staging buffer
// after the pass ends, with the layout transitions the copy needs.
func (t *OffscreenTarget) encodeFrameTail(encoder hal.CommandEncoder) {
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: t.texture,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})
	encoder.CopyTextureToBuffer(t.texture, t.staging, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: t.alignedRow, RowsPerImage: t.height},
		TextureBase:  hal.ImageCopyTexture{Texture: t.texture, MipLevel: 0},
		Size:         hal.Extent3D{Width: t.width, Height: t.height, DepthOrArrayLayers: 1},
	}})
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: t.texture,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopySrc,
			NewUsage: gputypes.TextureUsageRenderAttachment,
		},
	}})
}

// Present implements Target: it reads the staging buffer back and
// converts BGRA rows into the frame image.
func (t *OffscreenTarget) Present() error {
	readback := make([]byte, uint64(t.alignedRow)*uint64(t.height))
	if err := t.queue.ReadBuffer(t.staging, 0, readback); err != nil {
		return fmt.Errorf("render: readback: %w", err)
	}
	convertBGRARows(readback, t.frame.Pix, int(t.width), int(t.height), int(t.alignedRow))
	return nil
}

// Frame returns the last presented frame. The image is reused across
// frames; copy it if it must outlive the next Present.
func (t *OffscreenTarget) Frame() *image.RGBA { return t.frame }

// Close implements Target.
func (t *OffscreenTarget) Close() { t.release() }

func (t *OffscreenTarget) release() {
	if t.staging != nil {
		t.device.DestroyBuffer(t.staging)
		t.staging = nil
	}
	if t.view != nil {
		t.device.DestroyTextureView(t.view)
		t.view = nil
	}
	if t.texture != nil {
		t.device.DestroyTexture(t.texture)
		t.texture = nil
	}
}

// convertBGRARows strips row padding and swaps BGRA to RGBA.
func convertBGRARows(src, dst []byte, width, height, srcStride int) {
	for row := 0; row < height; row++ {
		s := src[row*srcStride:]
		d := dst[row*width*4:]
		for x := 0; x < width; x++ {
			d[x*4+0] = s[x*4+2]
			d[x*4+1] = s[x*4+1]
			d[x*4+2] = s[x*4+0]
			d[x*4+3] = s[x*4+3]
		}
	}
}

var (
	_ Target           = (*OffscreenTarget)(nil)
	_ frameTailEncoder = (*OffscreenTarget)(nil)
)
