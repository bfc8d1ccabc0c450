// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/statusbar"
	"github.com/gogpu/statusbar/internal/gpu"
	"github.com/gogpu/statusbar/text"
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithClearColor sets the color the pass clears to before drawing,
// normally the bar background. The default is opaque black.
func WithClearColor(c statusbar.RGBA) Option {
	return func(r *Renderer) { r.clear = c }
}

// WithAtlasSize overrides the glyph atlas page size.
func WithAtlasSize(size int) Option {
	return func(r *Renderer) { r.atlasSize = size }
}

// WithFontSize sets the fallback text size for widgets that declare
// none.
func WithFontSize(px float64) Option {
	return func(r *Renderer) { r.fontSize = px }
}

// Renderer draws laid-out widget trees into a Target. It implements
// the bar runtime's Renderer contract: acquire or present failures are
// reported as surface loss so the runtime reconfigures and retries
// once, and submit failures are reported as device loss, which is
// fatal.
//
// The Renderer owns the pipelines, the glyph atlas and its texture.
// The Device and Target are owned by the caller; Close does not
// release them.
type Renderer struct {
	dev    *Device
	target Target
	engine *text.Engine
	atlas  *text.Atlas

	builder *gpu.BatchBuilder
	solid   *gpu.SolidPipeline
	glyph   *gpu.GlyphPipeline

	clear     statusbar.RGBA
	atlasSize int
	fontSize  float64
}

// New builds the pipelines for the target's format and sizes the
// screen uniform to the target's current extent.
func New(dev *Device, target Target, engine *text.Engine, opts ...Option) (*Renderer, error) {
	r := &Renderer{
		dev:       dev,
		target:    target,
		engine:    engine,
		clear:     statusbar.Black,
		atlasSize: text.DefaultAtlasSize,
		fontSize:  statusbar.DefaultFontSize,
	}
	for _, opt := range opts {
		opt(r)
	}

	device, queue := dev.HAL()
	format := target.Format()

	solid, err := gpu.NewSolidPipeline(device, queue, format)
	if err != nil {
		return nil, err
	}
	r.solid = solid

	glyph, err := gpu.NewGlyphPipeline(device, queue, format, r.atlasSize)
	if err != nil {
		solid.Destroy()
		return nil, err
	}
	r.glyph = glyph

	r.atlas = text.NewAtlas(r.atlasSize)
	r.builder = gpu.NewBatchBuilder(engine, r.atlas, r.fontSize)

	w, h := target.Size()
	r.solid.SetScreenSize(w, h)
	r.glyph.SetScreenSize(w, h)

	statusbar.Logger().Debug("renderer ready",
		"adapter", dev.Name(), "target", fmt.Sprintf("%dx%d", w, h))
	return r, nil
}

// Resize implements statusbar.Renderer: it reconfigures the target and
// rewrites the screen uniform. The runtime also calls it to recover
// from surface loss.
func (r *Renderer) Resize(width, height uint32) error {
	if err := r.target.Configure(width, height); err != nil {
		return fmt.Errorf("%w: reconfigure: %v", statusbar.ErrSurfaceLost, err)
	}
	r.solid.SetScreenSize(width, height)
	r.glyph.SetScreenSize(width, height)
	return nil
}

// RenderTree implements statusbar.Renderer. The tree must already be
// laid out.
func (r *Renderer) RenderTree(t *statusbar.Tree) error {
	batch := r.builder.Build(t)

	// Building the batch may have rasterized new glyphs.
	if r.atlas.Dirty() {
		r.glyph.UploadAtlas(r.atlas.Pixels())
	}
	if err := r.solid.Upload(batch); err != nil {
		return fmt.Errorf("%w: %v", statusbar.ErrDeviceLost, err)
	}
	if err := r.glyph.Upload(batch); err != nil {
		return fmt.Errorf("%w: %v", statusbar.ErrDeviceLost, err)
	}

	view, err := r.target.Acquire()
	if err != nil {
		return fmt.Errorf("%w: acquire: %v", statusbar.ErrSurfaceLost, err)
	}

	var tail func(hal.CommandEncoder)
	if fe, ok := r.target.(frameTailEncoder); ok {
		tail = fe.encodeFrameTail
	}

	device, queue := r.dev.HAL()
	err = gpu.SubmitFrame(device, queue, view, r.clearValue(), func(rp hal.RenderPassEncoder) {
		r.solid.Record(rp, batch)
		r.glyph.Record(rp, batch)
	}, tail)
	if err != nil {
		return fmt.Errorf("%w: %v", statusbar.ErrDeviceLost, err)
	}

	if err := r.target.Present(); err != nil {
		return fmt.Errorf("%w: present: %v", statusbar.ErrSurfaceLost, err)
	}

	// Age the caches only after the frame made it out.
	r.atlas.Maintain()
	return nil
}

// Close implements statusbar.Renderer, releasing the pipelines and the
// atlas texture. The Device and Target stay open for their owners.
func (r *Renderer) Close() error {
	if r.glyph != nil {
		r.glyph.Destroy()
		r.glyph = nil
	}
	if r.solid != nil {
		r.solid.Destroy()
		r.solid = nil
	}
	return nil
}

// Atlas exposes the glyph atlas, mainly for tests and stats.
func (r *Renderer) Atlas() *text.Atlas { return r.atlas }

// clearValue pre-applies the sRGB transfer to the clear color: the
// pass clear bypasses the fragment shader, so the CPU encodes it the
// same way fs_main would.
func (r *Renderer) clearValue() gputypes.Color {
	p := r.clear.Premultiply()
	if p.A <= 0 {
		return gputypes.Color{}
	}
	return gputypes.Color{
		R: float64(gpu.SRGBEncode(float32(p.R/p.A))) * p.A,
		G: float64(gpu.SRGBEncode(float32(p.G/p.A))) * p.A,
		B: float64(gpu.SRGBEncode(float32(p.B/p.A))) * p.A,
		A: p.A,
	}
}

var _ statusbar.Renderer = (*Renderer)(nil)
