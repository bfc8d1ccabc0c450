// Package statusbar provides a retained-mode UI engine for GPU-rendered
// status bars.
//
// # Overview
//
// statusbar replaces a general-purpose UI toolkit with a purpose-built
// engine: a widget tree, a single-pass layout algorithm, a draw-batch
// pipeline targeting gogpu/wgpu, and an update loop that keeps the
// displayed tree consistent with asynchronously polled system metrics.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/statusbar"
//	    "github.com/gogpu/statusbar/metrics"
//	    "github.com/gogpu/statusbar/render"
//	)
//
//	tree := statusbar.NewTree(statusbar.Style{Background: statusbar.Hex("#1a1b26")})
//	cpu, _ := tree.AddText(tree.Root(), "cpu 0%", statusbar.Style{})
//
//	dev, _ := render.Open()
//	target, _ := render.NewOffscreenTarget(dev, 1920, 28)
//	r, _ := render.New(dev, target, engine)
//	bar := statusbar.New(tree, r, engine)
//	bar.Bind("cpu", cpu, func(s metrics.Sample) string {
//	    return fmt.Sprintf("cpu %.0f%%", s.Value)
//	})
//	bar.Run(ctx, events, samples)
//
// # Architecture
//
// The package is organized into:
//   - Root: widget tree, layout, frame scheduling, the runtime loop
//   - text: shaping, glyph rasterization, and measurement
//   - metrics: polling goroutines feeding the sample channel
//   - render: GPU device handling and the public renderer
//   - config: YAML bar definitions
//
// The render goroutine exclusively owns the tree and all GPU state.
// Metric pollers communicate with it only through the sample channel.
package statusbar
