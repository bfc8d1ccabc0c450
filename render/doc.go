// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render presents laid-out widget trees through gogpu/wgpu.
//
// Device owns the hal instance, adapter, device and queue, either
// opened directly or borrowed from an embedding host. Target abstracts
// where frames go: a window surface in production, an offscreen
// texture with CPU readback in tests and the demo binary. Renderer
// ties them to the draw pipelines and implements the bar's Renderer
// contract, mapping presentation failures to the runtime's surface-
// and device-loss errors.
package render
