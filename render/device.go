// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Device open errors.
var (
	// ErrNoBackend is returned when no hal backend is compiled in.
	ErrNoBackend = errors.New("render: vulkan backend not available")

	// ErrNoAdapter is returned when the instance exposes no adapters.
	ErrNoAdapter = errors.New("render: no GPU adapters found")
)

// DeviceHandle provides GPU device access from a host application.
//
// A bar embedded in a larger gogpu program receives the shared device
// through this interface instead of opening its own. DeviceHandle is
// an alias for gpucontext.DeviceProvider so the embedding contract
// stays compatible with the gpucontext ecosystem; hosts that also
// implement HalDevice() any and HalQueue() any hand over the raw hal
// handles via OpenFromProvider.
type DeviceHandle = gpucontext.DeviceProvider

// Device bundles the hal handles the renderer draws with. When the
// device was opened here (not borrowed), Close releases it.
type Device struct {
	instance hal.Instance
	device   hal.Device
	queue    hal.Queue
	name     string
	borrowed bool
}

// Open creates a device on the first usable adapter, preferring
// discrete then integrated GPUs.
func Open() (*Device, error) {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, ErrNoBackend
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("render: create instance: %w", err)
	}

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, ErrNoAdapter
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("render: open adapter %q: %w", selected.Info.Name, err)
	}

	return &Device{
		instance: instance,
		device:   openDev.Device,
		queue:    openDev.Queue,
		name:     selected.Info.Name,
	}, nil
}

// OpenFromProvider borrows hal handles from a host that implements
// HalDevice() any and HalQueue() any. Close on a borrowed device is a
// no-op; the host owns the GPU.
func OpenFromProvider(provider any) (*Device, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, errors.New("render: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, errors.New("render: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, errors.New("render: provider HalQueue is not hal.Queue")
	}
	return &Device{device: device, queue: queue, borrowed: true, name: "shared"}, nil
}

// HAL returns the raw hal handles.
func (d *Device) HAL() (hal.Device, hal.Queue) { return d.device, d.queue }

// Name returns the adapter name, "shared" for borrowed devices.
func (d *Device) Name() string { return d.name }

// Close releases the device and instance unless they are borrowed.
func (d *Device) Close() {
	if d.borrowed {
		return
	}
	if d.device != nil {
		d.device.Destroy()
		d.device = nil
		d.queue = nil
	}
	if d.instance != nil {
		d.instance.Destroy()
		d.instance = nil
	}
}
