package metrics

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Standard sample keys for the built-in sources.
const (
	KeyCPU    = "cpu"
	KeyMemory = "memory"
	KeyClock  = "clock"
)

// CPUSource reports total CPU utilization as a percentage in [0, 100].
type CPUSource struct{}

// Name implements Source.
func (CPUSource) Name() string { return KeyCPU }

// Collect implements Source. The zero interval makes gopsutil compute
// the percentage against the previous call's counters, so the first
// reading after startup may be zero.
func (CPUSource) Collect(ctx context.Context) (float64, error) {
	percents, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return 0, fmt.Errorf("cpu percent: %w", err)
	}
	if len(percents) == 0 {
		return 0, fmt.Errorf("cpu percent: no data")
	}
	return percents[0], nil
}

// MemorySource reports used physical memory as a percentage in [0, 100].
type MemorySource struct{}

// Name implements Source.
func (MemorySource) Name() string { return KeyMemory }

// Collect implements Source.
func (MemorySource) Collect(ctx context.Context) (float64, error) {
	v, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("virtual memory: %w", err)
	}
	return v.UsedPercent, nil
}

// ClockSource ticks the wall clock. The reading carries no value of its
// own — clock widgets format the sample's Time field. Add it with
// AddAligned so it ticks on the second.
type ClockSource struct{}

// Name implements Source.
func (ClockSource) Name() string { return KeyClock }

// Collect implements Source.
func (ClockSource) Collect(_ context.Context) (float64, error) {
	return 0, nil
}

var (
	_ Source = CPUSource{}
	_ Source = MemorySource{}
	_ Source = ClockSource{}
)
