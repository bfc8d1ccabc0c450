// Package metrics polls system metrics off the render goroutine and
// feeds them to the bar through a single sample channel.
//
// Each Source runs in its own polling goroutine on its own interval.
// Pollers never touch the widget tree or GPU state; the sample channel
// is the only data shared with the render goroutine, and it is
// append/drain only. A failed read still produces a sample — its Err
// field carries the failure so the bar can mark the widget stale
// instead of losing it.
//
// CPU and memory readings are delegated to gopsutil; the clock source
// reads the wall clock directly.
package metrics
