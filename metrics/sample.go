package metrics

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable is wrapped into a Sample's Err when a source cannot be
// read. It marks a recoverable condition: the bar keeps the last value
// on screen and waits for the next poll.
var ErrUnavailable = errors.New("metrics: source unavailable")

// Sample is one metric reading. Samples are produced by pollers and
// consumed exactly once by the bar's update loop.
type Sample struct {
	// Key identifies the source, matching the key the bar bound a
	// widget to.
	Key string

	// Value is the reading. Meaningless when Err is non-nil.
	Value float64

	// Time is when the reading was taken.
	Time time.Time

	// Err is non-nil when the read failed; it wraps ErrUnavailable.
	Err error
}

// Source reads one metric. Implementations must be safe to call from
// the bridge's polling goroutine; a slow or blocking read is fine there,
// which is the whole point of polling off the render goroutine.
type Source interface {
	// Name returns the sample key this source produces.
	Name() string

	// Collect reads the metric once. The context bounds the read;
	// implementations should honor cancellation on slow paths.
	Collect(ctx context.Context) (float64, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc struct {
	// Key is the sample key.
	Key string

	// Fn performs the read.
	Fn func(ctx context.Context) (float64, error)
}

// Name implements Source.
func (s SourceFunc) Name() string { return s.Key }

// Collect implements Source.
func (s SourceFunc) Collect(ctx context.Context) (float64, error) { return s.Fn(ctx) }

var _ Source = SourceFunc{}
