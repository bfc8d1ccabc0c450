package metrics

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// DefaultInterval is the polling interval used when a source is added
// with a non-positive one.
const DefaultInterval = time.Second

// defaultBuffer is the sample channel capacity. It only needs to absorb
// one burst of samples between two wake-ups of the render goroutine.
const defaultBuffer = 64

// poller pairs a source with its schedule.
type poller struct {
	source   Source
	interval time.Duration
	aligned  bool
}

// Bridge owns the polling goroutines and the sample channel. Add
// sources, then call Start once; the channel closes after the context
// is cancelled and every poller has exited, so the consumer can drain
// the remainder and stop.
type Bridge struct {
	pollers []poller
	ch      chan Sample
	started bool
	wg      sync.WaitGroup
}

// NewBridge creates a bridge with a sample channel of the given
// capacity. A non-positive capacity uses a small default.
func NewBridge(buffer int) *Bridge {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &Bridge{ch: make(chan Sample, buffer)}
}

// Add registers a source polled at the given interval. Must be called
// before Start.
func (b *Bridge) Add(src Source, interval time.Duration) {
	b.add(src, interval, false)
}

// AddAligned registers a source whose polls are aligned to interval
// boundaries of the wall clock, so a one-second clock source ticks on
// the second instead of at an arbitrary phase.
func (b *Bridge) AddAligned(src Source, interval time.Duration) {
	b.add(src, interval, true)
}

func (b *Bridge) add(src Source, interval time.Duration, aligned bool) {
	if b.started {
		panic("metrics: Add after Start")
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	b.pollers = append(b.pollers, poller{source: src, interval: interval, aligned: aligned})
}

// Samples returns the channel the bar drains. It is closed once Start's
// context is cancelled and all pollers have stopped.
func (b *Bridge) Samples() <-chan Sample {
	return b.ch
}

// Start launches one polling goroutine per source. Each polls
// immediately, then on its interval, until ctx is cancelled. A closer
// goroutine closes the sample channel after the last poller exits.
func (b *Bridge) Start(ctx context.Context) {
	if b.started {
		panic("metrics: Start called twice")
	}
	b.started = true
	for _, p := range b.pollers {
		b.wg.Add(1)
		go b.run(ctx, p)
	}
	go func() {
		b.wg.Wait()
		close(b.ch)
	}()
}

func (b *Bridge) run(ctx context.Context, p poller) {
	defer b.wg.Done()

	if p.aligned {
		// Sleep to the next interval boundary so the first sample (and
		// every one after) lands on a clean tick.
		next := time.Now().Truncate(p.interval).Add(p.interval)
		select {
		case <-time.After(time.Until(next)):
		case <-ctx.Done():
			return
		}
	}

	b.collect(ctx, p.source)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			b.collect(ctx, p.source)
		case <-ctx.Done():
			return
		}
	}
}

// collect reads the source once and sends the sample. The send never
// blocks: if the consumer has fallen behind and the channel is full,
// the sample is dropped — the next poll supersedes it anyway.
func (b *Bridge) collect(ctx context.Context, src Source) {
	s := Sample{Key: src.Name(), Time: time.Now()}
	v, err := src.Collect(ctx)
	if err != nil {
		s.Err = fmt.Errorf("%w: %s: %v", ErrUnavailable, src.Name(), err)
	} else {
		s.Value = v
	}
	select {
	case b.ch <- s:
	default:
	}
}
