package metrics

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

// countingSource returns an incrementing value per Collect call.
type countingSource struct {
	key   string
	calls atomic.Int64
	err   error
}

func (c *countingSource) Name() string { return c.key }

func (c *countingSource) Collect(_ context.Context) (float64, error) {
	n := c.calls.Add(1)
	if c.err != nil {
		return 0, c.err
	}
	return float64(n), nil
}

func TestBridgePollsImmediately(t *testing.T) {
	src := &countingSource{key: "test"}
	b := NewBridge(4)
	b.Add(src, time.Hour) // first poll only within the test window

	ctx, cancel := context.WithCancel(context.Background())
	b.Start(ctx)

	select {
	case s := <-b.Samples():
		if s.Key != "test" {
			t.Errorf("Key = %q, want %q", s.Key, "test")
		}
		if s.Value != 1 {
			t.Errorf("Value = %v, want 1", s.Value)
		}
		if s.Err != nil {
			t.Errorf("Err = %v, want nil", s.Err)
		}
		if s.Time.IsZero() {
			t.Error("Time is zero, want a timestamp")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no sample within 2s of Start")
	}

	cancel()
	// Channel must close after the poller exits.
	for range b.Samples() {
	}
}

func TestBridgeWrapsFailuresAsUnavailable(t *testing.T) {
	src := &countingSource{key: "broken", err: errors.New("read failed")}
	b := NewBridge(4)
	b.Add(src, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	b.Start(ctx)

	select {
	case s := <-b.Samples():
		if s.Err == nil {
			t.Fatal("Err = nil, want wrapped ErrUnavailable")
		}
		if !errors.Is(s.Err, ErrUnavailable) {
			t.Errorf("errors.Is(Err, ErrUnavailable) = false for %v", s.Err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no sample within 2s of Start")
	}
}

func TestBridgeDropsWhenChannelFull(t *testing.T) {
	src := &countingSource{key: "fast"}
	b := NewBridge(1)

	// Fill the channel, then collect twice more: both must drop without
	// blocking.
	b.collect(context.Background(), src)
	done := make(chan struct{})
	go func() {
		b.collect(context.Background(), src)
		b.collect(context.Background(), src)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("collect blocked on a full channel")
	}

	if got := len(b.ch); got != 1 {
		t.Errorf("len(ch) = %d, want 1", got)
	}
	s := <-b.ch
	if s.Value != 1 {
		t.Errorf("kept sample Value = %v, want the first reading 1", s.Value)
	}
}

func TestBridgeClosesChannelAfterAllPollersExit(t *testing.T) {
	b := NewBridge(8)
	b.Add(&countingSource{key: "a"}, time.Hour)
	b.Add(&countingSource{key: "b"}, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	b.Start(ctx)
	cancel()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-b.Samples():
			if !ok {
				return // closed as promised
			}
		case <-deadline:
			t.Fatal("sample channel not closed after cancellation")
		}
	}
}

func TestSourceFunc(t *testing.T) {
	src := SourceFunc{
		Key: "custom",
		Fn:  func(context.Context) (float64, error) { return 42, nil },
	}
	if src.Name() != "custom" {
		t.Errorf("Name() = %q, want %q", src.Name(), "custom")
	}
	v, err := src.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if v != 42 {
		t.Errorf("Collect() = %v, want 42", v)
	}
}

func TestDefaultIntervalApplied(t *testing.T) {
	b := NewBridge(1)
	b.Add(&countingSource{key: "x"}, 0)
	if got := b.pollers[0].interval; got != DefaultInterval {
		t.Errorf("interval = %v, want %v", got, DefaultInterval)
	}
}

func TestBuiltinSourceKeys(t *testing.T) {
	tests := []struct {
		src  Source
		want string
	}{
		{CPUSource{}, KeyCPU},
		{MemorySource{}, KeyMemory},
		{ClockSource{}, KeyClock},
	}
	for _, tt := range tests {
		if got := tt.src.Name(); got != tt.want {
			t.Errorf("%T.Name() = %q, want %q", tt.src, got, tt.want)
		}
	}
}
