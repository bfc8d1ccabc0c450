package statusbar

// FrameState is the scheduler's position in the redraw cycle.
type FrameState uint8

const (
	// FrameIdle means nothing needs drawing. The runtime blocks on its
	// channels in this state; no frame work happens.
	FrameIdle FrameState = iota

	// FrameDirty means a redraw is due at the next present slot.
	FrameDirty

	// FrameRendering means a frame is being built and submitted.
	FrameRendering
)

// String returns the state name for logging.
func (s FrameState) String() string {
	switch s {
	case FrameIdle:
		return "idle"
	case FrameDirty:
		return "dirty"
	case FrameRendering:
		return "rendering"
	default:
		return "unknown"
	}
}

// FrameScheduler decides when a redraw is necessary. Redraw requests
// arriving while a frame is in flight are coalesced into at most one
// pending redraw rather than queued.
//
// FrameScheduler is owned by the render goroutine and is not safe for
// concurrent use; cross-goroutine wakeups arrive as channel messages
// that the runtime translates into RequestRedraw calls.
type FrameScheduler struct {
	state   FrameState
	pending bool
}

// State returns the current frame state.
func (f *FrameScheduler) State() FrameState {
	return f.state
}

// RequestRedraw records that the displayed tree is out of date.
// Duplicate requests while already dirty are ignored; requests during
// rendering set a single pending flag.
func (f *FrameScheduler) RequestRedraw() {
	switch f.state {
	case FrameIdle:
		f.state = FrameDirty
	case FrameRendering:
		f.pending = true
	}
}

// BeginFrame consumes a due redraw. It returns true and enters the
// rendering state if a redraw was pending; in the idle state it returns
// false and the caller must not draw.
func (f *FrameScheduler) BeginFrame() bool {
	if f.state != FrameDirty {
		return false
	}
	f.state = FrameRendering
	return true
}

// FinishFrame completes the current frame. If a redraw was requested
// while rendering, the scheduler moves straight back to dirty so the
// next present slot picks it up; otherwise it returns to idle.
func (f *FrameScheduler) FinishFrame() {
	if f.state != FrameRendering {
		return
	}
	if f.pending {
		f.pending = false
		f.state = FrameDirty
	} else {
		f.state = FrameIdle
	}
}
