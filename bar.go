package statusbar

import (
	"context"
	"errors"
	"fmt"

	"github.com/gogpu/statusbar/metrics"
)

// Measurer provides intrinsic text sizes for layout. The text package
// implements it on top of shaped glyph advances.
type Measurer interface {
	// MeasureText returns the size of a text run at the given pixel
	// size: width is the widest line's advance, height is the line
	// count times the line height.
	MeasureText(text string, sizePx float64) Size
}

// Renderer turns the widget tree into a presented frame. The render
// package implements it over gogpu/wgpu.
//
// RenderTree reports surface loss as an error matching ErrSurfaceLost;
// the runtime reconfigures via Resize and retries the frame once.
// Unrecoverable device failures match ErrDeviceLost and end the run.
type Renderer interface {
	// Resize reconfigures the presentation target and rewrites the
	// screen-size uniform for the next frame.
	Resize(width, height uint32) error

	// RenderTree builds draw batches from the tree, submits them, and
	// presents. The tree must already be laid out.
	RenderTree(t *Tree) error

	// Close releases all GPU resources.
	Close() error
}

// Formatter renders a metric sample into widget text. It receives the
// whole sample so time-based widgets can format the timestamp.
type Formatter func(s metrics.Sample) string

// binding connects one metric key to one text widget.
type binding struct {
	id       WidgetID
	format   Formatter
	normalFG RGBA
	stale    bool
}

// hoverSpot is a widget registered for pointer hover highlighting.
type hoverSpot struct {
	highlight RGBA
	saved     RGBA
	active    bool
}

// Stats counts runtime work, mirroring what the update loop promises:
// samples are applied individually but layout passes are coalesced.
type Stats struct {
	TextUpdates    uint64
	LayoutPasses   uint64
	FramesRendered uint64
	SamplesApplied uint64
	SamplesDropped uint64
}

// Bar is the runtime tying the pieces together: it owns the widget
// tree, the frame scheduler, and the renderer, and it is the single
// consumer of the metric sample channel. All methods must be called
// from the goroutine running Run.
type Bar struct {
	tree  *Tree
	sched FrameScheduler
	rend  Renderer
	meas  Measurer

	width, height uint32
	fontSize      float64
	staleFade     float64

	bindings map[string]*binding
	clicks   map[WidgetID]func(ButtonPressEvent)
	hovers   map[WidgetID]*hoverSpot
	hovered  WidgetID

	stats Stats
}

// New creates a bar runtime over an existing tree. The renderer may be
// nil for headless use (layout and bindings still run; frames are
// skipped). A nil measurer falls back to a fixed-advance approximation.
func New(tree *Tree, rend Renderer, meas Measurer, opts ...Option) *Bar {
	b := &Bar{
		tree:      tree,
		rend:      rend,
		meas:      meas,
		fontSize:  DefaultFontSize,
		staleFade: defaultStaleFade,
		bindings:  make(map[string]*binding),
		clicks:    make(map[WidgetID]func(ButtonPressEvent)),
		hovers:    make(map[WidgetID]*hoverSpot),
		hovered:   NoWidget,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.meas == nil {
		b.meas = approxMeasurer{}
	}
	return b
}

// Tree returns the bar's widget tree.
func (b *Bar) Tree() *Tree {
	return b.tree
}

// Stats returns a snapshot of the runtime counters.
func (b *Bar) Stats() Stats {
	return b.stats
}

// Bind connects a metric key to a text widget. Each sample carrying the
// key is formatted and applied to the widget. Failed samples keep the
// last text and fade the foreground until a good sample arrives.
func (b *Bar) Bind(key string, id WidgetID, format Formatter) error {
	if b.tree.Kind(id) != KindText || !b.tree.valid(id) {
		return ErrNotText
	}
	b.bindings[key] = &binding{
		id:       id,
		format:   format,
		normalFG: b.tree.Style(id).Foreground,
	}
	return nil
}

// OnClick registers a handler invoked when a button press hits the
// widget or any of its descendants (the hit bubbles up to the nearest
// registered ancestor).
func (b *Bar) OnClick(id WidgetID, fn func(ButtonPressEvent)) {
	b.clicks[id] = fn
}

// SetHoverHighlight makes the widget's background switch to highlight
// while the pointer is over it (or over a descendant), restoring the
// original background on leave.
func (b *Bar) SetHoverHighlight(id WidgetID, highlight RGBA) {
	b.hovers[id] = &hoverSpot{highlight: highlight}
}

// fontSizeFor resolves a text widget's pixel size.
func (b *Bar) fontSizeFor(id WidgetID) float64 {
	if fs := b.tree.Style(id).FontSize; fs > 0 {
		return fs
	}
	return b.fontSize
}

// remeasure refreshes one text widget's intrinsic size.
func (b *Bar) remeasure(id WidgetID) {
	sz := b.meas.MeasureText(b.tree.Text(id), b.fontSizeFor(id))
	_ = b.tree.SetIntrinsicSize(id, sz)
}

// MeasureAll refreshes intrinsic sizes for every text widget. Called
// once before the first layout and after font changes.
func (b *Bar) MeasureAll() {
	b.tree.Walk(func(id WidgetID) bool {
		if b.tree.Kind(id) == KindText {
			b.remeasure(id)
		}
		return true
	})
}

// relayout runs one layout pass at the current size.
func (b *Bar) relayout() {
	Layout(b.tree, Size{W: float64(b.width), H: float64(b.height)})
	b.stats.LayoutPasses++
}

// applySample applies one metric sample to its bound widget.
// Returns true if the tree changed.
func (b *Bar) applySample(s metrics.Sample) bool {
	bind, ok := b.bindings[s.Key]
	if !ok {
		b.stats.SamplesDropped++
		Logger().Debug("sample for unbound key", "key", s.Key)
		return false
	}
	b.stats.SamplesApplied++

	if s.Err != nil {
		// Keep the last text on screen; fade it until data returns.
		if !bind.stale {
			bind.stale = true
			faded := bind.normalFG.WithAlpha(bind.normalFG.A * b.staleFade)
			_ = b.tree.SetForeground(bind.id, faded)
			Logger().Warn("metric unavailable", "key", s.Key, "err", s.Err)
		}
		return true
	}

	if bind.stale {
		bind.stale = false
		_ = b.tree.SetForeground(bind.id, bind.normalFG)
	}
	if err := b.tree.UpdateText(bind.id, bind.format(s)); err != nil {
		Logger().Warn("update text", "key", s.Key, "err", err)
		return false
	}
	b.stats.TextUpdates++
	b.remeasure(bind.id)
	return true
}

// DrainSamples applies every sample already queued on the channel
// without blocking, then runs at most one layout pass if anything
// changed. Returns the number of samples consumed.
func (b *Bar) DrainSamples(samples <-chan metrics.Sample) int {
	return b.drainSamples(samples, false)
}

// drainSamples is DrainSamples with a pre-existing change folded into
// the coalesced layout decision: Run applies the sample it blocked on
// before draining the rest, and that change must still count.
func (b *Bar) drainSamples(samples <-chan metrics.Sample, changed bool) int {
	n := 0
	for {
		select {
		case s, ok := <-samples:
			if !ok {
				if changed {
					b.relayout()
					b.sched.RequestRedraw()
				}
				return n
			}
			if b.applySample(s) {
				changed = true
			}
			n++
		default:
			if changed {
				b.relayout()
				b.sched.RequestRedraw()
			}
			return n
		}
	}
}

// HandleEvent applies one window-system event. It returns false when
// the event requests shutdown.
func (b *Bar) HandleEvent(ev Event) bool {
	switch e := ev.(type) {
	case ResizeEvent:
		if e.Width == b.width && e.Height == b.height {
			return true // duplicate, coalesced silently
		}
		b.width, b.height = e.Width, e.Height
		if b.rend != nil {
			if err := b.rend.Resize(e.Width, e.Height); err != nil {
				Logger().Warn("resize", "err", err)
			}
		}
		b.relayout()
		b.sched.RequestRedraw()
	case ExposeEvent:
		b.sched.RequestRedraw()
	case PointerMoveEvent:
		b.pointerMoved(Pt(e.X, e.Y))
	case ButtonPressEvent:
		b.buttonPressed(e)
	case CloseEvent:
		return false
	}
	return true
}

// bubbleTo walks from a hit widget up the parent chain to the nearest
// ancestor present in reg. Returns NoWidget if none is registered.
func bubbleTo[T any](t *Tree, id WidgetID, reg map[WidgetID]T) WidgetID {
	for id != NoWidget {
		if _, ok := reg[id]; ok {
			return id
		}
		id = t.Parent(id)
	}
	return NoWidget
}

func (b *Bar) pointerMoved(p Point) {
	target := NoWidget
	if hit, ok := b.tree.FindAt(p); ok {
		target = bubbleTo(b.tree, hit, b.hovers)
	}
	if target == b.hovered {
		return
	}
	if prev, ok := b.hovers[b.hovered]; ok && prev.active {
		prev.active = false
		_ = b.tree.SetBackground(b.hovered, prev.saved)
	}
	b.hovered = target
	if spot, ok := b.hovers[target]; ok {
		spot.saved = b.tree.Style(target).Background
		spot.active = true
		_ = b.tree.SetBackground(target, spot.highlight)
	}
	b.sched.RequestRedraw()
}

func (b *Bar) buttonPressed(e ButtonPressEvent) {
	hit, ok := b.tree.FindAt(Pt(e.X, e.Y))
	if !ok {
		return
	}
	if target := bubbleTo(b.tree, hit, b.clicks); target != NoWidget {
		b.clicks[target](e)
	}
}

// renderFrame submits one frame. A lost surface is reconfigured and the
// frame retried once; a second consecutive loss, or any device failure,
// is returned as fatal.
func (b *Bar) renderFrame() error {
	if b.rend == nil || b.width == 0 || b.height == 0 {
		return nil
	}
	err := b.rend.RenderTree(b.tree)
	if err == nil {
		b.stats.FramesRendered++
		return nil
	}
	if errors.Is(err, ErrSurfaceLost) {
		Logger().Warn("surface lost, reconfiguring", "width", b.width, "height", b.height)
		if rerr := b.rend.Resize(b.width, b.height); rerr != nil {
			return fmt.Errorf("reconfigure after surface loss: %w", rerr)
		}
		if err := b.rend.RenderTree(b.tree); err != nil {
			return fmt.Errorf("frame retry after surface loss: %w", err)
		}
		b.stats.FramesRendered++
		return nil
	}
	return err
}

// Run drives the bar until the context is cancelled, a CloseEvent
// arrives, or a fatal render error occurs. It measures and lays out the
// tree, then alternates between draining inputs and presenting frames.
// While idle it blocks on the channels; there is no polling loop.
func (b *Bar) Run(ctx context.Context, events <-chan Event, samples <-chan metrics.Sample) error {
	b.MeasureAll()
	if b.width > 0 && b.height > 0 {
		b.relayout()
		b.sched.RequestRedraw()
	}

	for {
		if b.sched.BeginFrame() {
			err := b.renderFrame()
			b.sched.FinishFrame()
			if err != nil {
				b.teardown(samples)
				return err
			}
			// Pick up anything that arrived during the frame without
			// blocking, so a pending redraw renders promptly.
			b.DrainSamples(samples)
			continue
		}

		if events == nil && samples == nil {
			b.teardown(nil)
			return nil
		}

		select {
		case <-ctx.Done():
			b.teardown(samples)
			return nil

		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if !b.HandleEvent(ev) {
				b.teardown(samples)
				return nil
			}
			// Coalesce bursts: duplicate resizes and redundant redraw
			// requests collapse into one dirty frame.
			for drained := true; drained; {
				select {
				case ev, ok := <-events:
					if !ok {
						events = nil
						drained = false
					} else if !b.HandleEvent(ev) {
						b.teardown(samples)
						return nil
					}
				default:
					drained = false
				}
			}
			b.DrainSamples(samples)

		case s, ok := <-samples:
			if !ok {
				samples = nil
				continue
			}
			// Apply the sample we woke on, then drain the rest; the
			// layout pass is coalesced across all of them.
			b.drainSamples(samples, b.applySample(s))
		}
	}
}

// teardown drains remaining samples best-effort and closes the
// renderer. GPU resources go away with it; the tree stays readable.
func (b *Bar) teardown(samples <-chan metrics.Sample) {
	if samples != nil {
		b.DrainSamples(samples)
	}
	if b.rend != nil {
		if err := b.rend.Close(); err != nil {
			Logger().Warn("renderer close", "err", err)
		}
	}
}

// approxMeasurer estimates text sizes without a font: glyphs advance
// 0.6em, lines are 1.2em tall. Used when no Measurer is supplied.
type approxMeasurer struct{}

func (approxMeasurer) MeasureText(text string, sizePx float64) Size {
	var lines, max, cur int
	lines = 1
	for _, r := range text {
		if r == '\n' {
			lines++
			cur = 0
			continue
		}
		cur++
		if cur > max {
			max = cur
		}
	}
	return Size{
		W: float64(max) * sizePx * 0.6,
		H: float64(lines) * sizePx * 1.2,
	}
}

var _ Measurer = approxMeasurer{}
