package statusbar

// DefaultFontSize is the text pixel size used when neither the bar nor
// the widget style declares one.
const DefaultFontSize = 13.0

// defaultStaleFade is the alpha multiplier applied to a bound widget's
// foreground while its metric source is failing.
const defaultStaleFade = 0.45

// Option configures a Bar at construction time.
type Option func(*Bar)

// WithSize sets the bar dimensions used before the first resize event
// arrives. Without it the bar stays unsized (and renders nothing) until
// the surface provider reports its geometry.
func WithSize(width, height uint32) Option {
	return func(b *Bar) {
		b.width, b.height = width, height
	}
}

// WithFontSize overrides the default text pixel size for widgets that do
// not declare their own.
func WithFontSize(px float64) Option {
	return func(b *Bar) {
		if px > 0 {
			b.fontSize = px
		}
	}
}

// WithStaleFade sets the foreground alpha multiplier for widgets whose
// metric source is currently failing. The factor is clamped to [0, 1].
func WithStaleFade(factor float64) Option {
	return func(b *Bar) {
		switch {
		case factor < 0:
			b.staleFade = 0
		case factor > 1:
			b.staleFade = 1
		default:
			b.staleFade = factor
		}
	}
}
