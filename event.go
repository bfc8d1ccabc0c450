package statusbar

// Event is a window-system event delivered by the surface provider.
// The set is closed: the runtime switches over it exhaustively.
type Event interface {
	isEvent()
}

// ResizeEvent reports a new surface size in pixels. The runtime rewrites
// the screen-size uniform and re-runs layout before the next frame.
type ResizeEvent struct {
	Width, Height uint32
}

// ExposeEvent reports that the window contents were damaged and must be
// repainted even though the tree is unchanged.
type ExposeEvent struct{}

// PointerMoveEvent reports the pointer position in bar coordinates.
type PointerMoveEvent struct {
	X, Y float64
}

// ButtonPressEvent reports a pointer button press in bar coordinates.
type ButtonPressEvent struct {
	Button uint8
	X, Y   float64
}

// CloseEvent requests shutdown of the bar.
type CloseEvent struct{}

func (ResizeEvent) isEvent()      {}
func (ExposeEvent) isEvent()      {}
func (PointerMoveEvent) isEvent() {}
func (ButtonPressEvent) isEvent() {}
func (CloseEvent) isEvent()       {}
