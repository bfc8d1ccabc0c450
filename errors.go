package statusbar

import "errors"

// Sentinel errors for the widget tree and the render loop. Wrap with
// fmt.Errorf("...: %w", err) to add context; test with errors.Is.
var (
	// ErrUnknownWidget is returned when a WidgetID does not refer to a
	// node in the tree.
	ErrUnknownWidget = errors.New("statusbar: unknown widget id")

	// ErrNotText is returned when a text operation targets a node that
	// is not a text widget.
	ErrNotText = errors.New("statusbar: widget is not a text node")

	// ErrNotContainer is returned when a child is added to a leaf node.
	ErrNotContainer = errors.New("statusbar: widget is not a container")

	// ErrSurfaceLost is returned by a Renderer when the presentation
	// surface became invalid and must be reconfigured. The frame loop
	// reconfigures and retries once; a second consecutive loss is fatal.
	ErrSurfaceLost = errors.New("statusbar: surface lost")

	// ErrDeviceLost is returned by a Renderer on unrecoverable device
	// failure (device removed, out of memory). Always fatal.
	ErrDeviceLost = errors.New("statusbar: device lost")
)
