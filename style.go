package statusbar

// Axis selects the main layout direction of a container.
type Axis uint8

const (
	// AxisRow lays children out left to right. The zero value: a status
	// bar is a row of widgets.
	AxisRow Axis = iota

	// AxisColumn lays children out top to bottom.
	AxisColumn
)

// Align positions a child along the container's cross axis when the
// child does not span the full cross extent.
type Align uint8

const (
	// AlignCenter centers the child. The zero value.
	AlignCenter Align = iota

	// AlignStart places the child at the cross-axis start (top of a
	// row, left of a column).
	AlignStart

	// AlignEnd places the child at the cross-axis end.
	AlignEnd
)

// DefaultIconSize is the side length of an icon widget that declares no
// explicit size, in pixels.
const DefaultIconSize = 16.0

// Style holds the declarative appearance and sizing of a widget.
//
// Sizing rules: a dimension of 0 means automatic. On the container's
// main axis an automatic container is flexible (shares leftover space
// equally with other flexible children) and an automatic leaf uses its
// intrinsic size. On the cross axis an automatic child spans the full
// container extent if it is a container, or uses its intrinsic cross
// size if it is a leaf.
type Style struct {
	// Background fills the widget's rectangle. A fully transparent
	// background draws nothing.
	Background RGBA

	// Foreground is the text color of text widgets.
	Foreground RGBA

	// Padding insets a container's children on all four sides.
	Padding float64

	// Axis is the layout direction of a container. Ignored on leaves.
	Axis Axis

	// Align positions the widget along the parent's cross axis when it
	// does not span the full extent.
	Align Align

	// Width fixes the horizontal size in pixels. 0 means automatic.
	Width float64

	// Height fixes the vertical size in pixels. 0 means automatic.
	Height float64

	// FontSize is the text height in pixels for text widgets.
	// 0 uses the bar's default.
	FontSize float64
}

// fixedMain returns the declared main-axis size under the given axis,
// and whether one was declared.
func (s Style) fixedMain(axis Axis) (float64, bool) {
	if axis == AxisRow {
		return s.Width, s.Width > 0
	}
	return s.Height, s.Height > 0
}

// fixedCross returns the declared cross-axis size under the given axis,
// and whether one was declared.
func (s Style) fixedCross(axis Axis) (float64, bool) {
	if axis == AxisRow {
		return s.Height, s.Height > 0
	}
	return s.Width, s.Width > 0
}
