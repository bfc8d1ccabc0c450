package statusbar

// WidgetID identifies a node in a Tree. IDs are stable for the lifetime
// of the tree: nodes are never removed, so an ID handed out once stays
// valid until the tree is discarded.
type WidgetID int32

// NoWidget is the null widget ID. Tree.Parent returns it for the root.
const NoWidget WidgetID = -1

// Kind discriminates the widget variants. The set is closed: layout and
// batch building switch over it exhaustively.
type Kind uint8

const (
	// KindContainer groups children along an axis.
	KindContainer Kind = iota

	// KindText displays a single run of text.
	KindText

	// KindIcon reserves a fixed-size slot drawn in the background color.
	KindIcon
)

// String returns the kind name for logging.
func (k Kind) String() string {
	switch k {
	case KindContainer:
		return "container"
	case KindText:
		return "text"
	case KindIcon:
		return "icon"
	default:
		return "unknown"
	}
}

// node is the arena slot backing one widget. Children are owned by their
// parent through the children slice; parent is a non-owning back-link
// used only for hit-test bubbling.
type node struct {
	kind      Kind
	style     Style
	parent    WidgetID
	children  []WidgetID
	rect      Rect
	text      string
	intrinsic Size
	hidden    bool
}

// Tree is the retained widget hierarchy. It is the single source of
// truth for what is drawn: the render pipeline reads only node style,
// content, and computed rectangles.
//
// Tree is not safe for concurrent use; it is owned by the render
// goroutine.
type Tree struct {
	nodes []node
}

// NewTree creates a tree holding a single root container with the given
// style. The root always spans the full bar.
func NewTree(rootStyle Style) *Tree {
	return &Tree{
		nodes: []node{{
			kind:   KindContainer,
			style:  rootStyle,
			parent: NoWidget,
		}},
	}
}

// Root returns the root container's ID.
func (t *Tree) Root() WidgetID {
	return 0
}

// Len returns the number of widgets in the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}

func (t *Tree) valid(id WidgetID) bool {
	return id >= 0 && int(id) < len(t.nodes)
}

// add appends a node under parent and returns its ID.
func (t *Tree) add(parent WidgetID, n node) (WidgetID, error) {
	if !t.valid(parent) {
		return NoWidget, ErrUnknownWidget
	}
	if t.nodes[parent].kind != KindContainer {
		return NoWidget, ErrNotContainer
	}
	id := WidgetID(len(t.nodes))
	n.parent = parent
	t.nodes = append(t.nodes, n)
	t.nodes[parent].children = append(t.nodes[parent].children, id)
	return id, nil
}

// AddContainer adds a child container under parent. A container with no
// fixed main-axis size is flexible: it absorbs an equal share of the
// space left over by its siblings.
func (t *Tree) AddContainer(parent WidgetID, style Style) (WidgetID, error) {
	return t.add(parent, node{kind: KindContainer, style: style})
}

// AddText adds a text leaf under parent. Its intrinsic size starts at
// zero until the runtime measures the text.
func (t *Tree) AddText(parent WidgetID, text string, style Style) (WidgetID, error) {
	return t.add(parent, node{kind: KindText, style: style, text: text})
}

// AddIcon adds an icon leaf under parent. Without a declared size the
// icon is DefaultIconSize square.
func (t *Tree) AddIcon(parent WidgetID, style Style) (WidgetID, error) {
	sz := Size{W: DefaultIconSize, H: DefaultIconSize}
	if style.Width > 0 {
		sz.W = style.Width
	}
	if style.Height > 0 {
		sz.H = style.Height
	}
	return t.add(parent, node{kind: KindIcon, style: style, intrinsic: sz})
}

// Kind returns the variant of the widget.
func (t *Tree) Kind(id WidgetID) Kind {
	if !t.valid(id) {
		return KindContainer
	}
	return t.nodes[id].kind
}

// Style returns the widget's style.
func (t *Tree) Style(id WidgetID) Style {
	if !t.valid(id) {
		return Style{}
	}
	return t.nodes[id].style
}

// Rect returns the widget's rectangle as computed by the last Layout.
func (t *Tree) Rect(id WidgetID) Rect {
	if !t.valid(id) {
		return Rect{}
	}
	return t.nodes[id].rect
}

// Text returns the content of a text widget, or "" for other kinds.
func (t *Tree) Text(id WidgetID) string {
	if !t.valid(id) {
		return ""
	}
	return t.nodes[id].text
}

// Parent returns the non-owning parent link, or NoWidget for the root.
// Used for event bubbling after a hit test.
func (t *Tree) Parent(id WidgetID) WidgetID {
	if !t.valid(id) || id == 0 {
		return NoWidget
	}
	return t.nodes[id].parent
}

// Children returns the widget's children in draw order. The returned
// slice is owned by the tree and must not be modified.
func (t *Tree) Children(id WidgetID) []WidgetID {
	if !t.valid(id) {
		return nil
	}
	return t.nodes[id].children
}

// Hidden reports whether the widget is excluded from drawing and
// hit-testing.
func (t *Tree) Hidden(id WidgetID) bool {
	if !t.valid(id) {
		return true
	}
	return t.nodes[id].hidden
}

// Intrinsic returns the widget's intrinsic size (measured text, icon
// slot). Zero for containers.
func (t *Tree) Intrinsic(id WidgetID) Size {
	if !t.valid(id) {
		return Size{}
	}
	return t.nodes[id].intrinsic
}

// UpdateText replaces the content of a text widget. The tree shape never
// changes; the caller re-measures and re-runs layout because the
// intrinsic size may have changed.
func (t *Tree) UpdateText(id WidgetID, text string) error {
	if !t.valid(id) {
		return ErrUnknownWidget
	}
	if t.nodes[id].kind != KindText {
		return ErrNotText
	}
	t.nodes[id].text = text
	return nil
}

// SetIntrinsicSize records the measured intrinsic size of a text widget.
// Called by the runtime after measuring; layout reads it on the next
// pass.
func (t *Tree) SetIntrinsicSize(id WidgetID, sz Size) error {
	if !t.valid(id) {
		return ErrUnknownWidget
	}
	if t.nodes[id].kind != KindText {
		return ErrNotText
	}
	t.nodes[id].intrinsic = sz
	return nil
}

// SetBackground changes the widget's fill color without relayout.
func (t *Tree) SetBackground(id WidgetID, c RGBA) error {
	if !t.valid(id) {
		return ErrUnknownWidget
	}
	t.nodes[id].style.Background = c
	return nil
}

// SetForeground changes a text widget's color without relayout.
func (t *Tree) SetForeground(id WidgetID, c RGBA) error {
	if !t.valid(id) {
		return ErrUnknownWidget
	}
	t.nodes[id].style.Foreground = c
	return nil
}

// SetHidden toggles drawing and hit-testing of the widget and its
// subtree. Hidden widgets keep their layout slot.
func (t *Tree) SetHidden(id WidgetID, hidden bool) error {
	if !t.valid(id) {
		return ErrUnknownWidget
	}
	t.nodes[id].hidden = hidden
	return nil
}

// FindAt returns the deepest visible widget containing p. Among
// overlapping siblings the most recently added child wins: children are
// drawn in order, so the later sibling is on top and is tested first.
// Returns false if no widget contains p.
func (t *Tree) FindAt(p Point) (WidgetID, bool) {
	if len(t.nodes) == 0 {
		return NoWidget, false
	}
	return t.findAt(0, p)
}

func (t *Tree) findAt(id WidgetID, p Point) (WidgetID, bool) {
	n := &t.nodes[id]
	if n.hidden {
		return NoWidget, false
	}
	// Children first, topmost (last-drawn) to bottom. A child may extend
	// outside its parent and still be hit.
	for i := len(n.children) - 1; i >= 0; i-- {
		if hit, ok := t.findAt(n.children[i], p); ok {
			return hit, true
		}
	}
	if n.rect.Contains(p) {
		return id, true
	}
	return NoWidget, false
}

// Walk traverses the tree in draw order: each widget before its
// children, children in the order they were added. Hidden subtrees are
// skipped. Return false from fn to stop the traversal.
func (t *Tree) Walk(fn func(WidgetID) bool) {
	if len(t.nodes) == 0 {
		return
	}
	t.walk(0, fn)
}

func (t *Tree) walk(id WidgetID, fn func(WidgetID) bool) bool {
	n := &t.nodes[id]
	if n.hidden {
		return true
	}
	if !fn(id) {
		return false
	}
	for _, c := range n.children {
		if !t.walk(c, fn) {
			return false
		}
	}
	return true
}
