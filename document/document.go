package document

const (
	// DefaultFontSize is the container's declared font size in pixels.
	DefaultFontSize = 16
	// DefaultColor is the container's declared text color.
	DefaultColor = "#000000"
)

// Document is an in-memory rich-text tree for a single editable region plus
// the current selection.
//
// A Document is not safe for concurrent use; every operation runs to
// completion before returning.
type Document struct {
	root *Node

	anchor Caret
	focus  Caret
	hasSel bool

	version uint64
}

func newDocument() *Document {
	root := &Node{Kind: KindRoot, Size: DefaultFontSize, Color: DefaultColor}
	return &Document{root: root}
}

// New returns an empty document with no selection.
func New() *Document { return newDocument() }

// Root returns the container node. Callers must treat the tree as read-only.
func (d *Document) Root() *Node { return d.root }

// Version increments on every change to the tree.
func (d *Document) Version() uint64 { return d.version }

// Text returns the flattened visible text.
func (d *Document) Text() string { return d.root.TextContent() }

// Len returns the visible length in grapheme clusters.
func (d *Document) Len() int { return d.root.Len() }

// PendingFontSize is the size applied to newly typed text that has no
// font-size span above it.
func (d *Document) PendingFontSize() int { return d.root.Size }

// PendingColor is the color applied to newly typed text that has no color
// span above it.
func (d *Document) PendingColor() string { return d.root.Color }

func (d *Document) bump() { d.version++ }
