package document

import (
	"strings"

	"github.com/iw2rmb/scriptedit/internal/grapheme"
)

// Kind identifies a node in the document tree.
type Kind uint8

const (
	KindRoot Kind = iota
	KindText
	KindBold
	KindItalic
	KindCode      // inline code
	KindCodeBlock // code-block container
	KindCodeLine  // the code element directly inside a code block
	KindFontSize
	KindColor
)

var kindNames = [...]string{
	KindRoot:      "root",
	KindText:      "text",
	KindBold:      "bold",
	KindItalic:    "italic",
	KindCode:      "code",
	KindCodeBlock: "code-block",
	KindCodeLine:  "code-line",
	KindFontSize:  "font-size",
	KindColor:     "color",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsMark reports whether k is a style wrapper rather than the root or a text run.
func (k Kind) IsMark() bool { return k >= KindBold }

// Node is either a text run (Kind == KindText) or an element with ordered
// children.
type Node struct {
	Kind Kind

	// Text is the payload of a text run.
	Text string
	// Size is the pixel font size of a font-size span or of the root.
	Size int
	// Color is the #rrggbb color of a color span or of the root.
	Color string

	Parent   *Node
	Children []*Node
}

func newText(s string) *Node { return &Node{Kind: KindText, Text: s} }

func newElement(k Kind) *Node { return &Node{Kind: k} }

func newFontSize(px int) *Node { return &Node{Kind: KindFontSize, Size: px} }

func newColor(hex string) *Node { return &Node{Kind: KindColor, Color: hex} }

// Len returns the visible length of n in grapheme clusters.
func (n *Node) Len() int {
	if n.Kind == KindText {
		return grapheme.Count(n.Text)
	}
	total := 0
	for _, c := range n.Children {
		total += c.Len()
	}
	return total
}

// TextContent returns the visible text of n and its descendants.
func (n *Node) TextContent() string {
	if n.Kind == KindText {
		return n.Text
	}
	var sb strings.Builder
	walkText(n, func(t *Node) bool {
		sb.WriteString(t.Text)
		return true
	})
	return sb.String()
}

// Ancestor returns the nearest node of kind k among n and its ancestors,
// stopping before the root. It returns nil when there is none.
func (n *Node) Ancestor(k Kind) *Node {
	for p := n; p != nil && p.Kind != KindRoot; p = p.Parent {
		if p.Kind == k {
			return p
		}
	}
	return nil
}

// outermost returns the farthest node among n and its ancestors whose kind
// satisfies match, stopping before the root.
func (n *Node) outermost(match func(*Node) bool) *Node {
	var top *Node
	for p := n; p != nil && p.Kind != KindRoot; p = p.Parent {
		if match(p) {
			top = p
		}
	}
	return top
}

func (n *Node) index() int {
	if n.Parent == nil {
		return -1
	}
	for i, c := range n.Parent.Children {
		if c == n {
			return i
		}
	}
	return -1
}

func (n *Node) firstChild() *Node {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[0]
}

func (n *Node) nextSibling() *Node {
	i := n.index()
	if i < 0 || i+1 >= len(n.Parent.Children) {
		return nil
	}
	return n.Parent.Children[i+1]
}

func (n *Node) appendChild(c *Node) {
	c.Parent = n
	n.Children = append(n.Children, c)
}

func (n *Node) insertChild(i int, c *Node) {
	if i < 0 {
		i = 0
	}
	if i > len(n.Children) {
		i = len(n.Children)
	}
	c.Parent = n
	n.Children = append(n.Children, nil)
	copy(n.Children[i+1:], n.Children[i:])
	n.Children[i] = c
}

// detach removes n from its parent.
func (n *Node) detach() {
	i := n.index()
	if i < 0 {
		return
	}
	p := n.Parent
	p.Children = append(p.Children[:i], p.Children[i+1:]...)
	n.Parent = nil
}

// takeChildren detaches and returns children [from, to).
func (n *Node) takeChildren(from, to int) []*Node {
	if from < 0 {
		from = 0
	}
	if to > len(n.Children) {
		to = len(n.Children)
	}
	if from >= to {
		return nil
	}
	out := append([]*Node(nil), n.Children[from:to]...)
	n.Children = append(n.Children[:from], n.Children[to:]...)
	for _, c := range out {
		c.Parent = nil
	}
	return out
}

// shallowClone copies kind and attributes, not children.
func (n *Node) shallowClone() *Node {
	return &Node{Kind: n.Kind, Text: n.Text, Size: n.Size, Color: n.Color}
}

// sameMark reports whether a and b are marks that render identically.
func sameMark(a, b *Node) bool {
	if a.Kind != b.Kind || !a.Kind.IsMark() {
		return false
	}
	switch a.Kind {
	case KindFontSize:
		return a.Size == b.Size
	case KindColor:
		return a.Color == b.Color
	case KindCodeBlock, KindCodeLine:
		return false
	}
	return true
}

// unwrap replaces n with its children in n's parent.
func unwrap(n *Node) {
	p := n.Parent
	if p == nil {
		return
	}
	i := n.index()
	kids := n.takeChildren(0, len(n.Children))
	n.detach()
	for j, c := range kids {
		p.insertChild(i+j, c)
	}
}

// walkText visits text runs under n in document order until fn returns false.
func walkText(n *Node, fn func(*Node) bool) bool {
	if n.Kind == KindText {
		return fn(n)
	}
	for _, c := range n.Children {
		if !walkText(c, fn) {
			return false
		}
	}
	return true
}

// TextRuns returns the text runs under n in document order.
func (n *Node) TextRuns() []*Node {
	var runs []*Node
	walkText(n, func(t *Node) bool {
		runs = append(runs, t)
		return true
	})
	return runs
}

func contains(ancestor, n *Node) bool {
	for p := n; p != nil; p = p.Parent {
		if p == ancestor {
			return true
		}
	}
	return false
}

// commonAncestor returns the deepest node containing both a and b.
func commonAncestor(a, b *Node) *Node {
	seen := make(map[*Node]bool)
	for p := a; p != nil; p = p.Parent {
		seen[p] = true
	}
	for p := b; p != nil; p = p.Parent {
		if seen[p] {
			return p
		}
	}
	return nil
}

// insideCodeBlock reports whether n has a code-block container above it.
func insideCodeBlock(n *Node) bool {
	for p := n.Parent; p != nil && p.Kind != KindRoot; p = p.Parent {
		if p.Kind == KindCodeBlock {
			return true
		}
	}
	return false
}
