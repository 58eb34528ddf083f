package document

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidFontSize is returned for a non-positive font size.
	ErrInvalidFontSize = errors.New("document: invalid font size")
	// ErrInvalidColor is returned for a color that is not #rgb or #rrggbb.
	ErrInvalidColor = errors.New("document: invalid color")
)

// Op identifies a formatting command.
type Op uint8

const (
	OpToggleBold Op = iota + 1
	OpToggleItalic
	OpToggleInlineCode
	OpToggleCodeBlock
	OpSetFontSize
	OpStepFontSize
	OpSetColor
)

var opNames = map[Op]string{
	OpToggleBold:       "toggle-bold",
	OpToggleItalic:     "toggle-italic",
	OpToggleInlineCode: "toggle-inline-code",
	OpToggleCodeBlock:  "toggle-code-block",
	OpSetFontSize:      "set-font-size",
	OpStepFontSize:     "step-font-size",
	OpSetColor:         "set-color",
}

func (o Op) String() string {
	if s, ok := opNames[o]; ok {
		return s
	}
	return fmt.Sprintf("op(%d)", uint8(o))
}

// Command is a formatting command applied to the current selection.
type Command struct {
	Op Op

	// Size is the pixel size for OpSetFontSize.
	Size int
	// Step is the ladder direction for OpStepFontSize: +1 or -1.
	Step int
	// Color is the hex color for OpSetColor.
	Color string
}

func Bold() Command       { return Command{Op: OpToggleBold} }
func Italic() Command     { return Command{Op: OpToggleItalic} }
func InlineCode() Command { return Command{Op: OpToggleInlineCode} }
func CodeBlock() Command  { return Command{Op: OpToggleCodeBlock} }

func FontSize(px int) Command { return Command{Op: OpSetFontSize, Size: px} }

// StepSize moves one rung up the font-size ladder for dir > 0 and one rung
// down for dir < 0.
func StepSize(dir int) Command { return Command{Op: OpStepFontSize, Step: dir} }

func Color(hex string) Command { return Command{Op: OpSetColor, Color: hex} }

// Result reports the outcome of a mutation.
type Result struct {
	// Changed is true when Markup differs from the markup before the call.
	Changed bool
	Markup  string
	Format  FormatState
}

// Apply runs cmd against the current selection.
func (d *Document) Apply(cmd Command) (Result, error) {
	before := d.Markup()
	var err error
	switch cmd.Op {
	case OpToggleBold:
		d.toggleMark(KindBold)
	case OpToggleItalic:
		d.toggleMark(KindItalic)
	case OpToggleInlineCode:
		d.toggleInlineCode()
	case OpToggleCodeBlock:
		d.toggleCodeBlock()
	case OpSetFontSize:
		err = d.setFontSize(cmd.Size)
	case OpStepFontSize:
		err = d.setFontSize(stepLadder(d.FormatState().FontSize, cmd.Step))
	case OpSetColor:
		err = d.setColor(cmd.Color)
	default:
		err = fmt.Errorf("document: unknown command %v", cmd.Op)
	}
	return d.result(before), err
}

func (d *Document) result(before string) Result {
	after := d.Markup()
	changed := after != before
	if changed {
		d.bump()
	}
	return Result{Changed: changed, Markup: after, Format: d.FormatState()}
}

func isKind(k Kind) func(*Node) bool {
	return func(n *Node) bool { return n.Kind == k }
}

func isInlineCode(n *Node) bool { return n.Kind == KindCode && !insideCodeBlock(n) }

func isCodeBlockPart(n *Node) bool { return n.Kind == KindCodeBlock || n.Kind == KindCodeLine }

// activeOver reports whether every non-empty run intersecting [start, end)
// sits under a node accepted by match.
func (d *Document) activeOver(start, end int, match func(*Node) bool) bool {
	runs := d.runsTouching(start, end)
	if len(runs) == 0 {
		return false
	}
	for _, r := range runs {
		if r.outermost(match) == nil {
			return false
		}
	}
	return true
}

func (d *Document) toggleMark(k Kind) {
	d.toggle(isKind(k), func() (*Node, *Node) {
		n := newElement(k)
		return n, n
	})
}

func (d *Document) toggleInlineCode() {
	if r, ok := d.Selection(); ok && formatAt(d.root, r.Start.Node).CodeBlock {
		return
	}
	d.toggle(isInlineCode, func() (*Node, *Node) {
		n := newElement(KindCode)
		return n, n
	})
}

// toggle removes the mark when it is active over the whole selection and
// applies it otherwise. A collapsed selection inserts an empty mark holding
// the caret, or steps the caret out of an active one.
func (d *Document) toggle(match func(*Node) bool, build func() (wrapper, inner *Node)) {
	r, ok := d.Selection()
	if !ok {
		return
	}
	if r.Collapsed() {
		var holder *Node
		if m := r.Start.Node.outermost(match); m != nil {
			holder = d.exitMark(r.Start, m)
		} else {
			wrapper, inner := build()
			holder = newText("")
			inner.appendChild(holder)
			d.pointAtCaret(r.Start).insert(wrapper)
		}
		normalize(d.root, holder)
		d.placeCaret(Caret{Node: holder})
		return
	}

	a, f, _ := d.anchorFocus()
	start, end := min(a, f), max(a, f)
	active := d.activeOver(start, end, match)
	d.stripRange(start, end, match)
	if !active {
		wrapper, inner := build()
		d.wrapRange(start, end, wrapper, inner)
	}
	normalize(d.root, nil)
	d.SetSelection(a, f)
}

func newCodeBlock() (block, line *Node) {
	block = newElement(KindCodeBlock)
	line = newElement(KindCodeLine)
	block.appendChild(line)
	return block, line
}

func (d *Document) toggleCodeBlock() {
	r, ok := d.Selection()
	if !ok {
		return
	}
	a, f, _ := d.anchorFocus()
	if b := r.Start.Node.outermost(isKind(KindCodeBlock)); b != nil {
		if text := b.TextContent(); text != "" {
			b.Parent.insertChild(b.index(), newText(text))
		}
		b.detach()
		normalize(d.root, nil)
		d.SetSelection(a, f)
		return
	}
	if r.Collapsed() {
		block, line := newCodeBlock()
		holder := newText("")
		line.appendChild(holder)
		d.pointAtCaret(r.Start).insert(block)
		normalize(d.root, holder)
		d.placeCaret(Caret{Node: holder})
		return
	}
	start, end := min(a, f), max(a, f)
	d.stripRange(start, end, isCodeBlockPart)
	block, line := newCodeBlock()
	d.wrapRange(start, end, block, line)
	normalize(d.root, nil)
	d.SetSelection(a, f)
}

func (d *Document) setFontSize(px int) error {
	if px <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidFontSize, px)
	}
	a, f, ok := d.anchorFocus()
	if !ok || a == f {
		d.root.Size = px
		return nil
	}
	start, end := min(a, f), max(a, f)
	d.stripRange(start, end, isKind(KindFontSize))
	n := newFontSize(px)
	d.wrapRange(start, end, n, n)
	normalize(d.root, nil)
	d.SetSelection(a, f)
	return nil
}

func (d *Document) setColor(hex string) error {
	c, ok := normalizeHex(hex)
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidColor, hex)
	}
	a, f, ok := d.anchorFocus()
	if !ok || a == f {
		d.root.Color = c
		return nil
	}
	start, end := min(a, f), max(a, f)
	d.stripRange(start, end, isKind(KindColor))
	n := newColor(c)
	d.wrapRange(start, end, n, n)
	normalize(d.root, nil)
	d.SetSelection(a, f)
	return nil
}
