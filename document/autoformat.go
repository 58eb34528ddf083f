package document

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iw2rmb/scriptedit/internal/grapheme"
)

// ErrAutoFormat reports an aborted auto-format pass. The document is left
// untouched when it is returned.
var ErrAutoFormat = errors.New("document: auto-format failed")

// Span is a half-open byte range [Start, End) in serialized markup.
type Span struct {
	Start int
	End   int
}

// ScanPlaceholders returns the placeholder tokens of markup that are not
// inside code. A token runs from '[' to the first unescaped ']', is
// non-empty and contains no tag.
func ScanPlaceholders(markup string) []Span {
	var spans []Span
	depth := 0
	for i := 0; i < len(markup); {
		switch markup[i] {
		case '<':
			end := strings.IndexByte(markup[i:], '>')
			if end < 0 {
				return spans
			}
			depth += codeDepthDelta(markup[i : i+end+1])
			if depth < 0 {
				depth = 0
			}
			i += end + 1
		case '[':
			if depth > 0 {
				i++
				continue
			}
			if n := tokenLen(markup[i:]); n > 0 {
				spans = append(spans, Span{Start: i, End: i + n})
				i += n
				continue
			}
			i++
		default:
			i++
		}
	}
	return spans
}

// codeDepthDelta classifies a tag as opening (+1) or closing (-1) a code
// region. Self-closing and unrelated tags yield 0.
func codeDepthDelta(tag string) int {
	lower := strings.ToLower(tag)
	for _, name := range [...]string{"code", "pre"} {
		if strings.HasPrefix(lower, "</"+name) && isTagNameEnd(lower, len(name)+2) {
			return -1
		}
		if strings.HasPrefix(lower, "<"+name) && isTagNameEnd(lower, len(name)+1) {
			if strings.HasSuffix(lower, "/>") {
				return 0
			}
			return 1
		}
	}
	return 0
}

func isTagNameEnd(tag string, i int) bool {
	if i >= len(tag) {
		return false
	}
	switch tag[i] {
	case '>', '/', ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}

// tokenLen returns the byte length of the placeholder token at the start of
// s, or 0 when s does not start with one. The token ends with the grapheme
// cluster that holds the closing ']', so trailing combining marks stay inside.
func tokenLen(s string) int {
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '<':
			return 0
		case ']':
			if i == 1 {
				return 0
			}
			return i + grapheme.ByteOffset(s[i:], 1)
		}
	}
	return 0
}

// AutoFormatMarkup wraps every placeholder token of markup in inline code and
// reports how many tokens were wrapped.
func AutoFormatMarkup(markup string) (string, int) {
	spans := ScanPlaceholders(markup)
	if len(spans) == 0 {
		return markup, 0
	}
	var sb strings.Builder
	sb.Grow(len(markup) + len(spans)*(len(inlineCodeOpenTag)+len("</code>")))
	last := 0
	for _, sp := range spans {
		sb.WriteString(markup[last:sp.Start])
		sb.WriteString(inlineCodeOpenTag)
		sb.WriteString(markup[sp.Start:sp.End])
		sb.WriteString("</code>")
		last = sp.End
	}
	sb.WriteString(markup[last:])
	return sb.String(), len(spans)
}

// autoFormatMarkup is replaced in tests to exercise the failure path.
var autoFormatMarkup = AutoFormatMarkup

// AutoFormat wraps unformatted placeholder tokens in inline code and restores
// the selection at the same visible offsets. It is a no-op when there is
// nothing to wrap.
func (d *Document) AutoFormat() (Result, error) {
	before := d.Markup()
	a, f, ok := d.anchorFocus()
	holder := d.emptyHolder()

	root, n, err := buildAutoFormat(before)
	if err != nil {
		return Result{Markup: before, Format: d.FormatState()}, err
	}
	if n == 0 {
		return Result{Markup: before, Format: d.FormatState()}, nil
	}

	root.Size, root.Color = d.root.Size, d.root.Color
	d.root = root
	d.restoreSelection(a, f, ok)
	if holder != nil {
		if m := emptyMarkAt(d.root, f, holder.Kind); m != nil {
			run := newText("")
			m.appendChild(run)
			d.placeCaret(Caret{Node: run})
		}
	}
	return d.result(before), nil
}

// emptyHolder returns the mark enclosing a collapsed caret that sits in an
// empty text run, or nil.
func (d *Document) emptyHolder() *Node {
	c := d.focus
	if !d.hasSel || d.anchor != c || c.Node == nil || c.Node.Kind != KindText || c.Node.Text != "" {
		return nil
	}
	if p := c.Node.Parent; p != nil && p.Kind.IsMark() {
		return p
	}
	return nil
}

// emptyMarkAt returns the first mark of kind k at flat offset off that holds
// no text run.
func emptyMarkAt(root *Node, off int, k Kind) *Node {
	acc := 0
	var found *Node
	var walk func(n *Node) bool
	walk = func(n *Node) bool {
		if n.Kind == KindText {
			acc += n.Len()
			return acc <= off
		}
		if n.Kind == k && acc == off && len(n.TextRuns()) == 0 {
			found = n
			return false
		}
		for _, c := range n.Children {
			if !walk(c) {
				return false
			}
		}
		return true
	}
	walk(root)
	return found
}

func buildAutoFormat(markup string) (root *Node, n int, err error) {
	defer func() {
		if r := recover(); r != nil {
			root, n, err = nil, 0, fmt.Errorf("%w: %v", ErrAutoFormat, r)
		}
	}()
	next, n := autoFormatMarkup(markup)
	if n == 0 {
		return nil, 0, nil
	}
	return Parse(next).root, n, nil
}
