package document

import (
	"strings"

	"github.com/iw2rmb/scriptedit/internal/grapheme"
)

var textSanitizer = strings.NewReplacer("\r\n", "\n", "\x00", "")

// InsertText replaces the selection with s. Without a selection the text is
// appended at the end of the document. The caret ends up after the inserted
// text and the new text inherits the marks of the caret's run.
func (d *Document) InsertText(s string) bool {
	s = textSanitizer.Replace(s)
	if s == "" {
		return d.deleteSelection()
	}
	if !d.hasSel {
		d.placeCaret(d.CaretAt(d.Len()))
	}
	d.deleteSelection()
	r, _ := d.Selection()
	c := r.Start

	if wrapper, inner := d.pendingSpans(c.Node); wrapper != nil {
		t := newText(s)
		inner.appendChild(t)
		d.pointAtCaret(c).insert(wrapper)
		normalize(d.root, t)
		d.placeCaret(Caret{Node: t, Offset: grapheme.Count(s)})
		d.bump()
		return true
	}

	t := c.Node
	if t == nil || t.Kind != KindText {
		t = newText("")
		d.root.appendChild(t)
		c = Caret{Node: t}
	}
	left, right := grapheme.Cut(t.Text, c.Offset)
	t.Text = left + s + right
	d.placeCaret(Caret{Node: t, Offset: grapheme.Count(left + s)})
	d.bump()
	return true
}

// pendingSpans builds spans for the container's pending size and color when
// n is not already under spans of those kinds.
func (d *Document) pendingSpans(n *Node) (wrapper, inner *Node) {
	add := func(s *Node) {
		if wrapper == nil {
			wrapper = s
		} else {
			inner.appendChild(s)
		}
		inner = s
	}
	if d.root.Size != DefaultFontSize && n.Ancestor(KindFontSize) == nil {
		add(newFontSize(d.root.Size))
	}
	if d.root.Color != DefaultColor && n.Ancestor(KindColor) == nil {
		add(newColor(d.root.Color))
	}
	return wrapper, inner
}

// DeleteBackward deletes the selection, or the grapheme before the caret.
func (d *Document) DeleteBackward() bool {
	a, f, ok := d.anchorFocus()
	if !ok {
		return false
	}
	if a != f {
		return d.deleteSelection()
	}
	if a == 0 {
		return false
	}
	return d.deleteRange(a-1, a)
}

// DeleteForward deletes the selection, or the grapheme after the caret.
func (d *Document) DeleteForward() bool {
	a, f, ok := d.anchorFocus()
	if !ok {
		return false
	}
	if a != f {
		return d.deleteSelection()
	}
	if a >= d.Len() {
		return false
	}
	return d.deleteRange(a, a+1)
}

func (d *Document) deleteSelection() bool {
	start, end, ok := d.SelectionOffsets()
	if !ok || start == end {
		return false
	}
	return d.deleteRange(start, end)
}

// deleteRange removes the visible text in [start, end) and leaves a collapsed
// caret at start. An empty run holding the caret survives pruning.
func (d *Document) deleteRange(start, end int) bool {
	var keep *Node
	if r, ok := d.Selection(); ok && r.Collapsed() && r.Start.Node.Kind == KindText && r.Start.Node.Text == "" {
		keep = r.Start.Node
	}
	d.splitAt(start)
	d.splitAt(end)
	runs := d.runsIn(start, end)
	if len(runs) == 0 {
		return false
	}
	for _, t := range runs {
		t.Text = ""
	}
	normalize(d.root, keep)
	if keep != nil {
		d.placeCaret(Caret{Node: keep})
	} else {
		d.placeCaret(d.caretBefore(start))
	}
	d.bump()
	return true
}

// MoveCaret moves the focus by delta graphemes. With extend the anchor stays
// put; otherwise a non-collapsed selection collapses to the side of travel.
func (d *Document) MoveCaret(delta int, extend bool) {
	a, f, ok := d.anchorFocus()
	if !ok {
		d.SetCaret(0)
		return
	}
	if extend {
		d.SetSelection(a, f+delta)
		return
	}
	if a != f {
		if delta < 0 {
			d.SetCaret(min(a, f))
		} else {
			d.SetCaret(max(a, f))
		}
		return
	}
	d.SetCaret(f + delta)
}

// MoveToStart moves the focus to the beginning of the document.
func (d *Document) MoveToStart(extend bool) { d.moveTo(0, extend) }

// MoveToEnd moves the focus to the end of the document.
func (d *Document) MoveToEnd(extend bool) { d.moveTo(d.Len(), extend) }

func (d *Document) moveTo(offset int, extend bool) {
	a, _, ok := d.anchorFocus()
	if extend && ok {
		d.SetSelection(a, offset)
		return
	}
	d.SetCaret(offset)
}
