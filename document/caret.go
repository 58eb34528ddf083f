package document

import "github.com/iw2rmb/scriptedit/internal/grapheme"

// Caret addresses a position inside a text run, in grapheme clusters.
// A caret on the root with Offset 0 addresses a tree without text runs.
type Caret struct {
	Node   *Node
	Offset int
}

// Range is a pair of carets in document order.
type Range struct {
	Start Caret
	End   Caret
}

// Collapsed reports whether the range addresses a single position.
func (r Range) Collapsed() bool { return r.Start == r.End }

func (d *Document) rootCaret() Caret { return Caret{Node: d.root} }

// CaretAt converts a flat visible-text offset to a caret. Offsets are clamped
// to the document; a boundary between two runs resolves to the start of the
// following run.
func (d *Document) CaretAt(offset int) Caret {
	if offset < 0 {
		offset = 0
	}
	var last *Node
	acc := 0
	found := Caret{}
	walkText(d.root, func(t *Node) bool {
		n := t.Len()
		if offset < acc+n {
			found = Caret{Node: t, Offset: offset - acc}
			return false
		}
		acc += n
		last = t
		return true
	})
	if found.Node != nil {
		return found
	}
	if last == nil {
		return d.rootCaret()
	}
	return Caret{Node: last, Offset: last.Len()}
}

// caretBefore is CaretAt with the opposite bias: a boundary between two runs
// resolves to the end of the preceding non-empty run.
func (d *Document) caretBefore(offset int) Caret {
	if offset <= 0 {
		return d.CaretAt(0)
	}
	acc := 0
	found := Caret{}
	walkText(d.root, func(t *Node) bool {
		n := t.Len()
		if n > 0 && acc < offset && offset <= acc+n {
			found = Caret{Node: t, Offset: offset - acc}
			return false
		}
		acc += n
		return true
	})
	if found.Node != nil {
		return found
	}
	return d.CaretAt(offset)
}

// OffsetOf converts a caret to a flat visible-text offset. It reports false
// when the caret's node is not part of this document.
func (d *Document) OffsetOf(c Caret) (int, bool) {
	if c.Node == nil {
		return 0, false
	}
	if c.Node == d.root {
		return 0, true
	}
	acc := 0
	found := false
	walkText(d.root, func(t *Node) bool {
		if t == c.Node {
			found = true
			return false
		}
		acc += t.Len()
		return true
	})
	if !found {
		return 0, false
	}
	off := c.Offset
	if off < 0 {
		off = 0
	}
	if n := c.Node.Len(); off > n {
		off = n
	}
	return acc + off, true
}

func (d *Document) clampOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	if n := d.Len(); offset > n {
		return n
	}
	return offset
}

// Selection returns the current range in document order.
func (d *Document) Selection() (Range, bool) {
	if !d.hasSel {
		return Range{}, false
	}
	a, aok := d.OffsetOf(d.anchor)
	f, fok := d.OffsetOf(d.focus)
	if !aok || !fok {
		return Range{}, false
	}
	if f < a {
		return Range{Start: d.focus, End: d.anchor}, true
	}
	return Range{Start: d.anchor, End: d.focus}, true
}

// SelectionOffsets returns the selection as ordered flat offsets.
func (d *Document) SelectionOffsets() (start, end int, ok bool) {
	a, f, ok := d.anchorFocus()
	if !ok {
		return 0, 0, false
	}
	if f < a {
		a, f = f, a
	}
	return a, f, true
}

// SelectionEnds returns the anchor and focus offsets. The focus is where the
// caret is drawn and where extending moves.
func (d *Document) SelectionEnds() (anchor, focus int, ok bool) { return d.anchorFocus() }

func (d *Document) anchorFocus() (anchor, focus int, ok bool) {
	if !d.hasSel {
		return 0, 0, false
	}
	a, aok := d.OffsetOf(d.anchor)
	f, fok := d.OffsetOf(d.focus)
	if !aok || !fok {
		return 0, 0, false
	}
	return a, f, true
}

// SetSelection selects from anchor to focus. Either may be greater.
func (d *Document) SetSelection(anchor, focus int) {
	anchor = d.clampOffset(anchor)
	focus = d.clampOffset(focus)
	switch {
	case anchor == focus:
		c := d.CaretAt(anchor)
		d.anchor, d.focus = c, c
	case anchor < focus:
		d.anchor, d.focus = d.CaretAt(anchor), d.caretBefore(focus)
	default:
		d.anchor, d.focus = d.caretBefore(anchor), d.CaretAt(focus)
	}
	d.hasSel = true
}

// SetCaret collapses the selection at offset.
func (d *Document) SetCaret(offset int) { d.SetSelection(offset, offset) }

// ClearSelection drops the selection.
func (d *Document) ClearSelection() {
	d.anchor, d.focus = Caret{}, Caret{}
	d.hasSel = false
}

func (d *Document) placeCaret(c Caret) {
	d.anchor, d.focus = c, c
	d.hasSel = true
}

// restoreSelection re-resolves a selection captured as flat offsets.
func (d *Document) restoreSelection(anchor, focus int, ok bool) {
	if !ok {
		d.ClearSelection()
		return
	}
	d.SetSelection(anchor, focus)
}

// TextIn returns the visible text between two flat offsets.
func (d *Document) TextIn(start, end int) string {
	if end < start {
		start, end = end, start
	}
	var out []byte
	acc := 0
	walkText(d.root, func(t *Node) bool {
		n := t.Len()
		lo, hi := max(start-acc, 0), min(end-acc, n)
		if lo < hi {
			out = append(out, grapheme.Slice(t.Text, lo, hi)...)
		}
		acc += n
		return acc < end
	})
	return string(out)
}
