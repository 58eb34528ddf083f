package document

import (
	"errors"

	"github.com/iw2rmb/scriptedit/internal/grapheme"
)

var errCrossBoundary = errors.New("document: range boundaries have different parents")

// point is a position between children: before next, or at the end of parent
// when next is nil.
type point struct {
	parent *Node
	next   *Node
}

func pointBefore(n *Node) point { return point{parent: n.Parent, next: n} }

func pointAfter(n *Node) point { return point{parent: n.Parent, next: n.nextSibling()} }

func (p point) index() int {
	if p.next == nil {
		return len(p.parent.Children)
	}
	return p.next.index()
}

func (p point) insert(n *Node) { p.parent.insertChild(p.index(), n) }

// pointAtCaret returns the point at c, splitting its text run when c falls
// strictly inside it.
func (d *Document) pointAtCaret(c Caret) point {
	t := c.Node
	if t == nil || t.Kind != KindText || t.Parent == nil {
		return point{parent: d.root}
	}
	switch {
	case c.Offset <= 0:
		return pointBefore(t)
	case c.Offset >= t.Len():
		return pointAfter(t)
	}
	return pointBefore(splitRun(t, c.Offset))
}

// splitRun cuts t at grapheme offset n and returns the new right-hand run.
func splitRun(t *Node, n int) *Node {
	left, right := grapheme.Cut(t.Text, n)
	t.Text = left
	r := newText(right)
	t.Parent.insertChild(t.index()+1, r)
	return r
}

// splitAt makes offset fall on a boundary between text runs.
func (d *Document) splitAt(offset int) {
	var hit *Node
	at, acc := 0, 0
	walkText(d.root, func(t *Node) bool {
		n := t.Len()
		if acc < offset && offset < acc+n {
			hit, at = t, offset-acc
			return false
		}
		acc += n
		return acc < offset
	})
	if hit != nil {
		splitRun(hit, at)
	}
}

// runsIn returns the non-empty runs lying entirely inside [start, end).
// Callers split at both offsets first.
func (d *Document) runsIn(start, end int) []*Node {
	var runs []*Node
	acc := 0
	walkText(d.root, func(t *Node) bool {
		n := t.Len()
		if n > 0 && acc >= start && acc+n <= end {
			runs = append(runs, t)
		}
		acc += n
		return acc < end
	})
	return runs
}

// runsTouching returns the non-empty runs intersecting [start, end).
func (d *Document) runsTouching(start, end int) []*Node {
	var runs []*Node
	acc := 0
	walkText(d.root, func(t *Node) bool {
		n := t.Len()
		if n > 0 && acc < end && acc+n > start {
			runs = append(runs, t)
		}
		acc += n
		return acc < end
	})
	return runs
}

// liftTo moves p up until its parent is ancestor, splitting every element it
// leaves from the middle.
func liftTo(p point, ancestor *Node) point {
	for p.parent != ancestor && p.parent.Parent != nil {
		parent := p.parent
		switch {
		case p.next == parent.firstChild():
			p = pointBefore(parent)
		case p.next == nil:
			p = pointAfter(parent)
		default:
			clone := parent.shallowClone()
			for _, c := range parent.takeChildren(p.next.index(), len(parent.Children)) {
				clone.appendChild(c)
			}
			parent.Parent.insertChild(parent.index()+1, clone)
			p = pointBefore(clone)
		}
	}
	return p
}

// extract detaches the siblings between sp and ep.
func extract(sp, ep point) (at int, frag []*Node) {
	at = sp.index()
	return at, sp.parent.takeChildren(at, ep.index())
}

// splice adopts frag into inner and inserts wrapper at parent[at].
func splice(parent *Node, at int, wrapper, inner *Node, frag []*Node) {
	for _, c := range frag {
		inner.appendChild(c)
	}
	parent.insertChild(at, wrapper)
}

// surround wraps the siblings between sp and ep. Both points must share a
// parent.
func surround(sp, ep point, wrapper, inner *Node) error {
	if sp.parent != ep.parent {
		return errCrossBoundary
	}
	at, frag := extract(sp, ep)
	splice(sp.parent, at, wrapper, inner, frag)
	return nil
}

// wrapRange wraps the content of [start, end) in wrapper. inner is the node
// that receives the content; it is wrapper itself for single-level marks.
func (d *Document) wrapRange(start, end int, wrapper, inner *Node) bool {
	d.splitAt(start)
	d.splitAt(end)
	runs := d.runsIn(start, end)
	if len(runs) == 0 {
		return false
	}
	sp, ep := pointBefore(runs[0]), pointAfter(runs[len(runs)-1])
	if err := surround(sp, ep, wrapper, inner); err == nil {
		return true
	}
	anc := commonAncestor(sp.parent, ep.parent)
	ep = liftTo(ep, anc)
	sp = liftTo(sp, anc)
	at, frag := extract(sp, ep)
	splice(anc, at, wrapper, inner, frag)
	return true
}

// stripRange removes every mark accepted by match from [start, end),
// splitting marks that extend past the range.
func (d *Document) stripRange(start, end int, match func(*Node) bool) {
	d.splitAt(start)
	d.splitAt(end)
	runs := d.runsIn(start, end)
	if len(runs) == 0 {
		return
	}
	target := commonAncestor(runs[0].Parent, runs[len(runs)-1].Parent)
	found := false
	for _, r := range runs {
		m := r.outermost(match)
		if m == nil {
			continue
		}
		found = true
		if contains(m, target) {
			target = m.Parent
		}
	}
	if !found {
		return
	}
	ep := liftTo(pointAfter(runs[len(runs)-1]), target)
	sp := liftTo(pointBefore(runs[0]), target)
	covered := append([]*Node(nil), target.Children[sp.index():ep.index()]...)
	for _, n := range covered {
		unwrapAll(n, match)
	}
}

func unwrapAll(n *Node, match func(*Node) bool) {
	for _, c := range append([]*Node(nil), n.Children...) {
		unwrapAll(c, match)
	}
	if match(n) {
		unwrap(n)
	}
}

// exitMark inserts an empty run right after the caret's position outside m,
// splitting m when the caret is inside it.
func (d *Document) exitMark(c Caret, m *Node) *Node {
	p := liftTo(d.pointAtCaret(c), m.Parent)
	t := newText("")
	p.insert(t)
	return t
}

// normalize prunes empty runs and marks and merges adjacent equal siblings.
// keep and its ancestors survive even when empty.
func normalize(n, keep *Node) {
	if n.Kind == KindText {
		return
	}
	out := make([]*Node, 0, len(n.Children))
	for _, c := range n.Children {
		normalize(c, keep)
		if c != keep && isEmptyNode(c) {
			c.Parent = nil
			continue
		}
		if k := len(out); k > 0 {
			prev := out[k-1]
			if prev.Kind == KindText && c.Kind == KindText && prev != keep && c != keep {
				prev.Text += c.Text
				c.Parent = nil
				continue
			}
			if sameMark(prev, c) {
				for _, g := range c.Children {
					prev.appendChild(g)
				}
				c.Children = nil
				c.Parent = nil
				normalize(prev, keep)
				continue
			}
		}
		out = append(out, c)
	}
	n.Children = out
}

func isEmptyNode(n *Node) bool {
	if n.Kind == KindText {
		return n.Text == ""
	}
	return len(n.Children) == 0
}
