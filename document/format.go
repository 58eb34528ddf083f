package document

// FontSizeLadder is the ascending set of sizes StepFontSize moves across.
var FontSizeLadder = [...]int{14, 16, 18, 20, 24}

// FormatState is the formatting active at the selection anchor.
type FormatState struct {
	Bold       bool
	Italic     bool
	InlineCode bool
	CodeBlock  bool
	FontSize   int
	Color      string
}

// LadderIndex returns the position of FontSize in FontSizeLadder, or false when
// the size is not a ladder member.
func (f FormatState) LadderIndex() (int, bool) {
	for i, px := range FontSizeLadder {
		if px == f.FontSize {
			return i, true
		}
	}
	return 0, false
}

// FormatState derives the active formatting from the ancestor chain of the
// selection's start caret. Without a selection the container's declared
// values are reported.
func (d *Document) FormatState() FormatState {
	r, ok := d.Selection()
	if !ok {
		return FormatState{FontSize: d.root.Size, Color: d.root.Color}
	}
	return formatAt(d.root, r.Start.Node)
}

func formatAt(root, n *Node) FormatState {
	var st FormatState
	for p := n; p != nil && p != root; p = p.Parent {
		switch p.Kind {
		case KindBold:
			st.Bold = true
		case KindItalic:
			st.Italic = true
		case KindCode:
			if !insideCodeBlock(p) {
				st.InlineCode = true
			}
		case KindCodeBlock:
			st.CodeBlock = true
		case KindFontSize:
			if st.FontSize == 0 {
				st.FontSize = p.Size
			}
		case KindColor:
			if st.Color == "" {
				st.Color = p.Color
			}
		}
	}
	if st.FontSize == 0 {
		st.FontSize = root.Size
	}
	if st.Color == "" {
		st.Color = root.Color
	}
	return st
}

// stepLadder moves px one rung in dir. A size off the ladder moves to the
// nearest rung in that direction.
func stepLadder(px, dir int) int {
	last := len(FontSizeLadder) - 1
	if i, ok := (FormatState{FontSize: px}).LadderIndex(); ok {
		switch {
		case dir > 0:
			i = min(i+1, last)
		case dir < 0:
			i = max(i-1, 0)
		}
		return FontSizeLadder[i]
	}
	if dir > 0 {
		for _, v := range FontSizeLadder {
			if v > px {
				return v
			}
		}
		return FontSizeLadder[last]
	}
	if dir < 0 {
		for i := last; i >= 0; i-- {
			if FontSizeLadder[i] < px {
				return FontSizeLadder[i]
			}
		}
		return FontSizeLadder[0]
	}
	return px
}
