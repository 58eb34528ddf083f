package editor

import (
	"strings"

	"github.com/iw2rmb/scriptedit/document"
	graphemeutil "github.com/iw2rmb/scriptedit/internal/grapheme"
)

// lineBuilder accumulates styled clusters into visual lines, wrapping at
// width when width is positive.
type lineBuilder struct {
	width int
	lines []string
	cur   strings.Builder
	cells int
}

func (b *lineBuilder) add(rendered string, cells int) {
	if b.width > 0 && b.cells > 0 && b.cells+cells > b.width {
		b.newline()
	}
	b.cur.WriteString(rendered)
	b.cells += cells
}

func (b *lineBuilder) newline() {
	b.lines = append(b.lines, b.cur.String())
	b.cur.Reset()
	b.cells = 0
}

func (b *lineBuilder) line() int { return len(b.lines) }

func (b *lineBuilder) String() string {
	return strings.Join(append(b.lines, b.cur.String()), "\n")
}

// renderContent renders the document and reports the visual line holding
// the cursor.
func (m *Model) renderContent() (string, int) {
	st := m.cfg.Style
	b := &lineBuilder{width: m.viewport.Width - m.viewport.Style.GetHorizontalFrameSize()}

	if m.doc.Len() == 0 && m.cfg.Placeholder != "" {
		clusters := graphemeutil.Split(m.cfg.Placeholder)
		for i, c := range clusters {
			s := st.Placeholder
			if i == 0 && m.focused {
				s = st.Cursor.Inherit(st.Placeholder)
			}
			b.add(s.Render(c), graphemeCellWidth(c, b.cells))
		}
		return b.String(), 0
	}

	cursor := -1
	selStart, selEnd := 0, 0
	if a, f, ok := m.doc.SelectionEnds(); ok && m.focused {
		cursor = f
		selStart, selEnd = min(a, f), max(a, f)
	}
	cursorLine := 0

	offset := 0
	var block *document.Node
	for _, run := range m.doc.Root().TextRuns() {
		// Code blocks start and end on their own lines.
		if nb := run.Ancestor(document.KindCodeBlock); nb != block {
			if b.cells > 0 {
				b.newline()
			}
			block = nb
		}
		base := markStyle(st.Text, run)
		for _, c := range graphemeutil.Split(run.Text) {
			s := base
			if offset >= selStart && offset < selEnd {
				s = st.Selection.Inherit(base)
			}
			if offset == cursor {
				s = st.Cursor.Inherit(base)
				cursorLine = b.line()
			}
			if c == "\n" {
				if offset == cursor {
					b.add(s.Render(" "), 1)
				}
				b.newline()
			} else {
				b.add(s.Render(c), graphemeCellWidth(c, b.cells))
			}
			offset++
		}
	}
	if cursor >= 0 && cursor == offset {
		cursorLine = b.line()
		b.add(st.Cursor.Inherit(st.Text).Render(" "), 1)
	}
	return b.String(), cursorLine
}
