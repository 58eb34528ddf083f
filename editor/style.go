package editor

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/scriptedit/document"
)

// Style controls the editor's rendering. Mark styles are derived from Text.
type Style struct {
	Text        lipgloss.Style
	Placeholder lipgloss.Style
	Selection   lipgloss.Style
	Cursor      lipgloss.Style
}

func DefaultStyle() Style {
	return Style{
		Text:        lipgloss.NewStyle(),
		Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Selection:   lipgloss.NewStyle().Background(lipgloss.Color("237")),
		Cursor:      lipgloss.NewStyle().Reverse(true),
	}
}

// markStyle applies the marks above a text run to base, outermost first so
// inner marks win.
func markStyle(base lipgloss.Style, run *document.Node) lipgloss.Style {
	var chain []*document.Node
	for p := run.Parent; p != nil && p.Kind != document.KindRoot; p = p.Parent {
		chain = append(chain, p)
	}
	st := base
	for i := len(chain) - 1; i >= 0; i-- {
		n := chain[i]
		switch n.Kind {
		case document.KindBold:
			st = st.Bold(true)
		case document.KindItalic:
			st = st.Italic(true)
		case document.KindCode:
			st = presentationStyle(st, document.InlineCodePresentation)
		case document.KindCodeBlock:
			st = presentationStyle(st, document.CodeBlockPresentation)
		case document.KindFontSize:
			// Terminals have one font size: larger text renders bold, smaller faint.
			switch {
			case n.Size > document.DefaultFontSize:
				st = st.Bold(true)
			case n.Size < document.DefaultFontSize:
				st = st.Faint(true)
			}
		case document.KindColor:
			st = st.Foreground(lipgloss.Color(n.Color))
		}
	}
	return st
}

func presentationStyle(st lipgloss.Style, p document.Presentation) lipgloss.Style {
	if p.Foreground != "" {
		st = st.Foreground(lipgloss.Color(p.Foreground))
	}
	if p.Background != "" {
		st = st.Background(lipgloss.Color(p.Background))
	}
	return st
}
