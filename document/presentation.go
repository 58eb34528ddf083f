package document

import "strings"

// Presentation is the fixed look of code marks. The same values are written
// into serialized markup and used by renderers.
type Presentation struct {
	Foreground   string
	Background   string
	Padding      string
	BorderRadius string
	FontFamily   string
}

var (
	// InlineCodePresentation styles inline code, including auto-formatted
	// placeholder tokens.
	InlineCodePresentation = Presentation{
		Foreground:   "#c7254e",
		Background:   "#f9f2f4",
		Padding:      "2px 4px",
		BorderRadius: "3px",
		FontFamily:   "monospace",
	}

	// CodeBlockPresentation styles code-block containers.
	CodeBlockPresentation = Presentation{
		Foreground:   "#24292e",
		Background:   "#f6f8fa",
		Padding:      "8px 12px",
		BorderRadius: "4px",
		FontFamily:   "monospace",
	}
)

// CSS renders p as an inline style declaration list.
func (p Presentation) CSS() string {
	var parts []string
	add := func(k, v string) {
		if v != "" {
			parts = append(parts, k+": "+v)
		}
	}
	add("color", p.Foreground)
	add("background-color", p.Background)
	add("padding", p.Padding)
	add("border-radius", p.BorderRadius)
	add("font-family", p.FontFamily)
	return strings.Join(parts, "; ")
}

var (
	inlineCodeOpenTag = `<code style="` + InlineCodePresentation.CSS() + `">`
	codeBlockOpenTag  = `<pre style="` + CodeBlockPresentation.CSS() + `">`
)
