package document

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"\r", "&#13;",
)

// Markup serializes the document. For any document produced by this package,
// Parse(d.Markup()).Markup() == d.Markup().
func (d *Document) Markup() string {
	var sb strings.Builder
	for _, c := range d.root.Children {
		writeNode(&sb, c)
	}
	return sb.String()
}

func writeNode(sb *strings.Builder, n *Node) {
	switch n.Kind {
	case KindText:
		sb.WriteString(textEscaper.Replace(n.Text))
		return
	case KindBold:
		sb.WriteString("<b>")
	case KindItalic:
		sb.WriteString("<i>")
	case KindCode:
		sb.WriteString(inlineCodeOpenTag)
	case KindCodeBlock:
		sb.WriteString(codeBlockOpenTag)
	case KindCodeLine:
		sb.WriteString("<code>")
	case KindFontSize:
		sb.WriteString(`<span style="font-size: ` + strconv.Itoa(n.Size) + `px">`)
	case KindColor:
		sb.WriteString(`<span style="color: ` + n.Color + `">`)
	}
	for _, c := range n.Children {
		writeNode(sb, c)
	}
	switch n.Kind {
	case KindBold:
		sb.WriteString("</b>")
	case KindItalic:
		sb.WriteString("</i>")
	case KindCode, KindCodeLine:
		sb.WriteString("</code>")
	case KindCodeBlock:
		sb.WriteString("</pre>")
	case KindFontSize, KindColor:
		sb.WriteString("</span>")
	}
}

// Parse builds a document from markup. It never fails: unknown tags, stray
// end tags, comments and truncated tags are kept as inert text.
func Parse(markup string) *Document {
	d := newDocument()
	parseInto(d.root, markup)
	return d
}

// openTag is an element the tokenizer has opened and not yet closed.
// outer is nil for wrappers that were dropped (a span without a known style).
type openTag struct {
	name  string
	outer *Node
	prev  *Node
}

func parseInto(root *Node, markup string) {
	z := html.NewTokenizer(strings.NewReader(markup))
	cur := root
	var stack []openTag
	consumed := 0

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			// A truncated tag at the end of input is kept verbatim.
			if consumed < len(markup) {
				appendText(cur, markup[consumed:])
			}
			return
		}
		// Raw must be copied before TagName or Text rewrite the buffer.
		raw := string(z.Raw())
		consumed += len(raw)

		switch tt {
		case html.TextToken:
			appendText(cur, string(z.Text()))

		case html.StartTagToken, html.SelfClosingTagToken:
			name, attrs := tagNameAndAttrs(z)
			if name == "br" {
				appendText(cur, "\n")
				continue
			}
			outer, inner, known := elementFor(name, attrs, cur)
			if !known {
				appendText(cur, raw)
				continue
			}
			if outer != nil {
				cur.appendChild(outer)
			}
			if tt == html.SelfClosingTagToken {
				continue
			}
			stack = append(stack, openTag{name: name, outer: outer, prev: cur})
			if inner != nil {
				cur = inner
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			i := len(stack) - 1
			for ; i >= 0; i-- {
				if stack[i].name == string(name) {
					break
				}
			}
			if i < 0 {
				appendText(cur, raw)
				continue
			}
			cur = stack[i].prev
			stack = stack[:i]

		default:
			// Comments and doctypes.
			appendText(cur, raw)
		}
	}
}

func tagNameAndAttrs(z *html.Tokenizer) (string, map[string]string) {
	name, hasAttr := z.TagName()
	attrs := make(map[string]string)
	for hasAttr {
		var k, v []byte
		k, v, hasAttr = z.TagAttr()
		attrs[string(k)] = string(v)
	}
	return string(name), attrs
}

// elementFor maps a start tag to tree nodes. known is false for tags outside
// the closed set; outer is nil for a span that carries no recognized style.
func elementFor(name string, attrs map[string]string, parent *Node) (outer, inner *Node, known bool) {
	switch name {
	case "b", "strong":
		n := newElement(KindBold)
		return n, n, true
	case "i", "em":
		n := newElement(KindItalic)
		return n, n, true
	case "pre":
		n := newElement(KindCodeBlock)
		return n, n, true
	case "code":
		k := KindCode
		if parent.Kind == KindCodeBlock {
			k = KindCodeLine
		}
		n := newElement(k)
		return n, n, true
	case "span":
		styles := parseStyle(attrs["style"])
		size, sizeOK := parseFontSize(styles["font-size"])
		color, colorOK := normalizeHex(styles["color"])
		switch {
		case sizeOK && colorOK:
			outer = newFontSize(size)
			inner = newColor(color)
			outer.appendChild(inner)
			return outer, inner, true
		case sizeOK:
			n := newFontSize(size)
			return n, n, true
		case colorOK:
			n := newColor(color)
			return n, n, true
		}
		return nil, nil, true
	}
	return nil, nil, false
}

func appendText(parent *Node, s string) {
	if s == "" {
		return
	}
	if k := len(parent.Children); k > 0 && parent.Children[k-1].Kind == KindText {
		parent.Children[k-1].Text += s
		return
	}
	parent.appendChild(newText(s))
}

// parseStyle parses an inline CSS declaration list into a map.
// Example: "color: #F97316; font-size: 18px;"
func parseStyle(s string) map[string]string {
	styles := make(map[string]string)
	for _, part := range strings.Split(s, ";") {
		kv := strings.SplitN(part, ":", 2)
		if len(kv) != 2 {
			continue
		}
		k := strings.ToLower(strings.TrimSpace(kv[0]))
		v := strings.TrimSpace(kv[1])
		if k != "" && v != "" {
			styles[k] = v
		}
	}
	return styles
}

func parseFontSize(v string) (int, bool) {
	v = strings.TrimSpace(strings.ToLower(v))
	if !strings.HasSuffix(v, "px") {
		return 0, false
	}
	px, err := strconv.Atoi(strings.TrimSpace(strings.TrimSuffix(v, "px")))
	if err != nil || px <= 0 {
		return 0, false
	}
	return px, true
}

var hexColorRE = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// normalizeHex accepts #rgb or #rrggbb and returns lowercase #rrggbb.
func normalizeHex(v string) (string, bool) {
	v = strings.TrimSpace(v)
	if !hexColorRE.MatchString(v) {
		return "", false
	}
	v = strings.ToLower(v)
	if len(v) == 4 {
		v = string([]byte{'#', v[1], v[1], v[2], v[2], v[3], v[3]})
	}
	return v, true
}
