package dom

import (
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/xml"
)

// Run is one inline run of a text element: a tspan with its attributes, or
// bare character data (nil or empty Attrs). Runs are parsed on demand from
// a text node's InnerMarkup and written back with RenderRuns.
type Run struct {
	Attrs *Attributes
	Text  string
}

// ParseRuns parses the inline runs of a text element's inner markup.
// Nested spans inside a run contribute their character data to the
// enclosing top-level run.
func ParseRuns(markup string) []Run {
	if markup == "" {
		return nil
	}
	l := xml.NewLexer(parse.NewInputString(markup))
	runs := []Run{}
	depth := 0
	cur := -1
	for {
		tt, data := l.Next()
		switch tt {
		case xml.ErrorToken:
			return runs
		case xml.StartTagToken:
			attrs := NewAttributes()
			for {
				tt, _ = l.Next()
				if tt != xml.AttributeToken {
					break
				}
				attrs.Set(string(l.Text()), Unescape(stripQuotes(string(l.AttrVal()))))
			}
			if depth == 0 {
				runs = append(runs, Run{Attrs: attrs})
				cur = len(runs) - 1
			}
			if tt == xml.StartTagCloseVoidToken {
				if depth == 0 {
					cur = -1
				}
			} else {
				depth++
			}
		case xml.EndTagToken:
			if 0 < depth {
				depth--
				if depth == 0 {
					cur = -1
				}
			}
		case xml.TextToken, xml.CDATAToken:
			text := Unescape(string(data))
			if 0 <= cur {
				runs[cur].Text += text
			} else if strings.TrimSpace(text) != "" {
				runs = append(runs, Run{Attrs: NewAttributes(), Text: text})
			}
		}
	}
}

// RenderRuns serializes runs back to inner markup. Runs without attributes
// are emitted as bare character data.
func RenderRuns(runs []Run) string {
	var b strings.Builder
	for _, run := range runs {
		if run.Attrs == nil || run.Attrs.Len() == 0 {
			b.WriteString(EscapeText(run.Text))
			continue
		}
		b.WriteString("<tspan")
		for _, k := range run.Attrs.Keys() {
			v, _ := run.Attrs.Get(k)
			b.WriteByte(' ')
			b.WriteString(k)
			b.WriteString(`="`)
			b.WriteString(EscapeAttr(v))
			b.WriteByte('"')
		}
		if run.Text == "" {
			b.WriteString("/>")
		} else {
			b.WriteByte('>')
			b.WriteString(EscapeText(run.Text))
			b.WriteString("</tspan>")
		}
	}
	return b.String()
}

func stripQuotes(s string) string {
	if 2 <= len(s) && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}
