package dom

import (
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/xml"
)

// ParseError is returned for template errors: a tokenizer failure or a
// document without a root element. These are fatal for the render call.
type ParseError struct {
	Msg string
	Err error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return "parse: " + e.Msg + ": " + e.Err.Error()
	}
	return "parse: " + e.Msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse parses markup into an element tree. Every node receives a stable
// id: the id from the source markup when present, otherwise one synthesized
// by a generator seeded with all ids occurring in the source.
func Parse(markup string) (*ElementNode, error) {
	gen := NewIDGenerator()
	gen.Seed(markup)
	return ParseWith(markup, gen)
}

// ParseWith parses markup using the given id generator. The generator's
// collision set carries over between calls; its depth counters are reset.
func ParseWith(markup string, gen *IDGenerator) (*ElementNode, error) {
	gen.Reset()
	l := xml.NewLexer(parse.NewInputString(markup))
	var root *ElementNode
	var stack []*ElementNode
	for {
		tt, data := l.Next()
		switch tt {
		case xml.ErrorToken:
			if l.Err() != io.EOF {
				return nil, &ParseError{Msg: "bad markup", Err: l.Err()}
			}
			if root == nil {
				return nil, &ParseError{Msg: "no root element found"}
			}
			return root, nil
		case xml.StartTagToken:
			tag := string(data[1:])
			attrs := NewAttributes()
			for {
				tt, _ = l.Next()
				if tt != xml.AttributeToken {
					break
				}
				attrs.Set(string(l.Text()), Unescape(stripQuotes(string(l.AttrVal()))))
			}

			var parent *ElementNode
			if 0 < len(stack) {
				parent = stack[len(stack)-1]
			} else if root != nil {
				return nil, &ParseError{Msg: "multiple root elements"}
			}

			if parent != nil && parent.IsText && tag == "tspan" {
				// Inline runs keep their raw markup instead of being
				// decomposed into generic nodes, so nested styling detail
				// survives re-serialization untouched.
				raw, plain, err := captureRun(l, tag, attrs, tt)
				if err != nil {
					return nil, err
				}
				parent.InnerMarkup += raw
				parent.Text += plain
				continue
			}

			n := &ElementNode{Tag: tag, Attrs: attrs}
			n.IsText = tag == "text"
			n.IsImage = tag == "image"
			if id, ok := attrs.Get("id"); ok && id != "" {
				attrs.Del("id")
				n.ID = id
				n.OriginalID = id
				gen.Claim(id)
			} else {
				attrs.Del("id")
				n.ID = gen.Next(tag)
			}

			if parent != nil {
				parent.Children = append(parent.Children, n)
			} else {
				root = n
			}
			if tt != xml.StartTagCloseVoidToken {
				stack = append(stack, n)
				gen.Enter()
			}
		case xml.EndTagToken:
			if 0 < len(stack) {
				stack = stack[:len(stack)-1]
				gen.Exit()
			}
		case xml.TextToken, xml.CDATAToken:
			if len(stack) == 0 {
				continue
			}
			n := stack[len(stack)-1]
			if n.IsText {
				n.InnerMarkup += string(data)
				n.Text += textData(tt, string(data))
			} else if text := textData(tt, string(data)); strings.TrimSpace(text) != "" {
				n.Text += text
			}
		case xml.StartTagPIToken:
			for tt != xml.StartTagClosePIToken && tt != xml.ErrorToken {
				tt, _ = l.Next()
			}
		}
	}
}

// captureRun reconstructs the raw markup of one inline run, including any
// nested spans, and its plain-text projection. The run's start tag and
// attributes have already been consumed by the caller; closeTT is the
// token that ended the attribute list.
func captureRun(l *xml.Lexer, tag string, attrs *Attributes, closeTT xml.TokenType) (string, string, error) {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(tag)
	for _, k := range attrs.Keys() {
		v, _ := attrs.Get(k)
		b.WriteByte(' ')
		b.WriteString(k)
		b.WriteString(`="`)
		b.WriteString(EscapeAttr(v))
		b.WriteByte('"')
	}
	if closeTT == xml.StartTagCloseVoidToken {
		b.WriteString("/>")
		return b.String(), "", nil
	}
	b.WriteByte('>')

	var plain strings.Builder
	depth := 1
	for {
		tt, data := l.Next()
		switch tt {
		case xml.ErrorToken:
			return "", "", &ParseError{Msg: "unterminated inline run", Err: l.Err()}
		case xml.StartTagToken:
			b.Write(data)
			for {
				tt, _ = l.Next()
				if tt != xml.AttributeToken {
					break
				}
				b.WriteByte(' ')
				b.Write(l.Text())
				b.WriteByte('=')
				b.Write(l.AttrVal())
			}
			if tt == xml.StartTagCloseVoidToken {
				b.WriteString("/>")
			} else {
				b.WriteByte('>')
				depth++
			}
		case xml.EndTagToken:
			b.Write(data)
			depth--
			if depth == 0 {
				return b.String(), plain.String(), nil
			}
		case xml.TextToken, xml.CDATAToken:
			b.Write(data)
			plain.WriteString(textData(tt, string(data)))
		}
	}
}

func textData(tt xml.TokenType, data string) string {
	if tt == xml.CDATAToken {
		data = strings.TrimPrefix(data, "<![CDATA[")
		data = strings.TrimSuffix(data, "]]>")
		return data
	}
	return Unescape(data)
}
