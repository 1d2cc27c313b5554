package dom

import (
	"strings"
)

// Serialize emits the tree as markup. The node id is always written as the
// first attribute; attribute values and character data are escaped with
// decimal character references; nodes without children, inner markup or
// text use the self-closing form; preserved inner markup is emitted
// verbatim rather than re-serializing runs.
func Serialize(root *ElementNode) string {
	var b strings.Builder
	writeNode(&b, root)
	return b.String()
}

func writeNode(b *strings.Builder, n *ElementNode) {
	b.WriteByte('<')
	b.WriteString(n.Tag)
	b.WriteString(` id="`)
	b.WriteString(EscapeAttr(n.ID))
	b.WriteByte('"')
	for _, k := range n.Attrs.Keys() {
		v, _ := n.Attrs.Get(k)
		b.WriteByte(' ')
		b.WriteString(k)
		b.WriteString(`="`)
		b.WriteString(EscapeAttr(v))
		b.WriteByte('"')
	}
	if len(n.Children) == 0 && n.InnerMarkup == "" && n.Text == "" {
		b.WriteString("/>")
		return
	}
	b.WriteByte('>')
	if n.InnerMarkup != "" {
		b.WriteString(n.InnerMarkup)
	} else if n.Text != "" {
		b.WriteString(EscapeText(n.Text))
	}
	for _, c := range n.Children {
		writeNode(b, c)
	}
	b.WriteString("</")
	b.WriteString(n.Tag)
	b.WriteByte('>')
}
