package memory

import (
	"html"
	"strings"

	"github.com/go-drift/vdom/pkg/surface"
)

// HTML serialises h and its descendants. Attributes are sorted by name.
func HTML(h surface.Handle) string {
	var sb strings.Builder
	writeHTML(&sb, node(h))
	return sb.String()
}

// InnerHTML serialises the children of h.
func InnerHTML(h surface.Handle) string {
	var sb strings.Builder
	for _, c := range node(h).children {
		writeHTML(&sb, c)
	}
	return sb.String()
}

func writeHTML(sb *strings.Builder, n *Node) {
	if n == nil {
		return
	}
	if n.Kind == TextNode {
		sb.WriteString(html.EscapeString(n.Text))
		return
	}
	sb.WriteByte('<')
	sb.WriteString(n.Tag)
	for _, name := range sortedKeys(n.Attrs) {
		sb.WriteByte(' ')
		sb.WriteString(name)
		if v := n.Attrs[name]; v != "" {
			sb.WriteString(`="`)
			sb.WriteString(html.EscapeString(v))
			sb.WriteByte('"')
		}
	}
	if len(n.Style) > 0 {
		sb.WriteString(` style="`)
		for _, name := range sortedKeys(n.Style) {
			sb.WriteString(html.EscapeString(name + ":" + n.Style[name] + ";"))
		}
		sb.WriteByte('"')
	}
	sb.WriteByte('>')
	for _, c := range n.children {
		writeHTML(sb, c)
	}
	sb.WriteString("</")
	sb.WriteString(n.Tag)
	sb.WriteByte('>')
}
