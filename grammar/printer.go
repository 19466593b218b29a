package grammar

import (
	"strings"
)

func indent(level int) string {
	return strings.Repeat("    ", level)
}

// String renders the outline with one logical line per row, items separated
// by single spaces and blocks indented four spaces per level.
func (o *Outline) String() string {
	var b strings.Builder
	writeNodes(&b, o.Nodes, 0)
	return b.String()
}

func writeNodes(b *strings.Builder, nodes []*Node, level int) {
	for _, n := range nodes {
		switch {
		case n.Line != nil:
			b.WriteString(n.Line.StringWithIndent(level))
		case n.Orphan != nil:
			b.WriteString(n.Orphan.StringWithIndent(level + 1))
		}
	}
}

func (l *Line) String() string {
	return strings.Join(l.Items, " ")
}

func (l *Line) StringWithIndent(level int) string {
	var b strings.Builder
	b.WriteString(indent(level) + l.String() + "\n")
	if l.Body != nil {
		b.WriteString(l.Body.StringWithIndent(level + 1))
	}
	return b.String()
}

func (bl *Block) StringWithIndent(level int) string {
	var b strings.Builder
	writeNodes(&b, bl.Nodes, level)
	return b.String()
}
