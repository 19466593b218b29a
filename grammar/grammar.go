package grammar

import "github.com/alecthomas/participle/v2/lexer"

// Outline is the block structure of a source file: logical lines and the
// indented blocks nested under them. It carries no statement semantics.
type Outline struct {
	Pos   lexer.Position
	Nodes []*Node `@@*`
}

// Node is a logical line, or a block with no line above it (an indented
// first line of the file).
type Node struct {
	Line   *Line  `  @@`
	Orphan *Block `| @@`
}

type Line struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Items  []string `( @Ident | @Number | @Operator | @Punct | @Unknown )+ Newline?`
	Body   *Block   `@@?`
}

type Block struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Nodes  []*Node `Indent @@* Dedent`
}

// OpensBlock reports whether the line is a header, i.e. ends with ':'.
func (l *Line) OpensBlock() bool {
	return len(l.Items) > 0 && l.Items[len(l.Items)-1] == ":"
}

// Stats returns the number of logical lines and the deepest nesting level.
func (o *Outline) Stats() (lines, depth int) {
	var walk func(nodes []*Node, level int)
	walk = func(nodes []*Node, level int) {
		depth = max(depth, level)
		for _, n := range nodes {
			switch {
			case n.Line != nil:
				lines++
				if n.Line.Body != nil {
					walk(n.Line.Body.Nodes, level+1)
				}
			case n.Orphan != nil:
				walk(n.Orphan.Nodes, level+1)
			}
		}
	}
	walk(o.Nodes, 0)
	return lines, depth
}
