package lexer

import "lightning/token"

// indentation runs at the start of every logical line. Blank lines are
// consumed without producing tokens; otherwise the line's width is compared
// against the indent stack.
func (l *Lexer) indentation() {
	for {
		start := l.pos
		width := l.measureIndent()
		if l.pos >= l.n {
			// Trailing blanks at end of input. The final unwind closes
			// whatever is still open.
			return
		}
		if n := l.newlineLen(); n > 0 {
			l.pos += n
			continue
		}

		l.lineStart = false
		l.adjustIndent(start, width)
		return
	}
}

func (l *Lexer) measureIndent() uint32 {
	var width uint32
	for {
		switch c := l.src[l.pos]; {
		case c == ' ':
			width++
		case c == '\t' && l.tabWidth > 0:
			width += l.tabWidth - width%l.tabWidth
		default:
			return width
		}
		l.pos++
	}
}

func (l *Lexer) adjustIndent(start int, width uint32) {
	top := l.indents[len(l.indents)-1]
	switch {
	case width > top:
		l.indents = append(l.indents, width)
		l.tokens = append(l.tokens, token.Token{
			Type:   token.Indent,
			Offset: uint32(start),
			Length: width,
		})
	case width < top:
		for len(l.indents) > 1 && l.indents[len(l.indents)-1] > width {
			l.indents = l.indents[:len(l.indents)-1]
			l.addToken(token.Dedent, start, 0)
		}
		// Landed between two open levels.
		if l.indents[len(l.indents)-1] != width {
			l.addToken(token.Error, start, l.pos-start)
		}
	}
}

// unwindIndents closes every open level at end of input, so INDENT and
// DEDENT counts always balance.
func (l *Lexer) unwindIndents() {
	for len(l.indents) > 1 {
		l.indents = l.indents[:len(l.indents)-1]
		l.addToken(token.Dedent, l.n, 0)
	}
}

