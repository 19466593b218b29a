package lexer

import "lightning/token"

func (l *Lexer) isBlank(c byte) bool {
	return c == ' ' || (c == '\t' && l.tabWidth > 0)
}

func (l *Lexer) skipBlanks() {
	for l.isBlank(l.src[l.pos]) {
		l.pos++
	}
}

// newlineLen returns the length of the line break at the cursor: 2 for
// "\r\n", 1 for a lone '\n' or '\r', 0 otherwise. At the logical end the
// padding reads as zero.
func (l *Lexer) newlineLen() int {
	switch l.src[l.pos] {
	case '\r':
		if l.src[l.pos+1] == '\n' {
			return 2
		}
		return 1
	case '\n':
		return 1
	default:
		return 0
	}
}

// skipComment drops a '#' comment together with its line break. The next
// line is then treated as a fresh logical line.
func (l *Lexer) skipComment() {
	for l.pos < l.n && Classify(l.src[l.pos]) != ClassNewline {
		l.pos++
	}
	l.pos += l.newlineLen()
	l.lineStart = true
}

func (l *Lexer) scanNewline() {
	start := l.pos
	n := l.newlineLen()
	l.pos += n
	l.addToken(token.Newline, start, n)
	l.lineStart = true
}

func (l *Lexer) scanIdentifier() {
	start := l.pos
	l.pos++
	for isIdentContinue(l.src[l.pos]) {
		l.pos++
	}
	l.addSymbolToken(token.Ident, start, token.FormatNone)
}

// scanNumber reads digits with an optional fraction. A '.' is only part of
// the number when a digit follows it, so "1." is NUMBER then UNKNOWN.
func (l *Lexer) scanNumber() {
	start := l.pos
	l.pos++
	for isDigit(l.src[l.pos]) {
		l.pos++
	}

	format := token.FormatInteger
	if l.src[l.pos] == '.' && isDigit(l.src[l.pos+1]) {
		l.pos += 2
		for isDigit(l.src[l.pos]) {
			l.pos++
		}
		format = token.FormatFloat
	}
	l.addSymbolToken(token.Number, start, format)
}

// scanOperator consumes the longest run of operator characters. Runs of one
// or two bytes are fully described by their type; longer runs are custom
// operators and are interned.
func (l *Lexer) scanOperator() {
	start := l.pos
	l.pos++
	for Classify(l.src[l.pos]) == ClassOperator {
		l.pos++
	}

	switch l.pos - start {
	case 1:
		l.addToken(SingleCharType(l.src[start]), start, 1)
	case 2:
		l.addToken(twoCharType(l.src[start], l.src[start+1]), start, 2)
	default:
		l.addSymbolToken(token.CustomOperator, start, token.FormatNone)
	}
}

// scanUnknown groups a run of unclassifiable bytes, including all
// non-ASCII bytes, into one UNKNOWN token. The padding is unknown too, so
// this loop needs the explicit bound.
func (l *Lexer) scanUnknown() {
	start := l.pos
	l.pos++
	for l.pos < l.n {
		c := l.src[l.pos]
		if Classify(c) != ClassUnknown || l.isBlank(c) {
			break
		}
		l.pos++
	}
	l.addToken(token.Unknown, start, l.pos-start)
}
