// Package lexer turns source bytes into a flat token sequence for an
// indentation-sensitive language.
//
// The scanner is byte oriented and eager: Tokenize walks the whole input
// once and returns every token, ending with exactly one EOF. Layout is
// reported with NEWLINE, INDENT and DEDENT tokens. Problems never stop the
// scan; they surface as ERROR (indentation mismatch) and UNKNOWN
// (unclassifiable bytes) tokens for the consumer to report.
package lexer

import (
	"lightning/internal/intern"
	"lightning/token"
)

// Padding is the number of zero bytes appended to the lexer's copy of the
// source. Reading one byte past the logical end is always defined and
// yields 0, so the scanning loops only bound-check where a zero byte could
// otherwise continue a run.
const Padding = 2

var bom = [3]byte{0xEF, 0xBB, 0xBF}

// Option configures a Lexer.
type Option func(*Lexer)

// WithTabWidth enables tab handling. With width 0, the default, a tab is an
// ordinary unknown byte. With width > 0, leading tabs advance the
// indentation to the next multiple of width and tabs between tokens are
// skipped like spaces.
func WithTabWidth(width int) Option {
	return func(l *Lexer) {
		if width > 0 {
			l.tabWidth = uint32(width)
		}
	}
}

// Lexer owns a padded copy of the source, the interner for its lexemes and
// the indentation stack. A Lexer is single-use and not safe for concurrent
// use; independent Lexers share nothing.
type Lexer struct {
	src      []byte // source followed by Padding zero bytes
	n        int    // logical length
	pos      int
	tabWidth uint32

	indents   []uint32
	lineStart bool

	symbols *intern.Table
	tokens  []token.Token
	done    bool
}

// New copies source and prepares a Lexer over it. Offsets are 32-bit, so
// sources must be smaller than 4 GiB.
func New(source []byte, opts ...Option) *Lexer {
	src := make([]byte, len(source)+Padding)
	copy(src, source)

	l := &Lexer{
		src:       src,
		n:         len(source),
		indents:   make([]uint32, 1, 16),
		lineStart: true,
		symbols:   intern.New(len(source)),
		tokens:    make([]token.Token, 0, len(source)/4+2),
	}
	for _, opt := range opts {
		opt(l)
	}

	if l.n >= len(bom) && [3]byte(src[:3]) == bom {
		l.pos = len(bom)
	}
	return l
}

// Tokenize scans the whole source. Calling it again returns the same
// tokens without rescanning.
func (l *Lexer) Tokenize() []token.Token {
	if l.done {
		return l.tokens
	}

	for {
		if l.lineStart {
			l.indentation()
		}
		l.skipBlanks()
		if l.pos >= l.n {
			break
		}

		c := l.src[l.pos]
		switch Classify(c) {
		case ClassComment:
			l.skipComment()
		case ClassNewline:
			l.scanNewline()
		case ClassIdent:
			l.scanIdentifier()
		case ClassDigit:
			l.scanNumber()
		case ClassOperator:
			l.scanOperator()
		case ClassPunct:
			l.addToken(SingleCharType(c), l.pos, 1)
			l.pos++
		default:
			l.scanUnknown()
		}
	}

	l.unwindIndents()
	l.addToken(token.EOF, l.n, 0)
	l.done = true
	return l.tokens
}

// Tokenize is a convenience wrapper returning the tokens of source together
// with the table that resolves their symbols.
func Tokenize(source []byte, opts ...Option) ([]token.Token, *intern.Table) {
	l := New(source, opts...)
	return l.Tokenize(), l.symbols
}

// Source returns the lexer's copy of the source without the padding.
func (l *Lexer) Source() []byte {
	return l.src[:l.n:l.n]
}

// Symbols returns the interner holding identifier, number and custom
// operator lexemes.
func (l *Lexer) Symbols() *intern.Table {
	return l.symbols
}

// Text returns the source bytes of tok.
func (l *Lexer) Text(tok token.Token) []byte {
	return tok.Text(l.Source())
}

// SymbolText returns the canonical interned bytes of tok, or nil if tok
// carries no symbol.
func (l *Lexer) SymbolText(tok token.Token) []byte {
	if tok.Symbol == token.NoSymbol {
		return nil
	}
	return l.symbols.Resolve(tok.Symbol, int(tok.Length))
}

func (l *Lexer) addToken(typ token.Type, start, length int) {
	l.tokens = append(l.tokens, token.Token{
		Type:   typ,
		Offset: uint32(start),
		Length: uint32(length),
	})
}

func (l *Lexer) addSymbolToken(typ token.Type, start int, format token.Format) {
	l.tokens = append(l.tokens, token.Token{
		Type:   typ,
		Symbol: l.symbols.Intern(l.src[start:l.pos]),
		Offset: uint32(start),
		Length: uint32(l.pos - start),
		Format: format,
	})
}
