package grammar

import (
	"fmt"
	"io"

	"github.com/alecthomas/participle/v2/lexer"

	scanner "lightning/internal/lexer"
	"lightning/token"
)

// Token categories seen by the outline grammar. Every operator type maps to
// Operator and every punctuation type to Punct; the lexeme is the token's
// Value, so grammars can still match a specific spelling such as ":".
const (
	Ident lexer.TokenType = iota + 1
	Number
	Operator
	Punct
	Unknown
	Newline
	Indent
	Dedent
	Error
)

var symbols = map[string]lexer.TokenType{
	"EOF":      lexer.EOF,
	"Ident":    Ident,
	"Number":   Number,
	"Operator": Operator,
	"Punct":    Punct,
	"Unknown":  Unknown,
	"Newline":  Newline,
	"Indent":   Indent,
	"Dedent":   Dedent,
	"Error":    Error,
}

// Definition adapts the scanner to participle's lexer.Definition.
type Definition struct {
	opts []scanner.Option
}

var _ lexer.Definition = (*Definition)(nil)
var _ lexer.BytesDefinition = (*Definition)(nil)
var _ lexer.StringDefinition = (*Definition)(nil)

func NewDefinition(opts ...scanner.Option) *Definition {
	return &Definition{opts: opts}
}

func (d *Definition) Symbols() map[string]lexer.TokenType {
	out := make(map[string]lexer.TokenType, len(symbols))
	for k, v := range symbols {
		out[k] = v
	}
	return out
}

func (d *Definition) Lex(filename string, r io.Reader) (lexer.Lexer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	return d.LexBytes(filename, data)
}

func (d *Definition) LexString(filename string, input string) (lexer.Lexer, error) {
	return d.LexBytes(filename, []byte(input))
}

// LexBytes scans input eagerly and streams the result.
func (d *Definition) LexBytes(filename string, input []byte) (lexer.Lexer, error) {
	l := scanner.New(input, d.opts...)
	return &stream{
		filename: filename,
		lx:       l,
		tokens:   l.Tokenize(),
		lines:    scanner.NewLineIndex(l.Source()),
	}, nil
}

// stream hands scanner tokens to participle. A comment swallows its line
// break, so when content resumes on a later line without an intervening
// NEWLINE the stream inserts one to keep logical lines apart.
type stream struct {
	filename string
	lx       *scanner.Lexer
	tokens   []token.Token
	lines    *scanner.LineIndex
	next     int

	open bool // a line has content and no NEWLINE yet
	line int
}

func (s *stream) Next() (lexer.Token, error) {
	tok := s.tokens[s.next]
	pos := s.position(tok.Offset)

	if s.open && tok.Type != token.Newline && tok.Type != token.EOF && pos.Line > s.line {
		s.open = false
		return lexer.Token{Type: Newline, Value: "\n", Pos: pos}, nil
	}

	if tok.Type == token.EOF {
		return lexer.Token{Type: lexer.EOF, Pos: pos}, nil
	}
	s.next++

	switch tok.Type {
	case token.Newline, token.Indent, token.Dedent:
		s.open = false
	case token.Error:
	default:
		s.open = true
		s.line = pos.Line
	}
	return lexer.Token{Type: category(tok.Type), Value: s.value(tok), Pos: pos}, nil
}

func (s *stream) position(offset uint32) lexer.Position {
	p := s.lines.Position(int(offset))
	return lexer.Position{
		Filename: s.filename,
		Offset:   p.Offset,
		Line:     p.Line,
		Column:   p.Column,
	}
}

func (s *stream) value(tok token.Token) string {
	switch tok.Type {
	case token.Indent, token.Dedent, token.EOF:
		return ""
	}
	return string(s.lx.Text(tok))
}

func category(t token.Type) lexer.TokenType {
	switch {
	case t == token.Ident:
		return Ident
	case t == token.Number:
		return Number
	case t.IsOperator():
		return Operator
	case t.IsPunctuation():
		return Punct
	case t == token.Newline:
		return Newline
	case t == token.Indent:
		return Indent
	case t == token.Dedent:
		return Dedent
	case t == token.Error:
		return Error
	default:
		return Unknown
	}
}
