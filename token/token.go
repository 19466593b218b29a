// Package token SPDX-License-Identifier: Apache-2.0
package token

// Type classifies a token. The zero value is Invalid and is never produced
// by the scanner.
type Type uint16

const (
	Invalid Type = iota

	// Identifiers + literals
	Ident  // add, foobar, x, y ...
	Number // 1234, 12.5
	String // reserved, not produced yet

	// Punctuation
	LeftParen    // (
	RightParen   // )
	LeftBrace    // {
	RightBrace   // }
	LeftBracket  // [
	RightBracket // ]
	Comma        // ,
	Semicolon    // ;
	Colon        // :

	// Single-character operators
	Plus      // +
	Minus     // -
	Star      // *
	Slash     // /
	Percent   // %
	Assign    // =
	Bang      // !
	Less      // <
	Greater   // >
	Question  // ?
	Ampersand // &
	Pipe      // |
	Caret     // ^
	Tilde     // ~

	// Two-character operators
	EqualEqual   // ==
	BangEqual    // !=
	LessEqual    // <=
	GreaterEqual // >=
	AndAnd       // &&
	OrOr         // ||
	ShiftLeft    // <<
	ShiftRight   // >>
	Arrow        // ->
	FatArrow     // =>

	// Any other operator run, e.g. =-, <=>, |>
	CustomOperator

	// Structure
	Newline
	Indent
	Dedent

	// Anomalies
	Error
	Unknown

	EOF

	typeCount
)

var typeNames = [typeCount]string{
	Invalid:        "INVALID",
	Ident:          "IDENT",
	Number:         "NUMBER",
	String:         "STRING",
	LeftParen:      "(",
	RightParen:     ")",
	LeftBrace:      "{",
	RightBrace:     "}",
	LeftBracket:    "[",
	RightBracket:   "]",
	Comma:          ",",
	Semicolon:      ";",
	Colon:          ":",
	Plus:           "+",
	Minus:          "-",
	Star:           "*",
	Slash:          "/",
	Percent:        "%",
	Assign:         "=",
	Bang:           "!",
	Less:           "<",
	Greater:        ">",
	Question:       "?",
	Ampersand:      "&",
	Pipe:           "|",
	Caret:          "^",
	Tilde:          "~",
	EqualEqual:     "==",
	BangEqual:      "!=",
	LessEqual:      "<=",
	GreaterEqual:   ">=",
	AndAnd:         "&&",
	OrOr:           "||",
	ShiftLeft:      "<<",
	ShiftRight:     ">>",
	Arrow:          "->",
	FatArrow:       "=>",
	CustomOperator: "CUSTOM_OP",
	Newline:        "NEWLINE",
	Indent:         "INDENT",
	Dedent:         "DEDENT",
	Error:          "ERROR",
	Unknown:        "UNKNOWN",
	EOF:            "EOF",
}

func (t Type) String() string {
	if t < typeCount {
		return typeNames[t]
	}
	return "Type(?)"
}

// Types returns every type the scanner can produce, in declaration order.
func Types() []Type {
	types := make([]Type, 0, typeCount-1)
	for t := Ident; t < typeCount; t++ {
		types = append(types, t)
	}
	return types
}

func (t Type) IsPunctuation() bool {
	return t >= LeftParen && t <= Colon
}

// IsOperator reports whether t is a recognized or custom operator.
func (t Type) IsOperator() bool {
	return t >= Plus && t <= CustomOperator
}

// IsStructural reports whether t is synthesized from layout rather than
// spelled out in the source.
func (t Type) IsStructural() bool {
	return t == Newline || t == Indent || t == Dedent || t == EOF
}

// Format tags numeric tokens.
type Format uint16

const (
	FormatNone Format = iota
	FormatInteger
	FormatFloat
)

func (f Format) String() string {
	switch f {
	case FormatInteger:
		return "int"
	case FormatFloat:
		return "float"
	default:
		return ""
	}
}

// Symbol identifies an interned lexeme. It is the offset of the lexeme's
// first byte in the interner's string pool.
type Symbol uint32

// NoSymbol marks tokens that carry no interned lexeme. Pool offset 0 is
// never issued.
const NoSymbol Symbol = 0

// Token is a classified span of the source. It holds no pointers; the
// lexeme is recovered from the source with Offset and Length.
type Token struct {
	Symbol Symbol
	Offset uint32
	Length uint32
	Type   Type
	Format Format // numbers only
}

// End returns the offset one past the last byte of the token.
func (t Token) End() uint32 {
	return t.Offset + t.Length
}

// Text returns the token's lexeme as a sub-slice of src. Synthesized tokens
// (DEDENT, EOF) have an empty lexeme. An INDENT's Length is the indentation
// width, which only differs from its byte length when tabs are expanded.
func (t Token) Text(src []byte) []byte {
	end := t.End()
	if int(end) > len(src) {
		return nil
	}
	return src[t.Offset:end]
}
