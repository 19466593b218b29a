package lexer

import "lightning/token"

// Class is the lexical class of a single byte.
type Class uint8

const (
	ClassUnknown Class = iota
	ClassIdent         // letters and underscore; digits continue identifiers
	ClassDigit
	ClassOperator
	ClassPunct
	ClassNewline
	ClassSpace
	ClassComment
)

func (c Class) String() string {
	switch c {
	case ClassIdent:
		return "ident"
	case ClassDigit:
		return "digit"
	case ClassOperator:
		return "operator"
	case ClassPunct:
		return "punct"
	case ClassNewline:
		return "newline"
	case ClassSpace:
		return "space"
	case ClassComment:
		return "comment"
	default:
		return "unknown"
	}
}

const (
	punctChars    = "(){}[],;:"
	operatorChars = "+-*/%=!<>?&|^~"
)

// Only ASCII is classified. Every byte >= 0x80 is ClassUnknown, so non-ASCII
// text ends up in UNKNOWN runs.
var (
	classes    [256]Class
	singleChar [256]token.Type
)

func init() {
	for c := 'a'; c <= 'z'; c++ {
		classes[c] = ClassIdent
		classes[c-'a'+'A'] = ClassIdent
	}
	classes['_'] = ClassIdent
	for c := '0'; c <= '9'; c++ {
		classes[c] = ClassDigit
	}
	for i := 0; i < len(punctChars); i++ {
		classes[punctChars[i]] = ClassPunct
	}
	for i := 0; i < len(operatorChars); i++ {
		classes[operatorChars[i]] = ClassOperator
	}
	classes['\n'] = ClassNewline
	classes['\r'] = ClassNewline
	classes[' '] = ClassSpace
	classes['#'] = ClassComment

	singleChar['('] = token.LeftParen
	singleChar[')'] = token.RightParen
	singleChar['{'] = token.LeftBrace
	singleChar['}'] = token.RightBrace
	singleChar['['] = token.LeftBracket
	singleChar[']'] = token.RightBracket
	singleChar[','] = token.Comma
	singleChar[';'] = token.Semicolon
	singleChar[':'] = token.Colon
	singleChar['+'] = token.Plus
	singleChar['-'] = token.Minus
	singleChar['*'] = token.Star
	singleChar['/'] = token.Slash
	singleChar['%'] = token.Percent
	singleChar['='] = token.Assign
	singleChar['!'] = token.Bang
	singleChar['<'] = token.Less
	singleChar['>'] = token.Greater
	singleChar['?'] = token.Question
	singleChar['&'] = token.Ampersand
	singleChar['|'] = token.Pipe
	singleChar['^'] = token.Caret
	singleChar['~'] = token.Tilde
}

// Classify returns the class of c.
func Classify(c byte) Class {
	return classes[c]
}

// SingleCharType returns the token type spelled by c alone, or
// token.Invalid if c is neither punctuation nor an operator character.
func SingleCharType(c byte) token.Type {
	return singleChar[c]
}

func isIdentContinue(c byte) bool {
	cl := classes[c]
	return cl == ClassIdent || cl == ClassDigit
}

func isDigit(c byte) bool {
	return classes[c] == ClassDigit
}

// twoCharType resolves a two-byte operator run. Unrecognized pairs are
// custom operators.
func twoCharType(a, b byte) token.Type {
	switch uint16(a)<<8 | uint16(b) {
	case '='<<8 | '=':
		return token.EqualEqual
	case '!'<<8 | '=':
		return token.BangEqual
	case '<'<<8 | '=':
		return token.LessEqual
	case '>'<<8 | '=':
		return token.GreaterEqual
	case '&'<<8 | '&':
		return token.AndAnd
	case '|'<<8 | '|':
		return token.OrOr
	case '<'<<8 | '<':
		return token.ShiftLeft
	case '>'<<8 | '>':
		return token.ShiftRight
	case '-'<<8 | '>':
		return token.Arrow
	case '='<<8 | '>':
		return token.FatArrow
	default:
		return token.CustomOperator
	}
}
