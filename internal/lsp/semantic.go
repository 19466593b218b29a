package lsp

import (
	"lightning/token"
)

// SemanticToken represents a single LSP semantic token entry
// Line and StartChar are 0-based positions, StartChar and Length in UTF-16
// code units. TokenType is an index into SemanticTokenTypes.
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int
	TokenModifiers int
}

const (
	tokenVariable = iota
	tokenNumber
	tokenOperator
)

// semanticType maps a token type to its legend index. Punctuation and the
// layout and anomaly tokens are not highlighted.
func semanticType(t token.Type) (int, bool) {
	switch {
	case t == token.Ident:
		return tokenVariable, true
	case t == token.Number:
		return tokenNumber, true
	case t.IsOperator():
		return tokenOperator, true
	default:
		return 0, false
	}
}

func collectSemanticTokens(doc *document) []SemanticToken {
	var tokens []SemanticToken
	if doc == nil {
		return tokens
	}

	for _, tok := range doc.tokens {
		typ, ok := semanticType(tok.Type)
		if !ok {
			continue
		}
		r := doc.span(int(tok.Offset), int(tok.Length))
		tokens = append(tokens, SemanticToken{
			Line:      r.Start.Line,
			StartChar: r.Start.Character,
			Length:    r.End.Character - r.Start.Character,
			TokenType: typ,
		})
	}
	return tokens
}

// encodeSemanticTokens packs tokens, already in document order, into the
// LSP wire format using delta-line, delta-start compression.
func encodeSemanticTokens(tokens []SemanticToken) []uint32 {
	data := make([]uint32, 0, len(tokens)*5)
	var prevLine, prevStart uint32

	for _, t := range tokens {
		deltaLine := t.Line - prevLine
		deltaStart := t.StartChar
		if deltaLine == 0 {
			deltaStart = t.StartChar - prevStart
		}

		data = append(data, deltaLine, deltaStart, t.Length, uint32(t.TokenType), uint32(t.TokenModifiers))

		prevLine = t.Line
		prevStart = t.StartChar
	}
	return data
}
