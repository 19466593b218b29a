package lsp

import (
	"unicode/utf16"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"lightning/internal/errors"
	"lightning/internal/lexer"
	"lightning/token"
)

// document is the scanned state of one open text document.
type document struct {
	uri         string
	lx          *lexer.Lexer
	tokens      []token.Token
	lines       *lexer.LineIndex
	diagnostics []errors.CompilerError
}

func analyze(uri string, text []byte, opts []lexer.Option) *document {
	lx := lexer.New(text, opts...)
	tokens := lx.Tokenize()
	lines := lexer.NewLineIndex(lx.Source())
	return &document{
		uri:         uri,
		lx:          lx,
		tokens:      tokens,
		lines:       lines,
		diagnostics: errors.Lexical(tokens, lx.Source(), lines),
	}
}

// position converts a byte offset to an LSP position. Lines are 0-based and
// characters are counted in UTF-16 code units.
func (d *document) position(offset int) protocol.Position {
	p := d.lines.Position(offset)
	line := d.lines.Line(p.Line)
	return protocol.Position{
		Line:      uint32(p.Line - 1),
		Character: utf16Len(line[:min(p.Column-1, len(line))]),
	}
}

func (d *document) span(offset, length int) protocol.Range {
	start := d.position(offset)
	end := d.position(offset + length)
	if end.Line != start.Line {
		// Clip to the end of the first line.
		line := d.lines.Line(int(start.Line) + 1)
		end = protocol.Position{Line: start.Line, Character: utf16Len(line)}
	}
	return protocol.Range{Start: start, End: end}
}

func utf16Len(b []byte) uint32 {
	var n uint32
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		b = b[size:]
		if k := utf16.RuneLen(r); k > 0 {
			n += uint32(k)
		} else {
			n++
		}
	}
	return n
}
