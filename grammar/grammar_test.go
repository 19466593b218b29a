package grammar_test

import (
	"bytes"
	"testing"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lightning/grammar"
	"lightning/internal/errors"
	scanner "lightning/internal/lexer"
)

func init() {
	color.NoColor = true
}

func lexAll(t *testing.T, src string, opts ...scanner.Option) []lexer.Token {
	t.Helper()
	l, err := grammar.NewDefinition(opts...).LexString("t.lt", src)
	require.NoError(t, err)

	var out []lexer.Token
	for {
		tok, err := l.Next()
		require.NoError(t, err)
		out = append(out, tok)
		if tok.EOF() {
			return out
		}
		require.Less(t, len(out), 1000, "stream does not terminate")
	}
}

func typesOf(tokens []lexer.Token) []lexer.TokenType {
	out := make([]lexer.TokenType, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Type
	}
	return out
}

func TestSymbols(t *testing.T) {
	syms := grammar.NewDefinition().Symbols()
	assert.Equal(t, lexer.EOF, syms["EOF"])
	for _, name := range []string{"Ident", "Number", "Operator", "Punct", "Unknown", "Newline", "Indent", "Dedent", "Error"} {
		assert.Contains(t, syms, name)
	}
}

func TestStream(t *testing.T) {
	tokens := lexAll(t, "if a:\n  b = 1.5\n")
	assert.Equal(t, []lexer.TokenType{
		grammar.Ident, grammar.Ident, grammar.Punct, grammar.Newline,
		grammar.Indent, grammar.Ident, grammar.Operator, grammar.Number, grammar.Newline,
		grammar.Dedent, lexer.EOF,
	}, typesOf(tokens))

	assert.Equal(t, ":", tokens[2].Value)
	assert.Equal(t, "1.5", tokens[7].Value)
	assert.Equal(t, lexer.Position{Filename: "t.lt", Offset: 8, Line: 2, Column: 3}, tokens[5].Pos)
	assert.Equal(t, 3, tokens[10].Pos.Line)
}

func TestStreamRepeatsEOF(t *testing.T) {
	l, err := grammar.NewDefinition().LexString("t.lt", "a")
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		_, err = l.Next()
		require.NoError(t, err)
	}
	for i := 0; i < 3; i++ {
		tok, err := l.Next()
		require.NoError(t, err)
		assert.True(t, tok.EOF())
	}
}

func TestStreamBreaksLinesAfterComments(t *testing.T) {
	tokens := lexAll(t, "a # note\nb\n")
	assert.Equal(t, []lexer.TokenType{
		grammar.Ident, grammar.Newline, grammar.Ident, grammar.Newline, lexer.EOF,
	}, typesOf(tokens))
	assert.Equal(t, 2, tokens[1].Pos.Line)
}

func TestStreamLexReader(t *testing.T) {
	l, err := grammar.NewDefinition().Lex("r.lt", bytes.NewReader([]byte("x y")))
	require.NoError(t, err)
	tok, err := l.Next()
	require.NoError(t, err)
	assert.Equal(t, "x", tok.Value)
	assert.Equal(t, "r.lt", tok.Pos.Filename)
}

func TestParseFile(t *testing.T) {
	outline, err := grammar.ParseFile("testdata/blocks.lt")
	require.NoError(t, err)
	require.Len(t, outline.Nodes, 2)

	def := outline.Nodes[0].Line
	require.NotNil(t, def)
	assert.Equal(t, []string{"def", "area", "(", "w", ",", "h", ")", ":"}, def.Items)
	assert.True(t, def.OpensBlock())
	assert.Equal(t, 2, def.Pos.Line)

	require.NotNil(t, def.Body)
	require.Len(t, def.Body.Nodes, 3)
	cond := def.Body.Nodes[0].Line
	assert.Equal(t, []string{"if", "w", "<=", "0", ":"}, cond.Items)
	require.NotNil(t, cond.Body)
	assert.Equal(t, []string{"return", "0"}, cond.Body.Nodes[0].Line.Items)
	assert.Equal(t, []string{"a", "=", "w", "*", "h"}, def.Body.Nodes[1].Line.Items)

	call := outline.Nodes[1].Line
	assert.Equal(t, []string{"x", "=", "area", "(", "3", ",", "4.5", ")"}, call.Items)
	assert.False(t, call.OpensBlock())
	assert.Nil(t, call.Body)

	lines, depth := outline.Stats()
	assert.Equal(t, 6, lines)
	assert.Equal(t, 2, depth)
}

func TestParseFileMissing(t *testing.T) {
	_, err := grammar.ParseFile("testdata/missing.lt")
	assert.ErrorContains(t, err, "failed to read file")
}

func TestOutlineString(t *testing.T) {
	outline, err := grammar.ParseSource("p.lt", []byte("a:\n  b:\n     c\n  d\ne\n"))
	require.NoError(t, err)
	assert.Equal(t, "a :\n    b :\n        c\n    d\ne\n", outline.String())
}

func TestParseOrphanBlock(t *testing.T) {
	outline, err := grammar.ParseSource("o.lt", []byte("  a\nb\n"))
	require.NoError(t, err)
	require.Len(t, outline.Nodes, 2)
	require.NotNil(t, outline.Nodes[0].Orphan)
	assert.Equal(t, []string{"a"}, outline.Nodes[0].Orphan.Nodes[0].Line.Items)
	assert.Equal(t, []string{"b"}, outline.Nodes[1].Line.Items)
	assert.Equal(t, "    a\nb\n", outline.String())
}

func TestParseWithoutTrailingNewline(t *testing.T) {
	outline, err := grammar.ParseSource("n.lt", []byte("a:\n    b"))
	require.NoError(t, err)
	require.Len(t, outline.Nodes, 1)
	assert.Equal(t, []string{"b"}, outline.Nodes[0].Line.Body.Nodes[0].Line.Items)
}

func TestParseIgnoresIndentMismatch(t *testing.T) {
	src := []byte("a:\n    b\n  c\nd\n")
	outline, err := grammar.ParseSource("m.lt", src)
	require.NoError(t, err)

	// The scanner closed the block at the mismatched line, so c sits at
	// the top level.
	assert.Equal(t, "a :\n    b\nc\nd\n", outline.String())
}

func TestParseCommentOnlyBlock(t *testing.T) {
	outline, err := grammar.ParseSource("c.lt", []byte("a:\n    # nothing yet\nb\n"))
	require.NoError(t, err)
	require.Len(t, outline.Nodes, 2)
	require.NotNil(t, outline.Nodes[0].Line.Body)
	assert.Empty(t, outline.Nodes[0].Line.Body.Nodes)
}

func TestParseTabs(t *testing.T) {
	outline, err := grammar.ParseSource("t.lt", []byte("a:\n\tb\n"), scanner.WithTabWidth(4))
	require.NoError(t, err)
	assert.Equal(t, "a :\n    b\n", outline.String())
}

func TestParseEmpty(t *testing.T) {
	outline, err := grammar.ParseSource("e.lt", nil)
	require.NoError(t, err)
	assert.Empty(t, outline.Nodes)
	assert.Equal(t, "", outline.String())
}

func TestDiagnostic(t *testing.T) {
	perr := participle.Errorf(lexer.Position{Filename: "d.lt", Line: 2, Column: 4, Offset: 9}, "unexpected token %q", "@")

	diag, ok := grammar.Diagnostic(perr)
	require.True(t, ok)
	assert.Equal(t, errors.ErrorOutlineSyntax, diag.Code)
	assert.Equal(t, scanner.Position{Line: 2, Column: 4, Offset: 9}, diag.Position)
	assert.Contains(t, diag.Message, "unexpected token")

	_, ok = grammar.Diagnostic(assert.AnError)
	assert.False(t, ok)
}

func TestReportParseError(t *testing.T) {
	src := []byte("a\nb c @\n")
	perr := participle.Errorf(lexer.Position{Filename: "r.lt", Line: 2, Column: 5, Offset: 6}, "unexpected %q", "@")

	var out bytes.Buffer
	grammar.ReportParseError(&out, src, perr)
	assert.Contains(t, out.String(), "Syntax error in r.lt at line 2, column 5:")
	assert.Contains(t, out.String(), "b c @\n    ^\n")
	assert.Contains(t, out.String(), `→ unexpected "@"`)

	out.Reset()
	grammar.ReportParseError(&out, src, assert.AnError)
	assert.Contains(t, out.String(), "Unexpected error")
}
