package repl

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"lightning/internal/lexer"
)

func init() {
	color.NoColor = true
}

func session(input string, opts ...lexer.Option) string {
	var out bytes.Buffer
	Start(strings.NewReader(input), &out, opts...)
	return out.String()
}

func TestSingleLine(t *testing.T) {
	out := session("x = 1\n")
	assert.Contains(t, out, `IDENT("x") =("=") NUMBER("1") `+"\n")
	assert.True(t, strings.HasPrefix(out, PROMPT))
}

func TestBlockEntry(t *testing.T) {
	out := session("if x:\n  y\n\n")

	assert.Contains(t, out, CONTINUATION)
	assert.Contains(t, out, `IDENT("if") IDENT("x") :(":") INDENT(2) IDENT("y") DEDENT `+"\n")
	assert.Contains(t, out, "if x :\n    y\n")
}

func TestBlockFlushedAtEndOfInput(t *testing.T) {
	out := session("loop:\n  body")
	assert.Contains(t, out, `IDENT("loop") :(":") INDENT(2) IDENT("body") DEDENT `)
}

func TestDiagnosticsShown(t *testing.T) {
	out := session("a @\n")
	assert.Contains(t, out, `UNKNOWN("@")`)
	assert.Contains(t, out, "error[E0101]")
	assert.Contains(t, out, "<repl>:1:3")
}

func TestTabWidthOption(t *testing.T) {
	out := session("a:\n\tb\n\n", lexer.WithTabWidth(8))
	assert.Contains(t, out, "INDENT(8)")
	assert.NotContains(t, out, "warning")
}
