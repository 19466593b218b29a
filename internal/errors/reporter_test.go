package errors

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lightning/internal/lexer"
)

func init() {
	color.NoColor = true
}

func lexical(t *testing.T, src string, opts ...lexer.Option) []CompilerError {
	t.Helper()
	tokens, _ := lexer.Tokenize([]byte(src), opts...)
	return Lexical(tokens, []byte(src), nil)
}

func TestErrorReporter(t *testing.T) {
	source := "if a:\n    b = 1\n  c = 2\nd\n"
	errs := lexical(t, source)
	require.Len(t, errs, 1)

	reporter := NewErrorReporter("test.lt", []byte(source), nil)
	formatted := reporter.FormatError(errs[0])

	assert.Contains(t, formatted, "error["+ErrorIndentMismatch+"]")
	assert.Contains(t, formatted, "unindent does not match")
	assert.Contains(t, formatted, "test.lt:3:1")
	assert.Contains(t, formatted, "    b = 1")
	assert.Contains(t, formatted, "  c = 2")
	assert.Contains(t, formatted, "│ ^^\n")
	assert.Contains(t, formatted, "enclosing blocks are indented by 0 and 4 columns")
	assert.Contains(t, formatted, "help:")
}

func TestReporterCarriageReturns(t *testing.T) {
	source := "a\r\nb @\r\nc\r\n"
	errs := lexical(t, source)
	require.Len(t, errs, 1)

	formatted := NewErrorReporter("crlf.lt", []byte(source), nil).FormatError(errs[0])
	assert.Contains(t, formatted, "crlf.lt:2:3")
	assert.NotContains(t, formatted, "\r")
	assert.Contains(t, formatted, "│ b @\n")
	assert.Contains(t, formatted, "│   ^\n")
}

func TestReporterMarkerCountsRunes(t *testing.T) {
	source := "é x ~é\n"
	errs := lexical(t, source)
	require.Len(t, errs, 2)

	// Second run starts after "é x ~", six bytes in but five runes.
	formatted := NewErrorReporter("u.lt", []byte(source), nil).FormatError(errs[1])
	assert.Contains(t, formatted, "│      ^\n")
}

func TestIndentMismatchLevels(t *testing.T) {
	source := "a:\n  b:\n      c\n    d\n"
	errs := lexical(t, source)
	require.Len(t, errs, 1)

	err := errs[0]
	assert.Equal(t, ErrorIndentMismatch, err.Code)
	assert.Equal(t, Error, err.Level)
	assert.Equal(t, lexer.Position{Line: 4, Column: 1, Offset: 16}, err.Position)
	assert.Equal(t, 4, err.Length)
	require.Len(t, err.Notes, 1)
	assert.Contains(t, err.Notes[0], "indented by 2 and 6 columns")
}

func TestUnknownCharacter(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		message string
		hint    string
	}{
		{"symbol", "a @@ b", `"@@"`, ""},
		{"non-ascii", "x = ñ", `"ñ"`, "only ASCII"},
		{"dangling point", "x = 1.", `"."`, "decimal point"},
		{"tab between tokens", "a\tb", `"\t"`, "-tab-width"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := lexical(t, tt.src)
			require.Len(t, errs, 1)
			err := errs[0]
			assert.Equal(t, ErrorUnknownCharacter, err.Code)
			assert.Contains(t, err.Message, tt.message)
			if tt.hint == "" {
				return
			}
			var text string
			for _, s := range err.Suggestions {
				text += s.Message
			}
			for _, n := range err.Notes {
				text += n
			}
			assert.Contains(t, text, tt.hint)
		})
	}
}

func TestTabIndentWarning(t *testing.T) {
	errs := lexical(t, "a:\n\tb\n")
	require.Len(t, errs, 1)
	assert.Equal(t, WarningTabIndent, errs[0].Code)
	assert.Equal(t, Warning, errs[0].Level)
	assert.True(t, IsWarning(errs[0].Code))

	assert.Empty(t, lexical(t, "a:\n\tb\n", lexer.WithTabWidth(4)))
}

func TestCleanSourceHasNoDiagnostics(t *testing.T) {
	assert.Empty(t, lexical(t, "def f(x):\n    return x + 1\n"))
	assert.Empty(t, lexical(t, ""))
}

func TestCompilerErrorString(t *testing.T) {
	err := NewDiagnostic(ErrorOutlineSyntax, "unexpected token", lexer.Position{Line: 2, Column: 5}).Build()
	assert.Equal(t, "2:5: error[E0200]: unexpected token", err.Error())
}

func TestFormatAll(t *testing.T) {
	source := "a @\nb $\n"
	errs := lexical(t, source)
	require.Len(t, errs, 2)

	out := NewErrorReporter("x.lt", []byte(source), nil).FormatAll(errs)
	assert.Contains(t, out, "x.lt:1:3")
	assert.Contains(t, out, "x.lt:2:3")
}

func TestErrorCategories(t *testing.T) {
	assert.Equal(t, "Lexical", GetErrorCategory(ErrorIndentMismatch))
	assert.Equal(t, "Lexical", GetErrorCategory(ErrorUnknownCharacter))
	assert.Equal(t, "Outline", GetErrorCategory(ErrorOutlineSyntax))
	assert.Equal(t, "Warning", GetErrorCategory(WarningTabIndent))
	assert.Equal(t, "Tooling", GetErrorCategory(ErrorReadFailure))
	assert.False(t, IsWarning(ErrorUnknownCharacter))
	assert.NotEqual(t, "Unknown error code", GetErrorDescription(ErrorIndentMismatch))
}
