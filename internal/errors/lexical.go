package errors

import (
	"bytes"
	"fmt"
	"strconv"

	"lightning/internal/lexer"
	"lightning/token"
)

// DiagnosticBuilder provides a fluent interface for creating diagnostics
type DiagnosticBuilder struct {
	err CompilerError
}

// NewDiagnostic starts an error-level diagnostic
func NewDiagnostic(code, message string, pos lexer.Position) *DiagnosticBuilder {
	return &DiagnosticBuilder{
		err: CompilerError{
			Level:    Error,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

// NewWarning starts a warning-level diagnostic
func NewWarning(code, message string, pos lexer.Position) *DiagnosticBuilder {
	b := NewDiagnostic(code, message, pos)
	b.err.Level = Warning
	return b
}

func (b *DiagnosticBuilder) WithLength(length int) *DiagnosticBuilder {
	b.err.Length = length
	return b
}

func (b *DiagnosticBuilder) WithSuggestion(message string) *DiagnosticBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{Message: message})
	return b
}

func (b *DiagnosticBuilder) WithReplacement(message, replacement string) *DiagnosticBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{Message: message, Replacement: replacement})
	return b
}

func (b *DiagnosticBuilder) WithNote(note string) *DiagnosticBuilder {
	b.err.Notes = append(b.err.Notes, note)
	return b
}

func (b *DiagnosticBuilder) WithHelp(help string) *DiagnosticBuilder {
	b.err.HelpText = help
	return b
}

// Build returns the completed diagnostic
func (b *DiagnosticBuilder) Build() CompilerError {
	return b.err
}

// IndentMismatch reports a line whose indentation lands between the
// enclosing level outer and the just-closed level inner.
func IndentMismatch(pos lexer.Position, length, outer, inner int) CompilerError {
	return NewDiagnostic(ErrorIndentMismatch, "unindent does not match any outer indentation level", pos).
		WithLength(length).
		WithNote(fmt.Sprintf("the enclosing blocks are indented by %d and %d columns", outer, inner)).
		WithHelp(fmt.Sprintf("indent this line by exactly %d or %d columns", outer, inner)).
		Build()
}

// UnknownCharacter reports a run of bytes that start no token.
func UnknownCharacter(pos lexer.Position, text []byte) CompilerError {
	b := NewDiagnostic(ErrorUnknownCharacter,
		fmt.Sprintf("unrecognized character sequence %s", strconv.Quote(string(text))), pos).
		WithLength(len(text))

	switch {
	case bytes.IndexByte(text, '\t') >= 0:
		b.WithSuggestion("replace tabs with spaces, or enable tab handling with -tab-width")
	case text[0] >= 0x80:
		b.WithNote("only ASCII letters, digits and underscores form identifiers")
	case text[0] == '.':
		b.WithNote("a number needs a digit after its decimal point")
	}
	return b.Build()
}

// TabIndent warns about tabs in leading indentation while tabs are not
// treated as whitespace.
func TabIndent(pos lexer.Position, length int) CompilerError {
	return NewWarning(WarningTabIndent, "tab in indentation is not counted as whitespace", pos).
		WithLength(length).
		WithReplacement("indent with spaces", "    ").
		WithHelp("pass -tab-width to expand tabs to the next tab stop").
		Build()
}

// Lexical derives diagnostics from the anomaly tokens of a finished scan:
// ERROR tokens become E0100 and UNKNOWN tokens become E0101, or E0800 when
// the run is tabs at the start of a line. src is the scanned source and idx
// may be nil.
func Lexical(tokens []token.Token, src []byte, idx *lexer.LineIndex) []CompilerError {
	if idx == nil {
		idx = lexer.NewLineIndex(src)
	}

	var errs []CompilerError
	levels := []int{0}
	closed := 0

	for _, tok := range tokens {
		switch tok.Type {
		case token.Indent:
			levels = append(levels, int(tok.Length))
		case token.Dedent:
			if len(levels) > 1 {
				closed = levels[len(levels)-1]
				levels = levels[:len(levels)-1]
			}
		case token.Error:
			pos := idx.Position(int(tok.Offset))
			errs = append(errs, IndentMismatch(pos, int(tok.Length), levels[len(levels)-1], closed))
		case token.Unknown:
			text := tok.Text(src)
			if len(text) == 0 {
				continue
			}
			pos := idx.Position(int(tok.Offset))
			if isTabRun(text) && isLeading(idx.Line(pos.Line), pos.Column) {
				errs = append(errs, TabIndent(pos, len(text)))
			} else {
				errs = append(errs, UnknownCharacter(pos, text))
			}
		}
	}
	return errs
}

func isTabRun(text []byte) bool {
	for _, c := range text {
		if c != '\t' {
			return false
		}
	}
	return true
}

// isLeading reports whether only blanks precede the 1-based column.
func isLeading(line []byte, column int) bool {
	for _, c := range line[:min(column-1, len(line))] {
		if c != ' ' && c != '\t' {
			return false
		}
	}
	return true
}
