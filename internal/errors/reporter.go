package errors

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"

	"lightning/internal/lexer"
)

// ErrorLevel represents the severity of a diagnostic
type ErrorLevel string

const (
	Error   ErrorLevel = "error"
	Warning ErrorLevel = "warning"
	Note    ErrorLevel = "note"
	Help    ErrorLevel = "help"
)

// CompilerError is a located diagnostic with optional suggestions
type CompilerError struct {
	Level       ErrorLevel
	Code        string         // Error code like E0100
	Message     string         // Primary message
	Position    lexer.Position // Start of the offending region
	Length      int            // Length of the region in bytes
	Suggestions []Suggestion
	Notes       []string
	HelpText    string
}

func (e CompilerError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("%d:%d: %s", e.Position.Line, e.Position.Column, e.Message)
	}
	return fmt.Sprintf("%d:%d: %s[%s]: %s", e.Position.Line, e.Position.Column, e.Level, e.Code, e.Message)
}

// Suggestion represents a suggested fix
type Suggestion struct {
	Message     string
	Replacement string // optional
}

// ErrorReporter renders diagnostics against the source they refer to
type ErrorReporter struct {
	filename string
	lines    *lexer.LineIndex
}

// NewErrorReporter creates a reporter for one file. The line index is
// built from source unless one is passed in.
func NewErrorReporter(filename string, source []byte, idx *lexer.LineIndex) *ErrorReporter {
	if idx == nil {
		idx = lexer.NewLineIndex(source)
	}
	return &ErrorReporter{filename: filename, lines: idx}
}

// FormatError formats a diagnostic with a source excerpt and an underline
func (er *ErrorReporter) FormatError(err CompilerError) string {
	var result strings.Builder

	header := levelColor(err.Level)
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	// error[E0100]: message
	if err.Code != "" {
		fmt.Fprintf(&result, "%s[%s]: %s\n", header(string(err.Level)), err.Code, err.Message)
	} else {
		fmt.Fprintf(&result, "%s: %s\n", header(string(err.Level)), err.Message)
	}

	line := err.Position.Line
	width := lineNumberWidth(line + 1)
	indent := strings.Repeat(" ", width)

	fmt.Fprintf(&result, "%s %s %s:%d:%d\n", indent, dim("-->"), er.filename, line, err.Position.Column)
	fmt.Fprintf(&result, "%s %s\n", indent, dim("│"))

	if line > 1 {
		fmt.Fprintf(&result, "%s %s %s\n",
			dim(fmt.Sprintf("%*d", width, line-1)), dim("│"), er.lines.Line(line-1))
	}

	if line >= 1 && line <= er.lines.LineCount() {
		content := er.lines.Line(line)
		fmt.Fprintf(&result, "%s %s %s\n", bold(fmt.Sprintf("%*d", width, line)), dim("│"), content)
		fmt.Fprintf(&result, "%s %s %s\n", indent, dim("│"), marker(content, err.Position.Column, err.Length, err.Level))
	}

	if line < er.lines.LineCount() {
		fmt.Fprintf(&result, "%s %s %s\n",
			dim(fmt.Sprintf("%*d", width, line+1)), dim("│"), er.lines.Line(line+1))
	}

	if len(err.Suggestions) > 0 {
		cyan := color.New(color.FgCyan).SprintFunc()
		fmt.Fprintf(&result, "%s %s\n", indent, dim("│"))
		for i, s := range err.Suggestions {
			if i == 0 {
				fmt.Fprintf(&result, "%s %s %s: %s\n", indent, cyan("help"), cyan("try"), s.Message)
			} else {
				fmt.Fprintf(&result, "%s %s %s\n", indent, cyan("    "), s.Message)
			}
			if s.Replacement != "" {
				fmt.Fprintf(&result, "%s %s %s\n", indent, cyan("│"), cyan(s.Replacement))
			}
		}
	}

	for _, note := range err.Notes {
		fmt.Fprintf(&result, "%s %s %s %s\n", indent, dim("│"), color.New(color.FgBlue).Sprint("note:"), note)
	}

	if err.HelpText != "" {
		fmt.Fprintf(&result, "%s %s %s %s\n", indent, dim("│"), color.New(color.FgGreen).Sprint("help:"), err.HelpText)
	}

	result.WriteString("\n")
	return result.String()
}

// FormatAll formats every diagnostic in order
func (er *ErrorReporter) FormatAll(errs []CompilerError) string {
	var b strings.Builder
	for _, err := range errs {
		b.WriteString(er.FormatError(err))
	}
	return b.String()
}

func levelColor(level ErrorLevel) func(...interface{}) string {
	switch level {
	case Warning:
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	case Note:
		return color.New(color.FgBlue, color.Bold).SprintFunc()
	case Help:
		return color.New(color.FgGreen, color.Bold).SprintFunc()
	default:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	}
}

// marker underlines length bytes starting at the 1-based byte column.
// Columns are converted to runes so multi-byte text stays aligned.
func marker(content []byte, column, length int, level ErrorLevel) string {
	start := min(max(column-1, 0), len(content))
	end := min(start+max(length, 1), len(content))

	pad := utf8.RuneCount(content[:start])
	width := max(utf8.RuneCount(content[start:end]), 1)

	markerColor := color.New(color.FgRed, color.Bold).SprintFunc()
	if level == Warning {
		markerColor = color.New(color.FgYellow, color.Bold).SprintFunc()
	}
	return strings.Repeat(" ", pad) + markerColor(strings.Repeat("^", width))
}

func lineNumberWidth(line int) int {
	return max(len(fmt.Sprintf("%d", line)), 3)
}
