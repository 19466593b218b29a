package grammar

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/fatih/color"

	"lightning/internal/errors"
	scanner "lightning/internal/lexer"
)

type Parser struct {
	p *participle.Parser[Outline]
}

// NewParser builds an outline parser whose scanner uses opts.
func NewParser(opts ...scanner.Option) (*Parser, error) {
	p, err := participle.Build[Outline](
		participle.Lexer(NewDefinition(opts...)),
		participle.Elide("Error"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build parser: %w", err)
	}
	return &Parser{p: p}, nil
}

func (p *Parser) ParseBytes(filename string, source []byte) (*Outline, error) {
	return p.p.ParseBytes(filename, source)
}

// ParseSource parses source into its block outline. Indentation mismatches
// are not parse errors: the scanner has already closed the blocks, and the
// mismatch is reported by errors.Lexical.
func ParseSource(filename string, source []byte, opts ...scanner.Option) (*Outline, error) {
	p, err := NewParser(opts...)
	if err != nil {
		return nil, err
	}
	return p.ParseBytes(filename, source)
}

func ParseFile(path string, opts ...scanner.Option) (*Outline, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return ParseSource(path, source, opts...)
}

// Diagnostic converts a participle error into an E0200 diagnostic.
func Diagnostic(err error) (errors.CompilerError, bool) {
	pe, ok := err.(participle.Error)
	if !ok {
		return errors.CompilerError{}, false
	}
	pos := pe.Position()
	return errors.NewDiagnostic(errors.ErrorOutlineSyntax, pe.Message(), scanner.Position{
		Line:   pos.Line,
		Column: pos.Column,
		Offset: pos.Offset,
	}).Build(), true
}

// ReportParseError prints a caret-style parse error message to w.
func ReportParseError(w io.Writer, src []byte, err error) {
	red := color.New(color.FgRed)

	pe, ok := err.(participle.Error)
	if !ok {
		red.Fprintf(w, "Unexpected error: %s\n", err)
		return
	}

	pos := pe.Position()
	line := scanner.NewLineIndex(src).Line(pos.Line)
	if line == nil {
		red.Fprintf(w, "Syntax error at unknown location: %s\n", err)
		return
	}

	caret := strings.Repeat(" ", max(pos.Column-1, 0)) + "^"

	red.Fprintf(w, "Syntax error in %s at line %d, column %d:\n", pos.Filename, pos.Line, pos.Column)
	fmt.Fprintln(w, string(line))
	color.New(color.FgHiRed).Fprintln(w, caret)
	fmt.Fprintf(w, "→ %s\n", pe.Message())
}
