// SPDX-License-Identifier: Apache-2.0
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"lightning/grammar"
	"lightning/internal/errors"
	"lightning/internal/lexer"
	"lightning/token"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("lightning-cli", flag.ContinueOnError)
	fs.SetOutput(stderr)
	tabWidth := fs.Int("tab-width", 0, "expand tabs to this width; 0 treats tabs as unknown bytes")
	outline := fs.Bool("outline", false, "print the block outline instead of the token table")
	noColor := fs.Bool("no-color", false, "disable coloured output")
	symbols := fs.Bool("symbols", false, "print symbol table statistics")
	verbosity := fs.Int("v", 0, "log verbosity")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: lightning-cli [flags] <file>")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}
	if *noColor {
		color.NoColor = true
	}
	commonlog.Configure(*verbosity, nil)
	log := commonlog.GetLogger("lightning.cli")

	startTime := time.Now()
	path := fs.Arg(0)

	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(stderr, "%s[%s]: failed to read file: %v\n", color.RedString("error"), errors.ErrorReadFailure, err)
		return 1
	}

	var opts []lexer.Option
	if *tabWidth > 0 {
		opts = append(opts, lexer.WithTabWidth(*tabWidth))
	}

	lx := lexer.New(source, opts...)
	tokens := lx.Tokenize()
	lines := lexer.NewLineIndex(lx.Source())
	log.Debugf("scanned %d tokens from %s", len(tokens), path)

	if !*outline {
		printTokens(stdout, lx, tokens, lines)
	}
	if *symbols {
		table := lx.Symbols()
		fmt.Fprintf(stdout, "symbols: %d distinct, %d pool bytes, capacity %d\n",
			table.Len(), table.PoolSize(), table.Capacity())
	}

	reporter := errors.NewErrorReporter(path, lx.Source(), lines)
	diagnostics := errors.Lexical(tokens, lx.Source(), lines)
	fmt.Fprint(stdout, reporter.FormatAll(diagnostics))

	failed := false
	for _, d := range diagnostics {
		if d.Level == errors.Error {
			failed = true
		}
	}

	if *outline {
		tree, err := grammar.ParseSource(path, source, opts...)
		if err != nil {
			if diag, ok := grammar.Diagnostic(err); ok {
				fmt.Fprint(stdout, reporter.FormatError(diag))
			} else {
				fmt.Fprintf(stdout, "%s: %v\n", color.RedString("error"), err)
			}
			failed = true
		} else {
			fmt.Fprint(stdout, tree.String())
			n, depth := tree.Stats()
			log.Debugf("outline has %d lines, depth %d", n, depth)
		}
	}

	formattedDuration := formatDuration(time.Since(startTime))
	if failed {
		color.New(color.FgRed).Fprintf(stdout, "Lexing failed after %s\n", formattedDuration)
		return 1
	}
	color.New(color.FgGreen).Fprintf(stdout, "Successfully processed %s in %s\n", path, formattedDuration)
	return 0
}

// printTokens writes one row per token: position, type, lexeme and, where
// present, the symbol and number format.
func printTokens(w io.Writer, lx *lexer.Lexer, tokens []token.Token, lines *lexer.LineIndex) {
	for _, tok := range tokens {
		pos := lines.Position(int(tok.Offset))
		loc := fmt.Sprintf("%d:%d", pos.Line, pos.Column)

		row := fmt.Sprintf("%-8s %s %s", loc, typeColor(tok.Type)(fmt.Sprintf("%-10s", tok.Type)), lexeme(lx, tok))
		if tok.Symbol != token.NoSymbol {
			row += fmt.Sprintf("  sym=%d", tok.Symbol)
		}
		if tok.Format != token.FormatNone {
			row += "  fmt=" + tok.Format.String()
		}
		fmt.Fprintln(w, row)
	}
}

func lexeme(lx *lexer.Lexer, tok token.Token) string {
	switch tok.Type {
	case token.Indent:
		return fmt.Sprintf("width=%d", tok.Length)
	case token.Dedent, token.EOF:
		return ""
	}
	return strconv.Quote(string(lx.Text(tok)))
}

func typeColor(t token.Type) func(...interface{}) string {
	switch {
	case t == token.Ident:
		return color.New(color.FgCyan).SprintFunc()
	case t == token.Number:
		return color.New(color.FgMagenta).SprintFunc()
	case t.IsOperator():
		return color.New(color.FgYellow).SprintFunc()
	case t == token.Error, t == token.Unknown:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	case t.IsStructural():
		return color.New(color.Faint).SprintFunc()
	default:
		return fmt.Sprint
	}
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
