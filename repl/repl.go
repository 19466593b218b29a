// Package repl SPDX-License-Identifier: Apache-2.0
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/tliron/commonlog"

	"lightning/grammar"
	"lightning/internal/errors"
	"lightning/internal/lexer"
	"lightning/token"
)

const (
	PROMPT       = ">> "
	CONTINUATION = ".. "
)

var log = commonlog.GetLogger("lightning.repl")

// Start reads input and prints the tokens of each entry. A line ending in
// ':' opens a block; the block is collected until a blank line and then
// scanned as one unit together with its outline.
func Start(in io.Reader, out io.Writer, opts ...lexer.Option) {
	scanner := bufio.NewScanner(in)

	var block []string
	for {
		if len(block) == 0 {
			fmt.Fprint(out, PROMPT)
		} else {
			fmt.Fprint(out, CONTINUATION)
		}

		if !scanner.Scan() {
			if len(block) > 0 {
				eval(out, strings.Join(block, "\n")+"\n", opts)
			}
			fmt.Fprintln(out)
			return
		}
		line := scanner.Text()

		switch {
		case len(block) > 0 && strings.TrimSpace(line) == "":
			eval(out, strings.Join(block, "\n")+"\n", opts)
			block = block[:0]
		case len(block) > 0 || strings.HasSuffix(strings.TrimRight(line, " "), ":"):
			block = append(block, line)
		default:
			eval(out, line+"\n", opts)
		}
	}
}

func eval(out io.Writer, src string, opts []lexer.Option) {
	lx := lexer.New([]byte(src), opts...)
	tokens := lx.Tokenize()
	log.Debugf("entry produced %d tokens", len(tokens))

	for _, tok := range tokens {
		switch tok.Type {
		case token.Newline, token.EOF:
			continue
		case token.Indent:
			fmt.Fprintf(out, "%s(%d) ", tok.Type, tok.Length)
		case token.Dedent:
			fmt.Fprintf(out, "%s ", tok.Type)
		default:
			fmt.Fprintf(out, "%s(%s) ", tok.Type, strconv.Quote(string(lx.Text(tok))))
		}
	}
	fmt.Fprintln(out)

	lines := lexer.NewLineIndex(lx.Source())
	diagnostics := errors.Lexical(tokens, lx.Source(), lines)
	fmt.Fprint(out, errors.NewErrorReporter("<repl>", lx.Source(), lines).FormatAll(diagnostics))

	if strings.Count(src, "\n") < 2 {
		return
	}
	tree, err := grammar.ParseSource("<repl>", []byte(src), opts...)
	if err != nil {
		grammar.ReportParseError(out, []byte(src), err)
		return
	}
	color.New(color.Faint).Fprint(out, tree.String())
}
