package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSource(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.lt")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func runCLI(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(append([]string{"-no-color"}, args...), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestTokenTable(t *testing.T) {
	path := writeSource(t, "x = 1.5\nif x:\n  y\n")

	code, out, _ := runCLI(path)
	assert.Equal(t, 0, code)
	assert.Contains(t, out, `1:1      IDENT      "x"  sym=`)
	assert.Contains(t, out, `1:5      NUMBER     "1.5"  sym=`)
	assert.Contains(t, out, "fmt=float")
	assert.Contains(t, out, `1:3      =          "="`+"\n")
	assert.Contains(t, out, "3:1      INDENT     width=2")
	assert.Contains(t, out, "DEDENT")
	assert.Contains(t, out, "EOF")
	assert.Contains(t, out, "Successfully processed")
}

func TestDiagnosticsFailTheRun(t *testing.T) {
	path := writeSource(t, "a:\n    b\n  c\n")

	code, out, _ := runCLI(path)
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "error[E0100]")
	assert.Contains(t, out, filepath.Base(path)+":3:1")
	assert.Contains(t, out, "Lexing failed after")
}

func TestWarningsDoNotFail(t *testing.T) {
	path := writeSource(t, "a:\n\tb\n")

	code, out, _ := runCLI(path)
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "warning[E0800]")

	code, out, _ = runCLI("-tab-width", "4", path)
	assert.Equal(t, 0, code)
	assert.NotContains(t, out, "warning")
	assert.Contains(t, out, "INDENT     width=4")
}

func TestOutlineFlag(t *testing.T) {
	path := writeSource(t, "def f(x):\n  return x\nf(1)\n")

	code, out, _ := runCLI("-outline", path)
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "def f ( x ) :\n    return x\nf ( 1 )\n")
	assert.NotContains(t, out, "IDENT")
}

func TestSymbolsFlag(t *testing.T) {
	path := writeSource(t, "a b a 7\n")

	code, out, _ := runCLI("-symbols", path)
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "symbols: 3 distinct")
}

func TestUsageAndMissingFile(t *testing.T) {
	code, _, errOut := runCLI()
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "Usage: lightning-cli")

	code, _, errOut = runCLI(filepath.Join(t.TempDir(), "missing.lt"))
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "error[E0900]: failed to read file")
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "1.50s", formatDuration(1500*time.Millisecond))
	assert.Equal(t, "2.5ms", formatDuration(2500*time.Microsecond))
	assert.Equal(t, "3.0μs", formatDuration(3*time.Microsecond))
	assert.Equal(t, "42ns", formatDuration(42))
	assert.Equal(t, "2.00min", formatDuration(2*time.Minute))
}
