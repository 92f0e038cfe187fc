// Package bicerr formats the translator's fatal diagnostics: a scanner
// error, a parser error outside a speculative region, or a structural
// violation caught by the emitter. All three are terminal — there is no
// severity scale and no recovery, so this package has exactly one job:
// turn "position + message" into the file:line:col-plus-caret text a
// programmer expects from a compiler, and exit.
package bicerr

import (
	"fmt"
	"os"
	"strings"

	"github.com/darilrt/bicc/internal/token"
)

// Positioned is implemented by every fatal error this translator can
// produce (lexer.Error, parser.ParseError, emitter.Error): each already
// carries a token.Position and a bare message distinct from Error()'s
// "line:col: message" text, so Format can lay out its own file:line:col
// header without parsing one back out of the other.
type Positioned interface {
	error
	Position() token.Position
	Message() string
}

// Diagnostic pairs a fatal error with the source text and file name needed
// to render it.
type Diagnostic struct {
	Err    Positioned
	Source string
	File   string
}

// New builds a Diagnostic from a fatal error and the source it was found
// in.
func New(err Positioned, source, file string) *Diagnostic {
	return &Diagnostic{Err: err, Source: source, File: file}
}

// Format renders the diagnostic as a file header, the offending source
// line, a caret under the exact column, and the error message —
// the same four-part shape as a CompilerError.Format.
func (d *Diagnostic) Format() string {
	pos := d.Err.Position()
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s:%d:%d: %s\n", d.File, pos.Line, pos.Col, d.Err.Message())

	if line := sourceLine(d.Source, pos.Line); line != "" {
		lineNum := fmt.Sprintf("%4d | ", pos.Line)
		sb.WriteString(lineNum)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(lineNum)+pos.Col-1))
		sb.WriteString("^\n")
	}

	return sb.String()
}

// sourceLine returns the 1-indexed line from source, or "" if out of
// range.
func sourceLine(source string, n int) string {
	if source == "" || n < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if n > len(lines) {
		return ""
	}
	return lines[n-1]
}

// Exit prints the diagnostic to stderr and terminates the process with a
// non-zero status, per spec's "process exits with a non-zero status after
// the first fatal error; no recovery is attempted."
func Exit(err Positioned, source, file string) {
	fmt.Fprint(os.Stderr, New(err, source, file).Format())
	os.Exit(1)
}
