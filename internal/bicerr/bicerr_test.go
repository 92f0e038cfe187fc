package bicerr_test

import (
	"testing"

	"github.com/darilrt/bicc/internal/bicerr"
	"github.com/darilrt/bicc/internal/token"
	"github.com/stretchr/testify/require"
)

type fakeError struct {
	pos token.Position
	msg string
}

func (e *fakeError) Error() string            { return e.pos.String() + ": " + e.msg }
func (e *fakeError) Position() token.Position { return e.pos }
func (e *fakeError) Message() string          { return e.msg }

func TestFormatIncludesFileLineColumnAndMessage(t *testing.T) {
	err := &fakeError{pos: token.Position{Line: 2, Col: 5}, msg: "expected ;, found }"}
	d := bicerr.New(err, "let x : int = 3\nlet y : int\n", "example.bic")

	got := d.Format()

	require.Contains(t, got, "example.bic:2:5:")
	require.Contains(t, got, "expected ;, found }")
	require.Contains(t, got, "let y : int")
	require.Contains(t, got, "^")
}

func TestFormatOmitsSourceLineWhenOutOfRange(t *testing.T) {
	err := &fakeError{pos: token.Position{Line: 99, Col: 1}, msg: "unexpected end of file"}
	d := bicerr.New(err, "let x : int = 3;\n", "example.bic")

	got := d.Format()

	require.Contains(t, got, "example.bic:99:1: unexpected end of file")
	require.NotContains(t, got, "^")
}

func TestFormatCaretAlignsWithColumn(t *testing.T) {
	err := &fakeError{pos: token.Position{Line: 1, Col: 1}, msg: "unexpected character"}
	d := bicerr.New(err, "?garbage\n", "example.bic")

	got := d.Format()
	require.Contains(t, got, "?garbage")
	require.Contains(t, got, "^")
}
