package parser

import (
	"github.com/darilrt/bicc/internal/lexer"
	"github.com/darilrt/bicc/internal/token"
)

// streamState is a snapshot of everything a TokenStream needs to rewind:
// the underlying scanner position, any pending synthetic token, and the
// current template-mode nesting depth.
type streamState struct {
	scanner  lexer.State
	pending  *token.Token
	tmplDepth int
}

// tokenStream adapts a lexer.Scanner into the parser's view of the input:
// a stream that can be peeked, advanced, and rewound, and that knows how to
// split a ">>" into two ">" tokens while inside a template argument list.
//
// The split is implemented as a one-token pushback rather than by mutating
// the scanner's own position (the way the reference parser this is
// grounded on does it): Next reads one raw token from the scanner, and if
// it needs to split an RSHIFT it returns the first ">" immediately and
// stashes a synthetic second ">" in pending for the following call.
type tokenStream struct {
	sc    *lexer.Scanner
	pending *token.Token
	tmplDepth int
	err   error
}

func newTokenStream(sc *lexer.Scanner) *tokenStream {
	return &tokenStream{sc: sc}
}

// enterTemplate and exitTemplate bracket the parsing of a generic argument
// or parameter list. Nesting (Vec<Map<K, V>>) is handled the same way the
// reference implementation handles it: any RSHIFT seen while the depth is
// positive splits, regardless of how deep.
func (ts *tokenStream) enterTemplate() { ts.tmplDepth++ }
func (ts *tokenStream) exitTemplate()  { ts.tmplDepth-- }

func (ts *tokenStream) inTemplate() bool { return ts.tmplDepth > 0 }

// Err returns the first fatal scan error the stream has encountered, if
// any. A scan error can never be captured by speculative(): it always
// terminates the parse.
func (ts *tokenStream) Err() error { return ts.err }

// Next returns the next token and advances past it.
func (ts *tokenStream) Next() token.Token {
	if ts.pending != nil {
		t := *ts.pending
		ts.pending = nil
		return t
	}
	tok, err := ts.sc.Next()
	if err != nil {
		if ts.err == nil {
			ts.err = err
		}
		return token.Token{Type: token.EOF}
	}
	if ts.inTemplate() && tok.Type == token.RSHIFT {
		first := token.Token{Type: token.GT, Literal: ">", Line: tok.Line, Col: tok.Col}
		second := token.Token{Type: token.GT, Literal: ">", Line: tok.Line, Col: tok.Col + 1}
		ts.pending = &second
		return first
	}
	return tok
}

// Peek returns the next token without consuming it.
func (ts *tokenStream) Peek() token.Token {
	savedPending := ts.pending
	snap := ts.sc.Snapshot()
	tok := ts.Next()
	ts.pending = savedPending
	ts.sc.Restore(snap)
	return tok
}

func (ts *tokenStream) IsEOF() bool {
	return ts.Peek().Type == token.EOF
}

func (ts *tokenStream) Pos() token.Position {
	return ts.Peek().Pos()
}

// snapshot captures enough state for restore to replay the stream exactly,
// including any in-flight ">>" split and the template-depth counter —
// everything speculative() needs to back out of a failed trial parse.
func (ts *tokenStream) snapshot() streamState {
	return streamState{scanner: ts.sc.Snapshot(), pending: ts.pending, tmplDepth: ts.tmplDepth}
}

func (ts *tokenStream) restore(st streamState) {
	ts.sc.Restore(st.scanner)
	ts.pending = st.pending
	ts.tmplDepth = st.tmplDepth
}
