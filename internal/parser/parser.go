// Package parser turns a token stream into a Program. It is a recursive
// descent parser: each grammar production is one method, precedence is
// expressed as a chain of calls from loosest to tightest binding, and the
// two ambiguous constructs in the grammar (a "<" that might open a template
// argument list instead of comparing, and an identifier-led statement that
// might be a function declaration instead of an expression) are resolved by
// trial parsing rather than lookahead tables.
//
// Parsing stops at the first fatal error: there is no error-recovery pass
// that resynchronizes on a statement boundary and keeps going, since a
// partially-recovered tree is of no use to a translator whose only job is
// to re-emit exactly what was written.
package parser

import (
	"fmt"

	"github.com/darilrt/bicc/internal/ast"
	"github.com/darilrt/bicc/internal/lexer"
	"github.com/darilrt/bicc/internal/token"
)

// ParseError reports a fatal parse failure with enough location
// information for the caller to print a caret diagnostic.
type ParseError struct {
	Pos  token.Position
	Text string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Text)
}

// Position reports where the parse failed, for bicerr's caret-pointing
// diagnostic.
func (e *ParseError) Position() token.Position { return e.Pos }

// Message returns the description alone, without the leading position
// that Error() prepends — bicerr lays that out itself.
func (e *ParseError) Message() string { return e.Text }

func errAt(pos token.Position, format string, args ...any) error {
	return &ParseError{Pos: pos, Text: fmt.Sprintf(format, args...)}
}

// Parser consumes a tokenStream and builds an AST. It holds no lookahead of
// its own beyond what the stream already buffers for the ">>" split.
type Parser struct {
	ts *tokenStream
}

// New creates a Parser over the given source text.
func New(src string) *Parser {
	return &Parser{ts: newTokenStream(lexer.New(src))}
}

// Parse runs the parser to completion and returns the resulting Program, or
// the first fatal error encountered.
func (p *Parser) Parse() (*ast.Program, error) {
	pos := p.ts.Pos()
	var stmts []*ast.Statement
	for !p.ts.IsEOF() {
		stmt, err := p.parseStatement(false)
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	if err := p.ts.Err(); err != nil {
		return nil, err
	}
	return ast.NewProgram(pos, stmts), nil
}

func (p *Parser) peek() token.Token { return p.ts.Peek() }
func (p *Parser) next() token.Token { return p.ts.Next() }

func (p *Parser) at(tt token.Type) bool { return p.peek().Type == tt }

// expect consumes the next token if it matches tt, otherwise reports a
// fatal error naming what was wanted and what was actually found.
func (p *Parser) expect(tt token.Type, want string) (token.Token, error) {
	tok := p.peek()
	if tok.Type != tt {
		return token.Token{}, errAt(tok.Pos(), "expected %s, found %s %q", want, tok.Type, tok.Literal)
	}
	return p.next(), nil
}

// speculative runs fn against a snapshot of the stream. If fn returns an
// error, the stream is rewound as though fn had never run and the error is
// returned to the caller to treat as a signal to fall back to another
// production — it is never itself fatal. If fn succeeds, its consumption
// of the stream is kept.
//
// This replaces the sync-token recovery strategy of the parser this
// package is grounded on: that parser resynchronized on error by skipping
// tokens until a statement boundary and continuing, which this translator
// cannot do (there is no later use for a tree built from a desynchronized
// parse). Here, backtracking is scoped to the grammar points that are
// genuinely ambiguous (a '<' after a name, a template argument that may be a
// type or a value, and an identifier-led statement), and any error outside
// of one is fatal.
func speculative[T any](p *Parser, fn func() (T, error)) (T, error) {
	snap := p.ts.snapshot()
	val, err := fn()
	if err != nil {
		p.ts.restore(snap)
		var zero T
		return zero, err
	}
	return val, nil
}
