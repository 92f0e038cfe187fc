// Package lexer turns source text into a lazy stream of tokens. A Scanner
// holds no lookahead buffer of its own beyond what Peek needs: Next and Peek
// both resolve to the same recognition routine, and Peek is implemented by
// snapshotting, calling Next, and restoring.
package lexer

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/darilrt/bicc/internal/token"
)

// Error is returned for a character the scanner cannot classify into any
// token kind. It is always fatal: the scanner has no notion of a
// recoverable lexical error.
type Error struct {
	Pos token.Position
	Ch  rune
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: unexpected character %q", e.Pos, e.Ch)
}

// Position reports where the bad character was found, for bicerr's
// caret-pointing diagnostic.
func (e *Error) Position() token.Position { return e.Pos }

// Message returns the description alone, without the leading position
// that Error() prepends — bicerr lays that out itself.
func (e *Error) Message() string {
	return fmt.Sprintf("unexpected character %q", e.Ch)
}

// State is an opaque snapshot of scan position, returned by Snapshot and
// consumed by Restore. It is cheap to copy and holds no references into the
// scanner's buffer.
type State struct {
	pos, readPos int
	line, col    int
	ch           rune
}

// Scanner reads a fixed, fully-buffered input (the whole source file) and
// produces one token at a time. Column tracking is rune-based, not
// byte-based, so multi-byte identifiers report sane positions.
type Scanner struct {
	src    []rune
	pos    int // index of ch
	readPos int // index of the rune after ch
	ch     rune
	line   int
	col    int
}

// New creates a Scanner over the given source text.
func New(src string) *Scanner {
	s := &Scanner{src: []rune(src), line: 1, col: 0}
	s.advance()
	return s
}

func (s *Scanner) advance() {
	if s.readPos >= len(s.src) {
		s.pos = s.readPos
		s.ch = 0
		s.readPos++
		return
	}
	s.pos = s.readPos
	s.ch = s.src[s.readPos]
	s.readPos++
	s.col++
}

func (s *Scanner) atEOF() bool {
	return s.pos >= len(s.src)
}

// peekRune looks n runes ahead of the current one (n=0 is the rune after
// ch) without consuming anything.
func (s *Scanner) peekRune(n int) rune {
	idx := s.readPos + n
	if idx >= len(s.src) {
		return 0
	}
	return s.src[idx]
}

// Snapshot captures the scanner's current position for later Restore.
func (s *Scanner) Snapshot() State {
	return State{pos: s.pos, readPos: s.readPos, line: s.line, col: s.col, ch: s.ch}
}

// Restore rewinds the scanner to a previously captured State.
func (s *Scanner) Restore(st State) {
	s.pos, s.readPos, s.line, s.col, s.ch = st.pos, st.readPos, st.line, st.col, st.ch
}

// Peek returns the next token without advancing the scanner's public
// position: it snapshots, scans, and restores.
func (s *Scanner) Peek() (token.Token, error) {
	saved := s.Snapshot()
	tok, err := s.Next()
	s.Restore(saved)
	return tok, err
}

func (s *Scanner) skipWhitespace() {
	for !s.atEOF() && unicode.IsSpace(s.ch) {
		if s.ch == '\n' {
			s.line++
			s.col = 0
		}
		s.advance()
	}
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentPart(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func (s *Scanner) readIdentifier() string {
	var b strings.Builder
	for !s.atEOF() && isIdentPart(s.ch) {
		b.WriteRune(s.ch)
		s.advance()
	}
	return b.String()
}

func (s *Scanner) readDigits() string {
	var b strings.Builder
	for !s.atEOF() && unicode.IsDigit(s.ch) {
		b.WriteRune(s.ch)
		s.advance()
	}
	return b.String()
}

// readEscapable reads characters up to (but not past) the closing quote,
// copying backslash-escape sequences through verbatim rather than
// interpreting them — the emitted target-language source keeps the escape
// exactly as written.
func (s *Scanner) readEscapable(quote rune) string {
	var b strings.Builder
	for !s.atEOF() && s.ch != quote {
		if s.ch == '\\' {
			b.WriteRune(s.ch)
			s.advance()
			if s.atEOF() {
				break
			}
		}
		b.WriteRune(s.ch)
		s.advance()
	}
	s.advance() // consume closing quote
	return b.String()
}

func (s *Scanner) make(t token.Type, lit string, pos token.Position) token.Token {
	return token.Token{Type: t, Literal: lit, Line: pos.Line, Col: pos.Col}
}

func (s *Scanner) here() token.Position {
	return token.Position{Line: s.line, Col: s.col}
}

// Next scans and returns the next token, advancing the scanner past it.
func (s *Scanner) Next() (token.Token, error) {
	for {
		s.skipWhitespace()
		if s.atEOF() {
			return s.make(token.EOF, "", s.here()), nil
		}

		pos := s.here()

		switch {
		case unicode.IsDigit(s.ch):
			return s.scanNumber(pos), nil

		case isIdentStart(s.ch):
			return s.scanIdentifier(pos), nil

		case s.ch == '"':
			s.advance()
			return s.make(token.STRING, s.readEscapable('"'), pos), nil

		case s.ch == '\'':
			s.advance()
			return s.make(token.CHAR, s.readEscapable('\''), pos), nil

		case s.ch == '.' && s.peekRune(0) == '.' && s.peekRune(1) == '.':
			s.advance()
			s.advance()
			s.advance()
			return s.make(token.ELLIPSIS, "...", pos), nil

		case isSymbolRune(s.ch):
			tok, isComment, err := s.scanSymbol(pos)
			if err != nil {
				return token.Token{}, err
			}
			if isComment {
				continue
			}
			return tok, nil
		}

		return token.Token{}, &Error{Pos: pos, Ch: s.ch}
	}
}

func (s *Scanner) scanNumber(pos token.Position) token.Token {
	num := s.readDigits()
	if s.ch == '.' && unicode.IsDigit(s.peekRune(0)) {
		s.advance()
		num += "." + s.readDigits()
		return s.make(token.FLOAT, num, pos)
	}
	return s.make(token.INTEGER, num, pos)
}

func (s *Scanner) scanIdentifier(pos token.Position) token.Token {
	ident := s.readIdentifier()

	switch ident {
	case "true", "false":
		return s.make(token.BOOLEAN, ident, pos)
	case "type":
		return s.make(token.TYPE_KEY, ident, pos)
	}
	if token.PrimitiveTypes[ident] {
		return s.make(token.TYPE, ident, pos)
	}
	if kw, ok := token.Keywords[ident]; ok {
		return s.make(kw, ident, pos)
	}
	return s.make(token.IDENT, ident, pos)
}

// scanSymbol handles everything reachable only through isSymbolRune: two-
// character operators (tried first, greedily), the "//" / "//:" line
// comment, and single-character punctuators. It returns isComment=true when
// the call consumed a line comment and produced no token, so the caller's
// loop should scan again.
func (s *Scanner) scanSymbol(pos token.Position) (tok token.Token, isComment bool, err error) {
	two := string(s.ch) + string(s.peekRune(0))

	if two == "//" {
		return s.scanLineComment(pos)
	}

	if t, ok := twoCharOperators[two]; ok {
		s.advance()
		s.advance()
		return s.make(t, two, pos), false, nil
	}

	t := singleCharOperators[s.ch]
	lit := string(s.ch)
	s.advance()
	return s.make(t, lit, pos), false, nil
}

// scanLineComment consumes through end-of-line. A comment beginning "//:"
// is not discarded: the rest of the line is carried as a raw
// target-language literal (CPPLIT) instead of being thrown away.
func (s *Scanner) scanLineComment(pos token.Position) (token.Token, bool, error) {
	var b strings.Builder
	for !s.atEOF() && s.ch != '\n' {
		b.WriteRune(s.ch)
		s.advance()
	}
	comment := b.String()
	if strings.HasPrefix(comment, "//:") {
		return s.make(token.CPPLIT, strings.TrimPrefix(comment, "//:"), pos), false, nil
	}
	return token.Token{}, true, nil
}
