package lexer

import "github.com/darilrt/bicc/internal/token"

// twoCharOperators lists every recognized two-character operator and
// delimiter, checked before falling back to a single-character match. Order
// does not matter; lookup is by exact two-rune key.
var twoCharOperators = map[string]token.Type{
	"==": token.EQ, "!=": token.NEQ, "<=": token.LTE, ">=": token.GTE,
	"+=": token.ADDEQ, "-=": token.SUBEQ, "*=": token.MULEQ, "/=": token.DIVEQ,
	"++": token.INC, "--": token.DEC, "&&": token.AND, "||": token.OR,
	"<<": token.LSHIFT, ">>": token.RSHIFT, "->": token.ARROW, "::": token.COLONCOLON,
	"/*": token.COMMENT_START, "*/": token.COMMENT_END,
	"%=": token.MODEQ, "&=": token.ANDEQ, "|=": token.OREQ, "^=": token.XOREQ,
}

// singleCharOperators lists every recognized single-character punctuator.
var singleCharOperators = map[rune]token.Type{
	'+': token.PLUS, '-': token.MINUS, '*': token.MUL, '/': token.FORWARDSLASH,
	'(': token.LPAREN, ')': token.RPAREN, '{': token.LBRACE, '}': token.RBRACE,
	'[': token.LBRACKET, ']': token.RBRACKET, ',': token.COMMA, '.': token.DOT,
	':': token.COLON, ';': token.SEMI, '=': token.ASSIGN, '<': token.LT, '>': token.GT,
	'&': token.AMP, '|': token.PIPE, '!': token.BANG, '?': token.QUESTION,
	'~': token.TILDE, '^': token.CARET, '%': token.MOD, '#': token.HASH,
	'@': token.AT, '$': token.DOLLAR, '`': token.BACKTICK, '\\': token.BACKSLASH,
}

func isSymbolRune(r rune) bool {
	_, ok := singleCharOperators[r]
	return ok
}
