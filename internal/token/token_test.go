package token_test

import (
	"testing"

	"github.com/darilrt/bicc/internal/token"
	"github.com/stretchr/testify/require"
)

func TestTokenPos(t *testing.T) {
	tok := token.Token{Type: token.IDENT, Literal: "test", Line: 5, Col: 10}

	pos := tok.Pos()
	require.Equal(t, 5, pos.Line)
	require.Equal(t, 10, pos.Col)
}

func TestTokenString(t *testing.T) {
	tests := []struct {
		tok      token.Token
		expected string
	}{
		{token.Token{Type: token.EOF}, `EOF("")@0:0`},
		{token.Token{Type: token.IDENT, Literal: "foo"}, `IDENT("foo")@0:0`},
		{token.Token{Type: token.TYPE, Literal: "int"}, `TYPE("int")@0:0`},
		{token.Token{Type: token.INTEGER, Literal: "42"}, `INTEGER("42")@0:0`},
		{token.Token{Type: token.RSHIFT, Literal: ">>"}, `RSHIFT(">>")@0:0`},
	}

	for _, tt := range tests {
		require.Equal(t, tt.expected, tt.tok.String())
	}
}

func TestTypeStringKnownAndUnknown(t *testing.T) {
	require.Equal(t, "IDENT", token.IDENT.String())
	unknown := token.Type(10_000)
	require.Equal(t, "Type(10000)", unknown.String())
}

func TestKeywordsExcludePrimitiveTypesAndTypeKeyword(t *testing.T) {
	_, ok := token.Keywords["type"]
	require.False(t, ok, "'type' must lex as TYPE_KEY, not via the Keywords table")

	_, ok = token.Keywords["int"]
	require.False(t, ok, "primitive type names must not appear in Keywords")

	require.Equal(t, token.LET, token.Keywords["let"])
}

func TestPrimitiveTypes(t *testing.T) {
	for _, name := range []string{"int", "float", "bool", "char", "void", "double"} {
		require.True(t, token.PrimitiveTypes[name], "expected %q to be a primitive type", name)
	}
	require.False(t, token.PrimitiveTypes["string"], "'string' is not a primitive type in this language")
}

func TestPosition(t *testing.T) {
	pos := token.Position{Line: 42, Col: 10}
	require.Equal(t, "42:10", pos.String())
}
