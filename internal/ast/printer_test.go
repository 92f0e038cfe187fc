package ast_test

import (
	"strings"
	"testing"

	"github.com/darilrt/bicc/internal/ast"
	"github.com/darilrt/bicc/internal/token"
	"github.com/stretchr/testify/require"
)

var pos = token.Position{Line: 1, Col: 1}

func ident(name string) *ast.Identifier { return ast.NewIdentifier(pos, name) }

func TestRenderVarDecl(t *testing.T) {
	typ := ast.NewTypeNode(pos, ident("int"), false, nil, false)
	decl := ast.NewVarDecl(pos, ident("x"), typ, ast.NewInteger(pos, "3"), true, nil, false)

	require.Equal(t, "int x = 3", decl.Render(0))
}

func TestRenderVarDeclImmutable(t *testing.T) {
	typ := ast.NewTypeNode(pos, ident("int"), false, nil, false)
	decl := ast.NewVarDecl(pos, ident("x"), typ, nil, false, nil, false)

	require.Equal(t, "int const x", decl.Render(0))
}

func TestRenderClassWithMembers(t *testing.T) {
	xType := ast.NewTypeNode(pos, ident("int"), false, nil, false)
	xField := ast.NewVarDecl(pos, ident("x"), xType, nil, true, nil, false)
	body := ast.NewBlock(pos, []*ast.Statement{ast.NewStatement(pos, xField)})
	class := ast.NewClassDecl(pos, ident("Point"), body, nil, nil)

	require.Equal(t, "class Point", class.Render(0), "expected bare class header line")

	class.Normalize()
	require.Equal(t, ast.VisibilityProtected, xField.Visibility, "expected defaulted protected visibility")
}

func TestClassConstructorTagging(t *testing.T) {
	ctor := ast.NewFuncDecl(pos, ident("Point"), nil, nil, ast.NewBlock(pos, nil))
	body := ast.NewBlock(pos, []*ast.Statement{ast.NewStatement(pos, ctor)})
	class := ast.NewClassDecl(pos, ident("Point"), body, nil, nil)

	class.Normalize()
	require.Equal(t, ast.MethodConstructor, ctor.MethodKind, "expected member named after its class to become a constructor")
	require.Contains(t, ctor.RenderSource(0, "Point"), "Point::Point(", "expected qualified constructor definition")
}

func TestFuncDeclMainHeaderSuppressed(t *testing.T) {
	fn := ast.NewFuncDecl(pos, ident("main"), nil, nil, ast.NewBlock(pos, nil))
	require.Empty(t, fn.RenderHeader(0, ""), "expected free-standing main to render no header declaration")
}

func TestFuncDeclClassMethodNamedMainStillGetsHeader(t *testing.T) {
	fn := ast.NewFuncDecl(pos, ident("main"), nil, nil, ast.NewBlock(pos, nil))
	require.NotEmpty(t, fn.RenderHeader(0, "Game"), "expected a class method literally named main to still get a header declaration")
}

func TestFuncDeclNodiscard(t *testing.T) {
	intType := ast.NewTypeNode(pos, ident("int"), false, nil, false)
	fn := ast.NewFuncDecl(pos, ident("add"), nil, intType, ast.NewBlock(pos, nil))
	got := fn.RenderHeader(0, "")
	require.Contains(t, got, "[[nodiscard]]", "expected nodiscard on a non-void return type")
}

func TestFuncDeclVoidNoNodiscard(t *testing.T) {
	voidType := ast.NewTypeNode(pos, ident("void"), false, nil, false)
	fn := ast.NewFuncDecl(pos, ident("run"), nil, voidType, ast.NewBlock(pos, nil))
	got := fn.RenderHeader(0, "")
	require.NotContains(t, got, "nodiscard", "expected no nodiscard on void return")
}

func TestImportRewritesSourceSuffix(t *testing.T) {
	imp := ast.NewImport(pos, "utils.bic")
	require.Equal(t, `#include "utils.hpp"`, imp.Render(0))
}

func TestStatementSemicolonRules(t *testing.T) {
	ret := ast.NewStatement(pos, ast.NewReturn(pos, ast.NewInteger(pos, "1")))
	require.Equal(t, "return 1;", ret.Render(0), "expected trailing semicolon")

	block := ast.NewBlock(pos, nil)
	blockStmt := ast.NewStatement(pos, block)
	require.False(t, strings.HasSuffix(blockStmt.Render(0), ";"), "expected no trailing semicolon after a brace")

	raw := ast.NewStatement(pos, ast.NewRawLiteral(pos, "int x = 1;"))
	require.Equal(t, "int x = 1;", raw.Render(0), "expected raw literal passed through untouched")
}

func TestObjectAccessThisSpecialCase(t *testing.T) {
	access := ast.NewObjectAccess(pos, nil, true, ident("field"), false)
	require.Equal(t, "this->field", access.Render(0))
}

func TestNullRendersZero(t *testing.T) {
	require.Equal(t, "0", ast.NewNull(pos).Render(0))
}

func TestPrettyPrintWalksBlock(t *testing.T) {
	body := ast.NewBlock(pos, []*ast.Statement{
		ast.NewStatement(pos, ast.NewReturn(pos, ast.NewInteger(pos, "42"))),
	})
	fn := ast.NewFuncDecl(pos, ident("answer"), nil, nil, body)
	program := ast.NewProgram(pos, []*ast.Statement{ast.NewStatement(pos, fn)})

	out := ast.PrettyPrint(program)
	require.Contains(t, out, "FuncDecl", "expected dump to mention FuncDecl")
	require.Contains(t, out, "Return", "expected dump to mention Return")
}
