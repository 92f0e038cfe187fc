// Package emitter walks a parsed Program and partitions it across two
// string buffers, a header and a source unit, the way the reference
// translator's CodeGenerator does: each top-level statement kind has a
// fixed home (header, source, both, or neither), and a class body is
// walked recursively with the same rules, accumulating a "::"-qualified
// parent name as it descends.
//
// Unlike the scanner and parser, the emitter has no capturable-error mode:
// every error it returns is fatal, including the one case the reference
// generator modeled as a structural invariant violation (an unexpected
// statement kind inside a class body) rather than a recoverable condition.
package emitter

import (
	"strings"

	"github.com/darilrt/bicc/internal/ast"
	"github.com/darilrt/bicc/internal/token"
)

// Error reports a structural violation found while emitting: a node that
// has no home in the header/source partition the target language's
// translation-unit model requires.
type Error struct {
	Pos  token.Position
	Text string
}

func (e *Error) Error() string { return e.Pos.String() + ": " + e.Text }

// Position satisfies the same interface bicerr uses to format scanner and
// parser fatal errors, so an emission failure gets the identical
// file:line:col + caret treatment.
func (e *Error) Position() token.Position { return e.Pos }

// Message returns the description alone, without the leading position
// that Error() prepends — bicerr lays that out itself.
func (e *Error) Message() string { return e.Text }

func errAt(pos token.Position, message string) error {
	return &Error{Pos: pos, Text: message}
}

// Result holds the two output buffers produced by Emit.
type Result struct {
	Header string
	Source string
}

// Emitter partitions one Program into a Result. It is single-use: create
// one per translation unit.
type Emitter struct {
	header strings.Builder
	source strings.Builder
}

// New creates an Emitter for one translation unit.
func New() *Emitter {
	return &Emitter{}
}

// Emit walks prog's top-level statements and returns the partitioned
// header/source text, or the first structural error encountered. headerName
// is the header file's own name (e.g. "shapes.hpp"), written into the
// source buffer's leading #include.
func (e *Emitter) Emit(prog *ast.Program, headerName string) (Result, error) {
	e.header.WriteString("#pragma once\n")
	e.source.WriteString("#include \"" + headerName + "\"\n")

	for _, stmt := range prog.Statements {
		if err := e.emitTopLevel(stmt); err != nil {
			return Result{}, err
		}
	}
	return Result{Header: e.header.String(), Source: e.source.String()}, nil
}

// emitTopLevel dispatches one top-level statement per spec.md §4.4. A bare
// top-level VarDecl, which the reference generator's own dispatch silently
// drops, is a structural error here instead, since a translator that can't
// place a declaration anywhere should say so rather than discard it
// silently. Any other node kind not named there is ignored.
func (e *Emitter) emitTopLevel(stmt *ast.Statement) error {
	switch node := stmt.Inner.(type) {
	case nil:
		return nil

	case *ast.RawLiteral:
		e.source.WriteString(node.Render(0) + "\n")

	case *ast.Import:
		e.header.WriteString(node.Render(0) + "\n")
		e.source.WriteString(node.Render(0) + "\n")

	case *ast.EnumDecl:
		e.header.WriteString(node.Render(0) + "\n")

	case *ast.ClassDecl:
		return e.emitClass(node, "", 0)

	case *ast.FuncDecl:
		return e.emitFunc(node, "", 0)

	case *ast.VarDecl:
		return errAt(stmt.Pos(), "top-level variable declaration cannot be emitted")
	}
	return nil
}

// emitFunc dispatches one function per spec.md §4.4: a templated function
// is emitted whole into the header (the target language requires a
// template body be visible at every instantiation site); an ordinary
// function gets a header declaration plus an out-of-line source
// definition, qualified by parent when it's a class method.
func (e *Emitter) emitFunc(fn *ast.FuncDecl, parent string, depth int) error {
	if fn.Template != nil {
		e.header.WriteString(fn.RenderAllData(depth) + "\n")
		return nil
	}
	if h := fn.RenderHeader(depth, parent); h != "" {
		e.header.WriteString(h + "\n")
	}
	e.source.WriteString(fn.RenderSource(depth, parent) + "\n")
	return nil
}

// emitOperator mirrors emitFunc for operator overloads. Operators have no
// templated form in this grammar, so there is no all-in-header case to
// mirror.
func (e *Emitter) emitOperator(op *ast.OperatorDecl, parent string, depth int) error {
	e.header.WriteString(op.RenderHeader(depth) + "\n")
	e.source.WriteString(op.RenderSource(depth, parent) + "\n")
	return nil
}

// emitClass walks a class body per spec.md §4.4: function members recurse
// through emitFunc/emitOperator with the class name appended to the
// qualifier path, nested classes recurse through emitClass the same way,
// variable members and nested enums are declared in the header, raw
// literals pass straight into the header, and anything else is a
// structural error.
func (e *Emitter) emitClass(class *ast.ClassDecl, parent string, depth int) error {
	class.Normalize()
	e.header.WriteString(class.Render(depth) + " {\n")

	name := class.Name.Name
	qualified := name
	if parent != "" {
		qualified = parent + "::" + name
	}

	for _, stmt := range class.Body.Stmts {
		if err := e.emitClassMember(stmt, qualified, depth); err != nil {
			return err
		}
	}

	e.header.WriteString("};\n")
	return nil
}

func (e *Emitter) emitClassMember(stmt *ast.Statement, qualified string, depth int) error {
	switch member := stmt.Inner.(type) {
	case nil:
		return nil

	case *ast.FuncDecl:
		return e.emitFunc(member, qualified, depth)

	case *ast.OperatorDecl:
		return e.emitOperator(member, qualified, depth)

	case *ast.ClassDecl:
		return e.emitClass(member, qualified, depth)

	case *ast.VarDecl:
		e.header.WriteString(member.Render(depth) + ";\n")

	case *ast.EnumDecl:
		e.header.WriteString(member.Render(depth) + ";\n")

	case *ast.RawLiteral:
		e.header.WriteString(member.Render(depth) + "\n")

	default:
		return errAt(stmt.Pos(), "invalid statement in class body")
	}
	return nil
}
