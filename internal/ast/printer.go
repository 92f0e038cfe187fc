// Package ast: this file implements a debug dump of the tree. The CLI does
// not call it. It walks the tree structure itself rather than relying on
// Render for shape (Render only supplies each node's one-line summary), so
// tree shape stays visible even when Render output looks wrong.
package ast

import (
	"fmt"
	"strings"
)

// PrettyPrint returns an indented, one-node-per-line dump of n and its
// children.
func PrettyPrint(n Node) string {
	var sb strings.Builder
	dump(&sb, n, 0)
	return sb.String()
}

func dump(sb *strings.Builder, n Node, indent int) {
	if n == nil {
		return
	}
	prefix := strings.Repeat("  ", indent)
	sb.WriteString(prefix)
	fmt.Fprintf(sb, "%T %q\n", n, summarize(n))

	switch node := n.(type) {
	case *Program:
		for _, s := range node.Statements {
			dump(sb, s, indent+1)
		}
	case *Statement:
		dump(sb, node.Inner, indent+1)
	case *Block:
		for _, s := range node.Stmts {
			dump(sb, s, indent+1)
		}
	case *If:
		dump(sb, node.Cond, indent+1)
		dump(sb, node.Body, indent+1)
		for _, e := range node.Elifs {
			dump(sb, e.Cond, indent+1)
			dump(sb, e.Body, indent+1)
		}
		dump(sb, node.Else, indent+1)
	case *While:
		dump(sb, node.Cond, indent+1)
		dump(sb, node.Body, indent+1)
	case *For:
		dump(sb, node.Binding, indent+1)
		dump(sb, node.Iterable, indent+1)
		dump(sb, node.Body, indent+1)
	case *Return:
		dump(sb, node.Value, indent+1)
	case *VarDecl:
		dump(sb, node.TypeSpec, indent+1)
		dump(sb, node.Value, indent+1)
	case *FuncDecl:
		for _, p := range node.Params {
			dump(sb, p, indent+1)
		}
		dump(sb, node.ReturnType, indent+1)
		dump(sb, node.Body, indent+1)
	case *OperatorDecl:
		for _, p := range node.Params {
			dump(sb, p, indent+1)
		}
		dump(sb, node.ReturnType, indent+1)
		dump(sb, node.Body, indent+1)
	case *ClassDecl:
		dump(sb, node.Body, indent+1)
	case *EnumDecl:
		for _, k := range node.Keys {
			dump(sb, k, indent+1)
		}
	case *BinOp:
		dump(sb, node.Left, indent+1)
		dump(sb, node.Right, indent+1)
	case *UnaryOp:
		dump(sb, node.Operand, indent+1)
	case *Call:
		dump(sb, node.Callee, indent+1)
		for _, a := range node.Args {
			dump(sb, a, indent+1)
		}
	case *Parenthesis:
		dump(sb, node.Inner, indent+1)
	case *IndexExpr:
		dump(sb, node.Target, indent+1)
		dump(sb, node.Index, indent+1)
	case *ObjectAccess:
		dump(sb, node.Right, indent+1)
	case *Array:
		for _, e := range node.Elems {
			dump(sb, e, indent+1)
		}
	}
}

// summarize renders a short one-line preview of a node for the dump; it
// intentionally reuses Render rather than keeping a parallel String()
// implementation per type.
func summarize(n Node) string {
	const maxLen = 60
	s := n.Render(0)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i] + "..."
	}
	if len(s) > maxLen {
		s = s[:maxLen] + "..."
	}
	return s
}
