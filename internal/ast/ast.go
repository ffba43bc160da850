// Package ast defines the AST node types shared by the Blueprint and
// Expanded stages of the cx pipeline (see SPEC_FULL.md §4.2). A single node
// set is used for both: "Expanded" is the run-time invariant that a tree
// produced by the meta-processor contains none of TypeofExpr, EmbedExpr,
// MetaStmt, StructDecl, or an FnDecl whose FuncType is MetaOnly.
package ast

import (
	"strings"

	"github.com/brendancron/cx/internal/token"
)

// Node is the base interface implemented by every AST node.
type Node interface {
	TokenLiteral() string
	String() string
	Pos() token.Position
}

// Expression is a node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is a node that performs an action.
type Statement interface {
	Node
	statementNode()
}

// Program is the root of a parsed source file.
type Program struct {
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) Pos() token.Position {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return token.Position{Line: 1, Column: 1}
}

func (p *Program) String() string {
	var sb strings.Builder
	for _, s := range p.Statements {
		sb.WriteString(s.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

// FuncType tags a function declaration's visibility across the meta and
// runtime worlds (spec.md §9's design note).
type FuncType int

const (
	Normal FuncType = iota // runtime only
	Meta                   // meta-execution only
	Pure                   // both
)

func (f FuncType) String() string {
	switch f {
	case Normal:
		return "Normal"
	case Meta:
		return "Meta"
	case Pure:
		return "Pure"
	default:
		return "FuncType(?)"
	}
}

// CanRunAtMeta reports whether a function of this type may be defined (and
// invoked) in the meta environment.
func (f FuncType) CanRunAtMeta() bool { return f == Meta || f == Pure }

// CanRunAtRuntime reports whether a function of this type is emitted into
// the Expanded AST for tree-walking execution.
func (f FuncType) CanRunAtRuntime() bool { return f == Normal || f == Pure }
