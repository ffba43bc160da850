package ast

import (
	"strconv"
	"strings"

	"github.com/brendancron/cx/internal/token"
)

// IntLiteral is an integer literal expression.
type IntLiteral struct {
	Token token.Token
	Value int64
}

func (n *IntLiteral) expressionNode()           {}
func (n *IntLiteral) TokenLiteral() string      { return n.Token.Literal }
func (n *IntLiteral) Pos() token.Position       { return n.Token.Pos }
func (n *IntLiteral) String() string            { return strconv.FormatInt(n.Value, 10) }

// StringLiteral is a string literal expression.
type StringLiteral struct {
	Token token.Token
	Value string
}

func (n *StringLiteral) expressionNode()      {}
func (n *StringLiteral) TokenLiteral() string { return n.Token.Literal }
func (n *StringLiteral) Pos() token.Position  { return n.Token.Pos }
func (n *StringLiteral) String() string       { return strconv.Quote(n.Value) }

// BoolLiteral is a boolean literal expression.
type BoolLiteral struct {
	Token token.Token
	Value bool
}

func (n *BoolLiteral) expressionNode()      {}
func (n *BoolLiteral) TokenLiteral() string { return n.Token.Literal }
func (n *BoolLiteral) Pos() token.Position  { return n.Token.Pos }
func (n *BoolLiteral) String() string {
	if n.Value {
		return "true"
	}
	return "false"
}

// Variable is a reference to a bound name.
type Variable struct {
	Token token.Token
	Name  string
}

func (n *Variable) expressionNode()      {}
func (n *Variable) TokenLiteral() string { return n.Token.Literal }
func (n *Variable) Pos() token.Position  { return n.Token.Pos }
func (n *Variable) String() string       { return n.Name }

// ListLiteral is a `[e1, e2, ...]` expression.
type ListLiteral struct {
	Token    token.Token // the '['
	Elements []Expression
}

func (n *ListLiteral) expressionNode()      {}
func (n *ListLiteral) TokenLiteral() string { return n.Token.Literal }
func (n *ListLiteral) Pos() token.Position  { return n.Token.Pos }
func (n *ListLiteral) String() string {
	parts := make([]string, len(n.Elements))
	for i, e := range n.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// StructField is one `name: expr` pair inside a StructLiteral.
type StructField struct {
	Name  string
	Value Expression
}

// StructLiteral is a `TypeName { field: expr, ... }` expression.
type StructLiteral struct {
	Token    token.Token // the type name identifier
	TypeName string
	Fields   []StructField
}

func (n *StructLiteral) expressionNode()      {}
func (n *StructLiteral) TokenLiteral() string { return n.Token.Literal }
func (n *StructLiteral) Pos() token.Position  { return n.Token.Pos }
func (n *StructLiteral) String() string {
	parts := make([]string, len(n.Fields))
	for i, f := range n.Fields {
		parts[i] = f.Name + ": " + f.Value.String()
	}
	return n.TypeName + " { " + strings.Join(parts, ", ") + " }"
}

// Call is a `callee(args...)` expression. The callee is always a bare
// identifier (spec.md §3).
type Call struct {
	Token  token.Token // the callee identifier token
	Callee string
	Args   []Expression
}

func (n *Call) expressionNode()      {}
func (n *Call) TokenLiteral() string { return n.Token.Literal }
func (n *Call) Pos() token.Position  { return n.Token.Pos }
func (n *Call) String() string {
	parts := make([]string, len(n.Args))
	for i, a := range n.Args {
		parts[i] = a.String()
	}
	return n.Callee + "(" + strings.Join(parts, ", ") + ")"
}

// BinaryOp is one of `+ - * / ==`.
type BinaryOp struct {
	Token    token.Token // the operator token
	Left     Expression
	Operator string
	Right    Expression
}

func (n *BinaryOp) expressionNode()      {}
func (n *BinaryOp) TokenLiteral() string { return n.Token.Literal }
func (n *BinaryOp) Pos() token.Position  { return n.Token.Pos }
func (n *BinaryOp) String() string {
	return "(" + n.Left.String() + " " + n.Operator + " " + n.Right.String() + ")"
}

// TypeofExpr is `typeof(Ident)` — Blueprint-only, resolved during
// meta-processing into a StringLiteral.
type TypeofExpr struct {
	Token token.Token
	Name  string
}

func (n *TypeofExpr) expressionNode()      {}
func (n *TypeofExpr) TokenLiteral() string { return n.Token.Literal }
func (n *TypeofExpr) Pos() token.Position  { return n.Token.Pos }
func (n *TypeofExpr) String() string       { return "typeof(" + n.Name + ")" }

// EmbedExpr is `embed("path")` — Blueprint-only, resolved during
// meta-processing into a StringLiteral.
type EmbedExpr struct {
	Token token.Token
	Path  string
}

func (n *EmbedExpr) expressionNode()      {}
func (n *EmbedExpr) TokenLiteral() string { return n.Token.Literal }
func (n *EmbedExpr) Pos() token.Position  { return n.Token.Pos }
func (n *EmbedExpr) String() string       { return "embed(" + strconv.Quote(n.Path) + ")" }
