package ast

import (
	"strings"

	"github.com/brendancron/cx/internal/token"
)

// ExprStmt is an expression evaluated for its side effect.
type ExprStmt struct {
	Token token.Token
	Expr  Expression
}

func (n *ExprStmt) statementNode()      {}
func (n *ExprStmt) TokenLiteral() string { return n.Token.Literal }
func (n *ExprStmt) Pos() token.Position  { return n.Token.Pos }
func (n *ExprStmt) String() string       { return n.Expr.String() + ";" }

// VarStmt is `var name = expr;`.
type VarStmt struct {
	Token token.Token
	Name  string
	Value Expression
}

func (n *VarStmt) statementNode()      {}
func (n *VarStmt) TokenLiteral() string { return n.Token.Literal }
func (n *VarStmt) Pos() token.Position  { return n.Token.Pos }
func (n *VarStmt) String() string {
	return "var " + n.Name + " = " + n.Value.String() + ";"
}

// Assignment is `name = expr;` — distinct from VarStmt per spec.md's Gen
// output (generated code assigns into already-declared names) even though
// both currently define in the current scope (spec.md §9 open question).
type Assignment struct {
	Token token.Token
	Name  string
	Value Expression
}

func (n *Assignment) statementNode()      {}
func (n *Assignment) TokenLiteral() string { return n.Token.Literal }
func (n *Assignment) Pos() token.Position  { return n.Token.Pos }
func (n *Assignment) String() string {
	return n.Name + " = " + n.Value.String() + ";"
}

// PrintStmt is `print(expr);`.
type PrintStmt struct {
	Token token.Token
	Value Expression
}

func (n *PrintStmt) statementNode()      {}
func (n *PrintStmt) TokenLiteral() string { return n.Token.Literal }
func (n *PrintStmt) Pos() token.Position  { return n.Token.Pos }
func (n *PrintStmt) String() string {
	return "print(" + n.Value.String() + ");"
}

// Block is a `{ ... }` statement sequence.
type Block struct {
	Token      token.Token // the '{'
	Statements []Statement
}

func (n *Block) statementNode()      {}
func (n *Block) TokenLiteral() string { return n.Token.Literal }
func (n *Block) Pos() token.Position  { return n.Token.Pos }
func (n *Block) String() string {
	var sb strings.Builder
	sb.WriteString("{\n")
	for _, s := range n.Statements {
		sb.WriteString("  " + strings.ReplaceAll(s.String(), "\n", "\n  ") + "\n")
	}
	sb.WriteString("}")
	return sb.String()
}

// IfStmt is `if (cond) { ... } else ...`. Else is nil when absent; it may
// hold either a Block or (for `else if`) a nested IfStmt, per spec.md §4.2's
// chaining rule.
type IfStmt struct {
	Token     token.Token
	Cond      Expression
	Then      *Block
	Else      Statement
}

func (n *IfStmt) statementNode()      {}
func (n *IfStmt) TokenLiteral() string { return n.Token.Literal }
func (n *IfStmt) Pos() token.Position  { return n.Token.Pos }
func (n *IfStmt) String() string {
	s := "if (" + n.Cond.String() + ") " + n.Then.String()
	if n.Else != nil {
		s += " else " + n.Else.String()
	}
	return s
}

// ForStmt is `for (name in iterable) { ... }`.
type ForStmt struct {
	Token    token.Token
	Var      string
	Iterable Expression
	Body     *Block
}

func (n *ForStmt) statementNode()      {}
func (n *ForStmt) TokenLiteral() string { return n.Token.Literal }
func (n *ForStmt) Pos() token.Position  { return n.Token.Pos }
func (n *ForStmt) String() string {
	return "for (" + n.Var + " in " + n.Iterable.String() + ") " + n.Body.String()
}

// Param is one function parameter name.
type Param struct {
	Name string
}

// FnDecl is a function declaration. FuncType selects its visibility across
// the meta/runtime worlds (spec.md §9).
type FnDecl struct {
	Token    token.Token
	Name     string
	FuncType FuncType
	Params   []Param
	Body     *Block
}

func (n *FnDecl) statementNode()      {}
func (n *FnDecl) TokenLiteral() string { return n.Token.Literal }
func (n *FnDecl) Pos() token.Position  { return n.Token.Pos }
func (n *FnDecl) String() string {
	names := make([]string, len(n.Params))
	for i, p := range n.Params {
		names[i] = p.Name
	}
	prefix := ""
	if n.FuncType == Meta {
		prefix = "meta "
	}
	return prefix + "fn " + n.Name + "(" + strings.Join(names, ", ") + ") " + n.Body.String()
}

// StructFieldDecl is one `name: type` entry in a struct declaration.
type StructFieldDecl struct {
	Name string
	Type string
}

// StructDecl is `struct Name { field: type; ... }` — Blueprint-only; it
// never appears in the Expanded AST (spec.md §4.3.C).
type StructDecl struct {
	Token  token.Token
	Name   string
	Fields []StructFieldDecl
}

func (n *StructDecl) statementNode()      {}
func (n *StructDecl) TokenLiteral() string { return n.Token.Literal }
func (n *StructDecl) Pos() token.Position  { return n.Token.Pos }
func (n *StructDecl) String() string {
	parts := make([]string, len(n.Fields))
	for i, f := range n.Fields {
		parts[i] = f.Name + ": " + f.Type
	}
	return "struct " + n.Name + " { " + strings.Join(parts, "; ") + " }"
}

// ReturnStmt is `return expr?;`.
type ReturnStmt struct {
	Token token.Token
	Value Expression // nil when bare `return;`
}

func (n *ReturnStmt) statementNode()      {}
func (n *ReturnStmt) TokenLiteral() string { return n.Token.Literal }
func (n *ReturnStmt) Pos() token.Position  { return n.Token.Pos }
func (n *ReturnStmt) String() string {
	if n.Value == nil {
		return "return;"
	}
	return "return " + n.Value.String() + ";"
}

// GenStmt is `gen stmt` — at meta-execution time it captures stmt's
// substituted, expanded form into the active MetaContext instead of
// executing it (spec.md §4.3.E).
type GenStmt struct {
	Token token.Token
	Stmts []Statement
}

func (n *GenStmt) statementNode()      {}
func (n *GenStmt) TokenLiteral() string { return n.Token.Literal }
func (n *GenStmt) Pos() token.Position  { return n.Token.Pos }
func (n *GenStmt) String() string {
	var sb strings.Builder
	sb.WriteString("gen ")
	for i, s := range n.Stmts {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(s.String())
	}
	return sb.String()
}

// MetaStmt is `meta stmt` — Blueprint-only; the meta-processor lowers stmt,
// executes it with a fresh capture buffer installed, and splices whatever
// it emitted into the Expanded output in its place (spec.md §4.3.D).
type MetaStmt struct {
	Token token.Token
	Inner Statement
}

func (n *MetaStmt) statementNode()      {}
func (n *MetaStmt) TokenLiteral() string { return n.Token.Literal }
func (n *MetaStmt) Pos() token.Position  { return n.Token.Pos }
func (n *MetaStmt) String() string       { return "meta " + n.Inner.String() }

// ImportStmt is `import "mod";` — resolved via resolver.Resolver.ReadMod
// during meta-processing; it contributes no Expanded node.
type ImportStmt struct {
	Token      token.Token
	ModuleName string
}

func (n *ImportStmt) statementNode()      {}
func (n *ImportStmt) TokenLiteral() string { return n.Token.Literal }
func (n *ImportStmt) Pos() token.Position  { return n.Token.Pos }
func (n *ImportStmt) String() string       { return "import " + n.ModuleName + ";" }
