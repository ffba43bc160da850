// Package printer renders a cx AST back into formatted source text. It is
// stateless: Print takes a Settings value and returns a string, with no
// package-level configuration to thread through callers.
package printer

import (
	"strconv"
	"strings"

	"github.com/brendancron/cx/internal/ast"
)

// Settings controls the pretty-printer's surface-syntax choices.
type Settings struct {
	Indent               string
	LineEnding           string
	SpaceAroundBinaryOps bool
	SpaceInsideBrackets  bool
	BracesOnNewLine      bool
}

// DefaultSettings mirrors the conventional cx formatting: two-space indent,
// Unix line endings, spaced operators, tight brackets, K&R braces.
func DefaultSettings() Settings {
	return Settings{
		Indent:               "  ",
		LineEnding:            "\n",
		SpaceAroundBinaryOps: true,
		SpaceInsideBrackets:  false,
		BracesOnNewLine:      false,
	}
}

// printer accumulates output for a single Print call.
type printer struct {
	Settings
	sb    strings.Builder
	depth int
}

// Print renders an entire program using s.
func Print(program *ast.Program, s Settings) string {
	p := &printer{Settings: s}
	if program == nil {
		return ""
	}
	for _, stmt := range program.Statements {
		p.writeIndent()
		p.printStmt(stmt)
		p.sb.WriteString(p.LineEnding)
	}
	return p.sb.String()
}

func (p *printer) writeIndent() {
	for i := 0; i < p.depth; i++ {
		p.sb.WriteString(p.Indent)
	}
}

func (p *printer) openBrace() {
	if p.BracesOnNewLine {
		p.sb.WriteString(p.LineEnding)
		p.writeIndent()
		p.sb.WriteString("{")
	} else {
		p.sb.WriteString(" {")
	}
}

func (p *printer) printBlock(b *ast.Block) {
	p.openBrace()
	p.sb.WriteString(p.LineEnding)
	p.depth++
	for _, stmt := range b.Statements {
		p.writeIndent()
		p.printStmt(stmt)
		p.sb.WriteString(p.LineEnding)
	}
	p.depth--
	p.writeIndent()
	p.sb.WriteString("}")
}

func (p *printer) printStmt(stmt ast.Statement) {
	switch n := stmt.(type) {
	case *ast.ExprStmt:
		p.printExpr(n.Expr)
		p.sb.WriteString(";")
	case *ast.VarStmt:
		p.sb.WriteString("var " + n.Name + " = ")
		p.printExpr(n.Value)
		p.sb.WriteString(";")
	case *ast.Assignment:
		p.sb.WriteString(n.Name + " = ")
		p.printExpr(n.Value)
		p.sb.WriteString(";")
	case *ast.PrintStmt:
		p.sb.WriteString("print(")
		p.printExpr(n.Value)
		p.sb.WriteString(");")
	case *ast.Block:
		p.printBlock(n)
	case *ast.IfStmt:
		p.printIf(n)
	case *ast.ForStmt:
		p.sb.WriteString("for (" + n.Var + " in ")
		p.printExpr(n.Iterable)
		p.sb.WriteString(")")
		p.printBlock(n.Body)
	case *ast.FnDecl:
		p.printFnDecl(n)
	case *ast.StructDecl:
		p.printStructDecl(n)
	case *ast.ReturnStmt:
		if n.Value == nil {
			p.sb.WriteString("return;")
			return
		}
		p.sb.WriteString("return ")
		p.printExpr(n.Value)
		p.sb.WriteString(";")
	case *ast.GenStmt:
		p.sb.WriteString("gen ")
		if len(n.Stmts) == 1 {
			p.printStmt(n.Stmts[0])
			return
		}
		p.sb.WriteString("{")
		p.sb.WriteString(p.LineEnding)
		p.depth++
		for _, s := range n.Stmts {
			p.writeIndent()
			p.printStmt(s)
			p.sb.WriteString(p.LineEnding)
		}
		p.depth--
		p.writeIndent()
		p.sb.WriteString("}")
	case *ast.MetaStmt:
		p.sb.WriteString("meta ")
		p.printStmt(n.Inner)
	case *ast.ImportStmt:
		p.sb.WriteString("import " + strconv.Quote(n.ModuleName) + ";")
	default:
		p.sb.WriteString(stmt.String())
	}
}

func (p *printer) printIf(n *ast.IfStmt) {
	p.sb.WriteString("if (")
	p.printExpr(n.Cond)
	p.sb.WriteString(")")
	p.printBlock(n.Then)
	if n.Else == nil {
		return
	}
	p.sb.WriteString(" else")
	switch e := n.Else.(type) {
	case *ast.IfStmt:
		p.sb.WriteString(" ")
		p.printIf(e)
	case *ast.Block:
		p.printBlock(e)
	default:
		p.sb.WriteString(" ")
		p.printStmt(e)
	}
}

func (p *printer) printFnDecl(n *ast.FnDecl) {
	if n.FuncType == ast.Meta {
		p.sb.WriteString("meta ")
	}
	p.sb.WriteString("fn " + n.Name + "(")
	names := make([]string, len(n.Params))
	for i, param := range n.Params {
		names[i] = param.Name
	}
	p.sb.WriteString(strings.Join(names, ", "))
	p.sb.WriteString(")")
	p.printBlock(n.Body)
}

func (p *printer) printStructDecl(n *ast.StructDecl) {
	p.sb.WriteString("struct " + n.Name)
	p.openBrace()
	p.sb.WriteString(p.LineEnding)
	p.depth++
	for _, f := range n.Fields {
		p.writeIndent()
		p.sb.WriteString(f.Name + ": " + f.Type + ";")
		p.sb.WriteString(p.LineEnding)
	}
	p.depth--
	p.writeIndent()
	p.sb.WriteString("}")
}

func (p *printer) printExpr(expr ast.Expression) {
	switch n := expr.(type) {
	case *ast.IntLiteral:
		p.sb.WriteString(strconv.FormatInt(n.Value, 10))
	case *ast.StringLiteral:
		p.sb.WriteString(strconv.Quote(n.Value))
	case *ast.BoolLiteral:
		if n.Value {
			p.sb.WriteString("true")
		} else {
			p.sb.WriteString("false")
		}
	case *ast.Variable:
		p.sb.WriteString(n.Name)
	case *ast.ListLiteral:
		p.printList(n)
	case *ast.StructLiteral:
		p.printStructLiteral(n)
	case *ast.Call:
		p.sb.WriteString(n.Callee + "(")
		for i, a := range n.Args {
			if i > 0 {
				p.sb.WriteString(", ")
			}
			p.printExpr(a)
		}
		p.sb.WriteString(")")
	case *ast.BinaryOp:
		p.printBinary(n)
	case *ast.TypeofExpr:
		p.sb.WriteString("typeof(" + n.Name + ")")
	case *ast.EmbedExpr:
		p.sb.WriteString("embed(" + strconv.Quote(n.Path) + ")")
	default:
		p.sb.WriteString(expr.String())
	}
}

func (p *printer) printList(n *ast.ListLiteral) {
	p.sb.WriteString("[")
	if p.SpaceInsideBrackets && len(n.Elements) > 0 {
		p.sb.WriteString(" ")
	}
	for i, e := range n.Elements {
		if i > 0 {
			p.sb.WriteString(", ")
		}
		p.printExpr(e)
	}
	if p.SpaceInsideBrackets && len(n.Elements) > 0 {
		p.sb.WriteString(" ")
	}
	p.sb.WriteString("]")
}

func (p *printer) printStructLiteral(n *ast.StructLiteral) {
	p.sb.WriteString(n.TypeName + " { ")
	for i, f := range n.Fields {
		if i > 0 {
			p.sb.WriteString(", ")
		}
		p.sb.WriteString(f.Name + ": ")
		p.printExpr(f.Value)
	}
	p.sb.WriteString(" }")
}

func (p *printer) printBinary(n *ast.BinaryOp) {
	p.printOperand(n.Left)
	if p.SpaceAroundBinaryOps {
		p.sb.WriteString(" " + n.Operator + " ")
	} else {
		p.sb.WriteString(n.Operator)
	}
	p.printOperand(n.Right)
}

// printOperand parenthesizes nested binary expressions so precedence
// survives the round trip through printed text.
func (p *printer) printOperand(e ast.Expression) {
	if b, ok := e.(*ast.BinaryOp); ok {
		p.sb.WriteString("(")
		p.printBinary(b)
		p.sb.WriteString(")")
		return
	}
	p.printExpr(e)
}
