package printer_test

import (
	"testing"

	"github.com/brendancron/cx/internal/ast"
	"github.com/brendancron/cx/internal/printer"
)

func prog(stmts ...ast.Statement) *ast.Program {
	return &ast.Program{Statements: stmts}
}

func TestPrintBinaryOpSpacing(t *testing.T) {
	add := &ast.BinaryOp{
		Left:     &ast.IntLiteral{Value: 1},
		Operator: "+",
		Right:    &ast.IntLiteral{Value: 2},
	}
	stmt := &ast.ExprStmt{Expr: add}

	spaced := printer.Print(prog(stmt), printer.DefaultSettings())
	if spaced != "1 + 2;\n" {
		t.Errorf("got %q", spaced)
	}

	tight := printer.DefaultSettings()
	tight.SpaceAroundBinaryOps = false
	got := printer.Print(prog(stmt), tight)
	if got != "1+2;\n" {
		t.Errorf("got %q", got)
	}
}

func TestPrintNestedBinaryOpParenthesized(t *testing.T) {
	mul := &ast.BinaryOp{Left: &ast.IntLiteral{Value: 3}, Operator: "*", Right: &ast.IntLiteral{Value: 4}}
	add := &ast.BinaryOp{Left: &ast.IntLiteral{Value: 2}, Operator: "+", Right: mul}
	stmt := &ast.ExprStmt{Expr: add}

	got := printer.Print(prog(stmt), printer.DefaultSettings())
	if got != "2 + (3 * 4);\n" {
		t.Errorf("got %q", got)
	}
}

func TestPrintListLiteralBracketSpacing(t *testing.T) {
	list := &ast.ListLiteral{Elements: []ast.Expression{&ast.IntLiteral{Value: 1}, &ast.IntLiteral{Value: 2}}}
	stmt := &ast.ExprStmt{Expr: list}

	tight := printer.Print(prog(stmt), printer.DefaultSettings())
	if tight != "[1, 2];\n" {
		t.Errorf("got %q", tight)
	}

	s := printer.DefaultSettings()
	s.SpaceInsideBrackets = true
	spaced := printer.Print(prog(stmt), s)
	if spaced != "[ 1, 2 ];\n" {
		t.Errorf("got %q", spaced)
	}
}

func TestPrintStructLiteralAndCall(t *testing.T) {
	lit := &ast.StructLiteral{TypeName: "P", Fields: []ast.StructField{
		{Name: "x", Value: &ast.IntLiteral{Value: 1}},
		{Name: "y", Value: &ast.IntLiteral{Value: 2}},
	}}
	call := &ast.Call{Callee: "f", Args: []ast.Expression{&ast.Variable{Name: "p"}}}

	stmts := prog(&ast.ExprStmt{Expr: lit}, &ast.ExprStmt{Expr: call})
	got := printer.Print(stmts, printer.DefaultSettings())
	want := "P { x: 1, y: 2 };\nf(p);\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPrintTypeofAndEmbed(t *testing.T) {
	stmts := prog(
		&ast.ExprStmt{Expr: &ast.TypeofExpr{Name: "P"}},
		&ast.ExprStmt{Expr: &ast.EmbedExpr{Path: "data.txt"}},
	)
	got := printer.Print(stmts, printer.DefaultSettings())
	want := "typeof(P);\nembed(\"data.txt\");\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
