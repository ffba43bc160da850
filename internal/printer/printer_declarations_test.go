package printer_test

import (
	"testing"

	"github.com/brendancron/cx/internal/ast"
	"github.com/brendancron/cx/internal/printer"
)

func TestPrintFnDecl(t *testing.T) {
	fn := &ast.FnDecl{
		Name:   "add",
		Params: []ast.Param{{Name: "a"}, {Name: "b"}},
		Body: &ast.Block{Statements: []ast.Statement{
			&ast.ReturnStmt{Value: &ast.BinaryOp{Left: &ast.Variable{Name: "a"}, Operator: "+", Right: &ast.Variable{Name: "b"}}},
		}},
	}
	got := printer.Print(prog(fn), printer.DefaultSettings())
	want := "fn add(a, b) {\n  return a + b;\n}\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPrintMetaFnDecl(t *testing.T) {
	fn := &ast.FnDecl{
		Name:     "double",
		FuncType: ast.Meta,
		Params:   []ast.Param{{Name: "x"}},
		Body: &ast.Block{Statements: []ast.Statement{
			&ast.ReturnStmt{Value: &ast.BinaryOp{Left: &ast.Variable{Name: "x"}, Operator: "*", Right: &ast.IntLiteral{Value: 2}}},
		}},
	}
	got := printer.Print(prog(fn), printer.DefaultSettings())
	want := "meta fn double(x) {\n  return x * 2;\n}\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPrintStructDecl(t *testing.T) {
	decl := &ast.StructDecl{Name: "Point", Fields: []ast.StructFieldDecl{
		{Name: "x", Type: "int"},
		{Name: "y", Type: "int"},
	}}
	got := printer.Print(prog(decl), printer.DefaultSettings())
	want := "struct Point {\n  x: int;\n  y: int;\n}\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
