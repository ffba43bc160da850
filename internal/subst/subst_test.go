package subst

import (
	"testing"

	"github.com/brendancron/cx/internal/ast"
	"github.com/brendancron/cx/internal/token"
	"github.com/brendancron/cx/internal/value"
)

func ident(name string) *ast.Variable {
	return &ast.Variable{Token: token.New(token.IDENT, name, token.Position{}), Name: name}
}

func TestExprSubstitutesPrimitive(t *testing.T) {
	env := value.NewEnvironment()
	env.Define("n", value.Int{Value: 3})

	out := Expr(ident("n"), env)
	lit, ok := out.(*ast.IntLiteral)
	if !ok {
		t.Fatalf("expected *ast.IntLiteral, got %T", out)
	}
	if lit.Value != 3 {
		t.Errorf("got %d, want 3", lit.Value)
	}
}

func TestExprLeavesComplexValuesAsVariable(t *testing.T) {
	env := value.NewEnvironment()
	env.Define("xs", value.NewList(nil))

	out := Expr(ident("xs"), env)
	if _, ok := out.(*ast.Variable); !ok {
		t.Fatalf("expected list-bound name to remain a Variable, got %T", out)
	}
}

func TestExprLeavesUnboundVariable(t *testing.T) {
	env := value.NewEnvironment()
	out := Expr(ident("unbound"), env)
	v, ok := out.(*ast.Variable)
	if !ok || v.Name != "unbound" {
		t.Fatalf("expected unbound Variable to pass through unchanged, got %#v", out)
	}
}

func TestCallCalleeSubstitutedWhenBoundToString(t *testing.T) {
	env := value.NewEnvironment()
	env.Define("target", value.String{Value: "print"})

	call := &ast.Call{Token: token.New(token.IDENT, "target", token.Position{}), Callee: "target"}
	out := Expr(call, env).(*ast.Call)
	if out.Callee != "print" {
		t.Errorf("callee = %q, want %q", out.Callee, "print")
	}
}

func TestCallCalleeUnchangedWhenNotBoundToString(t *testing.T) {
	env := value.NewEnvironment()
	env.Define("target", value.Int{Value: 1})

	call := &ast.Call{Token: token.New(token.IDENT, "target", token.Position{}), Callee: "target"}
	out := Expr(call, env).(*ast.Call)
	if out.Callee != "target" {
		t.Errorf("callee = %q, want unchanged %q", out.Callee, "target")
	}
}

func TestBinaryOpRecurses(t *testing.T) {
	env := value.NewEnvironment()
	env.Define("a", value.Int{Value: 1})
	env.Define("b", value.Int{Value: 2})

	bin := &ast.BinaryOp{Left: ident("a"), Operator: "+", Right: ident("b")}
	out := Expr(bin, env).(*ast.BinaryOp)

	left, ok := out.Left.(*ast.IntLiteral)
	if !ok || left.Value != 1 {
		t.Errorf("left = %#v, want IntLiteral(1)", out.Left)
	}
	right, ok := out.Right.(*ast.IntLiteral)
	if !ok || right.Value != 2 {
		t.Errorf("right = %#v, want IntLiteral(2)", out.Right)
	}
}

func TestStmtsDoesNotMutateInput(t *testing.T) {
	env := value.NewEnvironment()
	env.Define("n", value.Int{Value: 7})

	original := &ast.PrintStmt{Value: ident("n")}
	stmts := []ast.Statement{original}

	Stmts(stmts, env)

	if _, ok := original.Value.(*ast.Variable); !ok {
		t.Fatal("expected the original statement's expression to be left untouched")
	}
}
