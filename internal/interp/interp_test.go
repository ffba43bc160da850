package interp

import (
	"bytes"
	"testing"

	"github.com/brendancron/cx/internal/ast"
	"github.com/brendancron/cx/internal/decl"
	"github.com/brendancron/cx/internal/metactx"
	"github.com/brendancron/cx/internal/token"
	"github.com/brendancron/cx/internal/value"
)

func tok(kind token.Kind, lit string) token.Token {
	return token.New(kind, lit, token.Position{Line: 1, Column: 1})
}

func ident(name string) *ast.Variable {
	return &ast.Variable{Token: tok(token.IDENT, name), Name: name}
}

func intLit(v int64) *ast.IntLiteral {
	return &ast.IntLiteral{Token: tok(token.INT, ""), Value: v}
}

func newTestInterp(out *bytes.Buffer) *Interpreter {
	return New(decl.NewRegistry(), nil, out)
}

func TestArithmeticPrecedenceLikeScenario(t *testing.T) {
	// var x = 2 + 3 * 4; print(x);  -> 14
	var out bytes.Buffer
	in := newTestInterp(&out)
	env := value.NewEnvironment()

	mul := &ast.BinaryOp{Left: intLit(3), Operator: "*", Right: intLit(4)}
	add := &ast.BinaryOp{Left: intLit(2), Operator: "+", Right: mul}
	stmts := []ast.Statement{
		&ast.VarStmt{Name: "x", Value: add},
		&ast.PrintStmt{Value: ident("x")},
	}

	if err := in.Run(env, stmts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := out.String(), "14\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestFibonacciRecursion(t *testing.T) {
	var out bytes.Buffer
	in := newTestInterp(&out)
	env := value.NewEnvironment()

	// fn fib(n){ if (n == 0) { return 0; } if (n == 1) { return 1; } return fib(n-1)+fib(n-2); }
	n := ast.Param{Name: "n"}
	body := &ast.Block{Statements: []ast.Statement{
		&ast.IfStmt{
			Cond: &ast.BinaryOp{Left: ident("n"), Operator: "==", Right: intLit(0)},
			Then: &ast.Block{Statements: []ast.Statement{&ast.ReturnStmt{Value: intLit(0)}}},
		},
		&ast.IfStmt{
			Cond: &ast.BinaryOp{Left: ident("n"), Operator: "==", Right: intLit(1)},
			Then: &ast.Block{Statements: []ast.Statement{&ast.ReturnStmt{Value: intLit(1)}}},
		},
		&ast.ReturnStmt{Value: &ast.BinaryOp{
			Left:     &ast.Call{Callee: "fib", Args: []ast.Expression{&ast.BinaryOp{Left: ident("n"), Operator: "-", Right: intLit(1)}}},
			Operator: "+",
			Right:    &ast.Call{Callee: "fib", Args: []ast.Expression{&ast.BinaryOp{Left: ident("n"), Operator: "-", Right: intLit(2)}}},
		}},
	}}
	fnDecl := &ast.FnDecl{Name: "fib", Params: []ast.Param{n}, Body: body}
	callFib := &ast.Call{Callee: "fib", Args: []ast.Expression{intLit(10)}}

	stmts := []ast.Statement{fnDecl, &ast.PrintStmt{Value: callFib}}
	if err := in.Run(env, stmts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := out.String(), "55\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestStructLiteralAndDisplay(t *testing.T) {
	var out bytes.Buffer
	decls := decl.NewRegistry()
	decls.Define("P", decl.StructDef{Name: "P", Fields: []decl.FieldDef{{Name: "name", Type: "string"}, {Name: "age", Type: "int"}}})
	in := New(decls, nil, &out)
	env := value.NewEnvironment()

	lit := &ast.StructLiteral{TypeName: "P", Fields: []ast.StructField{
		{Name: "name", Value: &ast.StringLiteral{Value: "A"}},
		{Name: "age", Value: intLit(1)},
	}}
	stmts := []ast.Statement{
		&ast.VarStmt{Name: "p", Value: lit},
		&ast.PrintStmt{Value: ident("p")},
	}
	if err := in.Run(env, stmts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := out.String(), "P {name: A, age: 1}\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestStructLiteralUnknownType(t *testing.T) {
	var out bytes.Buffer
	in := newTestInterp(&out)
	env := value.NewEnvironment()

	lit := &ast.StructLiteral{TypeName: "Nope"}
	err := in.Run(env, []ast.Statement{&ast.ExprStmt{Expr: lit}})
	if err == nil {
		t.Fatal("expected UnknownStructType error")
	}
}

func TestForLoopOverList(t *testing.T) {
	var out bytes.Buffer
	in := newTestInterp(&out)
	env := value.NewEnvironment()

	list := &ast.ListLiteral{Elements: []ast.Expression{intLit(1), intLit(2), intLit(3)}}
	forStmt := &ast.ForStmt{Var: "x", Iterable: list, Body: &ast.Block{Statements: []ast.Statement{
		&ast.PrintStmt{Value: ident("x")},
	}}}
	if err := in.Run(env, []ast.Statement{forStmt}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := out.String(), "1\n2\n3\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestForLoopOverNonListPanicsToError(t *testing.T) {
	var out bytes.Buffer
	in := newTestInterp(&out)
	env := value.NewEnvironment()

	forStmt := &ast.ForStmt{Var: "x", Iterable: intLit(5), Body: &ast.Block{}}
	if err := in.Run(env, []ast.Statement{forStmt}); err == nil {
		t.Fatal("expected an error iterating a non-List")
	}
}

func TestClosureCapturesAndMutatesSharedVariable(t *testing.T) {
	// fn mk(){ var c = 0; fn f(){ c = c + 1; return c; } return f; }
	var out bytes.Buffer
	in := newTestInterp(&out)
	env := value.NewEnvironment()

	fBody := &ast.Block{Statements: []ast.Statement{
		&ast.Assignment{Name: "c", Value: &ast.BinaryOp{Left: ident("c"), Operator: "+", Right: intLit(1)}},
		&ast.ReturnStmt{Value: ident("c")},
	}}
	mkBody := &ast.Block{Statements: []ast.Statement{
		&ast.VarStmt{Name: "c", Value: intLit(0)},
		&ast.FnDecl{Name: "f", Body: fBody},
		&ast.ReturnStmt{Value: ident("f")},
	}}
	mk := &ast.FnDecl{Name: "mk", Body: mkBody}

	stmts := []ast.Statement{
		mk,
		&ast.VarStmt{Name: "counter", Value: &ast.Call{Callee: "mk"}},
		&ast.PrintStmt{Value: &ast.Call{Callee: "counter"}},
		&ast.PrintStmt{Value: &ast.Call{Callee: "counter"}},
	}
	if err := in.Run(env, stmts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := out.String(), "1\n2\n"; got != want {
		t.Errorf("output = %q, want %q (closure should mutate shared c across calls)", got, want)
	}
}

func TestArgumentMismatch(t *testing.T) {
	var out bytes.Buffer
	in := newTestInterp(&out)
	env := value.NewEnvironment()

	fn := &ast.FnDecl{Name: "f", Params: []ast.Param{{Name: "a"}}, Body: &ast.Block{}}
	call := &ast.Call{Callee: "f"}
	err := in.Run(env, []ast.Statement{fn, &ast.ExprStmt{Expr: call}})
	if err == nil {
		t.Fatal("expected ArgumentMismatch error")
	}
}

func TestNonFunctionCall(t *testing.T) {
	var out bytes.Buffer
	in := newTestInterp(&out)
	env := value.NewEnvironment()

	stmts := []ast.Statement{
		&ast.VarStmt{Name: "x", Value: intLit(1)},
		&ast.ExprStmt{Expr: &ast.Call{Callee: "x"}},
	}
	if err := in.Run(env, stmts); err == nil {
		t.Fatal("expected NonFunctionCall error")
	}
}

func TestGenOutsideMetaContextErrors(t *testing.T) {
	var out bytes.Buffer
	in := newTestInterp(&out) // Meta is nil
	env := value.NewEnvironment()

	gen := &ast.GenStmt{Stmts: []ast.Statement{&ast.PrintStmt{Value: intLit(1)}}}
	if err := in.Run(env, []ast.Statement{gen}); err == nil {
		t.Fatal("expected error executing gen with no active meta context")
	}
}

func TestGenCapturesIntoActiveMetaContext(t *testing.T) {
	var out bytes.Buffer
	meta := metactx.NewMetaStack()
	ctx := meta.Push()
	in := New(decl.NewRegistry(), meta, &out)
	env := value.NewEnvironment()
	env.Define("n", value.Int{Value: 3})

	gen := &ast.GenStmt{Stmts: []ast.Statement{&ast.PrintStmt{Value: ident("n")}}}
	if err := in.Run(env, []ast.Statement{gen}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ctx.Emitted) != 1 {
		t.Fatalf("expected 1 emitted statement, got %d", len(ctx.Emitted))
	}
	ps, ok := ctx.Emitted[0].(*ast.PrintStmt)
	if !ok {
		t.Fatalf("expected *ast.PrintStmt, got %T", ctx.Emitted[0])
	}
	lit, ok := ps.Value.(*ast.IntLiteral)
	if !ok || lit.Value != 3 {
		t.Fatalf("expected substituted IntLiteral(3), got %#v", ps.Value)
	}
}
