// Package subst implements hygienic literal substitution over a captured
// `gen` fragment (spec.md §4.5), grounded on the meta-processor's own
// value-to-literal lowering (internal/meta) but applied against the
// interpreter's live environment at Gen-execution time rather than the
// meta environment at lowering time.
package subst

import (
	"github.com/brendancron/cx/internal/ast"
	"github.com/brendancron/cx/internal/token"
	"github.com/brendancron/cx/internal/value"
)

// Stmts substitutes every statement in stmts against env, returning a new
// slice; the input is left untouched (the pass is purely functional,
// spec.md §5).
func Stmts(stmts []ast.Statement, env *value.Environment) []ast.Statement {
	out := make([]ast.Statement, len(stmts))
	for i, s := range stmts {
		out[i] = Stmt(s, env)
	}
	return out
}

// Stmt substitutes one statement's sub-expressions against env.
func Stmt(s ast.Statement, env *value.Environment) ast.Statement {
	switch n := s.(type) {
	case *ast.ExprStmt:
		return &ast.ExprStmt{Token: n.Token, Expr: Expr(n.Expr, env)}
	case *ast.VarStmt:
		return &ast.VarStmt{Token: n.Token, Name: n.Name, Value: Expr(n.Value, env)}
	case *ast.Assignment:
		return &ast.Assignment{Token: n.Token, Name: n.Name, Value: Expr(n.Value, env)}
	case *ast.PrintStmt:
		return &ast.PrintStmt{Token: n.Token, Value: Expr(n.Value, env)}
	case *ast.Block:
		return &ast.Block{Token: n.Token, Statements: Stmts(n.Statements, env)}
	case *ast.IfStmt:
		var elseStmt ast.Statement
		if n.Else != nil {
			elseStmt = Stmt(n.Else, env)
		}
		return &ast.IfStmt{Token: n.Token, Cond: Expr(n.Cond, env), Then: Stmt(n.Then, env).(*ast.Block), Else: elseStmt}
	case *ast.ForStmt:
		return &ast.ForStmt{Token: n.Token, Var: n.Var, Iterable: Expr(n.Iterable, env), Body: Stmt(n.Body, env).(*ast.Block)}
	case *ast.FnDecl:
		return &ast.FnDecl{Token: n.Token, Name: n.Name, FuncType: n.FuncType, Params: n.Params, Body: Stmt(n.Body, env).(*ast.Block)}
	case *ast.ReturnStmt:
		if n.Value == nil {
			return n
		}
		return &ast.ReturnStmt{Token: n.Token, Value: Expr(n.Value, env)}
	case *ast.GenStmt:
		return &ast.GenStmt{Token: n.Token, Stmts: Stmts(n.Stmts, env)}
	default:
		return s
	}
}

// Expr substitutes one expression against env: every Variable whose
// lookup in env yields a primitive (Int/String/Bool) becomes the
// corresponding literal node. Complex values (functions, lists, structs)
// are left as Variable references, to be resolved at runtime. Binary-op
// and call nodes recurse structurally; a Call's callee name is itself
// substituted when it resolves to a String (spec.md §4.5).
func Expr(e ast.Expression, env *value.Environment) ast.Expression {
	switch n := e.(type) {
	case *ast.Variable:
		if v, ok := env.Get(n.Name); ok {
			if lit, ok := literalFor(n.Token, v); ok {
				return lit
			}
		}
		return n

	case *ast.ListLiteral:
		elems := make([]ast.Expression, len(n.Elements))
		for i, el := range n.Elements {
			elems[i] = Expr(el, env)
		}
		return &ast.ListLiteral{Token: n.Token, Elements: elems}
	case *ast.StructLiteral:
		fields := make([]ast.StructField, len(n.Fields))
		for i, f := range n.Fields {
			fields[i] = ast.StructField{Name: f.Name, Value: Expr(f.Value, env)}
		}
		return &ast.StructLiteral{Token: n.Token, TypeName: n.TypeName, Fields: fields}
	case *ast.Call:
		callee := n.Callee
		if v, ok := env.Get(n.Callee); ok {
			if s, ok := v.(value.String); ok {
				callee = s.Value
			}
		}
		args := make([]ast.Expression, len(n.Args))
		for i, a := range n.Args {
			args[i] = Expr(a, env)
		}
		return &ast.Call{Token: n.Token, Callee: callee, Args: args}
	case *ast.BinaryOp:
		return &ast.BinaryOp{Token: n.Token, Left: Expr(n.Left, env), Operator: n.Operator, Right: Expr(n.Right, env)}
	default:
		// Literals (Int/String/Bool) are already terminal.
		return e
	}
}

func literalFor(tok token.Token, v value.Value) (ast.Expression, bool) {
	switch val := v.(type) {
	case value.Int:
		return &ast.IntLiteral{Token: tok, Value: val.Value}, true
	case value.String:
		return &ast.StringLiteral{Token: tok, Value: val.Value}, true
	case value.Bool:
		return &ast.BoolLiteral{Token: tok, Value: val.Value}, true
	default:
		return nil, false
	}
}
