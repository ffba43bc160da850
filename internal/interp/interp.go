// Package interp implements the tree-walking evaluator over the Expanded
// AST (spec.md §4.4), parameterised by an environment, the shared decl
// registry, an optional active meta-context stack, and an output writer.
// Grounded on the teacher's internal/interp/evaluator visitor style and
// internal/interp/runtime/callstack.go, collapsed to cx's much smaller
// grammar: one package instead of a types/evaluator/runtime/runner split,
// since cx has no type system, no OOP dispatch, and no bytecode stage to
// separate from tree-walking.
package interp

import (
	"fmt"
	"io"

	"github.com/brendancron/cx/internal/ast"
	"github.com/brendancron/cx/internal/decl"
	"github.com/brendancron/cx/internal/diag"
	"github.com/brendancron/cx/internal/metactx"
	"github.com/brendancron/cx/internal/subst"
	"github.com/brendancron/cx/internal/value"
)

// Interpreter evaluates an Expanded AST. A nil Meta disables Gen entirely
// (any Gen statement then raises metactx.ErrNoActiveMetaContext), which is
// how the meta-processor runs the interpreter at meta_ctx = None for
// constant-folding calls (spec.md §4.3.B).
type Interpreter struct {
	Decls *decl.Registry
	Meta  *metactx.MetaStack
	Out   io.Writer
	Calls *diag.CallStack
}

// New constructs an Interpreter. meta may be nil.
func New(decls *decl.Registry, meta *metactx.MetaStack, out io.Writer) *Interpreter {
	return &Interpreter{Decls: decls, Meta: meta, Out: out, Calls: diag.NewCallStack(0)}
}

// flowKind tags how a statement's execution terminated.
type flowKind int

const (
	flowNone flowKind = iota
	flowReturn
)

// flow is the per-statement result the interpreter's state machine threads
// upward: READY → (running body) → {Continue, Return(v)} (spec.md §4.4).
// flowNone models Continue; flowReturn carries the returned value.
type flow struct {
	kind  flowKind
	value value.Value
}

// Run executes a full Expanded program (a top-level statement sequence),
// converting an interpreter-invariant panic (e.g. a non-List for-in
// iterable, spec.md §4.4) into a returned error.
func (in *Interpreter) Run(env *value.Environment, stmts []ast.Statement) (err error) {
	defer recoverToError(&err)
	_, err = in.execStatements(env, stmts)
	return err
}

// Exec executes a single statement, used by the meta-processor's `meta
// stmt` handling (spec.md §4.3.D).
func (in *Interpreter) Exec(env *value.Environment, stmt ast.Statement) (err error) {
	defer recoverToError(&err)
	_, err = in.execStmt(env, stmt)
	return err
}

// Eval evaluates a single expression, used by the meta-processor's
// constant-folding pass to run a meta-bound Call (spec.md §4.3.B).
func (in *Interpreter) Eval(env *value.Environment, expr ast.Expression) (v value.Value, err error) {
	defer recoverToError(&err)
	return in.evalExpr(env, expr)
}

func recoverToError(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%v", r)
	}
}

func (in *Interpreter) execStatements(env *value.Environment, stmts []ast.Statement) (flow, error) {
	for _, s := range stmts {
		fl, err := in.execStmt(env, s)
		if err != nil {
			return flow{}, err
		}
		if fl.kind == flowReturn {
			return fl, nil
		}
	}
	return flow{}, nil
}

// execBlockScoped pushes a fresh child scope before executing a Block's
// statements, and pops it on every exit path including Return propagation
// (the pop is implicit: the child scope is simply discarded, spec.md §5).
func (in *Interpreter) execBlockScoped(env *value.Environment, block *ast.Block) (flow, error) {
	return in.execStatements(env.NewChild(), block.Statements)
}

func (in *Interpreter) execStmt(env *value.Environment, stmt ast.Statement) (flow, error) {
	switch n := stmt.(type) {
	case *ast.ExprStmt:
		_, err := in.evalExpr(env, n.Expr)
		return flow{}, err

	case *ast.VarStmt:
		v, err := in.evalExpr(env, n.Value)
		if err != nil {
			return flow{}, err
		}
		env.Define(n.Name, v)
		return flow{}, nil

	case *ast.Assignment:
		// Always defines in the current scope (shadowing allowed); this is
		// the resolved form of spec.md §9's "Assignment vs. redefinition"
		// open question.
		v, err := in.evalExpr(env, n.Value)
		if err != nil {
			return flow{}, err
		}
		env.Define(n.Name, v)
		return flow{}, nil

	case *ast.PrintStmt:
		v, err := in.evalExpr(env, n.Value)
		if err != nil {
			return flow{}, err
		}
		fmt.Fprintln(in.Out, v.Display())
		return flow{}, nil

	case *ast.Block:
		return in.execBlockScoped(env, n)

	case *ast.IfStmt:
		cv, err := in.evalExpr(env, n.Cond)
		if err != nil {
			return flow{}, err
		}
		cond, ok := cv.(value.Bool)
		if !ok {
			return flow{}, &diag.TypeError{Expected: "Bool condition"}
		}
		if cond.Value {
			return in.execBlockScoped(env, n.Then)
		}
		if n.Else != nil {
			return in.execStmt(env, n.Else)
		}
		return flow{}, nil

	case *ast.ForStmt:
		return in.execFor(env, n)

	case *ast.FnDecl:
		fn := &value.Function{Name: n.Name, Params: n.Params, Body: n.Body, Closure: env}
		env.Define(n.Name, fn)
		return flow{}, nil

	case *ast.ReturnStmt:
		if n.Value == nil {
			return flow{kind: flowReturn, value: value.Unit{}}, nil
		}
		v, err := in.evalExpr(env, n.Value)
		if err != nil {
			return flow{}, err
		}
		return flow{kind: flowReturn, value: v}, nil

	case *ast.GenStmt:
		return flow{}, in.execGen(env, n)

	default:
		return flow{}, fmt.Errorf("interp: unexpected statement type %T in Expanded AST", stmt)
	}
}

func (in *Interpreter) execFor(env *value.Environment, n *ast.ForStmt) (flow, error) {
	iv, err := in.evalExpr(env, n.Iterable)
	if err != nil {
		return flow{}, err
	}
	list, ok := iv.(*value.List)
	if !ok {
		panic(fmt.Sprintf("for-in iterable must be a List, got %s", iv.Type()))
	}
	for _, elem := range list.Elements {
		loopEnv := env.NewChild()
		loopEnv.Define(n.Var, elem)
		fl, err := in.execBlockScoped(loopEnv, n.Body)
		if err != nil {
			return flow{}, err
		}
		if fl.kind == flowReturn {
			return fl, nil
		}
	}
	return flow{}, nil
}

// execGen is the `gen` side of the gen/meta pair (spec.md §4.3.E): it
// substitutes the given statements against the current environment and
// appends them to the innermost active MetaContext, without executing
// them.
func (in *Interpreter) execGen(env *value.Environment, n *ast.GenStmt) error {
	var active *metactx.MetaContext
	if in.Meta != nil {
		active = in.Meta.Active()
	}
	if active == nil {
		return metactx.ErrNoActiveMetaContext
	}
	active.Emit(subst.Stmts(n.Stmts, env))
	return nil
}

func (in *Interpreter) evalExpr(env *value.Environment, expr ast.Expression) (value.Value, error) {
	switch n := expr.(type) {
	case *ast.IntLiteral:
		return value.Int{Value: n.Value}, nil
	case *ast.StringLiteral:
		return value.String{Value: n.Value}, nil
	case *ast.BoolLiteral:
		return value.Bool{Value: n.Value}, nil
	case *ast.Variable:
		v, ok := env.Get(n.Name)
		if !ok {
			return nil, &diag.UndefinedVariableError{Name: n.Name}
		}
		return v, nil
	case *ast.ListLiteral:
		return in.evalList(env, n)
	case *ast.StructLiteral:
		return in.evalStructLiteral(env, n)
	case *ast.Call:
		return in.evalCall(env, n)
	case *ast.BinaryOp:
		return in.evalBinary(env, n)
	default:
		return nil, fmt.Errorf("interp: unexpected expression type %T in Expanded AST", expr)
	}
}

func (in *Interpreter) evalList(env *value.Environment, n *ast.ListLiteral) (value.Value, error) {
	elems := make([]value.Value, len(n.Elements))
	for i, e := range n.Elements {
		v, err := in.evalExpr(env, e)
		if err != nil {
			return nil, err
		}
		elems[i] = v
	}
	return value.NewList(elems), nil
}

func (in *Interpreter) evalStructLiteral(env *value.Environment, n *ast.StructLiteral) (value.Value, error) {
	if _, ok := in.Decls.Lookup(n.TypeName); !ok {
		return nil, &diag.UnknownStructTypeError{Name: n.TypeName}
	}
	s := value.NewStruct(n.TypeName)
	for _, f := range n.Fields {
		v, err := in.evalExpr(env, f.Value)
		if err != nil {
			return nil, err
		}
		s.Set(f.Name, v)
	}
	return s, nil
}

func (in *Interpreter) evalCall(env *value.Environment, n *ast.Call) (value.Value, error) {
	fnVal, ok := env.Get(n.Callee)
	if !ok {
		return nil, &diag.UndefinedVariableError{Name: n.Callee}
	}
	fn, ok := fnVal.(*value.Function)
	if !ok {
		return nil, &diag.NonFunctionCallError{Name: n.Callee}
	}
	if len(n.Args) != len(fn.Params) {
		return nil, &diag.ArgumentMismatchError{Name: n.Callee, Got: len(n.Args), Expected: len(fn.Params)}
	}

	args := make([]value.Value, len(n.Args))
	for i, a := range n.Args {
		v, err := in.evalExpr(env, a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	if err := in.Calls.Push(n.Callee, n.Pos()); err != nil {
		return nil, err
	}
	defer in.Calls.Pop()

	callEnv := fn.Closure.NewChild()
	for i, p := range fn.Params {
		callEnv.Define(p.Name, args[i])
	}

	fl, err := in.execStatements(callEnv, fn.Body.Statements)
	if err != nil {
		return nil, err
	}
	if fl.kind == flowReturn {
		return fl.value, nil
	}
	return value.Unit{}, nil
}

func (in *Interpreter) evalBinary(env *value.Environment, n *ast.BinaryOp) (value.Value, error) {
	l, err := in.evalExpr(env, n.Left)
	if err != nil {
		return nil, err
	}
	r, err := in.evalExpr(env, n.Right)
	if err != nil {
		return nil, err
	}

	switch n.Operator {
	case "+":
		if li, ok := l.(value.Int); ok {
			if ri, ok := r.(value.Int); ok {
				return value.Int{Value: li.Value + ri.Value}, nil
			}
		}
		if ls, ok := l.(value.String); ok {
			if rs, ok := r.(value.String); ok {
				return value.String{Value: ls.Value + rs.Value}, nil
			}
		}
		return nil, &diag.TypeError{Expected: "(Int, Int) or (String, String) for +"}

	case "-", "*", "/":
		li, ok := l.(value.Int)
		if !ok {
			return nil, &diag.TypeError{Expected: "Int"}
		}
		ri, ok := r.(value.Int)
		if !ok {
			return nil, &diag.TypeError{Expected: "Int"}
		}
		switch n.Operator {
		case "-":
			return value.Int{Value: li.Value - ri.Value}, nil
		case "*":
			return value.Int{Value: li.Value * ri.Value}, nil
		default: // "/"
			if ri.Value == 0 {
				return nil, fmt.Errorf("division by zero")
			}
			return value.Int{Value: li.Value / ri.Value}, nil
		}

	case "==":
		return evalEquals(l, r)

	default:
		return nil, fmt.Errorf("interp: unsupported operator %q", n.Operator)
	}
}

func evalEquals(l, r value.Value) (value.Value, error) {
	switch lv := l.(type) {
	case value.Int:
		if rv, ok := r.(value.Int); ok {
			return value.Bool{Value: lv.Value == rv.Value}, nil
		}
	case value.String:
		if rv, ok := r.(value.String); ok {
			return value.Bool{Value: lv.Value == rv.Value}, nil
		}
	case value.Bool:
		if rv, ok := r.(value.Bool); ok {
			return value.Bool{Value: lv.Value == rv.Value}, nil
		}
	}
	return nil, &diag.TypeError{Expected: "same-typed primitives for =="}
}
