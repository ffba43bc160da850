// Package meta implements the meta-processor, the hardest subsystem of the
// pipeline (spec.md §4.3): it lowers a Blueprint AST into an Expanded AST
// while partially evaluating meta-tagged code and splicing `gen`-captured
// fragments into place. Grounded directly on
// original_source/rust_comp/src/semantics/meta/metaprocessor.rs, translated
// into Go idiom: Result<T, E> becomes (T, error), and the capture-buffer
// install/splice dance around `meta stmt` is expressed with
// metactx.MetaStack.Push/Pop instead of a borrowed Option<&mut MetaContext>.
package meta

import (
	"io"

	"github.com/brendancron/cx/internal/ast"
	"github.com/brendancron/cx/internal/decl"
	"github.com/brendancron/cx/internal/diag"
	"github.com/brendancron/cx/internal/interp"
	"github.com/brendancron/cx/internal/lexer"
	"github.com/brendancron/cx/internal/metactx"
	"github.com/brendancron/cx/internal/parser"
	"github.com/brendancron/cx/internal/resolver"
	"github.com/brendancron/cx/internal/value"
)

// Context is an alias for the shared carrier type so callers only need to
// import this package to drive a meta-processing pass.
type Context = metactx.MetaProcessContext

// NewContext constructs a fresh meta-processing context.
func NewContext(res resolver.Resolver, out io.Writer, rootDir string) *Context {
	return metactx.NewMetaProcessContext(res, out, rootDir)
}

// ValueToLiteral lifts a meta-time Value back into an Expanded literal
// node. Primitive scalars lower directly; Unit and non-primitive values
// (lists, structs, functions) are not representable as literals yet
// (spec.md §4.3.B).
func ValueToLiteral(v value.Value) (ast.Expression, error) {
	switch val := v.(type) {
	case value.Int:
		return &ast.IntLiteral{Value: val.Value}, nil
	case value.String:
		return &ast.StringLiteral{Value: val.Value}, nil
	case value.Bool:
		return &ast.BoolLiteral{Value: val.Value}, nil
	case value.Unit:
		return nil, &diag.UnimplementedError{Description: "Unit has no literal representation"}
	default:
		return nil, &diag.UnimplementedError{Description: "non-primitive value not supported yet"}
	}
}

// Process lowers an entire Blueprint program into its Expanded statement
// sequence.
func Process(prog *ast.Program, ctx *Context) ([]ast.Statement, error) {
	return processStmts(prog.Statements, ctx)
}

func processStmts(stmts []ast.Statement, ctx *Context) ([]ast.Statement, error) {
	var out []ast.Statement
	for _, s := range stmts {
		processed, err := processStmt(s, ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, processed...)
	}
	return out, nil
}

func processExprs(exprs []ast.Expression, ctx *Context) ([]ast.Expression, error) {
	out := make([]ast.Expression, len(exprs))
	for i, e := range exprs {
		p, err := processExpr(e, ctx)
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}

// processExpr is pure lowering (concern A) interleaved with constant
// folding via partial evaluation (concern B) and compile-time directives
// (concern D).
func processExpr(expr ast.Expression, ctx *Context) (ast.Expression, error) {
	switch n := expr.(type) {
	case *ast.IntLiteral, *ast.StringLiteral, *ast.BoolLiteral:
		return n, nil

	case *ast.StructLiteral:
		fields := make([]ast.StructField, len(n.Fields))
		for i, f := range n.Fields {
			v, err := processExpr(f.Value, ctx)
			if err != nil {
				return nil, err
			}
			fields[i] = ast.StructField{Name: f.Name, Value: v}
		}
		return &ast.StructLiteral{Token: n.Token, TypeName: n.TypeName, Fields: fields}, nil

	case *ast.Variable:
		if v, ok := ctx.Env.Get(n.Name); ok {
			return ValueToLiteral(v)
		}
		return n, nil

	case *ast.ListLiteral:
		elems, err := processExprs(n.Elements, ctx)
		if err != nil {
			return nil, err
		}
		return &ast.ListLiteral{Token: n.Token, Elements: elems}, nil

	case *ast.BinaryOp:
		left, err := processExpr(n.Left, ctx)
		if err != nil {
			return nil, err
		}
		right, err := processExpr(n.Right, ctx)
		if err != nil {
			return nil, err
		}
		return &ast.BinaryOp{Token: n.Token, Left: left, Operator: n.Operator, Right: right}, nil

	case *ast.Call:
		args, err := processExprs(n.Args, ctx)
		if err != nil {
			return nil, err
		}
		callExpr := &ast.Call{Token: n.Token, Callee: n.Callee, Args: args}

		if _, ok := ctx.Env.Get(n.Callee); ok {
			in := interp.New(ctx.Decls, nil, ctx.Out)
			val, err := in.Eval(ctx.Env, callExpr)
			if err != nil {
				return nil, err
			}
			return ValueToLiteral(val)
		}
		return callExpr, nil

	case *ast.TypeofExpr:
		def, ok := ctx.Decls.Lookup(n.Name)
		if !ok {
			return nil, &diag.UnknownTypeError{Name: n.Name}
		}
		return &ast.StringLiteral{Token: n.Token, Value: def.String()}, nil

	case *ast.EmbedExpr:
		contents, ok := ctx.Resolver.ReadFile(ctx.RootDir, n.Path)
		if !ok {
			return nil, &diag.EmbedFailedError{Path: n.Path, Reason: "file not found"}
		}
		return &ast.StringLiteral{Token: n.Token, Value: contents}, nil

	default:
		return nil, &diag.UnimplementedError{Description: "unrecognized Blueprint expression node"}
	}
}

// processStmt returns zero, one, or many Expanded statements: struct and
// meta-only fn declarations emit nothing, `meta stmt` can emit many
// (whatever it gen-captured), and every other statement emits exactly one
// (spec.md §4.3's "Statement result shape").
func processStmt(stmt ast.Statement, ctx *Context) ([]ast.Statement, error) {
	switch n := stmt.(type) {
	case *ast.ExprStmt:
		e, err := processExpr(n.Expr, ctx)
		if err != nil {
			return nil, err
		}
		return []ast.Statement{&ast.ExprStmt{Token: n.Token, Expr: e}}, nil

	case *ast.VarStmt:
		v, err := processExpr(n.Value, ctx)
		if err != nil {
			return nil, err
		}
		return []ast.Statement{&ast.VarStmt{Token: n.Token, Name: n.Name, Value: v}}, nil

	case *ast.Assignment:
		v, err := processExpr(n.Value, ctx)
		if err != nil {
			return nil, err
		}
		return []ast.Statement{&ast.Assignment{Token: n.Token, Name: n.Name, Value: v}}, nil

	case *ast.PrintStmt:
		v, err := processExpr(n.Value, ctx)
		if err != nil {
			return nil, err
		}
		return []ast.Statement{&ast.PrintStmt{Token: n.Token, Value: v}}, nil

	case *ast.IfStmt:
		cond, err := processExpr(n.Cond, ctx)
		if err != nil {
			return nil, err
		}
		then, err := processToBlock(n.Then, ctx)
		if err != nil {
			return nil, err
		}
		var elseStmt ast.Statement
		if n.Else != nil {
			processedElse, err := processStmt(n.Else, ctx)
			if err != nil {
				return nil, err
			}
			if len(processedElse) == 1 {
				elseStmt = processedElse[0]
			} else {
				elseStmt = &ast.Block{Statements: processedElse}
			}
		}
		return []ast.Statement{&ast.IfStmt{Token: n.Token, Cond: cond, Then: then, Else: elseStmt}}, nil

	case *ast.ForStmt:
		iterable, err := processExpr(n.Iterable, ctx)
		if err != nil {
			return nil, err
		}
		body, err := processToBlock(n.Body, ctx)
		if err != nil {
			return nil, err
		}
		return []ast.Statement{&ast.ForStmt{Token: n.Token, Var: n.Var, Iterable: iterable, Body: body}}, nil

	case *ast.Block:
		processed, err := processStmts(n.Statements, ctx)
		if err != nil {
			return nil, err
		}
		return []ast.Statement{&ast.Block{Token: n.Token, Statements: processed}}, nil

	case *ast.FnDecl:
		return processFnDecl(n, ctx)

	case *ast.StructDecl:
		ctx.Decls.Define(n.Name, decl.FromDecl(n))
		return nil, nil

	case *ast.ReturnStmt:
		if n.Value == nil {
			return []ast.Statement{&ast.ReturnStmt{Token: n.Token}}, nil
		}
		v, err := processExpr(n.Value, ctx)
		if err != nil {
			return nil, err
		}
		return []ast.Statement{&ast.ReturnStmt{Token: n.Token, Value: v}}, nil

	case *ast.GenStmt:
		processed, err := processStmts(n.Stmts, ctx)
		if err != nil {
			return nil, err
		}
		return []ast.Statement{&ast.GenStmt{Token: n.Token, Stmts: processed}}, nil

	case *ast.MetaStmt:
		return processMetaStmt(n, ctx)

	case *ast.ImportStmt:
		return processImport(n, ctx)

	default:
		return nil, &diag.UnimplementedError{Description: "unrecognized Blueprint statement node"}
	}
}

// processFnDecl is concern C: struct/fn declaration side effects. A
// function whose FuncType allows meta execution is bound as a Function
// value in the meta environment; one whose FuncType allows runtime
// execution additionally emits an Expanded FnDecl. Pure does both; a
// meta-only fn contributes no node.
//
// The body is lowered once, before either world sees the function, so a
// recursive meta fn does not observe itself during its own lowering
// (spec.md §9's open question — kept as-is, matching the source revision).
func processFnDecl(n *ast.FnDecl, ctx *Context) ([]ast.Statement, error) {
	processedBody, err := processToBlock(n.Body, ctx)
	if err != nil {
		return nil, err
	}

	if n.FuncType.CanRunAtMeta() {
		fn := &value.Function{Name: n.Name, Params: n.Params, Body: processedBody, Closure: ctx.Env}
		ctx.Env.Define(n.Name, fn)
	}

	if n.FuncType.CanRunAtRuntime() {
		return []ast.Statement{&ast.FnDecl{Token: n.Token, Name: n.Name, FuncType: n.FuncType, Params: n.Params, Body: processedBody}}, nil
	}
	return nil, nil
}

// processMetaStmt is concern D's `meta stmt` directive: process stmt into
// Expanded form, install a fresh capture buffer, execute the processed
// code with that buffer active, then splice whatever it emitted into the
// output in the meta-statement's place.
func processMetaStmt(n *ast.MetaStmt, ctx *Context) ([]ast.Statement, error) {
	processedCode, err := processStmt(n.Inner, ctx)
	if err != nil {
		return nil, err
	}

	metaCtx := ctx.Meta.Push()
	defer ctx.Meta.Pop()

	in := interp.New(ctx.Decls, ctx.Meta, ctx.Out)
	if err := in.Run(ctx.Env, processedCode); err != nil {
		return nil, err
	}
	return metaCtx.Emitted, nil
}

// processImport supplements the distillation's Import stub: it resolves
// the named module's source through the resolver, parses it, and splices
// its own processed statements in at the import site. This exercises
// Resolver.ReadMod, which otherwise has no caller in the spec text.
func processImport(n *ast.ImportStmt, ctx *Context) ([]ast.Statement, error) {
	source, ok := ctx.Resolver.ReadMod(ctx.RootDir, n.ModuleName)
	if !ok {
		return nil, &diag.EmbedFailedError{Path: n.ModuleName, Reason: "module not found"}
	}

	tokens, err := lexer.Tokenize(source)
	if err != nil {
		return nil, err
	}
	prog, err := parser.Parse(tokens)
	if err != nil {
		return nil, err
	}
	return processStmts(prog.Statements, ctx)
}

// processToBlock canonicalises a single-statement if/for body into a
// Block node, and avoids doubly wrapping a statement that is already a
// Block: a processed Block statement must flatten to exactly one
// statement, which this function asserts (spec.md §4.3's debug-assert
// invariant — it must never fire on well-formed inputs).
func processToBlock(stmt ast.Statement, ctx *Context) (*ast.Block, error) {
	if _, isBlock := stmt.(*ast.Block); isBlock {
		processed, err := processStmt(stmt, ctx)
		if err != nil {
			return nil, err
		}
		if len(processed) != 1 {
			panic("block processing must produce exactly one statement")
		}
		block, ok := processed[0].(*ast.Block)
		if !ok {
			panic("block processing must produce a Block statement")
		}
		return block, nil
	}

	processed, err := processStmt(stmt, ctx)
	if err != nil {
		return nil, err
	}
	return &ast.Block{Statements: processed}, nil
}
