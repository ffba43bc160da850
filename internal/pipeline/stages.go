package pipeline

import (
	"github.com/brendancron/cx/internal/ast"
	"github.com/brendancron/cx/internal/interp"
	"github.com/brendancron/cx/internal/lexer"
	"github.com/brendancron/cx/internal/meta"
	"github.com/brendancron/cx/internal/metactx"
	"github.com/brendancron/cx/internal/parser"
	"github.com/brendancron/cx/internal/token"
	"github.com/brendancron/cx/internal/value"
)

// LexStage tokenizes source text.
var LexStage = New(func(src string, ctx *Ctx) ([]token.Token, error) {
	return lexer.Tokenize(src)
})

// ParseStage builds the Blueprint AST from a token stream.
var ParseStage = New(func(toks []token.Token, ctx *Ctx) (*ast.Program, error) {
	return parser.Parse(toks)
})

// MetaStage lowers the Blueprint AST into Expanded statements, partially
// evaluating meta-tagged code and splicing captured gen fragments along
// the way.
var MetaStage = New(func(prog *ast.Program, ctx *Ctx) ([]ast.Statement, error) {
	mctx := meta.NewContext(ctx.Resolver, ctx.MetaOut, ctx.RootDir)
	mctx.Decls = ctx.Decls
	return meta.Process(prog, mctx)
})

// InterpretStage executes the Expanded statement list in a fresh runtime
// environment. Runtime-world execution never shares a meta stack with
// the meta-processing pass that produced its input (spec.md §4.3).
var InterpretStage = New(func(stmts []ast.Statement, ctx *Ctx) ([]ast.Statement, error) {
	in := interp.New(ctx.Decls, metactx.NewMetaStack(), ctx.RuntimeOut)
	env := value.NewEnvironment()
	if err := in.Run(env, stmts); err != nil {
		return nil, err
	}
	return stmts, nil
})

// Standard is the non-debug `lex ▸ parse ▸ meta-process ▸ interpret`
// pipeline (spec.md §4.6).
var Standard = Then(Then(Then(LexStage, ParseStage), MetaStage), InterpretStage)

// Run executes Standard over src using ctx, returning the Expanded
// statement list that was interpreted.
func Run(src string, ctx *Ctx) ([]ast.Statement, error) {
	return Standard.Run(src, ctx)
}
