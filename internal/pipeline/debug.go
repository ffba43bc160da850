package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/brendancron/cx/internal/ast"
	"github.com/brendancron/cx/internal/printer"
	"github.com/brendancron/cx/internal/token"
)

// writeDebugFile writes name under ctx.OutDir, creating the directory if
// needed.
func writeDebugFile(ctx *Ctx, name, content string) error {
	if ctx.OutDir == "" {
		return nil
	}
	if err := os.MkdirAll(ctx.OutDir, 0o755); err != nil {
		return fmt.Errorf("creating debug output directory: %w", err)
	}
	return os.WriteFile(filepath.Join(ctx.OutDir, name), []byte(content), 0o644)
}

func dumpSourceCode(src string, ctx *Ctx) error {
	return writeDebugFile(ctx, "source_code.cx", src)
}

func dumpTokens(toks []token.Token, ctx *Ctx) error {
	var sb strings.Builder
	for _, t := range toks {
		sb.WriteString(t.String())
		sb.WriteString("\n")
	}
	return writeDebugFile(ctx, "tokens.txt", sb.String())
}

func dumpParsedAST(prog *ast.Program, ctx *Ctx) error {
	return writeDebugFile(ctx, "parsed_ast.txt", prog.String())
}

func dumpExpandedAST(stmts []ast.Statement, ctx *Ctx) error {
	var sb strings.Builder
	for _, s := range stmts {
		sb.WriteString(s.String())
		sb.WriteString("\n")
	}
	return writeDebugFile(ctx, "expanded_ast.txt", sb.String())
}

func dumpExpandedCode(stmts []ast.Statement, ctx *Ctx) error {
	prog := &ast.Program{Statements: stmts}
	return writeDebugFile(ctx, "expanded_code.cx", printer.Print(prog, printer.DefaultSettings()))
}

// LexStageDebug, ParseStageDebug, and MetaStageDebug are the Standard
// stages wrapped with taps that serialize their output to ctx.OutDir
// when ctx.Debug is set (spec.md §4.6, SPEC_FULL.md §2.1/§5.8): source_code.cx,
// tokens.txt, parsed_ast.txt, expanded_ast.txt, expanded_code.cx.
var (
	LexStageDebug = Tap(LexStage, func(toks []token.Token, ctx *Ctx) error {
		if err := dumpSourceCode(ctx.lastSource, ctx); err != nil {
			return err
		}
		return dumpTokens(toks, ctx)
	})
	ParseStageDebug = Tap(ParseStage, dumpParsedAST)
	MetaStageDebug  = Tap(MetaStage, func(stmts []ast.Statement, ctx *Ctx) error {
		if err := dumpExpandedAST(stmts, ctx); err != nil {
			return err
		}
		return dumpExpandedCode(stmts, ctx)
	})
)

// StandardDebug interleaves the debug taps into the standard pipeline.
var StandardDebug = Then(Then(Then(LexStageDebug, ParseStageDebug), MetaStageDebug), InterpretStage)

// RunDebug executes StandardDebug over src using ctx, writing source_code.cx,
// tokens.txt, parsed_ast.txt, expanded_ast.txt, and expanded_code.cx to
// ctx.OutDir as it goes (only when ctx.Debug is true; ctx.OutDir must
// also be set or the taps are no-ops).
func RunDebug(src string, ctx *Ctx) ([]ast.Statement, error) {
	ctx.lastSource = src
	return StandardDebug.Run(src, ctx)
}
