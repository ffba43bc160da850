package pipeline_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/brendancron/cx/internal/decl"
	"github.com/brendancron/cx/internal/pipeline"
	"github.com/brendancron/cx/internal/resolver"
)

func newTestCtx(out *bytes.Buffer, rootDir string) *pipeline.Ctx {
	return &pipeline.Ctx{
		Decls:      decl.NewRegistry(),
		Resolver:   resolver.NewFileResolver(),
		MetaOut:    out,
		RuntimeOut: out,
		RootDir:    rootDir,
	}
}

func TestRunArithmetic(t *testing.T) {
	var out bytes.Buffer
	ctx := newTestCtx(&out, t.TempDir())
	if _, err := pipeline.Run("var x = 2 + 3 * 4; print(x);", ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := out.String(), "14\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestRunPropagatesParseError(t *testing.T) {
	var out bytes.Buffer
	ctx := newTestCtx(&out, t.TempDir())
	if _, err := pipeline.Run("var x = ;", ctx); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestRunDebugWritesIntermediateFiles(t *testing.T) {
	var out bytes.Buffer
	dir := t.TempDir()
	ctx := newTestCtx(&out, dir)
	ctx.Debug = true
	ctx.OutDir = filepath.Join(dir, "debug")

	if _, err := pipeline.RunDebug("print(1);", ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, name := range []string{"source_code.cx", "tokens.txt", "parsed_ast.txt", "expanded_ast.txt", "expanded_code.cx"} {
		if _, err := os.Stat(filepath.Join(ctx.OutDir, name)); err != nil {
			t.Errorf("expected debug file %s to exist: %v", name, err)
		}
	}
}

func TestRunDebugSkipsFilesWhenDebugFalse(t *testing.T) {
	var out bytes.Buffer
	dir := t.TempDir()
	ctx := newTestCtx(&out, dir)
	ctx.OutDir = filepath.Join(dir, "debug")

	if _, err := pipeline.RunDebug("print(1);", ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(ctx.OutDir); !os.IsNotExist(err) {
		t.Errorf("expected debug dir to not be created when Debug is false")
	}
}
