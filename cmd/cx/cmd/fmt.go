package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/brendancron/cx/internal/ast"
	"github.com/brendancron/cx/internal/decl"
	"github.com/brendancron/cx/internal/diag"
	"github.com/brendancron/cx/internal/lexer"
	"github.com/brendancron/cx/internal/meta"
	"github.com/brendancron/cx/internal/parser"
	"github.com/brendancron/cx/internal/printer"
	"github.com/brendancron/cx/internal/resolver"
	"github.com/spf13/cobra"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [source-path]",
	Short: "Pretty-print a cx script",
	Long: `Fmt lexes, parses, and meta-processes a cx script, then feeds the
resulting Expanded AST through the pretty-printer, writing the formatted
source to stdout. With no argument it reads from stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFmt,
}

func init() {
	rootCmd.AddCommand(fmtCmd)
}

func runFmt(_ *cobra.Command, args []string) error {
	src, filename, rootDir, err := readFmtInput(args)
	if err != nil {
		return err
	}

	formatted, err := formatSource(src, rootDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, diag.Wrap(err, src, filename).Format(true))
		return fmt.Errorf("formatting %s failed", filename)
	}

	fmt.Print(formatted)
	return nil
}

func readFmtInput(args []string) (src, filename, rootDir string, err error) {
	if len(args) == 0 {
		data, readErr := io.ReadAll(os.Stdin)
		if readErr != nil {
			return "", "", "", fmt.Errorf("reading stdin: %w", readErr)
		}
		return string(data), "<stdin>", ".", nil
	}

	filename = args[0]
	data, readErr := os.ReadFile(filename)
	if readErr != nil {
		return "", "", "", fmt.Errorf("reading %s: %w", filename, readErr)
	}
	return string(data), filename, filepath.Dir(filename), nil
}

// formatSource runs a script through the lexer, parser, and meta-processor
// and pretty-prints the resulting Expanded AST. It deliberately stops
// before interpretation: formatting must not run a script's side effects.
func formatSource(src, rootDir string) (string, error) {
	toks, err := lexer.Tokenize(src)
	if err != nil {
		return "", err
	}

	prog, err := parser.Parse(toks)
	if err != nil {
		return "", err
	}

	var discard discardWriter
	mctx := meta.NewContext(resolver.NewFileResolver(), discard, rootDir)
	mctx.Decls = decl.NewRegistry()
	stmts, err := meta.Process(prog, mctx)
	if err != nil {
		return "", err
	}

	expanded := &ast.Program{Statements: stmts}
	return printer.Print(expanded, printer.DefaultSettings()), nil
}

// discardWriter swallows meta-time `print` output: fmt formats source, it
// never surfaces a script's side effects.
type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }
