package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/brendancron/cx/internal/decl"
	"github.com/brendancron/cx/internal/diag"
	"github.com/brendancron/cx/internal/pipeline"
	"github.com/brendancron/cx/internal/resolver"
	"github.com/spf13/cobra"
)

var (
	runOutDir string
	runDebug  bool
)

var runCmd = &cobra.Command{
	Use:   "run [source-path|-]",
	Short: "Run a cx script",
	Long: `Run lexes, parses, meta-processes, and interprets a cx script.

Examples:
  # Run a script file
  cx run script.cx

  # Run a script read from stdin
  cat script.cx | cx run -

  # Run with the debug trace, dumping each pipeline stage's intermediate
  # representation under OUTDIR
  cx run --debug --out debug/ script.cx`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runOutDir, "out", "", "directory to write --debug trace files to")
	runCmd.Flags().BoolVar(&runDebug, "debug", false, "dump intermediate pipeline representations to --out")
}

func runScript(_ *cobra.Command, args []string) error {
	src, filename, rootDir, err := readRunInput(args)
	if err != nil {
		return err
	}

	ctx := pipeline.NewCtx(decl.NewRegistry(), resolver.NewFileResolver(), os.Stdout, rootDir)
	ctx.Debug = runDebug
	ctx.OutDir = runOutDir

	run := pipeline.Run
	if runDebug {
		run = pipeline.RunDebug
	}

	if _, err := run(src, ctx); err != nil {
		fmt.Fprintln(os.Stderr, diag.Wrap(err, src, filename).Format(true))
		return fmt.Errorf("running %s failed", filename)
	}

	return nil
}

// readRunInput resolves the run command's positional argument into source
// text, a display filename, and the directory imports and embeds resolve
// against: a literal "-" (or no argument) reads stdin, anything else reads
// the named file.
func readRunInput(args []string) (src, filename, rootDir string, err error) {
	if len(args) == 0 || args[0] == "-" {
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
