// Command cx is the cx language CLI: run scripts, inspect the pipeline's
// intermediate representations, and reformat source.
package main

import (
	"os"

	"github.com/brendancron/cx/cmd/cx/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
