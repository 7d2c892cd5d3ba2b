package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sling/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.sl",
	Short: "Parse a sling source file",
	Long:  `Parse checks the syntax of a sling source file and reports diagnostics`,
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	maxDiags, err := maxDiagnostics(cmd)
	if err != nil {
		return err
	}

	result, err := driver.Parse(args[0], maxDiags)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	renderDiagnostics(cmd, result.Bag, result.FileSet)
	if result.Bag.HasErrors() {
		return diagExitError(result.Bag)
	}

	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	if !quiet {
		file := result.Builder.Files.Get(result.FileID)
		fmt.Fprintf(os.Stdout, "%s: ok, %d top-level statements\n", result.File.Path, len(file.Stmts))
	}
	return nil
}
