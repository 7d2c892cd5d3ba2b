package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"sling/internal/driver"
)

var lowerCmd = &cobra.Command{
	Use:   "lower [flags] [file.sl]",
	Short: "Lower a sling script to C++ source text",
	Long: `Lower runs the full pipeline on one script and prints the generated
translation unit. With no argument (or "-") the script is read from stdin.`,
	Args:         cobra.MaximumNArgs(1),
	RunE:         runLower,
	SilenceUsage: true,
}

func init() {
	lowerCmd.Flags().StringP("output", "o", "", "write the generated C++ to a file instead of stdout")
	lowerCmd.Flags().Bool("strict-globals", false, "reject undeclared identifiers instead of treating them as globals")
}

func runLower(cmd *cobra.Command, args []string) error {
	maxDiags, err := maxDiagnostics(cmd)
	if err != nil {
		return err
	}
	strict, err := cmd.Flags().GetBool("strict-globals")
	if err != nil {
		return err
	}
	outPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	opts := driver.DefaultLowerOptions()
	opts.MaxDiagnostics = maxDiags
	opts.AllowUndeclaredGlobals = !strict

	var result *driver.LowerResult
	if len(args) == 0 || args[0] == "-" {
		src, readErr := io.ReadAll(os.Stdin)
		if readErr != nil {
			return fmt.Errorf("failed to read stdin: %w", readErr)
		}
		result, err = driver.LowerBytes("<stdin>", src, opts)
	} else {
		result, err = driver.Lower(args[0], opts)
	}
	if err != nil {
		return fmt.Errorf("lowering failed: %w", err)
	}

	renderDiagnostics(cmd, result.Bag, result.FileSet)
	if result.Bag.HasErrors() {
		return diagExitError(result.Bag)
	}

	if outPath == "" {
		_, err = io.WriteString(os.Stdout, result.Output)
		return err
	}
	return os.WriteFile(outPath, []byte(result.Output), 0o644)
}
