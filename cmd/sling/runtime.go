package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	runtimeembed "sling/runtime"
)

var runtimeCmd = &cobra.Command{
	Use:   "runtime [flags]",
	Short: "Print or export the native runtime header",
	Long: `Runtime dumps the embedded sling_rt.h the generated C++ compiles
against. With --out it is written into the given directory instead.`,
	Args: cobra.NoArgs,
	RunE: runRuntime,
}

func init() {
	runtimeCmd.Flags().String("out", "", "directory to write sling_rt.h into")
}

func runRuntime(cmd *cobra.Command, args []string) error {
	header, err := runtimeembed.Header()
	if err != nil {
		return err
	}

	outDir, err := cmd.Flags().GetString("out")
	if err != nil {
		return err
	}
	if outDir == "" {
		_, err = os.Stdout.Write(header)
		return err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outDir, "sling_rt.h"), header, 0o644)
}
