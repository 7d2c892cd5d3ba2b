package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"sling/internal/driver"
	"sling/internal/sema"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [flags] file.sl",
	Short: "Resolve names and dump the scope forest",
	Long:  `Analyze resolves every identifier and prints the scope tree with its declarations`,
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().Bool("strict-globals", false, "reject undeclared identifiers instead of treating them as globals")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	maxDiags, err := maxDiagnostics(cmd)
	if err != nil {
		return err
	}
	strict, err := cmd.Flags().GetBool("strict-globals")
	if err != nil {
		return err
	}

	opts := driver.DefaultLowerOptions()
	opts.MaxDiagnostics = maxDiags
	opts.AllowUndeclaredGlobals = !strict

	result, err := driver.Analyze(args[0], opts)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	renderDiagnostics(cmd, result.Bag, result.FileSet)
	if result.Bag.HasErrors() {
		return diagExitError(result.Bag)
	}

	dumpScopes(os.Stdout, result)
	return nil
}

// dumpScopes печатает дерево скоупов в глубину, с декларациями в порядке
// слотов.
func dumpScopes(w io.Writer, res *driver.LowerResult) {
	if res.Sema == nil {
		return
	}
	interner := res.Builder.StringsInterner
	var walk func(id sema.ScopeID)
	walk = func(id sema.ScopeID) {
		scope := res.Sema.Scopes.Get(id)
		if scope == nil {
			return
		}
		indent := strings.Repeat("  ", int(scope.Depth))
		fmt.Fprintf(w, "%sscope #%d %s (depth %d)\n", indent, id, scope.Kind, scope.Depth)
		for _, declID := range scope.Decls {
			decl := res.Sema.Decls.Get(declID)
			if decl == nil {
				continue
			}
			name, _ := interner.Lookup(decl.Name)
			suffix := ""
			if decl.Builtin {
				suffix = " (builtin)"
			}
			fmt.Fprintf(w, "%s  %s %s%s\n", indent, decl.Kind, name, suffix)
		}
		for _, child := range scope.Children {
			walk(child)
		}
	}
	walk(res.Sema.Root)
}
