package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"sling/internal/driver"
	"sling/internal/project"
	"sling/internal/ui"
	runtimeembed "sling/runtime"
)

var buildCmd = &cobra.Command{
	Use:   "build [flags] [dir]",
	Short: "Build a sling project or a directory of scripts",
	Long: `Build looks for sling.toml upward from the given directory (default ".")
and lowers the project entry into its configured output. Without a manifest
every *.sl file under the directory is lowered next to itself.`,
	Args:         cobra.MaximumNArgs(1),
	RunE:         runBuild,
	SilenceUsage: true,
}

func init() {
	buildCmd.Flags().Bool("no-cache", false, "bypass the on-disk artifact cache")
	buildCmd.Flags().Int("jobs", 0, "number of parallel jobs (0 = GOMAXPROCS)")
	buildCmd.Flags().String("ui", "auto", "progress UI for directory builds (auto|on|off)")
	buildCmd.Flags().Bool("strict-globals", false, "reject undeclared identifiers instead of treating them as globals")
}

func runBuild(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	maxDiags, err := maxDiagnostics(cmd)
	if err != nil {
		return err
	}
	strict, _ := cmd.Flags().GetBool("strict-globals")
	noCache, _ := cmd.Flags().GetBool("no-cache")

	opts := driver.DefaultLowerOptions()
	opts.MaxDiagnostics = maxDiags
	opts.AllowUndeclaredGlobals = !strict

	manifest, found, err := project.FindManifest(dir)
	if err != nil {
		return err
	}
	if found {
		return buildProject(cmd, manifest, opts, noCache)
	}
	return buildDirectory(cmd, dir, opts)
}

func buildProject(cmd *cobra.Command, manifest *project.Manifest, opts driver.LowerOptions, noCache bool) error {
	var result *driver.LowerResult
	var err error
	cached := false

	if noCache {
		result, err = driver.Lower(manifest.EntryPath(), opts)
	} else {
		var cache *driver.DiskCache
		cache, err = driver.OpenDiskCache("sling")
		if err != nil {
			return err
		}
		result, cached, err = driver.LowerCached(manifest.EntryPath(), opts, cache)
	}
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	renderDiagnostics(cmd, result.Bag, result.FileSet)
	if !result.Ok() {
		return diagExitError(result.Bag)
	}

	outPath := manifest.OutputPath()
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(outPath, []byte(result.Output), 0o644); err != nil {
		return err
	}

	// Рядом с выводом кладём заголовок рантайма, если настроен include.
	if includeDir := manifest.Config.Build.Include; includeDir != "" {
		header, err := runtimeembed.Header()
		if err != nil {
			return err
		}
		absInclude := includeDir
		if !filepath.IsAbs(absInclude) {
			absInclude = filepath.Join(manifest.Root, absInclude)
		}
		if err := os.MkdirAll(absInclude, 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(absInclude, "sling_rt.h"), header, 0o644); err != nil {
			return err
		}
	}

	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	if !quiet {
		note := ""
		if cached {
			note = " (cached)"
		}
		fmt.Fprintf(os.Stdout, "%s -> %s%s\n", manifest.EntryPath(), outPath, note)
	}
	return nil
}

func buildDirectory(cmd *cobra.Command, dir string, opts driver.LowerOptions) error {
	jobs, _ := cmd.Flags().GetInt("jobs")
	uiFlag, _ := cmd.Flags().GetString("ui")
	withTUI, err := resolveTUI(uiFlag)
	if err != nil {
		return err
	}

	var events chan driver.Event
	var uiDone chan error
	if withTUI {
		files, listErr := driver.ListSources(dir)
		if listErr != nil {
			return listErr
		}
		events = make(chan driver.Event, 2*len(files))
		uiDone = make(chan error, 1)
		prog := tea.NewProgram(ui.NewProgressModel("sling build "+dir, files, events))
		go func() {
			_, runErr := prog.Run()
			uiDone <- runErr
		}()
	}

	results, err := driver.LowerDir(cmd.Context(), dir, opts, jobs, events)
	if events != nil {
		close(events)
		<-uiDone
	}
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		renderDiagnostics(cmd, r.Result.Bag, r.Result.FileSet)
		if !r.Result.Ok() {
			failed++
			continue
		}
		outPath := strings.TrimSuffix(r.Path, ".sl") + ".cpp"
		if err := os.WriteFile(outPath, []byte(r.Result.Output), 0o644); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(results))
	}
	if len(results) == 0 {
		return fmt.Errorf("no *.sl files under %s", dir)
	}
	return nil
}
