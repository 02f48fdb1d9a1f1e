package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"contractgen/internal/diag"
	"contractgen/internal/diagfmt"
	"contractgen/internal/driver"
	"contractgen/internal/observ"
	"contractgen/internal/pipeline"
	"contractgen/internal/project"
)

type globalFlags struct {
	quiet          bool
	timings        bool
	maxDiagnostics int
}

func readGlobals(cmd *cobra.Command) (globalFlags, error) {
	var g globalFlags
	var err error
	if g.quiet, err = cmd.Flags().GetBool("quiet"); err != nil {
		return g, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if g.timings, err = cmd.Flags().GetBool("timings"); err != nil {
		return g, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if g.maxDiagnostics, err = cmd.Flags().GetInt("max-diagnostics"); err != nil {
		return g, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	return g, nil
}

// runFlags are shared by gen and check.
type runFlags struct {
	target string
	output string
	jobs   int
	format string
	ui     string
}

func addRunFlags(cmd *cobra.Command, f *runFlags) {
	cmd.Flags().StringVar(&f.target, "target", "", "code generation target (wasm|host); overrides contractgen.toml")
	cmd.Flags().StringVar(&f.output, "output", "", "generated file name; overrides contractgen.toml")
	cmd.Flags().IntVar(&f.jobs, "jobs", 0, "max parallel jobs (0=auto)")
	cmd.Flags().StringVar(&f.format, "format", "pretty", "diagnostics format (pretty|json|short)")
	cmd.Flags().StringVar(&f.ui, "ui", "auto", "progress view (auto|on|off)")
}

func (f *runFlags) validate() error {
	switch f.format {
	case "pretty", "json", "short":
	default:
		return fmt.Errorf("unknown format %q (expected pretty|json|short)", f.format)
	}
	switch f.uiMode() {
	case "auto", "on", "off":
	default:
		return fmt.Errorf("invalid --ui value %q (expected auto|on|off)", f.ui)
	}
	return nil
}

func (f *runFlags) uiMode() string {
	if mode := strings.ToLower(strings.TrimSpace(f.ui)); mode != "" {
		return mode
	}
	return "auto"
}

// showProgress reports whether the progress view replaces plain output.
// It only accompanies pretty diagnostics; --ui=auto follows tty.
func (f *runFlags) showProgress(g globalFlags, tty bool) bool {
	if g.quiet || f.format != "pretty" {
		return false
	}
	switch f.uiMode() {
	case "on":
		return true
	case "off":
		return false
	}
	return tty
}

// loadOptions reads contractgen.toml from the working directory upwards and
// applies flag overrides.
func loadOptions(f *runFlags, g globalFlags) (driver.Options, error) {
	wd, err := os.Getwd()
	if err != nil {
		return driver.Options{}, err
	}
	manifest, err := project.LoadManifest(wd)
	if err != nil {
		return driver.Options{}, err
	}
	cfg := manifest.Config
	if f.target != "" {
		cfg.Generate.Target = f.target
		if f.target == "host" {
			cfg.Generate.BuildTags = ""
		}
	}
	if f.output != "" {
		cfg.Generate.Output = f.output
	}
	if err := cfg.Validate(); err != nil {
		return driver.Options{}, err
	}

	opts := driver.OptionsFromConfig(&cfg)
	opts.Jobs = f.jobs
	opts.MaxDiagnostics = g.maxDiagnostics
	opts.Timings = &pipeline.Timings{}
	return opts, nil
}

// packageDirs resolves the arguments to package directories; "dir/..."
// expands to every directory below dir.
func packageDirs(args []string) ([]string, error) {
	if len(args) == 0 {
		args = []string{"."}
	}
	var dirs []string
	seen := make(map[string]bool)
	add := func(dir string) {
		dir = filepath.Clean(dir)
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	for _, arg := range args {
		root, recursive := strings.CutSuffix(arg, "/...")
		if root == "" {
			root = "."
		}
		st, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !st.IsDir() {
			return nil, fmt.Errorf("%s is not a directory", root)
		}
		if !recursive {
			add(root)
			continue
		}
		err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				return nil
			}
			name := d.Name()
			if path != root && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == "testdata" || name == "vendor") {
				return filepath.SkipDir
			}
			add(path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return dirs, nil
}

// execute runs the driver, with the progress view when requested.
func execute(ctx context.Context, title string, dirs []string, opts driver.Options, f *runFlags, g globalFlags) ([]*driver.PackageResult, error) {
	if f.showProgress(g, isTerminal(os.Stdout)) {
		return runWithUI(ctx, title, dirs, opts)
	}
	return driver.Run(ctx, dirs, opts)
}

// printDiagnostics renders the diagnostics of every package.
func printDiagnostics(out io.Writer, results []*driver.PackageResult, format string) error {
	switch format {
	case "pretty":
		opts := diagfmt.PrettyOpts{Color: !color.NoColor, ShowNotes: true}
		for _, r := range results {
			if r.Bag.Len() > 0 {
				diagfmt.Pretty(out, r.Bag, r.Files, opts)
			}
		}
	case "short":
		for _, r := range results {
			if s := diag.FormatShortDiagnostics(r.Bag.Items(), r.Files, true); s != "" {
				fmt.Fprintln(out, s)
			}
		}
	case "json":
		payload := make(map[string]diagfmt.DiagnosticsOutput, len(results))
		for _, r := range results {
			payload[r.Dir] = diagfmt.BuildDiagnosticsOutput(r.Bag, r.Files, diagfmt.JSONOpts{
				IncludePositions: true,
				IncludeNotes:     true,
			})
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(payload); err != nil {
			return fmt.Errorf("failed to format diagnostics: %w", err)
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	return nil
}

func hasErrors(results []*driver.PackageResult) bool {
	for _, r := range results {
		if r.HasErrors() {
			return true
		}
	}
	return false
}

func printTimings(out io.Writer, timer *observ.Timer, timings *pipeline.Timings) {
	for _, stage := range pipeline.Stages {
		timer.Record(string(stage), timings.Duration(stage), "summed over packages")
	}
	fmt.Fprint(out, timer.Summary())
}
