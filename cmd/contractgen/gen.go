package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"contractgen/internal/driver"
	"contractgen/internal/observ"
)

func newGenCmd() *cobra.Command {
	var flags runFlags
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "gen [dirs...]",
		Short: "Generate contract wrappers for Go packages",
		Long: `Generate parses the Go files of each package directory, transforms every
//contract:fn function and //contract:impl method into an exported wrapper and
a spec descriptor, and writes them to the generated file (contract_gen.go by
default). "dir/..." processes every package below dir.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := readGlobals(cmd)
			if err != nil {
				return err
			}
			if err := flags.validate(); err != nil {
				return err
			}

			timer := observ.NewTimer()
			idx := timer.Begin("config")
			opts, err := loadOptions(&flags, g)
			if err != nil {
				return err
			}
			opts.DryRun = dryRun
			dirs, err := packageDirs(args)
			if err != nil {
				return err
			}
			timer.End(idx, fmt.Sprintf("%d packages", len(dirs)))

			results, err := execute(cmd.Context(), "generating", dirs, opts, &flags, g)
			if err != nil {
				return err
			}
			if err := printDiagnostics(cmd.ErrOrStderr(), results, flags.format); err != nil {
				return err
			}
			if dryRun {
				printSources(cmd.OutOrStdout(), results)
			} else if !g.quiet {
				printSummary(cmd.OutOrStdout(), results)
			}
			if g.timings {
				printTimings(cmd.ErrOrStderr(), timer, opts.Timings)
			}
			if hasErrors(results) {
				return exitError{code: 1}
			}
			return nil
		},
	}
	addRunFlags(cmd, &flags)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print generated sources instead of writing them")
	return cmd
}

func printSummary(out io.Writer, results []*driver.PackageResult) {
	for _, r := range results {
		switch r.Action {
		case driver.ActionNone:
			continue
		case driver.ActionFailed:
			fmt.Fprintf(out, "%s %s\n", color.RedString("failed"), r.Dir)
		case driver.ActionRemoved:
			fmt.Fprintf(out, "%s %s\n", color.YellowString("removed"), r.OutputPath)
		default:
			fmt.Fprintf(out, "%-9s %s (%d exports)\n", r.Action, r.OutputPath, r.Exports())
		}
	}
}

func printSources(out io.Writer, results []*driver.PackageResult) {
	for _, r := range results {
		if len(r.Source) == 0 {
			continue
		}
		fmt.Fprintf(out, "// %s\n", filepath.ToSlash(r.OutputPath))
		if _, err := out.Write(r.Source); err != nil {
			return
		}
	}
}
