package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"contractgen/internal/directive"
	"contractgen/internal/driver"
)

func newCheckCmd() *cobra.Command {
	var flags runFlags
	var stale bool
	var list string
	var warningsAsErrors bool

	cmd := &cobra.Command{
		Use:   "check [dirs...]",
		Short: "Validate contract declarations without writing files",
		Long: `Check runs the generator without writing anything and exits with status 1
when a package has error diagnostics, or with --stale, when a generated file
is out of date.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := readGlobals(cmd)
			if err != nil {
				return err
			}
			if err := flags.validate(); err != nil {
				return err
			}
			kinds, err := parseKinds(list)
			if err != nil {
				return err
			}
			opts, err := loadOptions(&flags, g)
			if err != nil {
				return err
			}
			opts.Mode = driver.ModeCheck
			dirs, err := packageDirs(args)
			if err != nil {
				return err
			}

			results, err := execute(cmd.Context(), "checking", dirs, opts, &flags, g)
			if err != nil {
				return err
			}
			if err := printDiagnostics(cmd.ErrOrStderr(), results, flags.format); err != nil {
				return err
			}

			if list != "" {
				for _, r := range results {
					if r.Registry.Len() == 0 {
						continue
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s:\n", r.Dir)
					directive.NewLister(r.Registry, directive.ListerConfig{
						Filter: kinds,
						Output: cmd.OutOrStdout(),
						Files:  r.Files,
					}).List()
				}
			}

			failed := hasErrors(results)
			if warningsAsErrors {
				for _, r := range results {
					failed = failed || r.Bag.HasWarnings()
				}
			}
			if stale {
				for _, r := range results {
					if r.Action == driver.ActionStale {
						fmt.Fprintf(cmd.ErrOrStderr(), "stale: %s\n", r.OutputPath)
						failed = true
					}
				}
			}
			if failed {
				return exitError{code: 1}
			}
			return nil
		},
	}
	addRunFlags(cmd, &flags)
	cmd.Flags().BoolVar(&stale, "stale", false, "fail when a generated file is out of date")
	cmd.Flags().BoolVar(&warningsAsErrors, "warnings-as-errors", false, "fail on warnings as well as errors")
	cmd.Flags().StringVar(&list, "list", "", "list directives of the given kinds (all|fn|impl, comma separated)")
	return cmd
}

func parseKinds(value string) ([]directive.Kind, error) {
	if value == "" || value == "all" {
		return nil, nil
	}
	var kinds []directive.Kind
	for _, part := range strings.Split(value, ",") {
		switch strings.TrimSpace(part) {
		case "fn":
			kinds = append(kinds, directive.KindFn)
		case "impl":
			kinds = append(kinds, directive.KindImpl)
		case "all":
			return nil, nil
		default:
			return nil, fmt.Errorf("unknown directive kind %q (expected all|fn|impl)", part)
		}
	}
	return kinds, nil
}
