package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"contractgen/internal/inspect"
	"contractgen/internal/specstore"
)

func newInspectCmd() *cobra.Command {
	var sidecars []string
	var format string

	cmd := &cobra.Command{
		Use:   "inspect <module.wasm>",
		Short: "List exports and spec sections of a compiled module",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "text" && format != "json" {
				return fmt.Errorf("unsupported format %q (must be text or json)", format)
			}
			// #nosec G304 -- module path is given on the command line
			bin, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			report, err := inspect.Inspect(cmd.Context(), bin)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			verified := true
			if len(sidecars) > 0 {
				loaded := make([]*specstore.Sidecar, 0, len(sidecars))
				for _, path := range sidecars {
					s, err := specstore.Read(path)
					if err != nil {
						return err
					}
					loaded = append(loaded, s)
				}
				verified = report.Verify(specstore.Merge(loaded...))
			}

			if format == "json" {
				if err := inspect.WriteJSON(cmd.OutOrStdout(), report); err != nil {
					return err
				}
			} else {
				inspect.WriteText(cmd.OutOrStdout(), report)
			}
			if !verified {
				return exitError{code: 1}
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&sidecars, "spec", nil, "sidecar files to verify against the module exports")
	cmd.Flags().StringVar(&format, "format", "text", "output format (text|json)")
	return cmd
}
