package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"contractgen/internal/driver"
)

func newEmbedCmd() *cobra.Command {
	var opts driver.EmbedOptions

	cmd := &cobra.Command{
		Use:   "embed --wasm module.wasm --spec .contractspec...",
		Short: "Embed spec descriptors into a compiled module",
		Long: `Embed replaces the contractspecv0 custom sections of a compiled module with
one section per record of the given sidecars, then checks that every record
names an exported function.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := readGlobals(cmd)
			if err != nil {
				return err
			}
			if opts.Wasm == "" {
				return errors.New("--wasm is required")
			}
			if len(opts.Sidecars) == 0 {
				return errors.New("at least one --spec sidecar is required")
			}
			res, err := driver.Embed(cmd.Context(), opts)
			if err != nil {
				return err
			}
			if !g.quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "embedded %d spec records into %s\n", len(res.Records), res.Out)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.Wasm, "wasm", "", "compiled module to update")
	cmd.Flags().StringSliceVar(&opts.Sidecars, "spec", nil, "spec sidecar files (repeatable)")
	cmd.Flags().StringVar(&opts.Out, "out", "", "output module (default: overwrite --wasm)")
	cmd.Flags().BoolVar(&opts.NoVerify, "no-verify", false, "skip checking records against module exports")
	return cmd
}
