package driver

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"contractgen/internal/contract"
	"contractgen/internal/inspect"
	"contractgen/internal/specstore"
	"contractgen/internal/wasmsect"
)

// ErrMissingExports is returned by Embed when a spec record names a
// function the module does not export.
var ErrMissingExports = errors.New("spec records without matching exports")

// EmbedOptions configures Embed.
type EmbedOptions struct {
	Wasm     string
	Sidecars []string
	// Out defaults to Wasm, replacing the module in place.
	Out string
	// NoVerify skips checking the records against the module exports.
	NoVerify bool
}

// EmbedResult summarises an Embed call.
type EmbedResult struct {
	Out     string
	Records []contract.SpecRecord
	Report  *inspect.Report
}

// Embed replaces the contractspecv0 sections of a compiled module with one
// section per sidecar record.
func Embed(ctx context.Context, opts EmbedOptions) (*EmbedResult, error) {
	// #nosec G304 -- module path is given on the command line
	bin, err := os.ReadFile(opts.Wasm)
	if err != nil {
		return nil, fmt.Errorf("read module: %w", err)
	}

	sidecars := make([]*specstore.Sidecar, 0, len(opts.Sidecars))
	for _, path := range opts.Sidecars {
		s, err := specstore.Read(path)
		if err != nil {
			return nil, err
		}
		sidecars = append(sidecars, s)
	}
	records := specstore.Merge(sidecars...)

	payloads := make([][]byte, len(records))
	for i, r := range records {
		payloads[i] = r.Data
	}
	out, err := wasmsect.Replace(bin, contract.SpecSection, payloads)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opts.Wasm, err)
	}

	res := &EmbedResult{Out: opts.Out, Records: records}
	if res.Out == "" {
		res.Out = opts.Wasm
	}
	if !opts.NoVerify {
		report, err := inspect.Inspect(ctx, out)
		if err != nil {
			return nil, err
		}
		res.Report = report
		if !report.Verify(records) {
			return res, fmt.Errorf("%w: %v", ErrMissingExports, report.Missing)
		}
	}

	if err := os.WriteFile(res.Out, out, 0o600); err != nil {
		return nil, fmt.Errorf("write module: %w", err)
	}
	Logger().Info("spec sections embedded",
		zap.String("module", res.Out),
		zap.Int("records", len(records)),
		zap.Int("bytes", len(out)))
	return res, nil
}
