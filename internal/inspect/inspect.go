// Package inspect compiles a contract module with wazero and reports its
// exports and spec sections.
package inspect

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"contractgen/internal/contract"
)

// Export describes one exported function.
type Export struct {
	Name    string   `json:"name"`
	Params  []string `json:"params"`
	Results []string `json:"results"`
}

// Import names an imported function as module.name.
type Import struct {
	Module string `json:"module"`
	Name   string `json:"name"`
}

// Spec is the payload of one contractspecv0 section.
type Spec struct {
	Index int    `json:"index"`
	Data  string `json:"data"`
}

// Report is the result of inspecting a module.
type Report struct {
	Exports []Export `json:"exports"`
	Imports []Import `json:"imports,omitempty"`
	Specs   []Spec   `json:"specs"`
	// Missing lists spec records without a matching export; set by Verify.
	Missing []string `json:"missing,omitempty"`
}

// Inspect compiles bin without instantiating it.
func Inspect(ctx context.Context, bin []byte) (*Report, error) {
	rt := wazero.NewRuntimeWithConfig(ctx, wazero.NewRuntimeConfig().WithCustomSections(true))
	defer rt.Close(ctx)

	compiled, err := rt.CompileModule(ctx, bin)
	if err != nil {
		return nil, fmt.Errorf("compile module: %w", err)
	}
	defer compiled.Close(ctx)

	report := &Report{}
	for name, def := range compiled.ExportedFunctions() {
		report.Exports = append(report.Exports, Export{
			Name:    name,
			Params:  valueTypes(def.ParamTypes()),
			Results: valueTypes(def.ResultTypes()),
		})
	}
	sort.Slice(report.Exports, func(i, j int) bool { return report.Exports[i].Name < report.Exports[j].Name })

	for _, def := range compiled.ImportedFunctions() {
		module, name, ok := def.Import()
		if ok {
			report.Imports = append(report.Imports, Import{Module: module, Name: name})
		}
	}

	for _, sec := range compiled.CustomSections() {
		if sec.Name() != contract.SpecSection {
			continue
		}
		report.Specs = append(report.Specs, Spec{Index: len(report.Specs), Data: string(sec.Data())})
	}

	Logger().Debug("module inspected",
		zap.Int("exports", len(report.Exports)),
		zap.Int("imports", len(report.Imports)),
		zap.Int("specs", len(report.Specs)))
	return report, nil
}

func valueTypes(types []api.ValueType) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = api.ValueTypeName(t)
	}
	return out
}

// Verify records in r.Missing every spec whose function is not exported
// under its identifier, and reports whether none are missing.
func (r *Report) Verify(specs []contract.SpecRecord) bool {
	exported := make(map[string]bool, len(r.Exports))
	for _, e := range r.Exports {
		exported[e.Name] = true
	}
	r.Missing = r.Missing[:0]
	for _, s := range specs {
		if !exported[s.Name] {
			r.Missing = append(r.Missing, s.Name)
			Logger().Warn("spec without export", zap.String("name", s.Name), zap.String("symbol", s.Symbol))
		}
	}
	return len(r.Missing) == 0
}

// WriteText prints r for humans.
func WriteText(w io.Writer, r *Report) {
	fmt.Fprintf(w, "exports (%d):\n", len(r.Exports))
	for _, e := range r.Exports {
		fmt.Fprintf(w, "  %s(%s) -> (%s)\n", e.Name, strings.Join(e.Params, ", "), strings.Join(e.Results, ", "))
	}
	if len(r.Imports) > 0 {
		fmt.Fprintf(w, "imports (%d):\n", len(r.Imports))
		for _, imp := range r.Imports {
			fmt.Fprintf(w, "  %s.%s\n", imp.Module, imp.Name)
		}
	}
	fmt.Fprintf(w, "%s sections (%d):\n", contract.SpecSection, len(r.Specs))
	for _, s := range r.Specs {
		fmt.Fprintf(w, "  [%d] %s\n", s.Index, s.Data)
	}
	if len(r.Missing) > 0 {
		fmt.Fprintf(w, "missing exports: %s\n", strings.Join(r.Missing, ", "))
	}
}

// WriteJSON prints r as indented JSON.
func WriteJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
