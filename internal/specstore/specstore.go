// Package specstore persists the spec records of a package in a msgpack
// sidecar next to its sources, so that embed can place them into the
// compiled module later.
package specstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/vmihailenco/msgpack/v5"

	"contractgen/internal/contract"
)

// SchemaVersion is bumped whenever the Sidecar layout changes.
const SchemaVersion uint16 = 1

// DefaultName is the file name of a sidecar inside a package directory.
const DefaultName = ".contractspec"

// ErrSchema is returned for sidecars written by an incompatible version.
var ErrSchema = errors.New("unsupported sidecar schema")

// Record is one spec record as stored on disk.
type Record struct {
	Name   string `msgpack:"name"`
	Symbol string `msgpack:"symbol"`
	Data   []byte `msgpack:"data"`
}

// Sidecar holds the spec records of one package, in source order.
type Sidecar struct {
	Schema  uint16   `msgpack:"schema"`
	Package string   `msgpack:"package"`
	Section string   `msgpack:"section"`
	Records []Record `msgpack:"records"`
}

// FromResults collects the spec records of the successful results.
func FromResults(pkg string, results []contract.Result) *Sidecar {
	sc := &Sidecar{
		Schema:  SchemaVersion,
		Package: pkg,
		Section: contract.SpecSection,
	}
	for i := range results {
		if !results[i].OK() {
			continue
		}
		spec := results[i].Spec
		sc.Records = append(sc.Records, Record{
			Name:   spec.Name,
			Symbol: spec.Symbol,
			Data:   slices.Clone(spec.Data),
		})
	}
	return sc
}

// Specs converts the stored records back into contract spec records.
func (s *Sidecar) Specs() []contract.SpecRecord {
	out := make([]contract.SpecRecord, len(s.Records))
	for i, r := range s.Records {
		out[i] = contract.SpecRecord{Name: r.Name, Symbol: r.Symbol, Data: r.Data}
	}
	return out
}

// Encode serialises s.
func Encode(s *Sidecar) ([]byte, error) {
	return msgpack.Marshal(s)
}

// Write stores s at path, replacing any previous file atomically.
func Write(path string, s *Sidecar) error {
	data, err := Encode(s)
	if err != nil {
		return fmt.Errorf("encode sidecar: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".contractspec-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// Read loads the sidecar at path.
func Read(path string) (*Sidecar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Sidecar
	if err := msgpack.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode sidecar %s: %w", path, err)
	}
	if s.Schema != SchemaVersion {
		return nil, fmt.Errorf("%w: %s has schema %d, want %d", ErrSchema, path, s.Schema, SchemaVersion)
	}
	return &s, nil
}

// Merge concatenates the records of several sidecars, keeping the first
// record for each symbol.
func Merge(sidecars ...*Sidecar) []contract.SpecRecord {
	seen := make(map[string]bool)
	var out []contract.SpecRecord
	for _, s := range sidecars {
		for _, r := range s.Specs() {
			if seen[r.Symbol] {
				continue
			}
			seen[r.Symbol] = true
			out = append(out, r)
		}
	}
	return out
}
