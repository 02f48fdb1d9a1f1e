package driver

import (
	"contractgen/internal/contract"
	"contractgen/internal/diag"
	"contractgen/internal/directive"
	"contractgen/internal/source"
	"contractgen/internal/specstore"
)

// Action is what happened to a package's generated file.
type Action uint8

const (
	// ActionNone means the package has no candidates and no generated file.
	ActionNone Action = iota
	ActionWritten
	ActionUnchanged
	// ActionRemoved means a stale generated file was deleted.
	ActionRemoved
	// ActionStale means the file on disk differs from what would be
	// generated; only reported in check mode.
	ActionStale
	// ActionFailed means error diagnostics prevented output.
	ActionFailed
)

func (a Action) String() string {
	switch a {
	case ActionWritten:
		return "written"
	case ActionUnchanged:
		return "unchanged"
	case ActionRemoved:
		return "removed"
	case ActionStale:
		return "stale"
	case ActionFailed:
		return "failed"
	}
	return "none"
}

// PackageResult is the outcome of processing one package directory.
type PackageResult struct {
	Dir     string
	Name    string
	Files   *source.FileSet
	Bag     *diag.Bag
	Results []contract.Result
	// Registry holds the directives found in the package.
	Registry *directive.Registry

	// OutputPath is the generated file; Source is its rendered content.
	OutputPath  string
	Source      []byte
	SidecarPath string
	Sidecar     *specstore.Sidecar
	Action      Action
}

// Exports counts the results that produced a wrapper.
func (r *PackageResult) Exports() int {
	n := 0
	for i := range r.Results {
		if r.Results[i].OK() {
			n++
		}
	}
	return n
}

// HasErrors reports whether the package has error diagnostics.
func (r *PackageResult) HasErrors() bool {
	return r.Bag != nil && r.Bag.HasErrors()
}
