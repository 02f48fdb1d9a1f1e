package contract

import (
	"fmt"

	"contractgen/internal/diag"
	"contractgen/internal/ir"
)

// Result is the output for one candidate: either a wrapper together with
// its spec record, or the diagnostics that replace them.
type Result struct {
	Candidate   Candidate
	Wrapper     *Wrapper
	Spec        *SpecRecord
	Diagnostics []diag.Diagnostic
}

// OK reports whether the candidate produced code.
func (r *Result) OK() bool {
	return r.Wrapper != nil && r.Spec != nil
}

// Transform runs validation and, when it passes, synthesis of the wrapper
// and the spec record.
func Transform(c Candidate) Result {
	if diags := Validate(c.Sig); len(diags) > 0 {
		return Result{Candidate: c, Diagnostics: diags}
	}
	w := Synthesize(c.Sig, c.Target)
	spec := BuildSpec(c.Sig.Name, w.ParamTypes())
	return Result{Candidate: c, Wrapper: &w, Spec: &spec}
}

// TransformFunction transforms a free function.
func TransformFunction(fn *ir.Function) []Result {
	return transformAll(SelectFunction(fn))
}

// TransformImpl transforms every selected method of b independently.
func TransformImpl(b *ir.ImplBlock) []Result {
	return transformAll(SelectImpl(b))
}

func transformAll(cands []Candidate) []Result {
	out := make([]Result, len(cands))
	for i, c := range cands {
		out[i] = Transform(c)
	}
	return out
}

// CheckDuplicates reports exports and spec symbols that collide within one
// set of results. Results are expected in source order; the later
// declaration is reported with a note at the earlier one.
func CheckDuplicates(results []Result) []diag.Diagnostic {
	var diags []diag.Diagnostic
	exports := make(map[string]*Result, len(results))
	specs := make(map[string]*Result, len(results))

	for i := range results {
		r := &results[i]
		if !r.OK() {
			continue
		}
		if prev, ok := exports[r.Wrapper.ExportName]; ok {
			diags = append(diags, diag.NewError(diag.CtrDuplicateExport, r.Candidate.Sig.NameSpan,
				fmt.Sprintf("export %q is declared more than once", r.Wrapper.ExportName)).
				WithNote(prev.Candidate.Sig.NameSpan, "previous declaration here"))
			continue
		}
		exports[r.Wrapper.ExportName] = r

		if prev, ok := specs[r.Spec.Symbol]; ok {
			diags = append(diags, diag.NewError(diag.CtrDuplicateExport, r.Candidate.Sig.NameSpan,
				fmt.Sprintf("spec symbol %s of %q collides with %q", r.Spec.Symbol, r.Spec.Name, prev.Spec.Name)).
				WithNote(prev.Candidate.Sig.NameSpan, "previous declaration here"))
			continue
		}
		specs[r.Spec.Symbol] = r
	}
	return diags
}
