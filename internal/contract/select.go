package contract

import (
	"contractgen/internal/ir"
	"contractgen/internal/source"
)

// Candidate is a declaration chosen for transformation.
type Candidate struct {
	Sig    *ir.Signature
	Target CallTarget
	Span   source.Span
}

// SelectFunction returns the single candidate of a free function.
func SelectFunction(fn *ir.Function) []Candidate {
	return []Candidate{{
		Sig:    &fn.Sig,
		Target: CallTarget{Func: fn.Sig.Name},
		Span:   fn.Span,
	}}
}

// SelectImpl returns the methods of b that become contract functions: all
// of them when b satisfies a contract interface, otherwise only the public
// ones. Non-method items are ignored.
func SelectImpl(b *ir.ImplBlock) []Candidate {
	var out []Candidate
	for i := range b.Items {
		item := &b.Items[i]
		if item.Kind != ir.ItemMethod || item.Method == nil {
			continue
		}
		if !b.HasContract() && item.Visibility != ir.Public {
			continue
		}
		out = append(out, Candidate{
			Sig:    &item.Method.Sig,
			Target: CallTarget{Func: item.Name, Receiver: b.SelfType.String()},
			Span:   item.Span,
		})
	}
	return out
}
