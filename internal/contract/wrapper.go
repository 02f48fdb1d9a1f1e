package contract

import "contractgen/internal/ir"

// WrapperPrefix is prepended to the original identifier to form the
// internal Go name of a wrapper.
const WrapperPrefix = "__"

// CallTarget names what a wrapper delegates to: a package function, or a
// method invoked on a zero value of Receiver.
type CallTarget struct {
	Func     string
	Receiver string
}

// Expr renders the call target as a Go expression.
func (c CallTarget) Expr() string {
	if c.Receiver == "" {
		return c.Func
	}
	return "new(" + c.Receiver + ")." + c.Func
}

// WrapParam is a wrapper parameter together with the type it decodes to.
type WrapParam struct {
	Name string
	Type ir.TypeRef
}

// Wrapper is the ABI entry point generated for one contract function.
// Every parameter but Env is passed as a RawVal and decoded to its Type.
type Wrapper struct {
	// ExportName is the symbol external callers use; always the original identifier.
	ExportName string
	// Symbol is the Go name of the wrapper function.
	Symbol string
	Env    WrapParam
	Params []WrapParam
	Target CallTarget
	Return ir.ReturnKind
}

// Synthesize builds the wrapper for a signature that passed Validate.
func Synthesize(sig *ir.Signature, target CallTarget) Wrapper {
	w := Wrapper{
		ExportName: sig.Name,
		Symbol:     WrapperPrefix + sig.Name,
		Env:        WrapParam{Name: sig.Params[0].Name, Type: sig.Params[0].Type},
		Params:     make([]WrapParam, 0, len(sig.Params)-1),
		Target:     target,
		Return:     sig.Return,
	}
	for _, p := range sig.Params[1:] {
		w.Params = append(w.Params, WrapParam{Name: p.Name, Type: p.Type})
	}
	return w
}

// ParamTypes returns the original types of the non-environment parameters.
func (w *Wrapper) ParamTypes() []ir.TypeRef {
	types := make([]ir.TypeRef, len(w.Params))
	for i, p := range w.Params {
		types[i] = p.Type
	}
	return types
}
