package contract

import (
	"fmt"

	"contractgen/internal/diag"
	"contractgen/internal/ir"
)

// EnvTypeName is the last path segment required of the first parameter.
const EnvTypeName = "Env"

// Validate checks that sig can be wrapped. It returns every problem found;
// an empty result means the signature is valid.
func Validate(sig *ir.Signature) []diag.Diagnostic {
	var diags []diag.Diagnostic

	if len(sig.Params) == 0 {
		diags = append(diags, diag.NewError(diag.CtrInvalidFirstParameter, sig.ParamsSpan,
			fmt.Sprintf("first argument must be of type %s, %s has no parameters", EnvTypeName, sig.Name)))
	} else {
		if d, ok := checkFirst(&sig.Params[0]); !ok {
			diags = append(diags, d)
		}
		for i := 1; i < len(sig.Params); i++ {
			if d, ok := checkRest(&sig.Params[i]); !ok {
				diags = append(diags, d)
			}
		}
	}

	for i := range sig.Params {
		p := &sig.Params[i]
		if p.Kind == ir.ParamTyped && !p.HasName() {
			diags = append(diags, diag.NewError(diag.CtrMissingParameterIdentifier, p.Span,
				fmt.Sprintf("parameter %d of %s must be bound to a name", i+1, sig.Name)))
		}
	}

	if len(sig.TypeParams) > 0 {
		diags = append(diags, diag.NewError(diag.CtrUnsupportedParameterType, sig.NameSpan,
			fmt.Sprintf("%s declares type parameters; contract functions cannot be generic", sig.Name)))
	}

	if len(sig.ExtraResults) > 0 {
		diags = append(diags, diag.NewError(diag.CtrUnsupportedReturnType, sig.ExtraResults[0].Span,
			fmt.Sprintf("%s returns more than one value; contract functions return at most one", sig.Name)))
	}

	return diags
}

func checkFirst(p *ir.Param) (diag.Diagnostic, bool) {
	msg := "first argument must be of type " + EnvTypeName
	if p.Kind == ir.ParamReceiver {
		return diag.NewError(diag.CtrInvalidFirstParameter, p.Span, msg+", not a method receiver").
			WithNote(p.Span, "use an unnamed receiver for stateless contract methods"), false
	}
	if p.Type.LastSegment() != EnvTypeName {
		return diag.NewError(diag.CtrInvalidFirstParameter, p.Type.Span,
			fmt.Sprintf("%s, found %s", msg, p.Type)), false
	}
	return diag.Diagnostic{}, true
}

func checkRest(p *ir.Param) (diag.Diagnostic, bool) {
	if p.Kind == ir.ParamReceiver {
		return diag.NewError(diag.CtrUnsupportedParameterType, p.Span, "argument type unsupported: method receiver"), false
	}
	if !p.Type.IsNominal() {
		return diag.NewError(diag.CtrUnsupportedParameterType, p.Type.Span,
			fmt.Sprintf("argument type unsupported: %s is a %s type", p.Type, p.Type.Kind)), false
	}
	return diag.Diagnostic{}, true
}
