package contract

import (
	"testing"

	"contractgen/internal/diag"
	"contractgen/internal/ir"
)

func codes(diags []diag.Diagnostic) []diag.Code {
	out := make([]diag.Code, len(diags))
	for i, d := range diags {
		out[i] = d.Code
	}
	return out
}

func TestValidate(t *testing.T) {
	u32 := ir.NamedType("uint32")
	pair := ir.TypeRef{Kind: ir.TypeTuple, Text: "struct{ A, B uint32 }"}
	ptr := ir.TypeRef{Kind: ir.TypeReference, Text: "*sdk.Env"}
	slice := ir.TypeRef{Kind: ir.TypeComposite, Text: "[]byte"}

	tests := []struct {
		name string
		sig  *ir.Signature
		want []diag.Code
	}{
		{"env only", sig("setup", ir.Void, envParam()), nil},
		{"env and nominal", sig("add", ir.Typed(ir.NamedType("bool")), envParam(), param("x", u32, 19)), nil},
		{"local Env type", sig("f", ir.Void, ir.Param{Name: "e", Type: ir.NamedType("Env")}), nil},
		{"no params", sig("f", ir.Void), []diag.Code{diag.CtrInvalidFirstParameter}},
		{"missing env", sig("f", ir.Void, param("x", u32, 6)), []diag.Code{diag.CtrInvalidFirstParameter}},
		{"env behind pointer", sig("f", ir.Void, param("env", ptr, 6)), []diag.Code{diag.CtrInvalidFirstParameter}},
		{
			"named receiver",
			sig("f", ir.Void, ir.Param{Kind: ir.ParamReceiver, Name: "c", Type: ir.NamedType("Counter")}, envParam()),
			[]diag.Code{diag.CtrInvalidFirstParameter},
		},
		{"tuple param", sig("f", ir.Void, envParam(), param("pair", pair, 19)), []diag.Code{diag.CtrUnsupportedParameterType}},
		{
			"every bad param reported",
			sig("f", ir.Void, envParam(), param("a", slice, 19), param("b", u32, 30), param("c", ptr, 40)),
			[]diag.Code{diag.CtrUnsupportedParameterType, diag.CtrUnsupportedParameterType},
		},
		{"blank name", sig("f", ir.Void, envParam(), param("_", u32, 19)), []diag.Code{diag.CtrMissingParameterIdentifier}},
		{"unnamed env", sig("f", ir.Void, ir.Param{Type: ir.NamedType("sdk", "Env")}), []diag.Code{diag.CtrMissingParameterIdentifier}},
		{
			"all problems at once",
			sig("f", ir.Void, param("x", u32, 6), param("", pair, 19)),
			[]diag.Code{diag.CtrInvalidFirstParameter, diag.CtrUnsupportedParameterType, diag.CtrMissingParameterIdentifier},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := codes(Validate(tt.sig))
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("diagnostic %d: got %s, want %s", i, got[i].ID(), tt.want[i].ID())
				}
			}
		})
	}
}

func TestValidateAnchors(t *testing.T) {
	pair := ir.TypeRef{Kind: ir.TypeTuple, Text: "struct{ A, B uint32 }"}
	p := param("pair", pair, 19)
	diags := Validate(sig("f", ir.Void, envParam(), p))
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(diags))
	}
	if diags[0].Primary != p.Type.Span {
		t.Errorf("anchored at %v, want %v", diags[0].Primary, p.Type.Span)
	}

	s := sig("f", ir.Void)
	diags = Validate(s)
	if len(diags) != 1 || diags[0].Primary != s.ParamsSpan {
		t.Errorf("empty parameter list should anchor at the list: %+v", diags)
	}
}

func TestValidateGoShapes(t *testing.T) {
	s := sig("f", ir.Typed(ir.NamedType("uint32")), envParam())
	s.ExtraResults = []ir.TypeRef{ir.NamedType("error")}
	s.TypeParams = []string{"T"}

	got := codes(Validate(s))
	want := []diag.Code{diag.CtrUnsupportedParameterType, diag.CtrUnsupportedReturnType}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("got %v, want %v", got, want)
	}
}
