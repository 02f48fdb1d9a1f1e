package contract

import (
	"bytes"
	"testing"

	"contractgen/internal/ir"
)

func TestBuildSpec(t *testing.T) {
	tests := []struct {
		name  string
		types []ir.TypeRef
		want  string
	}{
		{"no params", nil, "None"},
		{"one ident", []ir.TypeRef{ir.NamedType("uint32")}, `Some(TokenStream [Ident("uint32")])`},
		{
			"qualified",
			[]ir.TypeRef{ir.NamedType("sdk", "Symbol")},
			`Some(TokenStream [Ident("sdk"), Punct('.'), Ident("Symbol")])`,
		},
		{
			"folded left to right",
			[]ir.TypeRef{ir.NamedType("uint32"), ir.NamedType("sdk", "Symbol"), ir.NamedType("bool")},
			`Some(TokenStream [Ident("uint32"), Ident("sdk"), Punct('.'), Ident("Symbol"), Ident("bool")])`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := BuildSpec("add", tt.types)
			if string(rec.Data) != tt.want {
				t.Errorf("data = %s, want %s", rec.Data, tt.want)
			}
			if rec.Symbol != "__SPEC_ADD" || rec.Name != "add" {
				t.Errorf("unexpected keys: %s %s", rec.Name, rec.Symbol)
			}
		})
	}
}

func TestEmptySpecIsDistinct(t *testing.T) {
	empty := BuildSpec("f", nil)
	one := BuildSpec("f", []ir.TypeRef{ir.NamedType("uint32")})
	if len(empty.Data) == 0 {
		t.Fatal("empty descriptor must not be empty bytes")
	}
	if bytes.HasPrefix(one.Data, empty.Data) || bytes.HasPrefix(empty.Data, one.Data) {
		t.Errorf("descriptors overlap: %q vs %q", empty.Data, one.Data)
	}
}

func TestSpecSymbol(t *testing.T) {
	tests := map[string]string{
		"add":        "__SPEC_ADD",
		"transferTo": "__SPEC_TRANSFERTO",
		"Mint_2":     "__SPEC_MINT_2",
		"café":       "__SPEC_CAFÉ",
	}
	for in, want := range tests {
		if got := SpecSymbol(in); got != want {
			t.Errorf("SpecSymbol(%q) = %q, want %q", in, got, want)
		}
	}
}
