package ir

import "testing"

func TestTypeRefNominal(t *testing.T) {
	tests := []struct {
		name    string
		ref     TypeRef
		nominal bool
		last    string
	}{
		{"ident", NamedType("uint32"), true, "uint32"},
		{"qualified", NamedType("sdk", "Env"), true, "Env"},
		{"pointer", TypeRef{Kind: TypeReference, Text: "*sdk.Env"}, false, ""},
		{"empty path", TypeRef{Kind: TypePath}, false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ref.IsNominal(); got != tt.nominal {
				t.Errorf("IsNominal() = %v, want %v", got, tt.nominal)
			}
			if got := tt.ref.LastSegment(); got != tt.last {
				t.Errorf("LastSegment() = %q, want %q", got, tt.last)
			}
		})
	}
}

func TestReturnKind(t *testing.T) {
	if !Void.IsVoid() {
		t.Fatal("Void is not void")
	}
	r := Typed(NamedType("bool"))
	if r.IsVoid() || r.Type.String() != "bool" {
		t.Fatalf("unexpected typed return: %+v", r)
	}
}

func TestParamHasName(t *testing.T) {
	for name, want := range map[string]bool{"x": true, "": false, "_": false} {
		if got := (Param{Name: name}).HasName(); got != want {
			t.Errorf("HasName(%q) = %v, want %v", name, got, want)
		}
	}
}
