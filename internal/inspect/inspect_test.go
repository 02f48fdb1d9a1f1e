package inspect

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"contractgen/internal/contract"
	"contractgen/internal/wasmsect"
)

// addModule exports "add" of type (i64) -> i64.
var addModule = []byte{
	0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00,
	0x01, 0x06, 0x01, 0x60, 0x01, 0x7e, 0x01, 0x7e,
	0x03, 0x02, 0x01, 0x00,
	0x07, 0x07, 0x01, 0x03, 'a', 'd', 'd', 0x00, 0x00,
	0x0a, 0x06, 0x01, 0x04, 0x00, 0x20, 0x00, 0x0b,
}

func embedded(t *testing.T) []byte {
	t.Helper()
	bin, err := wasmsect.Replace(addModule, contract.SpecSection, [][]byte{
		[]byte(`Some(TokenStream [Ident("uint64")])`),
	})
	if err != nil {
		t.Fatal(err)
	}
	return bin
}

func TestInspect(t *testing.T) {
	report, err := Inspect(context.Background(), embedded(t))
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if len(report.Exports) != 1 {
		t.Fatalf("expected 1 export, got %+v", report.Exports)
	}
	add := report.Exports[0]
	if add.Name != "add" || len(add.Params) != 1 || add.Params[0] != "i64" || add.Results[0] != "i64" {
		t.Errorf("unexpected export: %+v", add)
	}
	if len(report.Specs) != 1 || !strings.Contains(report.Specs[0].Data, "uint64") {
		t.Errorf("unexpected specs: %+v", report.Specs)
	}
}

func TestInspectRejectsGarbage(t *testing.T) {
	if _, err := Inspect(context.Background(), []byte("garbage")); err == nil {
		t.Error("expected an error")
	}
}

func TestVerify(t *testing.T) {
	report, err := Inspect(context.Background(), addModule)
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	specs := []contract.SpecRecord{
		{Name: "add", Symbol: "__SPEC_ADD"},
		{Name: "sub", Symbol: "__SPEC_SUB"},
	}
	if report.Verify(specs) {
		t.Error("expected verification to fail")
	}
	if len(report.Missing) != 1 || report.Missing[0] != "sub" {
		t.Errorf("missing = %v", report.Missing)
	}
	if !report.Verify(specs[:1]) {
		t.Error("expected verification to pass")
	}
}

func TestWriters(t *testing.T) {
	report, err := Inspect(context.Background(), embedded(t))
	if err != nil {
		t.Fatal(err)
	}

	var text bytes.Buffer
	WriteText(&text, report)
	if !strings.Contains(text.String(), "add(i64) -> (i64)") || !strings.Contains(text.String(), "contractspecv0 sections (1)") {
		t.Errorf("unexpected text:\n%s", text.String())
	}

	var js bytes.Buffer
	if err := WriteJSON(&js, report); err != nil {
		t.Fatal(err)
	}
	var back Report
	if err := json.Unmarshal(js.Bytes(), &back); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(back.Exports) != 1 || back.Exports[0].Name != "add" {
		t.Errorf("unexpected json report: %+v", back)
	}
}
