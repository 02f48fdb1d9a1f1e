package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"contractgen/internal/diag"
	"contractgen/internal/source"
)

func newJSONFixture() (*diag.Bag, *source.FileSet) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("pair.go", []byte("func Sum(env sdk.Env, pair struct{ A, B uint32 }) {}\n"))
	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.CtrUnsupportedParameterType, source.Span{File: fileID, Start: 22, End: 49}, "unsupported parameter type").
		WithNote(source.Span{File: fileID, Start: 5, End: 8}, "in function Sum"))
	bag.Add(diag.NewWarning(diag.CtrEmptyContractImpl, source.Span{File: fileID, Start: 0, End: 4}, "no candidates"))
	return bag, fs
}

func TestJSONOutput(t *testing.T) {
	bag, fs := newJSONFixture()

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, IncludeNotes: true}); err != nil {
		t.Fatalf("JSON: %v", err)
	}

	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if out.Count != 2 || len(out.Diagnostics) != 2 {
		t.Fatalf("count = %d, len = %d", out.Count, len(out.Diagnostics))
	}
	first := out.Diagnostics[0]
	if first.Code != "CTR1002" || first.Severity != "ERROR" {
		t.Errorf("unexpected first diagnostic: %+v", first)
	}
	if first.Location.File != "pair.go" || first.Location.StartLine != 1 || first.Location.StartCol != 23 {
		t.Errorf("unexpected location: %+v", first.Location)
	}
	if len(first.Notes) != 1 || first.Notes[0].Message != "in function Sum" {
		t.Errorf("unexpected notes: %+v", first.Notes)
	}
}

func TestJSONOptions(t *testing.T) {
	bag, fs := newJSONFixture()

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 1})
	if out.Count != 1 {
		t.Fatalf("Max not applied: %d", out.Count)
	}
	d := out.Diagnostics[0]
	if d.Location.StartLine != 0 {
		t.Errorf("positions included without IncludePositions: %+v", d.Location)
	}
	if d.Notes != nil {
		t.Errorf("notes included without IncludeNotes: %+v", d.Notes)
	}
}
