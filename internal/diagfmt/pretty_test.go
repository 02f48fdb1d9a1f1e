package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"contractgen/internal/diag"
	"contractgen/internal/source"
)

func TestPathModes(t *testing.T) {
	fs := source.NewFileSetWithBase("/home/user/project")
	content := []byte("package token\n\nfunc Add(x uint32) uint32 { return x }\n")
	fileID := fs.AddVirtual("/home/user/project/token/token.go", content)

	bag := diag.NewBag(10)
	bag.Add(diag.NewError(
		diag.CtrInvalidFirstParameter,
		source.Span{File: fileID, Start: 24, End: 32},
		"first parameter must be sdk.Env",
	))

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"absolute", PathModeAbsolute, "/home/user/project/token/token.go:3:10"},
		{"relative", PathModeRelative, "token/token.go:3:10"},
		{"basename", PathModeBasename, "token.go:3:10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: tt.mode})
			out := buf.String()
			if !strings.Contains(out, tt.contains) {
				t.Errorf("output does not contain %q:\n%s", tt.contains, out)
			}
			if !strings.Contains(out, "ERROR CTR1001: first parameter must be sdk.Env") {
				t.Errorf("missing header:\n%s", out)
			}
		})
	}
}

func TestPrettyUnderline(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("func Add(x uint32) uint32 { return x }\n")
	fileID := fs.AddVirtual("a.go", content)

	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.CtrInvalidFirstParameter, source.Span{File: fileID, Start: 9, End: 17}, "bad"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d:\n%s", len(lines), buf.String())
	}
	if lines[1] != " 1 | func Add(x uint32) uint32 { return x }" {
		t.Errorf("source line = %q", lines[1])
	}
	want := "   | " + strings.Repeat(" ", 9) + "^~~~~~~"
	if lines[2] != want {
		t.Errorf("underline = %q, want %q", lines[2], want)
	}
}

func TestPrettyNotes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("a.go", []byte("func Add(env sdk.Env) {}\nfunc Add(env sdk.Env) {}\n"))

	d := diag.NewError(diag.CtrDuplicateExport, source.Span{File: fileID, Start: 30, End: 33}, "export \"Add\" declared twice").
		WithNote(source.Span{File: fileID, Start: 5, End: 8}, "first declared here")
	bag := diag.NewBag(0)
	bag.Add(d)

	var withNotes, withoutNotes bytes.Buffer
	Pretty(&withNotes, bag, fs, PrettyOpts{ShowNotes: true})
	Pretty(&withoutNotes, bag, fs, PrettyOpts{})

	if !strings.Contains(withNotes.String(), "note: a.go:1:6: first declared here") {
		t.Errorf("note missing:\n%s", withNotes.String())
	}
	if strings.Contains(withoutNotes.String(), "note:") {
		t.Errorf("notes rendered although disabled:\n%s", withoutNotes.String())
	}
}

func TestExpandTabs(t *testing.T) {
	if got := expandTabs("\tx", 2); got != "  x" {
		t.Errorf("expandTabs = %q", got)
	}
}
