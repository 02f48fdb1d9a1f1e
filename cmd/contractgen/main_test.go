package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"contractgen/internal/directive"
	"contractgen/internal/project"
)

const tokenSrc = `package token

import "contractgen/sdk"

//contract:fn
func add(env sdk.Env, a uint32, b uint32) uint32 { return a + b }
`

func execRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestRunFlagsUIMode(t *testing.T) {
	tests := []struct {
		ui      string
		format  string
		quiet   bool
		tty     bool
		want    bool
		wantErr bool
	}{
		{ui: "", format: "pretty", tty: true, want: true},
		{ui: "auto", format: "pretty", tty: false, want: false},
		{ui: " ON ", format: "pretty", tty: false, want: true},
		{ui: "off", format: "pretty", tty: true, want: false},
		{ui: "on", format: "json", want: false},
		{ui: "on", format: "pretty", quiet: true, want: false},
		{ui: "sometimes", format: "pretty", wantErr: true},
	}
	for _, tt := range tests {
		f := runFlags{ui: tt.ui, format: tt.format}
		if err := f.validate(); (err != nil) != tt.wantErr {
			t.Errorf("validate(ui=%q) = %v", tt.ui, err)
			continue
		}
		if tt.wantErr {
			continue
		}
		if got := f.showProgress(globalFlags{quiet: tt.quiet}, tt.tty); got != tt.want {
			t.Errorf("showProgress(ui=%q, format=%s, quiet=%v, tty=%v) = %v", tt.ui, tt.format, tt.quiet, tt.tty, got)
		}
	}
}

func TestParseKinds(t *testing.T) {
	kinds, err := parseKinds("fn, impl")
	if err != nil || len(kinds) != 2 || kinds[0] != directive.KindFn || kinds[1] != directive.KindImpl {
		t.Errorf("parseKinds = %v, %v", kinds, err)
	}
	if kinds, err := parseKinds("all"); err != nil || kinds != nil {
		t.Errorf("all = %v, %v", kinds, err)
	}
	if _, err := parseKinds("struct"); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestPackageDirs(t *testing.T) {
	root := t.TempDir()
	for _, d := range []string{"a/b", ".git/objects", "testdata/x"} {
		if err := os.MkdirAll(filepath.Join(root, d), 0o750); err != nil {
			t.Fatal(err)
		}
	}

	dirs, err := packageDirs([]string{root + "/...", root})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{root, filepath.Join(root, "a"), filepath.Join(root, "a", "b")}
	if strings.Join(dirs, "|") != strings.Join(want, "|") {
		t.Errorf("dirs = %v, want %v", dirs, want)
	}

	if _, err := packageDirs([]string{filepath.Join(root, "missing")}); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestWriteConfig(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "contract")
	path, err := writeConfig(dir)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := project.LoadConfig(path); err != nil {
		t.Errorf("written config does not load: %v", err)
	}
	if _, err := writeConfig(dir); err == nil {
		t.Error("expected error when config exists")
	}
}

func TestGenAndCheck(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile("token.go", []byte(tokenSrc), 0o600); err != nil {
		t.Fatal(err)
	}

	out, _, err := execRoot(t, "gen", "--ui=off", "--color=off")
	if err != nil {
		t.Fatalf("gen: %v", err)
	}
	if !strings.Contains(out, "written") || !strings.Contains(out, "(1 exports)") {
		t.Errorf("unexpected gen output: %q", out)
	}
	if _, err := os.Stat(project.DefaultOutput); err != nil {
		t.Fatalf("generated file missing: %v", err)
	}

	out, _, err = execRoot(t, "check", "--ui=off", "--color=off", "--stale", "--list=fn")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !strings.Contains(out, "contract:fn add") || !strings.Contains(out, "1 directives: 1 fn, 0 impl") {
		t.Errorf("unexpected listing: %q", out)
	}

	bad := tokenSrc + "\n//contract:fn\nfunc orphan(x uint32) {}\n"
	if err := os.WriteFile("token.go", []byte(bad), 0o600); err != nil {
		t.Fatal(err)
	}
	_, errOut, err := execRoot(t, "check", "--ui=off", "--color=off", "--format=short")
	var exit exitError
	if !errors.As(err, &exit) || exit.code != 1 {
		t.Fatalf("expected exit status 1, got %v", err)
	}
	if !strings.Contains(errOut, "CTR1001") {
		t.Errorf("diagnostics missing CTR1001: %q", errOut)
	}
}

func TestVersionJSON(t *testing.T) {
	out, _, err := execRoot(t, "version", "--format=json")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"tool": "contractgen"`) {
		t.Errorf("unexpected version output: %s", out)
	}
	if _, _, err := execRoot(t, "version", "--format=xml"); err == nil {
		t.Error("expected error for unsupported format")
	}
}
