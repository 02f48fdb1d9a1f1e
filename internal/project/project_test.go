package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"contractgen/internal/codegen"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestFindConfigWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ConfigName), "")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	got, ok, err := FindConfig(nested)
	if err != nil || !ok {
		t.Fatalf("FindConfig: %v %v", ok, err)
	}
	want, _ := filepath.Abs(filepath.Join(root, ConfigName))
	if got != want {
		t.Errorf("config = %s, want %s", got, want)
	}
}

func TestLoadManifestDefaults(t *testing.T) {
	dir := t.TempDir()
	m, err := LoadManifest(dir)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if m.Path != "" {
		t.Skipf("a %s exists above the temp dir: %s", ConfigName, m.Path)
	}
	cfg := m.Config
	if cfg.Generate.Output != DefaultOutput || cfg.SDK.Name != "sdk" || cfg.Spec.Sidecar != ".contractspec" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if !cfg.EmitSection() {
		t.Error("wasm target should emit sections by default")
	}
	opts := cfg.CodegenOptions()
	if opts.BuildTags != codegen.DefaultBuildTags || opts.Target != codegen.TargetWasm {
		t.Errorf("unexpected options: %+v", opts)
	}
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
		check   func(t *testing.T, cfg Config)
	}{
		{
			name: "host target",
			content: `[generate]
target = "host"

[sdk]
import = "example.com/chain/csdk"
`,
			check: func(t *testing.T, cfg Config) {
				if cfg.EmitSection() {
					t.Error("host target should not emit sections")
				}
				if cfg.SDK.Name != "csdk" {
					t.Errorf("sdk name = %q", cfg.SDK.Name)
				}
				if cfg.CodegenOptions().BuildTags != "" {
					t.Error("host target should not get default build tags")
				}
			},
		},
		{
			name: "explicit emit_section",
			content: `[generate]
target = "host"
[spec]
emit_section = true
`,
			check: func(t *testing.T, cfg Config) {
				if !cfg.EmitSection() {
					t.Error("emit_section = true was ignored")
				}
			},
		},
		{name: "bad target", content: "[generate]\ntarget = \"js\"\n", wantErr: "target"},
		{name: "bad directive", content: "[generate]\nexport_directive = \"wasmimport\"\n", wantErr: "export_directive"},
		{name: "bad output", content: "[generate]\noutput = \"gen/x.go\"\n", wantErr: "output"},
		{name: "unknown key", content: "[generate]\nouput = \"x.go\"\n", wantErr: "unknown key"},
		{name: "bad toml", content: "[generate\n", wantErr: "failed to parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ConfigName)
			writeFile(t, path, tt.content)
			cfg, err := LoadConfig(path)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadConfig: %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestTemplateRoundTrip(t *testing.T) {
	data, err := Template()
	if err != nil {
		t.Fatalf("Template: %v", err)
	}
	path := filepath.Join(t.TempDir(), ConfigName)
	writeFile(t, path, string(data))
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("template does not load: %v\n%s", err, data)
	}
	if cfg.Generate.Output != DefaultOutput || !cfg.EmitSection() || cfg.Generate.BuildTags != codegen.DefaultBuildTags {
		t.Errorf("unexpected config: %+v", cfg)
	}
}
