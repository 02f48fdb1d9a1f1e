// Package project loads contractgen.toml.
package project

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"contractgen/internal/codegen"
	"contractgen/internal/specstore"
)

// Config is the decoded contractgen.toml.
type Config struct {
	Generate GenerateConfig `toml:"generate"`
	SDK      SDKConfig      `toml:"sdk"`
	Spec     SpecConfig     `toml:"spec"`
}

type GenerateConfig struct {
	Output          string `toml:"output"`
	Target          string `toml:"target"`
	ExportDirective string `toml:"export_directive"`
	BuildTags       string `toml:"build_tags"`
}

type SDKConfig struct {
	Import string `toml:"import"`
	Name   string `toml:"name"`
}

type SpecConfig struct {
	// EmitSection is nil when unset; it then follows the target.
	EmitSection *bool  `toml:"emit_section"`
	Sidecar     string `toml:"sidecar"`
}

// DefaultOutput is the generated file name inside each package.
const DefaultOutput = "contract_gen.go"

// Manifest is a loaded configuration and where it came from.
type Manifest struct {
	// Path is empty when no contractgen.toml was found.
	Path   string
	Root   string
	Config Config
}

// Default returns the configuration used without a contractgen.toml.
func Default() Config {
	var cfg Config
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Generate.Output == "" {
		c.Generate.Output = DefaultOutput
	}
	if c.Generate.Target == "" {
		c.Generate.Target = string(codegen.TargetWasm)
	}
	if c.Generate.ExportDirective == "" {
		c.Generate.ExportDirective = codegen.DefaultExportDirective
	}
	if c.SDK.Import == "" {
		c.SDK.Import = codegen.DefaultSDKImport
	}
	if c.SDK.Name == "" {
		c.SDK.Name = c.SDK.Import[strings.LastIndex(c.SDK.Import, "/")+1:]
	}
	if c.Spec.Sidecar == "" {
		c.Spec.Sidecar = specstore.DefaultName
	}
}

// EmitSection reports whether spec records go to the sidecar for embedding.
func (c *Config) EmitSection() bool {
	if c.Spec.EmitSection != nil {
		return *c.Spec.EmitSection
	}
	return c.Generate.Target == string(codegen.TargetWasm)
}

// Validate checks values that defaults cannot fix.
func (c *Config) Validate() error {
	switch codegen.Target(c.Generate.Target) {
	case codegen.TargetWasm, codegen.TargetHost:
	default:
		return fmt.Errorf("[generate].target must be %q or %q, got %q", codegen.TargetWasm, codegen.TargetHost, c.Generate.Target)
	}
	switch c.Generate.ExportDirective {
	case "go:wasmexport", "export":
	default:
		return fmt.Errorf("[generate].export_directive must be \"go:wasmexport\" or \"export\", got %q", c.Generate.ExportDirective)
	}
	if filepath.Base(c.Generate.Output) != c.Generate.Output || !strings.HasSuffix(c.Generate.Output, ".go") {
		return fmt.Errorf("[generate].output must be a .go file name, got %q", c.Generate.Output)
	}
	if strings.HasSuffix(c.Generate.Output, "_test.go") {
		return fmt.Errorf("[generate].output cannot be a test file")
	}
	return nil
}

// CodegenOptions converts the configuration into generator options.
func (c *Config) CodegenOptions() codegen.Options {
	opts := codegen.Options{
		Target:          codegen.Target(c.Generate.Target),
		ExportDirective: c.Generate.ExportDirective,
		BuildTags:       c.Generate.BuildTags,
		SDKImport:       c.SDK.Import,
		SDKName:         c.SDK.Name,
		EmitSection:     c.EmitSection(),
	}
	if opts.Target == codegen.TargetWasm && opts.BuildTags == "" {
		opts.BuildTags = codegen.DefaultBuildTags
	}
	return opts
}

// LoadConfig decodes the file at path and applies defaults.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %s", path, undecoded[0])
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadManifest finds contractgen.toml above startDir and loads it. Without
// one it returns defaults rooted at startDir.
func LoadManifest(startDir string) (*Manifest, error) {
	path, ok, err := FindConfig(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		root, err := filepath.Abs(startDir)
		if err != nil {
			return nil, err
		}
		return &Manifest{Root: root, Config: Default()}, nil
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return &Manifest{Path: path, Root: filepath.Dir(path), Config: cfg}, nil
}

// Template renders the configuration written by contractgen init.
func Template() ([]byte, error) {
	cfg := Default()
	cfg.Generate.BuildTags = codegen.DefaultBuildTags
	emit := true
	cfg.Spec.EmitSection = &emit

	var buf bytes.Buffer
	buf.WriteString("# contractgen configuration\n\n")
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
