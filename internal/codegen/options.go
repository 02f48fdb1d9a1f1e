package codegen

// Target selects how wrappers are exported.
type Target string

const (
	// TargetWasm marks each wrapper with an export directive.
	TargetWasm Target = "wasm"
	// TargetHost collects wrappers into a contractExports map.
	TargetHost Target = "host"
)

// Options controls the generated file.
type Options struct {
	Target Target
	// ExportDirective is "go:wasmexport" or, for TinyGo, "export".
	ExportDirective string
	// BuildTags is a //go:build expression; empty emits none.
	BuildTags string
	SDKImport string
	// SDKName is the package name contract code uses for SDKImport. Types
	// qualified by it are rewritten to SDKAlias in the generated file.
	SDKName string
	// EmitSection notes on each spec static that it is embedded into the
	// contractspecv0 section.
	EmitSection bool
}

const (
	DefaultExportDirective = "go:wasmexport"
	DefaultBuildTags       = "wasip1 || tinygo"
	DefaultSDKImport       = "contractgen/sdk"
	DefaultSDKName         = "sdk"
	// SDKAlias is the name the generated file imports SDKImport under.
	SDKAlias = "__sdk"
	// ExportsVar is the registry emitted for the host target.
	ExportsVar = "contractExports"
)

// DefaultOptions returns the options for a wasm build.
func DefaultOptions() Options {
	return Options{
		Target:          TargetWasm,
		ExportDirective: DefaultExportDirective,
		BuildTags:       DefaultBuildTags,
		SDKImport:       DefaultSDKImport,
		SDKName:         DefaultSDKName,
		EmitSection:     true,
	}
}
