package driver

import (
	"runtime"

	"contractgen/internal/codegen"
	"contractgen/internal/pipeline"
	"contractgen/internal/project"
	"contractgen/internal/specstore"
)

// Mode selects what a run does with the generated source.
type Mode uint8

const (
	// ModeGenerate writes generated files and sidecars.
	ModeGenerate Mode = iota
	// ModeCheck never writes; it reports diagnostics and stale outputs.
	ModeCheck
)

// Options configures a run.
type Options struct {
	Mode    Mode
	Codegen codegen.Options
	// Output is the generated file name inside each package directory.
	Output string
	// Sidecar is the spec sidecar name; empty disables it.
	Sidecar string
	// Jobs bounds parallel work; zero means GOMAXPROCS.
	Jobs           int
	MaxDiagnostics int
	// DryRun renders outputs without touching the file system.
	DryRun bool

	Sink    pipeline.ProgressSink
	Timings *pipeline.Timings
}

// OptionsFromConfig builds run options from a project configuration.
func OptionsFromConfig(cfg *project.Config) Options {
	opts := Options{
		Codegen: cfg.CodegenOptions(),
		Output:  cfg.Generate.Output,
	}
	if opts.Codegen.EmitSection {
		opts.Sidecar = cfg.Spec.Sidecar
		if opts.Sidecar == "" {
			opts.Sidecar = specstore.DefaultName
		}
	}
	return opts
}

func (o *Options) jobs() int {
	if o.Jobs <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return o.Jobs
}

func (o *Options) output() string {
	if o.Output == "" {
		return project.DefaultOutput
	}
	return o.Output
}

func (o *Options) emit(evt pipeline.Event) {
	if o.Sink != nil {
		o.Sink.OnEvent(evt)
	}
}
