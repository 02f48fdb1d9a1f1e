package directive

import (
	"fmt"
	"io"
	"path/filepath"

	"contractgen/internal/source"
)

// ListerConfig configures directive listing.
type ListerConfig struct {
	// Filter limits output to the given kinds (empty = all).
	Filter []Kind
	Output io.Writer
	// Files resolves spans to line numbers; nil prints byte offsets.
	Files *source.FileSet
}

// ListResult counts listed directives by kind.
type ListResult struct {
	Total int
	Fn    int
	Impl  int
}

// Lister prints the directives of a registry.
type Lister struct {
	config   ListerConfig
	registry *Registry
}

func NewLister(registry *Registry, config ListerConfig) *Lister {
	return &Lister{config: config, registry: registry}
}

// List prints one line per directive followed by a summary.
func (l *Lister) List() ListResult {
	directives := l.registry.FilterByKind(l.config.Filter...)
	result := ListResult{Total: len(directives)}

	for i := range directives {
		d := &directives[i]
		switch d.Kind {
		case KindFn:
			result.Fn++
		case KindImpl:
			result.Impl++
		}
		line := fmt.Sprintf("contract:%s %s", d.Kind, d.Target)
		if d.Arg != "" {
			line += " " + d.Arg
		}
		fmt.Fprintf(l.config.Output, "%-40s %s\n", line, l.location(d))
	}

	fmt.Fprintf(l.config.Output, "%d directives: %d fn, %d impl\n", result.Total, result.Fn, result.Impl)
	return result
}

func (l *Lister) location(d *Directive) string {
	file := filepath.Base(d.SourceFile)
	if l.config.Files == nil || int(d.Span.File) >= l.config.Files.Len() {
		return fmt.Sprintf("%s@%d", file, d.Span.Start)
	}
	start, _ := l.config.Files.Resolve(d.Span)
	return fmt.Sprintf("%s:%d", file, start.Line)
}
