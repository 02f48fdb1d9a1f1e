package directive

import (
	"slices"
	"sync"
)

// Registry collects the directives found while parsing. It is safe for
// concurrent use by file parsers.
type Registry struct {
	mu         sync.Mutex
	directives []Directive
	byKind     map[Kind][]int
}

func NewRegistry() *Registry {
	return &Registry{
		directives: make([]Directive, 0),
		byKind:     make(map[Kind][]int),
	}
}

// Add registers a directive.
func (r *Registry) Add(d *Directive) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := len(r.directives)
	r.directives = append(r.directives, *d)
	r.byKind[d.Kind] = append(r.byKind[d.Kind], idx)
}

// All returns every directive ordered by file and position.
func (r *Registry) All() []Directive {
	r.mu.Lock()
	out := append([]Directive(nil), r.directives...)
	r.mu.Unlock()

	sortDirectives(out)
	return out
}

// FilterByKind returns the directives of the given kinds, or all of them
// when kinds is empty.
func (r *Registry) FilterByKind(kinds ...Kind) []Directive {
	if len(kinds) == 0 {
		return r.All()
	}

	r.mu.Lock()
	var out []Directive
	for _, k := range kinds {
		for _, idx := range r.byKind[k] {
			out = append(out, r.directives[idx])
		}
	}
	r.mu.Unlock()

	sortDirectives(out)
	return out
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.directives)
}

func sortDirectives(ds []Directive) {
	slices.SortStableFunc(ds, func(a, b Directive) int {
		if a.SourceFile != b.SourceFile {
			if a.SourceFile < b.SourceFile {
				return -1
			}
			return 1
		}
		return int(a.Span.Start) - int(b.Span.Start)
	})
}
