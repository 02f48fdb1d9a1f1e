package directive

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"contractgen/internal/source"
)

func TestParse(t *testing.T) {
	tests := []struct {
		text string
		kind Kind
		verb string
		arg  string
		ok   bool
	}{
		{"//contract:fn", KindFn, "fn", "", true},
		{"//contract:impl", KindImpl, "impl", "", true},
		{"//contract:impl TokenContract", KindImpl, "impl", "TokenContract", true},
		{"//contract:export add", KindUnknown, "export", "add", true},
		{"//contract:", KindUnknown, "", "", true},
		{"// contract:fn", KindUnknown, "", "", false},
		{"//go:wasmexport add", KindUnknown, "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			kind, verb, arg, ok := Parse(tt.text)
			if kind != tt.kind || verb != tt.verb || arg != tt.arg || ok != tt.ok {
				t.Errorf("Parse(%q) = %v %q %q %v", tt.text, kind, verb, arg, ok)
			}
		})
	}
}

func TestRegistry_FilterByKind(t *testing.T) {
	r := NewRegistry()
	r.Add(&Directive{Kind: KindImpl, Target: "Token", SourceFile: "b.go", Span: source.Span{Start: 5}})
	r.Add(&Directive{Kind: KindFn, Target: "add", SourceFile: "a.go", Span: source.Span{Start: 40}})
	r.Add(&Directive{Kind: KindFn, Target: "init", SourceFile: "a.go", Span: source.Span{Start: 10}})

	if r.Len() != 3 {
		t.Fatalf("expected 3 directives, got %d", r.Len())
	}

	fns := r.FilterByKind(KindFn)
	if len(fns) != 2 || fns[0].Target != "init" || fns[1].Target != "add" {
		t.Errorf("fn directives out of order: %+v", fns)
	}

	all := r.All()
	if len(all) != 3 || all[2].Target != "Token" {
		t.Errorf("All() = %+v", all)
	}
}

func TestRegistry_Concurrent(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Add(&Directive{Kind: KindFn, Target: "f"})
		}()
	}
	wg.Wait()
	if r.Len() != 16 {
		t.Errorf("expected 16 directives, got %d", r.Len())
	}
}

func TestLister_List(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("token.go", []byte("package token\n\n//contract:fn\nfunc add() {}\n"))

	r := NewRegistry()
	r.Add(&Directive{Kind: KindFn, Target: "add", SourceFile: "token.go", Span: source.Span{File: id, Start: 15, End: 28}})
	r.Add(&Directive{Kind: KindImpl, Arg: "TokenContract", Target: "Token", SourceFile: "token.go", Span: source.Span{File: id, Start: 40, End: 41}})

	var buf bytes.Buffer
	result := NewLister(r, ListerConfig{Output: &buf, Files: fs}).List()

	if result.Total != 2 || result.Fn != 1 || result.Impl != 1 {
		t.Errorf("unexpected result: %+v", result)
	}
	out := buf.String()
	for _, want := range []string{"contract:fn add", "token.go:3", "contract:impl Token TokenContract", "2 directives: 1 fn, 1 impl"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
