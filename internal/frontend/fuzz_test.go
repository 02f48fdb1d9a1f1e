package frontend

import (
	"testing"

	"contractgen/internal/contract"
	"contractgen/internal/diag"
	"contractgen/internal/directive"
	"contractgen/internal/source"
)

const maxFuzzInput = 1 << 14

// FuzzParseAndTransform checks that arbitrary input never panics the
// front-end or the transformation of whatever it collects.
func FuzzParseAndTransform(f *testing.F) {
	f.Add([]byte(tokenSrc))
	f.Add([]byte("package p\n\n//contract:fn\nfunc f(env Env, x []int) (int, error) {}\n"))
	f.Add([]byte("package p\n\n//contract:impl I\ntype T[K any] struct{}\n\nfunc (t *T[K]) M() {}\n"))
	f.Add([]byte("package p\n\n//contract:bogus\nvar x = 1\n"))
	f.Add([]byte("package p\n\nfunc {"))
	f.Add([]byte("package A\nfunc()A()"))

	f.Fuzz(func(t *testing.T, input []byte) {
		if len(input) > maxFuzzInput {
			input = input[:maxFuzzInput]
		}
		fs := source.NewFileSet()
		id := fs.AddVirtual("fuzz.go", append([]byte(nil), input...))
		bag := diag.NewBag(128)
		r := diag.BagReporter{Bag: bag}

		file := NewParser(fs, directive.NewRegistry()).ParseFile(id, r)
		pkg := Assemble([]*File{file}, r)
		var results []contract.Result
		for _, fn := range pkg.Funcs {
			results = append(results, contract.TransformFunction(fn)...)
		}
		for _, impl := range pkg.Impls {
			results = append(results, contract.TransformImpl(impl)...)
		}
		contract.CheckDuplicates(results)
	})
}
