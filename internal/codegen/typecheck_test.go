package codegen

import (
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"path/filepath"
	"strings"
	"testing"

	"contractgen/internal/contract"
	"contractgen/internal/ir"
)

// contractSource is the hand-written half of the package. Its parameter
// names collide with the call target, the sdk qualifier and the time
// qualifier.
const contractSource = `package token

import (
	"time"

	"contractgen/sdk"
)

type Amount uint64

type Token struct{}

func limit(env sdk.Env, limit uint32) uint32 { return limit }

func tag(env sdk.Env, sdk sdk.Symbol) { _ = sdk }

func wait(env sdk.Env, time time.Duration) bool { return time > 0 }

func (Token) Mint(_ sdk.Env, to sdk.Symbol, amount Amount) {}
`

// sdkImporter type-checks ../../sdk from source and hands every other
// path to the standard source importer.
type sdkImporter struct {
	fset *token.FileSet
	std  types.Importer
	sdk  *types.Package
}

func (im *sdkImporter) Import(path string) (*types.Package, error) {
	if path != DefaultSDKImport {
		return im.std.Import(path)
	}
	if im.sdk != nil {
		return im.sdk, nil
	}
	names, err := filepath.Glob(filepath.Join("..", "..", "sdk", "*.go"))
	if err != nil {
		return nil, err
	}
	var files []*ast.File
	for _, name := range names {
		if strings.HasSuffix(name, "_test.go") {
			continue
		}
		f, err := parser.ParseFile(im.fset, name, nil, 0)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	conf := types.Config{Importer: im.std}
	pkg, err := conf.Check(DefaultSDKImport, im.fset, files, nil)
	if err != nil {
		return nil, err
	}
	im.sdk = pkg
	return pkg, nil
}

func sdkType(name string) ir.TypeRef {
	t := ir.NamedType("sdk", name)
	t.ImportPath = DefaultSDKImport
	return t
}

func TestGeneratedSourceTypeChecks(t *testing.T) {
	duration := ir.NamedType("time", "Duration")
	duration.ImportPath = "time"
	results := []contract.Result{
		transform("limit", ir.Typed(ir.NamedType("uint32")), contract.CallTarget{Func: "limit"},
			ir.Param{Name: "limit", Type: ir.NamedType("uint32")}),
		transform("tag", ir.Void, contract.CallTarget{Func: "tag"},
			ir.Param{Name: "sdk", Type: sdkType("Symbol")}),
		transform("wait", ir.Typed(ir.NamedType("bool")), contract.CallTarget{Func: "wait"},
			ir.Param{Name: "time", Type: duration}),
		transform("Mint", ir.Void, contract.CallTarget{Func: "Mint", Receiver: "Token"},
			ir.Param{Name: "to", Type: sdkType("Symbol")},
			ir.Param{Name: "amount", Type: ir.NamedType("Amount")}),
	}
	for _, r := range results {
		if !r.OK() {
			t.Fatalf("transform %s failed: %v", r.Candidate.Sig.Name, r.Diagnostics)
		}
	}

	for _, target := range []Target{TargetWasm, TargetHost} {
		t.Run(string(target), func(t *testing.T) {
			opts := DefaultOptions()
			opts.Target = target
			src, err := Generate("token", results, opts)
			if err != nil {
				t.Fatalf("Generate: %v\n%s", err, src)
			}

			fset := token.NewFileSet()
			user, err := parser.ParseFile(fset, "token.go", contractSource, 0)
			if err != nil {
				t.Fatal(err)
			}
			gen, err := parser.ParseFile(fset, "contract_gen.go", src, 0)
			if err != nil {
				t.Fatalf("generated code does not parse: %v\n%s", err, src)
			}

			conf := types.Config{Importer: &sdkImporter{
				fset: fset,
				std:  importer.ForCompiler(fset, "source", nil),
			}}
			if _, err := conf.Check("example.com/token", fset, []*ast.File{user, gen}, nil); err != nil {
				t.Fatalf("generated code does not type-check: %v\n%s", err, src)
			}
		})
	}
}
