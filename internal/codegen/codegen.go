// Package codegen renders contract wrappers and spec statics as Go source.
package codegen

import (
	"bytes"
	"fmt"
	"go/format"
	"path"
	"sort"
	"strconv"
	"strings"

	"contractgen/internal/contract"
	"contractgen/internal/ir"
)

// Header is the first line of every generated file.
const Header = "// Code generated by contractgen. DO NOT EDIT."

// Generate renders the successful results of a package into one gofmt'd
// file. Results without a wrapper are skipped.
func Generate(pkgName string, results []contract.Result, opts Options) ([]byte, error) {
	var ok []*contract.Result
	for i := range results {
		if results[i].OK() {
			ok = append(ok, &results[i])
		}
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s\n\n", Header)
	if opts.BuildTags != "" {
		fmt.Fprintf(&buf, "//go:build %s\n\n", opts.BuildTags)
	}
	fmt.Fprintf(&buf, "package %s\n\n", pkgName)
	if len(ok) > 0 {
		writeImports(&buf, ok, opts)
	}

	for _, r := range ok {
		writeWrapper(&buf, r.Wrapper, opts)
	}
	for _, r := range ok {
		writeSpec(&buf, r.Spec, opts)
	}
	if opts.Target == TargetHost {
		writeRegistry(&buf, ok)
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return buf.Bytes(), fmt.Errorf("format generated source: %w", err)
	}
	return src, nil
}

func writeImports(buf *bytes.Buffer, results []*contract.Result, opts Options) {
	imports := map[string]string{SDKAlias: opts.SDKImport}
	add := func(t ir.TypeRef) {
		if len(t.Path) == 2 && t.ImportPath != "" && !isSDKType(t, opts) {
			imports[t.Path[0]] = t.ImportPath
		}
	}
	for _, r := range results {
		add(r.Wrapper.Env.Type)
		for _, p := range r.Wrapper.Params {
			add(p.Type)
		}
		if !r.Wrapper.Return.IsVoid() {
			add(*r.Wrapper.Return.Type)
		}
	}

	names := make([]string, 0, len(imports))
	for name := range imports {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		pi, pj := imports[names[i]], imports[names[j]]
		if pi != pj {
			return pi < pj
		}
		return names[i] < names[j]
	})

	buf.WriteString("import (\n")
	for _, name := range names {
		p := imports[name]
		if path.Base(p) == name {
			fmt.Fprintf(buf, "\t%q\n", p)
		} else {
			fmt.Fprintf(buf, "\t%s %q\n", name, p)
		}
	}
	buf.WriteString(")\n\n")
}

// isSDKType reports whether t is qualified by the SDK package, either
// resolved through its import or by the configured package name.
func isSDKType(t ir.TypeRef, opts Options) bool {
	if len(t.Path) != 2 {
		return false
	}
	if t.ImportPath != "" {
		return t.ImportPath == opts.SDKImport
	}
	return t.Path[0] == opts.SDKName
}

// typeExpr renders t for the generated file, where the SDK is only
// reachable through SDKAlias.
func typeExpr(t ir.TypeRef, opts Options) string {
	if isSDKType(t, opts) {
		return SDKAlias + "." + t.Path[1]
	}
	return t.String()
}

// Wrapper parameters are renamed so that user parameter names cannot
// shadow the call target or a type qualifier.
const envParamName = "__env"

func argName(i int) string {
	return "__a" + strconv.Itoa(i)
}

func writeWrapper(buf *bytes.Buffer, w *contract.Wrapper, opts Options) {
	raw := SDKAlias + ".RawVal"

	params := make([]string, 0, len(w.Params)+1)
	params = append(params, envParamName+" "+typeExpr(w.Env.Type, opts))
	for i := range w.Params {
		params = append(params, argName(i)+" "+raw)
	}

	fmt.Fprintf(buf, "// %s exports %s as %q.\n", w.Symbol, w.Target.Expr(), w.ExportName)
	if opts.Target != TargetHost {
		fmt.Fprintf(buf, "//\n//%s %s\n", opts.ExportDirective, w.ExportName)
	}
	fmt.Fprintf(buf, "func %s(%s) %s {\n", w.Symbol, strings.Join(params, ", "), raw)
	writeBody(buf, w, opts)
	buf.WriteString("}\n\n")
}

// writeBody emits decode and call, then the return-specific encode step.
func writeBody(buf *bytes.Buffer, w *contract.Wrapper, opts Options) {
	args := make([]string, 0, len(w.Params)+1)
	args = append(args, envParamName+".Clone()")
	for i, p := range w.Params {
		args = append(args, fmt.Sprintf("%s.MustFromRawVal[%s](%s, %s)",
			SDKAlias, typeExpr(p.Type, opts), envParamName, argName(i)))
	}
	call := fmt.Sprintf("%s(%s)", w.Target.Expr(), strings.Join(args, ", "))

	if w.Return.IsVoid() {
		fmt.Fprintf(buf, "\t%s\n", call)
		fmt.Fprintf(buf, "\treturn %s.Void\n", SDKAlias)
		return
	}
	fmt.Fprintf(buf, "\treturn %s.ToRawVal(%s, %s)\n", SDKAlias, call, envParamName)
}

func writeSpec(buf *bytes.Buffer, spec *contract.SpecRecord, opts Options) {
	if opts.EmitSection {
		fmt.Fprintf(buf, "// %s describes %s; contractgen embed places it in the %s section.\n",
			spec.Symbol, spec.Name, contract.SpecSection)
	} else {
		fmt.Fprintf(buf, "// %s describes %s.\n", spec.Symbol, spec.Name)
	}
	fmt.Fprintf(buf, "var %s = [%d]byte([]byte(%s))\n\n", spec.Symbol, len(spec.Data), strconv.Quote(string(spec.Data)))
}

func writeRegistry(buf *bytes.Buffer, results []*contract.Result) {
	fmt.Fprintf(buf, "// %s maps export names to wrappers for in-process hosts.\n", ExportsVar)
	fmt.Fprintf(buf, "var %s = map[string]any{\n", ExportsVar)
	for _, r := range results {
		fmt.Fprintf(buf, "\t%q: %s,\n", r.Wrapper.ExportName, r.Wrapper.Symbol)
	}
	buf.WriteString("}\n")
}

// IsGenerated reports whether src starts with the generated-file header.
func IsGenerated(src []byte) bool {
	return bytes.HasPrefix(src, []byte(Header))
}
