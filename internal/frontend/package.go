package frontend

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"contractgen/internal/diag"
	"contractgen/internal/ir"
)

// Package is the lowered view of one Go package directory.
type Package struct {
	Name  string
	Files []*File
	// Funcs and Impls are ordered by file path, then source position.
	Funcs []*ir.Function
	Impls []*ir.ImplBlock
}

// Assemble merges parsed files into a package: it checks package clauses
// and builds an impl block for each //contract:impl type.
func Assemble(files []*File, r diag.Reporter) *Package {
	pkg := &Package{}
	for _, f := range files {
		if f != nil {
			pkg.Files = append(pkg.Files, f)
		}
	}
	sort.SliceStable(pkg.Files, func(i, j int) bool { return pkg.Files[i].Path < pkg.Files[j].Path })
	if len(pkg.Files) == 0 {
		return pkg
	}

	pkg.Name = pkg.Files[0].Package
	for _, f := range pkg.Files[1:] {
		if f.Package != pkg.Name {
			diag.ReportError(r, diag.ProjPackageMismatch, f.PackageSpan,
				fmt.Sprintf("found package %s, expected %s", f.Package, pkg.Name)).
				WithNote(pkg.Files[0].PackageSpan, "package "+pkg.Name+" declared here").
				Emit()
		}
	}

	methods := make(map[string][]ir.ImplItem)
	consts := make(map[string][]ir.ImplItem)
	interfaces := make(map[string]*interfaceDecl)
	for _, f := range pkg.Files {
		pkg.Funcs = append(pkg.Funcs, f.Funcs...)
		for _, m := range f.methods {
			methods[m.Recv] = append(methods[m.Recv], m.Item)
		}
		for _, c := range f.consts {
			consts[c.Type] = append(consts[c.Type], c.Item)
		}
		for name, it := range f.interfaces {
			interfaces[name] = it
		}
	}

	for _, f := range pkg.Files {
		for _, decl := range f.impls {
			pkg.Impls = append(pkg.Impls, buildImpl(decl, methods[decl.Name], consts[decl.Name], interfaces, r))
		}
	}
	return pkg
}

func buildImpl(decl implDecl, methods, consts []ir.ImplItem, interfaces map[string]*interfaceDecl, r diag.Reporter) *ir.ImplBlock {
	self := ir.NamedType(decl.Name)
	self.Span = decl.NameSpan
	if len(decl.TypeParams) > 0 {
		self.Kind = ir.TypeGeneric
		self.Text = decl.Name + "[" + strings.Join(decl.TypeParams, ", ") + "]"
	}

	block := &ir.ImplBlock{
		SelfType: self,
		Contract: decl.Contract,
		Span:     decl.Span,
	}

	items := methods
	if decl.Contract != "" {
		if set, ok := methodSet(decl.Contract, interfaces, nil); ok {
			items = nil
			for _, m := range methods {
				if set[m.Name] {
					items = append(items, m)
				}
			}
		} else {
			diag.ReportWarning(r, diag.CtrUnresolvedContract, decl.NameSpan,
				fmt.Sprintf("contract interface %s is not declared in this package; all methods of %s are selected", decl.Contract, decl.Name)).
				Emit()
		}
	}

	block.Items = append(block.Items, items...)
	block.Items = append(block.Items, consts...)
	slices.SortStableFunc(block.Items, func(a, b ir.ImplItem) int {
		if a.Span.File != b.Span.File {
			return int(a.Span.File) - int(b.Span.File)
		}
		return int(a.Span.Start) - int(b.Span.Start)
	})
	return block
}

// methodSet resolves the method names of a local interface, following
// embedded local interfaces.
func methodSet(name string, interfaces map[string]*interfaceDecl, seen map[string]bool) (map[string]bool, bool) {
	it, ok := interfaces[name]
	if !ok || it.Foreign {
		return nil, false
	}
	if seen == nil {
		seen = make(map[string]bool)
	}
	set := make(map[string]bool)
	if seen[name] {
		return set, true
	}
	seen[name] = true

	for _, m := range it.Methods {
		set[m] = true
	}
	for _, emb := range it.Embedded {
		switch emb {
		case "any", "comparable":
			continue
		case "error":
			set["Error"] = true
			continue
		}
		inner, ok := methodSet(emb, interfaces, seen)
		if !ok {
			return nil, false
		}
		for m := range inner {
			set[m] = true
		}
	}
	return set, true
}
