package frontend

import (
	"go/ast"
	"go/token"

	"contractgen/internal/ir"
	"contractgen/internal/source"
)

// implDecl is a type annotated with //contract:impl.
type implDecl struct {
	Name       string
	Contract   string
	TypeParams []string
	Span       source.Span
	NameSpan   source.Span
}

// method is a method declaration of any type in the file.
type method struct {
	Recv string
	Item ir.ImplItem
}

// constDecl is a typed constant of some named type.
type constDecl struct {
	Type string
	Item ir.ImplItem
}

// interfaceDecl is a locally declared interface.
type interfaceDecl struct {
	Methods  []string
	Embedded []string
	// Foreign is set when an embedded element cannot be resolved locally.
	Foreign bool
}

// File is the result of parsing one Go source file.
type File struct {
	ID      source.FileID
	Path    string
	Package string
	// PackageSpan covers the package name in the package clause.
	PackageSpan source.Span
	// Imports maps the local name of each import to its path.
	Imports map[string]string

	Funcs []*ir.Function

	impls      []implDecl
	methods    []method
	consts     []constDecl
	interfaces map[string]*interfaceDecl

	syntax *ast.File
	tokens *token.File
}
