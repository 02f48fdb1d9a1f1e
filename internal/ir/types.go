// Package ir holds the small declaration model the contract pass works on.
// It is produced by the Go front-end and consumed by package contract; the
// core never sees go/ast.
package ir

import (
	"strings"

	"contractgen/internal/source"
)

// TypeKind classifies the syntactic shape of a parameter or result type.
type TypeKind uint8

const (
	// TypePath is a named type: an identifier or a package-qualified selector.
	TypePath TypeKind = iota
	// TypeReference is a pointer type.
	TypeReference
	// TypeTuple is an anonymous struct, the Go analogue of a tuple.
	TypeTuple
	// TypeGeneric is an instantiated generic type or a type parameter.
	TypeGeneric
	// TypeComposite covers slices, arrays, maps, channels, funcs and interfaces.
	TypeComposite
	// TypeVariadic is the ...T of a final parameter.
	TypeVariadic
)

func (k TypeKind) String() string {
	switch k {
	case TypePath:
		return "path"
	case TypeReference:
		return "reference"
	case TypeTuple:
		return "tuple"
	case TypeGeneric:
		return "generic"
	case TypeComposite:
		return "composite"
	case TypeVariadic:
		return "variadic"
	}
	return "unknown"
}

// TypeRef is a type as written in source.
type TypeRef struct {
	Kind TypeKind
	// Path holds the segments of a nominal type: ["uint32"] or ["sdk", "Env"].
	Path []string
	// Text is the Go rendering of the type.
	Text string
	// ImportPath is the import path of the package qualifier, if any.
	ImportPath string
	Span       source.Span
}

// NamedType builds a nominal TypeRef from its path segments.
func NamedType(segments ...string) TypeRef {
	return TypeRef{
		Kind: TypePath,
		Path: segments,
		Text: strings.Join(segments, "."),
	}
}

// IsNominal reports whether t is a plain named type.
func (t TypeRef) IsNominal() bool {
	return t.Kind == TypePath && len(t.Path) > 0
}

// LastSegment returns the final path segment, or "" for non-nominal types.
func (t TypeRef) LastSegment() string {
	if !t.IsNominal() {
		return ""
	}
	return t.Path[len(t.Path)-1]
}

func (t TypeRef) String() string {
	if t.Text != "" {
		return t.Text
	}
	return strings.Join(t.Path, ".")
}
