package ir

import "contractgen/internal/source"

type ParamKind uint8

const (
	// ParamTyped is an ordinary "name Type" parameter.
	ParamTyped ParamKind = iota
	// ParamReceiver is a method receiver bound to a name.
	ParamReceiver
)

// Param is a single function parameter.
type Param struct {
	Kind ParamKind
	// Name is empty or "_" when the parameter has no usable binding.
	Name string
	Type TypeRef
	Span source.Span
}

// HasName reports whether the parameter is bound to a simple, usable name.
func (p Param) HasName() bool {
	return p.Name != "" && p.Name != "_"
}

type ReturnKind struct {
	// Type is nil for a void function.
	Type *TypeRef
}

// Void is the ReturnKind of a function without results.
var Void = ReturnKind{}

// Typed returns the ReturnKind of a function with a single result.
func Typed(t TypeRef) ReturnKind {
	return ReturnKind{Type: &t}
}

func (r ReturnKind) IsVoid() bool { return r.Type == nil }

// Signature is the parameter list and result of a declared function.
type Signature struct {
	Name     string
	NameSpan source.Span
	Params   []Param
	Return   ReturnKind
	// ExtraResults holds the results beyond the first; non-empty means the
	// function has no ReturnKind the wrapper can express.
	ExtraResults []TypeRef
	// TypeParams lists the names of the function's own type parameters.
	TypeParams []string
	// ParamsSpan covers the parenthesised parameter list.
	ParamsSpan source.Span
	Span       source.Span
}

// Visibility is the export status of a Go identifier.
type Visibility uint8

const (
	Private Visibility = iota
	Public
)

// Function is a top-level function declaration.
type Function struct {
	Sig        Signature
	Visibility Visibility
	Span       source.Span
}
