package contract

import (
	"contractgen/internal/ir"
	"contractgen/internal/source"
)

func span(start, end uint32) source.Span {
	return source.Span{Start: start, End: end}
}

func envParam() ir.Param {
	t := ir.NamedType("sdk", "Env")
	t.Span = span(10, 17)
	return ir.Param{Name: "env", Type: t, Span: span(6, 17)}
}

func param(name string, t ir.TypeRef, start uint32) ir.Param {
	t.Span = span(start+uint32(len(name))+1, start+uint32(len(name))+1+uint32(len(t.Text)))
	return ir.Param{Name: name, Type: t, Span: span(start, t.Span.End)}
}

func sig(name string, ret ir.ReturnKind, params ...ir.Param) *ir.Signature {
	return &ir.Signature{
		Name:       name,
		NameSpan:   span(0, uint32(len(name))),
		Params:     params,
		Return:     ret,
		ParamsSpan: span(5, 40),
	}
}
