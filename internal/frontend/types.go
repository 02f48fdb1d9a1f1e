package frontend

import (
	"go/ast"
	"go/types"

	"contractgen/internal/ir"
)

// typeRef classifies a type expression. Identifiers naming one of the
// function's type parameters are generic.
func (w *walker) typeRef(expr ast.Expr, typeParams map[string]bool) ir.TypeRef {
	ref := ir.TypeRef{
		Text: exprString(expr),
		Span: w.file.span(expr.Pos(), expr.End()),
	}

	switch t := expr.(type) {
	case *ast.Ident:
		if typeParams[t.Name] {
			ref.Kind = ir.TypeGeneric
			return ref
		}
		ref.Kind = ir.TypePath
		ref.Path = []string{t.Name}
	case *ast.SelectorExpr:
		pkg, ok := t.X.(*ast.Ident)
		if !ok {
			ref.Kind = ir.TypeComposite
			return ref
		}
		ref.Kind = ir.TypePath
		ref.Path = []string{pkg.Name, t.Sel.Name}
		ref.ImportPath = w.file.Imports[pkg.Name]
	case *ast.ParenExpr:
		inner := w.typeRef(t.X, typeParams)
		inner.Span = ref.Span
		return inner
	case *ast.StarExpr:
		ref.Kind = ir.TypeReference
	case *ast.StructType:
		ref.Kind = ir.TypeTuple
	case *ast.IndexExpr, *ast.IndexListExpr:
		ref.Kind = ir.TypeGeneric
	case *ast.Ellipsis:
		ref.Kind = ir.TypeVariadic
	default:
		ref.Kind = ir.TypeComposite
	}
	return ref
}

func exprString(expr ast.Expr) string {
	return types.ExprString(expr)
}
