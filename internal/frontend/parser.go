package frontend

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/scanner"
	"go/token"
	"path"
	"strconv"
	"strings"

	"fortio.org/safecast"

	"contractgen/internal/diag"
	"contractgen/internal/directive"
	"contractgen/internal/ir"
	"contractgen/internal/source"
)

// Parser parses files of a source.FileSet. ParseFile may be called from
// several goroutines as long as each call uses its own Reporter.
type Parser struct {
	files    *source.FileSet
	tokens   *token.FileSet
	registry *directive.Registry
}

// NewParser creates a parser over files. Directives found are added to
// registry when it is not nil.
func NewParser(files *source.FileSet, registry *directive.Registry) *Parser {
	return &Parser{
		files:    files,
		tokens:   token.NewFileSet(),
		registry: registry,
	}
}

// ParseFile parses the file id and collects its annotated declarations.
// Syntax errors are reported as diagnostics and yield a nil File.
func (p *Parser) ParseFile(id source.FileID, r diag.Reporter) *File {
	src := p.files.Get(id)
	syntax, err := parser.ParseFile(p.tokens, src.Path, src.Content, parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		p.reportSyntax(id, err, r)
		return nil
	}

	f := &File{
		ID:         id,
		Path:       src.Path,
		Package:    syntax.Name.Name,
		Imports:    make(map[string]string),
		interfaces: make(map[string]*interfaceDecl),
		syntax:     syntax,
		tokens:     p.tokens.File(syntax.Pos()),
	}
	f.PackageSpan = f.span(syntax.Name.Pos(), syntax.Name.End())

	for _, imp := range syntax.Imports {
		importPath, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			continue
		}
		name := path.Base(importPath)
		if imp.Name != nil {
			name = imp.Name.Name
		}
		f.Imports[name] = importPath
	}

	w := &walker{file: f, reporter: r, registry: p.registry}
	w.walk()
	return f
}

func (p *Parser) reportSyntax(id source.FileID, err error, r diag.Reporter) {
	var list scanner.ErrorList
	if !errors.As(err, &list) {
		diag.ReportError(r, diag.SynParseError, source.Span{File: id}, err.Error()).Emit()
		return
	}
	for _, e := range list {
		off, convErr := safecast.Conv[uint32](e.Pos.Offset)
		if convErr != nil {
			off = 0
		}
		sp := source.Span{File: id, Start: off, End: off + 1}
		diag.ReportError(r, diag.SynParseError, sp, e.Msg).Emit()
	}
}

func (f *File) span(pos, end token.Pos) source.Span {
	return source.Span{File: f.ID, Start: f.offset(pos), End: f.offset(end)}
}

func (f *File) offset(pos token.Pos) uint32 {
	if !pos.IsValid() {
		return 0
	}
	off, err := safecast.Conv[uint32](f.tokens.Offset(pos))
	if err != nil {
		panic(fmt.Errorf("offset overflow in %s: %w", f.Path, err))
	}
	return off
}

type walker struct {
	file     *File
	reporter diag.Reporter
	registry *directive.Registry
	// attached holds comment groups that are the doc of some declaration.
	attached map[*ast.CommentGroup]bool
}

func (w *walker) walk() {
	w.attached = make(map[*ast.CommentGroup]bool)

	for _, decl := range w.file.syntax.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			w.funcDecl(d)
		case *ast.GenDecl:
			w.genDecl(d)
		}
	}

	for _, group := range w.file.syntax.Comments {
		if w.attached[group] {
			continue
		}
		for _, c := range group.List {
			if _, _, _, ok := directive.Parse(c.Text); ok {
				diag.ReportError(w.reporter, diag.CtrDirectivePlacement, w.file.span(c.Pos(), c.End()),
					"contract directive is not attached to a declaration").Emit()
			}
		}
	}
}

type found struct {
	kind directive.Kind
	arg  string
	span source.Span
}

// directives returns the contract directives of a doc comment, reporting
// unknown verbs.
func (w *walker) directives(doc *ast.CommentGroup) []found {
	if doc == nil {
		return nil
	}
	w.attached[doc] = true

	var out []found
	for _, c := range doc.List {
		kind, verb, arg, ok := directive.Parse(c.Text)
		if !ok {
			continue
		}
		sp := w.file.span(c.Pos(), c.End())
		if kind == directive.KindUnknown {
			diag.ReportError(w.reporter, diag.CtrUnknownDirective, sp,
				fmt.Sprintf("unknown contract directive %q", strings.TrimSpace(directive.Prefix+verb))).
				WithNote(sp, "known directives are //contract:fn and //contract:impl").
				Emit()
			continue
		}
		out = append(out, found{kind: kind, arg: arg, span: sp})
	}
	return out
}

func (w *walker) register(fd found, target string) {
	if w.registry == nil {
		return
	}
	w.registry.Add(&directive.Directive{
		Kind:       fd.kind,
		Verb:       fd.kind.String(),
		Arg:        fd.arg,
		Target:     target,
		SourceFile: w.file.Path,
		Span:       fd.span,
	})
}

func (w *walker) misplaced(fd found, msg string) {
	diag.ReportError(w.reporter, diag.CtrDirectivePlacement, fd.span, msg).Emit()
}

func (w *walker) funcDecl(d *ast.FuncDecl) {
	// go/parser accepts "func() M()" and "func(a A, b B) M()"
	if d.Recv != nil && len(d.Recv.List) != 1 {
		diag.ReportError(w.reporter, diag.SynParseError, w.file.span(d.Recv.Pos(), d.Recv.End()),
			fmt.Sprintf("method %s must have exactly one receiver", d.Name.Name)).Emit()
		return
	}
	if d.Recv != nil {
		w.collectMethod(d)
	}
	for _, fd := range w.directives(d.Doc) {
		switch {
		case fd.kind == directive.KindImpl:
			w.misplaced(fd, "//contract:impl must annotate a type declaration")
		case d.Recv != nil:
			w.misplaced(fd, fmt.Sprintf("//contract:fn cannot annotate method %s; annotate its receiver type with //contract:impl", d.Name.Name))
		case fd.arg != "":
			w.misplaced(fd, "//contract:fn takes no arguments")
		case d.Name.Name == "init":
			w.misplaced(fd, "init functions cannot be called and cannot be contract functions")
		default:
			w.register(fd, d.Name.Name)
			fn := w.function(d, nil)
			w.file.Funcs = append(w.file.Funcs, fn)
		}
	}
}

func (w *walker) genDecl(d *ast.GenDecl) {
	groupDirectives := w.directives(d.Doc)

	switch d.Tok {
	case token.TYPE:
		for _, spec := range d.Specs {
			ts := spec.(*ast.TypeSpec)
			if _, ok := ts.Type.(*ast.InterfaceType); ok {
				w.collectInterface(ts)
			}
			own := w.directives(ts.Doc)
			if len(d.Specs) == 1 {
				own = append(groupDirectives, own...)
			}
			for _, fd := range own {
				w.typeDirective(fd, ts)
			}
		}
		if len(d.Specs) > 1 {
			for _, fd := range groupDirectives {
				w.misplaced(fd, "annotate a single type of a grouped declaration")
			}
		}
	case token.CONST:
		w.collectConsts(d)
		for _, spec := range d.Specs {
			groupDirectives = append(groupDirectives, w.directives(spec.(*ast.ValueSpec).Doc)...)
		}
		for _, fd := range groupDirectives {
			w.misplaced(fd, "contract directives annotate functions and types, not constants")
		}
	default:
		for _, spec := range d.Specs {
			if vs, ok := spec.(*ast.ValueSpec); ok {
				groupDirectives = append(groupDirectives, w.directives(vs.Doc)...)
			}
		}
		for _, fd := range groupDirectives {
			w.misplaced(fd, fmt.Sprintf("contract directives cannot annotate %s declarations", d.Tok))
		}
	}
}

func (w *walker) typeDirective(fd found, ts *ast.TypeSpec) {
	switch {
	case fd.kind == directive.KindFn:
		w.misplaced(fd, fmt.Sprintf("//contract:fn must annotate a function, %s is a type", ts.Name.Name))
		return
	case isInterface(ts.Type):
		w.misplaced(fd, fmt.Sprintf("//contract:impl cannot annotate interface %s", ts.Name.Name))
		return
	case len(strings.Fields(fd.arg)) > 1:
		w.misplaced(fd, "//contract:impl takes at most one interface name")
		return
	}

	w.register(fd, ts.Name.Name)
	w.file.impls = append(w.file.impls, implDecl{
		Name:       ts.Name.Name,
		Contract:   fd.arg,
		TypeParams: fieldNames(ts.TypeParams),
		Span:       w.file.span(ts.Pos(), ts.End()),
		NameSpan:   w.file.span(ts.Name.Pos(), ts.Name.End()),
	})
}

func isInterface(expr ast.Expr) bool {
	_, ok := expr.(*ast.InterfaceType)
	return ok
}

func (w *walker) collectInterface(ts *ast.TypeSpec) {
	it := ts.Type.(*ast.InterfaceType)
	decl := &interfaceDecl{}
	for _, field := range it.Methods.List {
		if len(field.Names) > 0 {
			for _, name := range field.Names {
				decl.Methods = append(decl.Methods, name.Name)
			}
			continue
		}
		if ident, ok := field.Type.(*ast.Ident); ok {
			decl.Embedded = append(decl.Embedded, ident.Name)
			continue
		}
		// qualified embeds and type sets are outside what can be resolved here
		decl.Foreign = true
	}
	w.file.interfaces[ts.Name.Name] = decl
}

func (w *walker) collectMethod(d *ast.FuncDecl) {
	recv := d.Recv.List[0]
	recvType, recvParams := receiverType(recv.Type)
	if recvType == "" {
		return
	}

	var receiver *ast.Field
	if len(recv.Names) == 1 && recv.Names[0].Name != "_" {
		receiver = recv
	}
	fn := w.function(d, receiver)
	fn.Sig.TypeParams = append(recvParams, fn.Sig.TypeParams...)

	w.file.methods = append(w.file.methods, method{
		Recv: recvType,
		Item: ir.ImplItem{
			Kind:       ir.ItemMethod,
			Name:       d.Name.Name,
			Method:     fn,
			Visibility: fn.Visibility,
			Receiver:   exprString(recv.Type),
			Span:       fn.Span,
		},
	})
}

// receiverType returns the base type name of a receiver and the names of
// its type parameters.
func receiverType(expr ast.Expr) (string, []string) {
	if star, ok := expr.(*ast.StarExpr); ok {
		expr = star.X
	}
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name, nil
	case *ast.IndexExpr:
		if id, ok := t.X.(*ast.Ident); ok {
			return id.Name, identNames(t.Index)
		}
	case *ast.IndexListExpr:
		if id, ok := t.X.(*ast.Ident); ok {
			return id.Name, identNames(t.Indices...)
		}
	case *ast.ParenExpr:
		return receiverType(t.X)
	}
	return "", nil
}

func identNames(exprs ...ast.Expr) []string {
	var out []string
	for _, e := range exprs {
		if id, ok := e.(*ast.Ident); ok {
			out = append(out, id.Name)
		}
	}
	return out
}

func (w *walker) collectConsts(d *ast.GenDecl) {
	for _, spec := range d.Specs {
		vs := spec.(*ast.ValueSpec)
		id, ok := vs.Type.(*ast.Ident)
		if !ok {
			continue
		}
		for _, name := range vs.Names {
			if name.Name == "_" {
				continue
			}
			vis := ir.Private
			if ast.IsExported(name.Name) {
				vis = ir.Public
			}
			w.file.consts = append(w.file.consts, constDecl{
				Type: id.Name,
				Item: ir.ImplItem{
					Kind:       ir.ItemConst,
					Name:       name.Name,
					Visibility: vis,
					Span:       w.file.span(name.Pos(), name.End()),
				},
			})
		}
	}
}

// function lowers a function declaration. A named receiver becomes an
// implicit first parameter.
func (w *walker) function(d *ast.FuncDecl, receiver *ast.Field) *ir.Function {
	typeParams := fieldNames(d.Type.TypeParams)
	tp := make(map[string]bool, len(typeParams))
	for _, name := range typeParams {
		tp[name] = true
	}
	if d.Recv != nil {
		_, recvParams := receiverType(d.Recv.List[0].Type)
		for _, name := range recvParams {
			tp[name] = true
		}
	}

	sig := ir.Signature{
		Name:       d.Name.Name,
		NameSpan:   w.file.span(d.Name.Pos(), d.Name.End()),
		TypeParams: typeParams,
		ParamsSpan: w.file.span(d.Type.Params.Opening, d.Type.Params.Closing+1),
		Span:       w.file.span(d.Pos(), d.End()),
	}

	if receiver != nil {
		sig.Params = append(sig.Params, ir.Param{
			Kind: ir.ParamReceiver,
			Name: receiver.Names[0].Name,
			Type: w.typeRef(receiver.Type, tp),
			Span: w.file.span(receiver.Pos(), receiver.End()),
		})
	}

	for _, field := range d.Type.Params.List {
		t := w.typeRef(field.Type, tp)
		if len(field.Names) == 0 {
			sig.Params = append(sig.Params, ir.Param{Type: t, Span: t.Span})
			continue
		}
		for _, name := range field.Names {
			sig.Params = append(sig.Params, ir.Param{
				Name: name.Name,
				Type: t,
				Span: w.file.span(name.Pos(), field.Type.End()),
			})
		}
	}

	sig.Return = ir.Void
	if d.Type.Results != nil {
		var results []ir.TypeRef
		for _, field := range d.Type.Results.List {
			t := w.typeRef(field.Type, tp)
			for range max(len(field.Names), 1) {
				results = append(results, t)
			}
		}
		if len(results) > 0 {
			sig.Return = ir.Typed(results[0])
			sig.ExtraResults = results[1:]
		}
	}

	vis := ir.Private
	if ast.IsExported(d.Name.Name) {
		vis = ir.Public
	}
	return &ir.Function{Sig: sig, Visibility: vis, Span: sig.Span}
}

func fieldNames(fl *ast.FieldList) []string {
	if fl == nil {
		return nil
	}
	var out []string
	for _, field := range fl.List {
		for _, name := range field.Names {
			out = append(out, name.Name)
		}
	}
	return out
}
