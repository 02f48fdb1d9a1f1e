package contract

import (
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"contractgen/internal/ir"
)

const (
	// SpecSection is the custom section that holds spec descriptors.
	SpecSection = "contractspecv0"
	// SpecPrefix starts the symbol of every spec static.
	SpecPrefix = "__SPEC_"
	// EmptySpec is the descriptor of a function without extra parameters.
	EmptySpec = "None"
)

// SpecRecord is the descriptor of one contract function.
type SpecRecord struct {
	// Name is the original identifier.
	Name   string
	Symbol string
	Data   []byte
}

// SpecSymbol returns the static symbol for the identifier name.
func SpecSymbol(name string) string {
	return SpecPrefix + norm.NFC.String(strings.ToUpper(name))
}

type tokenKind uint8

const (
	tokIdent tokenKind = iota
	tokPunct
)

type token struct {
	kind tokenKind
	text string
}

func (t token) String() string {
	if t.kind == tokPunct {
		return "Punct(" + strconv.QuoteRune([]rune(t.text)[0]) + ")"
	}
	return "Ident(" + strconv.Quote(t.text) + ")"
}

type tokenStream []token

func (s tokenStream) String() string {
	parts := make([]string, len(s))
	for i, t := range s {
		parts[i] = t.String()
	}
	return "TokenStream [" + strings.Join(parts, ", ") + "]"
}

func tokenize(t ir.TypeRef) tokenStream {
	out := make(tokenStream, 0, 2*len(t.Path))
	for i, seg := range t.Path {
		if i > 0 {
			out = append(out, token{kind: tokPunct, text: "."})
		}
		out = append(out, token{kind: tokIdent, text: seg})
	}
	return out
}

// BuildSpec derives the descriptor of the given non-environment parameter
// types. The per-type token streams are reduced left to right into one
// stream; with no types the reduction is empty and renders as EmptySpec.
func BuildSpec(name string, types []ir.TypeRef) SpecRecord {
	var folded *tokenStream
	for _, t := range types {
		next := tokenize(t)
		if folded == nil {
			folded = &next
			continue
		}
		joined := append(append(tokenStream{}, *folded...), next...)
		folded = &joined
	}

	data := EmptySpec
	if folded != nil {
		data = "Some(" + folded.String() + ")"
	}
	return SpecRecord{
		Name:   name,
		Symbol: SpecSymbol(name),
		Data:   []byte(data),
	}
}
