// Package directive recognises //contract: annotations in Go comments and
// keeps a registry of the ones found in a run.
package directive

import (
	"strings"

	"contractgen/internal/source"
)

// Prefix starts every contract directive.
const Prefix = "//contract:"

// Kind is the verb of a directive.
type Kind uint8

const (
	KindUnknown Kind = iota
	// KindFn marks a top-level function.
	KindFn
	// KindImpl marks a type whose methods form an impl block.
	KindImpl
)

func (k Kind) String() string {
	switch k {
	case KindFn:
		return "fn"
	case KindImpl:
		return "impl"
	}
	return "unknown"
}

// Directive is one annotation attached to a declaration.
type Directive struct {
	Kind Kind
	// Verb is the word after the prefix, kept for unknown kinds.
	Verb string
	// Arg is the optional argument, e.g. the contract interface of an impl.
	Arg string
	// Target is the name of the annotated declaration.
	Target     string
	SourceFile string
	Span       source.Span
}

// Parse splits a single comment line into a directive verb and argument.
// ok is false when text is not a contract directive at all.
func Parse(text string) (kind Kind, verb, arg string, ok bool) {
	rest, found := strings.CutPrefix(text, Prefix)
	if !found {
		return KindUnknown, "", "", false
	}
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return KindUnknown, "", "", true
	}
	verb = fields[0]
	arg = strings.Join(fields[1:], " ")
	switch verb {
	case "fn":
		kind = KindFn
	case "impl":
		kind = KindImpl
	}
	return kind, verb, arg, true
}
