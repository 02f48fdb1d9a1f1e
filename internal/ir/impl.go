package ir

import "contractgen/internal/source"

type ItemKind uint8

const (
	ItemMethod ItemKind = iota
	ItemConst
	ItemType
)

// ImplItem is one declaration collected into an ImplBlock.
type ImplItem struct {
	Kind ItemKind
	Name string
	// Method is set only for ItemMethod.
	Method     *Function
	Visibility Visibility
	// Receiver is the receiver type text as written ("T" or "*T").
	Receiver string
	Span     source.Span
}

// ImplBlock is the set of declarations attached to a type, optionally
// satisfying a named contract interface.
type ImplBlock struct {
	SelfType TypeRef
	// Contract is the interface the block satisfies; "" for an inherent block.
	Contract string
	Items    []ImplItem
	Span     source.Span
}

// HasContract reports whether the block implements a contract interface.
func (b *ImplBlock) HasContract() bool {
	return b.Contract != ""
}
