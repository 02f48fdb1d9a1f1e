// Package contract turns annotated declarations into contract entry points.
//
// For every candidate selected from a free function or an impl block the
// pass validates the parameter shape, synthesizes an ABI wrapper that
// marshals RawVal arguments, and builds the spec descriptor placed in the
// contractspecv0 section. All functions here are pure over the ir model.
package contract
