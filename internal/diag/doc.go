// Package diag defines the diagnostic model shared by every contractgen phase.
//
// A Diagnostic carries a Severity, a stable Code (rendered as CTR1001,
// SYN2001, ...), a short message, the primary source.Span it is anchored at
// and optional Notes pointing at related spans.
//
// Producers emit through a Reporter so that emission stays decoupled from
// storage; BagReporter collects into a Bag, which supports sorting,
// deduplication and merging. The package does no formatting beyond the
// single-line short form; rich rendering lives in internal/diagfmt.
//
// Keep the model deterministic: the driver sorts bags before rendering and
// tests compare FormatShortDiagnostics output verbatim.
package diag
