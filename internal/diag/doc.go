// Package diag defines the diagnostic model shared by the scanning, rewriting
// and formatting stages.
//
// # Purpose
//
//   - Provide deterministic data structures that capture findings about the
//     input text (unbalanced brackets, rewrites that never settle).
//   - Offer light-weight utilities (Reporter, Bag) that let stages emit
//     diagnostics without coupling to storage or rendering.
//
// # Scope
//
// Package diag does not perform IO or CLI integration. The short one-line
// rendering in short.go is the only formatting it owns; the CLI decides
// where that text goes.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – tri-level enum (Info, Warning, Error).
//   - Code – compact numeric identifier (see codes.go) with a stable string
//     form such as SCN1001.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the source.Span pointing to the issue.
//   - Notes – optional secondary spans/messages for additional context.
//
// # Emitting diagnostics
//
// Stages receive a diag.Reporter through their options and pass finished
// records to Emit, which ignores a nil reporter. Warning and Error build the
// record; WithNote attaches context. BagReporter aggregates into a Bag that
// caps its size, counts what it refused and sorts deterministically.
package diag
