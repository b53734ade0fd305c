// Package trace provides structured tracing for the tmplfmt pipeline.
//
// Tracing answers "what did the rewrite loop do and where did time go" for a
// single invocation: which inputs were processed, how many fixpoint passes
// each needed, and which patterns fired or declined.
//
// # Usage
//
//	tmplfmt --trace=- --trace-level=detail build.log
//
// # Tracers
//
//   - Nop: zero-overhead tracer used when tracing is off
//   - StreamTracer: writes every event immediately (text or NDJSON)
//   - RingTracer: keeps the last N events for a dump after a failure
//   - MultiTracer: fans out to several tracers (mode "both")
//
// # Levels and scopes
//
// Scopes order events from coarse to fine: ScopeDriver (one invocation),
// ScopeStage (normalize/rewrite/format of one input), ScopePass (one fixpoint
// pass), ScopeMatch (a single pattern hit or decline). LevelPhase emits
// driver and stage events, LevelDetail adds passes, LevelDebug adds matches.
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span, ctx := trace.StartSpan(ctx, trace.ScopeStage, "rewrite")
//	defer span.End("")
//
// Spans begun from the returned ctx nest under span. Attributes set with
// Span.Set travel on the end event in the order they were set.
package trace
