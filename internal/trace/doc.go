// Package trace provides event tracing for boxed value operations.
//
// The trace package records what a value went through: which operations
// ran, which buffers were allocated and released, and which diagnostics were
// raised. It is the tool for chasing leaks (an alloc without a matching free)
// and for seeing why a getter complained.
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	dtype run --trace=- --trace-level=op script.dts
//
// # Architecture
//
//   - Nop: zero-overhead no-op tracer when disabled
//   - StreamTracer: immediate write to output (file/stderr)
//   - RingTracer: circular buffer, dumped on demand
//   - MultiTracer: combines multiple tracers
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: only raised diagnostics
//   - LevelOp: sessions and value operations (set/get/clear/resize/print)
//   - LevelDebug: everything including buffer alloc/free
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopeSession, "script:a.dts", 0)
//	defer span.End("")
package trace
