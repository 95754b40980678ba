// Package sweep drives a stimulus source across a frequency plan, captures
// the response at each point, and assembles per-point quality metrics and
// aggregate bandwidth knees.
//
// The orchestrator is deliberately synchronous and single-threaded: most
// bench-instrument protocols are stateful and cannot interleave commands,
// so each point is fully processed (apply, dwell, capture, analyze) before
// the next begins. Per-point failures are fail-soft: a failing point yields
// a NaN row and the sweep continues, so one misbehaving capture never
// discards an otherwise valid run. Only construction-time parameter errors
// prevent a sweep from starting.
//
// Hardware access is injected through the [Bench] capability struct; the
// package has no notion of which instrument backends exist.
package sweep
