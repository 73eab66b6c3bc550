// Package primitives turns loosely typed documents into typed values.
//
// Decode reads YAML, JSON or msgpack bytes into plain maps, slices and
// scalars. A Coercer then reads fields out of that tree with defaults,
// reporting each missing or mistyped field to a diag.Reporter at its
// document path (for example "states[2].transitions[0].target") instead of
// failing.
package primitives
