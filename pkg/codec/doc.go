// Package codec serializes forests to and from a JSON document format.
//
// The format is the canonical external representation of a forest: the root
// set plus one entry per instance carrying its ref, parent ref, ordered child
// refs, and payload. Output is deterministic (instances and roots are sorted
// by ref), so encoding the same forest twice yields identical bytes and
// documents diff cleanly under version control.
//
// Decoding never produces a malformed forest: the instance graph is rebuilt
// through [forest.Reconstruct], which validates all structural invariants and
// rejects documents with dangling refs, mismatched links, or cycles.
//
// Payloads round-trip through encoding/json and are otherwise opaque: a
// payload that was a concrete Go type before encoding comes back as the
// generic JSON shape (map[string]any, []any, float64, string, bool, nil).
package codec
