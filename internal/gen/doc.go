// Package gen renders synthesized member specs into Go source.
//
// Generation uses text/template + go/format for readable, deterministic
// output: one `<record>_builder.go` file per record, written into the
// record's own package so unexported fields stay reachable.
//
// The emitter is deliberately thin. All classification and member-set
// decisions happen upstream (internal/classify, internal/synth); this
// package only turns the abstract member list into concrete syntax.
package gen
