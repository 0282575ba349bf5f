// Package synth implements member synthesis, the second half of the
// builder-generation core.
//
// Given a record's classified field list it produces the complete, ordered
// list of abstract member specs: constructor, init struct, conversion, and
// per-field setters. The output is deterministic: identical input yields an
// identical member sequence, so repeated generation is byte-identical after
// rendering.
//
// Synthesis is pure and never renders text; turning member specs into Go
// syntax is the emitter's job (internal/gen).
package synth
