// Package classify implements field classification, the first half of the
// builder-generation core.
//
// Every field descriptor maps to exactly one FieldKind:
//   - Required: no default, not an optional container; becomes a positional
//     constructor argument.
//   - Optional: pointer-shaped type; absence is its natural default state.
//   - Defaulted: carries an explicit default attribute, whether or not the
//     type is also pointer-shaped.
//
// Optional-container detection is a structural type-shape test on the
// resolved go/types value (is it a pointer?), never a type-name heuristic,
// so unrelated generic or named types cannot be misclassified.
//
// Classification is pure and total: it either returns a classified field
// or a coded diagnostic.Error, never a silent fallback.
package classify
