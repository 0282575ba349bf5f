// Package analyze provides package loading and record extraction.
//
// It uses golang.org/x/tools/go/packages with AST and go/types to find
// builder-annotated struct declarations and turn each one into an ordered
// list of field descriptors, plus the set of names already declared on the
// record (for collision checks downstream).
//
// A struct is selected for generation when its declaration carries a
// //builder:generate directive, or when its name is requested explicitly.
package analyze
