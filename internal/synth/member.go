package synth

import (
	"builder-generator/internal/analyze"
	"builder-generator/internal/classify"
	"builder-generator/internal/common"
)

// MemberKind identifies one generated member of the builder API.
type MemberKind int

const (
	// MemberConstructor - NewX(required...), positional, declaration order.
	MemberConstructor MemberKind = iota
	// MemberInitStruct - the XInit companion type holding required fields.
	MemberInitStruct
	// MemberConversion - ToX() on the init struct, delegating to the
	// constructor logic.
	MemberConversion
	// MemberWith - immutable setter taking the inner value.
	MemberWith
	// MemberOpt - immutable setter taking the already-wrapped pointer.
	MemberOpt
	// MemberWithout - immutable unsetter; optional fields only.
	MemberWithout
	// MemberSet - mutable setter taking the inner value.
	MemberSet
	// MemberSetOpt - mutable setter taking the already-wrapped pointer.
	MemberSetOpt
	// MemberReset - mutable unsetter; optional fields only.
	MemberReset
)

// String returns a human-readable member kind name.
func (k MemberKind) String() string {
	switch k {
	case MemberConstructor:
		return "constructor"
	case MemberInitStruct:
		return "init_struct"
	case MemberConversion:
		return "conversion"
	case MemberWith:
		return "with"
	case MemberOpt:
		return "opt"
	case MemberWithout:
		return "without"
	case MemberSet:
		return "set"
	case MemberSetOpt:
		return "set_opt"
	case MemberReset:
		return "reset"
	default:
		return common.UnknownStr
	}
}

// Mutable reports whether the member mutates the record in place (and
// returns a handle for chaining) rather than returning an updated copy.
func (k MemberKind) Mutable() bool {
	switch k {
	case MemberSet, MemberSetOpt, MemberReset:
		return true
	default:
		return false
	}
}

// SetterStyle distinguishes setters taking the raw inner value from those
// taking the already-wrapped optional value.
type SetterStyle int

const (
	// StyleBare - parameter is the inner type; pointer fields wrap
	// automatically.
	StyleBare SetterStyle = iota
	// StyleWrapped - parameter is the pointer type itself, passed through.
	StyleWrapped
)

// String returns a human-readable style name.
func (s SetterStyle) String() string {
	switch s {
	case StyleBare:
		return "bare"
	case StyleWrapped:
		return "wrapped"
	default:
		return common.UnknownStr
	}
}

// MemberSpec is the abstract description of one generated member, prior to
// concrete-syntax rendering.
type MemberSpec struct {
	// Kind of the member.
	Kind MemberKind
	// Name is the generated identifier.
	Name string
	// Field the member operates on; nil for record-level members
	// (constructor, init struct, conversion).
	Field *classify.Field
	// Style of the setter parameter; meaningful for setter kinds only.
	Style SetterStyle
}

// Result is the complete synthesized member set for one record.
type Result struct {
	// Record the members belong to.
	Record *analyze.Record
	// InitName is the companion init struct's type name.
	InitName string
	// CtorName is the constructor's name.
	CtorName string
	// Members in deterministic emission order: constructor, init struct,
	// conversion, then per-field blocks in declaration order with member
	// kinds in the fixed order {with, opt, without, set, set_opt, reset}.
	Members []MemberSpec
	// Required fields in declaration order. This is both the constructor's
	// positional signature and the init struct's exact shape.
	Required []classify.Field
	// Fields is the full classified field list in declaration order.
	Fields []classify.Field
}
