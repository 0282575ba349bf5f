package classify

import (
	"go/types"

	"builder-generator/internal/analyze"
	"builder-generator/internal/common"
)

// AttrDefault is the only attribute the classifier recognizes.
const AttrDefault = "default"

// FieldKind partitions record fields by how construction must treat them.
type FieldKind int

const (
	// KindRequired - no default, not an optional container; must be
	// supplied at construction.
	KindRequired FieldKind = iota
	// KindOptional - optional-container (pointer) field; starts empty.
	KindOptional
	// KindDefaulted - explicit default attribute; starts populated.
	KindDefaulted
)

// String returns a human-readable kind name.
func (k FieldKind) String() string {
	switch k {
	case KindRequired:
		return "required"
	case KindOptional:
		return "optional"
	case KindDefaulted:
		return "defaulted"
	default:
		return common.UnknownStr
	}
}

// Field is a classified field: the descriptor plus everything member
// synthesis needs to know about it.
type Field struct {
	// Desc is the originating descriptor.
	Desc analyze.FieldDescriptor
	// Kind is the classification result.
	Kind FieldKind
	// Optional reports the container shape independently of Kind: a
	// Defaulted pointer field keeps Optional == true and still gets
	// unsetters.
	Optional bool
	// Inner is the element type for pointer fields, the declared type
	// otherwise. Setter parameters use this type.
	Inner types.Type
	// Default is the normalized default expression. For pointer fields it
	// is an expression of Inner (Go has no pointer literal; the emitter
	// hoists it into an addressable temporary). Empty unless
	// Kind == KindDefaulted.
	Default string
	// DefaultIsNil marks an explicit `default=nil` on a pointer field:
	// classified Defaulted, but starts empty.
	DefaultIsNil bool
}

// Name returns the declared field name.
func (f *Field) Name() string {
	return f.Desc.Name
}
