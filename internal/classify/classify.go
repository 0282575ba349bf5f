package classify

import (
	"go/types"

	"builder-generator/internal/analyze"
	"builder-generator/internal/diagnostic"
)

// Classify determines the FieldKind of a single descriptor.
//
// Decision table:
//
//	no default, not pointer  -> Required
//	no default, pointer      -> Optional
//	default, any shape       -> Defaulted
//
// Errors are coded: CodeUnresolvableType when the type has no
// classifiable shape, CodeInvalidDefaultExpression when the default
// payload does not parse or does not fit the field's type.
func Classify(record string, desc analyze.FieldDescriptor) (Field, error) {
	inner, optional, err := optionalShape(record, desc)
	if err != nil {
		return Field{}, err
	}

	f := Field{
		Desc:     desc,
		Optional: optional,
		Inner:    inner,
	}

	raw, hasDefault := desc.Attrs[AttrDefault]

	switch {
	case hasDefault:
		f.Kind = KindDefaulted

		expr, isNil, err := normalizeDefault(record, desc.Name, inner, optional, raw)
		if err != nil {
			return Field{}, err
		}

		f.Default = expr
		f.DefaultIsNil = isNil

	case optional:
		f.Kind = KindOptional

	default:
		f.Kind = KindRequired
	}

	return f, nil
}

// ClassifyRecord classifies every field of a record in declaration order.
// The first field error aborts the record's pass; sibling records are not
// affected (the caller isolates failures per record).
func ClassifyRecord(rec *analyze.Record) ([]Field, error) {
	fields := make([]Field, 0, len(rec.Fields))

	for _, desc := range rec.Fields {
		f, err := Classify(rec.Name, desc)
		if err != nil {
			return nil, err
		}

		fields = append(fields, f)
	}

	return fields, nil
}

// Required filters the classified fields down to the Required ones,
// preserving declaration order. This is the positional signature of both
// the constructor and the init struct.
func Required(fields []Field) []Field {
	var req []Field

	for _, f := range fields {
		if f.Kind == KindRequired {
			req = append(req, f)
		}
	}

	return req
}

// optionalShape performs the structural optional-container test.
//
// A field is an optional container iff its declared type is a single-level
// pointer; the pointee is the inner type. Nested pointers have no single
// inner shape and are rejected rather than guessed at.
func optionalShape(record string, desc analyze.FieldDescriptor) (types.Type, bool, error) {
	t := desc.Type
	if t == nil {
		return nil, false, diagnostic.Errorf(diagnostic.CodeUnresolvableType, record, desc.Name,
			"field has no resolved type")
	}

	if b, ok := t.Underlying().(*types.Basic); ok && b.Kind() == types.Invalid {
		return nil, false, diagnostic.Errorf(diagnostic.CodeUnresolvableType, record, desc.Name,
			"field type did not resolve")
	}

	ptr, ok := t.(*types.Pointer)
	if !ok {
		return t, false, nil
	}

	elem := ptr.Elem()
	if _, ok := elem.(*types.Pointer); ok {
		return nil, false, diagnostic.Errorf(diagnostic.CodeUnresolvableType, record, desc.Name,
			"nested pointer type %s has no unambiguous inner type", t)
	}

	return elem, true, nil
}
