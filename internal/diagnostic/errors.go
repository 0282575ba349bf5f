package diagnostic

import (
	"errors"
	"fmt"
)

// Error codes for generation failures. All of them abort generation for
// the offending record only.
const (
	// CodeUnresolvableType - a field's type cannot be structurally
	// classified as plain or optional-container.
	CodeUnresolvableType = "unresolvable_type"
	// CodeInvalidDefaultExpression - a default attribute payload does not
	// parse or does not fit the field's type.
	CodeInvalidDefaultExpression = "invalid_default_expression"
	// CodeMemberNameCollision - a generated member name already exists on
	// the host record or in its package scope.
	CodeMemberNameCollision = "member_name_collision"
	// CodeNotAStruct - a type selected for generation is not a struct.
	CodeNotAStruct = "not_a_struct"
	// CodeUnknownSchemaEntry - a sidecar schema entry matched no record
	// or field. Warning only.
	CodeUnknownSchemaEntry = "unknown_schema_entry"
)

// Error is a coded generation failure attributed to a record and,
// usually, one of its fields.
type Error struct {
	Code    string
	Record  string
	Field   string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("[%s] %s.%s: %s", e.Code, e.Record, e.Field, e.Message)
	}

	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Record, e.Message)
}

// Errorf builds a coded Error with a formatted message.
func Errorf(code, record, field, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Record:  record,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}

// AddErr records err as an error diagnostic, preserving the code and
// attribution of coded errors.
func (d *Diagnostics) AddErr(record string, err error) {
	var ge *Error
	if errors.As(err, &ge) {
		d.AddError(ge.Code, ge.Message, ge.Record, ge.Field)
		return
	}

	d.AddError("generation_failed", err.Error(), record, "")
}
