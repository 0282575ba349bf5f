package analyze

import "go/types"

// FieldDescriptor describes one declared field of a record.
type FieldDescriptor struct {
	// Name is the field identifier as declared.
	Name string
	// Type is the resolved go/types type of the field.
	Type types.Type
	// Exported reports whether the field name is exported.
	Exported bool
	// Attrs maps attribute names to their raw textual payload, populated
	// from the `builder` struct tag and the sidecar schema.
	Attrs map[string]string
	// Index is the declaration position within the record.
	Index int
}

// PackageInfo identifies the package a record belongs to.
type PackageInfo struct {
	// Path is the import path (e.g., "builder-generator/examples/basic").
	Path string
	// Name is the package name.
	Name string
	// Dir is the directory holding the package sources. Generated files
	// are written here so unexported fields stay reachable.
	Dir string
}

// Record is one builder-annotated struct declaration, extracted once per
// generation pass and immutable afterwards.
type Record struct {
	// Name of the struct type.
	Name string
	// Package the record is declared in.
	Package PackageInfo
	// Fields in declaration order. The order is load-bearing: it is the
	// positional argument order of the generated constructor.
	Fields []FieldDescriptor
	// Members holds names already declared on the record: field names and
	// method names with value or pointer receivers. Files previously
	// generated by this tool are excluded so regeneration never collides
	// with its own output.
	Members map[string]bool
	// PackageScope holds package-level declaration names, used to detect
	// collisions with the generated constructor and init struct. Same
	// generated-file exclusion as Members.
	PackageScope map[string]bool
}

// HasAttr reports whether the descriptor carries the named attribute.
func (f *FieldDescriptor) HasAttr(name string) bool {
	_, ok := f.Attrs[name]
	return ok
}

// SetAttr sets an attribute payload unless the attribute is already
// present. Used by the sidecar schema merge: explicit tags win.
func (f *FieldDescriptor) SetAttr(name, payload string) bool {
	if f.Attrs == nil {
		f.Attrs = make(map[string]string, 1)
	}

	if _, ok := f.Attrs[name]; ok {
		return false
	}

	f.Attrs[name] = payload

	return true
}
