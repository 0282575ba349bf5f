// Package schema implements the sidecar builder schema: a YAML file
// declaring per-field defaults for codebases that prefer not to annotate
// structs with tags. Schema entries merge into the extracted field
// attributes before classification; explicit tags win.
package schema

import (
	"strings"

	"builder-generator/internal/analyze"
	"builder-generator/internal/diagnostic"
)

// File represents the root of a YAML builder schema file.
type File struct {
	// Version of the schema format (for future compatibility).
	Version string `yaml:"version,omitempty"`

	// Records is the list of per-record field schemas.
	Records []RecordSchema `yaml:"records"`
}

// RecordSchema declares field attributes for one record type.
type RecordSchema struct {
	// Name of the record type, optionally package-qualified
	// (e.g., "Order" or "store.Order").
	Name string `yaml:"name"`

	// Fields maps field names to their schema entries.
	Fields map[string]FieldSchema `yaml:"fields"`
}

// FieldSchema declares attributes for one field.
type FieldSchema struct {
	// Default is the default expression, same grammar as the tag payload.
	Default string `yaml:"default,omitempty"`
}

// Apply merges schema defaults into the extracted records. A tag-level
// default on the same field takes precedence. Schema entries that match
// no record or field are reported as warnings, never errors.
func (f *File) Apply(records []*analyze.Record, diags *diagnostic.Diagnostics) {
	byName := make(map[string][]*analyze.Record, len(records))
	for _, rec := range records {
		byName[rec.Name] = append(byName[rec.Name], rec)
		byName[rec.Package.Name+"."+rec.Name] = append(byName[rec.Package.Name+"."+rec.Name], rec)
	}

	for _, rs := range f.Records {
		matched := byName[rs.Name]
		if len(matched) == 0 {
			diags.AddWarning(diagnostic.CodeUnknownSchemaEntry,
				"schema entry matches no extracted record", rs.Name, "")
			continue
		}

		for _, rec := range matched {
			applyRecord(rec, rs, diags)
		}
	}
}

// applyRecord merges one record schema into one extracted record.
func applyRecord(rec *analyze.Record, rs RecordSchema, diags *diagnostic.Diagnostics) {
	for name, fs := range rs.Fields {
		idx := fieldIndex(rec, name)
		if idx < 0 {
			diags.AddWarning(diagnostic.CodeUnknownSchemaEntry,
				"schema entry matches no declared field", rec.Name, name)
			continue
		}

		if def := strings.TrimSpace(fs.Default); def != "" {
			rec.Fields[idx].SetAttr("default", def)
		}
	}
}

func fieldIndex(rec *analyze.Record, name string) int {
	for i := range rec.Fields {
		if rec.Fields[i].Name == name {
			return i
		}
	}

	return -1
}
