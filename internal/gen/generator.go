package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"go/types"
	"sort"
	"text/template"
	"unicode"

	"builder-generator/internal/analyze"
	"builder-generator/internal/classify"
	"builder-generator/internal/common"
	"builder-generator/internal/diagnostic"
	"builder-generator/internal/synth"
)

// Config holds configuration for code generation.
type Config struct {
	// OutputDir overrides the per-record package directory when set.
	// Mainly useful for dry runs and tests.
	OutputDir string
}

// Generator renders synthesized builder members into Go source files.
type Generator struct {
	config Config
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config Config) *Generator {
	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "order_builder.go").
	Filename string
	// Dir is the directory the file belongs in.
	Dir string
	// Content is the formatted Go source code.
	Content []byte
}

// GenerateAll runs classification, synthesis, and rendering for every
// record. Failures are recorded on diags per record; one record's failure
// never blocks its siblings.
func (g *Generator) GenerateAll(records []*analyze.Record, diags *diagnostic.Diagnostics) []GeneratedFile {
	var files []GeneratedFile

	for _, rec := range records {
		fields, err := classify.ClassifyRecord(rec)
		if err != nil {
			diags.AddErr(rec.Name, err)
			continue
		}

		res, err := synth.Synthesize(rec, fields)
		if err != nil {
			diags.AddErr(rec.Name, err)
			continue
		}

		file, err := g.Generate(res)
		if err != nil {
			diags.AddErr(rec.Name, err)
			continue
		}

		files = append(files, *file)
	}

	return files
}

// Generate renders one synthesized record into a source file.
func (g *Generator) Generate(res *synth.Result) (*GeneratedFile, error) {
	data := g.buildTemplateData(res)

	var buf bytes.Buffer
	if err := builderTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	dir := g.config.OutputDir
	if dir == "" {
		dir = res.Record.Package.Dir
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		_ = writeDebugUnformatted(dir, data.Filename, buf.Bytes())

		return &GeneratedFile{
			Filename: data.Filename,
			Dir:      dir,
			Content:  buf.Bytes(),
		}, fmt.Errorf("formatting generated code: %w", err)
	}

	return &GeneratedFile{
		Filename: data.Filename,
		Dir:      dir,
		Content:  formatted,
	}, nil
}

// templateData holds all data needed for the builder template.
type templateData struct {
	PackageName    string
	Filename       string
	RecordName     string
	InitName       string
	CtorName       string
	ConversionName string
	Imports        []importSpec
	Params         []paramData
	Assignments    []assignData
	Setters        []setterData
}

// importSpec is one import of the generated file.
type importSpec struct {
	Alias string
	Path  string
}

// paramData is one required-field parameter of the constructor, which is
// also one field of the init struct.
type paramData struct {
	Name string
	Type string
}

// assignData is one field assignment in the constructor body.
type assignData struct {
	Field string
	Expr  string
	// Hoist marks defaulted pointer fields: Go has no pointer literal, so
	// the default expression is hoisted into an addressable temporary and
	// its address assigned.
	Hoist    bool
	TempVar  string
	TempType string
}

// setterData is one generated setter or unsetter.
type setterData struct {
	Name      string
	Comment   string
	Mutable   bool
	HasParam  bool
	ParamType string
	Field     string
	Expr      string
}

// buildTemplateData constructs the template data from a synthesized result.
func (g *Generator) buildTemplateData(res *synth.Result) *templateData {
	rec := res.Record

	data := &templateData{
		PackageName: rec.Package.Name,
		Filename:    common.SnakeCase(rec.Name) + analyze.GeneratedSuffix,
		RecordName:  rec.Name,
		InitName:    res.InitName,
		CtorName:    res.CtorName,
	}

	imports := make(map[string]importSpec)

	for _, spec := range res.Members {
		switch spec.Kind {
		case synth.MemberConstructor:
			for _, f := range res.Required {
				data.Params = append(data.Params, paramData{
					Name: f.Name(),
					Type: g.typeString(f.Desc.Type, rec, imports),
				})
			}

			data.Assignments = g.buildAssignments(res, imports)

		case synth.MemberInitStruct:
			// Shares Params with the constructor: the init struct's shape
			// is exactly the positional signature.

		case synth.MemberConversion:
			data.ConversionName = spec.Name

		default:
			data.Setters = append(data.Setters, g.buildSetter(res, spec, imports))
		}
	}

	for _, imp := range imports {
		data.Imports = append(data.Imports, imp)
	}

	sort.Slice(data.Imports, func(i, j int) bool {
		return data.Imports[i].Path < data.Imports[j].Path
	})

	return data
}

// buildAssignments produces the constructor body: every field assigned in
// declaration order, from its parameter, its default, or the empty value.
func (g *Generator) buildAssignments(res *synth.Result, imports map[string]importSpec) []assignData {
	assignments := make([]assignData, 0, len(res.Fields))

	for i := range res.Fields {
		f := &res.Fields[i]
		a := assignData{Field: f.Name()}

		switch {
		case f.Kind == classify.KindRequired:
			a.Expr = f.Name()

		case f.Kind == classify.KindOptional:
			a.Expr = "nil"

		case f.DefaultIsNil:
			a.Expr = "nil"

		case f.Optional:
			a.Hoist = true
			a.Expr = f.Default
			a.TempVar = unexportName(f.Name()) + "Default"
			a.TempType = g.typeString(f.Inner, res.Record, imports)

		default:
			a.Expr = f.Default
		}

		assignments = append(assignments, a)
	}

	return assignments
}

// buildSetter produces one setter/unsetter member.
func (g *Generator) buildSetter(res *synth.Result, spec synth.MemberSpec, imports map[string]importSpec) setterData {
	f := spec.Field

	s := setterData{
		Name:    spec.Name,
		Comment: setterComment(spec, res.Record.Name),
		Mutable: spec.Kind.Mutable(),
		Field:   f.Name(),
	}

	switch spec.Kind {
	case synth.MemberWith, synth.MemberSet:
		s.HasParam = true
		s.ParamType = g.typeString(f.Inner, res.Record, imports)

		if f.Optional {
			s.Expr = "&value"
		} else {
			s.Expr = "value"
		}

	case synth.MemberOpt, synth.MemberSetOpt:
		s.HasParam = true
		s.ParamType = g.typeString(f.Desc.Type, res.Record, imports)
		s.Expr = "value"

	case synth.MemberWithout, synth.MemberReset:
		s.Expr = "nil"
	}

	return s
}

// setterComment builds the doc line for a generated setter.
func setterComment(spec synth.MemberSpec, record string) string {
	field := spec.Field.Name()

	switch spec.Kind {
	case synth.MemberWith:
		return fmt.Sprintf("returns a copy of %s with %s set.", record, field)
	case synth.MemberOpt:
		return fmt.Sprintf("returns a copy of %s with %s set to an already-wrapped value.", record, field)
	case synth.MemberWithout:
		return fmt.Sprintf("returns a copy of %s with %s empty.", record, field)
	case synth.MemberSet:
		return fmt.Sprintf("sets %s in place and returns the receiver for chaining.", field)
	case synth.MemberSetOpt:
		return fmt.Sprintf("sets the wrapped %s value in place and returns the receiver for chaining.", field)
	case synth.MemberReset:
		return fmt.Sprintf("empties %s in place and returns the receiver for chaining.", field)
	default:
		return ""
	}
}

// typeString renders t relative to the record's package, collecting
// imports for foreign packages along the way.
func (g *Generator) typeString(t types.Type, rec *analyze.Record, imports map[string]importSpec) string {
	qual := func(p *types.Package) string {
		if p == nil || p.Path() == rec.Package.Path {
			return ""
		}

		spec := importSpec{Path: p.Path()}
		if common.PkgAlias(p.Path()) != p.Name() {
			spec.Alias = p.Name()
		}

		imports[p.Path()] = spec

		return p.Name()
	}

	return types.TypeString(t, qual)
}

// unexportName lowers the first rune, for local temporaries derived from
// field names.
func unexportName(name string) string {
	if name == "" {
		return ""
	}

	r := []rune(name)
	r[0] = unicode.ToLower(r[0])

	return string(r)
}

// Template for the builder file

var builderTemplate = template.Must(template.New("builder").Parse(`// Code generated by builder-generator. DO NOT EDIT.

package {{.PackageName}}

{{if .Imports}}import (
{{range .Imports}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}})

{{end}}// {{.CtorName}} constructs {{.RecordName}} from its required fields, in
// declaration order. Optional fields start empty; defaulted fields start
// from their declared defaults.
func {{.CtorName}}({{range $i, $p := .Params}}{{if $i}}, {{end}}{{$p.Name}} {{$p.Type}}{{end}}) {{.RecordName}} {
	out := {{.RecordName}}{}
{{range .Assignments}}{{if .Hoist}}	var {{.TempVar}} {{.TempType}} = {{.Expr}}
	out.{{.Field}} = &{{.TempVar}}
{{else}}	out.{{.Field}} = {{.Expr}}
{{end}}{{end}}	return out
}

// {{.InitName}} holds only the required fields of {{.RecordName}}, emulating
// named-argument construction.
type {{.InitName}} struct {
{{range .Params}}	{{.Name}} {{.Type}}
{{end}}}

// {{.ConversionName}} builds {{.RecordName}} from the init value, filling
// optional and defaulted fields the same way {{.CtorName}} does.
func (v {{.InitName}}) {{.ConversionName}}() {{.RecordName}} {
	return {{.CtorName}}({{range $i, $p := .Params}}{{if $i}}, {{end}}v.{{$p.Name}}{{end}})
}
{{range .Setters}}
// {{.Name}} {{.Comment}}
{{if .Mutable}}func (s *{{$.RecordName}}) {{.Name}}({{if .HasParam}}value {{.ParamType}}{{end}}) *{{$.RecordName}} {
	s.{{.Field}} = {{.Expr}}
	return s
}
{{else}}func (s {{$.RecordName}}) {{.Name}}({{if .HasParam}}value {{.ParamType}}{{end}}) {{$.RecordName}} {
	s.{{.Field}} = {{.Expr}}
	return s
}
{{end}}{{end}}`))
