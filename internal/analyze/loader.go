package analyze

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"

	"builder-generator/internal/common"
	"builder-generator/internal/diagnostic"
)

// Directive marks a struct declaration for builder generation.
const Directive = "//builder:generate"

// TagKey is the struct tag key carrying field attributes.
const TagKey = "builder"

// GeneratedSuffix is the file name suffix of files this tool emits.
// Declarations in such files are ignored when collecting existing member
// names, so regeneration never collides with its own previous output.
const GeneratedSuffix = "_builder.go"

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Loader extracts builder records from Go packages.
type Loader struct {
	// Types restricts extraction to the named structs. When empty, all
	// structs carrying the //builder:generate directive are selected.
	Types []string
}

// Load loads the given package patterns and extracts one Record per
// selected struct, in deterministic (package, declaration) order.
// Selected types that turn out not to be structs are reported on diags
// and skipped; the remaining records are still returned.
func (l *Loader) Load(diags *diagnostic.Diagnostics, patterns ...string) ([]*Record, error) {
	cfg := &packages.Config{Mode: LoadMode}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	var errs []string
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e.Error())
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %s", strings.Join(errs, "; "))
	}

	wanted := make(map[string]bool, len(l.Types))
	for _, name := range l.Types {
		wanted[name] = true
	}

	found := make(map[string]bool, len(wanted))

	var records []*Record

	for _, pkg := range pkgs {
		for _, name := range selectTypeNames(pkg, wanted) {
			found[name] = true

			rec, err := l.extractRecord(pkg, name)
			if err != nil {
				diags.AddErr(name, err)
				continue
			}

			records = append(records, rec)
		}
	}

	var missing []string
	for name := range wanted {
		if !found[name] {
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("types not found in loaded packages: %s", strings.Join(missing, ", "))
	}

	return records, nil
}

// selectTypeNames returns the type names in pkg selected for generation,
// in declaration order.
func selectTypeNames(pkg *packages.Package, wanted map[string]bool) []string {
	var names []string

	seen := make(map[string]bool)

	for _, file := range pkg.Syntax {
		if isGeneratedFile(pkg.Fset, file) {
			continue
		}

		for _, decl := range file.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}

			for _, spec := range gd.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok || seen[ts.Name.Name] {
					continue
				}

				if wanted[ts.Name.Name] || hasDirective(gd.Doc) || hasDirective(ts.Doc) {
					seen[ts.Name.Name] = true
					names = append(names, ts.Name.Name)
				}
			}
		}
	}

	return names
}

// hasDirective reports whether a comment group contains the generation
// directive as its own line.
func hasDirective(doc *ast.CommentGroup) bool {
	if doc == nil {
		return false
	}

	for _, c := range doc.List {
		if strings.TrimSpace(c.Text) == Directive {
			return true
		}
	}

	return false
}

// extractRecord builds a Record for the named type in pkg.
func (l *Loader) extractRecord(pkg *packages.Package, name string) (*Record, error) {
	obj := pkg.Types.Scope().Lookup(name)
	if obj == nil {
		return nil, diagnostic.Errorf(diagnostic.CodeNotAStruct, name, "",
			"type not found in package %s", pkg.PkgPath)
	}

	named, ok := obj.Type().(*types.Named)
	if !ok {
		return nil, diagnostic.Errorf(diagnostic.CodeNotAStruct, name, "",
			"type %s is not a named type", obj.Type())
	}

	st, ok := named.Underlying().(*types.Struct)
	if !ok {
		return nil, diagnostic.Errorf(diagnostic.CodeNotAStruct, name, "",
			"builder generation works only on structs, %s is %s", name, named.Underlying())
	}

	rec := &Record{
		Name: name,
		Package: PackageInfo{
			Path: pkg.PkgPath,
			Name: pkg.Name,
			Dir:  packageDir(pkg),
		},
	}

	for i := 0; i < st.NumFields(); i++ {
		field := st.Field(i)

		rec.Fields = append(rec.Fields, FieldDescriptor{
			Name:     field.Name(),
			Type:     field.Type(),
			Exported: field.Exported(),
			Attrs:    parseAttrs(reflect.StructTag(st.Tag(i)).Get(TagKey)),
			Index:    i,
		})
	}

	rec.Members, rec.PackageScope = memberNames(pkg, name)

	// Field names share the member namespace with methods.
	for _, f := range rec.Fields {
		rec.Members[f.Name] = true
	}

	return rec, nil
}

// parseAttrs parses a builder tag payload into an attribute map.
//
// The grammar is a single `name=payload` pair per tag: the payload is an
// arbitrary expression and may itself contain commas and equals signs, so
// everything after the first '=' belongs to it. A bare name maps to an
// empty payload.
func parseAttrs(raw string) map[string]string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	attrs := make(map[string]string, 1)

	if idx := strings.Index(raw, "="); idx >= 0 {
		attrs[raw[:idx]] = raw[idx+1:]
	} else {
		attrs[raw] = ""
	}

	return attrs
}

// memberNames collects names declared on the record (methods) and at
// package level, skipping files previously generated by this tool.
func memberNames(pkg *packages.Package, recordName string) (members, scope map[string]bool) {
	members = make(map[string]bool)
	scope = make(map[string]bool)

	for _, file := range pkg.Syntax {
		if isGeneratedFile(pkg.Fset, file) {
			continue
		}

		for _, decl := range file.Decls {
			switch d := decl.(type) {
			case *ast.FuncDecl:
				if d.Recv == nil {
					scope[d.Name.Name] = true
				} else if recvTypeName(d.Recv) == recordName {
					members[d.Name.Name] = true
				}

			case *ast.GenDecl:
				for _, spec := range d.Specs {
					switch s := spec.(type) {
					case *ast.TypeSpec:
						scope[s.Name.Name] = true
					case *ast.ValueSpec:
						for _, n := range s.Names {
							scope[n.Name] = true
						}
					}
				}
			}
		}
	}

	return members, scope
}

// recvTypeName returns the receiver's type name, unwrapping pointers and
// type parameters.
func recvTypeName(recv *ast.FieldList) string {
	if recv == nil || len(recv.List) == 0 {
		return ""
	}

	expr := recv.List[0].Type
	for {
		switch e := expr.(type) {
		case *ast.StarExpr:
			expr = e.X
		case *ast.IndexExpr:
			expr = e.X
		case *ast.IndexListExpr:
			expr = e.X
		case *ast.Ident:
			return e.Name
		default:
			return ""
		}
	}
}

// isGeneratedFile reports whether the file was emitted by this tool.
func isGeneratedFile(fset *token.FileSet, file *ast.File) bool {
	name := fset.Position(file.Pos()).Filename
	return strings.HasSuffix(filepath.Base(name), GeneratedSuffix)
}

// packageDir returns the directory holding the package sources.
func packageDir(pkg *packages.Package) string {
	if f, ok := common.First(pkg.GoFiles); ok {
		return filepath.Dir(f)
	}

	return ""
}
