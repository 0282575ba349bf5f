package synth

import (
	"builder-generator/internal/analyze"
	"builder-generator/internal/classify"
	"builder-generator/internal/common"
	"builder-generator/internal/diagnostic"
)

// Synthesize produces the ordered member specs for one classified record.
//
// It fails with CodeMemberNameCollision when a generated name already
// exists on the host record or in its package scope; silently skipping or
// shadowing an existing member would make generated behavior diverge from
// what the declaration promises, which is unacceptable for a codegen layer.
func Synthesize(rec *analyze.Record, fields []classify.Field) (*Result, error) {
	res := &Result{
		Record:   rec,
		InitName: rec.Name + "Init",
		CtorName: "New" + common.ExportName(rec.Name),
		Required: classify.Required(fields),
		Fields:   fields,
	}

	// Generated names claimed so far; two fields whose names differ only
	// in first-rune case would otherwise silently produce duplicates.
	seen := make(map[string]bool)

	checkScope := func(name string) error {
		if rec.PackageScope[name] || seen[name] {
			return diagnostic.Errorf(diagnostic.CodeMemberNameCollision, rec.Name, "",
				"generated declaration %s already exists in package %s", name, rec.Package.Name)
		}

		seen[name] = true

		return nil
	}

	if err := checkScope(res.CtorName); err != nil {
		return nil, err
	}

	if err := checkScope(res.InitName); err != nil {
		return nil, err
	}

	res.Members = append(res.Members,
		MemberSpec{Kind: MemberConstructor, Name: res.CtorName},
		MemberSpec{Kind: MemberInitStruct, Name: res.InitName},
		MemberSpec{Kind: MemberConversion, Name: "To" + common.ExportName(rec.Name)},
	)

	for i := range res.Fields {
		if err := res.appendFieldMembers(&res.Fields[i], seen); err != nil {
			return nil, err
		}
	}

	return res, nil
}

// fieldMemberOrder is the fixed per-field member emission order.
var fieldMemberOrder = []MemberKind{
	MemberWith,
	MemberOpt,
	MemberWithout,
	MemberSet,
	MemberSetOpt,
	MemberReset,
}

// appendFieldMembers emits the member block for one field, filtered by its
// container shape: wrapped setters and unsetters exist only for optional
// (pointer) fields, including Defaulted pointer fields.
func (r *Result) appendFieldMembers(f *classify.Field, seen map[string]bool) error {
	suffix := common.ExportName(f.Name())

	for _, kind := range fieldMemberOrder {
		spec := MemberSpec{Kind: kind, Field: f}

		switch kind {
		case MemberWith:
			spec.Name = "With" + suffix
		case MemberOpt:
			spec.Name = "Opt" + suffix
			spec.Style = StyleWrapped
		case MemberWithout:
			spec.Name = "Without" + suffix
		case MemberSet:
			spec.Name = "Set" + suffix
		case MemberSetOpt:
			spec.Name = "SetOpt" + suffix
			spec.Style = StyleWrapped
		case MemberReset:
			spec.Name = "Reset" + suffix
		}

		if spec.Style == StyleWrapped || kind == MemberWithout || kind == MemberReset {
			if !f.Optional {
				continue
			}
		}

		if r.Record.Members[spec.Name] || seen[spec.Name] {
			return diagnostic.Errorf(diagnostic.CodeMemberNameCollision, r.Record.Name, f.Name(),
				"generated member %s already declared on %s", spec.Name, r.Record.Name)
		}

		seen[spec.Name] = true

		r.Members = append(r.Members, spec)
	}

	return nil
}
