package gen

import (
	"go/types"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"builder-generator/internal/analyze"
	"builder-generator/internal/classify"
	"builder-generator/internal/diagnostic"
	"builder-generator/internal/synth"
)

func fixtureRecord(pkgName, pkgPath, name string, fields ...analyze.FieldDescriptor) *analyze.Record {
	rec := &analyze.Record{
		Name: name,
		Package: analyze.PackageInfo{
			Path: pkgPath,
			Name: pkgName,
		},
		Fields:       fields,
		Members:      make(map[string]bool),
		PackageScope: map[string]bool{name: true},
	}

	for _, f := range fields {
		rec.Members[f.Name] = true
	}

	return rec
}

func field(name string, t types.Type, attrs map[string]string) analyze.FieldDescriptor {
	return analyze.FieldDescriptor{Name: name, Type: t, Exported: true, Attrs: attrs}
}

func synthesize(t *testing.T, rec *analyze.Record) *synth.Result {
	t.Helper()

	fields, err := classify.ClassifyRecord(rec)
	require.NoError(t, err)

	res, err := synth.Synthesize(rec, fields)
	require.NoError(t, err)

	return res
}

func basicOrderRecord() *analyze.Record {
	return fixtureRecord("basic", "builder-generator/examples/basic", "Order",
		field("ID", types.Typ[types.String], nil),
		field("Quantity", types.Typ[types.Int], map[string]string{"default": "10"}),
		field("Note", types.NewPointer(types.Typ[types.String]), nil),
	)
}

func TestGenerateBasicOrder(t *testing.T) {
	g := NewGenerator(Config{})

	file, err := g.Generate(synthesize(t, basicOrderRecord()))
	require.NoError(t, err)

	assert.Equal(t, "order_builder.go", file.Filename)

	content := string(file.Content)

	assert.Contains(t, content, "// Code generated by builder-generator. DO NOT EDIT.")
	assert.Contains(t, content, "package basic")
	assert.Contains(t, content, "func NewOrder(ID string) Order {")
	assert.Contains(t, content, "out.Quantity = 10")
	assert.Contains(t, content, "out.Note = nil")
	assert.Contains(t, content, "type OrderInit struct {")
	assert.Contains(t, content, "func (v OrderInit) ToOrder() Order {")
	assert.Contains(t, content, "return NewOrder(v.ID)")
	assert.Contains(t, content, "func (s Order) WithNote(value string) Order {")
	assert.Contains(t, content, "s.Note = &value")
	assert.Contains(t, content, "func (s Order) OptNote(value *string) Order {")
	assert.Contains(t, content, "func (s Order) WithoutNote() Order {")
	assert.Contains(t, content, "func (s *Order) SetOptNote(value *string) *Order {")
	assert.Contains(t, content, "func (s *Order) ResetNote() *Order {")

	// No unsetters for the non-optional fields.
	assert.NotContains(t, content, "WithoutID")
	assert.NotContains(t, content, "ResetQuantity")
	assert.NotContains(t, content, "OptQuantity")
}

func TestGenerateMatchesCommittedExample(t *testing.T) {
	g := NewGenerator(Config{})

	file, err := g.Generate(synthesize(t, basicOrderRecord()))
	require.NoError(t, err)

	want, err := os.ReadFile("../../examples/basic/order_builder.go")
	require.NoError(t, err)

	assert.Equal(t, string(want), string(file.Content))
}

func TestGenerateDeterministic(t *testing.T) {
	g := NewGenerator(Config{})

	a, err := g.Generate(synthesize(t, basicOrderRecord()))
	require.NoError(t, err)

	b, err := g.Generate(synthesize(t, basicOrderRecord()))
	require.NoError(t, err)

	assert.Equal(t, a.Content, b.Content, "identical input must render byte-identical output")
}

func TestGenerateHoistsDefaultedOptional(t *testing.T) {
	rec := fixtureRecord("cfg", "example/cfg", "Config",
		field("timeout", types.NewPointer(types.Typ[types.Int]), map[string]string{"default": "30"}),
		field("nick", types.NewPointer(types.Typ[types.String]), map[string]string{"default": "nil"}),
	)

	g := NewGenerator(Config{})

	file, err := g.Generate(synthesize(t, rec))
	require.NoError(t, err)

	content := string(file.Content)

	assert.Contains(t, content, "var timeoutDefault int = 30")
	assert.Contains(t, content, "out.timeout = &timeoutDefault")
	assert.Contains(t, content, "out.nick = nil")
	assert.Contains(t, content, "func NewConfig() Config {")
}

func TestGenerateImportsForeignTypes(t *testing.T) {
	timePkg := types.NewPackage("time", "time")
	timeType := types.NewNamed(
		types.NewTypeName(0, timePkg, "Time", nil),
		types.NewStruct(nil, nil), nil)

	rec := fixtureRecord("events", "example/events", "Event",
		field("At", timeType, nil),
		field("Until", types.NewPointer(timeType), nil),
	)

	g := NewGenerator(Config{})

	file, err := g.Generate(synthesize(t, rec))
	require.NoError(t, err)

	content := string(file.Content)

	assert.Contains(t, content, "\"time\"")
	assert.Contains(t, content, "func NewEvent(At time.Time) Event {")
	assert.Contains(t, content, "func (s Event) WithUntil(value time.Time) Event {")
	assert.Contains(t, content, "func (s Event) OptUntil(value *time.Time) Event {")
	assert.Equal(t, 1, strings.Count(content, "\"time\""), "import emitted once")
}

func TestGenerateAllIsolatesFailures(t *testing.T) {
	bad := fixtureRecord("mix", "example/mix", "Bad",
		field("count", types.Typ[types.Int], map[string]string{"default": `"abc"`}),
	)
	good := fixtureRecord("mix", "example/mix", "Good",
		field("name", types.Typ[types.String], nil),
	)

	g := NewGenerator(Config{})

	var diags diagnostic.Diagnostics
	files := g.GenerateAll([]*analyze.Record{bad, good}, &diags)

	require.Len(t, files, 1, "the healthy record must still generate")
	assert.Equal(t, "good_builder.go", files[0].Filename)

	require.True(t, diags.HasErrors())
	assert.Equal(t, diagnostic.CodeInvalidDefaultExpression, diags.Errors[0].Code)
	assert.Equal(t, "Bad", diags.Errors[0].Record)
	assert.Equal(t, "count", diags.Errors[0].Field)
}

func TestOutputDirOverride(t *testing.T) {
	g := NewGenerator(Config{OutputDir: "/tmp/out"})

	file, err := g.Generate(synthesize(t, basicOrderRecord()))
	require.NoError(t, err)

	assert.Equal(t, "/tmp/out", file.Dir)
}
