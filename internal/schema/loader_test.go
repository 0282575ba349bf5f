package schema

import (
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"builder-generator/internal/analyze"
	"builder-generator/internal/diagnostic"
)

const eventSchema = `
version: "1"
records:
  - name: Event
    fields:
      Level:
        default: "3"
`

func eventRecord() *analyze.Record {
	return &analyze.Record{
		Name: "Event",
		Package: analyze.PackageInfo{
			Path: "builder-generator/examples/sidecar",
			Name: "sidecar",
		},
		Fields: []analyze.FieldDescriptor{
			{Name: "Kind", Type: types.Typ[types.String], Exported: true},
			{Name: "Level", Type: types.Typ[types.Int], Exported: true},
			{Name: "Tag", Type: types.NewPointer(types.Typ[types.String]), Exported: true},
		},
	}
}

func TestParse(t *testing.T) {
	f, err := Parse([]byte(eventSchema))
	require.NoError(t, err)

	assert.Equal(t, "1", f.Version)
	require.Len(t, f.Records, 1)
	assert.Equal(t, "Event", f.Records[0].Name)
	assert.Equal(t, "3", f.Records[0].Fields["Level"].Default)
}

func TestParseDefaultsVersion(t *testing.T) {
	f, err := Parse([]byte("records: []"))
	require.NoError(t, err)

	assert.Equal(t, "1", f.Version)
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("records: [unclosed"))
	assert.Error(t, err)
}

func TestApplyMergesDefaults(t *testing.T) {
	f, err := Parse([]byte(eventSchema))
	require.NoError(t, err)

	rec := eventRecord()

	var diags diagnostic.Diagnostics
	f.Apply([]*analyze.Record{rec}, &diags)

	assert.False(t, diags.HasErrors())
	assert.Empty(t, diags.Warnings)

	def, ok := rec.Fields[1].Attrs["default"]
	require.True(t, ok)
	assert.Equal(t, "3", def)

	assert.Empty(t, rec.Fields[0].Attrs)
	assert.Empty(t, rec.Fields[2].Attrs)
}

func TestApplyMatchesQualifiedName(t *testing.T) {
	f, err := Parse([]byte(`
records:
  - name: sidecar.Event
    fields:
      Level:
        default: "7"
`))
	require.NoError(t, err)

	rec := eventRecord()

	var diags diagnostic.Diagnostics
	f.Apply([]*analyze.Record{rec}, &diags)

	assert.Empty(t, diags.Warnings)
	assert.Equal(t, "7", rec.Fields[1].Attrs["default"])
}

func TestTagBeatsSchema(t *testing.T) {
	f, err := Parse([]byte(eventSchema))
	require.NoError(t, err)

	rec := eventRecord()
	rec.Fields[1].Attrs = map[string]string{"default": "9"}

	var diags diagnostic.Diagnostics
	f.Apply([]*analyze.Record{rec}, &diags)

	assert.Equal(t, "9", rec.Fields[1].Attrs["default"],
		"an explicit tag default must not be overwritten by the schema")
}

func TestApplyWarnsOnUnknownRecord(t *testing.T) {
	f, err := Parse([]byte(`
records:
  - name: Nope
    fields:
      Level:
        default: "3"
`))
	require.NoError(t, err)

	var diags diagnostic.Diagnostics
	f.Apply([]*analyze.Record{eventRecord()}, &diags)

	assert.False(t, diags.HasErrors())
	require.Len(t, diags.Warnings, 1)
	assert.Equal(t, diagnostic.CodeUnknownSchemaEntry, diags.Warnings[0].Code)
	assert.Equal(t, "Nope", diags.Warnings[0].Record)
}

func TestApplyWarnsOnUnknownField(t *testing.T) {
	f, err := Parse([]byte(`
records:
  - name: Event
    fields:
      Missing:
        default: "3"
`))
	require.NoError(t, err)

	rec := eventRecord()

	var diags diagnostic.Diagnostics
	f.Apply([]*analyze.Record{rec}, &diags)

	assert.False(t, diags.HasErrors())
	require.Len(t, diags.Warnings, 1)
	assert.Equal(t, diagnostic.CodeUnknownSchemaEntry, diags.Warnings[0].Code)
	assert.Equal(t, "Event", diags.Warnings[0].Record)
	assert.Equal(t, "Missing", diags.Warnings[0].Field)

	assert.Empty(t, rec.Fields[1].Attrs)
}
