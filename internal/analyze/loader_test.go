package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"builder-generator/internal/diagnostic"
)

func loadOne(t *testing.T, l *Loader, pattern string) *Record {
	t.Helper()

	var diags diagnostic.Diagnostics
	records, err := l.Load(&diags, pattern)
	require.NoError(t, err)
	require.False(t, diags.HasErrors(), "unexpected diagnostics: %v", diags.Error())
	require.Len(t, records, 1)

	return records[0]
}

func TestLoadDirectiveRecord(t *testing.T) {
	rec := loadOne(t, &Loader{}, "builder-generator/examples/basic")

	assert.Equal(t, "Order", rec.Name)
	assert.Equal(t, "basic", rec.Package.Name)
	assert.Equal(t, "builder-generator/examples/basic", rec.Package.Path)
	assert.NotEmpty(t, rec.Package.Dir)

	require.Len(t, rec.Fields, 3)
	assert.Equal(t, "ID", rec.Fields[0].Name)
	assert.Equal(t, "Quantity", rec.Fields[1].Name)
	assert.Equal(t, "Note", rec.Fields[2].Name)

	assert.Empty(t, rec.Fields[0].Attrs)
	assert.Equal(t, "10", rec.Fields[1].Attrs["default"])
}

func TestLoadCollectsMemberNames(t *testing.T) {
	rec := loadOne(t, &Loader{}, "builder-generator/examples/basic")

	assert.True(t, rec.Members["Total"], "hand-written method")
	assert.True(t, rec.Members["ID"], "field names share the member namespace")

	// The committed generated file must be invisible to extraction, or
	// regeneration would collide with its own previous output.
	assert.False(t, rec.Members["WithID"])
	assert.False(t, rec.PackageScope["OrderInit"])
	assert.False(t, rec.PackageScope["NewOrder"])

	assert.True(t, rec.PackageScope["Order"])
}

func TestLoadExplicitTypeName(t *testing.T) {
	rec := loadOne(t, &Loader{Types: []string{"Order"}}, "builder-generator/examples/basic")

	assert.Equal(t, "Order", rec.Name)
}

func TestLoadUnknownTypeName(t *testing.T) {
	var diags diagnostic.Diagnostics
	_, err := (&Loader{Types: []string{"Nope"}}).Load(&diags, "builder-generator/examples/basic")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Nope")
}

func TestLoadSidecarPackage(t *testing.T) {
	rec := loadOne(t, &Loader{}, "builder-generator/examples/sidecar")

	assert.Equal(t, "Event", rec.Name)
	require.Len(t, rec.Fields, 3)
	assert.Empty(t, rec.Fields[1].Attrs, "schema defaults are merged later, not during extraction")
}

func TestParseAttrs(t *testing.T) {
	assert.Nil(t, parseAttrs(""))
	assert.Equal(t, map[string]string{"default": "10"}, parseAttrs("default=10"))
	assert.Equal(t, map[string]string{"default": ""}, parseAttrs("default"))

	// Everything after the first '=' belongs to the payload.
	assert.Equal(t, map[string]string{"default": `map[string]int{"a": 1}`},
		parseAttrs(`default=map[string]int{"a": 1}`))
	assert.Equal(t, map[string]string{"default": "a == b"}, parseAttrs("default=a == b"))
}

func TestSetAttrKeepsExisting(t *testing.T) {
	f := FieldDescriptor{Attrs: map[string]string{"default": "1"}}
	f.SetAttr("default", "2")

	assert.Equal(t, "1", f.Attrs["default"])

	var empty FieldDescriptor
	empty.SetAttr("default", "3")
	assert.Equal(t, "3", empty.Attrs["default"])
}

func TestHasAttr(t *testing.T) {
	f := FieldDescriptor{Attrs: map[string]string{"default": ""}}

	assert.True(t, f.HasAttr("default"))
	assert.False(t, f.HasAttr("other"))

	var bare FieldDescriptor
	assert.False(t, bare.HasAttr("default"))
}
