package mapping

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const orderMapping = `
mappings:
  - source: example.com/shop.Order
    target: example.com/app/models.OrderModel
    121:
      Number: Number
      ID: ID
  - source: example.com/app/models.OrderModel
    target: example.com/shop.Order
    121:
      ID: ID
      Number: Number
    ignore:
      - Attachments
`

func TestParse(t *testing.T) {
	mf, err := Parse([]byte(orderMapping))
	require.NoError(t, err)

	assert.Equal(t, FormatVersion, mf.Version)
	require.Len(t, mf.TypeMappings, 2)

	tm := mf.TypeMappings[0]
	assert.Equal(t, "example.com/shop.Order->example.com/app/models.OrderModel", tm.String())
	assert.Equal(t, []string{"ID", "Number"}, tm.SourceFields())

	back, ok := mf.Find("example.com/app/models.OrderModel", "example.com/shop.Order")
	require.True(t, ok)
	assert.Equal(t, []string{"Attachments"}, back.Ignore)

	_, ok = mf.Find("example.com/shop.Order", "example.com/shop.Order")
	assert.False(t, ok)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("mappings: {"))
	assert.ErrorContains(t, err, "failed to parse mapping YAML")
}

func TestLoadFile_RoundTrip(t *testing.T) {
	mf, err := Parse([]byte(orderMapping))
	require.NoError(t, err)

	data, err := Marshal(mf)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "global_mapping.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, mf, loaded)

	again, err := Marshal(loaded)
	require.NoError(t, err)
	assert.Equal(t, string(data), string(again))
	assert.Contains(t, string(data), "\"121\":")
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "failed to read mapping file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name         string
		mf           *MappingFile
		wantErrors   []string
		wantWarnings []string
	}{
		{
			name: "symmetric pair",
			mf: &MappingFile{TypeMappings: []TypeMapping{
				{Source: "a.X", Target: "b.XModel", OneToOne: map[string]string{"ID": "ID"}},
				{Source: "b.XModel", Target: "a.X", OneToOne: map[string]string{"ID": "ID"}},
			}},
		},
		{
			name:       "nil file",
			wantErrors: []string{CodeMissingType},
		},
		{
			name: "missing target",
			mf: &MappingFile{TypeMappings: []TypeMapping{
				{Source: "a.X"},
			}},
			wantErrors: []string{CodeMissingType},
		},
		{
			name: "duplicate",
			mf: &MappingFile{TypeMappings: []TypeMapping{
				{Source: "a.X", Target: "b.XModel"},
				{Source: "a.X", Target: "b.XModel"},
				{Source: "b.XModel", Target: "a.X"},
			}},
			wantErrors: []string{CodeDuplicateMapping},
		},
		{
			name: "empty paths",
			mf: &MappingFile{TypeMappings: []TypeMapping{
				{Source: "a.X", Target: "b.XModel", OneToOne: map[string]string{"ID": ""}},
				{Source: "b.XModel", Target: "a.X", Ignore: []string{""}},
			}},
			wantErrors: []string{CodeEmptyFieldPath, CodeEmptyFieldPath},
		},
		{
			name: "one direction only",
			mf: &MappingFile{TypeMappings: []TypeMapping{
				{Source: "a.X", Target: "b.XModel"},
			}},
			wantWarnings: []string{CodeMissingReverse},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Validate(tt.mf)

			var errs, warns []string
			for _, d := range res.Errors {
				errs = append(errs, d.Code)
			}

			for _, d := range res.Warnings {
				warns = append(warns, d.Code)
			}

			assert.Equal(t, tt.wantErrors, errs)
			assert.Equal(t, tt.wantWarnings, warns)
		})
	}
}
