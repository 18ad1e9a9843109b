package mapping

import (
	"fmt"
	"slices"
)

// FormatVersion is the version written to new mapping files.
const FormatVersion = "1"

// MappingFile represents the root of a YAML mapping definition file.
type MappingFile struct {
	// Version of the mapping schema (for future compatibility).
	Version string `yaml:"version,omitempty"`

	// TypeMappings is a list of type pair mappings.
	TypeMappings []TypeMapping `yaml:"mappings"`
}

// TypeMapping defines how to map one source type to one target type.
type TypeMapping struct {
	// Source type identifier (full package path and type name).
	Source string `yaml:"source"`

	// Target type identifier (full package path and type name).
	Target string `yaml:"target"`

	// OneToOne maps source fields to target fields of the same shape.
	// Example: { "OrderID": "ID", "CustomerName": "Customer" }
	OneToOne map[string]string `yaml:"121,omitempty"`

	// Ignore lists target fields that should not be mapped.
	Ignore []string `yaml:"ignore,omitempty"`
}

// String returns "source->target".
func (tm *TypeMapping) String() string {
	return fmt.Sprintf("%s->%s", tm.Source, tm.Target)
}

// SourceFields returns the 121 source fields in lexical order.
func (tm *TypeMapping) SourceFields() []string {
	fields := make([]string, 0, len(tm.OneToOne))
	for f := range tm.OneToOne {
		fields = append(fields, f)
	}

	slices.Sort(fields)

	return fields
}

// Find returns the mapping from source to target.
func (mf *MappingFile) Find(source, target string) (*TypeMapping, bool) {
	for i := range mf.TypeMappings {
		tm := &mf.TypeMappings[i]
		if tm.Source == source && tm.Target == target {
			return tm, true
		}
	}

	return nil, false
}
