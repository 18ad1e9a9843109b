package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"crud-generator/internal/diagnostic"
)

// SnapshotVersion is the snapshot format written by Marshal.
const SnapshotVersion = "1"

// LoadFile loads and parses a YAML schema snapshot from the given path.
func LoadFile(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema snapshot %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a Schema and validates it.
func Parse(data []byte) (*Schema, error) {
	var s Schema

	err := yaml.Unmarshal(data, &s)
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema YAML: %w", err)
	}

	applyDefaults(&s)

	if err := Validate(&s); err != nil {
		return nil, err
	}

	resolveTypes(&s)

	return &s, nil
}

// applyDefaults fills in default values and drops duplicate entities.
func applyDefaults(s *Schema) {
	if s.Version == "" {
		s.Version = SnapshotVersion
	}

	seen := make(NameSet, len(s.Entities))
	entities := s.Entities[:0]

	for _, e := range s.Entities {
		if e == nil || seen.Has(e.Name) {
			continue
		}

		seen[e.Name] = struct{}{}
		entities = append(entities, e)
	}

	s.Entities = entities

	// Without explicit sets every entity is its own set, in declaration order.
	if len(s.Root.Sets) == 0 {
		for _, e := range s.Entities {
			s.Root.Sets = append(s.Root.Sets, EntitySet{Name: e.Name, Entity: e.Name})
		}
	}
}

// Validate checks the structural rules every schema must satisfy.
func Validate(s *Schema) error {
	if s.Root.Name == "" {
		return diagnostic.NewError(diagnostic.CodeSchemaNotFound, "", "",
			"schema has no root aggregate")
	}

	if len(s.Entities) == 0 {
		return diagnostic.NewError(diagnostic.CodeEmptySchema, s.Root.Name, "",
			"root aggregate exposes no entity sets")
	}

	names := s.EntityNames()

	for _, set := range s.Root.Sets {
		if !names.Has(set.Entity) {
			return diagnostic.NewError(diagnostic.CodeDanglingReference, s.Root.Name, set.Name,
				"entity set element %q is not a declared entity", set.Entity)
		}
	}

	for _, e := range s.Entities {
		if e.Name == "" {
			return diagnostic.NewError(diagnostic.CodeInvalidConfig, s.Root.Name, "",
				"entity without a name")
		}

		for _, m := range e.Members {
			if m.Name == "" || m.Type == nil {
				return diagnostic.NewError(diagnostic.CodeUnmappableMember, e.Name, m.Name,
					"member has no name or type")
			}
		}
	}

	return nil
}

// resolveTypes rebinds parsed type references to the snapshot's entities.
// Unqualified entity names get the entity's package. Qualified names inside an
// entity package become named references, so unknown ones dangle instead of
// passing as external types.
func resolveTypes(s *Schema) {
	pkgs := s.EntityPackages()

	byName := make(map[string]*EntityDescriptor, len(s.Entities))
	for _, e := range s.Entities {
		byName[e.Name] = e
	}

	var resolve func(t *TypeRef)

	resolve = func(t *TypeRef) {
		if t == nil {
			return
		}

		switch t.Kind {
		case TypeKindNamed:
			if e, ok := byName[t.Name]; ok && t.PkgPath == "" {
				t.PkgPath = e.PkgPath
			}
		case TypeKindExternal:
			if pkgs.Has(t.PkgPath) {
				t.Kind = TypeKindNamed
			}
		}

		resolve(t.Elem)
		resolve(t.Key)

		for _, a := range t.Args {
			resolve(a)
		}
	}

	for _, e := range s.Entities {
		for i := range e.Members {
			resolve(e.Members[i].Type)
		}
	}
}

// Marshal serializes a Schema to YAML.
func Marshal(s *Schema) ([]byte, error) {
	out := *s
	if out.Version == "" {
		out.Version = SnapshotVersion
	}

	return yaml.Marshal(&out)
}

// WriteFile writes a Schema snapshot to the given path.
func WriteFile(s *Schema, path string) error {
	data, err := Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write schema snapshot %s: %w", path, err)
	}

	return nil
}
