package schema

import (
	"slices"
)

// Schema is the complete description of one loaded data-access schema.
type Schema struct {
	// Version of the snapshot format.
	Version string `yaml:"version,omitempty"`
	// Root is the aggregate that owns the entity sets.
	Root RootAggregate `yaml:"root"`
	// Entities in schema-discovery order.
	Entities []*EntityDescriptor `yaml:"entities"`
}

// RootAggregate identifies the schema entry point.
type RootAggregate struct {
	Name    string      `yaml:"name"`
	PkgPath string      `yaml:"package,omitempty"`
	Sets    []EntitySet `yaml:"sets,omitempty"`
}

// QualifiedName returns "pkg/path.Name", or just the name without a package.
func (r RootAggregate) QualifiedName() string {
	if r.PkgPath == "" {
		return r.Name
	}

	return r.PkgPath + "." + r.Name
}

// EntitySet is one collection member of the root aggregate.
type EntitySet struct {
	// Name is the member name on the root (e.g., "Orders").
	Name string `yaml:"name"`
	// Entity is the element entity name (e.g., "Order").
	Entity string `yaml:"entity"`
}

// EntityDescriptor describes one entity type. Identity is by Name.
type EntityDescriptor struct {
	Name    string             `yaml:"name"`
	PkgPath string             `yaml:"package,omitempty"`
	Members []MemberDescriptor `yaml:"members"`
}

// QualifiedName returns "pkg/path.Name", or just the name without a package.
func (e *EntityDescriptor) QualifiedName() string {
	if e.PkgPath == "" {
		return e.Name
	}

	return e.PkgPath + "." + e.Name
}

// MemberDescriptor describes one member declared directly on an entity.
type MemberDescriptor struct {
	Name        string       `yaml:"name"`
	Type        *TypeRef     `yaml:"type"`
	Constraints []Constraint `yaml:"constraints,omitempty"`
}

// Entity returns the entity with the given name.
func (s *Schema) Entity(name string) (*EntityDescriptor, bool) {
	for _, e := range s.Entities {
		if e.Name == name {
			return e, true
		}
	}

	return nil, false
}

// EntityNames returns the set of known entity names.
func (s *Schema) EntityNames() NameSet {
	names := make(NameSet, len(s.Entities))
	for _, e := range s.Entities {
		names[e.Name] = struct{}{}
	}

	return names
}

// EntityPackages returns the set of package paths that declare entities.
func (s *Schema) EntityPackages() NameSet {
	pkgs := make(NameSet)
	for _, e := range s.Entities {
		if e.PkgPath != "" {
			pkgs[e.PkgPath] = struct{}{}
		}
	}

	return pkgs
}

// NameSet is a set of names.
type NameSet map[string]struct{}

// NewNameSet creates a NameSet holding names.
func NewNameSet(names ...string) NameSet {
	s := make(NameSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}

	return s
}

// Has reports whether name is in the set.
func (s NameSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Sorted returns the names in lexical order.
func (s NameSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for n := range s {
		out = append(out, n)
	}

	slices.Sort(out)

	return out
}
