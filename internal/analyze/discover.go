package analyze

import (
	"fmt"
	"strings"

	"crud-generator/dbset"
	"crud-generator/internal/diagnostic"
	"crud-generator/internal/match"
	"crud-generator/internal/schema"
)

// DefaultRootMarker is the type whose embedding marks the root aggregate.
const DefaultRootMarker = dbset.ContextTypeName

// DiscoverOptions controls root aggregate discovery.
type DiscoverOptions struct {
	// Root selects the root aggregate by name or qualified name.
	Root string
	// RootMarker is the qualified or bare name of the marker type.
	RootMarker string
	// CollectionTypes lists qualified names of generic entity-set wrappers.
	CollectionTypes []string
}

// DiscoverSchema finds the root aggregate in graph and describes the
// entities of its entity sets, in field order.
func DiscoverSchema(graph *TypeGraph, opts DiscoverOptions) (*schema.Schema, error) {
	if opts.RootMarker == "" {
		opts.RootMarker = DefaultRootMarker
	}

	if opts.CollectionTypes == nil {
		opts.CollectionTypes = []string{dbset.SetTypeName}
	}

	root, err := findRoot(graph, opts)
	if err != nil {
		return nil, err
	}

	s := &schema.Schema{
		Version: schema.SnapshotVersion,
		Root:    schema.RootAggregate{Name: root.ID.Name, PkgPath: root.ID.PkgPath},
	}

	wrappers := schema.NewNameSet(opts.CollectionTypes...)
	seen := make(schema.NameSet)

	for i := range root.Fields {
		f := &root.Fields[i]
		if f.Embedded {
			continue
		}

		elem, ok := setElement(f.Type, wrappers)
		if !ok {
			continue
		}

		if elem.Kind != TypeKindStruct || !elem.IsNamed() {
			return nil, diagnostic.NewError(diagnostic.CodeDanglingReference, root.ID.Name, f.Name,
				"entity set element %s is not a struct declared in the loaded packages", TypeRef(elem))
		}

		s.Root.Sets = append(s.Root.Sets, schema.EntitySet{Name: f.Name, Entity: elem.ID.Name})

		if seen.Has(elem.ID.Name) {
			continue
		}

		seen[elem.ID.Name] = struct{}{}
		s.Entities = append(s.Entities, describeEntity(elem))
	}

	if len(s.Entities) == 0 {
		return nil, diagnostic.NewError(diagnostic.CodeEmptySchema, root.ID.Name, "",
			"root aggregate has no entity sets")
	}

	graph.Diagnostics.AddInfo(diagnostic.CodeRootSelected,
		fmt.Sprintf("using root aggregate %s with %d entity sets", root.ID, len(s.Root.Sets)), root.ID.Name, "")

	return s, nil
}

// findRoot returns the single root aggregate candidate.
func findRoot(graph *TypeGraph, opts DiscoverOptions) (*TypeInfo, error) {
	var candidates []*TypeInfo

	for _, pkgPath := range graph.SortedPackages() {
		for _, id := range graph.Packages[pkgPath].Types {
			info := graph.GetType(id)
			if info.Kind != TypeKindStruct {
				continue
			}

			if opts.Root != "" {
				if id.Name == opts.Root || id.String() == opts.Root {
					candidates = append(candidates, info)
				}

				continue
			}

			if embedsMarker(info, opts.RootMarker) {
				candidates = append(candidates, info)
			}
		}
	}

	switch len(candidates) {
	case 1:
		return candidates[0], nil
	case 0:
		err := diagnostic.NewError(diagnostic.CodeSchemaNotFound, "", "",
			"no root aggregate embedding %s found in %d loaded packages", opts.RootMarker, len(graph.Packages))
		if opts.Root != "" {
			err = diagnostic.NewError(diagnostic.CodeSchemaNotFound, "", "",
				"root aggregate %s not found in %d loaded packages", opts.Root, len(graph.Packages))
			err.WithSuggestions(match.Suggest(opts.Root, structNames(graph), 3)...)
		}

		return nil, err
	default:
		names := make([]string, 0, len(candidates))
		for _, c := range candidates {
			names = append(names, c.ID.String())
		}

		return nil, diagnostic.NewError(diagnostic.CodeAmbiguousRoot, "", "",
			"found %d root aggregate candidates: %s", len(candidates), strings.Join(names, ", ")).
			WithSuggestions("set root to one of the candidates")
	}
}

func embedsMarker(info *TypeInfo, marker string) bool {
	qualified := strings.ContainsAny(marker, "./")

	for _, f := range info.Fields {
		if !f.Embedded {
			continue
		}

		t := f.Type
		if t.Kind == TypeKindPointer {
			t = t.ElemType
		}

		if qualified && t.ID.String() == marker || !qualified && t.ID.Name == marker {
			return true
		}
	}

	return false
}

// setElement returns the entity type held by an entity-set field:
// []T, []*T, alias over those, or a generic wrapper W[T].
func setElement(t *TypeInfo, wrappers schema.NameSet) (*TypeInfo, bool) {
	if t.Kind == TypeKindPointer {
		t = t.ElemType
	}

	switch t.Kind {
	case TypeKindSlice, TypeKindArray:
		elem := t.ElemType
		if elem.Kind == TypeKindPointer {
			elem = elem.ElemType
		}

		return elem, true

	case TypeKindExternal, TypeKindStruct, TypeKindAlias:
		if len(t.TypeArgs) == 1 && wrappers.Has(t.ID.String()) {
			elem := t.TypeArgs[0]
			if elem.Kind == TypeKindPointer {
				elem = elem.ElemType
			}

			return elem, true
		}

		if t.Kind == TypeKindAlias && t.Underlying != nil {
			return setElement(t.Underlying, wrappers)
		}
	}

	return nil, false
}

// describeEntity builds the descriptor of an entity struct. Embedded fields
// are inherited members and are left out.
func describeEntity(info *TypeInfo) *schema.EntityDescriptor {
	e := &schema.EntityDescriptor{Name: info.ID.Name, PkgPath: info.ID.PkgPath}

	for i := range info.Fields {
		f := &info.Fields[i]
		if f.Embedded {
			continue
		}

		e.Members = append(e.Members, schema.MemberDescriptor{
			Name:        f.Name,
			Type:        TypeRef(f.Type),
			Constraints: parseConstraints(f),
		})
	}

	return e
}

func structNames(graph *TypeGraph) []string {
	var names []string

	for _, pkgPath := range graph.SortedPackages() {
		for _, id := range graph.Packages[pkgPath].Types {
			if graph.Types[id].Kind == TypeKindStruct {
				names = append(names, id.Name)
			}
		}
	}

	return names
}
