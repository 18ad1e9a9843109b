package classify

import (
	"maps"

	"crud-generator/dbset"
	"crud-generator/internal/diagnostic"
	"crud-generator/internal/match"
	"crud-generator/internal/schema"
)

// SetType is the generic entity-set wrapper shipped with the generator.
const SetType = dbset.SetTypeName

// maxSuggestions limits "did you mean" candidates per dangling reference.
const maxSuggestions = 3

// Config controls classification.
type Config struct {
	// ScalarTypes maps qualified type names to scalar kinds, on top of the
	// built-in table. Entries here win over built-in ones.
	ScalarTypes map[string]ScalarKind
	// CollectionTypes lists qualified names of generic single-argument
	// collection wrappers (e.g., "crud-generator/dbset.Set").
	CollectionTypes []string
}

// DefaultConfig returns a Config with only the built-in tables.
func DefaultConfig() Config {
	return Config{
		CollectionTypes: []string{SetType},
	}
}

// Classifier maps members to classifications. It holds no per-call state and
// is safe for concurrent use.
type Classifier struct {
	scalars     map[string]ScalarKind
	collections schema.NameSet
}

// New creates a classifier from cfg.
func New(cfg Config) *Classifier {
	scalars := maps.Clone(externalScalars)
	maps.Copy(scalars, cfg.ScalarTypes)

	return &Classifier{
		scalars:     scalars,
		collections: schema.NewNameSet(cfg.CollectionTypes...),
	}
}

// Classify determines the semantic kind of member given the known entity
// names. The result depends only on its inputs.
func (c *Classifier) Classify(member schema.MemberDescriptor, known schema.NameSet) (Classification, error) {
	t := member.Type
	if t == nil {
		return Classification{}, diagnostic.NewError(diagnostic.CodeUnmappableMember, "", member.Name,
			"member has no declared type")
	}

	if elem, ok := c.collectionElem(t); ok {
		return c.classifyCollection(member, elem, known)
	}

	inner, nullable := c.unwrapOptional(t)

	if inner.Kind == schema.TypeKindNamed && known.Has(inner.Name) {
		return Classification{Kind: KindReference, Target: inner.Name, Nullable: nullable}, nil
	}

	if kind, ok := c.scalarKind(inner); ok {
		return Classification{
			Kind:        KindScalar,
			Scalar:      kind,
			Nullable:    nullable,
			Constraints: member.Constraints,
			Primitive:   inner,
		}, nil
	}

	if inner.Kind == schema.TypeKindNamed {
		return Classification{}, dangling(member, inner, known)
	}

	return Classification{}, diagnostic.NewError(diagnostic.CodeUnmappableMember, "", member.Name,
		"type %s has no classification", t)
}

func (c *Classifier) classifyCollection(
	member schema.MemberDescriptor,
	elem *schema.TypeRef,
	known schema.NameSet,
) (Classification, error) {
	target := deref(elem)

	switch {
	case target.Kind == schema.TypeKindNamed && known.Has(target.Name):
		return Classification{Kind: KindCollection, Target: target.Name}, nil
	case target.Kind == schema.TypeKindNamed:
		return Classification{}, dangling(member, target, known)
	default:
		return Classification{}, diagnostic.NewError(diagnostic.CodeUnsupportedCollection, "", member.Name,
			"collection of %s is not a collection of entities", elem)
	}
}

// collectionElem returns the element type of slice, array and wrapper shapes,
// looking through pointers and aliases.
func (c *Classifier) collectionElem(t *schema.TypeRef) (*schema.TypeRef, bool) {
	switch t.Kind {
	case schema.TypeKindSlice, schema.TypeKindArray:
		return t.Elem, true
	case schema.TypeKindPointer, schema.TypeKindAlias:
		if t.Elem == nil {
			return nil, false
		}

		return c.collectionElem(t.Elem)
	case schema.TypeKindExternal, schema.TypeKindNamed:
		if len(t.Args) == 1 && c.collections.Has(t.QualifiedName()) {
			return t.Args[0], true
		}
	}

	return nil, false
}

// unwrapOptional strips pointers and nullable wrappers.
func (c *Classifier) unwrapOptional(t *schema.TypeRef) (*schema.TypeRef, bool) {
	nullable := false

	for {
		switch {
		case t.Kind == schema.TypeKindPointer && t.Elem != nil:
			t = t.Elem
		case t.Kind == schema.TypeKindExternal && t.QualifiedName() == genericNull && len(t.Args) == 1:
			t = t.Args[0]
		case t.Kind == schema.TypeKindExternal && nullWrappers[t.QualifiedName()] != nil:
			t = nullWrappers[t.QualifiedName()]
		default:
			return t, nullable
		}

		nullable = true
	}
}

func (c *Classifier) scalarKind(t *schema.TypeRef) (ScalarKind, bool) {
	if t.IsNamed() {
		if kind, ok := c.scalars[t.QualifiedName()]; ok {
			return kind, true
		}
	}

	switch t.Kind {
	case schema.TypeKindBasic:
		kind, ok := basicScalars[t.Name]
		return kind, ok
	case schema.TypeKindAlias:
		if t.Elem != nil && t.Elem.Kind == schema.TypeKindBasic {
			return c.scalarKind(t.Elem)
		}
	}

	return 0, false
}

func dangling(member schema.MemberDescriptor, target *schema.TypeRef, known schema.NameSet) error {
	return diagnostic.NewError(diagnostic.CodeDanglingReference, "", member.Name,
		"%s is not an entity of the schema", target.Name).
		WithSuggestions(match.Suggest(target.Name, known.Sorted(), maxSuggestions)...)
}

func deref(t *schema.TypeRef) *schema.TypeRef {
	for t.Kind == schema.TypeKindPointer && t.Elem != nil {
		t = t.Elem
	}

	return t
}
