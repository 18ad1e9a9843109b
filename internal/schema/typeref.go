package schema

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"crud-generator/internal/common"
)

// TypeKind represents the shape of a declared type.
type TypeKind int

const (
	TypeKindUnknown  TypeKind = iota
	TypeKindBasic             // int, string, bool, etc.
	TypeKindNamed             // struct declared in a schema package
	TypeKindAlias             // named non-struct type (e.g., type Status string)
	TypeKindExternal          // named type outside the schema packages (e.g., time.Time)
	TypeKindPointer           // pointer to another type
	TypeKindSlice             // slice of another type
	TypeKindArray             // array of another type
	TypeKindMap               // map from Key to Elem
)

// String returns a human-readable representation of the TypeKind.
func (k TypeKind) String() string {
	switch k {
	case TypeKindBasic:
		return "basic"
	case TypeKindNamed:
		return "named"
	case TypeKindAlias:
		return "alias"
	case TypeKindExternal:
		return "external"
	case TypeKindPointer:
		return "pointer"
	case TypeKindSlice:
		return "slice"
	case TypeKindArray:
		return "array"
	case TypeKindMap:
		return "map"
	default:
		return common.UnknownStr
	}
}

// TypeRef is the declared type of a member.
type TypeRef struct {
	Kind    TypeKind
	PkgPath string     // for named, alias and external types
	Name    string     // type name, basic name, or raw text for unknown types
	Elem    *TypeRef   // pointer/slice/array element, map value, alias underlying
	Key     *TypeRef   // map key
	Len     int64      // array length
	Args    []*TypeRef // type arguments of a generic instance
}

// Basic returns a reference to a predeclared type.
func Basic(name string) *TypeRef {
	return &TypeRef{Kind: TypeKindBasic, Name: name}
}

// Named returns a reference to a struct declared in a schema package.
func Named(pkgPath, name string) *TypeRef {
	return &TypeRef{Kind: TypeKindNamed, PkgPath: pkgPath, Name: name}
}

// External returns a reference to a named type outside the schema packages.
func External(pkgPath, name string, args ...*TypeRef) *TypeRef {
	return &TypeRef{Kind: TypeKindExternal, PkgPath: pkgPath, Name: name, Args: args}
}

// Alias returns a reference to a named type over a non-struct underlying type.
func Alias(pkgPath, name string, underlying *TypeRef) *TypeRef {
	return &TypeRef{Kind: TypeKindAlias, PkgPath: pkgPath, Name: name, Elem: underlying}
}

// PointerTo returns a pointer to elem.
func PointerTo(elem *TypeRef) *TypeRef {
	return &TypeRef{Kind: TypeKindPointer, Elem: elem}
}

// SliceOf returns a slice of elem.
func SliceOf(elem *TypeRef) *TypeRef {
	return &TypeRef{Kind: TypeKindSlice, Elem: elem}
}

// ArrayOf returns an array of n elem.
func ArrayOf(n int64, elem *TypeRef) *TypeRef {
	return &TypeRef{Kind: TypeKindArray, Len: n, Elem: elem}
}

// MapOf returns a map from key to elem.
func MapOf(key, elem *TypeRef) *TypeRef {
	return &TypeRef{Kind: TypeKindMap, Key: key, Elem: elem}
}

// QualifiedName returns "pkg/path.Name" without type arguments.
func (t *TypeRef) QualifiedName() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// IsNamed reports whether the type is a declared (non-literal) type.
func (t *TypeRef) IsNamed() bool {
	switch t.Kind {
	case TypeKindNamed, TypeKindAlias, TypeKindExternal:
		return true
	default:
		return false
	}
}

// String returns the canonical type string.
// Examples: "int64", "*string", "[]OrderLine", "[16]byte",
// "map[string]int", "database/sql.Null[int64]".
func (t *TypeRef) String() string {
	return t.format(false)
}

// snapshotString is String with aliases replaced by their underlying type.
func (t *TypeRef) snapshotString() string {
	return t.format(true)
}

func (t *TypeRef) format(flattenAliases bool) string {
	if t == nil {
		return "<nil>"
	}

	switch t.Kind {
	case TypeKindPointer:
		return "*" + t.Elem.format(flattenAliases)
	case TypeKindSlice:
		return "[]" + t.Elem.format(flattenAliases)
	case TypeKindArray:
		return "[" + strconv.FormatInt(t.Len, 10) + "]" + t.Elem.format(flattenAliases)
	case TypeKindMap:
		return "map[" + t.Key.format(flattenAliases) + "]" + t.Elem.format(flattenAliases)
	case TypeKindAlias:
		if flattenAliases && t.Elem != nil {
			return t.Elem.format(flattenAliases)
		}
	}

	var sb strings.Builder

	sb.WriteString(t.QualifiedName())

	if len(t.Args) > 0 {
		sb.WriteString("[")

		for i, a := range t.Args {
			if i > 0 {
				sb.WriteString(",")
			}

			sb.WriteString(a.format(flattenAliases))
		}

		sb.WriteString("]")
	}

	return sb.String()
}

// predeclared lists the basic type names understood by ParseTypeRef.
var predeclared = map[string]bool{
	"bool": true, "string": true, "byte": true, "rune": true,
	"int": true, "int8": true, "int16": true, "int32": true, "int64": true,
	"uint": true, "uint8": true, "uint16": true, "uint32": true, "uint64": true, "uintptr": true,
	"float32": true, "float64": true, "complex64": true, "complex128": true,
}

// IsPredeclared reports whether name is a predeclared basic type.
func IsPredeclared(name string) bool {
	return predeclared[name]
}

// ParseTypeRef parses a canonical type string.
// Qualified names ("time.Time") parse as external, unqualified non-basic names
// ("Order") parse as named. Snapshot loading re-resolves both against the
// snapshot's entities.
func ParseTypeRef(s string) (*TypeRef, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.New("empty type")
	}

	switch {
	case strings.HasPrefix(s, "*"):
		elem, err := ParseTypeRef(s[1:])
		if err != nil {
			return nil, err
		}

		return PointerTo(elem), nil

	case strings.HasPrefix(s, "[]"):
		elem, err := ParseTypeRef(s[2:])
		if err != nil {
			return nil, err
		}

		return SliceOf(elem), nil

	case strings.HasPrefix(s, "["):
		end := strings.IndexByte(s, ']')
		if end < 0 {
			return nil, fmt.Errorf("unterminated array length in %q", s)
		}

		n, err := strconv.ParseInt(s[1:end], 10, 64)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid array length in %q", s)
		}

		elem, err := ParseTypeRef(s[end+1:])
		if err != nil {
			return nil, err
		}

		return ArrayOf(n, elem), nil

	case strings.HasPrefix(s, "map["):
		end := matchingBracket(s, len("map"))
		if end < 0 {
			return nil, fmt.Errorf("unbalanced brackets in %q", s)
		}

		key, err := ParseTypeRef(s[len("map["):end])
		if err != nil {
			return nil, err
		}

		elem, err := ParseTypeRef(s[end+1:])
		if err != nil {
			return nil, err
		}

		return MapOf(key, elem), nil

	case isOpaqueLiteral(s):
		return &TypeRef{Kind: TypeKindUnknown, Name: s}, nil
	}

	return parseNamed(s)
}

// parseNamed parses "Name", "pkg/path.Name" and "pkg/path.Name[Arg, ...]".
func parseNamed(s string) (*TypeRef, error) {
	base := s

	var args []*TypeRef

	if open := strings.IndexByte(s, '['); open >= 0 {
		if matchingBracket(s, open) != len(s)-1 {
			return nil, fmt.Errorf("unbalanced brackets in %q", s)
		}

		base = s[:open]

		for _, part := range splitTopLevel(s[open+1 : len(s)-1]) {
			arg, err := ParseTypeRef(part)
			if err != nil {
				return nil, err
			}

			args = append(args, arg)
		}
	}

	if base == "" {
		return nil, fmt.Errorf("missing type name in %q", s)
	}

	if predeclared[base] {
		if len(args) > 0 {
			return nil, fmt.Errorf("basic type %q cannot have type arguments", base)
		}

		return Basic(base), nil
	}

	dot := strings.LastIndexByte(base, '.')
	if dot < 0 {
		return &TypeRef{Kind: TypeKindNamed, Name: base, Args: args}, nil
	}

	if dot == 0 || dot == len(base)-1 {
		return nil, fmt.Errorf("malformed qualified name %q", base)
	}

	return External(base[:dot], base[dot+1:], args...), nil
}

// isOpaqueLiteral reports type literals that have no descriptor shape.
func isOpaqueLiteral(s string) bool {
	for _, prefix := range []string{"func", "chan ", "<-chan", "interface", "struct{", "struct {"} {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}

	return s == "any" || strings.ContainsAny(s, "(){}")
}

// matchingBracket returns the index of the ']' closing the '[' at open, or -1.
func matchingBracket(s string, open int) int {
	if open >= len(s) || s[open] != '[' {
		return -1
	}

	depth := 0

	for i := open; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}

// splitTopLevel splits a type argument list on commas outside brackets.
func splitTopLevel(s string) []string {
	var parts []string

	depth, start := 0, 0

	for i := range len(s) {
		switch s[i] {
		case '[':
			depth++
		case ']':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}

	return append(parts, strings.TrimSpace(s[start:]))
}

// MarshalYAML writes the type as its canonical string with aliases flattened.
func (t *TypeRef) MarshalYAML() (any, error) {
	return t.snapshotString(), nil
}

// UnmarshalYAML reads a canonical type string.
func (t *TypeRef) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected type string, got %v", node.Line, node.Kind)
	}

	parsed, err := ParseTypeRef(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}

	*t = *parsed

	return nil
}
