package analyze

import (
	"strconv"
	"strings"

	"crud-generator/internal/schema"
)

// TypeRef converts a TypeInfo to a schema type reference. Named types are
// referenced, never expanded, so recursive types terminate.
func TypeRef(info *TypeInfo) *schema.TypeRef {
	if info == nil {
		return &schema.TypeRef{Kind: schema.TypeKindUnknown, Name: "<nil>"}
	}

	switch info.Kind {
	case TypeKindBasic:
		return schema.Basic(info.GoType.String())

	case TypeKindPointer:
		return schema.PointerTo(TypeRef(info.ElemType))

	case TypeKindSlice:
		return schema.SliceOf(TypeRef(info.ElemType))

	case TypeKindArray:
		return schema.ArrayOf(info.Len, TypeRef(info.ElemType))

	case TypeKindMap:
		return schema.MapOf(TypeRef(info.KeyType), TypeRef(info.ElemType))

	case TypeKindStruct:
		if !info.IsNamed() {
			break
		}

		ref := schema.Named(info.ID.PkgPath, info.ID.Name)
		ref.Args = typeArgRefs(info.TypeArgs)

		return ref

	case TypeKindAlias:
		ref := schema.Alias(info.ID.PkgPath, info.ID.Name, TypeRef(info.Underlying))
		ref.Args = typeArgRefs(info.TypeArgs)

		return ref

	case TypeKindExternal:
		return schema.External(info.ID.PkgPath, info.ID.Name, typeArgRefs(info.TypeArgs)...)
	}

	name := "<unknown>"
	if info.GoType != nil {
		name = info.GoType.String()
	}

	return &schema.TypeRef{Kind: schema.TypeKindUnknown, Name: name}
}

func typeArgRefs(args []*TypeInfo) []*schema.TypeRef {
	if len(args) == 0 {
		return nil
	}

	refs := make([]*schema.TypeRef, 0, len(args))
	for _, a := range args {
		refs = append(refs, TypeRef(a))
	}

	return refs
}

// ValidateTag is the struct tag read for member constraints.
const ValidateTag = "validate"

// parseConstraints reads `validate:"required,max=50"`. max applies to text
// members only; unknown tokens are ignored.
func parseConstraints(f *FieldInfo) []schema.Constraint {
	tag := f.GetTag(ValidateTag)
	if tag == "" || tag == "-" {
		return nil
	}

	var out []schema.Constraint

	for _, token := range strings.Split(tag, ",") {
		token = strings.TrimSpace(token)

		switch {
		case token == "required":
			out = append(out, schema.Required())

		case strings.HasPrefix(token, "max="):
			n, err := strconv.Atoi(strings.TrimPrefix(token, "max="))
			if err != nil || n <= 0 || !isText(f.Type) {
				continue
			}

			out = append(out, schema.MaxLength(n))
		}
	}

	return out
}

// isText reports whether t is string-like after pointers and aliases.
func isText(t *TypeInfo) bool {
	for t != nil {
		switch t.Kind {
		case TypeKindPointer:
			t = t.ElemType
		case TypeKindAlias:
			t = t.Underlying
		case TypeKindBasic:
			return t.GoType.String() == "string"
		case TypeKindExternal:
			return t.ID.String() == "database/sql.NullString"
		default:
			return false
		}
	}

	return false
}
