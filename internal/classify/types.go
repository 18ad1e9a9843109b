package classify

import (
	"fmt"
	"strings"

	"crud-generator/internal/common"
	"crud-generator/internal/schema"
)

// ScalarKind is the semantic kind of a scalar member.
type ScalarKind int

const (
	ScalarText ScalarKind = iota + 1
	ScalarBoolean
	ScalarInteger
	ScalarFloat
	ScalarDecimal
	ScalarDateTime
	ScalarByte
	ScalarIdentifier
)

var scalarKindNames = map[ScalarKind]string{
	ScalarText:       "text",
	ScalarBoolean:    "boolean",
	ScalarInteger:    "integer",
	ScalarFloat:      "float",
	ScalarDecimal:    "decimal",
	ScalarDateTime:   "datetime",
	ScalarByte:       "byte",
	ScalarIdentifier: "identifier",
}

// String returns the configuration name of the kind.
func (k ScalarKind) String() string {
	if s, ok := scalarKindNames[k]; ok {
		return s
	}

	return common.UnknownStr
}

// ParseScalarKind parses a configuration name such as "decimal".
func ParseScalarKind(s string) (ScalarKind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range scalarKindNames {
		if name == s {
			return k, nil
		}
	}

	return 0, fmt.Errorf("unknown scalar kind %q", s)
}

// Kind is the shape of a classified member.
type Kind int

const (
	KindScalar Kind = iota + 1
	KindReference
	KindCollection
)

// String returns a human-readable representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindReference:
		return "reference"
	case KindCollection:
		return "collection"
	default:
		return common.UnknownStr
	}
}

// Classification is the semantic kind of one member.
//
// Scalars carry Scalar, Nullable, Constraints and Primitive (the unwrapped
// declared type). References and collections carry Target, the related
// entity name.
type Classification struct {
	Kind        Kind
	Scalar      ScalarKind
	Nullable    bool
	Constraints []schema.Constraint
	Primitive   *schema.TypeRef
	Target      string
}

// IsRelation reports whether the member points to another entity.
func (c Classification) IsRelation() bool {
	return c.Kind == KindReference || c.Kind == KindCollection
}

func (c Classification) String() string {
	switch c.Kind {
	case KindScalar:
		s := "scalar(" + c.Scalar.String()
		if c.Nullable {
			s += ", nullable"
		}

		return s + ")"
	case KindReference:
		return "reference(" + c.Target + ")"
	case KindCollection:
		return "collection(" + c.Target + ")"
	default:
		return common.UnknownStr
	}
}

// ClassifiedMember pairs a member with its classification.
type ClassifiedMember struct {
	Member         schema.MemberDescriptor
	Classification Classification
}
