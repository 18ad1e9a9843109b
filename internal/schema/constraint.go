package schema

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"crud-generator/internal/common"
)

// ConstraintKind identifies a member constraint.
type ConstraintKind int

const (
	ConstraintRequired ConstraintKind = iota + 1
	ConstraintMaxLength
)

const (
	requiredKey  = "required"
	maxLengthKey = "max_length"
)

// String returns the snapshot key of the kind.
func (k ConstraintKind) String() string {
	switch k {
	case ConstraintRequired:
		return requiredKey
	case ConstraintMaxLength:
		return maxLengthKey
	default:
		return common.UnknownStr
	}
}

// Constraint is a declarative annotation on a member.
// Value is the length limit for ConstraintMaxLength and unused otherwise.
//
// YAML forms:
//
//	constraints:
//	  - required
//	  - max_length: 80
type Constraint struct {
	Kind  ConstraintKind
	Value int
}

// Required returns the required constraint.
func Required() Constraint {
	return Constraint{Kind: ConstraintRequired}
}

// MaxLength returns a maximum length constraint.
func MaxLength(n int) Constraint {
	return Constraint{Kind: ConstraintMaxLength, Value: n}
}

func (c Constraint) String() string {
	if c.Kind == ConstraintMaxLength {
		return maxLengthKey + "=" + strconv.Itoa(c.Value)
	}

	return c.Kind.String()
}

// MarshalYAML implements yaml.Marshaler.
func (c Constraint) MarshalYAML() (any, error) {
	switch c.Kind {
	case ConstraintRequired:
		return requiredKey, nil
	case ConstraintMaxLength:
		return map[string]int{maxLengthKey: c.Value}, nil
	default:
		return nil, fmt.Errorf("unknown constraint kind %d", c.Kind)
	}
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Constraint) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Value != requiredKey {
			return fmt.Errorf("line %d: unknown constraint %q", node.Line, node.Value)
		}

		*c = Required()

		return nil

	case yaml.MappingNode:
		var m map[string]int
		if err := node.Decode(&m); err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}

		n, ok := m[maxLengthKey]
		if !ok || len(m) != 1 {
			return fmt.Errorf("line %d: expected a single %s entry", node.Line, maxLengthKey)
		}

		if n <= 0 {
			return fmt.Errorf("line %d: %s must be positive, got %d", node.Line, maxLengthKey, n)
		}

		*c = MaxLength(n)

		return nil

	default:
		return fmt.Errorf("line %d: unexpected constraint node", node.Line)
	}
}

// FindConstraint returns the first constraint of the given kind.
func FindConstraint(cs []Constraint, kind ConstraintKind) (Constraint, bool) {
	for _, c := range cs {
		if c.Kind == kind {
			return c, true
		}
	}

	return Constraint{}, false
}
