// Package schema holds the read-only descriptors of a data-access schema.
//
// A Schema is produced once per run, either by the go/packages analyzer or
// from a YAML snapshot, and is never mutated afterwards.
//
// Key types:
//   - Schema: root aggregate plus entities in discovery order
//   - EntityDescriptor: entity name, package and declared members
//   - MemberDescriptor: member name, declared type and constraints
//   - TypeRef: declared type handle with a canonical string form
//   - Constraint: Required or MaxLength(n)
package schema
