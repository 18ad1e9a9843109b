// Package dbset holds the marker types a data-access package uses to describe
// its schema to crud-generator.
//
// A root aggregate embeds Context and exposes one exported collection field per
// entity set:
//
//	type ShopContext struct {
//		dbset.Context
//
//		Orders    dbset.Set[Order]
//		Customers []Customer
//	}
package dbset

// Context marks the embedding struct as the root aggregate of a schema.
type Context struct{}

// Set is a collection of entities owned by a root aggregate.
type Set[T any] []T

// Qualified names of the marker types as the generator sees them.
const (
	ContextTypeName = "crud-generator/dbset.Context"
	SetTypeName     = "crud-generator/dbset.Set"
)
