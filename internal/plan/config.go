package plan

import (
	"strings"

	"crud-generator/internal/classify"
	"crud-generator/internal/diagnostic"
)

// UnsupportedPolicy decides what happens to members the classifier rejects
// with UNSUPPORTED_COLLECTION.
type UnsupportedPolicy string

const (
	// PolicyReject fails the run.
	PolicyReject UnsupportedPolicy = "reject"
	// PolicyIgnore drops the member and records a warning.
	PolicyIgnore UnsupportedPolicy = "ignore"
)

// DefaultBasePagesRoute is the route prefix of generated pages.
const DefaultBasePagesRoute = "/AutogeneratedPages"

// DefaultMaxColumns is the number of list columns shown per entity.
const DefaultMaxColumns = 6

// Config holds the generation options shared by all artifacts of a run.
type Config struct {
	// KeepNullable keeps nullable scalars nullable in transfer models.
	KeepNullable bool
	// MaxColumns caps the columns of list views.
	MaxColumns int
	// BasePagesRoute prefixes the routes of form and list pages.
	BasePagesRoute string
	// IdentifiersAsText renders identifier scalars as text everywhere.
	IdentifiersAsText bool
	// UnsupportedMembers is the policy for collections of non-entities.
	UnsupportedMembers UnsupportedPolicy
	// Classify configures the member classifier.
	Classify classify.Config
}

// DefaultConfig returns the default generation options.
func DefaultConfig() Config {
	return Config{
		KeepNullable:       false,
		MaxColumns:         DefaultMaxColumns,
		BasePagesRoute:     DefaultBasePagesRoute,
		IdentifiersAsText:  false,
		UnsupportedMembers: PolicyReject,
		Classify:           classify.DefaultConfig(),
	}
}

// Validate rejects option values no artifact can be built with.
func (c Config) Validate() error {
	if c.MaxColumns < 1 {
		return diagnostic.NewError(diagnostic.CodeInvalidConfig, "", "",
			"max_columns must be at least 1, got %d", c.MaxColumns)
	}

	if !strings.HasPrefix(c.BasePagesRoute, "/") {
		return diagnostic.NewError(diagnostic.CodeInvalidConfig, "", "",
			"base_pages_route must start with '/', got %q", c.BasePagesRoute)
	}

	switch c.UnsupportedMembers {
	case PolicyReject, PolicyIgnore:
	default:
		return diagnostic.NewError(diagnostic.CodeInvalidConfig, "", "",
			"unsupported_members must be %q or %q, got %q", PolicyReject, PolicyIgnore, c.UnsupportedMembers)
	}

	return nil
}
