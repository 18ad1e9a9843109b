package diagnostic

// Error and warning codes.
const (
	// CodeSchemaNotFound means no root aggregate was found at the search location.
	CodeSchemaNotFound = "SCHEMA_NOT_FOUND"
	// CodeAmbiguousRoot means more than one root aggregate candidate was found.
	CodeAmbiguousRoot = "AMBIGUOUS_ROOT"
	// CodeEmptySchema means the root aggregate exposes no entity sets.
	CodeEmptySchema = "EMPTY_SCHEMA"
	// CodeDanglingReference means a relation targets a type that is not an entity.
	CodeDanglingReference = "DANGLING_REFERENCE"
	// CodeDegenerateEntity means an entity has no classifiable members.
	CodeDegenerateEntity = "DEGENERATE_ENTITY"
	// CodeUnmappableMember means a member's shape is outside the classification rules.
	CodeUnmappableMember = "UNMAPPABLE_MEMBER"
	// CodeUnsupportedCollection means a collection's element is not an entity.
	CodeUnsupportedCollection = "UNSUPPORTED_COLLECTION"
	// CodeModuleLoad means a package failed to load and was skipped.
	CodeModuleLoad = "MODULE_LOAD"
	// CodeInvalidConfig means a configuration value was rejected.
	CodeInvalidConfig = "INVALID_CONFIG"
	// CodeRootSelected reports the root aggregate discovery settled on.
	CodeRootSelected = "ROOT_SELECTED"
	// CodeStaleArtifact means a file on disk differs from what would be generated.
	CodeStaleArtifact = "STALE_ARTIFACT"
)
