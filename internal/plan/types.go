package plan

import (
	"crud-generator/internal/classify"
	"crud-generator/internal/common"
	"crud-generator/internal/diagnostic"
	"crud-generator/internal/naming"
	"crud-generator/internal/schema"
)

// GenerationPlan is the final output of the build pipeline.
// It contains everything the dialect renderers need.
type GenerationPlan struct {
	// Schema is the loaded schema the plan was built from.
	Schema *schema.Schema
	// Entities holds one plan per entity, in discovery order.
	Entities []EntityPlan
	// Mapping is the global mapping registration.
	Mapping GlobalMappingArtifact
	// Diagnostics contains warnings collected while building.
	Diagnostics diagnostic.Diagnostics
}

// EntityPlan holds the artifacts synthesized for one entity.
type EntityPlan struct {
	Entity     *schema.EntityDescriptor
	Convention naming.Convention
	Members    []classify.ClassifiedMember
	Model      ModelArtifact
	Form       FormArtifact
	List       ListArtifact
	Endpoint   EndpointArtifact
}

// ModelArtifact describes the transfer model of an entity.
type ModelArtifact struct {
	Entity    string
	ModelName string
	Fields    []ModelField
}

// ModelField is one field of a transfer model.
type ModelField struct {
	// Name is the Go field name, equal to the member name.
	Name string
	// WireName is the json and form key.
	WireName string
	Kind     classify.Kind
	Scalar   classify.ScalarKind
	// Type is the declared primitive of a scalar, after unwrapping.
	Type *schema.TypeRef
	// Nullable is set only when the member is nullable and nullability is kept.
	Nullable    bool
	Constraints []schema.Constraint
	// RelatedModel is the model name of the target of a relation.
	RelatedModel string
}

// IsRelatedModel reports whether the field holds other transfer models.
func (f ModelField) IsRelatedModel() bool {
	return f.RelatedModel != ""
}

// WidgetKind is the input control of a form field.
type WidgetKind int

const (
	WidgetTextInput WidgetKind = iota + 1
	WidgetCheckbox
	WidgetNumberInput
	WidgetDateInput
)

// String returns a human-readable representation of the WidgetKind.
func (w WidgetKind) String() string {
	switch w {
	case WidgetTextInput:
		return "text-input"
	case WidgetCheckbox:
		return "checkbox"
	case WidgetNumberInput:
		return "number-input"
	case WidgetDateInput:
		return "date-input"
	default:
		return common.UnknownStr
	}
}

// FormArtifact describes the create form of an entity.
type FormArtifact struct {
	Route     string
	ModelName string
	Title     string
	// SubmitPath is the endpoint path of the Add operation.
	SubmitPath string
	// SuccessRoute is the list page shown after a successful submit.
	SuccessRoute string
	Fields       []FormField
}

// FormField is one input of a create form.
type FormField struct {
	// Label is the raw member name.
	Label       string
	Widget      WidgetKind
	Field       string
	BindingPath string
	Required    bool
	MaxLength   int
}

// ListArtifact describes the list view of an entity.
type ListArtifact struct {
	Route       string
	ModelName   string
	Title       string
	CreateRoute string
	// DataPath is the endpoint path of the List operation.
	DataPath string
	// CollectionName names the loaded items (e.g., "allOrders").
	CollectionName string
	ItemName       string
	Columns        []ListColumn
}

// ListColumn is one column of a list view.
type ListColumn struct {
	// Label is the humanized member name.
	Label       string
	Field       string
	BindingPath string
	Scalar      classify.ScalarKind
	Nullable    bool
}

// OperationKind is a CRUD operation of an endpoint.
type OperationKind int

const (
	OperationList OperationKind = iota + 1
	OperationAdd
)

// String returns a human-readable representation of the OperationKind.
func (k OperationKind) String() string {
	switch k {
	case OperationList:
		return "list"
	case OperationAdd:
		return "add"
	default:
		return common.UnknownStr
	}
}

// Operation is one route of an endpoint.
type Operation struct {
	Kind   OperationKind
	Name   string // ListOrders, AddOrder
	Method string // GET, POST
	Path   string // api/Order/ListOrders
}

// EndpointArtifact describes the service endpoint of an entity.
type EndpointArtifact struct {
	Entity         string
	EntityPkgPath  string
	ModelName      string
	ControllerName string
	BasePath       string
	StoreName      string
	Operations     []Operation
}

// Operation returns the operation of the given kind.
func (e EndpointArtifact) Operation(kind OperationKind) (Operation, bool) {
	for _, op := range e.Operations {
		if op.Kind == kind {
			return op, true
		}
	}

	return Operation{}, false
}

// MappingPair registers the mapping between an entity and its model.
type MappingPair struct {
	Entity        string
	EntityPkgPath string
	ModelName     string
}

// RawType returns the qualified entity type name.
func (p MappingPair) RawType() string {
	if p.EntityPkgPath == "" {
		return p.Entity
	}

	return p.EntityPkgPath + "." + p.Entity
}

// MappingDirection is one registered conversion.
type MappingDirection struct {
	Entity  string
	ToModel bool
	Source  string
	Target  string
}

// GlobalMappingArtifact aggregates the mapping pairs of all entities.
type GlobalMappingArtifact struct {
	Pairs []MappingPair
}

// Directions lists both conversions of every pair: entity to model, then
// model to entity. Model names are unqualified; the renderer places them.
func (g GlobalMappingArtifact) Directions() []MappingDirection {
	out := make([]MappingDirection, 0, 2*len(g.Pairs))

	for _, p := range g.Pairs {
		out = append(out,
			MappingDirection{Entity: p.Entity, ToModel: true, Source: p.RawType(), Target: p.ModelName},
			MappingDirection{Entity: p.Entity, ToModel: false, Source: p.ModelName, Target: p.RawType()},
		)
	}

	return out
}
