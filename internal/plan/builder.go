package plan

import (
	"errors"
	"net/http"
	"path"

	"crud-generator/internal/classify"
	"crud-generator/internal/diagnostic"
	"crud-generator/internal/naming"
	"crud-generator/internal/schema"
)

// Builder synthesizes generation plans.
type Builder struct {
	config     Config
	classifier *classify.Classifier
	resolver   *naming.Resolver
}

// NewBuilder creates a Builder for one run.
func NewBuilder(config Config) *Builder {
	return &Builder{
		config:     config,
		classifier: classify.New(config.Classify),
		resolver:   naming.NewResolver(),
	}
}

// Resolver returns the naming resolver shared by all artifacts of the run.
func (b *Builder) Resolver() *naming.Resolver {
	return b.resolver
}

// Build classifies and synthesizes every entity of s, in discovery order.
// The first error aborts the whole build.
func (b *Builder) Build(s *schema.Schema) (*GenerationPlan, error) {
	if err := b.config.Validate(); err != nil {
		return nil, err
	}

	plan := &GenerationPlan{Schema: s}
	known := s.EntityNames()

	for _, e := range s.Entities {
		classified, err := b.ClassifyEntity(e, known, &plan.Diagnostics)
		if err != nil {
			return nil, err
		}

		ep, err := b.Synthesize(e, classified, known)
		if err != nil {
			return nil, err
		}

		plan.Entities = append(plan.Entities, ep)
	}

	mapping, err := SynthesizeGlobalMapping(s.Entities, b.resolver)
	if err != nil {
		return nil, err
	}

	plan.Mapping = mapping

	return plan, nil
}

// ClassifyEntity classifies the members of e in declaration order. Under
// PolicyIgnore, collections of non-entities are dropped with a warning.
func (b *Builder) ClassifyEntity(
	e *schema.EntityDescriptor,
	known schema.NameSet,
	diags *diagnostic.Diagnostics,
) ([]classify.ClassifiedMember, error) {
	out := make([]classify.ClassifiedMember, 0, len(e.Members))

	for _, m := range e.Members {
		c, err := b.classifier.Classify(m, known)
		if err != nil {
			de := asEntityError(err, e.Name, m.Name)
			if b.config.UnsupportedMembers == PolicyIgnore && de.Code == diagnostic.CodeUnsupportedCollection {
				diags.Warnings = append(diags.Warnings, de.AsWarning())

				continue
			}

			return nil, de
		}

		out = append(out, classify.ClassifiedMember{Member: m, Classification: c})
	}

	return out, nil
}

// Synthesize builds the four per-entity artifacts of e.
func (b *Builder) Synthesize(
	e *schema.EntityDescriptor,
	classified []classify.ClassifiedMember,
	known schema.NameSet,
) (EntityPlan, error) {
	if len(classified) == 0 {
		return EntityPlan{}, diagnostic.NewError(diagnostic.CodeDegenerateEntity, e.Name, "",
			"entity has no classifiable members")
	}

	conv := b.resolver.Resolve(e.Name)
	members := make([]classify.ClassifiedMember, 0, len(classified))

	for _, cm := range classified {
		c := cm.Classification
		if c.IsRelation() && !known.Has(c.Target) {
			return EntityPlan{}, diagnostic.NewError(diagnostic.CodeDanglingReference, e.Name, cm.Member.Name,
				"%s is not an entity of the schema", c.Target)
		}

		if b.config.IdentifiersAsText && c.Kind == classify.KindScalar && c.Scalar == classify.ScalarIdentifier {
			c.Scalar = classify.ScalarText
			c.Primitive = schema.Basic("string")
		}

		members = append(members, classify.ClassifiedMember{Member: cm.Member, Classification: c})
	}

	endpoint := b.endpoint(e, conv)
	list, _ := endpoint.Operation(OperationList)
	add, _ := endpoint.Operation(OperationAdd)

	listRoute := b.pageRoute(conv, "List")
	formRoute := b.pageRoute(conv, "Add")

	return EntityPlan{
		Entity:     e,
		Convention: conv,
		Members:    members,
		Model:      b.model(conv, members),
		Form: FormArtifact{
			Route:        formRoute,
			ModelName:    conv.ModelName,
			Title:        conv.DisplayLabel,
			SubmitPath:   add.Path,
			SuccessRoute: listRoute,
			Fields:       b.formFields(members),
		},
		List: ListArtifact{
			Route:          listRoute,
			ModelName:      conv.ModelName,
			Title:          conv.PluralDisplayLabel,
			CreateRoute:    formRoute,
			DataPath:       list.Path,
			CollectionName: "all" + conv.PluralName,
			ItemName:       conv.VarName,
			Columns:        b.listColumns(members),
		},
		Endpoint: endpoint,
	}, nil
}

func (b *Builder) model(conv naming.Convention, members []classify.ClassifiedMember) ModelArtifact {
	fields := make([]ModelField, 0, len(members))

	for _, cm := range members {
		c := cm.Classification
		f := ModelField{
			Name:     cm.Member.Name,
			WireName: naming.WireName(cm.Member.Name),
			Kind:     c.Kind,
		}

		switch c.Kind {
		case classify.KindScalar:
			f.Scalar = c.Scalar
			f.Type = c.Primitive
			f.Nullable = c.Nullable && b.config.KeepNullable
			f.Constraints = c.Constraints
		case classify.KindReference, classify.KindCollection:
			f.RelatedModel = b.resolver.Resolve(c.Target).ModelName
		}

		fields = append(fields, f)
	}

	return ModelArtifact{Entity: conv.EntityName, ModelName: conv.ModelName, Fields: fields}
}

func (b *Builder) formFields(members []classify.ClassifiedMember) []FormField {
	var fields []FormField

	for _, cm := range members {
		c := cm.Classification
		if c.Kind != classify.KindScalar {
			continue
		}

		w, ok := widgetFor(c.Scalar)
		if !ok {
			continue
		}

		f := FormField{
			Label:       cm.Member.Name,
			Widget:      w,
			Field:       cm.Member.Name,
			BindingPath: naming.WireName(cm.Member.Name),
		}

		if _, ok := schema.FindConstraint(c.Constraints, schema.ConstraintRequired); ok {
			f.Required = true
		}

		if ml, ok := schema.FindConstraint(c.Constraints, schema.ConstraintMaxLength); ok && c.Scalar == classify.ScalarText {
			f.MaxLength = ml.Value
		}

		fields = append(fields, f)
	}

	return fields
}

func (b *Builder) listColumns(members []classify.ClassifiedMember) []ListColumn {
	var cols []ListColumn

	for _, cm := range members {
		if len(cols) == b.config.MaxColumns {
			break
		}

		c := cm.Classification
		if c.Kind != classify.KindScalar {
			continue
		}

		if _, ok := widgetFor(c.Scalar); !ok {
			continue
		}

		cols = append(cols, ListColumn{
			Label:       naming.Humanize(cm.Member.Name),
			Field:       cm.Member.Name,
			BindingPath: naming.WireName(cm.Member.Name),
			Scalar:      c.Scalar,
			Nullable:    c.Nullable && b.config.KeepNullable,
		})
	}

	return cols
}

func (b *Builder) endpoint(e *schema.EntityDescriptor, conv naming.Convention) EndpointArtifact {
	base := "api/" + conv.RouteSegment
	listName := "List" + conv.PluralName
	addName := "Add" + conv.EntityName

	return EndpointArtifact{
		Entity:         e.Name,
		EntityPkgPath:  e.PkgPath,
		ModelName:      conv.ModelName,
		ControllerName: conv.EntityName + "Controller",
		BasePath:       base,
		StoreName:      conv.StoreName,
		Operations: []Operation{
			{Kind: OperationList, Name: listName, Method: http.MethodGet, Path: base + "/" + listName},
			{Kind: OperationAdd, Name: addName, Method: http.MethodPost, Path: base + "/" + addName},
		},
	}
}

func (b *Builder) pageRoute(conv naming.Convention, page string) string {
	return path.Join(b.config.BasePagesRoute, conv.RouteSegment, page)
}

// widgetFor returns the form control of a scalar kind. Bytes and
// identifiers have none and are left out of forms and lists.
func widgetFor(kind classify.ScalarKind) (WidgetKind, bool) {
	switch kind {
	case classify.ScalarText:
		return WidgetTextInput, true
	case classify.ScalarBoolean:
		return WidgetCheckbox, true
	case classify.ScalarInteger, classify.ScalarFloat, classify.ScalarDecimal:
		return WidgetNumberInput, true
	case classify.ScalarDateTime:
		return WidgetDateInput, true
	default:
		return 0, false
	}
}

// asEntityError attaches entity and member names to classifier errors.
func asEntityError(err error, entity, member string) *diagnostic.Error {
	var de *diagnostic.Error
	if errors.As(err, &de) {
		return de.WithEntity(entity, member)
	}

	return diagnostic.NewError(diagnostic.CodeUnmappableMember, entity, member, "%v", err)
}
