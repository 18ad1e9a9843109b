package plan

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crud-generator/internal/classify"
	"crud-generator/internal/diagnostic"
	"crud-generator/internal/schema"
)

const shopPkg = "example.com/shop"

func uuidType() *schema.TypeRef {
	return schema.External("github.com/google/uuid", "UUID")
}

func decimalType() *schema.TypeRef {
	return schema.External("github.com/shopspring/decimal", "Decimal")
}

// shopSchema is Order with an identifier, a decimal, a nullable flag and a
// collection of lines, plus OrderLine and Customer.
func shopSchema() *schema.Schema {
	return &schema.Schema{
		Root: schema.RootAggregate{Name: "ShopContext", PkgPath: shopPkg},
		Entities: []*schema.EntityDescriptor{
			{
				Name:    "Order",
				PkgPath: shopPkg,
				Members: []schema.MemberDescriptor{
					{Name: "Id", Type: uuidType()},
					{Name: "Total", Type: decimalType()},
					{Name: "IsPaid", Type: schema.PointerTo(schema.Basic("bool"))},
					{Name: "Lines", Type: schema.SliceOf(schema.Named(shopPkg, "OrderLine"))},
				},
			},
			{
				Name:    "OrderLine",
				PkgPath: shopPkg,
				Members: []schema.MemberDescriptor{
					{Name: "Sku", Type: schema.Basic("string"), Constraints: []schema.Constraint{schema.Required(), schema.MaxLength(12)}},
					{Name: "Quantity", Type: schema.Basic("int")},
					{Name: "Order", Type: schema.PointerTo(schema.Named(shopPkg, "Order"))},
				},
			},
			{
				Name:    "Customer",
				PkgPath: shopPkg,
				Members: []schema.MemberDescriptor{
					{Name: "Name", Type: schema.Basic("string")},
					{Name: "Photo", Type: schema.SliceOf(schema.Basic("byte"))},
				},
			},
		},
	}
}

func withoutPhoto(s *schema.Schema) *schema.Schema {
	s.Entities[2].Members = s.Entities[2].Members[:1]
	return s
}

func TestBuildOrderArtifacts(t *testing.T) {
	p, err := NewBuilder(DefaultConfig()).Build(withoutPhoto(shopSchema()))
	require.NoError(t, err)
	require.Len(t, p.Entities, 3)

	order := p.Entities[0]
	assert.Equal(t, "Order", order.Convention.EntityName)

	// Model: every member, the collection as related models.
	require.Len(t, order.Model.Fields, 4)
	assert.Equal(t, "OrderModel", order.Model.ModelName)

	lines := order.Model.Fields[3]
	assert.Equal(t, classify.KindCollection, lines.Kind)
	assert.Equal(t, "OrderLineModel", lines.RelatedModel)
	assert.True(t, lines.IsRelatedModel())

	isPaid := order.Model.Fields[2]
	assert.Equal(t, classify.ScalarBoolean, isPaid.Scalar)
	assert.False(t, isPaid.Nullable, "nullability is dropped unless kept")
	assert.Equal(t, "isPaid", isPaid.WireName)

	// Form: identifier skipped, relations skipped.
	require.Len(t, order.Form.Fields, 2)
	assert.Equal(t, "Total", order.Form.Fields[0].Label)
	assert.Equal(t, WidgetNumberInput, order.Form.Fields[0].Widget)
	assert.Equal(t, "IsPaid", order.Form.Fields[1].Label)
	assert.Equal(t, WidgetCheckbox, order.Form.Fields[1].Widget)
	assert.Equal(t, "/AutogeneratedPages/Order/Add", order.Form.Route)
	assert.Equal(t, "api/Order/AddOrder", order.Form.SubmitPath)
	assert.Equal(t, "/AutogeneratedPages/Order/List", order.Form.SuccessRoute)

	// List: same filter.
	require.Len(t, order.List.Columns, 2)
	assert.Equal(t, "Is Paid", order.List.Columns[1].Label)
	assert.Equal(t, "allOrders", order.List.CollectionName)
	assert.Equal(t, "api/Order/ListOrders", order.List.DataPath)
	assert.Equal(t, order.Form.Route, order.List.CreateRoute)
	assert.Equal(t, "Orders", order.List.Title)

	// Endpoint: exactly list and add.
	ep := order.Endpoint
	require.Len(t, ep.Operations, 2)
	assert.Equal(t, Operation{Kind: OperationList, Name: "ListOrders", Method: http.MethodGet, Path: "api/Order/ListOrders"}, ep.Operations[0])
	assert.Equal(t, Operation{Kind: OperationAdd, Name: "AddOrder", Method: http.MethodPost, Path: "api/Order/AddOrder"}, ep.Operations[1])
	assert.Equal(t, "OrderController", ep.ControllerName)
	assert.Equal(t, "Orders", ep.StoreName)
	assert.Equal(t, "api/Order", ep.BasePath)
}

func TestBuildFormConstraints(t *testing.T) {
	p, err := NewBuilder(DefaultConfig()).Build(withoutPhoto(shopSchema()))
	require.NoError(t, err)

	line := p.Entities[1]
	require.Len(t, line.Form.Fields, 2)

	sku := line.Form.Fields[0]
	assert.True(t, sku.Required)
	assert.Equal(t, 12, sku.MaxLength)
	assert.Equal(t, WidgetTextInput, sku.Widget)

	assert.Equal(t, "OrderModel", line.Model.Fields[2].RelatedModel)
	assert.Equal(t, classify.KindReference, line.Model.Fields[2].Kind)
}

func TestBuildArtifactsReferenceOwnMembers(t *testing.T) {
	p, err := NewBuilder(DefaultConfig()).Build(withoutPhoto(shopSchema()))
	require.NoError(t, err)

	for _, ep := range p.Entities {
		names := make(map[string]bool)
		scalars := make(map[string]bool)

		for _, m := range ep.Entity.Members {
			names[m.Name] = true
		}

		assert.Len(t, ep.Model.Fields, len(ep.Entity.Members), "model cardinality of %s", ep.Entity.Name)

		for _, f := range ep.Model.Fields {
			assert.True(t, names[f.Name])

			if f.Kind == classify.KindScalar {
				scalars[f.Name] = true
			}
		}

		for _, f := range ep.Form.Fields {
			assert.True(t, scalars[f.Field], "form field %s.%s is a model scalar", ep.Entity.Name, f.Field)
		}

		for _, c := range ep.List.Columns {
			assert.True(t, scalars[c.Field], "list column %s.%s is a model scalar", ep.Entity.Name, c.Field)
		}

		assert.LessOrEqual(t, len(ep.List.Columns), DefaultMaxColumns)
		assert.Len(t, ep.Endpoint.Operations, 2)
	}
}

func TestBuildKeepNullable(t *testing.T) {
	cfg := DefaultConfig()
	cfg.KeepNullable = true

	p, err := NewBuilder(cfg).Build(withoutPhoto(shopSchema()))
	require.NoError(t, err)

	assert.True(t, p.Entities[0].Model.Fields[2].Nullable)
	assert.False(t, p.Entities[0].Model.Fields[1].Nullable)
}

func TestBuildIdentifiersAsText(t *testing.T) {
	cfg := DefaultConfig()
	cfg.IdentifiersAsText = true

	p, err := NewBuilder(cfg).Build(withoutPhoto(shopSchema()))
	require.NoError(t, err)

	order := p.Entities[0]
	assert.Equal(t, classify.ScalarText, order.Model.Fields[0].Scalar)
	assert.Equal(t, "string", order.Model.Fields[0].Type.String())

	require.Len(t, order.Form.Fields, 3)
	assert.Equal(t, "Id", order.Form.Fields[0].Label)
	assert.Equal(t, WidgetTextInput, order.Form.Fields[0].Widget)

	require.Len(t, order.List.Columns, 3)
	assert.Equal(t, "Id", order.List.Columns[0].Label)
}

func TestBuildMaxColumns(t *testing.T) {
	s := &schema.Schema{
		Root: schema.RootAggregate{Name: "Db"},
		Entities: []*schema.EntityDescriptor{{
			Name: "Person",
			Members: []schema.MemberDescriptor{
				{Name: "First", Type: schema.Basic("string")},
				{Name: "Last", Type: schema.Basic("string")},
				{Name: "Age", Type: schema.Basic("int")},
				{Name: "Height", Type: schema.Basic("float64")},
				{Name: "Active", Type: schema.Basic("bool")},
			},
		}},
	}

	cfg := DefaultConfig()
	cfg.MaxColumns = 2

	p, err := NewBuilder(cfg).Build(s)
	require.NoError(t, err)

	cols := p.Entities[0].List.Columns
	require.Len(t, cols, 2)
	assert.Equal(t, "First", cols[0].Field)
	assert.Equal(t, "Last", cols[1].Field)
	assert.Len(t, p.Entities[0].Form.Fields, 5, "forms are not capped")
	assert.Equal(t, "ListPeople", p.Entities[0].Endpoint.Operations[0].Name)
}

func TestBuildDegenerateEntity(t *testing.T) {
	s := withoutPhoto(shopSchema())
	s.Entities = append(s.Entities, &schema.EntityDescriptor{Name: "Tag", PkgPath: shopPkg})

	p, err := NewBuilder(DefaultConfig()).Build(s)
	require.Error(t, err)
	assert.Nil(t, p)
	assert.True(t, diagnostic.HasCode(err, diagnostic.CodeDegenerateEntity))
	assert.Contains(t, err.Error(), "[Tag]")
}

func TestBuildDanglingReference(t *testing.T) {
	s := withoutPhoto(shopSchema())
	s.Entities[0].Members = append(s.Entities[0].Members, schema.MemberDescriptor{
		Name: "Buyer",
		Type: schema.PointerTo(schema.Named(shopPkg, "Custmer")),
	})

	_, err := NewBuilder(DefaultConfig()).Build(s)
	require.Error(t, err)
	assert.True(t, diagnostic.HasCode(err, diagnostic.CodeDanglingReference))
	assert.Equal(t, "[Order] Buyer: [DANGLING_REFERENCE] Custmer is not an entity of the schema (did you mean: Customer?)", err.Error())
}

func TestBuildUnsupportedCollectionPolicy(t *testing.T) {
	_, err := NewBuilder(DefaultConfig()).Build(shopSchema())
	require.Error(t, err)
	assert.True(t, diagnostic.HasCode(err, diagnostic.CodeUnsupportedCollection))
	assert.Contains(t, err.Error(), "[Customer] Photo")

	cfg := DefaultConfig()
	cfg.UnsupportedMembers = PolicyIgnore

	p, err := NewBuilder(cfg).Build(shopSchema())
	require.NoError(t, err)

	customer := p.Entities[2]
	assert.Len(t, customer.Model.Fields, 1)
	require.Len(t, p.Diagnostics.Warnings, 1)
	assert.Equal(t, diagnostic.CodeUnsupportedCollection, p.Diagnostics.Warnings[0].Code)
	assert.Equal(t, "Photo", p.Diagnostics.Warnings[0].Member)
}

func TestBuildIgnoredMembersCanLeaveEntityDegenerate(t *testing.T) {
	s := &schema.Schema{
		Root: schema.RootAggregate{Name: "Db"},
		Entities: []*schema.EntityDescriptor{{
			Name:    "Tags",
			Members: []schema.MemberDescriptor{{Name: "Values", Type: schema.SliceOf(schema.Basic("string"))}},
		}},
	}

	cfg := DefaultConfig()
	cfg.UnsupportedMembers = PolicyIgnore

	_, err := NewBuilder(cfg).Build(s)
	assert.True(t, diagnostic.HasCode(err, diagnostic.CodeDegenerateEntity))
}

func TestBuildUnmappableMember(t *testing.T) {
	s := withoutPhoto(shopSchema())
	s.Entities[1].Members = append(s.Entities[1].Members, schema.MemberDescriptor{
		Name: "Meta",
		Type: schema.MapOf(schema.Basic("string"), schema.Basic("string")),
	})

	_, err := NewBuilder(DefaultConfig()).Build(s)
	require.Error(t, err)
	assert.True(t, diagnostic.HasCode(err, diagnostic.CodeUnmappableMember))
	assert.Contains(t, err.Error(), "[OrderLine] Meta")
}

func TestBuildIsDeterministic(t *testing.T) {
	first, err := NewBuilder(DefaultConfig()).Build(withoutPhoto(shopSchema()))
	require.NoError(t, err)

	second, err := NewBuilder(DefaultConfig()).Build(withoutPhoto(shopSchema()))
	require.NoError(t, err)

	assert.Equal(t, first.Entities, second.Entities)
	assert.Equal(t, first.Mapping, second.Mapping)
}

func TestSynthesizeDanglingTarget(t *testing.T) {
	b := NewBuilder(DefaultConfig())
	e := &schema.EntityDescriptor{Name: "Order"}
	classified := []classify.ClassifiedMember{{
		Member:         schema.MemberDescriptor{Name: "Lines", Type: schema.SliceOf(schema.Named("", "OrderLine"))},
		Classification: classify.Classification{Kind: classify.KindCollection, Target: "OrderLine"},
	}}

	_, err := b.Synthesize(e, classified, schema.NewNameSet("Order"))
	assert.True(t, diagnostic.HasCode(err, diagnostic.CodeDanglingReference))

	ep, err := b.Synthesize(e, classified, schema.NewNameSet("Order", "OrderLine"))
	require.NoError(t, err)
	assert.Empty(t, ep.Form.Fields)
	assert.Empty(t, ep.List.Columns)
	assert.Len(t, ep.Model.Fields, 1)
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	tests := map[string]func(*Config){
		"zero columns":   func(c *Config) { c.MaxColumns = 0 },
		"relative route": func(c *Config) { c.BasePagesRoute = "pages" },
		"bad policy":     func(c *Config) { c.UnsupportedMembers = "skip" },
	}

	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(&cfg)

			err := cfg.Validate()
			assert.True(t, diagnostic.HasCode(err, diagnostic.CodeInvalidConfig))

			_, err = NewBuilder(cfg).Build(withoutPhoto(shopSchema()))
			assert.True(t, diagnostic.HasCode(err, diagnostic.CodeInvalidConfig))
		})
	}
}

func TestWidgetKindString(t *testing.T) {
	assert.Equal(t, "text-input", WidgetTextInput.String())
	assert.Equal(t, "date-input", WidgetDateInput.String())
	assert.Equal(t, "unknown", WidgetKind(0).String())
	assert.Equal(t, "list", OperationList.String())
}
