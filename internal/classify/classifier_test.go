package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crud-generator/internal/diagnostic"
	"crud-generator/internal/schema"
)

const shopPkg = "example.com/shop"

func member(name string, t *schema.TypeRef, cs ...schema.Constraint) schema.MemberDescriptor {
	return schema.MemberDescriptor{Name: name, Type: t, Constraints: cs}
}

func entity(name string) *schema.TypeRef {
	return schema.Named(shopPkg, name)
}

func TestClassifyScalars(t *testing.T) {
	c := New(DefaultConfig())
	known := schema.NewNameSet("Order", "Customer")
	status := schema.Alias(shopPkg, "Status", schema.Basic("string"))

	tests := []struct {
		name     string
		typ      *schema.TypeRef
		kind     ScalarKind
		nullable bool
	}{
		{"string", schema.Basic("string"), ScalarText, false},
		{"bool", schema.Basic("bool"), ScalarBoolean, false},
		{"int64", schema.Basic("int64"), ScalarInteger, false},
		{"uint16", schema.Basic("uint16"), ScalarInteger, false},
		{"byte", schema.Basic("byte"), ScalarByte, false},
		{"float32", schema.Basic("float32"), ScalarFloat, false},
		{"time", schema.External("time", "Time"), ScalarDateTime, false},
		{"duration", schema.External("time", "Duration"), ScalarInteger, false},
		{"null duration", schema.External("database/sql", "Null", schema.External("time", "Duration")), ScalarInteger, true},
		{"uuid", schema.External("github.com/google/uuid", "UUID"), ScalarIdentifier, false},
		{"ulid", schema.External("github.com/oklog/ulid/v2", "ULID"), ScalarIdentifier, false},
		{"decimal", schema.External("github.com/shopspring/decimal", "Decimal"), ScalarDecimal, false},
		{"big int", schema.External("math/big", "Int"), ScalarInteger, false},
		{"alias", status, ScalarText, false},
		{"pointer", schema.PointerTo(schema.Basic("bool")), ScalarBoolean, true},
		{"double pointer", schema.PointerTo(schema.PointerTo(schema.Basic("int"))), ScalarInteger, true},
		{"pointer alias", schema.PointerTo(status), ScalarText, true},
		{"sql null string", schema.External("database/sql", "NullString"), ScalarText, true},
		{"sql null time", schema.External("database/sql", "NullTime"), ScalarDateTime, true},
		{"sql generic null", schema.External("database/sql", "Null", schema.Basic("int32")), ScalarInteger, true},
		{"null uuid", schema.External("github.com/google/uuid", "NullUUID"), ScalarIdentifier, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Classify(member("Field", tt.typ), known)
			require.NoError(t, err)

			assert.Equal(t, KindScalar, got.Kind)
			assert.Equal(t, tt.kind, got.Scalar)
			assert.Equal(t, tt.nullable, got.Nullable)
			assert.NotNil(t, got.Primitive)
			assert.Empty(t, got.Target)
		})
	}
}

func TestClassifyConstraintsVerbatim(t *testing.T) {
	c := New(DefaultConfig())
	cs := []schema.Constraint{schema.Required(), schema.MaxLength(50)}

	got, err := c.Classify(member("Name", schema.Basic("string"), cs...), schema.NewNameSet())
	require.NoError(t, err)
	assert.Equal(t, cs, got.Constraints)
}

func TestClassifyRelations(t *testing.T) {
	c := New(DefaultConfig())
	known := schema.NewNameSet("Order", "OrderLine", "Customer")

	tests := []struct {
		name   string
		typ    *schema.TypeRef
		kind   Kind
		target string
	}{
		{"value reference", entity("Customer"), KindReference, "Customer"},
		{"pointer reference", schema.PointerTo(entity("Customer")), KindReference, "Customer"},
		{"slice", schema.SliceOf(entity("OrderLine")), KindCollection, "OrderLine"},
		{"slice of pointers", schema.SliceOf(schema.PointerTo(entity("OrderLine"))), KindCollection, "OrderLine"},
		{"array", schema.ArrayOf(3, entity("OrderLine")), KindCollection, "OrderLine"},
		{"set wrapper", schema.External("crud-generator/dbset", "Set", entity("Order")), KindCollection, "Order"},
		{"alias over slice", schema.Alias(shopPkg, "Lines", schema.SliceOf(entity("OrderLine"))), KindCollection, "OrderLine"},
		{"pointer to slice", schema.PointerTo(schema.SliceOf(entity("OrderLine"))), KindCollection, "OrderLine"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Classify(member("Rel", tt.typ), known)
			require.NoError(t, err)

			assert.Equal(t, tt.kind, got.Kind)
			assert.Equal(t, tt.target, got.Target)
			assert.True(t, got.IsRelation())
		})
	}
}

func TestClassifyFailures(t *testing.T) {
	c := New(DefaultConfig())
	known := schema.NewNameSet("Order", "Customer")

	tests := []struct {
		name string
		typ  *schema.TypeRef
		code string
	}{
		{"nil type", nil, diagnostic.CodeUnmappableMember},
		{"map", schema.MapOf(schema.Basic("string"), schema.Basic("int")), diagnostic.CodeUnmappableMember},
		{"unknown literal", &schema.TypeRef{Kind: schema.TypeKindUnknown, Name: "func()"}, diagnostic.CodeUnmappableMember},
		{"complex", schema.Basic("complex128"), diagnostic.CodeUnmappableMember},
		{"unknown external", schema.External("net/url", "URL"), diagnostic.CodeUnmappableMember},
		{"alias over map", schema.Alias(shopPkg, "Meta", schema.MapOf(schema.Basic("string"), schema.Basic("string"))), diagnostic.CodeUnmappableMember},
		{"dangling reference", schema.PointerTo(entity("Custmer")), diagnostic.CodeDanglingReference},
		{"dangling collection", schema.SliceOf(entity("Ghost")), diagnostic.CodeDanglingReference},
		{"primitive collection", schema.SliceOf(schema.Basic("string")), diagnostic.CodeUnsupportedCollection},
		{"byte slice", schema.SliceOf(schema.Basic("byte")), diagnostic.CodeUnsupportedCollection},
		{"external collection", schema.SliceOf(schema.External("time", "Time")), diagnostic.CodeUnsupportedCollection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Classify(member("Field", tt.typ), known)
			require.Error(t, err)
			assert.True(t, diagnostic.HasCode(err, tt.code), "got %v", err)
		})
	}
}

func TestClassifyDanglingSuggestions(t *testing.T) {
	c := New(DefaultConfig())

	_, err := c.Classify(member("Buyer", entity("Custmer")), schema.NewNameSet("Order", "Customer"))
	require.Error(t, err)

	var de *diagnostic.Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "Buyer", de.Member)
	assert.Equal(t, []string{"Customer"}, de.Suggestions)
}

func TestClassifyConfiguredScalars(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ScalarTypes = map[string]ScalarKind{
		"example.com/money.Amount": ScalarDecimal,
		"time.Time":                ScalarText,
	}
	c := New(cfg)

	got, err := c.Classify(member("Total", schema.External("example.com/money", "Amount")), schema.NewNameSet())
	require.NoError(t, err)
	assert.Equal(t, ScalarDecimal, got.Scalar)

	got, err = c.Classify(member("At", schema.External("time", "Time")), schema.NewNameSet())
	require.NoError(t, err)
	assert.Equal(t, ScalarText, got.Scalar, "configured entries override the built-in table")

	// Built-in table is untouched for other classifiers.
	got, err = New(DefaultConfig()).Classify(member("At", schema.External("time", "Time")), schema.NewNameSet())
	require.NoError(t, err)
	assert.Equal(t, ScalarDateTime, got.Scalar)
}

func TestClassifyIsPure(t *testing.T) {
	c := New(DefaultConfig())
	known := schema.NewNameSet("Customer")
	m := member("Owner", schema.PointerTo(entity("Customer")))

	first, err := c.Classify(m, known)
	require.NoError(t, err)

	for range 5 {
		again, err := c.Classify(m, known)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}

	assert.Equal(t, schema.TypeKindPointer, m.Type.Kind, "member type is not modified")
}

func TestScalarKindNames(t *testing.T) {
	for k, name := range scalarKindNames {
		parsed, err := ParseScalarKind(name)
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}

	_, err := ParseScalarKind("money")
	assert.Error(t, err)
	assert.Equal(t, "unknown", ScalarKind(0).String())
}

func TestClassificationString(t *testing.T) {
	assert.Equal(t, "scalar(text, nullable)", Classification{Kind: KindScalar, Scalar: ScalarText, Nullable: true}.String())
	assert.Equal(t, "reference(Customer)", Classification{Kind: KindReference, Target: "Customer"}.String())
	assert.Equal(t, "collection(OrderLine)", Classification{Kind: KindCollection, Target: "OrderLine"}.String())
}
