package classify

import "crud-generator/internal/schema"

var basicScalars = map[string]ScalarKind{
	"string":  ScalarText,
	"bool":    ScalarBoolean,
	"byte":    ScalarByte,
	"uint8":   ScalarByte,
	"int":     ScalarInteger,
	"int8":    ScalarInteger,
	"int16":   ScalarInteger,
	"int32":   ScalarInteger,
	"int64":   ScalarInteger,
	"rune":    ScalarInteger,
	"uint":    ScalarInteger,
	"uint16":  ScalarInteger,
	"uint32":  ScalarInteger,
	"uint64":  ScalarInteger,
	"uintptr": ScalarInteger,
	"float32": ScalarFloat,
	"float64": ScalarFloat,
}

var externalScalars = map[string]ScalarKind{
	"time.Time":                             ScalarDateTime,
	"time.Duration":                         ScalarInteger,
	"github.com/google/uuid.UUID":           ScalarIdentifier,
	"github.com/oklog/ulid/v2.ULID":         ScalarIdentifier,
	"github.com/oklog/ulid.ULID":            ScalarIdentifier,
	"math/big.Int":                          ScalarInteger,
	"math/big.Float":                        ScalarDecimal,
	"math/big.Rat":                          ScalarDecimal,
	"github.com/shopspring/decimal.Decimal": ScalarDecimal,
}

// genericNull is database/sql.Null[T].
const genericNull = "database/sql.Null"

// nullWrappers maps nullable wrapper types to the primitive they hold.
var nullWrappers = map[string]*schema.TypeRef{
	"database/sql.NullString":         schema.Basic("string"),
	"database/sql.NullBool":           schema.Basic("bool"),
	"database/sql.NullByte":           schema.Basic("byte"),
	"database/sql.NullInt16":          schema.Basic("int16"),
	"database/sql.NullInt32":          schema.Basic("int32"),
	"database/sql.NullInt64":          schema.Basic("int64"),
	"database/sql.NullFloat64":        schema.Basic("float64"),
	"database/sql.NullTime":           schema.External("time", "Time"),
	"github.com/google/uuid.NullUUID": schema.External("github.com/google/uuid", "UUID"),
}
