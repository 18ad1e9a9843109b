// Package naming derives every name an artifact needs from an entity name:
// model name, routes, display labels, plural forms and file stems.
package naming

import (
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/ettle/strcase"
	"github.com/jinzhu/inflection"
)

// ModelSuffix is appended to entity names to form transfer model names.
const ModelSuffix = "Model"

// Convention holds the derived names of one entity.
type Convention struct {
	EntityName         string // Order
	ModelName          string // OrderModel
	RouteSegment       string // Order
	DisplayLabel       string // Order Line
	PluralName         string // OrderLines
	PluralDisplayLabel string // Order Lines
	StoreName          string // backing-store identifier, OrderLines
	VarName            string // orderLine
	FileStem           string // order_line
}

// Resolver computes conventions and memoizes them per entity name.
type Resolver struct {
	mu    sync.Mutex
	cache map[string]Convention
}

// NewResolver creates an empty resolver.
func NewResolver() *Resolver {
	return &Resolver{cache: make(map[string]Convention)}
}

// Resolve returns the convention for entityName.
func (r *Resolver) Resolve(entityName string) Convention {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.cache[entityName]; ok {
		return c
	}

	c := derive(entityName)
	r.cache[entityName] = c

	return c
}

func derive(name string) Convention {
	plural := Pluralize(name)

	return Convention{
		EntityName:         name,
		ModelName:          name + ModelSuffix,
		RouteSegment:       name,
		DisplayLabel:       Humanize(name),
		PluralName:         plural,
		PluralDisplayLabel: Humanize(plural),
		StoreName:          plural,
		VarName:            strcase.ToGoCamel(name),
		FileStem:           strcase.ToSnake(name),
	}
}

// wordCaser splits identifiers without the Go initialism table, so words keep
// the casing they were written with.
var wordCaser = strcase.NewCaser(false, nil, nil)

// Humanize splits a camel case identifier into words and capitalizes the
// first letter of each: "IsPaid" -> "Is Paid", "CustomerID" -> "Customer ID",
// "Id" -> "Id".
func Humanize(s string) string {
	words := strings.Fields(wordCaser.ToCase(s, strcase.Original, ' '))
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}

	return strings.Join(words, " ")
}

// Pluralize returns the plural of an identifier. Compound names pluralize
// their last word only ("OrderLine" -> "OrderLines", "SalesPerson" ->
// "SalesPeople"); uncountable words stay as they are.
func Pluralize(name string) string {
	if name == "" {
		return ""
	}

	i := lastWordStart(name)

	return name[:i] + inflection.Plural(name[i:])
}

// lastWordStart returns the byte offset of the last camel case word.
func lastWordStart(name string) int {
	runes := []rune(name)

	for i := len(runes) - 1; i > 0; i-- {
		if unicode.IsUpper(runes[i]) && !unicode.IsUpper(runes[i-1]) {
			return len(string(runes[:i]))
		}
	}

	return 0
}

// WireName returns the JSON and form key of a member: "IsPaid" -> "isPaid".
func WireName(member string) string {
	return strcase.ToGoCamel(member)
}
