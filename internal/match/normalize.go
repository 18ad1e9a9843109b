package match

import (
	"strings"

	"github.com/ettle/strcase"
)

// NormalizeIdent folds an identifier for fuzzy matching:
// "OrderLine", "order_line" and "orderLine" all become "orderline".
func NormalizeIdent(s string) string {
	return strings.Join(TokenizeIdent(s), "")
}

// TokenizeIdent splits an identifier into lowercase words.
// "OrderID" -> ["order", "id"], "XMLParser" -> ["xml", "parser"].
func TokenizeIdent(s string) []string {
	snake := strcase.ToSnake(s)
	if snake == "" {
		return nil
	}

	return strings.Split(snake, "_")
}
