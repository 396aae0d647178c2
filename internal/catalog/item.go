package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
)

type Item struct {
	Name        string
	Price       decimal.Decimal
	Description string

	stock int
}

func (it *Item) Stock() int { return it.stock }

func (it *Item) HasStock(qty int) bool { return it.stock >= qty }

func (it *Item) matches(lowerTerm string) bool {
	return strings.Contains(strings.ToLower(it.Name), lowerTerm)
}

// Record is one parsed catalog entry, independent of the source format.
type Record struct {
	Name        string          `json:"name" yaml:"name"`
	Price       decimal.Decimal `json:"price" yaml:"price"`
	Description string          `json:"description" yaml:"description"`
	Stock       int             `json:"stock" yaml:"stock"`
}

func (r Record) validate() string {
	switch {
	case strings.TrimSpace(r.Name) == "":
		return "name is required"
	case r.Price.IsNegative():
		return "price must not be negative"
	case r.Stock < 0:
		return "stock must not be negative"
	}
	return ""
}
