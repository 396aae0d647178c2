package inventory

import (
	"github.com/shopspring/decimal"

	"MiniShop/internal/cart"
	"MiniShop/internal/catalog"
)

type ItemView struct {
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description,omitempty"`
	Stock       int             `json:"stock"`
}

type LineView struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type CartView struct {
	Lines      []LineView      `json:"lines"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	TotalUnits int             `json:"total_units"`
}

type AddResult struct {
	Item     string `json:"item"`
	Quantity int    `json:"quantity_added"`
}

type RemoveResult struct {
	Item     string `json:"item"`
	Quantity int    `json:"quantity_removed"`
}

type CheckoutResult struct {
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
	Lines     []LineView      `json:"lines"`
}

func itemView(it *catalog.Item) ItemView {
	return ItemView{
		Name:        it.Name,
		Price:       it.Price,
		Description: it.Description,
		Stock:       it.Stock(),
	}
}

func lineViews(lines []cart.Line) []LineView {
	out := make([]LineView, 0, len(lines))
	for _, l := range lines {
		out = append(out, LineView{
			Name:      l.Item.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.Item.Price,
			Subtotal:  l.Subtotal(),
		})
	}
	return out
}
