package receipt

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"MiniShop/internal/inventory"
)

var (
	ErrReceiptExists = errors.New("receipt already exists")
	ErrNoLines       = errors.New("receipt has no lines")
)

type Line struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// Receipt is the record of one completed checkout.
type Receipt struct {
	ID        string          `json:"id"`
	Lines     []Line          `json:"lines"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
	CreatedAt time.Time       `json:"created_at"`
}

type Store interface {
	Create(ctx context.Context, r Receipt) error
	Get(ctx context.Context, id string) (Receipt, bool, error)
	Ping(ctx context.Context) error
}

func New(lines []Line, total decimal.Decimal, itemCount int) (Receipt, error) {
	if len(lines) == 0 {
		return Receipt{}, ErrNoLines
	}
	return Receipt{
		ID:        "r_" + uuid.NewString(),
		Lines:     lines,
		Total:     total,
		ItemCount: itemCount,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// FromCheckout turns a completed cart checkout into a receipt.
func FromCheckout(res inventory.CheckoutResult) (Receipt, error) {
	lines := make([]Line, 0, len(res.Lines))
	for _, l := range res.Lines {
		lines = append(lines, Line{
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Subtotal:  l.Subtotal,
		})
	}
	return New(lines, res.Total, res.ItemCount)
}
