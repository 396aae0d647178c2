package receipt

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"MiniShop/internal/inventory"
)

func sampleLines() []Line {
	return []Line{
		{Name: "Widget", Quantity: 2, UnitPrice: decimal.RequireFromString("9.99"), Subtotal: decimal.RequireFromString("19.98")},
		{Name: "Gadget", Quantity: 1, UnitPrice: decimal.RequireFromString("5.00"), Subtotal: decimal.RequireFromString("5.00")},
	}
}

func TestNew(t *testing.T) {
	r, err := New(sampleLines(), decimal.RequireFromString("24.98"), 3)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(r.ID, "r_"))
	require.Equal(t, 3, r.ItemCount)
	require.False(t, r.CreatedAt.IsZero())

	other, err := New(sampleLines(), decimal.RequireFromString("24.98"), 3)
	require.NoError(t, err)
	require.NotEqual(t, r.ID, other.ID)

	_, err = New(nil, decimal.Zero, 0)
	require.ErrorIs(t, err, ErrNoLines)
}

func TestMemStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()
	require.NoError(t, s.Ping(ctx))

	r, err := New(sampleLines(), decimal.RequireFromString("24.98"), 3)
	require.NoError(t, err)
	require.NoError(t, s.Create(ctx, r))
	require.ErrorIs(t, s.Create(ctx, r), ErrReceiptExists)

	got, ok, err := s.Get(ctx, r.ID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, r, got)

	got.Lines[0].Quantity = 100
	again, _, _ := s.Get(ctx, r.ID)
	require.Equal(t, 2, again.Lines[0].Quantity)

	_, ok, err = s.Get(ctx, "r_missing")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestIsUniqueViolation(t *testing.T) {
	require.True(t, isUniqueViolation(&pgconn.PgError{Code: pgUniqueCode}))
	require.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	require.False(t, isUniqueViolation(errors.New("boom")))
}

func TestFromCheckout(t *testing.T) {
	res := inventory.CheckoutResult{
		Total:     decimal.RequireFromString("24.98"),
		ItemCount: 3,
		Lines: []inventory.LineView{
			{Name: "Widget", Quantity: 2, UnitPrice: decimal.RequireFromString("9.99"), Subtotal: decimal.RequireFromString("19.98")},
			{Name: "Gadget", Quantity: 1, UnitPrice: decimal.RequireFromString("5.00"), Subtotal: decimal.RequireFromString("5.00")},
		},
	}

	r, err := FromCheckout(res)
	require.NoError(t, err)
	require.Equal(t, sampleLines(), r.Lines)
	require.True(t, r.Total.Equal(res.Total))
	require.Equal(t, 3, r.ItemCount)

	_, err = FromCheckout(inventory.CheckoutResult{})
	require.ErrorIs(t, err, ErrNoLines)
}
