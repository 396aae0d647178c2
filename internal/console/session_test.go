package console

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"MiniShop/internal/catalog"
	"MiniShop/internal/inventory"
	"MiniShop/internal/receipt"
)

func newCoord(t *testing.T) *inventory.Coordinator {
	t.Helper()
	c, err := inventory.New([]catalog.Record{
		{Name: "Widget", Price: decimal.RequireFromString("9.99"), Description: "A widget", Stock: 2},
		{Name: "Gadget", Price: decimal.RequireFromString("5.00"), Description: "A gadget", Stock: 4},
		{Name: "Red Pen", Price: decimal.RequireFromString("1.50"), Stock: 10},
		{Name: "Blue Pen", Price: decimal.RequireFromString("1.25"), Stock: 10},
	})
	require.NoError(t, err)
	return c
}

func run(t *testing.T, s *Session, script ...string) string {
	t.Helper()
	err := s.Run(context.Background(), strings.NewReader(strings.Join(script, "\n")+"\n"))
	require.NoError(t, err)
	return s.out.(*bytes.Buffer).String()
}

func TestSession_ShoppingFlow(t *testing.T) {
	var out bytes.Buffer
	store := receipt.NewMemStore()
	s := NewSession(newCoord(t), &out, WithReceipts(store))

	got := run(t, s,
		"add_item widget 2",
		"add_item Gadget",
		"add_item Pen",
		"remove_item Gadget",
		"add_item Gadget",
		"show_cart",
		"checkout",
		"show_cart",
	)

	require.Contains(t, got, "Added 2x 'Widget' to cart")
	require.Contains(t, got, "Added 1x 'Gadget' to cart")
	require.Contains(t, got, `'Pen' matches multiple items: Red Pen, Blue Pen`)
	require.Contains(t, got, "Removed 1x 'Gadget' from cart")
	require.Contains(t, got, "Widget x2 - $19.98")
	require.Contains(t, got, "Total items: 3\nTotal price: $24.98")
	require.Contains(t, got, "Checkout successful! Total: $24.98 (3 items)")

	// checkout ends the session, so the trailing show_cart never runs
	require.Equal(t, 1, strings.Count(got, "=== Your Shopping Cart ==="))
}

func TestSession_ErrorsKeepSessionAlive(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(newCoord(t), &out)

	got := run(t, s,
		"checkout",
		"add_item Widget 3",
		"remove_item Widget",
		"add_item Widget 0",
		"dance",
		"search_by_name",
		"show_item nothing",
		"exit",
		"show_cart",
	)

	require.Contains(t, got, "Cart is empty")
	require.Contains(t, got, `Not enough stock for 'Widget': available 2, in cart 0, requested 3`)
	require.Contains(t, got, `'Widget' not in cart`)
	require.Contains(t, got, "Quantity must be positive.")
	require.Contains(t, got, "Invalid action.")
	require.Contains(t, got, "Please provide a search term.")
	require.Contains(t, got, `Item 'nothing' not found`)
	require.Contains(t, got, "Thank you for shopping with us!")
	require.NotContains(t, got, "Your cart is empty.")
}

func TestSession_SearchAndListings(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(newCoord(t), &out)

	got := run(t, s,
		"add_item Red Pen 1",
		"search_by_name pen",
		"search_by_name zzz",
		"show_item gadget",
		"show_store",
	)

	require.Contains(t, got, "Found 1 items:")
	require.Contains(t, got, "1. Blue Pen - $1.25\n   Stock: 10 units")
	require.Contains(t, got, "No items found.")
	require.Contains(t, got, "Name:        Gadget\nPrice:       $5.00\nStock:       4 units\nDescription: A gadget")
	require.Contains(t, got, "Store Items (4 total):")

	first := "Widget: $9.99 (Stock: 2)"
	second := "Gadget: $5.00 (Stock: 4)"
	third := "Red Pen: $1.50 (Stock: 9)"
	row := first + strings.Repeat(" ", 35-len(first)) + " | " +
		second + strings.Repeat(" ", 35-len(second)) + " | " +
		third + strings.Repeat(" ", 35-len(third))
	require.Contains(t, got, row+"\n")
	require.Contains(t, got, "\nBlue Pen: $1.25 (Stock: 10)")
}

type failingStore struct{ receipt.Store }

func (failingStore) Create(context.Context, receipt.Receipt) error { return errors.New("disk full") }

func TestSession_FailedReceiptKeepsCart(t *testing.T) {
	var out bytes.Buffer
	coord := newCoord(t)
	s := NewSession(coord, &out, WithReceipts(failingStore{}))

	got := run(t, s, "add_item Gadget 2", "checkout", "exit")

	require.Contains(t, got, "An error occurred: inventory: checkout commit: disk full")
	require.Equal(t, 2, coord.PeekCart().TotalUnits)
}

func TestSession_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewSession(newCoord(t), &bytes.Buffer{})
	err := s.Run(ctx, strings.NewReader("show_cart\n"))
	require.ErrorIs(t, err, context.Canceled)
}
