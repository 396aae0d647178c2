package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"MiniShop/internal/inventory"
)

const (
	storeColumns = 3
	storeCellW   = 35
)

func money(d decimal.Decimal) string { return "$" + d.StringFixed(2) }

func writeSearch(w io.Writer, items []inventory.ItemView) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No items found.")
		return
	}

	fmt.Fprintf(w, "\nFound %d items:\n%s\n", len(items), strings.Repeat("-", 50))
	for i, it := range items {
		fmt.Fprintf(w, "%d. %s - %s\n   Stock: %d units\n\n", i+1, it.Name, money(it.Price), it.Stock)
	}
}

func writeStore(w io.Writer, items []inventory.ItemView) {
	if len(items) == 0 {
		fmt.Fprintln(w, "Store is empty")
		return
	}

	fmt.Fprintf(w, "Store Items (%d total):\n", len(items))
	row := make([]string, 0, storeColumns)
	for i, it := range items {
		cell := fmt.Sprintf("%s: %s (Stock: %d)", it.Name, money(it.Price), it.Stock)
		row = append(row, fmt.Sprintf("%-*s", storeCellW, cell))
		if len(row) == storeColumns || i == len(items)-1 {
			fmt.Fprintln(w, strings.Join(row, " | "))
			row = row[:0]
		}
	}
}

func writeCart(w io.Writer, c inventory.CartView) {
	if len(c.Lines) == 0 {
		fmt.Fprintln(w, "Your cart is empty.")
		return
	}

	fmt.Fprintln(w, "\n=== Your Shopping Cart ===")
	for _, l := range c.Lines {
		fmt.Fprintf(w, "%s x%d - %s\n", l.Name, l.Quantity, money(l.Subtotal))
	}
	fmt.Fprintf(w, "\nTotal items: %d\nTotal price: %s\n%s\n", c.TotalUnits, money(c.Subtotal), strings.Repeat("=", 30))
}

func writeItem(w io.Writer, it inventory.ItemView) {
	fmt.Fprintf(w, "Name:        %s\nPrice:       %s\nStock:       %d units\nDescription: %s\n",
		it.Name, money(it.Price), it.Stock, it.Description)
}

func addedMessage(r inventory.AddResult) string {
	return fmt.Sprintf("Added %dx '%s' to cart", r.Quantity, r.Item)
}

func removedMessage(r inventory.RemoveResult) string {
	return fmt.Sprintf("Removed %dx '%s' from cart", r.Quantity, r.Item)
}

func checkoutMessage(r inventory.CheckoutResult) string {
	return fmt.Sprintf("Checkout successful! Total: %s (%d items)", money(r.Total), r.ItemCount)
}
