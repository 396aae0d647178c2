package cart

import (
	"github.com/shopspring/decimal"

	"MiniShop/internal/apperr"
	"MiniShop/internal/catalog"
)

// Line binds a catalog item to a quantity. Item points into the catalog;
// the cart never copies price or description.
type Line struct {
	Item     *catalog.Item
	Quantity int
}

func (l Line) Subtotal() decimal.Decimal {
	return l.Item.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart keys lines by item name and remembers insertion order for display.
// Stock limits are not its concern.
type Cart struct {
	lines map[string]*Line
	order []string
}

func New() *Cart {
	return &Cart{lines: map[string]*Line{}}
}

func (c *Cart) AddLine(item *catalog.Item, qty int) error {
	if qty <= 0 {
		return apperr.InvalidQuantity(qty)
	}

	if l, ok := c.lines[item.Name]; ok {
		l.Quantity += qty
		return nil
	}

	c.lines[item.Name] = &Line{Item: item, Quantity: qty}
	c.order = append(c.order, item.Name)
	return nil
}

// RemoveLine takes up to qty units off the line and reports how many were
// removed. Asking for more than the line holds deletes the line.
func (c *Cart) RemoveLine(name string, qty int) (int, error) {
	l, ok := c.lines[name]
	if !ok {
		return 0, apperr.NotInCart(name)
	}
	if qty <= 0 {
		return 0, apperr.InvalidQuantity(qty)
	}

	if qty >= l.Quantity {
		removed := l.Quantity
		c.delete(name)
		return removed, nil
	}

	l.Quantity -= qty
	return qty, nil
}

// RemoveAll deletes the line and reports its prior quantity.
func (c *Cart) RemoveAll(name string) (int, error) {
	l, ok := c.lines[name]
	if !ok {
		return 0, apperr.NotInCart(name)
	}
	removed := l.Quantity
	c.delete(name)
	return removed, nil
}

func (c *Cart) delete(name string) {
	delete(c.lines, name)
	for i, n := range c.order {
		if n == name {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

func (c *Cart) Contains(name string) bool {
	_, ok := c.lines[name]
	return ok
}

// Quantity is 0 for items not in the cart.
func (c *Cart) Quantity(name string) int {
	if l, ok := c.lines[name]; ok {
		return l.Quantity
	}
	return 0
}

func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

func (c *Cart) TotalUnits() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

func (c *Cart) IsEmpty() bool { return len(c.lines) == 0 }

func (c *Cart) Len() int { return len(c.lines) }

func (c *Cart) Clear() {
	clear(c.lines)
	c.order = c.order[:0]
}

// Lines returns copies of the lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, *c.lines[name])
	}
	return out
}
