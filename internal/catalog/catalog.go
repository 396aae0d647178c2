package catalog

import (
	"errors"
	"fmt"
	"strings"

	"MiniShop/internal/apperr"
)

var (
	errNilItem     = errors.New("catalog: nil item")
	errForeignItem = errors.New("catalog: item belongs to another catalog")
)

// Catalog owns every Item for the session. Membership is fixed at Load;
// only stock changes afterwards, through Reserve and Restore.
type Catalog struct {
	items  []*Item
	byName map[string]*Item
}

// Load validates all records before building anything, so a malformed
// record yields no catalog at all.
func Load(records []Record) (*Catalog, error) {
	byName := make(map[string]*Item, len(records))
	items := make([]*Item, 0, len(records))

	for i, r := range records {
		if reason := r.validate(); reason != "" {
			return nil, apperr.InvalidRecord(i, reason)
		}
		if _, dup := byName[r.Name]; dup {
			return nil, apperr.InvalidRecord(i, fmt.Sprintf("duplicate name %q", r.Name))
		}

		it := &Item{
			Name:        r.Name,
			Price:       r.Price,
			Description: r.Description,
			stock:       r.Stock,
		}
		byName[r.Name] = it
		items = append(items, it)
	}

	return &Catalog{items: items, byName: byName}, nil
}

func (c *Catalog) Len() int { return len(c.items) }

// All returns the items in load order. The slice is a copy; the items are not.
func (c *Catalog) All() []*Item {
	out := make([]*Item, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Catalog) Get(name string) (*Item, bool) {
	it, ok := c.byName[name]
	return it, ok
}

// FindBySubstring matches term against item names case-insensitively and
// returns the hits in load order.
func (c *Catalog) FindBySubstring(term string) []*Item {
	lt := strings.ToLower(term)

	var out []*Item
	for _, it := range c.items {
		if it.matches(lt) {
			out = append(out, it)
		}
	}
	return out
}

// Reserve takes qty units out of the item's stock.
func (c *Catalog) Reserve(it *Item, qty int) error {
	if err := c.owns(it); err != nil {
		return err
	}
	if qty <= 0 {
		return apperr.InvalidQuantity(qty)
	}
	if !it.HasStock(qty) {
		return apperr.InsufficientStock(it.Name, it.stock, 0, qty)
	}
	it.stock -= qty
	return nil
}

// Restore puts qty previously reserved units back.
func (c *Catalog) Restore(it *Item, qty int) error {
	if err := c.owns(it); err != nil {
		return err
	}
	if qty <= 0 {
		return apperr.InvalidQuantity(qty)
	}
	it.stock += qty
	return nil
}

func (c *Catalog) owns(it *Item) error {
	if it == nil {
		return errNilItem
	}
	if c.byName[it.Name] != it {
		return fmt.Errorf("%w: %q", errForeignItem, it.Name)
	}
	return nil
}
