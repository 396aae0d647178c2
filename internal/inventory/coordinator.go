// Package inventory keeps the catalog and the cart consistent: stock is
// reserved when units enter the cart, restored when they leave and kept
// sold at checkout. Free-text terms are resolved to exactly one item
// before anything is touched.
package inventory

import (
	"slices"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"MiniShop/internal/apperr"
	"MiniShop/internal/cart"
	"MiniShop/internal/catalog"
)

// Coordinator owns the session's catalog and cart and is the only writer
// of item stock. Every exported method is one critical section.
type Coordinator struct {
	mu      sync.RWMutex
	catalog *catalog.Catalog
	cart    *cart.Cart

	log     *zap.Logger
	metrics *metrics
}

type Option func(*Coordinator)

func WithLogger(l *zap.Logger) Option {
	return func(c *Coordinator) {
		if l != nil {
			c.log = l
		}
	}
}

func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *Coordinator) {
		c.metrics = newMetrics(reg)
	}
}

// New loads the catalog from records. A malformed record fails the whole
// load with an apperr.KindInvalidCatalogRecord error.
func New(records []catalog.Record, opts ...Option) (*Coordinator, error) {
	cat, err := catalog.Load(records)
	if err != nil {
		return nil, err
	}

	c := &Coordinator{
		catalog: cat,
		cart:    cart.New(),
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.metrics == nil {
		c.metrics = newMetrics(nil)
	}

	c.log.Info("catalog loaded", zap.Int("items", cat.Len()))
	return c, nil
}

// resolve maps term to the single item whose name contains it.
func (c *Coordinator) resolve(term string) (*catalog.Item, error) {
	matches := c.catalog.FindBySubstring(term)

	switch len(matches) {
	case 0:
		return nil, apperr.NotFound(term)
	case 1:
		return matches[0], nil
	default:
		names := make([]string, 0, len(matches))
		for _, it := range matches {
			names = append(names, it.Name)
		}
		return nil, apperr.Ambiguous(term, names)
	}
}

// Search lists purchasable matches for term: items already in the cart and
// sold-out items are left out. Results are sorted by name, ignoring case.
func (c *Coordinator) Search(term string) []ItemView {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]ItemView, 0, 8)
	for _, it := range c.catalog.FindBySubstring(term) {
		if c.cart.Contains(it.Name) || it.Stock() == 0 {
			continue
		}
		out = append(out, itemView(it))
	}

	slices.SortStableFunc(out, func(a, b ItemView) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
	return out
}

// Listing returns every catalog item in load order.
func (c *Coordinator) Listing() []ItemView {
	c.mu.RLock()
	defer c.mu.RUnlock()

	all := c.catalog.All()
	out := make([]ItemView, 0, len(all))
	for _, it := range all {
		out = append(out, itemView(it))
	}
	return out
}

// Lookup resolves term the same way AddToCart does and describes the item.
func (c *Coordinator) Lookup(term string) (ItemView, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	it, err := c.resolve(term)
	if err != nil {
		return ItemView{}, err
	}
	return itemView(it), nil
}

// Item looks an item up by its exact name.
func (c *Coordinator) Item(name string) (ItemView, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	it, ok := c.catalog.Get(name)
	if !ok {
		return ItemView{}, false
	}
	return itemView(it), true
}

func (c *Coordinator) PeekCart() CartView {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return CartView{
		Lines:      lineViews(c.cart.Lines()),
		Subtotal:   c.cart.Subtotal(),
		TotalUnits: c.cart.TotalUnits(),
	}
}
