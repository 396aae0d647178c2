package inventory

import (
	"fmt"

	"go.uber.org/zap"

	"MiniShop/internal/apperr"
	"MiniShop/internal/catalog"
)

func (c *Coordinator) AddOne(term string) (AddResult, error) {
	return c.AddToCart(term, 1)
}

// AddToCart reserves qty units of the item term resolves to and puts them
// in the cart. On error nothing has changed.
func (c *Coordinator) AddToCart(term string, qty int) (AddResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	res, err := c.add(term, qty)
	c.metrics.observe(opAdd, err)
	if err != nil {
		c.log.Debug("add rejected", zap.String("term", term), zap.Int("quantity", qty),
			zap.Stringer("kind", apperr.KindOf(err)))
	}
	return res, err
}

func (c *Coordinator) add(term string, qty int) (AddResult, error) {
	it, err := c.resolve(term)
	if err != nil {
		return AddResult{}, err
	}
	if qty <= 0 {
		return AddResult{}, apperr.InvalidQuantity(qty)
	}
	// Stock already excludes what the cart holds.
	if !it.HasStock(qty) {
		return AddResult{}, apperr.InsufficientStock(it.Name, it.Stock(), c.cart.Quantity(it.Name), qty)
	}

	if err := c.catalog.Reserve(it, qty); err != nil {
		return AddResult{}, err
	}
	if err := c.cart.AddLine(it, qty); err != nil {
		c.mustRestore(it, qty)
		return AddResult{}, err
	}

	c.metrics.reserved.Add(float64(qty))
	c.log.Debug("reserved", zap.String("item", it.Name), zap.Int("quantity", qty), zap.Int("stock", it.Stock()))
	return AddResult{Item: it.Name, Quantity: qty}, nil
}

// RemoveFromCart takes up to qty units of the resolved item out of the cart
// and back into stock. Asking for more than the cart holds removes the
// whole line.
func (c *Coordinator) RemoveFromCart(term string, qty int) (RemoveResult, error) {
	return c.removeLocked(term, qty, false)
}

// RemoveAllFromCart drops the resolved item's line entirely.
func (c *Coordinator) RemoveAllFromCart(term string) (RemoveResult, error) {
	return c.removeLocked(term, 0, true)
}

func (c *Coordinator) removeLocked(term string, qty int, all bool) (RemoveResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	res, err := c.remove(term, qty, all)
	c.metrics.observe(opRemove, err)
	if err != nil {
		c.log.Debug("remove rejected", zap.String("term", term), zap.Int("quantity", qty),
			zap.Stringer("kind", apperr.KindOf(err)))
	}
	return res, err
}

func (c *Coordinator) remove(term string, qty int, all bool) (RemoveResult, error) {
	it, err := c.resolve(term)
	if err != nil {
		return RemoveResult{}, err
	}
	if !c.cart.Contains(it.Name) {
		return RemoveResult{}, apperr.NotInCart(it.Name)
	}

	held := c.cart.Quantity(it.Name)
	removed := held
	if !all {
		if qty <= 0 {
			return RemoveResult{}, apperr.InvalidQuantity(qty)
		}
		removed = min(qty, held)
	}

	if err := c.catalog.Restore(it, removed); err != nil {
		return RemoveResult{}, err
	}

	var got int
	if all {
		got, err = c.cart.RemoveAll(it.Name)
	} else {
		got, err = c.cart.RemoveLine(it.Name, qty)
	}
	if err != nil {
		c.mustReserve(it, removed)
		return RemoveResult{}, err
	}
	if got != removed {
		panic(fmt.Sprintf("inventory: cart removed %d of %q but %d were restored", got, it.Name, removed))
	}

	c.metrics.reserved.Sub(float64(removed))
	c.log.Debug("restored", zap.String("item", it.Name), zap.Int("quantity", removed), zap.Int("stock", it.Stock()))
	return RemoveResult{Item: it.Name, Quantity: removed}, nil
}

func (c *Coordinator) Checkout() (CheckoutResult, error) {
	return c.CheckoutWith(nil)
}

// CheckoutWith hands the result to commit before the cart is cleared. If
// commit fails the checkout is abandoned and the cart stays as it was.
// Stock is not touched: it was taken when the units entered the cart.
func (c *Coordinator) CheckoutWith(commit func(CheckoutResult) error) (CheckoutResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	res, err := c.checkout(commit)
	c.metrics.observe(opCheckout, err)
	return res, err
}

func (c *Coordinator) checkout(commit func(CheckoutResult) error) (CheckoutResult, error) {
	if c.cart.IsEmpty() {
		return CheckoutResult{}, apperr.EmptyCart()
	}

	res := CheckoutResult{
		Total:     c.cart.Subtotal(),
		ItemCount: c.cart.TotalUnits(),
		Lines:     lineViews(c.cart.Lines()),
	}

	if commit != nil {
		if err := commit(res); err != nil {
			c.log.Warn("checkout commit failed", zap.Error(err))
			return CheckoutResult{}, fmt.Errorf("inventory: checkout commit: %w", err)
		}
	}

	c.cart.Clear()
	c.metrics.reserved.Sub(float64(res.ItemCount))
	c.metrics.sold.Add(res.Total.InexactFloat64())
	c.log.Info("checkout", zap.String("total", res.Total.StringFixed(2)), zap.Int("items", res.ItemCount))
	return res, nil
}

// The item comes from our own catalog and qty was just reserved or
// restored, so these cannot fail short of a bug.
func (c *Coordinator) mustRestore(it *catalog.Item, qty int) {
	if err := c.catalog.Restore(it, qty); err != nil {
		panic(fmt.Sprintf("inventory: rollback restore %q: %v", it.Name, err))
	}
}

func (c *Coordinator) mustReserve(it *catalog.Item, qty int) {
	if err := c.catalog.Reserve(it, qty); err != nil {
		panic(fmt.Sprintf("inventory: rollback reserve %q: %v", it.Name, err))
	}
}
