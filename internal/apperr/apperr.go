// Package apperr defines the error kinds shared by the catalog, cart and
// inventory packages. Every expected failure of a store operation is an
// *Error carrying one Kind plus the identifiers and counts that explain it.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidCatalogRecord
	KindItemNotFound
	KindAmbiguousMatch
	KindInsufficientStock
	KindItemNotInCart
	KindInvalidQuantity
	KindEmptyCart
)

func (k Kind) String() string {
	switch k {
	case KindInvalidCatalogRecord:
		return "invalid_catalog_record"
	case KindItemNotFound:
		return "item_not_found"
	case KindAmbiguousMatch:
		return "ambiguous_match"
	case KindInsufficientStock:
		return "insufficient_stock"
	case KindItemNotInCart:
		return "item_not_in_cart"
	case KindInvalidQuantity:
		return "invalid_quantity"
	case KindEmptyCart:
		return "empty_cart"
	default:
		return "unknown"
	}
}

// Error is a failed store operation. Only the fields relevant to Kind are set.
type Error struct {
	Kind Kind

	Term    string
	Item    string
	Matches []string

	Available int
	InCart    int
	Requested int
	Quantity  int

	Record int
	Reason string
}

// Sentinels for errors.Is; they match any *Error of the same Kind.
var (
	ErrInvalidCatalogRecord = &Error{Kind: KindInvalidCatalogRecord}
	ErrItemNotFound         = &Error{Kind: KindItemNotFound}
	ErrAmbiguousMatch       = &Error{Kind: KindAmbiguousMatch}
	ErrInsufficientStock    = &Error{Kind: KindInsufficientStock}
	ErrItemNotInCart        = &Error{Kind: KindItemNotInCart}
	ErrInvalidQuantity      = &Error{Kind: KindInvalidQuantity}
	ErrEmptyCart            = &Error{Kind: KindEmptyCart}
)

func (e *Error) Error() string {
	switch e.Kind {
	case KindInvalidCatalogRecord:
		return fmt.Sprintf("invalid catalog record %d: %s", e.Record, e.Reason)
	case KindItemNotFound:
		return fmt.Sprintf("item '%s' not found", e.Term)
	case KindAmbiguousMatch:
		return fmt.Sprintf("'%s' matches multiple items: %s", e.Term, strings.Join(e.Matches, ", "))
	case KindInsufficientStock:
		return fmt.Sprintf("not enough stock for '%s': available %d, in cart %d, requested %d",
			e.Item, e.Available, e.InCart, e.Requested)
	case KindItemNotInCart:
		return fmt.Sprintf("'%s' not in cart", e.Item)
	case KindInvalidQuantity:
		return fmt.Sprintf("quantity must be positive, got %d", e.Quantity)
	case KindEmptyCart:
		return "cart is empty"
	default:
		return "store error"
	}
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// KindOf reports the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func NotFound(term string) *Error {
	return &Error{Kind: KindItemNotFound, Term: term}
}

func Ambiguous(term string, matches []string) *Error {
	return &Error{Kind: KindAmbiguousMatch, Term: term, Matches: matches}
}

func InsufficientStock(item string, available, inCart, requested int) *Error {
	return &Error{
		Kind:      KindInsufficientStock,
		Item:      item,
		Available: available,
		InCart:    inCart,
		Requested: requested,
	}
}

func NotInCart(item string) *Error {
	return &Error{Kind: KindItemNotInCart, Item: item}
}

func InvalidQuantity(qty int) *Error {
	return &Error{Kind: KindInvalidQuantity, Quantity: qty}
}

func EmptyCart() *Error {
	return &Error{Kind: KindEmptyCart}
}

func InvalidRecord(index int, reason string) *Error {
	return &Error{Kind: KindInvalidCatalogRecord, Record: index, Reason: reason}
}
