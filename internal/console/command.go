package console

import (
	"errors"
	"strconv"
	"strings"
)

const (
	actSearch   = "search_by_name"
	actAdd      = "add_item"
	actRemove   = "remove_item"
	actShowItem = "show_item"
	actShowCart = "show_cart"
	actShowShop = "show_store"
	actCheckout = "checkout"
	actExit     = "exit"
)

var (
	ErrUnknownAction = errors.New("invalid action. Try: search_by_name, add_item, remove_item, show_item, show_cart, show_store, checkout, exit")
	ErrNoName        = errors.New("please specify an item name")
	ErrNoTerm        = errors.New("please provide a search term")
	ErrBadQuantity   = errors.New("quantity must be positive")
)

// Command is one parsed input line. Quantity is zero when the line did not
// end in a number.
type Command struct {
	Action   string
	Term     string
	Quantity int
}

func ParseLine(line string) (Command, error) {
	action, params, _ := strings.Cut(strings.TrimSpace(line), " ")
	params = strings.TrimSpace(params)

	switch action {
	case actShowCart, actShowShop, actCheckout, actExit:
		return Command{Action: action}, nil

	case actSearch:
		if params == "" {
			return Command{}, ErrNoTerm
		}
		return Command{Action: action, Term: params}, nil

	case actShowItem:
		if params == "" {
			return Command{}, ErrNoName
		}
		return Command{Action: action, Term: params}, nil

	case actAdd, actRemove:
		name, qty, err := splitQuantity(params)
		if err != nil {
			return Command{}, err
		}
		return Command{Action: action, Term: name, Quantity: qty}, nil

	default:
		return Command{}, ErrUnknownAction
	}
}

// splitQuantity treats a trailing integer as the quantity. Any other last
// word belongs to the name, so "add_item Size 9 shoe" names "Size 9 shoe".
func splitQuantity(params string) (string, int, error) {
	if params == "" {
		return "", 0, ErrNoName
	}

	i := strings.LastIndexByte(params, ' ')
	if i < 0 {
		return params, 0, nil
	}

	qty, err := strconv.Atoi(params[i+1:])
	if err != nil {
		return params, 0, nil
	}
	if qty <= 0 {
		return "", 0, ErrBadQuantity
	}

	name := strings.TrimSpace(params[:i])
	if name == "" {
		return "", 0, ErrNoName
	}
	return name, qty, nil
}
