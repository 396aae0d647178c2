// Package console is the interactive line-oriented shop front end.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"MiniShop/internal/apperr"
	"MiniShop/internal/inventory"
	"MiniShop/internal/receipt"
)

const prompt = "\nWhat would you like to do? "

type Session struct {
	coord    *inventory.Coordinator
	out      io.Writer
	log      *zap.Logger
	receipts receipt.Store
}

type Option func(*Session)

func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithReceipts stores a receipt for each checkout. Without it checkouts are
// not recorded anywhere.
func WithReceipts(st receipt.Store) Option {
	return func(s *Session) { s.receipts = st }
}

func NewSession(coord *inventory.Coordinator, out io.Writer, opts ...Option) *Session {
	s := &Session{coord: coord, out: out, log: zap.NewNop()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Run reads commands from in until exit, end of input, ctx cancellation or
// a successful checkout.
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	s.banner()

	sc := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(s.out, prompt)
		if !sc.Scan() {
			fmt.Fprintln(s.out)
			return sc.Err()
		}

		line := sc.Text()
		if line == "" {
			continue
		}

		cmd, err := ParseLine(line)
		if err != nil {
			s.say(capitalize(err.Error()) + ".")
			continue
		}

		s.log.Debug("command", zap.String("action", cmd.Action), zap.String("term", cmd.Term), zap.Int("quantity", cmd.Quantity))
		if done := s.exec(ctx, cmd); done {
			return nil
		}
	}
}

func (s *Session) banner() {
	fmt.Fprint(s.out, `Welcome to the Online Store!
========================================
Available actions:
  search_by_name <term>
  add_item <name> [quantity]
  remove_item <name> [quantity]
  show_item <name>
  show_cart
  show_store
  checkout
  exit
`)
}

func (s *Session) exec(ctx context.Context, cmd Command) bool {
	switch cmd.Action {
	case actExit:
		s.say("Thank you for shopping with us!")
		return true

	case actSearch:
		writeSearch(s.out, s.coord.Search(cmd.Term))

	case actShowItem:
		it, err := s.coord.Lookup(cmd.Term)
		if err != nil {
			s.fail(err)
			return false
		}
		writeItem(s.out, it)

	case actShowCart:
		writeCart(s.out, s.coord.PeekCart())

	case actShowShop:
		writeStore(s.out, s.coord.Listing())

	case actAdd:
		qty := cmd.Quantity
		if qty == 0 {
			qty = 1
		}
		res, err := s.coord.AddToCart(cmd.Term, qty)
		if err != nil {
			s.fail(err)
			return false
		}
		s.say(addedMessage(res))

	case actRemove:
		var (
			res inventory.RemoveResult
			err error
		)
		if cmd.Quantity == 0 {
			res, err = s.coord.RemoveAllFromCart(cmd.Term)
		} else {
			res, err = s.coord.RemoveFromCart(cmd.Term, cmd.Quantity)
		}
		if err != nil {
			s.fail(err)
			return false
		}
		s.say(removedMessage(res))

	case actCheckout:
		res, err := s.coord.CheckoutWith(s.commit(ctx))
		if err != nil {
			s.fail(err)
			return false
		}
		s.say(checkoutMessage(res))
		return true
	}
	return false
}

func (s *Session) commit(ctx context.Context) func(inventory.CheckoutResult) error {
	if s.receipts == nil {
		return nil
	}
	return func(res inventory.CheckoutResult) error {
		rc, err := receipt.FromCheckout(res)
		if err != nil {
			return err
		}
		if err := s.receipts.Create(ctx, rc); err != nil {
			return err
		}
		s.log.Info("receipt stored", zap.String("receipt_id", rc.ID))
		return nil
	}
}

func (s *Session) say(msg string) { fmt.Fprintln(s.out, msg) }

// fail prints store errors as the user-facing message. Anything else is
// unexpected and gets logged.
func (s *Session) fail(err error) {
	if apperr.KindOf(err) == apperr.KindUnknown {
		s.log.Error("command failed", zap.Error(err))
		s.say("An error occurred: " + err.Error())
		return
	}
	s.say(capitalize(err.Error()))
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
