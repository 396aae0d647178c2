package storefront

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"MiniShop/internal/apperr"
	"MiniShop/internal/inventory"
	"MiniShop/internal/receipt"
	"MiniShop/pkg/kit"
)

type Server struct {
	Coord    *inventory.Coordinator
	Receipts receipt.Store
	Log      *zap.Logger
}

type addReq struct {
	Name     string `json:"name"`
	Quantity *int   `json:"quantity,omitempty"`
}

const maxBody = 64 << 10

func (s *Server) Routes(limit func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/items", s.listItems)
	r.Get("/items/{term}", s.getItem)
	r.Get("/search", s.search)
	r.Get("/cart", s.getCart)
	r.Get("/receipts/{id}", s.getReceipt)

	r.Group(func(mr chi.Router) {
		mr.Use(limit)
		mr.Post("/cart/items", s.addItem)
		mr.Delete("/cart/items/{term}", s.removeItem)
		mr.Post("/checkout", s.checkout)
	})

	return r
}

func (s *Server) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}

func (s *Server) listItems(w http.ResponseWriter, r *http.Request) {
	kit.WriteJSON(w, http.StatusOK, s.Coord.Listing())
}

func (s *Server) getItem(w http.ResponseWriter, r *http.Request) {
	v, err := s.Coord.Lookup(chi.URLParam(r, "term"))
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, v)
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	kit.WriteJSON(w, http.StatusOK, s.Coord.Search(r.URL.Query().Get("q")))
}

func (s *Server) getCart(w http.ResponseWriter, r *http.Request) {
	kit.WriteJSON(w, http.StatusOK, s.Coord.PeekCart())
}

func (s *Server) addItem(w http.ResponseWriter, r *http.Request) {
	req, err := decodeAddRequest(w, r)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", "", nil)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		kit.WriteError(w, r, http.StatusBadRequest, "name required", "", nil)
		return
	}

	var res inventory.AddResult
	if req.Quantity == nil {
		res, err = s.Coord.AddOne(req.Name)
	} else {
		res, err = s.Coord.AddToCart(req.Name, *req.Quantity)
	}
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, res)
}

func (s *Server) removeItem(w http.ResponseWriter, r *http.Request) {
	term := chi.URLParam(r, "term")

	var (
		res inventory.RemoveResult
		err error
	)
	if raw := r.URL.Query().Get("quantity"); raw == "" {
		res, err = s.Coord.RemoveAllFromCart(term)
	} else {
		qty, perr := strconv.Atoi(raw)
		if perr != nil {
			kit.WriteError(w, r, http.StatusBadRequest, "quantity must be an integer",
				apperr.KindInvalidQuantity.String(), map[string]any{"quantity": raw})
			return
		}
		res, err = s.Coord.RemoveFromCart(term, qty)
	}
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, res)
}

// checkout stores the receipt inside the cart commit, so a failed write
// leaves the cart exactly as it was.
func (s *Server) checkout(w http.ResponseWriter, r *http.Request) {
	var saved receipt.Receipt

	_, err := s.Coord.CheckoutWith(func(res inventory.CheckoutResult) error {
		rc, err := receipt.FromCheckout(res)
		if err != nil {
			return err
		}
		if err := s.Receipts.Create(r.Context(), rc); err != nil {
			return err
		}
		saved = rc
		return nil
	})
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}

	s.logger().Info("receipt stored", zap.String("receipt_id", saved.ID))
	kit.WriteJSON(w, http.StatusCreated, saved)
}

func (s *Server) getReceipt(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rc, found, err := s.Receipts.Get(r.Context(), id)
	if err != nil {
		s.logger().Error("receipt get failed", zap.Error(err), zap.String("receipt_id", id))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", "", nil)
		return
	}
	if !found {
		kit.WriteError(w, r, http.StatusNotFound, "not found", "", map[string]any{"id": id})
		return
	}
	kit.WriteJSON(w, http.StatusOK, rc)
}

func decodeAddRequest(w http.ResponseWriter, r *http.Request) (addReq, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)
	defer func() { _ = r.Body.Close() }()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req addReq
	if err := dec.Decode(&req); err != nil {
		return addReq{}, err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return addReq{}, errors.New("extra data after json object")
	}
	return req, nil
}

func isTimeoutErr(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}
