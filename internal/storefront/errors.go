package storefront

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"MiniShop/internal/apperr"
	"MiniShop/pkg/kit"
)

func statusFor(k apperr.Kind) int {
	switch k {
	case apperr.KindItemNotFound:
		return http.StatusNotFound
	case apperr.KindAmbiguousMatch,
		apperr.KindInsufficientStock,
		apperr.KindItemNotInCart,
		apperr.KindEmptyCart:
		return http.StatusConflict
	case apperr.KindInvalidQuantity:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func details(e *apperr.Error) map[string]any {
	switch e.Kind {
	case apperr.KindItemNotFound:
		return map[string]any{"term": e.Term}
	case apperr.KindAmbiguousMatch:
		return map[string]any{"term": e.Term, "matches": e.Matches}
	case apperr.KindInsufficientStock:
		return map[string]any{
			"item":      e.Item,
			"available": e.Available,
			"in_cart":   e.InCart,
			"requested": e.Requested,
		}
	case apperr.KindItemNotInCart:
		return map[string]any{"item": e.Item}
	case apperr.KindInvalidQuantity:
		return map[string]any{"quantity": e.Quantity}
	default:
		return nil
	}
}

func (s *Server) writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		kit.WriteError(w, r, statusFor(ae.Kind), ae.Error(), ae.Kind.String(), details(ae))
		return
	}

	if isTimeoutErr(err) {
		kit.WriteError(w, r, http.StatusGatewayTimeout, "timeout", "", nil)
		return
	}

	s.logger().Error("store operation failed", zap.Error(err))
	kit.WriteError(w, r, http.StatusInternalServerError, "server error", "", nil)
}
