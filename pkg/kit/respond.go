package kit

import (
	"encoding/json"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type ErrorResponse struct {
	Error     string `json:"error"`
	Kind      string `json:"kind,omitempty"`
	Details   any    `json:"details,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes an ErrorResponse stamped with the chi request id.
func WriteError(w http.ResponseWriter, r *http.Request, status int, msg, kind string, details any) {
	WriteJSON(w, status, ErrorResponse{
		Error:     msg,
		Kind:      kind,
		Details:   details,
		RequestID: chimw.GetReqID(r.Context()),
	})
}
