package api

import (
	"encoding/json"
	"net/http"
)

// ErrorEnvelope is the error body for every non-2xx response: a single
// human-readable message, which is what the webhook relays log verbatim.
type ErrorEnvelope struct {
	Error string `json:"error"`
}

func WriteError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(ErrorEnvelope{Error: message})
}

// WriteJSON encodes a 2xx response body.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(body)
}
