package handlers

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the body of every failed request. Kind is a stable
// machine-readable class such as "division_by_zero".
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes a standardised JSON error response.
func WriteError(w http.ResponseWriter, status int, msg, kind string) {
	WriteJSON(w, status, ErrorResponse{Error: msg, Kind: kind})
}
