// Package shared holds the JSON response helpers used by every HTTP
// handler.
package shared

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "casefile/pkg/domain-errors"
)

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// WriteJSON encodes payload with the given status.
func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// WriteError maps a domain error to its HTTP status and writes the error
// envelope. Non-domain errors become 500s without leaking detail.
func WriteError(w http.ResponseWriter, err error) {
	var domainErr *dErrors.Error
	if errors.As(err, &domainErr) {
		WriteJSON(w, dErrors.ToHTTPStatus(domainErr.Code), ErrorResponse{
			Error: domainErr.Message,
			Code:  string(domainErr.Code),
		})
		return
	}
	WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error: "internal error",
		Code:  string(dErrors.CodeInternal),
	})
}
