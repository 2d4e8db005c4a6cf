package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/zigam/sejem/internal/ledger"
)

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("encoding response", "error", err)
		}
	}
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}

// ledgerError maps a ledger error to its HTTP status and writes it. Every
// rejection carries the specific error kind back to the caller.
func ledgerError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ledger.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, ledger.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, ledger.ErrUnauthorized):
		status = http.StatusForbidden
	case errors.Is(err, ledger.ErrNotForSale),
		errors.Is(err, ledger.ErrNotSold),
		errors.Is(err, ledger.ErrNotShipped):
		status = http.StatusConflict
	case errors.Is(err, ledger.ErrInsufficientPayment),
		errors.Is(err, ledger.ErrTransferFailed):
		status = http.StatusPaymentRequired
	default:
		slog.Error("ledger operation failed", "error", err)
		jsonError(w, status, "internal error")
		return
	}
	jsonError(w, status, err.Error())
}
