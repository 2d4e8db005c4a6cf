package api

import (
	"database/sql"
	"net/http"

	"github.com/zigam/sejem/internal/model"
	"github.com/zigam/sejem/internal/store"
)

// WalletHandler handles wallet endpoints. Deposits only ever credit the
// authenticated caller's own wallet; value reaches anyone else solely
// through a purchase.
type WalletHandler struct {
	DB *sql.DB
}

type depositRequest struct {
	Amount int64 `json:"amount"`
}

// Get handles GET /api/wallet.
func (h *WalletHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	if claims == nil {
		jsonError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	user, err := store.GetUser(r.Context(), h.DB, claims.UserID)
	if err != nil || user == nil {
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]any{
		"user_id": user.ID,
		"balance": user.Balance,
	})
}

// Deposit handles POST /api/wallet/deposit.
func (h *WalletHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	if claims == nil {
		jsonError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req depositRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Amount <= 0 {
		jsonError(w, http.StatusBadRequest, "amount must be positive")
		return
	}

	if err := store.Deposit(r.Context(), h.DB, claims.UserID, req.Amount); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to deposit")
		return
	}

	user, err := store.GetUser(r.Context(), h.DB, claims.UserID)
	if err != nil || user == nil {
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]any{
		"user_id": user.ID,
		"balance": user.Balance,
	})
}

// Payments handles GET /api/wallet/payments.
func (h *WalletHandler) Payments(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	if claims == nil {
		jsonError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	payments, err := store.ListUserPayments(r.Context(), h.DB, claims.UserID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list payments")
		return
	}
	if payments == nil {
		payments = []model.Payment{}
	}
	jsonResponse(w, http.StatusOK, payments)
}
