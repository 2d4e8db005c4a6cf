package api

import (
	"context"
	"database/sql"
	"net/http"
	"strconv"

	"github.com/zigam/sejem/internal/imaging"
	"github.com/zigam/sejem/internal/ledger"
	"github.com/zigam/sejem/internal/model"
	"github.com/zigam/sejem/internal/store"
)

// ItemsHandler handles the item lifecycle endpoints.
type ItemsHandler struct {
	DB     *sql.DB
	Ledger *ledger.Ledger
}

type listItemRequest struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

type purchaseRequest struct {
	Amount int64 `json:"amount"`
}

func itemID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil
}

// Create handles POST /api/items. The authenticated caller becomes the
// item's seller.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	if claims == nil {
		jsonError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req listItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := h.Ledger.List(r.Context(), req.Name, req.Price, claims.UserID)
	if err != nil {
		ledgerError(w, err)
		return
	}

	item, err := h.Ledger.Fetch(r.Context(), id)
	if err != nil {
		ledgerError(w, err)
		return
	}
	jsonResponse(w, http.StatusCreated, item)
}

// Get handles GET /api/items/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	item, err := h.Ledger.Fetch(r.Context(), id)
	if err != nil {
		ledgerError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Purchase handles POST /api/items/{id}/purchase. The request body carries
// the attached payment amount, drawn from the caller's wallet.
func (h *ItemsHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	if claims == nil {
		jsonError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	id, ok := itemID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	var req purchaseRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Amount <= 0 {
		jsonError(w, http.StatusBadRequest, "amount must be positive")
		return
	}

	if err := h.Ledger.Purchase(r.Context(), id, claims.UserID, req.Amount); err != nil {
		ledgerError(w, err)
		return
	}

	item, err := h.Ledger.Fetch(r.Context(), id)
	if err != nil {
		ledgerError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Ship handles POST /api/items/{id}/ship.
func (h *ItemsHandler) Ship(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Ledger.Ship)
}

// Receive handles POST /api/items/{id}/receive.
func (h *ItemsHandler) Receive(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Ledger.ConfirmReceipt)
}

// transition runs a caller-gated state transition and returns the updated
// item snapshot.
func (h *ItemsHandler) transition(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, id, callerID int64) error) {
	claims := GetClaims(r.Context())
	if claims == nil {
		jsonError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	id, ok := itemID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	if err := op(r.Context(), id, claims.UserID); err != nil {
		ledgerError(w, err)
		return
	}

	item, err := h.Ledger.Fetch(r.Context(), id)
	if err != nil {
		ledgerError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// GetEvents handles GET /api/items/{id}/events.
func (h *ItemsHandler) GetEvents(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	// Existence check so an unknown id is a 404, not an empty trail.
	if _, err := h.Ledger.Fetch(r.Context(), id); err != nil {
		ledgerError(w, err)
		return
	}

	events, err := store.ListItemEvents(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list item events")
		return
	}
	if events == nil {
		events = []model.Event{}
	}
	jsonResponse(w, http.StatusOK, events)
}

// UploadImage handles PUT /api/items/{id}/image. Only the seller may attach
// a photo to a listing.
func (h *ItemsHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	if claims == nil {
		jsonError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	id, ok := itemID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	item, err := h.Ledger.Fetch(r.Context(), id)
	if err != nil {
		ledgerError(w, err)
		return
	}
	if item.SellerID != claims.UserID {
		jsonError(w, http.StatusForbidden, "only the seller may update the listing photo")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, imaging.MaxUploadBytes)

	if err := r.ParseMultipartForm(imaging.MaxUploadBytes); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "image file required")
		return
	}
	defer file.Close()

	photo, err := imaging.ProcessPhoto(file)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := store.SetItemImage(r.Context(), h.DB, id, photo.Data, photo.MIME); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to save image")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "image uploaded"})
}

// GetImage handles GET /api/items/{id}/image.
func (h *ItemsHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	data, mime, err := store.GetItemImage(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get image")
		return
	}
	if data == nil {
		jsonError(w, http.StatusNotFound, "no image")
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(data)
}
