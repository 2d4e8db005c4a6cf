package model

import "time"

// SaleState is the lifecycle state of a sale item. States are stored and
// exposed as ordinals, so the order of the constants is part of the contract.
type SaleState int

// Lifecycle states, in the only order they can be traversed.
const (
	StateForSale SaleState = iota
	StateSold
	StateShipped
	StateReceived
)

// String returns the wire name of the state.
func (s SaleState) String() string {
	switch s {
	case StateForSale:
		return "for_sale"
	case StateSold:
		return "sold"
	case StateShipped:
		return "shipped"
	case StateReceived:
		return "received"
	}
	return "unknown"
}

// Valid reports whether s is one of the four lifecycle states.
func (s SaleState) Valid() bool {
	return s >= StateForSale && s <= StateReceived
}

// Item represents a single tracked sale record. Name, price and seller are
// immutable after listing; BuyerID is nil until the item is purchased and
// immutable afterwards. Items are never deleted — the row is the sale's
// permanent history.
type Item struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Price     int64     `json:"price"`
	State     SaleState `json:"state"`
	StateName string    `json:"state_name"`
	SellerID  int64     `json:"seller_id"`
	BuyerID   *int64    `json:"buyer_id,omitempty"`
	ImageMime string    `json:"image_mime,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Joined fields (not always populated).
	SellerName string `json:"seller_name,omitempty"`
	BuyerName  string `json:"buyer_name,omitempty"`
}
