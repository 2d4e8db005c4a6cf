package model

import "time"

// Event kinds, one per lifecycle transition.
const (
	EventListed   = "listed"
	EventSold     = "sold"
	EventShipped  = "shipped"
	EventReceived = "received"
)

// Event records one lifecycle transition of an item. Events are written in
// the same transaction as the transition itself, so the trail can never
// disagree with the item's state.
type Event struct {
	ID        int64     `json:"id"`
	ItemID    int64     `json:"item_id"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}
