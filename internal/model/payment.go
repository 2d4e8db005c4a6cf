package model

import "time"

// Payment kinds.
const (
	PaymentKindDeposit = "deposit" // external funds credited to a wallet
	PaymentKindPayment = "payment" // listed price moved from buyer to seller
	PaymentKindRefund  = "refund"  // overpayment returned to the buyer
)

// Payment is one append-only money-movement record. FromUserID is nil for
// deposits and refunds, where the credited funds enter from outside any
// wallet (a deposit) or from the payment attached to a purchase (a refund).
type Payment struct {
	ID         int64     `json:"id"`
	ItemID     *int64    `json:"item_id,omitempty"`
	FromUserID *int64    `json:"from_user_id,omitempty"`
	ToUserID   int64     `json:"to_user_id"`
	Amount     int64     `json:"amount"`
	Kind       string    `json:"kind"`
	CreatedAt  time.Time `json:"created_at"`

	// Joined fields (not always populated).
	ItemName string `json:"item_name,omitempty"`
}
