package ledger

import "errors"

// Every rejected operation surfaces exactly one of these. Guard failures are
// detected before any mutation, so a returned error always means the ledger
// is unchanged.
var (
	// ErrInvalidInput rejects a listing with an empty name or non-positive price.
	ErrInvalidInput = errors.New("name must be non-empty and price positive")

	// ErrNotFound means no item exists at the given id.
	ErrNotFound = errors.New("item not found")

	// ErrNotForSale rejects a purchase of an item that is not in the for-sale state.
	ErrNotForSale = errors.New("item is not for sale")

	// ErrNotSold rejects a shipment of an item that has not been sold.
	ErrNotSold = errors.New("item has not been sold")

	// ErrNotShipped rejects a receipt confirmation for an item that has not shipped.
	ErrNotShipped = errors.New("item has not been shipped")

	// ErrInsufficientPayment rejects a purchase paying less than the listed price.
	ErrInsufficientPayment = errors.New("payment is below the listed price")

	// ErrUnauthorized rejects a caller who does not hold the role the
	// operation requires (seller for ship, buyer for receipt).
	ErrUnauthorized = errors.New("caller is not authorized for this operation")

	// ErrTransferFailed means the value transfer could not be completed,
	// typically because the buyer's wallet does not cover the attached amount.
	ErrTransferFailed = errors.New("value transfer failed")
)
