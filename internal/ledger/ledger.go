// Package ledger implements the sale-item lifecycle: ForSale → Sold →
// Shipped → Received. Each transition is guarded by the item's current
// state, the caller's recorded role and, for purchases, monetary
// correctness. All guards run before any mutation, and each mutating
// operation commits atomically or leaves the ledger untouched.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/zigam/sejem/internal/model"
)

// Ledger owns the item records and serializes all mutating operations with a
// single lock, held for the full guarded transaction. Contention is expected
// to be low; per-item locking would buy nothing here.
type Ledger struct {
	db  *sql.DB
	mu  sync.Mutex
	bus *Bus
}

// New creates a ledger on top of an opened database.
func New(db *sql.DB) *Ledger {
	return &Ledger{db: db, bus: NewBus()}
}

// Bus returns the ledger's event bus for external observers.
func (l *Ledger) Bus() *Bus {
	return l.bus
}

// List records a new item for sale under the caller's account and returns
// its id. Ids are allocated in strictly increasing order starting at 0.
// Any caller may list; fails with ErrInvalidInput on an empty name or
// non-positive price.
func (l *Ledger) List(ctx context.Context, name string, price, sellerID int64) (int64, error) {
	if name == "" || price <= 0 {
		return 0, ErrInvalidInput
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	// The seller must be a live account; a listing can never carry the
	// no-identity sentinel.
	var exists int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE id = ? AND deleted_at IS NULL`, sellerID,
	).Scan(&exists)
	if err != nil {
		return 0, fmt.Errorf("checking seller: %w", err)
	}
	if exists == 0 {
		return 0, ErrUnauthorized
	}

	// Explicit id allocation so the sequence starts at 0. The ledger lock is
	// the exclusive access to this counter.
	var id int64
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(id) + 1, 0) FROM items`,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("allocating item id: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO items (id, name, price, state, seller_id) VALUES (?, ?, ?, ?, ?)`,
		id, name, price, model.StateForSale, sellerID,
	)
	if err != nil {
		return 0, fmt.Errorf("creating item: %w", err)
	}

	if err := l.recordEvent(ctx, tx, id, model.EventListed); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing listing: %w", err)
	}

	l.bus.publish(model.Event{ItemID: id, Kind: model.EventListed, CreatedAt: time.Now()})
	slog.Info("item listed", "item", id, "seller", sellerID, "price", price)
	return id, nil
}

// Purchase buys an item for the caller, paying the attached amount from the
// caller's wallet. The listed price goes to the seller and any excess is
// refunded to the caller, both inside the same transaction as the state
// change. The refund is computed against the persisted price after the state
// mutation and seller payment are in place, never against a value that could
// change mid-call.
func (l *Ledger) Purchase(ctx context.Context, id, buyerID, amount int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	item, err := loadItem(ctx, tx, id)
	if err != nil {
		return err
	}

	// Guards, all before any mutation.
	if item.State != model.StateForSale || item.BuyerID != nil {
		return ErrNotForSale
	}
	if amount < item.Price {
		return ErrInsufficientPayment
	}

	// Record buyer and advance the state first.
	_, err = tx.ExecContext(ctx,
		`UPDATE items SET buyer_id = ?, state = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		buyerID, model.StateSold, id,
	)
	if err != nil {
		return fmt.Errorf("updating item: %w", err)
	}

	// Take the full attached amount from the buyer's wallet. The balance
	// check rides on the UPDATE so there is no read-then-write window.
	result, err := tx.ExecContext(ctx,
		`UPDATE users SET balance = balance - ?
		 WHERE id = ? AND balance >= ? AND deleted_at IS NULL`,
		amount, buyerID, amount,
	)
	if err != nil {
		return fmt.Errorf("debiting buyer: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrTransferFailed
	}

	// Pay the seller the listed price.
	result, err = tx.ExecContext(ctx,
		`UPDATE users SET balance = balance + ? WHERE id = ?`,
		item.Price, item.SellerID,
	)
	if err != nil {
		return fmt.Errorf("paying seller: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrTransferFailed
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO payments (item_id, from_user_id, to_user_id, amount, kind) VALUES (?, ?, ?, ?, ?)`,
		id, buyerID, item.SellerID, item.Price, model.PaymentKindPayment,
	)
	if err != nil {
		return fmt.Errorf("recording payment: %w", err)
	}

	// Refund the excess last, against the persisted price.
	if refund := amount - item.Price; refund > 0 {
		_, err = tx.ExecContext(ctx,
			`UPDATE users SET balance = balance + ? WHERE id = ?`,
			refund, buyerID,
		)
		if err != nil {
			return fmt.Errorf("refunding buyer: %w", err)
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO payments (item_id, to_user_id, amount, kind) VALUES (?, ?, ?, ?)`,
			id, buyerID, refund, model.PaymentKindRefund,
		)
		if err != nil {
			return fmt.Errorf("recording refund: %w", err)
		}
	}

	if err := l.recordEvent(ctx, tx, id, model.EventSold); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing purchase: %w", err)
	}

	l.bus.publish(model.Event{ItemID: id, Kind: model.EventSold, CreatedAt: time.Now()})
	slog.Info("item sold", "item", id, "buyer", buyerID, "price", item.Price, "refund", amount-item.Price)
	return nil
}

// Ship marks a sold item as shipped. Only the recorded seller may ship; a
// wrong caller gets ErrUnauthorized regardless of the item's state.
func (l *Ledger) Ship(ctx context.Context, id, callerID int64) error {
	return l.advance(ctx, id, callerID, roleSeller, model.StateSold, model.StateShipped, model.EventShipped, ErrNotSold)
}

// ConfirmReceipt marks a shipped item as received. Only the recorded buyer
// may confirm; a wrong caller gets ErrUnauthorized regardless of the item's
// state.
func (l *Ledger) ConfirmReceipt(ctx context.Context, id, callerID int64) error {
	return l.advance(ctx, id, callerID, roleBuyer, model.StateShipped, model.StateReceived, model.EventReceived, ErrNotShipped)
}

// Fetch returns a consistent snapshot of an item, or ErrNotFound. Reads run
// outside the ledger lock; the single query sees either the state before or
// after any concurrent transition, never between.
func (l *Ledger) Fetch(ctx context.Context, id int64) (*model.Item, error) {
	item := &model.Item{}
	var buyerName sql.NullString
	err := l.db.QueryRowContext(ctx,
		`SELECT i.id, i.name, i.price, i.state, i.seller_id, i.buyer_id,
		        COALESCE(i.image_mime, ''), i.created_at, i.updated_at,
		        s.username, b.username
		 FROM items i
		 JOIN users s ON s.id = i.seller_id
		 LEFT JOIN users b ON b.id = i.buyer_id
		 WHERE i.id = ?`, id,
	).Scan(&item.ID, &item.Name, &item.Price, &item.State, &item.SellerID, &item.BuyerID,
		&item.ImageMime, &item.CreatedAt, &item.UpdatedAt,
		&item.SellerName, &buyerName)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching item: %w", err)
	}
	item.StateName = item.State.String()
	item.BuyerName = buyerName.String
	return item, nil
}

// itemRow is the guard-relevant slice of an item.
type itemRow struct {
	Price    int64
	State    model.SaleState
	SellerID int64
	BuyerID  *int64
}

func loadItem(ctx context.Context, tx *sql.Tx, id int64) (*itemRow, error) {
	item := &itemRow{}
	err := tx.QueryRowContext(ctx,
		`SELECT price, state, seller_id, buyer_id FROM items WHERE id = ?`, id,
	).Scan(&item.Price, &item.State, &item.SellerID, &item.BuyerID)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading item: %w", err)
	}
	return item, nil
}

type role int

const (
	roleSeller role = iota
	roleBuyer
)

// advance performs the ship and confirm-receipt transitions, which share
// their guard shape: the caller must hold the required role and the item
// must sit exactly one state before the target.
func (l *Ledger) advance(ctx context.Context, id, callerID int64, required role, from, to model.SaleState, eventKind string, stateErr error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	item, err := loadItem(ctx, tx, id)
	if err != nil {
		return err
	}

	// Role is checked before the state guard: a wrong caller always gets
	// ErrUnauthorized, whatever state the item is in.
	switch required {
	case roleSeller:
		if callerID != item.SellerID {
			return ErrUnauthorized
		}
	case roleBuyer:
		if item.BuyerID == nil || callerID != *item.BuyerID {
			return ErrUnauthorized
		}
	}

	if item.State != from {
		return stateErr
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE items SET state = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		to, id,
	)
	if err != nil {
		return fmt.Errorf("updating item state: %w", err)
	}

	if err := l.recordEvent(ctx, tx, id, eventKind); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transition: %w", err)
	}

	l.bus.publish(model.Event{ItemID: id, Kind: eventKind, CreatedAt: time.Now()})
	slog.Info("item state advanced", "item", id, "state", to.String(), "caller", callerID)
	return nil
}

func (l *Ledger) recordEvent(ctx context.Context, tx *sql.Tx, itemID int64, kind string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO events (item_id, kind) VALUES (?, ?)`,
		itemID, kind,
	)
	if err != nil {
		return fmt.Errorf("recording event: %w", err)
	}
	return nil
}
