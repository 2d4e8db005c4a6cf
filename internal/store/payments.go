package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/zigam/sejem/internal/model"
)

// Deposit credits a user's wallet with external funds and records the
// movement, in a single transaction. Deposits are the only way value enters
// the system; every other movement happens inside a purchase.
func Deposit(ctx context.Context, db *sql.DB, userID, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("deposit amount must be positive")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE users SET balance = balance + ? WHERE id = ? AND deleted_at IS NULL`,
		amount, userID,
	)
	if err != nil {
		return fmt.Errorf("crediting wallet: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("user not found")
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO payments (to_user_id, amount, kind) VALUES (?, ?, ?)`,
		userID, amount, model.PaymentKindDeposit,
	)
	if err != nil {
		return fmt.Errorf("recording deposit: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing deposit: %w", err)
	}
	return nil
}

// ListUserPayments returns all money movements that touched a user's wallet,
// newest first.
func ListUserPayments(ctx context.Context, db *sql.DB, userID int64) ([]model.Payment, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT p.id, p.item_id, p.from_user_id, p.to_user_id, p.amount, p.kind, p.created_at,
		        COALESCE(i.name, '') AS item_name
		 FROM payments p
		 LEFT JOIN items i ON i.id = p.item_id
		 WHERE p.to_user_id = ? OR p.from_user_id = ?
		 ORDER BY p.created_at DESC, p.id DESC`, userID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}
	defer rows.Close()

	var payments []model.Payment
	for rows.Next() {
		var p model.Payment
		if err := rows.Scan(&p.ID, &p.ItemID, &p.FromUserID, &p.ToUserID, &p.Amount, &p.Kind, &p.CreatedAt, &p.ItemName); err != nil {
			return nil, fmt.Errorf("scanning payment: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
