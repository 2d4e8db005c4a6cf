package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/zigam/sejem/internal/model"
)

// ListItemEvents returns the lifecycle trail of an item, oldest first.
// Events are inserted by the ledger in the same transaction as the
// transition they record.
func ListItemEvents(ctx context.Context, db *sql.DB, itemID int64) ([]model.Event, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, item_id, kind, created_at FROM events
		 WHERE item_id = ? ORDER BY id`, itemID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing item events: %w", err)
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(&e.ID, &e.ItemID, &e.Kind, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
