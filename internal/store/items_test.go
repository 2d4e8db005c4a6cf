package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/zigam/sejem/internal/db"
)

// insertItem creates a minimal item row directly; the full listing flow is
// the ledger's job and tested there.
func insertItem(t *testing.T, database *sql.DB, sellerID int64) int64 {
	t.Helper()
	_, err := database.Exec(
		`INSERT INTO items (id, name, price, seller_id) VALUES (0, 'Widget', 100, ?)`,
		sellerID,
	)
	if err != nil {
		t.Fatalf("inserting item: %v", err)
	}
	return 0
}

func TestItemImageRoundTrip(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, _ := CreateUser(ctx, database, "seller", "hash")
	id := insertItem(t, database, user.ID)

	if err := SetItemImage(ctx, database, id, []byte("fake image data"), "image/jpeg"); err != nil {
		t.Fatalf("SetItemImage: %v", err)
	}

	data, mime, err := GetItemImage(ctx, database, id)
	if err != nil {
		t.Fatalf("GetItemImage: %v", err)
	}
	if string(data) != "fake image data" {
		t.Errorf("expected image data, got %q", string(data))
	}
	if mime != "image/jpeg" {
		t.Errorf("expected mime 'image/jpeg', got %q", mime)
	}
}

func TestItemImageMissing(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, _ := CreateUser(ctx, database, "seller", "hash")
	id := insertItem(t, database, user.ID)

	data, mime, err := GetItemImage(ctx, database, id)
	if err != nil {
		t.Fatalf("GetItemImage: %v", err)
	}
	if data != nil || mime != "" {
		t.Errorf("expected no image, got %d bytes (%q)", len(data), mime)
	}
}

func TestSetItemImageUnknownItem(t *testing.T) {
	database := db.NewTestDB(t)

	if err := SetItemImage(context.Background(), database, 42, []byte("x"), "image/jpeg"); err == nil {
		t.Error("expected error for unknown item")
	}
}

func TestListItemEventsEmpty(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, _ := CreateUser(ctx, database, "seller", "hash")
	id := insertItem(t, database, user.ID)

	events, err := ListItemEvents(ctx, database, id)
	if err != nil {
		t.Fatalf("ListItemEvents: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("expected no events, got %d", len(events))
	}
}
