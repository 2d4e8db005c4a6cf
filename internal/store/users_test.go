package store

import (
	"context"
	"testing"

	"github.com/zigam/sejem/internal/db"
)

func TestCreateAndGetUser(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, err := CreateUser(ctx, database, "alice", "hash123")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if user.Username != "alice" {
		t.Errorf("expected username 'alice', got %q", user.Username)
	}
	if user.Balance != 0 {
		t.Errorf("expected empty wallet, got %d", user.Balance)
	}

	got, err := GetUser(ctx, database, user.ID)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if got == nil || got.Username != "alice" {
		t.Errorf("GetUser returned %+v", got)
	}
}

func TestGetUserByUsername(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	CreateUser(ctx, database, "bob", "hash")

	got, err := GetUserByUsername(ctx, database, "bob")
	if err != nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}
	if got == nil {
		t.Fatal("expected user, got nil")
	}

	missing, err := GetUserByUsername(ctx, database, "nobody")
	if err != nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for unknown username, got %+v", missing)
	}
}

func TestDuplicateUsernameRejected(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if _, err := CreateUser(ctx, database, "carol", "hash"); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if _, err := CreateUser(ctx, database, "carol", "hash"); err == nil {
		t.Error("expected error for duplicate username")
	}
}

func TestUpdateUserPassword(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, _ := CreateUser(ctx, database, "dave", "old")
	if err := UpdateUserPassword(ctx, database, user.ID, "new"); err != nil {
		t.Fatalf("UpdateUserPassword: %v", err)
	}

	got, _ := GetUser(ctx, database, user.ID)
	if got.PasswordHash != "new" {
		t.Errorf("expected updated hash, got %q", got.PasswordHash)
	}
}
