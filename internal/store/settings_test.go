package store

import (
	"context"
	"testing"

	"github.com/zigam/sejem/internal/db"
)

func TestGetJWTSecretGeneratesOnce(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	first, err := GetJWTSecret(ctx, database)
	if err != nil {
		t.Fatalf("GetJWTSecret: %v", err)
	}
	if first == "" {
		t.Fatal("expected non-empty secret")
	}

	second, err := GetJWTSecret(ctx, database)
	if err != nil {
		t.Fatalf("GetJWTSecret: %v", err)
	}
	if second != first {
		t.Error("expected the persisted secret to be stable across calls")
	}
}
