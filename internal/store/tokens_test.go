package store

import (
	"context"
	"testing"
	"time"

	"github.com/zigam/sejem/internal/db"
)

func TestRevokeAndCheckToken(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	revoked, err := IsTokenRevoked(ctx, database, "jti-1")
	if err != nil {
		t.Fatalf("IsTokenRevoked: %v", err)
	}
	if revoked {
		t.Error("expected token not revoked initially")
	}

	if err := RevokeToken(ctx, database, "jti-1", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("RevokeToken: %v", err)
	}

	revoked, err = IsTokenRevoked(ctx, database, "jti-1")
	if err != nil {
		t.Fatalf("IsTokenRevoked: %v", err)
	}
	if !revoked {
		t.Error("expected token revoked")
	}
}

func TestRevokeTokenIdempotent(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	expiry := time.Now().Add(time.Hour)
	if err := RevokeToken(ctx, database, "jti-2", expiry); err != nil {
		t.Fatalf("RevokeToken: %v", err)
	}
	if err := RevokeToken(ctx, database, "jti-2", expiry); err != nil {
		t.Fatalf("RevokeToken (repeat): %v", err)
	}
}

func TestExpiredRevocationsCleanedUp(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	// Already-expired revocation gets swept by the next revoke call.
	RevokeToken(ctx, database, "old", time.Now().Add(-time.Hour))
	RevokeToken(ctx, database, "new", time.Now().Add(time.Hour))

	revoked, _ := IsTokenRevoked(ctx, database, "old")
	if revoked {
		t.Error("expected expired revocation to be cleaned up")
	}
}
