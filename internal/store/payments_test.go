package store

import (
	"context"
	"testing"

	"github.com/zigam/sejem/internal/db"
	"github.com/zigam/sejem/internal/model"
)

func TestDepositCreditsWallet(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, _ := CreateUser(ctx, database, "alice", "hash")

	if err := Deposit(ctx, database, user.ID, 500); err != nil {
		t.Fatalf("Deposit: %v", err)
	}
	if err := Deposit(ctx, database, user.ID, 250); err != nil {
		t.Fatalf("Deposit: %v", err)
	}

	got, _ := GetUser(ctx, database, user.ID)
	if got.Balance != 750 {
		t.Errorf("expected balance 750, got %d", got.Balance)
	}
}

func TestDepositRejectsNonPositiveAmount(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, _ := CreateUser(ctx, database, "alice", "hash")

	if err := Deposit(ctx, database, user.ID, 0); err == nil {
		t.Error("expected error for zero deposit")
	}
	if err := Deposit(ctx, database, user.ID, -10); err == nil {
		t.Error("expected error for negative deposit")
	}
}

func TestDepositUnknownUser(t *testing.T) {
	database := db.NewTestDB(t)

	if err := Deposit(context.Background(), database, 42, 100); err == nil {
		t.Error("expected error for unknown user")
	}
}

func TestListUserPayments(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, _ := CreateUser(ctx, database, "alice", "hash")
	other, _ := CreateUser(ctx, database, "bob", "hash")

	Deposit(ctx, database, user.ID, 100)
	Deposit(ctx, database, other.ID, 100)

	payments, err := ListUserPayments(ctx, database, user.ID)
	if err != nil {
		t.Fatalf("ListUserPayments: %v", err)
	}
	if len(payments) != 1 {
		t.Fatalf("expected 1 payment, got %d", len(payments))
	}
	if payments[0].Kind != model.PaymentKindDeposit || payments[0].Amount != 100 {
		t.Errorf("unexpected payment: %+v", payments[0])
	}
	if payments[0].FromUserID != nil {
		t.Errorf("deposit should have no source wallet, got %v", payments[0].FromUserID)
	}
}
