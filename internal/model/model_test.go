package model

import "testing"

func TestSaleStateString(t *testing.T) {
	tests := []struct {
		state SaleState
		want  string
	}{
		{StateForSale, "for_sale"},
		{StateSold, "sold"},
		{StateShipped, "shipped"},
		{StateReceived, "received"},
		{SaleState(7), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("SaleState(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestSaleStateOrdinals(t *testing.T) {
	// The ordinals are part of the wire contract.
	if StateForSale != 0 || StateSold != 1 || StateShipped != 2 || StateReceived != 3 {
		t.Errorf("state ordinals changed: %d %d %d %d",
			StateForSale, StateSold, StateShipped, StateReceived)
	}
}

func TestSaleStateValid(t *testing.T) {
	for s := StateForSale; s <= StateReceived; s++ {
		if !s.Valid() {
			t.Errorf("expected %s to be valid", s)
		}
	}
	if SaleState(-1).Valid() || SaleState(4).Valid() {
		t.Error("out-of-range states must be invalid")
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		password string
		wantErr  bool
	}{
		{"", true},
		{"short", true},
		{"1234567", true},
		{"12345678", false},
		{"a-valid-password", false},
	}

	for _, tt := range tests {
		err := ValidatePassword(tt.password)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidatePassword(%q) error = %v, wantErr %v", tt.password, err, tt.wantErr)
		}
	}
}
