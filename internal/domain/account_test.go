package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestAccountCanCover(t *testing.T) {
	acc := &Account{Balance: decimal.NewFromInt(1000)}

	if !acc.CanCover(decimal.NewFromInt(200)) {
		t.Error("expected balance 1000 to cover 200")
	}

	// Boundary equality is permitted: the transfer drives the balance to zero.
	if !acc.CanCover(decimal.NewFromInt(1000)) {
		t.Error("expected balance 1000 to cover exactly 1000")
	}

	if acc.CanCover(decimal.RequireFromString("1000.01")) {
		t.Error("expected balance 1000 not to cover 1000.01")
	}
}

func TestAccountApplyDebitCredit(t *testing.T) {
	acc := &Account{Balance: decimal.NewFromInt(500)}

	if got := acc.ApplyDebit(decimal.NewFromInt(300)); !got.Equal(decimal.NewFromInt(200)) {
		t.Errorf("ApplyDebit: expected 200, got %s", got)
	}

	if got := acc.ApplyCredit(decimal.NewFromInt(400)); !got.Equal(decimal.NewFromInt(900)) {
		t.Errorf("ApplyCredit: expected 900, got %s", got)
	}
}

func TestParseAccountType(t *testing.T) {
	tests := []struct {
		input   string
		want    AccountType
		wantErr bool
	}{
		{"CURRENT", AccountTypeCurrent, false},
		{"savings", AccountTypeSavings, false},
		{" current ", AccountTypeCurrent, false},
		{"CHECKING", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseAccountType(tt.input)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidAccountType) {
				t.Errorf("ParseAccountType(%q): expected invalid type error, got %v", tt.input, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseAccountType(%q) = %v, %v, want %v", tt.input, got, err, tt.want)
		}
	}
}

func TestParseTransactionType(t *testing.T) {
	for _, valid := range []string{"TRANSFER", "DEPOSIT", "WITHDRAWAL", "deposit"} {
		if _, err := ParseTransactionType(valid); err != nil {
			t.Errorf("ParseTransactionType(%q): unexpected error %v", valid, err)
		}
	}

	if _, err := ParseTransactionType("REFUND"); !errors.Is(err, ErrInvalidTransactionType) {
		t.Errorf("expected invalid transaction type error, got %v", err)
	}
}

func TestUserOwnsAccount(t *testing.T) {
	user := &User{ID: "user-1"}

	if !user.OwnsAccount(&Account{UserID: "user-1"}) {
		t.Error("expected user to own their account")
	}

	if user.OwnsAccount(&Account{UserID: "user-2"}) {
		t.Error("expected user not to own another user's account")
	}

	if user.OwnsAccount(nil) {
		t.Error("expected nil account not to be owned")
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		want ErrorKind
	}{
		{ErrSameAccount, KindInvalidRequest},
		{ErrZeroAmount, KindInvalidRequest},
		{ErrNegativeAmount, KindInvalidRequest},
		{ErrMissingIBAN, KindInvalidRequest},
		{ErrSourceAccountNotFound, KindNotFound},
		{ErrDestinationAccountNotFound, KindNotFound},
		{ErrPerformingUserNotFound, KindNotFound},
		{ErrAccountNotFound, KindNotFound},
		{ErrInvalidAccountID, KindNotFound},
		{ErrNotAccountOwner, KindUnauthorized},
		{ErrInsufficientFunds, KindInsufficientFunds},
		{errors.New("connection reset"), KindStorage},
	}

	for _, tt := range tests {
		if got := KindOf(tt.err); got != tt.want {
			t.Errorf("KindOf(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
