package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// AccountType enumerates the kinds of accounts the bank offers.
type AccountType string

const (
	AccountTypeCurrent AccountType = "CURRENT"
	AccountTypeSavings AccountType = "SAVINGS"
)

var validAccountTypes = map[AccountType]bool{
	AccountTypeCurrent: true,
	AccountTypeSavings: true,
}

// ParseAccountType parses a string into an AccountType. Parsing happens once
// at the boundary; the engines only ever see valid values.
func ParseAccountType(s string) (AccountType, error) {
	t := AccountType(strings.ToUpper(strings.TrimSpace(s)))
	if !validAccountTypes[t] {
		return "", fmt.Errorf("%w: %q", ErrInvalidAccountType, s)
	}

	return t, nil
}

// Account represents a bank account holding a balance.
//
// Balance is only ever mutated by the transfer and ATM engines; every other
// component treats it as read-only.
type Account struct {
	ID            string
	IBAN          string
	Balance       decimal.Decimal
	Type          AccountType
	UserID        string
	DateOfOpening time.Time
	// AbsoluteLimit is the minimum permitted balance. It is stored but not
	// consulted by the sufficiency check, matching current product rules.
	AbsoluteLimit decimal.Decimal
	Active        bool
	UpdatedAt     time.Time
}

// CanCover reports whether the account balance covers amount. Equality is
// allowed: a transfer may drive the balance to exactly zero.
func (a *Account) CanCover(amount decimal.Decimal) bool {
	return !a.Balance.LessThan(amount)
}

// ApplyDebit returns the balance after debiting amount.
func (a *Account) ApplyDebit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Sub(amount)
}

// ApplyCredit returns the balance after crediting amount.
func (a *Account) ApplyCredit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Add(amount)
}
