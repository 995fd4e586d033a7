package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType enumerates the kinds of ledger movements.
type TransactionType string

const (
	TransactionTypeTransfer   TransactionType = "TRANSFER"
	TransactionTypeDeposit    TransactionType = "DEPOSIT"
	TransactionTypeWithdrawal TransactionType = "WITHDRAWAL"
)

var validTransactionTypes = map[TransactionType]bool{
	TransactionTypeTransfer:   true,
	TransactionTypeDeposit:    true,
	TransactionTypeWithdrawal: true,
}

// ParseTransactionType parses a string into a TransactionType.
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(strings.ToUpper(strings.TrimSpace(s)))
	if !validTransactionTypes[t] {
		return "", fmt.Errorf("%w: %q", ErrInvalidTransactionType, s)
	}

	return t, nil
}

// Transaction is the immutable record of a single balance movement.
//
// For ATM operations the source and destination account are the same, and
// Amount carries the signed delta (withdrawals are recorded negative).
// Peer transfers always record the positive magnitude. Once written a
// transaction is never updated or deleted; it is the source of truth for
// historical balance movement.
type Transaction struct {
	ID               string
	FromAccountID    string
	ToAccountID      string
	Amount           decimal.Decimal
	Type             TransactionType
	ExecutedAt       time.Time
	PerformingUserID *string
	Description      *string
}
