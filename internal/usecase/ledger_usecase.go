package usecase

import (
	"context"

	"github.com/shopspring/decimal"
)

// LedgerUseCase handles ledger-wide operations.
type LedgerUseCase struct {
	ledgerRepo LedgerRepository
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(ledgerRepo LedgerRepository) *LedgerUseCase {
	return &LedgerUseCase{ledgerRepo: ledgerRepo}
}

// ConsistencyReport is the result of a ledger conservation check.
type ConsistencyReport struct {
	TotalBalance decimal.Decimal
	NetFlow      decimal.Decimal
	Consistent   bool
}

// CheckConsistency verifies the conservation invariant: every account opens
// at zero and only the engines move money, so the sum of all balances must
// equal the net signed ATM flow. Transfers shift money between accounts and
// cancel out.
func (uc *LedgerUseCase) CheckConsistency(ctx context.Context) (*ConsistencyReport, error) {
	totalBalance, netFlow, err := uc.ledgerRepo.CheckConsistency(ctx)
	if err != nil {
		return nil, err
	}

	return &ConsistencyReport{
		TotalBalance: totalBalance,
		NetFlow:      netFlow,
		Consistent:   totalBalance.Equal(netFlow),
	}, nil
}
