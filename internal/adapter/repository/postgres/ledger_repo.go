package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

// CheckConsistency returns the sum of all account balances and the net signed
// ATM flow. Accounts open at zero and transfers conserve the total, so the
// two figures must match on a consistent ledger. Both sums run in one
// statement to see a single snapshot.
func (r *LedgerRepository) CheckConsistency(ctx context.Context) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT
			(SELECT COALESCE(SUM(balance), 0) FROM accounts),
			(SELECT COALESCE(SUM(amount), 0) FROM transactions WHERE type IN ('DEPOSIT', 'WITHDRAWAL'))
	`

	var totalBalance, netFlow pgtype.Numeric
	if err := r.pool.QueryRow(ctx, query).Scan(&totalBalance, &netFlow); err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	return numericToDecimal(totalBalance), numericToDecimal(netFlow), nil
}
