package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/veldbank/corebank/internal/usecase"
)

type pgxPool interface {
	Begin(context.Context) (pgx.Tx, error)
}

// UnitOfWorkManager implements usecase.UnitOfWorkManager on top of pgx
// transactions.
type UnitOfWorkManager struct {
	pool pgxPool
}

// NewUnitOfWorkManager creates a new UnitOfWorkManager.
func NewUnitOfWorkManager(pool *pgxpool.Pool) *UnitOfWorkManager {
	return newUnitOfWorkManagerWithPool(pool)
}

func newUnitOfWorkManagerWithPool(pool pgxPool) *UnitOfWorkManager {
	return &UnitOfWorkManager{pool: pool}
}

// Begin starts a new unit of work.
func (m *UnitOfWorkManager) Begin(ctx context.Context) (usecase.UnitOfWork, error) {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}

	return &Tx{tx: tx}, nil
}

// Tx wraps a pgx transaction as a unit of work.
type Tx struct {
	tx pgx.Tx
}

// Commit commits the unit of work.
func (t *Tx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback rolls back the unit of work. Calling it after a successful commit
// is a no-op, which lets callers defer it.
func (t *Tx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// PgxTx returns the underlying pgx.Tx.
func (t *Tx) PgxTx() pgx.Tx {
	return t.tx
}
