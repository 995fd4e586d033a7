package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/veldbank/corebank/internal/domain"
	"github.com/veldbank/corebank/internal/usecase"
)

const transactionColumns = `id, from_account_id, to_account_id, amount, type, executed_at, performing_user_id, description`

// TransactionRepository implements usecase.TransactionRepository. The
// transactions table is append-only; this repository exposes no update or
// delete.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Create appends a transaction record within the given unit of work.
func (r *TransactionRepository) Create(ctx context.Context, uow usecase.UnitOfWork, txn *domain.Transaction) error {
	pgxTx := uow.(*Tx).PgxTx()
	query := `
		INSERT INTO transactions (id, from_account_id, to_account_id, amount, type, executed_at, performing_user_id, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := pgxTx.Exec(ctx, query,
		txn.ID,
		txn.FromAccountID,
		txn.ToAccountID,
		decimalToNumeric(txn.Amount),
		string(txn.Type),
		txn.ExecutedAt,
		txn.PerformingUserID,
		txn.Description,
	)

	return err
}

// GetByID retrieves a transaction by ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`

	return scanTransaction(r.pool.QueryRow(ctx, query, id))
}

// ListByAccount lists transactions touching an account on either side,
// oldest first.
func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + ` FROM transactions
		WHERE from_account_id = $1 OR to_account_id = $1
		ORDER BY executed_at
		LIMIT $2 OFFSET $3
	`

	return r.list(ctx, query, accountID, limit, offset)
}

// ListBySource lists transactions where the account is the source, oldest
// first.
func (r *TransactionRepository) ListBySource(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + ` FROM transactions
		WHERE from_account_id = $1
		ORDER BY executed_at
		LIMIT $2 OFFSET $3
	`

	return r.list(ctx, query, accountID, limit, offset)
}

// ListByDestination lists transactions where the account is the destination,
// oldest first.
func (r *TransactionRepository) ListByDestination(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + ` FROM transactions
		WHERE to_account_id = $1
		ORDER BY executed_at
		LIMIT $2 OFFSET $3
	`

	return r.list(ctx, query, accountID, limit, offset)
}

func (r *TransactionRepository) list(ctx context.Context, query, accountID string, limit, offset int) ([]*domain.Transaction, error) {
	rows, err := r.pool.Query(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txns []*domain.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}

		txns = append(txns, txn)
	}

	return txns, rows.Err()
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		txn     domain.Transaction
		txnType string
		amount  pgtype.Numeric
	)

	err := row.Scan(
		&txn.ID,
		&txn.FromAccountID,
		&txn.ToAccountID,
		&amount,
		&txnType,
		&txn.ExecutedAt,
		&txn.PerformingUserID,
		&txn.Description,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, err
	}

	txn.Type = domain.TransactionType(txnType)
	txn.Amount = numericToDecimal(amount)

	return &txn, nil
}
