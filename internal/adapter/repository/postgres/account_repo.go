package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/veldbank/corebank/internal/domain"
	"github.com/veldbank/corebank/internal/usecase"
)

const accountColumns = `id, iban, balance, type, user_id, date_of_opening, absolute_limit, active, updated_at`

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

// Create inserts a new account.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO accounts (id, iban, balance, type, user_id, date_of_opening, absolute_limit, active, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		account.ID,
		account.IBAN,
		decimalToNumeric(account.Balance),
		string(account.Type),
		account.UserID,
		account.DateOfOpening,
		decimalToNumeric(account.AbsoluteLimit),
		account.Active,
		account.UpdatedAt,
	)

	return err
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	return scanAccount(r.pool.QueryRow(ctx, query, id))
}

// GetByIBAN retrieves an account by IBAN.
func (r *AccountRepository) GetByIBAN(ctx context.Context, iban string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE iban = $1`

	return scanAccount(r.pool.QueryRow(ctx, query, iban))
}

// GetByIBANForUpdate retrieves an account by IBAN with a FOR UPDATE row lock.
func (r *AccountRepository) GetByIBANForUpdate(ctx context.Context, uow usecase.UnitOfWork, iban string) (*domain.Account, error) {
	pgxTx := uow.(*Tx).PgxTx()
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE iban = $1 FOR UPDATE`

	return scanAccount(pgxTx.QueryRow(ctx, query, iban))
}

// GetByIBANsForUpdate retrieves multiple accounts by IBAN with FOR UPDATE row
// locks. Rows are locked in the order of the input slice; callers sort it to
// keep the lock order stable across concurrent transfers.
func (r *AccountRepository) GetByIBANsForUpdate(ctx context.Context, uow usecase.UnitOfWork, ibans []string) ([]*domain.Account, error) {
	accounts := make([]*domain.Account, 0, len(ibans))
	for _, iban := range ibans {
		account, err := r.GetByIBANForUpdate(ctx, uow, iban)
		if err != nil {
			// Missing rows are the engine's concern; it reports which side
			// of the transfer is absent.
			if errors.Is(err, domain.ErrAccountNotFound) {
				continue
			}

			return nil, err
		}

		accounts = append(accounts, account)
	}

	return accounts, nil
}

// UpdateBalance updates the balance of an account.
func (r *AccountRepository) UpdateBalance(ctx context.Context, uow usecase.UnitOfWork, id string, balance decimal.Decimal, updatedAt time.Time) error {
	pgxTx := uow.(*Tx).PgxTx()
	query := `UPDATE accounts SET balance = $2, updated_at = $3 WHERE id = $1`

	_, err := pgxTx.Exec(ctx, query, id, decimalToNumeric(balance), updatedAt)

	return err
}

// SetActive sets the active flag of an account.
func (r *AccountRepository) SetActive(ctx context.Context, id string, active bool, updatedAt time.Time) error {
	query := `UPDATE accounts SET active = $2, updated_at = $3 WHERE id = $1`

	_, err := r.pool.Exec(ctx, query, id, active, updatedAt)

	return err
}

// List lists accounts with pagination.
func (r *AccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY date_of_opening LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAccounts(rows)
}

// ListByUser lists the accounts owned by a user.
func (r *AccountRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = $1 ORDER BY date_of_opening`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAccounts(rows)
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var (
		account       domain.Account
		accountType   string
		balance       pgtype.Numeric
		absoluteLimit pgtype.Numeric
	)

	err := row.Scan(
		&account.ID,
		&account.IBAN,
		&balance,
		&accountType,
		&account.UserID,
		&account.DateOfOpening,
		&absoluteLimit,
		&account.Active,
		&account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	account.Type = domain.AccountType(accountType)
	account.Balance = numericToDecimal(balance)
	account.AbsoluteLimit = numericToDecimal(absoluteLimit)

	return &account, nil
}

func collectAccounts(rows pgx.Rows) ([]*domain.Account, error) {
	var accounts []*domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}

		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}
