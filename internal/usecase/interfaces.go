package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/veldbank/corebank/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByIBAN(ctx context.Context, iban string) (*domain.Account, error)
	GetByIBANForUpdate(ctx context.Context, uow UnitOfWork, iban string) (*domain.Account, error)
	GetByIBANsForUpdate(ctx context.Context, uow UnitOfWork, ibans []string) ([]*domain.Account, error)
	UpdateBalance(ctx context.Context, uow UnitOfWork, id string, balance decimal.Decimal, updatedAt time.Time) error
	SetActive(ctx context.Context, id string, active bool, updatedAt time.Time) error
	List(ctx context.Context, limit, offset int) ([]*domain.Account, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Account, error)
}

// TransactionRepository defines data access for the append-only transaction
// log. There is deliberately no update or delete.
type TransactionRepository interface {
	Create(ctx context.Context, uow UnitOfWork, txn *domain.Transaction) error
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error)
	ListBySource(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error)
	ListByDestination(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error)
}

// UserRepository defines data access for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// LedgerRepository defines ledger-wide data access.
type LedgerRepository interface {
	// CheckConsistency returns the sum of all account balances and the net
	// signed flow of ATM transactions (deposits positive, withdrawals
	// negative). Peer transfers are internally conserving and contribute
	// nothing to either figure.
	CheckConsistency(ctx context.Context) (totalBalance, netFlow decimal.Decimal, err error)
}

// UnitOfWork is the storage transaction boundary. All writes of a single
// ledger mutation go through one unit of work and become visible together at
// Commit, or not at all.
type UnitOfWork interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// UnitOfWorkManager starts units of work.
type UnitOfWorkManager interface {
	Begin(ctx context.Context) (UnitOfWork, error)
}

// Retrier re-runs an operation that failed with a transient storage error,
// such as a lost deadlock race. Domain errors are never retried.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// IdempotencyProcessing is the placeholder a store holds under a claimed key
// until the first request's response replaces it.
const IdempotencyProcessing = "processing"

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
