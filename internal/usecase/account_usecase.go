package usecase

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/shopspring/decimal"

	"github.com/veldbank/corebank/internal/domain"
)

// AccountUseCase handles account lifecycle operations. It never touches
// balances beyond setting the opening balance to zero; all movement goes
// through the transaction engine.
type AccountUseCase struct {
	accountRepo AccountRepository
	userRepo    UserRepository
	idGen       IDGenerator
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(accountRepo AccountRepository, userRepo UserRepository, idGen IDGenerator) *AccountUseCase {
	return &AccountUseCase{
		accountRepo: accountRepo,
		userRepo:    userRepo,
		idGen:       idGen,
	}
}

// OpenAccountInput represents input for opening an account.
type OpenAccountInput struct {
	UserID string
	Type   domain.AccountType
}

// OpenAccount opens a new account for a user with a generated IBAN, a zero
// balance and active status.
func (uc *AccountUseCase) OpenAccount(ctx context.Context, input OpenAccountInput) (*domain.Account, error) {
	if _, err := uc.userRepo.GetByID(ctx, input.UserID); err != nil {
		return nil, err
	}

	iban := generateIBAN()

	// Nothing downstream rechecks IBAN shape, so a generator drifting out of
	// the issued number range must be caught before the row is written.
	if err := domain.ValidateIBAN(iban); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	account := &domain.Account{
		ID:            uc.idGen.Generate(),
		IBAN:          iban,
		Balance:       decimal.Zero,
		Type:          input.Type,
		UserID:        input.UserID,
		DateOfOpening: now,
		AbsoluteLimit: decimal.Zero,
		Active:        true,
		UpdatedAt:     now,
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, id)
}

// GetAccountByIBAN retrieves an account by IBAN.
func (uc *AccountUseCase) GetAccountByIBAN(ctx context.Context, iban string) (*domain.Account, error) {
	if iban == "" {
		return nil, domain.ErrMissingIBAN
	}

	return uc.accountRepo.GetByIBAN(ctx, iban)
}

// ListAccountsInput represents input for listing accounts.
type ListAccountsInput struct {
	Limit  int
	Offset int
}

// ListAccounts lists accounts with pagination.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, input ListAccountsInput) ([]*domain.Account, error) {
	limit, offset := normalizePage(input.Limit, input.Offset)

	return uc.accountRepo.List(ctx, limit, offset)
}

// ListAccountsByUser lists the accounts owned by a user. The user must
// exist.
func (uc *AccountUseCase) ListAccountsByUser(ctx context.Context, userID string) ([]*domain.Account, error) {
	if _, err := uc.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	return uc.accountRepo.ListByUser(ctx, userID)
}

// DeactivateAccount soft-deletes an account by clearing its active flag.
// Accounts referenced by transactions are never hard-deleted.
func (uc *AccountUseCase) DeactivateAccount(ctx context.Context, id string) error {
	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	return uc.accountRepo.SetActive(ctx, account.ID, false, time.Now().UTC())
}

// generateIBAN produces an NL IBAN in the bank's number range.
func generateIBAN() string {
	return fmt.Sprintf("NL%02dBANK%010d", rand.IntN(100), rand.Int64N(10_000_000_000))
}
