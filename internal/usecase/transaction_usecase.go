package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/veldbank/corebank/internal/domain"
)

// TransactionUseCase is the ledger-mutation engine: peer transfers, ATM
// deposits and withdrawals, and the read-only transaction queries. It is the
// only component that mutates balances.
type TransactionUseCase struct {
	uowManager      UnitOfWorkManager
	accountRepo     AccountRepository
	transactionRepo TransactionRepository
	userRepo        UserRepository
	idGen           IDGenerator
	retrier         Retrier
}

// NewTransactionUseCase creates a new TransactionUseCase.
func NewTransactionUseCase(
	uowManager UnitOfWorkManager,
	accountRepo AccountRepository,
	transactionRepo TransactionRepository,
	userRepo UserRepository,
	idGen IDGenerator,
	retrier Retrier,
) *TransactionUseCase {
	return &TransactionUseCase{
		uowManager:      uowManager,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		userRepo:        userRepo,
		idGen:           idGen,
		retrier:         retrier,
	}
}

// TransferInput represents input for a peer transfer.
type TransferInput struct {
	FromIBAN         string
	ToIBAN           string
	Amount           decimal.Decimal
	PerformingUserID *string
	Description      *string
}

// Transfer moves Amount from the source account to the destination account
// and records one TRANSFER transaction. The debit, the credit and the record
// commit as a single unit of work; any failure before commit leaves both
// balances and the log untouched.
func (uc *TransactionUseCase) Transfer(ctx context.Context, input TransferInput) (*domain.Transaction, error) {
	// Pure validation first; no account is resolved until it passes.
	if err := domain.ValidateTransferRequest(input.FromIBAN, input.ToIBAN, input.Amount); err != nil {
		return nil, err
	}

	return uc.withRetry(ctx, func() (*domain.Transaction, error) {
		return uc.transfer(ctx, input)
	})
}

func (uc *TransactionUseCase) transfer(ctx context.Context, input TransferInput) (*domain.Transaction, error) {
	uow, err := uc.uowManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback(ctx)

	// Lock both rows in sorted order so that two concurrent transfers over
	// the same pair of accounts cannot deadlock.
	ibans := []string{input.FromIBAN, input.ToIBAN}
	sort.Strings(ibans)

	accounts, err := uc.accountRepo.GetByIBANsForUpdate(ctx, uow, ibans)
	if err != nil {
		return nil, err
	}

	byIBAN := make(map[string]*domain.Account, len(accounts))
	for _, a := range accounts {
		byIBAN[a.IBAN] = a
	}

	source := byIBAN[input.FromIBAN]
	if source == nil {
		return nil, domain.ErrSourceAccountNotFound
	}

	dest := byIBAN[input.ToIBAN]
	if dest == nil {
		return nil, domain.ErrDestinationAccountNotFound
	}

	if input.PerformingUserID != nil {
		user, err := uc.userRepo.GetByID(ctx, *input.PerformingUserID)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				return nil, domain.ErrPerformingUserNotFound
			}

			return nil, err
		}

		// The ownership check lives here rather than in the caller because
		// it needs the just-resolved account's owner.
		if !user.OwnsAccount(source) {
			return nil, domain.ErrNotAccountOwner
		}
	}

	if !source.CanCover(input.Amount) {
		return nil, domain.ErrInsufficientFunds
	}

	now := time.Now().UTC()

	txn := &domain.Transaction{
		ID:               uc.idGen.Generate(),
		FromAccountID:    source.ID,
		ToAccountID:      dest.ID,
		Amount:           input.Amount,
		Type:             domain.TransactionTypeTransfer,
		ExecutedAt:       now,
		PerformingUserID: input.PerformingUserID,
		Description:      input.Description,
	}

	if err := uc.transactionRepo.Create(ctx, uow, txn); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.UpdateBalance(ctx, uow, source.ID, source.ApplyDebit(input.Amount), now); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.UpdateBalance(ctx, uow, dest.ID, dest.ApplyCredit(input.Amount), now); err != nil {
		return nil, err
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	return txn, nil
}

// Deposit adds amount to the account identified by iban via the ATM flow.
func (uc *TransactionUseCase) Deposit(ctx context.Context, iban string, amount decimal.Decimal) (*domain.Transaction, error) {
	return uc.withRetry(ctx, func() (*domain.Transaction, error) {
		return uc.atmTransaction(ctx, iban, amount)
	})
}

// Withdraw removes amount from the account identified by iban via the ATM
// flow. The recorded transaction carries the negative delta.
func (uc *TransactionUseCase) Withdraw(ctx context.Context, iban string, amount decimal.Decimal) (*domain.Transaction, error) {
	return uc.withRetry(ctx, func() (*domain.Transaction, error) {
		return uc.atmTransaction(ctx, iban, amount.Neg())
	})
}

// withRetry runs one attempt of a ledger mutation through the retrier. Each
// attempt is a fresh unit of work, so a retried attempt re-reads and re-locks
// the rows it touches.
func (uc *TransactionUseCase) withRetry(ctx context.Context, op func() (*domain.Transaction, error)) (*domain.Transaction, error) {
	var txn *domain.Transaction

	err := uc.retrier.Retry(ctx, func() error {
		var opErr error
		txn, opErr = op()

		return opErr
	})
	if err != nil {
		return nil, err
	}

	return txn, nil
}

// atmTransaction is the shared ATM operation, parameterized by a signed
// delta: positive for deposits, negative for withdrawals. A deposit of a
// negative amount therefore behaves as a withdrawal, including the funds
// check.
func (uc *TransactionUseCase) atmTransaction(ctx context.Context, iban string, delta decimal.Decimal) (*domain.Transaction, error) {
	if iban == "" {
		return nil, domain.ErrMissingIBAN
	}

	// The zero check must precede the funds check.
	if delta.IsZero() {
		return nil, domain.ErrZeroAmount
	}

	uow, err := uc.uowManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback(ctx)

	account, err := uc.accountRepo.GetByIBANForUpdate(ctx, uow, iban)
	if err != nil {
		return nil, err
	}

	if delta.IsNegative() && !account.CanCover(delta.Neg()) {
		return nil, domain.ErrInsufficientFunds
	}

	txnType := domain.TransactionTypeDeposit
	if delta.IsNegative() {
		txnType = domain.TransactionTypeWithdrawal
	}

	now := time.Now().UTC()

	txn := &domain.Transaction{
		ID:            uc.idGen.Generate(),
		FromAccountID: account.ID,
		ToAccountID:   account.ID,
		Amount:        delta,
		Type:          txnType,
		ExecutedAt:    now,
	}

	if err := uc.transactionRepo.Create(ctx, uow, txn); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.UpdateBalance(ctx, uow, account.ID, account.ApplyCredit(delta), now); err != nil {
		return nil, err
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	return txn, nil
}

// GetTransaction retrieves a transaction by ID.
func (uc *TransactionUseCase) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	return uc.transactionRepo.GetByID(ctx, id)
}

// ListTransactionsInput represents input for listing transactions.
type ListTransactionsInput struct {
	AccountID string
	Limit     int
	Offset    int
}

// ListTransactionsByAccount lists every transaction touching the account, as
// source or destination. A nonexistent account is an error, distinct from an
// existing account with no history, which yields an empty list.
func (uc *TransactionUseCase) ListTransactionsByAccount(ctx context.Context, input ListTransactionsInput) ([]*domain.Transaction, error) {
	account, err := uc.resolveAccountID(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}

	limit, offset := normalizePage(input.Limit, input.Offset)

	return uc.transactionRepo.ListByAccount(ctx, account.ID, limit, offset)
}

// ListTransactionsSent lists transactions where the account is strictly the
// source.
func (uc *TransactionUseCase) ListTransactionsSent(ctx context.Context, input ListTransactionsInput) ([]*domain.Transaction, error) {
	account, err := uc.resolveAccountID(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}

	limit, offset := normalizePage(input.Limit, input.Offset)

	return uc.transactionRepo.ListBySource(ctx, account.ID, limit, offset)
}

// ListTransactionsReceived lists transactions where the account is strictly
// the destination.
func (uc *TransactionUseCase) ListTransactionsReceived(ctx context.Context, input ListTransactionsInput) ([]*domain.Transaction, error) {
	account, err := uc.resolveAccountID(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}

	limit, offset := normalizePage(input.Limit, input.Offset)

	return uc.transactionRepo.ListByDestination(ctx, account.ID, limit, offset)
}

func (uc *TransactionUseCase) resolveAccountID(ctx context.Context, id string) (*domain.Account, error) {
	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrInvalidAccountID
		}

		return nil, err
	}

	return account, nil
}

func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 20
	}

	if limit > 100 {
		limit = 100
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
