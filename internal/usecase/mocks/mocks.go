package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/veldbank/corebank/internal/domain"
	"github.com/veldbank/corebank/internal/usecase"
)

// MockAccountRepository is a map-backed fake of AccountRepository. Each
// method can be overridden per test via its Func field.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	CreateFunc              func(ctx context.Context, account *domain.Account) error
	GetByIDFunc             func(ctx context.Context, id string) (*domain.Account, error)
	GetByIBANFunc           func(ctx context.Context, iban string) (*domain.Account, error)
	GetByIBANForUpdateFunc  func(ctx context.Context, uow usecase.UnitOfWork, iban string) (*domain.Account, error)
	GetByIBANsForUpdateFunc func(ctx context.Context, uow usecase.UnitOfWork, ibans []string) ([]*domain.Account, error)
	UpdateBalanceFunc       func(ctx context.Context, uow usecase.UnitOfWork, id string, balance decimal.Decimal, updatedAt time.Time) error
	SetActiveFunc           func(ctx context.Context, id string, active bool, updatedAt time.Time) error
	ListFunc                func(ctx context.Context, limit, offset int) ([]*domain.Account, error)
	ListByUserFunc          func(ctx context.Context, userID string) ([]*domain.Account, error)
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

// Seed stores an account directly, bypassing any Func override.
func (m *MockAccountRepository) Seed(accounts ...*domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range accounts {
		m.accounts[a.ID] = a
	}
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		return acc, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByIBAN(ctx context.Context, iban string) (*domain.Account, error) {
	if m.GetByIBANFunc != nil {
		return m.GetByIBANFunc(ctx, iban)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, acc := range m.accounts {
		if acc.IBAN == iban {
			return acc, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByIBANForUpdate(ctx context.Context, uow usecase.UnitOfWork, iban string) (*domain.Account, error) {
	if m.GetByIBANForUpdateFunc != nil {
		return m.GetByIBANForUpdateFunc(ctx, uow, iban)
	}
	return m.GetByIBAN(ctx, iban)
}

func (m *MockAccountRepository) GetByIBANsForUpdate(ctx context.Context, uow usecase.UnitOfWork, ibans []string) ([]*domain.Account, error) {
	if m.GetByIBANsForUpdateFunc != nil {
		return m.GetByIBANsForUpdateFunc(ctx, uow, ibans)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, iban := range ibans {
		for _, acc := range m.accounts {
			if acc.IBAN == iban {
				accounts = append(accounts, acc)
				break
			}
		}
	}
	return accounts, nil
}

func (m *MockAccountRepository) UpdateBalance(ctx context.Context, uow usecase.UnitOfWork, id string, balance decimal.Decimal, updatedAt time.Time) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, uow, id, balance, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if acc, ok := m.accounts[id]; ok {
		acc.Balance = balance
		acc.UpdatedAt = updatedAt
	}
	return nil
}

func (m *MockAccountRepository) SetActive(ctx context.Context, id string, active bool, updatedAt time.Time) error {
	if m.SetActiveFunc != nil {
		return m.SetActiveFunc(ctx, id, active, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if acc, ok := m.accounts[id]; ok {
		acc.Active = active
		acc.UpdatedAt = updatedAt
	}
	return nil
}

func (m *MockAccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, acc := range m.accounts {
		accounts = append(accounts, acc)
	}
	return accounts, nil
}

func (m *MockAccountRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Account, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, acc := range m.accounts {
		if acc.UserID == userID {
			accounts = append(accounts, acc)
		}
	}
	return accounts, nil
}

// MockTransactionRepository is a slice-backed fake of TransactionRepository.
type MockTransactionRepository struct {
	mu           sync.RWMutex
	transactions []*domain.Transaction

	CreateFunc            func(ctx context.Context, uow usecase.UnitOfWork, txn *domain.Transaction) error
	GetByIDFunc           func(ctx context.Context, id string) (*domain.Transaction, error)
	ListByAccountFunc     func(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error)
	ListBySourceFunc      func(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error)
	ListByDestinationFunc func(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error)
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{}
}

// All returns every recorded transaction in insertion order.
func (m *MockTransactionRepository) All() []*domain.Transaction {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.Transaction, len(m.transactions))
	copy(out, m.transactions)
	return out
}

func (m *MockTransactionRepository) Create(ctx context.Context, uow usecase.UnitOfWork, txn *domain.Transaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, uow, txn)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions = append(m.transactions, txn)
	return nil
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, txn := range m.transactions {
		if txn.ID == id {
			return txn, nil
		}
	}
	return nil, domain.ErrTransactionNotFound
}

func (m *MockTransactionRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, accountID, limit, offset)
	}
	return m.filter(func(t *domain.Transaction) bool {
		return t.FromAccountID == accountID || t.ToAccountID == accountID
	}), nil
}

func (m *MockTransactionRepository) ListBySource(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error) {
	if m.ListBySourceFunc != nil {
		return m.ListBySourceFunc(ctx, accountID, limit, offset)
	}
	return m.filter(func(t *domain.Transaction) bool {
		return t.FromAccountID == accountID
	}), nil
}

func (m *MockTransactionRepository) ListByDestination(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error) {
	if m.ListByDestinationFunc != nil {
		return m.ListByDestinationFunc(ctx, accountID, limit, offset)
	}
	return m.filter(func(t *domain.Transaction) bool {
		return t.ToAccountID == accountID
	}), nil
}

func (m *MockTransactionRepository) filter(keep func(*domain.Transaction) bool) []*domain.Transaction {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.Transaction, 0)
	for _, txn := range m.transactions {
		if keep(txn) {
			out = append(out, txn)
		}
	}
	return out
}

// MockUserRepository is a map-backed fake of UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User

	CreateFunc     func(ctx context.Context, user *domain.User) error
	GetByIDFunc    func(ctx context.Context, id string) (*domain.User, error)
	GetByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]*domain.User),
	}
}

// Seed stores a user directly, bypassing any Func override.
func (m *MockUserRepository) Seed(users ...*domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range users {
		m.users[u.ID] = u
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	// Store a copy, as a real store would; callers may mutate their struct
	// after persisting it.
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if user, ok := m.users[id]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// MockUnitOfWork records commit and rollback calls.
type MockUnitOfWork struct {
	mu        sync.Mutex
	Commits   int
	Rollbacks int

	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (m *MockUnitOfWork) Commit(ctx context.Context) error {
	m.mu.Lock()
	m.Commits++
	m.mu.Unlock()
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	return nil
}

func (m *MockUnitOfWork) Rollback(ctx context.Context) error {
	m.mu.Lock()
	m.Rollbacks++
	m.mu.Unlock()
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	return nil
}

// MockUnitOfWorkManager hands out MockUnitOfWorks and remembers them.
type MockUnitOfWorkManager struct {
	mu    sync.Mutex
	Began []*MockUnitOfWork

	BeginFunc func(ctx context.Context) (usecase.UnitOfWork, error)
}

func NewMockUnitOfWorkManager() *MockUnitOfWorkManager {
	return &MockUnitOfWorkManager{}
}

func (m *MockUnitOfWorkManager) Begin(ctx context.Context) (usecase.UnitOfWork, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	uow := &MockUnitOfWork{}
	m.mu.Lock()
	m.Began = append(m.Began, uow)
	m.mu.Unlock()
	return uow, nil
}

// MockRetrier runs the operation once, with no backoff.
type MockRetrier struct {
	mu    sync.Mutex
	Calls int

	RetryFunc func(ctx context.Context, operation func() error) error
}

func NewMockRetrier() *MockRetrier {
	return &MockRetrier{}
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	m.mu.Lock()
	m.Calls++
	m.mu.Unlock()
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, operation)
	}
	return operation()
}

// MockIDGenerator generates sequential predictable IDs.
type MockIDGenerator struct {
	mu      sync.Mutex
	counter int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("id-%03d", m.counter)
}
