package http

import (
	"bytes"
	"context"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/veldbank/corebank/internal/adapter/http/dto"
	"github.com/veldbank/corebank/internal/adapter/http/handler"
	"github.com/veldbank/corebank/internal/domain"
	"github.com/veldbank/corebank/internal/infrastructure/metrics"
	"github.com/veldbank/corebank/internal/usecase"
)

type routerTransactionStub struct{}

func (routerTransactionStub) Transfer(ctx context.Context, input usecase.TransferInput) (*domain.Transaction, error) {
	return &domain.Transaction{
		ID:            "txn-1",
		FromAccountID: "acc-1",
		ToAccountID:   "acc-2",
		Amount:        input.Amount,
		Type:          domain.TransactionTypeTransfer,
		ExecutedAt:    time.Now().UTC(),
	}, nil
}

func (routerTransactionStub) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	return nil, domain.ErrTransactionNotFound
}

func (routerTransactionStub) ListTransactionsByAccount(ctx context.Context, input usecase.ListTransactionsInput) ([]*domain.Transaction, error) {
	return nil, nil
}

func (routerTransactionStub) ListTransactionsSent(ctx context.Context, input usecase.ListTransactionsInput) ([]*domain.Transaction, error) {
	return nil, nil
}

func (routerTransactionStub) ListTransactionsReceived(ctx context.Context, input usecase.ListTransactionsInput) ([]*domain.Transaction, error) {
	return nil, nil
}

type routerAtmStub struct{}

func (routerAtmStub) Deposit(ctx context.Context, iban string, amount decimal.Decimal) (*domain.Transaction, error) {
	return &domain.Transaction{ID: "txn-atm", Type: domain.TransactionTypeDeposit, Amount: amount}, nil
}

func (routerAtmStub) Withdraw(ctx context.Context, iban string, amount decimal.Decimal) (*domain.Transaction, error) {
	return nil, domain.ErrInsufficientFunds
}

type routerAccountStub struct{}

func (routerAccountStub) OpenAccount(ctx context.Context, input usecase.OpenAccountInput) (*domain.Account, error) {
	return &domain.Account{ID: "acc-1", IBAN: "NL01BANK0000000001", Active: true}, nil
}

func (routerAccountStub) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return nil, domain.ErrAccountNotFound
}

func (routerAccountStub) GetAccountByIBAN(ctx context.Context, iban string) (*domain.Account, error) {
	return nil, domain.ErrAccountNotFound
}

func (routerAccountStub) ListAccounts(ctx context.Context, input usecase.ListAccountsInput) ([]*domain.Account, error) {
	return nil, nil
}

func (routerAccountStub) ListAccountsByUser(ctx context.Context, userID string) ([]*domain.Account, error) {
	return nil, nil
}

func (routerAccountStub) DeactivateAccount(ctx context.Context, id string) error {
	return nil
}

type routerUserStub struct{}

func (routerUserStub) CreateUser(ctx context.Context, input usecase.CreateUserInput) (*domain.User, error) {
	return &domain.User{ID: "user-1", Email: input.Email, Name: input.Name, Active: true}, nil
}

func (routerUserStub) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	return nil, domain.ErrUnauthorized
}

func (routerUserStub) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

type routerLedgerStub struct{}

func (routerLedgerStub) CheckConsistency(ctx context.Context) (*usecase.ConsistencyReport, error) {
	return &usecase.ConsistencyReport{
		TotalBalance: decimal.NewFromInt(100),
		NetFlow:      decimal.NewFromInt(100),
		Consistent:   true,
	}, nil
}

func newTestRouter(t *testing.T) nethttp.Handler {
	t.Helper()

	m := metrics.NewWith(prometheus.NewRegistry())

	return NewRouter(RouterConfig{
		AccountHandler:     handler.NewAccountHandler(routerAccountStub{}, m),
		TransactionHandler: handler.NewTransactionHandler(routerTransactionStub{}, m),
		AtmHandler:         handler.NewAtmHandler(routerAtmStub{}, m),
		LedgerHandler:      handler.NewLedgerHandler(routerLedgerStub{}),
		UserHandler:        handler.NewUserHandler(routerUserStub{}, nil, m),
		HealthHandler:      handler.NewHealthHandler(nil, nil),
		Logger:             zerolog.Nop(),
		Metrics:            m,
	})
}

func TestRouterHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(nethttp.MethodGet, "/health", nil))

	if rec.Code != nethttp.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRouterTransferRoute(t *testing.T) {
	router := newTestRouter(t)

	body, _ := json.Marshal(dto.TransferRequest{
		FromIBAN: "NL01BANK0000000001",
		ToIBAN:   "NL02BANK0000000002",
		Amount:   decimal.NewFromInt(200),
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(nethttp.MethodPost, "/api/v1/transactions", bytes.NewReader(body)))

	if rec.Code != nethttp.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouterAtmWithdrawRoute(t *testing.T) {
	router := newTestRouter(t)

	body, _ := json.Marshal(dto.AtmRequest{IBAN: "NL01BANK0000000001", Amount: decimal.NewFromInt(100)})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(nethttp.MethodPost, "/api/v1/atm/withdraw", bytes.NewReader(body)))

	if rec.Code != nethttp.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouterConsistencyRoute(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(nethttp.MethodGet, "/api/v1/ledger/consistency", nil))

	if rec.Code != nethttp.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.ConsistencyResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Consistent {
		t.Fatalf("expected consistent report, got %+v", resp)
	}
}

func TestRouterUnknownRoute(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(nethttp.MethodGet, "/api/v1/nope", nil))

	if rec.Code != nethttp.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
