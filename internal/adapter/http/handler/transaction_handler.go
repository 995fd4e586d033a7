package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/veldbank/corebank/internal/adapter/http/dto"
	"github.com/veldbank/corebank/internal/adapter/http/middleware"
	"github.com/veldbank/corebank/internal/domain"
	"github.com/veldbank/corebank/internal/infrastructure/metrics"
	"github.com/veldbank/corebank/internal/usecase"
)

// TransactionService defines the behavior needed by TransactionHandler.
type TransactionService interface {
	Transfer(ctx context.Context, input usecase.TransferInput) (*domain.Transaction, error)
	GetTransaction(ctx context.Context, id string) (*domain.Transaction, error)
	ListTransactionsByAccount(ctx context.Context, input usecase.ListTransactionsInput) ([]*domain.Transaction, error)
	ListTransactionsSent(ctx context.Context, input usecase.ListTransactionsInput) ([]*domain.Transaction, error)
	ListTransactionsReceived(ctx context.Context, input usecase.ListTransactionsInput) ([]*domain.Transaction, error)
}

// TransactionHandler handles transaction-related HTTP requests.
type TransactionHandler struct {
	transactionUC TransactionService
	metrics       *metrics.Metrics
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionUC TransactionService, m *metrics.Metrics) *TransactionHandler {
	return &TransactionHandler{
		transactionUC: transactionUC,
		metrics:       m,
	}
}

// Create executes a peer transfer.
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	var performingUserID *string
	if user, ok := middleware.GetUserFromContext(r.Context()); ok {
		performingUserID = &user.ID
	}

	start := time.Now()

	txn, err := h.transactionUC.Transfer(r.Context(), req.ToUseCaseInput(performingUserID))
	if err != nil {
		h.metrics.TransferErrors.WithLabelValues(errorReason(err)).Inc()

		status := mapDomainError(err)
		writeError(w, status, "failed to execute transfer", err.Error())

		return
	}

	h.metrics.TransfersCreated.Inc()
	h.metrics.TransferDuration.Observe(time.Since(start).Seconds())
	h.metrics.TransferAmount.Observe(txn.Amount.InexactFloat64())

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(txn))
}

// Get retrieves a transaction by ID.
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}

	txn, err := h.transactionUC.GetTransaction(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get transaction", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(txn))
}

// ListByAccount lists transactions touching an account on either side.
func (h *TransactionHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.transactionUC.ListTransactionsByAccount)
}

// ListSent lists transactions where the account is the source.
func (h *TransactionHandler) ListSent(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.transactionUC.ListTransactionsSent)
}

// ListReceived lists transactions where the account is the destination.
func (h *TransactionHandler) ListReceived(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.transactionUC.ListTransactionsReceived)
}

func (h *TransactionHandler) list(
	w http.ResponseWriter,
	r *http.Request,
	fn func(ctx context.Context, input usecase.ListTransactionsInput) ([]*domain.Transaction, error),
) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	txns, err := fn(r.Context(), usecase.ListTransactionsInput{
		AccountID: accountID,
		Limit:     parseIntQuery(r, "limit", 20),
		Offset:    parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to list transactions", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionsFromDomain(txns))
}

// errorReason labels a rejection for metrics without leaking dynamic values.
func errorReason(err error) string {
	switch domain.KindOf(err) {
	case domain.KindInvalidRequest:
		return "invalid_request"
	case domain.KindNotFound:
		return "not_found"
	case domain.KindUnauthorized:
		return "unauthorized"
	case domain.KindInsufficientFunds:
		return "insufficient_funds"
	default:
		return "storage"
	}
}
