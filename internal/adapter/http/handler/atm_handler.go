package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/veldbank/corebank/internal/adapter/http/dto"
	"github.com/veldbank/corebank/internal/domain"
	"github.com/veldbank/corebank/internal/infrastructure/metrics"
)

// AtmService defines the behavior needed by AtmHandler.
type AtmService interface {
	Deposit(ctx context.Context, iban string, amount decimal.Decimal) (*domain.Transaction, error)
	Withdraw(ctx context.Context, iban string, amount decimal.Decimal) (*domain.Transaction, error)
}

// AtmHandler handles ATM deposit and withdrawal requests.
type AtmHandler struct {
	atmUC   AtmService
	metrics *metrics.Metrics
}

// NewAtmHandler creates a new AtmHandler.
func NewAtmHandler(atmUC AtmService, m *metrics.Metrics) *AtmHandler {
	return &AtmHandler{
		atmUC:   atmUC,
		metrics: m,
	}
}

// Deposit adds funds to an account.
func (h *AtmHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	var req dto.AtmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	txn, err := h.atmUC.Deposit(r.Context(), req.IBAN, req.Amount)
	if err != nil {
		h.metrics.AtmErrors.WithLabelValues(errorReason(err)).Inc()

		status := mapDomainError(err)
		writeError(w, status, "failed to deposit", err.Error())

		return
	}

	h.metrics.AtmDeposits.Inc()

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(txn))
}

// Withdraw removes funds from an account.
func (h *AtmHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	var req dto.AtmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	txn, err := h.atmUC.Withdraw(r.Context(), req.IBAN, req.Amount)
	if err != nil {
		h.metrics.AtmErrors.WithLabelValues(errorReason(err)).Inc()

		status := mapDomainError(err)
		writeError(w, status, "failed to withdraw", err.Error())

		return
	}

	h.metrics.AtmWithdrawals.Inc()

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(txn))
}
