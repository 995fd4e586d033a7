package dto

import (
	"github.com/shopspring/decimal"

	"github.com/veldbank/corebank/internal/usecase"
)

// TransferRequest represents a request to execute a peer transfer.
type TransferRequest struct {
	FromIBAN    string          `json:"from_iban"`
	ToIBAN      string          `json:"to_iban"`
	Amount      decimal.Decimal `json:"amount"`
	Description *string         `json:"description,omitempty"`
}

// ToUseCaseInput converts to use case input. The performing user, when
// known, comes from the request context rather than the body.
func (r *TransferRequest) ToUseCaseInput(performingUserID *string) usecase.TransferInput {
	return usecase.TransferInput{
		FromIBAN:         r.FromIBAN,
		ToIBAN:           r.ToIBAN,
		Amount:           r.Amount,
		PerformingUserID: performingUserID,
		Description:      r.Description,
	}
}

// AtmRequest represents an ATM deposit or withdrawal request.
type AtmRequest struct {
	IBAN   string          `json:"iban"`
	Amount decimal.Decimal `json:"amount"`
}

// OpenAccountRequest represents a request to open an account.
type OpenAccountRequest struct {
	UserID string `json:"user_id"`
	Type   string `json:"type"`
}

// CreateUserRequest represents a request to register a user.
type CreateUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PaginationRequest represents pagination parameters.
type PaginationRequest struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}
