package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/veldbank/corebank/internal/domain"
	"github.com/veldbank/corebank/internal/usecase"
)

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID            string          `json:"id"`
	IBAN          string          `json:"iban"`
	Balance       decimal.Decimal `json:"balance"`
	Type          string          `json:"type"`
	UserID        string          `json:"user_id"`
	DateOfOpening time.Time       `json:"date_of_opening"`
	AbsoluteLimit decimal.Decimal `json:"absolute_limit"`
	Active        bool            `json:"active"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:            a.ID,
		IBAN:          a.IBAN,
		Balance:       a.Balance,
		Type:          string(a.Type),
		UserID:        a.UserID,
		DateOfOpening: a.DateOfOpening,
		AbsoluteLimit: a.AbsoluteLimit,
		Active:        a.Active,
		UpdatedAt:     a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ListAccountsResponse wraps a page of accounts.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int64              `json:"total"`
}

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	ID               string          `json:"id"`
	FromAccountID    string          `json:"from_account_id"`
	ToAccountID      string          `json:"to_account_id"`
	Amount           decimal.Decimal `json:"amount"`
	Type             string          `json:"type"`
	ExecutedAt       time.Time       `json:"executed_at"`
	PerformingUserID *string         `json:"performing_user_id,omitempty"`
	Description      *string         `json:"description,omitempty"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:               t.ID,
		FromAccountID:    t.FromAccountID,
		ToAccountID:      t.ToAccountID,
		Amount:           t.Amount,
		Type:             string(t.Type),
		ExecutedAt:       t.ExecutedAt,
		PerformingUserID: t.PerformingUserID,
		Description:      t.Description,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(txns []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(txns))
	for i, t := range txns {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// UserResponse represents a user in API responses. The password hash never
// leaves the server.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// UserFromDomain converts a domain user to a response.
func UserFromDomain(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
	}
}

// TokenResponse represents a login response.
type TokenResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}

// ConsistencyResponse represents the ledger consistency report.
type ConsistencyResponse struct {
	Consistent   bool            `json:"consistent"`
	TotalBalance decimal.Decimal `json:"total_balance"`
	NetFlow      decimal.Decimal `json:"net_flow"`
}

// ConsistencyFromReport converts a consistency report to a response.
func ConsistencyFromReport(r *usecase.ConsistencyReport) *ConsistencyResponse {
	return &ConsistencyResponse{
		Consistent:   r.Consistent,
		TotalBalance: r.TotalBalance,
		NetFlow:      r.NetFlow,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
