package domain

import "errors"

var (
	// Validation errors
	ErrSameAccount            = errors.New("cannot transfer to the same account")
	ErrZeroAmount             = errors.New("amount must be greater than zero")
	ErrNegativeAmount         = errors.New("amount must be positive")
	ErrMissingIBAN            = errors.New("missing required fields")
	ErrInvalidIBAN            = errors.New("invalid iban")
	ErrInvalidAccountType     = errors.New("invalid account type")
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// Resolution errors
	ErrSourceAccountNotFound      = errors.New("source account not found")
	ErrDestinationAccountNotFound = errors.New("destination account not found")
	ErrPerformingUserNotFound     = errors.New("performing user not found")
	ErrAccountNotFound            = errors.New("account not found")
	ErrInvalidAccountID           = errors.New("invalid account id")
	ErrTransactionNotFound        = errors.New("transaction not found")
	ErrUserNotFound               = errors.New("user not found")

	// Authorization errors
	ErrNotAccountOwner = errors.New("invalid source account for this user")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrInvalidToken    = errors.New("invalid token")
	ErrExpiredToken    = errors.New("token has expired")

	// Funds errors
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// ErrorKind classifies errors for callers that need a status rather than a
// specific sentinel.
type ErrorKind int

const (
	KindStorage ErrorKind = iota
	KindInvalidRequest
	KindNotFound
	KindUnauthorized
	KindInsufficientFunds
)

// KindOf maps an error to its kind. Unknown errors are storage failures:
// they are fatal for the current request and never retried by the core.
func KindOf(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrSameAccount),
		errors.Is(err, ErrZeroAmount),
		errors.Is(err, ErrNegativeAmount),
		errors.Is(err, ErrMissingIBAN),
		errors.Is(err, ErrInvalidIBAN),
		errors.Is(err, ErrInvalidAccountType),
		errors.Is(err, ErrInvalidTransactionType):
		return KindInvalidRequest
	// "invalid account id" is the message consumers expect, but the condition
	// is a failed lookup, so it classifies as not-found.
	case errors.Is(err, ErrInvalidAccountID),
		errors.Is(err, ErrSourceAccountNotFound),
		errors.Is(err, ErrDestinationAccountNotFound),
		errors.Is(err, ErrPerformingUserNotFound),
		errors.Is(err, ErrAccountNotFound),
		errors.Is(err, ErrTransactionNotFound),
		errors.Is(err, ErrUserNotFound):
		return KindNotFound
	case errors.Is(err, ErrNotAccountOwner),
		errors.Is(err, ErrUnauthorized),
		errors.Is(err, ErrInvalidToken),
		errors.Is(err, ErrExpiredToken):
		return KindUnauthorized
	case errors.Is(err, ErrInsufficientFunds):
		return KindInsufficientFunds
	default:
		return KindStorage
	}
}
