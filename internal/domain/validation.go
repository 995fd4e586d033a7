package domain

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// ibanRegex matches the account numbers this bank issues (NL followed by two
// check digits, the bank code and a ten digit account number).
var ibanRegex = regexp.MustCompile(`^NL\d{2}[A-Z]{4}\d{10}$`)

// ValidateTransferRequest runs the pre-resolution checks for a peer transfer.
// The order is part of the contract: same-account first, then the zero case,
// then the negative case. The first failure wins and no account is resolved
// afterwards.
func ValidateTransferRequest(fromIBAN, toIBAN string, amount decimal.Decimal) error {
	if fromIBAN == toIBAN {
		return ErrSameAccount
	}

	if err := ValidateAmount(amount); err != nil {
		return err
	}

	return nil
}

// ValidateAmount checks a transfer amount, distinguishing the zero case from
// the negative case. Both are invalid, but consumers rely on separate
// messages.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.IsZero() {
		return ErrZeroAmount
	}

	if amount.IsNegative() {
		return ErrNegativeAmount
	}

	return nil
}

// ValidateIBAN checks the shape of an IBAN at the boundary. The engines
// themselves only check presence; account opening uses this before an IBAN
// is ever stored.
func ValidateIBAN(iban string) error {
	iban = strings.ToUpper(strings.TrimSpace(iban))

	if iban == "" {
		return ErrMissingIBAN
	}

	if !ibanRegex.MatchString(iban) {
		return fmt.Errorf("%w: %q", ErrInvalidIBAN, iban)
	}

	return nil
}
