package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidOwnerName = errors.New("invalid owner name")
	ErrAmountTooLarge   = errors.New("amount exceeds maximum allowed")
	ErrInvalidScale     = errors.New("amount has more than 2 decimal places")
)

// Validation constants
const (
	MaxOwnerNameLength = 255
	MaxAmount          = "1000000000000" // 1 trillion
	AmountScale        = 2
)

// ValidateOwnerName validates an optional wallet owner label.
func ValidateOwnerName(name string) error {
	name = strings.TrimSpace(name)

	if len(name) > MaxOwnerNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidOwnerName, MaxOwnerNameLength)
	}

	return nil
}

// ValidateAmount validates a deposit/transfer amount: strictly positive,
// fixed scale of 2, bounded.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if amount.Exponent() < -AmountScale {
		return ErrInvalidScale
	}

	maxAmount, _ := decimal.NewFromString(MaxAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxAmount)
	}

	return nil
}

// ValidatePagination clamps pagination parameters.
func ValidatePagination(limit, offset int) (int, int) {
	const maxPageSize = 100
	const defaultPageSize = 20

	if limit <= 0 {
		limit = defaultPageSize
	}

	if limit > maxPageSize {
		limit = maxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
