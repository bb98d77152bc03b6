package workflow

import (
	"strings"

	"payment-portal/internal/core/domain"

	"github.com/shopspring/decimal"
)

// ValidationError is a user-correctable problem with a transfer request.
type ValidationError struct {
	Reason  string // stable, machine-readable
	Message string // shown to the user
}

func (e *ValidationError) Error() string { return e.Reason }

var (
	ErrMissingRecipient = &ValidationError{Reason: "missing recipient", Message: "Please select a recipient"}
	ErrInvalidAmount    = &ValidationError{Reason: "invalid amount", Message: "Please enter a valid amount"}
)

// Validate checks a transfer request; the first failing rule wins.
// The description is unconstrained. On success the parsed amount is returned.
func Validate(req domain.TransferRequest) (decimal.Decimal, error) {
	if req.RecipientID.Empty() {
		return decimal.Zero, ErrMissingRecipient
	}

	amount, ok := ParseAmount(req.Amount)
	if !ok {
		return decimal.Zero, ErrInvalidAmount
	}
	return amount, nil
}

// MaxAmount is the largest transfer amount accepted.
var MaxAmount = decimal.New(1, 15)

// ParseAmount accepts strictly positive plain decimal numbers up to MaxAmount.
// Empty, non-numeric, zero, negative, oversized and exponent-notation inputs
// are rejected.
func ParseAmount(raw string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(raw)
	if s == "" || strings.ContainsAny(s, "eE") {
		return decimal.Zero, false
	}
	amount, err := decimal.NewFromString(s)
	if err != nil || !amount.IsPositive() || amount.GreaterThan(MaxAmount) {
		return decimal.Zero, false
	}
	return amount, true
}
