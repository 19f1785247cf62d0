package payment

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a wire amount into a decimal without floating-point rounding
func ParseAmount(amount string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return decimal.Zero, DomainError{Field: "amount", Message: "not a decimal number: " + amount}
	}
	return d, nil
}

// FormatAmount renders a decimal the way the API expects amounts on the wire
func FormatAmount(d decimal.Decimal) string {
	return d.String()
}

// ValidateAmount checks that amount is a positive decimal number
func ValidateAmount(amount string) error {
	d, err := ParseAmount(amount)
	if err != nil {
		return err
	}
	if !d.IsPositive() {
		return DomainError{Field: "amount", Message: "must be greater than zero"}
	}
	return nil
}
