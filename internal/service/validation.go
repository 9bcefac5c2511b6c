package service

import (
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-ledger/internal/errs"
)

const (
	maxNameLength        = 100
	maxDescriptionLength = 255
	currencyLength       = 3
)

var (
	minAccountBalance = decimal.Zero
	maxAccountBalance = decimal.RequireFromString("9999999999.99")
)

// validateMoney checks bounds and that at most two fractional digits are used.
func validateMoney(field string, amount, min, max decimal.Decimal) error {
	if amount.LessThan(min) || amount.GreaterThan(max) {
		return errs.Validation("%s must be between %s and %s", field, min.StringFixed(2), max.StringFixed(2))
	}
	if !amount.Equal(amount.Round(2)) {
		return errs.Validation("%s must have at most two decimal places", field)
	}
	return nil
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errs.Validation("name must not be empty")
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return "", errs.Validation("name must be at most %d characters", maxNameLength)
	}
	return name, nil
}

func validateCurrency(currency string) error {
	if utf8.RuneCountInString(currency) != currencyLength {
		return errs.Validation("currency must be exactly %d characters", currencyLength)
	}
	return nil
}

func validateDescription(description string) error {
	if utf8.RuneCountInString(description) > maxDescriptionLength {
		return errs.Validation("description must be at most %d characters", maxDescriptionLength)
	}
	return nil
}
