package service

import (
	"github.com/aarondl/opt/omit"
	"github.com/shopspring/decimal"
)

const (
	defaultCurrency    = "ARS"
	defaultAccountType = "bank_account"
)

// AccountInput is the create request for an account. Zero values take the
// defaults: balance 0, currency ARS, type bank_account.
type AccountInput struct {
	Name           string
	Type           string
	CurrentBalance decimal.Decimal
	Currency       string
}

// AccountPatch carries the editable account fields. The balance is not one
// of them.
type AccountPatch struct {
	Name     omit.Val[string]
	Type     omit.Val[string]
	Currency omit.Val[string]
}

// CurrencyBalance is the total of a user's active accounts in one currency.
type CurrencyBalance struct {
	Currency     string
	Total        decimal.Decimal
	AccountCount int
}

// BalanceSummary reports the active balance of a user. Total adds amounts
// across currencies without conversion; ByCurrency is the exact breakdown.
type BalanceSummary struct {
	Total        decimal.Decimal
	AccountCount int
	ByCurrency   []CurrencyBalance
}
