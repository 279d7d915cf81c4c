package domain

import "github.com/shopspring/decimal"

// Account is a bank account tracked by the user. The initial balance is
// the balance at the time the account was added; the current balance is
// derived by subtracting every expense charged against the account.
type Account struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
}
