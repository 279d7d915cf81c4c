package domain

import "github.com/shopspring/decimal"

// Expense is a single dated spend against a bank account and a category.
// Date is an ISO "YYYY-MM-DD" calendar date; the expense belongs to the
// month derived from it, independent of which month is currently selected.
type Expense struct {
	ID            int64           `json:"id"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Date          string          `json:"date"`
	BankAccountID int64           `json:"bankAccountId"`
	CategoryID    int64           `json:"categoryId"`
}

// MonthKey returns the "YYYY-MM" key of the month this expense belongs to.
func (e *Expense) MonthKey() string {
	if len(e.Date) < 7 {
		return ""
	}
	return e.Date[:7]
}
