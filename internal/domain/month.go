package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// MonthlyBudget holds one month's salary, category allocations and
// expenses. Months are created implicitly on first access, keyed by
// "YYYY-MM".
type MonthlyBudget struct {
	MonthlySalary decimal.Decimal `json:"monthlySalary"`
	Categories    []Category      `json:"categories"`
	Expenses      []Expense       `json:"expenses"`
}

// NewMonthlyBudget returns a month seeded with the default categories.
func NewMonthlyBudget() *MonthlyBudget {
	return &MonthlyBudget{
		MonthlySalary: decimal.Zero,
		Categories:    DefaultCategories(),
		Expenses:      []Expense{},
	}
}

// CategoryByID returns the month's category with the given id, or nil.
func (m *MonthlyBudget) CategoryByID(id int64) *Category {
	for i := range m.Categories {
		if m.Categories[i].ID == id {
			return &m.Categories[i]
		}
	}
	return nil
}

// CategoryByName returns the first category whose name matches
// case-insensitively, or nil.
func (m *MonthlyBudget) CategoryByName(name string) *Category {
	for i := range m.Categories {
		if strings.EqualFold(m.Categories[i].Name, name) {
			return &m.Categories[i]
		}
	}
	return nil
}

// Clone returns a deep copy of the month.
func (m *MonthlyBudget) Clone() *MonthlyBudget {
	clone := &MonthlyBudget{
		MonthlySalary: m.MonthlySalary,
		Categories:    make([]Category, len(m.Categories)),
		Expenses:      make([]Expense, len(m.Expenses)),
	}
	copy(clone.Categories, m.Categories)
	copy(clone.Expenses, m.Expenses)
	return clone
}
