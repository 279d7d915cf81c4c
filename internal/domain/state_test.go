package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestAppStateClone_IsDeep(t *testing.T) {
	state := NewAppState()
	state.BankAccounts = append(state.BankAccounts, Account{ID: 1, Name: "Checking"})
	state.MonthlyData["2026-08"] = &MonthlyBudget{
		MonthlySalary: decimal.NewFromFloat(3000.00),
		Categories:    []Category{{ID: 2, Name: "Food", Icon: DefaultIcon}},
		Expenses:      []Expense{{ID: 3, Description: "Coffee", Date: "2026-08-10"}},
	}

	clone := state.Clone()
	clone.BankAccounts[0].Name = "Mutated"
	clone.MonthlyData["2026-08"].Categories[0].Name = "Mutated"
	clone.MonthlyData["2026-08"].Expenses[0].Description = "Mutated"

	if state.BankAccounts[0].Name != "Checking" {
		t.Error("Expected account untouched by clone mutation")
	}
	if state.MonthlyData["2026-08"].Categories[0].Name != "Food" {
		t.Error("Expected category untouched by clone mutation")
	}
	if state.MonthlyData["2026-08"].Expenses[0].Description != "Coffee" {
		t.Error("Expected expense untouched by clone mutation")
	}
}

func TestAppStateNormalize(t *testing.T) {
	state := &AppState{
		MonthlyData: map[string]*MonthlyBudget{
			"2026-08": {
				Categories: []Category{{ID: 1, Name: "Food"}},
			},
		},
	}

	state.Normalize()

	if state.BankAccounts == nil {
		t.Error("Expected nil accounts repaired to empty slice")
	}
	if state.MonthlyData["2026-08"].Expenses == nil {
		t.Error("Expected nil expenses repaired to empty slice")
	}
	if state.MonthlyData["2026-08"].Categories[0].Icon != DefaultIcon {
		t.Error("Expected empty icon repaired to default")
	}
}

func TestAccountByID(t *testing.T) {
	state := NewAppState()
	state.BankAccounts = append(state.BankAccounts, Account{ID: 1, Name: "Checking"})

	if state.AccountByID(1) == nil {
		t.Error("Expected account 1 found")
	}
	if state.AccountByID(99) != nil {
		t.Error("Expected account 99 missing")
	}
}
