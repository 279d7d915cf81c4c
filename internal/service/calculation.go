package service

import (
	"sort"
	"strings"

	"github.com/arkhew/moneta/moneta-backend/internal/domain"
	"github.com/arkhew/moneta/moneta-backend/internal/util"
	"github.com/shopspring/decimal"
)

// CalculationService derives display figures from an AppState. Every
// method is a pure function of its inputs: results are recomputed on each
// call and missing references degrade to zero rather than failing.
type CalculationService struct{}

// NewCalculationService creates a new CalculationService
func NewCalculationService() *CalculationService {
	return &CalculationService{}
}

// AccountBalance returns initialBalance minus every expense charged
// against the account, across all months. Category allocations do not
// affect account balances.
func (s *CalculationService) AccountBalance(state *domain.AppState, accountID int64) decimal.Decimal {
	account := state.AccountByID(accountID)
	if account == nil {
		return decimal.Zero
	}

	balance := account.InitialBalance
	for _, mb := range state.MonthlyData {
		for _, exp := range mb.Expenses {
			if exp.BankAccountID == accountID {
				balance = balance.Sub(exp.Amount)
			}
		}
	}
	return balance
}

// TotalBalance returns the sum of all initial balances minus the sum of
// all expenses across all months.
func (s *CalculationService) TotalBalance(state *domain.AppState) decimal.Decimal {
	total := decimal.Zero
	for _, account := range state.BankAccounts {
		total = total.Add(account.InitialBalance)
	}
	for _, mb := range state.MonthlyData {
		for _, exp := range mb.Expenses {
			total = total.Sub(exp.Amount)
		}
	}
	return total
}

// TotalByCategoryName sums the allocated amount of the first
// case-insensitive name match in each month. Used for lifetime
// "Investments" and "Savings" totals.
func (s *CalculationService) TotalByCategoryName(state *domain.AppState, name string) decimal.Decimal {
	total := decimal.Zero
	for _, mb := range state.MonthlyData {
		if cat := mb.CategoryByName(name); cat != nil {
			total = total.Add(cat.Amount)
		}
	}
	return total
}

// RemainingForMonth returns monthlySalary minus the month's category
// allocations minus the month's expenses.
func (s *CalculationService) RemainingForMonth(mb *domain.MonthlyBudget) decimal.Decimal {
	remaining := mb.MonthlySalary
	for _, cat := range mb.Categories {
		remaining = remaining.Sub(cat.Amount)
	}
	for _, exp := range mb.Expenses {
		remaining = remaining.Sub(exp.Amount)
	}
	return remaining
}

// SpentByCategory returns the month's expense total per category id.
func (s *CalculationService) SpentByCategory(mb *domain.MonthlyBudget) map[int64]decimal.Decimal {
	spent := make(map[int64]decimal.Decimal)
	for _, exp := range mb.Expenses {
		spent[exp.CategoryID] = spent[exp.CategoryID].Add(exp.Amount)
	}
	return spent
}

// AllocationShare is one category's share of the month's salary.
type AllocationShare struct {
	CategoryID int64
	Share      decimal.Decimal
}

// AllocationPercentages returns, for each category with a positive
// allocation, its amount divided by the month's salary. No entries are
// returned when the salary is zero or negative. Shares are not normalized:
// an over-allocated month produces shares summing past 1.
func (s *CalculationService) AllocationPercentages(mb *domain.MonthlyBudget) []AllocationShare {
	if !mb.MonthlySalary.IsPositive() {
		return nil
	}

	var shares []AllocationShare
	for _, cat := range mb.Categories {
		if cat.Amount.IsPositive() {
			shares = append(shares, AllocationShare{
				CategoryID: cat.ID,
				Share:      cat.Amount.Div(mb.MonthlySalary),
			})
		}
	}
	return shares
}

// ExpenseGroup holds one day's expenses, in list order.
type ExpenseGroup struct {
	Date     string
	Expenses []domain.Expense
}

// GroupExpensesByDate filters expenses by a case-insensitive substring
// match on the description, then groups them by date with the most recent
// day first. Within a day the month-list order is preserved, which is
// newest-added-first since adds prepend.
func (s *CalculationService) GroupExpensesByDate(expenses []domain.Expense, filter string) []ExpenseGroup {
	filter = strings.ToLower(strings.TrimSpace(filter))

	grouped := make(map[string][]domain.Expense)
	var dates []string
	for _, exp := range expenses {
		if filter != "" && !strings.Contains(strings.ToLower(exp.Description), filter) {
			continue
		}
		if _, seen := grouped[exp.Date]; !seen {
			dates = append(dates, exp.Date)
		}
		grouped[exp.Date] = append(grouped[exp.Date], exp)
	}

	// Newest day first.
	sort.Slice(dates, func(i, j int) bool { return util.CompareDates(dates[i], dates[j]) > 0 })

	groups := make([]ExpenseGroup, len(dates))
	for i, date := range dates {
		groups[i] = ExpenseGroup{Date: date, Expenses: grouped[date]}
	}
	return groups
}
