package service

import (
	"testing"

	"github.com/arkhew/moneta/moneta-backend/internal/domain"
	"github.com/shopspring/decimal"
)

func stateWithAccount(initialBalance float64) *domain.AppState {
	state := domain.NewAppState()
	state.BankAccounts = append(state.BankAccounts, domain.Account{
		ID:             1,
		Name:           "Checking",
		InitialBalance: decimal.NewFromFloat(initialBalance),
	})
	return state
}

func TestAccountBalance_NoExpenses(t *testing.T) {
	calculationService := NewCalculationService()
	state := stateWithAccount(1000.00)

	balance := calculationService.AccountBalance(state, 1)
	if !balance.Equal(decimal.NewFromFloat(1000.00)) {
		t.Errorf("Expected balance 1000.00, got %s", balance.String())
	}
}

func TestAccountBalance_ExpenseThenDelete(t *testing.T) {
	calculationService := NewCalculationService()
	state := stateWithAccount(1000.00)
	mb := domain.NewMonthlyBudget()
	mb.Expenses = append(mb.Expenses, domain.Expense{
		ID:            10,
		Description:   "Groceries",
		Amount:        decimal.NewFromFloat(200.00),
		Date:          "2026-08-15",
		BankAccountID: 1,
	})
	state.MonthlyData["2026-08"] = mb

	balance := calculationService.AccountBalance(state, 1)
	if !balance.Equal(decimal.NewFromFloat(800.00)) {
		t.Errorf("Expected balance 800.00 after expense, got %s", balance.String())
	}

	// Removing the expense restores the original balance
	mb.Expenses = mb.Expenses[:0]
	balance = calculationService.AccountBalance(state, 1)
	if !balance.Equal(decimal.NewFromFloat(1000.00)) {
		t.Errorf("Expected balance 1000.00 after delete, got %s", balance.String())
	}
}

func TestAccountBalance_UnknownAccount(t *testing.T) {
	calculationService := NewCalculationService()
	state := stateWithAccount(1000.00)

	balance := calculationService.AccountBalance(state, 99)
	if !balance.IsZero() {
		t.Errorf("Expected zero balance for unknown account, got %s", balance.String())
	}
}

func TestAccountBalance_CrossesMonths(t *testing.T) {
	calculationService := NewCalculationService()
	state := stateWithAccount(1000.00)

	for i, key := range []string{"2026-07", "2026-08"} {
		mb := domain.NewMonthlyBudget()
		mb.Expenses = append(mb.Expenses, domain.Expense{
			ID:            int64(i + 1),
			Description:   "Rent",
			Amount:        decimal.NewFromFloat(100.00),
			Date:          key + "-01",
			BankAccountID: 1,
		})
		state.MonthlyData[key] = mb
	}

	balance := calculationService.AccountBalance(state, 1)
	if !balance.Equal(decimal.NewFromFloat(800.00)) {
		t.Errorf("Expected balance 800.00 across months, got %s", balance.String())
	}
}

func TestTotalBalance_SumsAccountsMinusExpenses(t *testing.T) {
	calculationService := NewCalculationService()
	state := stateWithAccount(1000.00)
	state.BankAccounts = append(state.BankAccounts, domain.Account{
		ID:             2,
		Name:           "Savings",
		InitialBalance: decimal.NewFromFloat(500.00),
	})
	mb := domain.NewMonthlyBudget()
	mb.Expenses = append(mb.Expenses, domain.Expense{
		ID:            1,
		Amount:        decimal.NewFromFloat(300.00),
		Date:          "2026-08-10",
		BankAccountID: 2,
	})
	state.MonthlyData["2026-08"] = mb

	total := calculationService.TotalBalance(state)
	if !total.Equal(decimal.NewFromFloat(1200.00)) {
		t.Errorf("Expected total 1200.00, got %s", total.String())
	}
}

func TestTotalByCategoryName_FirstMatchPerMonth(t *testing.T) {
	calculationService := NewCalculationService()
	state := domain.NewAppState()

	july := domain.NewMonthlyBudget()
	july.Categories = append(july.Categories, domain.Category{
		ID: 1, Name: "Investments", Amount: decimal.NewFromFloat(150.00), Icon: domain.DefaultIcon,
	})
	august := domain.NewMonthlyBudget()
	august.Categories = append(august.Categories,
		domain.Category{ID: 2, Name: "investments", Amount: decimal.NewFromFloat(250.00), Icon: domain.DefaultIcon},
		domain.Category{ID: 3, Name: "INVESTMENTS", Amount: decimal.NewFromFloat(999.00), Icon: domain.DefaultIcon},
	)
	state.MonthlyData["2026-07"] = july
	state.MonthlyData["2026-08"] = august

	total := calculationService.TotalByCategoryName(state, "Investments")
	if !total.Equal(decimal.NewFromFloat(400.00)) {
		t.Errorf("Expected total 400.00 (first match per month), got %s", total.String())
	}
}

func TestTotalByCategoryName_NoMatches(t *testing.T) {
	calculationService := NewCalculationService()
	state := domain.NewAppState()
	state.MonthlyData["2026-08"] = domain.NewMonthlyBudget()

	total := calculationService.TotalByCategoryName(state, "Yachts")
	if !total.IsZero() {
		t.Errorf("Expected zero total, got %s", total.String())
	}
}

func TestRemainingForMonth(t *testing.T) {
	calculationService := NewCalculationService()
	mb := &domain.MonthlyBudget{
		MonthlySalary: decimal.NewFromFloat(3000.00),
		Categories: []domain.Category{
			{ID: 1, Name: "Food", Amount: decimal.NewFromFloat(500.00)},
			{ID: 2, Name: "Bills", Amount: decimal.NewFromFloat(700.00)},
		},
		Expenses: []domain.Expense{
			{ID: 1, Amount: decimal.NewFromFloat(120.00), Date: "2026-08-02"},
		},
	}

	remaining := calculationService.RemainingForMonth(mb)
	if !remaining.Equal(decimal.NewFromFloat(1680.00)) {
		t.Errorf("Expected remaining 1680.00, got %s", remaining.String())
	}
}

func TestRemainingForMonth_CanGoNegative(t *testing.T) {
	calculationService := NewCalculationService()
	mb := &domain.MonthlyBudget{
		MonthlySalary: decimal.NewFromFloat(100.00),
		Expenses: []domain.Expense{
			{ID: 1, Amount: decimal.NewFromFloat(250.00), Date: "2026-08-02"},
		},
	}

	remaining := calculationService.RemainingForMonth(mb)
	if !remaining.Equal(decimal.NewFromFloat(-150.00)) {
		t.Errorf("Expected remaining -150.00, got %s", remaining.String())
	}
}

func TestAllocationPercentages_ZeroSalary(t *testing.T) {
	calculationService := NewCalculationService()
	mb := domain.NewMonthlyBudget()
	mb.Categories[0].Amount = decimal.NewFromFloat(500.00)

	shares := calculationService.AllocationPercentages(mb)
	if shares != nil {
		t.Errorf("Expected no shares at zero salary, got %d", len(shares))
	}
}

func TestAllocationPercentages_SkipsZeroAllocations(t *testing.T) {
	calculationService := NewCalculationService()
	mb := &domain.MonthlyBudget{
		MonthlySalary: decimal.NewFromFloat(2000.00),
		Categories: []domain.Category{
			{ID: 1, Name: "Food", Amount: decimal.NewFromFloat(500.00)},
			{ID: 2, Name: "Bills", Amount: decimal.Zero},
		},
	}

	shares := calculationService.AllocationPercentages(mb)
	if len(shares) != 1 {
		t.Fatalf("Expected 1 share, got %d", len(shares))
	}
	if shares[0].CategoryID != 1 {
		t.Errorf("Expected share for category 1, got %d", shares[0].CategoryID)
	}
	if !shares[0].Share.Equal(decimal.NewFromFloat(0.25)) {
		t.Errorf("Expected share 0.25, got %s", shares[0].Share.String())
	}
}

func TestAllocationPercentages_OverAllocatedNotNormalized(t *testing.T) {
	calculationService := NewCalculationService()
	mb := &domain.MonthlyBudget{
		MonthlySalary: decimal.NewFromFloat(100.00),
		Categories: []domain.Category{
			{ID: 1, Name: "Food", Amount: decimal.NewFromFloat(80.00)},
			{ID: 2, Name: "Bills", Amount: decimal.NewFromFloat(80.00)},
		},
	}

	shares := calculationService.AllocationPercentages(mb)
	sum := decimal.Zero
	for _, share := range shares {
		sum = sum.Add(share.Share)
	}
	if !sum.Equal(decimal.NewFromFloat(1.6)) {
		t.Errorf("Expected shares summing to 1.6, got %s", sum.String())
	}
}

func TestSpentByCategory(t *testing.T) {
	calculationService := NewCalculationService()
	mb := &domain.MonthlyBudget{
		Expenses: []domain.Expense{
			{ID: 1, Amount: decimal.NewFromFloat(30.00), CategoryID: 7, Date: "2026-08-01"},
			{ID: 2, Amount: decimal.NewFromFloat(20.00), CategoryID: 7, Date: "2026-08-02"},
			{ID: 3, Amount: decimal.NewFromFloat(5.00), CategoryID: 9, Date: "2026-08-02"},
		},
	}

	spent := calculationService.SpentByCategory(mb)
	if !spent[7].Equal(decimal.NewFromFloat(50.00)) {
		t.Errorf("Expected 50.00 spent in category 7, got %s", spent[7].String())
	}
	if !spent[9].Equal(decimal.NewFromFloat(5.00)) {
		t.Errorf("Expected 5.00 spent in category 9, got %s", spent[9].String())
	}
}

func TestGroupExpensesByDate_NewestDayFirst(t *testing.T) {
	calculationService := NewCalculationService()
	expenses := []domain.Expense{
		{ID: 3, Description: "Coffee", Date: "2026-08-12", Amount: decimal.NewFromFloat(4.00)},
		{ID: 2, Description: "Lunch", Date: "2026-08-12", Amount: decimal.NewFromFloat(12.00)},
		{ID: 1, Description: "Tickets", Date: "2026-08-10", Amount: decimal.NewFromFloat(40.00)},
	}

	groups := calculationService.GroupExpensesByDate(expenses, "")
	if len(groups) != 2 {
		t.Fatalf("Expected 2 groups, got %d", len(groups))
	}
	if groups[0].Date != "2026-08-12" {
		t.Errorf("Expected newest date first, got %s", groups[0].Date)
	}
	if len(groups[0].Expenses) != 2 || groups[0].Expenses[0].ID != 3 {
		t.Errorf("Expected in-day order preserved, got %+v", groups[0].Expenses)
	}
}

func TestGroupExpensesByDate_Filter(t *testing.T) {
	calculationService := NewCalculationService()
	expenses := []domain.Expense{
		{ID: 1, Description: "Grocery run", Date: "2026-08-12", Amount: decimal.NewFromFloat(30.00)},
		{ID: 2, Description: "Gas", Date: "2026-08-12", Amount: decimal.NewFromFloat(50.00)},
	}

	groups := calculationService.GroupExpensesByDate(expenses, "GROCERY")
	if len(groups) != 1 {
		t.Fatalf("Expected 1 group, got %d", len(groups))
	}
	if len(groups[0].Expenses) != 1 || groups[0].Expenses[0].ID != 1 {
		t.Errorf("Expected only the matching expense, got %+v", groups[0].Expenses)
	}

	groups = calculationService.GroupExpensesByDate(expenses, "yacht")
	if len(groups) != 0 {
		t.Errorf("Expected no groups for unmatched filter, got %d", len(groups))
	}
}
