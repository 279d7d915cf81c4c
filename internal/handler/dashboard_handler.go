package handler

import (
	"net/http"

	"github.com/arkhew/moneta/moneta-backend/internal/service"
	"github.com/labstack/echo/v4"
)

// DashboardHandler serves the aggregated overview
type DashboardHandler struct {
	store       *service.StateStore
	calculation *service.CalculationService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(store *service.StateStore, calculation *service.CalculationService) *DashboardHandler {
	return &DashboardHandler{
		store:       store,
		calculation: calculation,
	}
}

// DashboardResponse represents the dashboard summary. Investments and
// Savings are lifetime totals accumulated across every month.
type DashboardResponse struct {
	TotalBalance string            `json:"totalBalance"`
	Accounts     []AccountResponse `json:"accounts"`
	Investments  string            `json:"investments"`
	Savings      string            `json:"savings"`
	CurrentMonth string            `json:"currentMonth"`
}

// Summary handles GET /api/v1/dashboard/summary
func (h *DashboardHandler) Summary(c echo.Context) error {
	state := h.store.Snapshot()

	accounts := make([]AccountResponse, len(state.BankAccounts))
	for i, account := range state.BankAccounts {
		accounts[i] = AccountResponse{
			ID:             account.ID,
			Name:           account.Name,
			InitialBalance: account.InitialBalance.StringFixed(2),
			CurrentBalance: h.calculation.AccountBalance(state, account.ID).StringFixed(2),
		}
	}

	return c.JSON(http.StatusOK, DashboardResponse{
		TotalBalance: h.calculation.TotalBalance(state).StringFixed(2),
		Accounts:     accounts,
		Investments:  h.calculation.TotalByCategoryName(state, "Investments").StringFixed(2),
		Savings:      h.calculation.TotalByCategoryName(state, "Savings").StringFixed(2),
		CurrentMonth: h.store.CurrentMonthKey(),
	})
}
