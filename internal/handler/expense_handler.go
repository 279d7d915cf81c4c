package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/arkhew/moneta/moneta-backend/internal/domain"
	"github.com/arkhew/moneta/moneta-backend/internal/service"
	"github.com/arkhew/moneta/moneta-backend/internal/util"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ExpenseHandler handles expense HTTP requests
type ExpenseHandler struct {
	store       *service.StateStore
	calculation *service.CalculationService
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(store *service.StateStore, calculation *service.CalculationService) *ExpenseHandler {
	return &ExpenseHandler{
		store:       store,
		calculation: calculation,
	}
}

// CreateExpenseRequest represents the create expense request body
type CreateExpenseRequest struct {
	Description   string `json:"description"`
	Amount        string `json:"amount"`
	Date          string `json:"date"`
	BankAccountID int64  `json:"bankAccountId"`
}

// UpdateExpenseRequest represents the update expense request body
type UpdateExpenseRequest struct {
	Description   string `json:"description"`
	Amount        string `json:"amount"`
	Date          string `json:"date"`
	BankAccountID *int64 `json:"bankAccountId"`
	CategoryID    *int64 `json:"categoryId"`
}

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID            int64  `json:"id"`
	Description   string `json:"description"`
	Amount        string `json:"amount"`
	Date          string `json:"date"`
	BankAccountID int64  `json:"bankAccountId"`
	CategoryID    int64  `json:"categoryId"`
}

// ExpenseGroupResponse represents one day's expenses in the grouped listing
type ExpenseGroupResponse struct {
	Date     string            `json:"date"`
	Total    string            `json:"total"`
	Expenses []ExpenseResponse `json:"expenses"`
}

// Create handles POST /api/v1/expenses
func (h *ExpenseHandler) Create(c echo.Context) error {
	var req CreateExpenseRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	expense, err := h.store.AddExpense(req.Description, amount, req.Date, req.BankAccountID)
	if err != nil {
		return expenseValidationError(c, err)
	}

	log.Info().Int64("expense_id", expense.ID).Str("date", expense.Date).Msg("Expense created")
	return c.JSON(http.StatusCreated, toExpenseResponse(expense))
}

// List handles GET /api/v1/expenses. Expenses for the requested month
// (current month when omitted) are grouped by day, newest day first, and
// optionally filtered by a case-insensitive description substring.
func (h *ExpenseHandler) List(c echo.Context) error {
	key := c.QueryParam("month")
	if key == "" {
		key = h.store.CurrentMonthKey()
	} else if !util.ValidMonthKey(key) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "month", Message: "Must be a YYYY-MM month key"},
		})
	}

	var expenses []domain.Expense
	if mb, ok := h.store.Snapshot().MonthlyData[key]; ok {
		expenses = mb.Expenses
	}

	groups := h.calculation.GroupExpensesByDate(expenses, c.QueryParam("q"))

	resp := make([]ExpenseGroupResponse, len(groups))
	for i, group := range groups {
		total := decimal.Zero
		items := make([]ExpenseResponse, len(group.Expenses))
		for j, expense := range group.Expenses {
			total = total.Add(expense.Amount)
			items[j] = toExpenseResponse(expense)
		}
		resp[i] = ExpenseGroupResponse{
			Date:     group.Date,
			Total:    total.StringFixed(2),
			Expenses: items,
		}
	}

	return c.JSON(http.StatusOK, resp)
}

// Update handles PUT /api/v1/expenses/:id
func (h *ExpenseHandler) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid expense ID", nil)
	}

	var req UpdateExpenseRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	expense := domain.Expense{
		ID:          id,
		Description: req.Description,
		Amount:      amount,
		Date:        req.Date,
	}
	if existing := h.findExpense(id); existing != nil {
		expense.BankAccountID = existing.BankAccountID
		expense.CategoryID = existing.CategoryID
	}
	if req.BankAccountID != nil {
		expense.BankAccountID = *req.BankAccountID
	}
	if req.CategoryID != nil {
		expense.CategoryID = *req.CategoryID
	}

	expense, err = h.store.UpdateExpense(expense)
	if err != nil {
		return expenseValidationError(c, err)
	}

	log.Info().Int64("expense_id", expense.ID).Msg("Expense updated")
	return c.JSON(http.StatusOK, toExpenseResponse(expense))
}

// Delete handles DELETE /api/v1/expenses/:id
func (h *ExpenseHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid expense ID", nil)
	}

	h.store.DeleteExpense(id)

	log.Info().Int64("expense_id", id).Msg("Expense deleted")
	return c.NoContent(http.StatusNoContent)
}

func (h *ExpenseHandler) findExpense(id int64) *domain.Expense {
	for _, mb := range h.store.Snapshot().MonthlyData {
		for i := range mb.Expenses {
			if mb.Expenses[i].ID == id {
				return &mb.Expenses[i]
			}
		}
	}
	return nil
}

func toExpenseResponse(expense domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:            expense.ID,
		Description:   expense.Description,
		Amount:        expense.Amount.StringFixed(2),
		Date:          expense.Date,
		BankAccountID: expense.BankAccountID,
		CategoryID:    expense.CategoryID,
	}
}

func expenseValidationError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrNameRequired):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "description", Message: "Description is required"},
		})
	case errors.Is(err, domain.ErrNameTooLong):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "description", Message: "Description must be 500 characters or less"},
		})
	case errors.Is(err, domain.ErrInvalidDate):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "date", Message: "Must be a YYYY-MM-DD date"},
		})
	default:
		log.Error().Err(err).Msg("Failed to save expense")
		return NewInternalError(c, "Failed to save expense")
	}
}
