package handler

import (
	"errors"
	"net/http"

	"github.com/arkhew/moneta/moneta-backend/internal/domain"
	"github.com/arkhew/moneta/moneta-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// MonthHandler handles monthly-budget HTTP requests
type MonthHandler struct {
	store       *service.StateStore
	calculation *service.CalculationService
}

// NewMonthHandler creates a new MonthHandler
func NewMonthHandler(store *service.StateStore, calculation *service.CalculationService) *MonthHandler {
	return &MonthHandler{
		store:       store,
		calculation: calculation,
	}
}

// SelectMonthRequest represents the select month request body
type SelectMonthRequest struct {
	Month string `json:"month"`
}

// SetSalaryRequest represents the set salary request body
type SetSalaryRequest struct {
	Amount string `json:"amount"`
}

// CategoryResponse represents a category in API responses. Share is the
// category's fraction of the month's salary, omitted when the salary is
// not positive or the allocation is zero.
type CategoryResponse struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Amount string  `json:"amount"`
	Color  int64   `json:"color"`
	Icon   string  `json:"icon"`
	Share  *string `json:"share,omitempty"`
	Spent  string  `json:"spent"`
}

// MonthResponse represents a month view in API responses
type MonthResponse struct {
	Month         string             `json:"month"`
	MonthlySalary string             `json:"monthlySalary"`
	Remaining     string             `json:"remaining"`
	Categories    []CategoryResponse `json:"categories"`
	ExpenseCount  int                `json:"expenseCount"`
}

// GetCurrent handles GET /api/v1/months/current
func (h *MonthHandler) GetCurrent(c echo.Context) error {
	key := h.store.CurrentMonthKey()
	return h.respondMonth(c, key)
}

// SelectCurrent handles PUT /api/v1/months/current
func (h *MonthHandler) SelectCurrent(c echo.Context) error {
	var req SelectMonthRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	if err := h.store.SelectMonth(req.Month); err != nil {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "month", Message: "Must be a YYYY-MM month key"},
		})
	}

	log.Info().Str("month", req.Month).Msg("Month selected")
	return h.respondMonth(c, req.Month)
}

// GetByKey handles GET /api/v1/months/:key
func (h *MonthHandler) GetByKey(c echo.Context) error {
	return h.respondMonth(c, c.Param("key"))
}

// SetSalary handles PUT /api/v1/months/current/salary
func (h *MonthHandler) SetSalary(c echo.Context) error {
	var req SetSalaryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	h.store.SetSalary(amount)

	log.Info().Str("amount", amount.StringFixed(2)).Msg("Salary updated")
	return h.respondMonth(c, h.store.CurrentMonthKey())
}

func (h *MonthHandler) respondMonth(c echo.Context, key string) error {
	mb, err := h.store.Month(key)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidMonthKey) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "month", Message: "Must be a YYYY-MM month key"},
			})
		}
		log.Error().Err(err).Str("month", key).Msg("Failed to get month")
		return NewInternalError(c, "Failed to get month")
	}

	return c.JSON(http.StatusOK, h.toMonthResponse(key, mb))
}

func (h *MonthHandler) toMonthResponse(key string, mb *domain.MonthlyBudget) MonthResponse {
	shares := make(map[int64]decimal.Decimal)
	for _, share := range h.calculation.AllocationPercentages(mb) {
		shares[share.CategoryID] = share.Share
	}
	spent := h.calculation.SpentByCategory(mb)

	categories := make([]CategoryResponse, len(mb.Categories))
	for i, cat := range mb.Categories {
		categories[i] = toCategoryResponse(cat)
		if share, ok := shares[cat.ID]; ok {
			s := share.StringFixed(4)
			categories[i].Share = &s
		}
		categories[i].Spent = spent[cat.ID].StringFixed(2)
	}

	return MonthResponse{
		Month:         key,
		MonthlySalary: mb.MonthlySalary.StringFixed(2),
		Remaining:     h.calculation.RemainingForMonth(mb).StringFixed(2),
		Categories:    categories,
		ExpenseCount:  len(mb.Expenses),
	}
}

func toCategoryResponse(cat domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:     cat.ID,
		Name:   cat.Name,
		Amount: cat.Amount.StringFixed(2),
		Color:  cat.Color,
		Icon:   cat.Icon,
		Spent:  decimal.Zero.StringFixed(2),
	}
}
