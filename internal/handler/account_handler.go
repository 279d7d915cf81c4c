package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/arkhew/moneta/moneta-backend/internal/domain"
	"github.com/arkhew/moneta/moneta-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// AccountHandler handles bank-account HTTP requests
type AccountHandler struct {
	store       *service.StateStore
	calculation *service.CalculationService
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(store *service.StateStore, calculation *service.CalculationService) *AccountHandler {
	return &AccountHandler{
		store:       store,
		calculation: calculation,
	}
}

// CreateAccountRequest represents the create account request body
type CreateAccountRequest struct {
	Name           string `json:"name"`
	InitialBalance string `json:"initialBalance,omitempty"`
}

// UpdateAccountRequest represents the update account request body
type UpdateAccountRequest struct {
	Name           string `json:"name"`
	InitialBalance string `json:"initialBalance"`
}

// AccountResponse represents an account in API responses
type AccountResponse struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	InitialBalance string `json:"initialBalance"`
	CurrentBalance string `json:"currentBalance"`
}

// CreateAccount handles POST /api/v1/accounts
func (h *AccountHandler) CreateAccount(c echo.Context) error {
	var req CreateAccountRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	// Parse initial balance (default to 0)
	initialBalance := decimal.Zero
	if req.InitialBalance != "" {
		var err error
		initialBalance, err = decimal.NewFromString(req.InitialBalance)
		if err != nil {
			return NewValidationError(c, "Invalid initial balance", []ValidationError{
				{Field: "initialBalance", Message: "Must be a valid decimal number"},
			})
		}
	}

	account, err := h.store.AddAccount(req.Name, initialBalance)
	if err != nil {
		if errors.Is(err, domain.ErrNameRequired) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "name", Message: "Name is required"},
			})
		}
		if errors.Is(err, domain.ErrNameTooLong) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "name", Message: "Name must be 255 characters or less"},
			})
		}
		log.Error().Err(err).Msg("Failed to create account")
		return NewInternalError(c, "Failed to create account")
	}

	log.Info().Int64("account_id", account.ID).Str("name", account.Name).Msg("Account created")

	return c.JSON(http.StatusCreated, toAccountResponse(account, account.InitialBalance))
}

// GetAccounts handles GET /api/v1/accounts
func (h *AccountHandler) GetAccounts(c echo.Context) error {
	state := h.store.Snapshot()

	response := make([]AccountResponse, len(state.BankAccounts))
	for i, account := range state.BankAccounts {
		balance := h.calculation.AccountBalance(state, account.ID)
		response[i] = toAccountResponse(account, balance)
	}

	return c.JSON(http.StatusOK, response)
}

// UpdateAccount handles PUT /api/v1/accounts/:id
func (h *AccountHandler) UpdateAccount(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid account ID", nil)
	}

	var req UpdateAccountRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	initialBalance, err := decimal.NewFromString(req.InitialBalance)
	if err != nil {
		return NewValidationError(c, "Invalid initial balance", []ValidationError{
			{Field: "initialBalance", Message: "Must be a valid decimal number"},
		})
	}

	account, err := h.store.UpdateAccount(domain.Account{
		ID:             id,
		Name:           req.Name,
		InitialBalance: initialBalance,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNameRequired) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "name", Message: "Name is required"},
			})
		}
		if errors.Is(err, domain.ErrNameTooLong) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "name", Message: "Name must be 255 characters or less"},
			})
		}
		log.Error().Err(err).Int64("account_id", id).Msg("Failed to update account")
		return NewInternalError(c, "Failed to update account")
	}

	log.Info().Int64("account_id", account.ID).Str("name", account.Name).Msg("Account updated")

	balance := h.calculation.AccountBalance(h.store.Snapshot(), account.ID)
	return c.JSON(http.StatusOK, toAccountResponse(account, balance))
}

// DeleteAccount handles DELETE /api/v1/accounts/:id
// Deleting removes every expense charged against the account; deleting an
// unknown id is a no-op.
func (h *AccountHandler) DeleteAccount(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid account ID", nil)
	}

	h.store.DeleteAccount(id)

	log.Info().Int64("account_id", id).Msg("Account deleted")
	return c.NoContent(http.StatusNoContent)
}

func toAccountResponse(account domain.Account, currentBalance decimal.Decimal) AccountResponse {
	return AccountResponse{
		ID:             account.ID,
		Name:           account.Name,
		InitialBalance: account.InitialBalance.StringFixed(2),
		CurrentBalance: currentBalance.StringFixed(2),
	}
}
