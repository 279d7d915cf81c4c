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

// CategoryHandler handles category HTTP requests
type CategoryHandler struct {
	store *service.StateStore
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(store *service.StateStore) *CategoryHandler {
	return &CategoryHandler{store: store}
}

// CreateCategoryRequest represents the create category request body
type CreateCategoryRequest struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// UpdateCategoryRequest represents the update category request body
type UpdateCategoryRequest struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
	Color  *int64 `json:"color"`
	Icon   string `json:"icon"`
}

// Create handles POST /api/v1/categories
func (h *CategoryHandler) Create(c echo.Context) error {
	var req CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	category, err := h.store.AddCategory(req.Name, req.Icon)
	if err != nil {
		return categoryValidationError(c, err)
	}

	log.Info().Int64("category_id", category.ID).Str("name", category.Name).Msg("Category created")
	return c.JSON(http.StatusCreated, toCategoryResponse(category))
}

// Update handles PUT /api/v1/categories/:id
func (h *CategoryHandler) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid category ID", nil)
	}

	var req UpdateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	category := domain.Category{
		ID:     id,
		Name:   req.Name,
		Amount: amount,
		Icon:   req.Icon,
	}
	if req.Color != nil {
		category.Color = *req.Color
	} else if existing := h.findCategory(id); existing != nil {
		category.Color = existing.Color
	}

	category, err = h.store.UpdateCategory(category)
	if err != nil {
		return categoryValidationError(c, err)
	}

	log.Info().Int64("category_id", category.ID).Msg("Category updated")
	return c.JSON(http.StatusOK, toCategoryResponse(category))
}

// Delete handles DELETE /api/v1/categories/:id
func (h *CategoryHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid category ID", nil)
	}

	h.store.DeleteCategory(id)

	log.Info().Int64("category_id", id).Msg("Category deleted")
	return c.NoContent(http.StatusNoContent)
}

func (h *CategoryHandler) findCategory(id int64) *domain.Category {
	for _, mb := range h.store.Snapshot().MonthlyData {
		if cat := mb.CategoryByID(id); cat != nil {
			return cat
		}
	}
	return nil
}

func categoryValidationError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrNameRequired):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "name", Message: "Name is required"},
		})
	case errors.Is(err, domain.ErrNameTooLong):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "name", Message: "Name must be 255 characters or less"},
		})
	default:
		log.Error().Err(err).Msg("Failed to save category")
		return NewInternalError(c, "Failed to save category")
	}
}
