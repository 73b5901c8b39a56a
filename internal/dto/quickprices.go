package dto

import (
	"time"

	"SPENDWISE_BACK-END/internal/models"
)

// CreateQuickPriceRequest represents the payload for creating a quick price
type CreateQuickPriceRequest struct {
	CategoryID  string  `json:"category_id" validate:"required,uuid"`
	Name        string  `json:"name" validate:"required,min=1,max=100"`
	Amount      string  `json:"amount" validate:"required"`
	Description *string `json:"description,omitempty"`
}

// UpdateQuickPriceRequest carries a partial update: only non-nil fields change
type UpdateQuickPriceRequest struct {
	CategoryID  *string `json:"category_id,omitempty"`
	Name        *string `json:"name,omitempty"`
	Amount      *string `json:"amount,omitempty"`
	Description *string `json:"description,omitempty"`
}

// InstantiateQuickPriceRequest is the payload for creating an expense from a
// quick price. Both fields fall back to the template's stored values.
type InstantiateQuickPriceRequest struct {
	Date        *string `json:"date,omitempty"`
	Description *string `json:"description,omitempty"`
}

// QuickPriceResponse represents a quick price in API responses
type QuickPriceResponse struct {
	ID          string       `json:"id"`
	UserID      string       `json:"user_id"`
	CategoryID  string       `json:"category_id"`
	Category    *CategoryRef `json:"category"`
	Name        string       `json:"name"`
	Amount      string       `json:"amount"`
	Description *string      `json:"description"`
	CreatedAt   string       `json:"created_at"`
	UpdatedAt   string       `json:"updated_at"`
}

// NewQuickPriceResponse converts a quick price row plus its (possibly
// deleted) category to the API view
func NewQuickPriceResponse(q *models.QuickPrice, c *models.Category) QuickPriceResponse {
	return QuickPriceResponse{
		ID:          q.ID.String(),
		UserID:      q.UserID.String(),
		CategoryID:  q.CategoryID.String(),
		Category:    NewCategoryRef(c),
		Name:        q.Name,
		Amount:      q.Amount.String(),
		Description: q.Description,
		CreatedAt:   q.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   q.UpdatedAt.Format(time.RFC3339),
	}
}
