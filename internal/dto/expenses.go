package dto

import (
	"time"

	"SPENDWISE_BACK-END/internal/models"
)

// CreateExpenseRequest represents the payload for recording an expense.
// Amount is a decimal string; Date defaults to now when omitted.
type CreateExpenseRequest struct {
	CategoryID  string  `json:"category_id" validate:"required,uuid"`
	Amount      string  `json:"amount" validate:"required"`
	Description *string `json:"description,omitempty"`
	Date        *string `json:"date,omitempty"`
}

// UpdateExpenseRequest carries a partial update: only non-nil fields change
type UpdateExpenseRequest struct {
	CategoryID  *string `json:"category_id,omitempty"`
	Amount      *string `json:"amount,omitempty"`
	Description *string `json:"description,omitempty"`
	Date        *string `json:"date,omitempty"`
}

// ExpenseResponse represents an expense in API responses. Amount is a
// decimal string. Category is nil when the referenced category was deleted.
type ExpenseResponse struct {
	ID          string       `json:"id"`
	UserID      string       `json:"user_id"`
	CategoryID  string       `json:"category_id"`
	Category    *CategoryRef `json:"category"`
	Amount      string       `json:"amount"`
	Description *string      `json:"description"`
	Date        string       `json:"date"`
	CreatedAt   string       `json:"created_at"`
	UpdatedAt   string       `json:"updated_at"`
}

// ExpenseListResponse is the paginated expense listing payload
type ExpenseListResponse struct {
	Data       []ExpenseResponse `json:"data"`
	Pagination Pagination        `json:"pagination"`
}

// NewExpenseResponse converts an expense row plus its (possibly deleted)
// category to the API view
func NewExpenseResponse(e *models.Expense, c *models.Category) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID.String(),
		UserID:      e.UserID.String(),
		CategoryID:  e.CategoryID.String(),
		Category:    NewCategoryRef(c),
		Amount:      e.Amount.String(),
		Description: e.Description,
		Date:        e.Date.UTC().Format(time.RFC3339),
		CreatedAt:   e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   e.UpdatedAt.Format(time.RFC3339),
	}
}
