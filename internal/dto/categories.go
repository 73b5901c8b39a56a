package dto

import (
	"time"

	"SPENDWISE_BACK-END/internal/models"
)

// CreateCategoryRequest represents the payload for creating a category
type CreateCategoryRequest struct {
	Name  string  `json:"name" validate:"required,min=1,max=100"`
	Color *string `json:"color,omitempty"`
	Icon  *string `json:"icon,omitempty"`
}

// UpdateCategoryRequest carries a partial update: only non-nil fields change
type UpdateCategoryRequest struct {
	Name  *string `json:"name,omitempty"`
	Color *string `json:"color,omitempty"`
	Icon  *string `json:"icon,omitempty"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID        string  `json:"id"`
	UserID    string  `json:"user_id"`
	Name      string  `json:"name"`
	Color     *string `json:"color"`
	Icon      *string `json:"icon"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

// CategoryRef is the compact category descriptor embedded in expense and
// analytics payloads. A nil CategoryRef means the category has been deleted.
type CategoryRef struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Color *string `json:"color"`
	Icon  *string `json:"icon"`
}

// NewCategoryResponse converts a category row to its API view
func NewCategoryResponse(c *models.Category) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID.String(),
		UserID:    c.UserID.String(),
		Name:      c.Name,
		Color:     c.Color,
		Icon:      c.Icon,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
		UpdatedAt: c.UpdatedAt.Format(time.RFC3339),
	}
}

// NewCategoryRef converts a category row to its compact descriptor
func NewCategoryRef(c *models.Category) *CategoryRef {
	if c == nil {
		return nil
	}
	return &CategoryRef{
		ID:    c.ID.String(),
		Name:  c.Name,
		Color: c.Color,
		Icon:  c.Icon,
	}
}
