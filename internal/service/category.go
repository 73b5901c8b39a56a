package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"SPENDWISE_BACK-END/internal/apperr"
	"SPENDWISE_BACK-END/internal/dto"
	"SPENDWISE_BACK-END/internal/models"
	"SPENDWISE_BACK-END/internal/store"
)

// CategoryService handles category CRUD
type CategoryService struct {
	categories  store.CategoryStore
	expenses    store.ExpenseStore
	quickPrices store.QuickPriceStore
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categories store.CategoryStore, expenses store.ExpenseStore, quickPrices store.QuickPriceStore) *CategoryService {
	return &CategoryService{categories: categories, expenses: expenses, quickPrices: quickPrices}
}

// getOwned loads a category and applies the ownership guard: NotFound when
// the row does not exist, Forbidden when it belongs to another user.
func (s *CategoryService) getOwned(ctx context.Context, id, userID uuid.UUID) (*models.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("Category not found")
		}
		return nil, apperr.Internal("Failed to look up category", err)
	}
	if category.UserID != userID {
		return nil, apperr.Forbidden("You do not have access to this category")
	}
	return category, nil
}

// Create records a new category for the user
func (s *CategoryService) Create(ctx context.Context, userID uuid.UUID, req dto.CreateCategoryRequest) (*models.Category, error) {
	if req.Name == "" {
		return nil, apperr.BadRequest("Category name is required")
	}
	now := time.Now().UTC()
	category := &models.Category{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      req.Name,
		Color:     req.Color,
		Icon:      req.Icon,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, apperr.Internal("Failed to create category", err)
	}
	return category, nil
}

// List returns the user's categories, newest first
func (s *CategoryService) List(ctx context.Context, userID uuid.UUID) ([]models.Category, error) {
	categories, err := s.categories.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("Failed to list categories", err)
	}
	return categories, nil
}

// GetOne returns a single owned category
func (s *CategoryService) GetOne(ctx context.Context, id, userID uuid.UUID) (*models.Category, error) {
	return s.getOwned(ctx, id, userID)
}

// Update applies a partial update to an owned category
func (s *CategoryService) Update(ctx context.Context, id, userID uuid.UUID, req dto.UpdateCategoryRequest) (*models.Category, error) {
	category, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		if *req.Name == "" {
			return nil, apperr.BadRequest("Category name cannot be empty")
		}
		category.Name = *req.Name
	}
	if req.Color != nil {
		category.Color = req.Color
	}
	if req.Icon != nil {
		category.Icon = req.Icon
	}
	category.UpdatedAt = time.Now().UTC()
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, apperr.Internal("Failed to update category", err)
	}
	return category, nil
}

// Delete removes an owned category. Deletion is blocked with Conflict while
// any expense or quick price still references the category.
func (s *CategoryService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if _, err := s.getOwned(ctx, id, userID); err != nil {
		return err
	}
	expenseCount, err := s.expenses.CountByCategory(ctx, id)
	if err != nil {
		return apperr.Internal("Failed to count category references", err)
	}
	quickPriceCount, err := s.quickPrices.CountByCategory(ctx, id)
	if err != nil {
		return apperr.Internal("Failed to count category references", err)
	}
	if expenseCount > 0 || quickPriceCount > 0 {
		return apperr.Conflict("Category is still referenced by expenses or quick prices")
	}
	if err := s.categories.Delete(ctx, id); err != nil {
		return apperr.Internal("Failed to delete category", err)
	}
	return nil
}
