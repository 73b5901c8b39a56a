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
	"SPENDWISE_BACK-END/internal/utils"
)

// QuickPriceService handles quick-price CRUD and instantiation into expenses
type QuickPriceService struct {
	quickPrices store.QuickPriceStore
	expenses    store.ExpenseStore
	categories  store.CategoryStore
}

// NewQuickPriceService creates a new QuickPriceService
func NewQuickPriceService(quickPrices store.QuickPriceStore, expenses store.ExpenseStore, categories store.CategoryStore) *QuickPriceService {
	return &QuickPriceService{quickPrices: quickPrices, expenses: expenses, categories: categories}
}

func (s *QuickPriceService) getOwned(ctx context.Context, id, userID uuid.UUID) (*models.QuickPrice, error) {
	quickPrice, err := s.quickPrices.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("Quick price not found")
		}
		return nil, apperr.Internal("Failed to look up quick price", err)
	}
	if quickPrice.UserID != userID {
		return nil, apperr.Forbidden("You do not have access to this quick price")
	}
	return quickPrice, nil
}

// Create records a new quick price for the user
func (s *QuickPriceService) Create(ctx context.Context, userID uuid.UUID, req dto.CreateQuickPriceRequest) (*models.QuickPrice, *models.Category, error) {
	if req.Name == "" {
		return nil, nil, apperr.BadRequest("Quick price name is required")
	}
	categoryID, err := parseID(req.CategoryID, "category")
	if err != nil {
		return nil, nil, err
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return nil, nil, err
	}

	category, err := requireOwnedCategory(ctx, s.categories, categoryID, userID)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	quickPrice := &models.QuickPrice{
		ID:          uuid.New(),
		UserID:      userID,
		CategoryID:  categoryID,
		Name:        req.Name,
		Amount:      amount,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.quickPrices.Create(ctx, quickPrice); err != nil {
		return nil, nil, apperr.Internal("Failed to create quick price", err)
	}
	return quickPrice, category, nil
}

// List returns the user's quick prices, newest first, with their category
// descriptors
func (s *QuickPriceService) List(ctx context.Context, userID uuid.UUID) ([]models.QuickPrice, map[uuid.UUID]*models.Category, error) {
	quickPrices, err := s.quickPrices.ListByUser(ctx, userID)
	if err != nil {
		return nil, nil, apperr.Internal("Failed to list quick prices", err)
	}
	seen := map[uuid.UUID]bool{}
	ids := []uuid.UUID{}
	for _, q := range quickPrices {
		if !seen[q.CategoryID] {
			seen[q.CategoryID] = true
			ids = append(ids, q.CategoryID)
		}
	}
	rows, err := s.categories.ListByIDs(ctx, ids)
	if err != nil {
		return nil, nil, apperr.Internal("Failed to load categories", err)
	}
	categories := map[uuid.UUID]*models.Category{}
	for i := range rows {
		categories[rows[i].ID] = &rows[i]
	}
	return quickPrices, categories, nil
}

// GetOne returns a single owned quick price with its category descriptor
func (s *QuickPriceService) GetOne(ctx context.Context, id, userID uuid.UUID) (*models.QuickPrice, *models.Category, error) {
	quickPrice, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return nil, nil, err
	}
	category, err := lookupCategory(ctx, s.categories, quickPrice.CategoryID)
	if err != nil {
		return nil, nil, err
	}
	return quickPrice, category, nil
}

// Update applies a partial update to an owned quick price. A changed
// category id is revalidated against the new category.
func (s *QuickPriceService) Update(ctx context.Context, id, userID uuid.UUID, req dto.UpdateQuickPriceRequest) (*models.QuickPrice, *models.Category, error) {
	quickPrice, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return nil, nil, err
	}

	if req.CategoryID != nil {
		categoryID, err := parseID(*req.CategoryID, "category")
		if err != nil {
			return nil, nil, err
		}
		if categoryID != quickPrice.CategoryID {
			if _, err := requireOwnedCategory(ctx, s.categories, categoryID, userID); err != nil {
				return nil, nil, err
			}
		}
		quickPrice.CategoryID = categoryID
	}
	if req.Name != nil {
		if *req.Name == "" {
			return nil, nil, apperr.BadRequest("Quick price name cannot be empty")
		}
		quickPrice.Name = *req.Name
	}
	if req.Amount != nil {
		amount, err := parseAmount(*req.Amount)
		if err != nil {
			return nil, nil, err
		}
		quickPrice.Amount = amount
	}
	if req.Description != nil {
		quickPrice.Description = req.Description
	}

	quickPrice.UpdatedAt = time.Now().UTC()
	if err := s.quickPrices.Update(ctx, quickPrice); err != nil {
		return nil, nil, apperr.Internal("Failed to update quick price", err)
	}
	category, err := lookupCategory(ctx, s.categories, quickPrice.CategoryID)
	if err != nil {
		return nil, nil, err
	}
	return quickPrice, category, nil
}

// Delete removes an owned quick price
func (s *QuickPriceService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if _, err := s.getOwned(ctx, id, userID); err != nil {
		return err
	}
	if err := s.quickPrices.Delete(ctx, id); err != nil {
		return apperr.Internal("Failed to delete quick price", err)
	}
	return nil
}

// Instantiate creates an expense from an owned quick price. The template's
// category must still exist; a quick price may outlive its category, in
// which case instantiation fails with NotFound. The supplied description
// falls back to the stored one, the supplied date to now.
func (s *QuickPriceService) Instantiate(ctx context.Context, id, userID uuid.UUID, req dto.InstantiateQuickPriceRequest) (*models.Expense, *models.Category, error) {
	quickPrice, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return nil, nil, err
	}

	date := time.Now().UTC()
	if req.Date != nil && *req.Date != "" {
		parsed, err := utils.ParseDate(*req.Date)
		if err != nil {
			return nil, nil, apperr.BadRequest("Invalid date format: use YYYY-MM-DD or RFC3339")
		}
		date = parsed
	}

	category, err := s.categories.GetByID(ctx, quickPrice.CategoryID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, apperr.NotFound("Category associated with this quick price no longer exists")
		}
		return nil, nil, apperr.Internal("Failed to look up category", err)
	}

	description := quickPrice.Description
	if req.Description != nil && *req.Description != "" {
		description = req.Description
	}

	now := time.Now().UTC()
	expense := &models.Expense{
		ID:          uuid.New(),
		UserID:      userID,
		CategoryID:  quickPrice.CategoryID,
		Amount:      quickPrice.Amount,
		Description: description,
		Date:        date,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.expenses.Create(ctx, expense); err != nil {
		return nil, nil, apperr.Internal("Failed to create expense", err)
	}
	return expense, category, nil
}
