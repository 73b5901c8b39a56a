package service

import (
	"context"
	"errors"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"SPENDWISE_BACK-END/internal/apperr"
	"SPENDWISE_BACK-END/internal/dto"
	"SPENDWISE_BACK-END/internal/models"
	"SPENDWISE_BACK-END/internal/store"
	"SPENDWISE_BACK-END/internal/utils"
)

// ExpenseService handles expense CRUD and filtered listing
type ExpenseService struct {
	expenses   store.ExpenseStore
	categories store.CategoryStore
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(expenses store.ExpenseStore, categories store.CategoryStore) *ExpenseService {
	return &ExpenseService{expenses: expenses, categories: categories}
}

// ExpenseListQuery carries the raw expense listing filters as received in
// the query string. Validation and parsing happen in List.
type ExpenseListQuery struct {
	CategoryID string
	StartDate  string
	EndDate    string
	MinAmount  string
	MaxAmount  string
	Page       string
	Limit      string
	SortBy     string
	SortOrder  string
}

// parseAmount parses a decimal amount string and requires it to be positive
func parseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, apperr.BadRequest("Amount must be a decimal number")
	}
	if !amount.IsPositive() {
		return decimal.Decimal{}, apperr.BadRequest("Amount must be greater than zero")
	}
	return amount, nil
}

func parseID(s, what string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, apperr.BadRequest("Invalid " + what + " id")
	}
	return id, nil
}

// requireOwnedCategory verifies the referenced category exists (NotFound)
// and belongs to the user (Forbidden) before any expense write
func requireOwnedCategory(ctx context.Context, categories store.CategoryStore, id, userID uuid.UUID) (*models.Category, error) {
	category, err := categories.GetByID(ctx, id)
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

// lookupCategory returns the category row or nil when it no longer exists
func lookupCategory(ctx context.Context, categories store.CategoryStore, id uuid.UUID) (*models.Category, error) {
	category, err := categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, apperr.Internal("Failed to look up category", err)
	}
	return category, nil
}

func (s *ExpenseService) getOwned(ctx context.Context, id, userID uuid.UUID) (*models.Expense, error) {
	expense, err := s.expenses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("Expense not found")
		}
		return nil, apperr.Internal("Failed to look up expense", err)
	}
	if expense.UserID != userID {
		return nil, apperr.Forbidden("You do not have access to this expense")
	}
	return expense, nil
}

// Create records a new expense. The referenced category must exist and be
// owned by the user; the effective date defaults to now.
func (s *ExpenseService) Create(ctx context.Context, userID uuid.UUID, req dto.CreateExpenseRequest) (*models.Expense, *models.Category, error) {
	categoryID, err := parseID(req.CategoryID, "category")
	if err != nil {
		return nil, nil, err
	}
	amount, err := parseAmount(req.Amount)
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

	category, err := requireOwnedCategory(ctx, s.categories, categoryID, userID)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	expense := &models.Expense{
		ID:          uuid.New(),
		UserID:      userID,
		CategoryID:  categoryID,
		Amount:      amount,
		Description: req.Description,
		Date:        date,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.expenses.Create(ctx, expense); err != nil {
		return nil, nil, apperr.Internal("Failed to create expense", err)
	}
	return expense, category, nil
}

// GetOne returns a single owned expense with its category descriptor
func (s *ExpenseService) GetOne(ctx context.Context, id, userID uuid.UUID) (*models.Expense, *models.Category, error) {
	expense, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return nil, nil, err
	}
	category, err := lookupCategory(ctx, s.categories, expense.CategoryID)
	if err != nil {
		return nil, nil, err
	}
	return expense, category, nil
}

// Update applies a partial update to an owned expense. A changed category id
// is revalidated against the new category.
func (s *ExpenseService) Update(ctx context.Context, id, userID uuid.UUID, req dto.UpdateExpenseRequest) (*models.Expense, *models.Category, error) {
	expense, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return nil, nil, err
	}

	if req.CategoryID != nil {
		categoryID, err := parseID(*req.CategoryID, "category")
		if err != nil {
			return nil, nil, err
		}
		if categoryID != expense.CategoryID {
			if _, err := requireOwnedCategory(ctx, s.categories, categoryID, userID); err != nil {
				return nil, nil, err
			}
		}
		expense.CategoryID = categoryID
	}
	if req.Amount != nil {
		amount, err := parseAmount(*req.Amount)
		if err != nil {
			return nil, nil, err
		}
		expense.Amount = amount
	}
	if req.Description != nil {
		expense.Description = req.Description
	}
	if req.Date != nil {
		parsed, err := utils.ParseDate(*req.Date)
		if err != nil {
			return nil, nil, apperr.BadRequest("Invalid date format: use YYYY-MM-DD or RFC3339")
		}
		expense.Date = parsed
	}

	expense.UpdatedAt = time.Now().UTC()
	if err := s.expenses.Update(ctx, expense); err != nil {
		return nil, nil, apperr.Internal("Failed to update expense", err)
	}
	category, err := lookupCategory(ctx, s.categories, expense.CategoryID)
	if err != nil {
		return nil, nil, err
	}
	return expense, category, nil
}

// Delete removes an owned expense
func (s *ExpenseService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if _, err := s.getOwned(ctx, id, userID); err != nil {
		return err
	}
	if err := s.expenses.Delete(ctx, id); err != nil {
		return apperr.Internal("Failed to delete expense", err)
	}
	return nil
}

// List returns one page of the user's expenses matching the query, the
// categories referenced by that page, and the pagination metadata.
func (s *ExpenseService) List(ctx context.Context, userID uuid.UUID, query ExpenseListQuery) ([]models.Expense, map[uuid.UUID]*models.Category, dto.Pagination, error) {
	filter, err := buildExpenseFilter(query)
	if err != nil {
		return nil, nil, dto.Pagination{}, err
	}

	expenses, total, err := s.expenses.List(ctx, userID, filter)
	if err != nil {
		return nil, nil, dto.Pagination{}, apperr.Internal("Failed to list expenses", err)
	}

	categories, err := categoriesForExpenses(ctx, s.categories, expenses)
	if err != nil {
		return nil, nil, dto.Pagination{}, err
	}

	pagination := dto.Pagination{
		Page:       filter.Page,
		Limit:      filter.Limit,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
	}
	return expenses, categories, pagination, nil
}

// categoriesForExpenses loads the categories referenced by a set of expenses
// into a lookup map. Deleted categories are simply absent.
func categoriesForExpenses(ctx context.Context, categories store.CategoryStore, expenses []models.Expense) (map[uuid.UUID]*models.Category, error) {
	seen := map[uuid.UUID]bool{}
	ids := []uuid.UUID{}
	for _, e := range expenses {
		if !seen[e.CategoryID] {
			seen[e.CategoryID] = true
			ids = append(ids, e.CategoryID)
		}
	}
	rows, err := categories.ListByIDs(ctx, ids)
	if err != nil {
		return nil, apperr.Internal("Failed to load categories", err)
	}
	out := map[uuid.UUID]*models.Category{}
	for i := range rows {
		out[rows[i].ID] = &rows[i]
	}
	return out, nil
}

func buildExpenseFilter(query ExpenseListQuery) (store.ExpenseFilter, error) {
	filter := store.ExpenseFilter{
		Page:      1,
		Limit:     20,
		SortBy:    store.SortByDate,
		SortOrder: store.SortDesc,
	}

	if query.CategoryID != "" {
		id, err := parseID(query.CategoryID, "category")
		if err != nil {
			return filter, err
		}
		filter.CategoryID = &id
	}
	if query.StartDate != "" {
		t, err := utils.ParseDate(query.StartDate)
		if err != nil {
			return filter, apperr.BadRequest("Invalid start date: use YYYY-MM-DD or RFC3339")
		}
		filter.StartDate = &t
	}
	if query.EndDate != "" {
		t, err := utils.ParseDate(query.EndDate)
		if err != nil {
			return filter, apperr.BadRequest("Invalid end date: use YYYY-MM-DD or RFC3339")
		}
		filter.EndDate = &t
	}
	if filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.After(*filter.EndDate) {
		return filter, apperr.BadRequest("Start date must be before end date")
	}

	if query.MinAmount != "" {
		amount, err := decimal.NewFromString(query.MinAmount)
		if err != nil {
			return filter, apperr.BadRequest("Min amount must be a decimal number")
		}
		filter.MinAmount = &amount
	}
	if query.MaxAmount != "" {
		amount, err := decimal.NewFromString(query.MaxAmount)
		if err != nil {
			return filter, apperr.BadRequest("Max amount must be a decimal number")
		}
		filter.MaxAmount = &amount
	}
	if filter.MinAmount != nil && filter.MaxAmount != nil && filter.MinAmount.GreaterThan(*filter.MaxAmount) {
		return filter, apperr.BadRequest("Min amount must be less than or equal to max amount")
	}

	if query.Page != "" {
		page, err := strconv.Atoi(query.Page)
		if err != nil || page < 1 {
			return filter, apperr.BadRequest("Page must be a positive integer")
		}
		filter.Page = page
	}
	if query.Limit != "" {
		limit, err := strconv.Atoi(query.Limit)
		if err != nil || limit < 1 {
			return filter, apperr.BadRequest("Limit must be a positive integer")
		}
		filter.Limit = limit
	}

	switch query.SortBy {
	case "":
	case store.SortByDate, store.SortByAmount, store.SortByCreatedAt:
		filter.SortBy = query.SortBy
	default:
		return filter, apperr.BadRequest("Sort by must be one of: date, amount, createdAt")
	}
	switch query.SortOrder {
	case "":
	case store.SortAsc, store.SortDesc:
		filter.SortOrder = query.SortOrder
	default:
		return filter, apperr.BadRequest("Sort order must be asc or desc")
	}

	return filter, nil
}
