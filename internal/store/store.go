// Package store defines narrow per-entity repositories over the relational
// store. Business logic depends only on the interfaces so tests can run
// against the in-memory implementations in store/memory.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"SPENDWISE_BACK-END/internal/models"
)

// ErrNotFound is returned when no row matches the requested id or key
var ErrNotFound = errors.New("not found")

// Expense sort keys accepted by ExpenseFilter
const (
	SortByDate      = "date"
	SortByAmount    = "amount"
	SortByCreatedAt = "createdAt"
)

// Expense sort directions accepted by ExpenseFilter
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// ExpenseFilter narrows and pages an expense listing. Nil bounds are
// unbounded. Page and Limit are 1-based and already validated.
type ExpenseFilter struct {
	CategoryID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	MinAmount  *decimal.Decimal
	MaxAmount  *decimal.Decimal
	Page       int
	Limit      int
	SortBy     string
	SortOrder  string
}

// UserStore persists user accounts
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByGoogleID(ctx context.Context, googleID string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
}

// CategoryStore persists spending categories
type CategoryStore interface {
	Create(ctx context.Context, category *models.Category) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Category, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ExpenseStore persists expenses
type ExpenseStore interface {
	Create(ctx context.Context, expense *models.Expense) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Expense, error)
	// List returns one page of matching rows plus the total match count.
	List(ctx context.Context, userID uuid.UUID, filter ExpenseFilter) ([]models.Expense, int, error)
	// ListByDateRange returns all expenses of the user whose effective date
	// falls within [from, to], both bounds inclusive and nil-unbounded.
	ListByDateRange(ctx context.Context, userID uuid.UUID, from, to *time.Time) ([]models.Expense, error)
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int, error)
	Update(ctx context.Context, expense *models.Expense) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// QuickPriceStore persists quick-price templates
type QuickPriceStore interface {
	Create(ctx context.Context, quickPrice *models.QuickPrice) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.QuickPrice, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.QuickPrice, error)
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int, error)
	Update(ctx context.Context, quickPrice *models.QuickPrice) error
	Delete(ctx context.Context, id uuid.UUID) error
}
