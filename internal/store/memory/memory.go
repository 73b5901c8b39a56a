// Package memory provides in-memory implementations of the store
// repositories. They mirror the Postgres semantics (ordering, inclusive
// range bounds, pagination) and back the service tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"SPENDWISE_BACK-END/internal/models"
	"SPENDWISE_BACK-END/internal/store"
)

// UserStore is an in-memory store.UserStore
type UserStore struct {
	mu    sync.RWMutex
	users map[uuid.UUID]models.User
}

// NewUserStore creates an empty UserStore
func NewUserStore() *UserStore {
	return &UserStore{users: map[uuid.UUID]models.User{}}
}

func (s *UserStore) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = *user
	return nil
}

func (s *UserStore) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

func (s *UserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *UserStore) GetByGoogleID(_ context.Context, googleID string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.GoogleID != nil && *u.GoogleID == googleID {
			u := u
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *UserStore) Update(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; !ok {
		return store.ErrNotFound
	}
	s.users[user.ID] = *user
	return nil
}

// CategoryStore is an in-memory store.CategoryStore
type CategoryStore struct {
	mu         sync.RWMutex
	categories map[uuid.UUID]models.Category
}

// NewCategoryStore creates an empty CategoryStore
func NewCategoryStore() *CategoryStore {
	return &CategoryStore{categories: map[uuid.UUID]models.Category{}}
}

func (s *CategoryStore) Create(_ context.Context, category *models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[category.ID] = *category
	return nil
}

func (s *CategoryStore) ListByUser(_ context.Context, userID uuid.UUID) ([]models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Category{}
	for _, c := range s.categories {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *CategoryStore) ListByIDs(_ context.Context, ids []uuid.UUID) ([]models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Category{}
	for _, id := range ids {
		if c, ok := s.categories[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *CategoryStore) GetByID(_ context.Context, id uuid.UUID) (*models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.categories[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &c, nil
}

func (s *CategoryStore) Update(_ context.Context, category *models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[category.ID]; !ok {
		return store.ErrNotFound
	}
	s.categories[category.ID] = *category
	return nil
}

func (s *CategoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.categories, id)
	return nil
}

// ExpenseStore is an in-memory store.ExpenseStore
type ExpenseStore struct {
	mu       sync.RWMutex
	expenses map[uuid.UUID]models.Expense
}

// NewExpenseStore creates an empty ExpenseStore
func NewExpenseStore() *ExpenseStore {
	return &ExpenseStore{expenses: map[uuid.UUID]models.Expense{}}
}

func (s *ExpenseStore) Create(_ context.Context, expense *models.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses[expense.ID] = *expense
	return nil
}

func (s *ExpenseStore) GetByID(_ context.Context, id uuid.UUID) (*models.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.expenses[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &e, nil
}

func matches(e models.Expense, userID uuid.UUID, f store.ExpenseFilter) bool {
	if e.UserID != userID {
		return false
	}
	if f.CategoryID != nil && e.CategoryID != *f.CategoryID {
		return false
	}
	if f.StartDate != nil && e.Date.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && e.Date.After(*f.EndDate) {
		return false
	}
	if f.MinAmount != nil && e.Amount.LessThan(*f.MinAmount) {
		return false
	}
	if f.MaxAmount != nil && e.Amount.GreaterThan(*f.MaxAmount) {
		return false
	}
	return true
}

func (s *ExpenseStore) List(_ context.Context, userID uuid.UUID, filter store.ExpenseFilter) ([]models.Expense, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	matched := []models.Expense{}
	for _, e := range s.expenses {
		if matches(e, userID, filter) {
			matched = append(matched, e)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		var less bool
		switch filter.SortBy {
		case store.SortByAmount:
			less = matched[i].Amount.LessThan(matched[j].Amount)
		case store.SortByCreatedAt:
			less = matched[i].CreatedAt.Before(matched[j].CreatedAt)
		default:
			less = matched[i].Date.Before(matched[j].Date)
		}
		if filter.SortOrder == store.SortAsc {
			return less
		}
		return !less
	})

	total := len(matched)
	start := (filter.Page - 1) * filter.Limit
	if start >= total {
		return []models.Expense{}, total, nil
	}
	end := start + filter.Limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (s *ExpenseStore) ListByDateRange(_ context.Context, userID uuid.UUID, from, to *time.Time) ([]models.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Expense{}
	for _, e := range s.expenses {
		if e.UserID != userID {
			continue
		}
		if from != nil && e.Date.Before(*from) {
			continue
		}
		if to != nil && e.Date.After(*to) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (s *ExpenseStore) CountByCategory(_ context.Context, categoryID uuid.UUID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, e := range s.expenses {
		if e.CategoryID == categoryID {
			count++
		}
	}
	return count, nil
}

func (s *ExpenseStore) Update(_ context.Context, expense *models.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.expenses[expense.ID]; !ok {
		return store.ErrNotFound
	}
	s.expenses[expense.ID] = *expense
	return nil
}

func (s *ExpenseStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.expenses[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.expenses, id)
	return nil
}

// QuickPriceStore is an in-memory store.QuickPriceStore
type QuickPriceStore struct {
	mu          sync.RWMutex
	quickPrices map[uuid.UUID]models.QuickPrice
}

// NewQuickPriceStore creates an empty QuickPriceStore
func NewQuickPriceStore() *QuickPriceStore {
	return &QuickPriceStore{quickPrices: map[uuid.UUID]models.QuickPrice{}}
}

func (s *QuickPriceStore) Create(_ context.Context, quickPrice *models.QuickPrice) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quickPrices[quickPrice.ID] = *quickPrice
	return nil
}

func (s *QuickPriceStore) ListByUser(_ context.Context, userID uuid.UUID) ([]models.QuickPrice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.QuickPrice{}
	for _, q := range s.quickPrices {
		if q.UserID == userID {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *QuickPriceStore) GetByID(_ context.Context, id uuid.UUID) (*models.QuickPrice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q, ok := s.quickPrices[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &q, nil
}

func (s *QuickPriceStore) CountByCategory(_ context.Context, categoryID uuid.UUID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, q := range s.quickPrices {
		if q.CategoryID == categoryID {
			count++
		}
	}
	return count, nil
}

func (s *QuickPriceStore) Update(_ context.Context, quickPrice *models.QuickPrice) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.quickPrices[quickPrice.ID]; !ok {
		return store.ErrNotFound
	}
	s.quickPrices[quickPrice.ID] = *quickPrice
	return nil
}

func (s *QuickPriceStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.quickPrices[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.quickPrices, id)
	return nil
}
