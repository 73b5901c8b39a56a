package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SPENDWISE_BACK-END/internal/apperr"
	"SPENDWISE_BACK-END/internal/dto"
	"SPENDWISE_BACK-END/internal/store/memory"
)

type categoryFixture struct {
	svc         *CategoryService
	categories  *memory.CategoryStore
	expenses    *memory.ExpenseStore
	quickPrices *memory.QuickPriceStore
}

func newCategoryFixture() categoryFixture {
	categories := memory.NewCategoryStore()
	expenses := memory.NewExpenseStore()
	quickPrices := memory.NewQuickPriceStore()
	return categoryFixture{
		svc:         NewCategoryService(categories, expenses, quickPrices),
		categories:  categories,
		expenses:    expenses,
		quickPrices: quickPrices,
	}
}

func TestCategoryService_Create(t *testing.T) {
	ctx := context.Background()
	f := newCategoryFixture()
	userID := uuid.New()

	category, err := f.svc.Create(ctx, userID, dto.CreateCategoryRequest{
		Name:  "Groceries",
		Color: strPtr("#00FF00"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Groceries", category.Name)
	assert.Equal(t, userID, category.UserID)
	require.NotNil(t, category.Color)
	assert.Equal(t, "#00FF00", *category.Color)

	_, err = f.svc.Create(ctx, userID, dto.CreateCategoryRequest{Name: ""})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.Status(err))
}

func TestCategoryService_OwnershipGuard(t *testing.T) {
	ctx := context.Background()
	f := newCategoryFixture()
	owner := uuid.New()
	stranger := uuid.New()
	category := seedCategory(t, f.categories, owner, "Groceries")

	t.Run("missing id is not found", func(t *testing.T) {
		_, err := f.svc.GetOne(ctx, uuid.New(), owner)
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, apperr.Status(err))
	})

	t.Run("foreign resource is forbidden, not hidden", func(t *testing.T) {
		_, err := f.svc.GetOne(ctx, category.ID, stranger)
		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, apperr.Status(err))
	})

	t.Run("owner reads it back", func(t *testing.T) {
		got, err := f.svc.GetOne(ctx, category.ID, owner)
		require.NoError(t, err)
		assert.Equal(t, category.ID, got.ID)
	})
}

func TestCategoryService_Update(t *testing.T) {
	ctx := context.Background()
	f := newCategoryFixture()
	userID := uuid.New()
	category := seedCategory(t, f.categories, userID, "Groceries")

	t.Run("partial update leaves other fields alone", func(t *testing.T) {
		updated, err := f.svc.Update(ctx, category.ID, userID, dto.UpdateCategoryRequest{
			Color: strPtr("#FF0000"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Groceries", updated.Name)
		require.NotNil(t, updated.Color)
		assert.Equal(t, "#FF0000", *updated.Color)
		assert.True(t, updated.UpdatedAt.After(category.UpdatedAt) || updated.UpdatedAt.Equal(category.UpdatedAt))
	})

	t.Run("empty name is rejected", func(t *testing.T) {
		_, err := f.svc.Update(ctx, category.ID, userID, dto.UpdateCategoryRequest{
			Name: strPtr(""),
		})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apperr.Status(err))
	})
}

func TestCategoryService_Delete(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("blocked while an expense references it", func(t *testing.T) {
		f := newCategoryFixture()
		category := seedCategory(t, f.categories, userID, "Groceries")
		seedExpense(t, f.expenses, userID, category.ID, "9.99", time.Now().UTC())

		err := f.svc.Delete(ctx, category.ID, userID)
		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, apperr.Status(err))
	})

	t.Run("blocked while a quick price references it", func(t *testing.T) {
		f := newCategoryFixture()
		category := seedCategory(t, f.categories, userID, "Groceries")
		seedQuickPrice(t, f.quickPrices, userID, category.ID, "Coffee", "3.50", nil)

		err := f.svc.Delete(ctx, category.ID, userID)
		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, apperr.Status(err))
	})

	t.Run("unreferenced category deletes", func(t *testing.T) {
		f := newCategoryFixture()
		category := seedCategory(t, f.categories, userID, "Groceries")

		require.NoError(t, f.svc.Delete(ctx, category.ID, userID))

		_, err := f.svc.GetOne(ctx, category.ID, userID)
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, apperr.Status(err))
	})
}

func TestCategoryService_List(t *testing.T) {
	ctx := context.Background()
	f := newCategoryFixture()
	userID := uuid.New()
	other := uuid.New()
	seedCategory(t, f.categories, userID, "Groceries")
	seedCategory(t, f.categories, userID, "Transport")
	seedCategory(t, f.categories, other, "Rent")

	list, err := f.svc.List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, c := range list {
		assert.Equal(t, userID, c.UserID)
	}
}
