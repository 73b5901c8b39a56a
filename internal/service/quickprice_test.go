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

type quickPriceFixture struct {
	svc         *QuickPriceService
	quickPrices *memory.QuickPriceStore
	expenses    *memory.ExpenseStore
	categories  *memory.CategoryStore
}

func newQuickPriceFixture() quickPriceFixture {
	quickPrices := memory.NewQuickPriceStore()
	expenses := memory.NewExpenseStore()
	categories := memory.NewCategoryStore()
	return quickPriceFixture{
		svc:         NewQuickPriceService(quickPrices, expenses, categories),
		quickPrices: quickPrices,
		expenses:    expenses,
		categories:  categories,
	}
}

func TestQuickPriceService_Create(t *testing.T) {
	ctx := context.Background()
	f := newQuickPriceFixture()
	userID := uuid.New()
	category := seedCategory(t, f.categories, userID, "Coffee shops")

	quickPrice, got, err := f.svc.Create(ctx, userID, dto.CreateQuickPriceRequest{
		CategoryID:  category.ID.String(),
		Name:        "Morning espresso",
		Amount:      "3.50",
		Description: strPtr("double shot"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Morning espresso", quickPrice.Name)
	assert.Equal(t, "3.5", quickPrice.Amount.String())
	require.NotNil(t, got)
	assert.Equal(t, category.ID, got.ID)

	t.Run("name is required", func(t *testing.T) {
		_, _, err := f.svc.Create(ctx, userID, dto.CreateQuickPriceRequest{
			CategoryID: category.ID.String(),
			Amount:     "3.50",
		})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apperr.Status(err))
	})

	t.Run("foreign category is forbidden", func(t *testing.T) {
		foreign := seedCategory(t, f.categories, uuid.New(), "Not yours")
		_, _, err := f.svc.Create(ctx, userID, dto.CreateQuickPriceRequest{
			CategoryID: foreign.ID.String(),
			Name:       "Sneaky",
			Amount:     "1.00",
		})
		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, apperr.Status(err))
	})
}

func TestQuickPriceService_Update(t *testing.T) {
	ctx := context.Background()
	f := newQuickPriceFixture()
	userID := uuid.New()
	category := seedCategory(t, f.categories, userID, "Coffee shops")
	quickPrice := seedQuickPrice(t, f.quickPrices, userID, category.ID, "Espresso", "3.50", nil)

	updated, _, err := f.svc.Update(ctx, quickPrice.ID, userID, dto.UpdateQuickPriceRequest{
		Amount: strPtr("4.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, "4", updated.Amount.String())
	assert.Equal(t, "Espresso", updated.Name)

	_, _, err = f.svc.Update(ctx, quickPrice.ID, userID, dto.UpdateQuickPriceRequest{
		Name: strPtr(""),
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.Status(err))

	_, _, err = f.svc.Update(ctx, quickPrice.ID, uuid.New(), dto.UpdateQuickPriceRequest{})
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, apperr.Status(err))
}

func TestQuickPriceService_Delete(t *testing.T) {
	ctx := context.Background()
	f := newQuickPriceFixture()
	userID := uuid.New()
	category := seedCategory(t, f.categories, userID, "Coffee shops")
	quickPrice := seedQuickPrice(t, f.quickPrices, userID, category.ID, "Espresso", "3.50", nil)

	require.NoError(t, f.svc.Delete(ctx, quickPrice.ID, userID))

	err := f.svc.Delete(ctx, quickPrice.ID, userID)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.Status(err))
}

func TestQuickPriceService_Instantiate(t *testing.T) {
	ctx := context.Background()

	t.Run("copies category and amount, falls back to stored description", func(t *testing.T) {
		f := newQuickPriceFixture()
		userID := uuid.New()
		category := seedCategory(t, f.categories, userID, "Coffee shops")
		quickPrice := seedQuickPrice(t, f.quickPrices, userID, category.ID, "Espresso", "3.50", strPtr("double shot"))

		expense, got, err := f.svc.Instantiate(ctx, quickPrice.ID, userID, dto.InstantiateQuickPriceRequest{})
		require.NoError(t, err)
		assert.Equal(t, category.ID, expense.CategoryID)
		assert.True(t, expense.Amount.Equal(quickPrice.Amount))
		require.NotNil(t, expense.Description)
		assert.Equal(t, "double shot", *expense.Description)
		require.NotNil(t, got)
		assert.Equal(t, category.ID, got.ID)

		stored, err := f.expenses.GetByID(ctx, expense.ID)
		require.NoError(t, err)
		assert.Equal(t, userID, stored.UserID)
	})

	t.Run("supplied description and date win", func(t *testing.T) {
		f := newQuickPriceFixture()
		userID := uuid.New()
		category := seedCategory(t, f.categories, userID, "Coffee shops")
		quickPrice := seedQuickPrice(t, f.quickPrices, userID, category.ID, "Espresso", "3.50", strPtr("double shot"))

		expense, _, err := f.svc.Instantiate(ctx, quickPrice.ID, userID, dto.InstantiateQuickPriceRequest{
			Date:        strPtr("2024-03-15"),
			Description: strPtr("with oat milk"),
		})
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), expense.Date)
		require.NotNil(t, expense.Description)
		assert.Equal(t, "with oat milk", *expense.Description)
	})

	t.Run("empty supplied description falls back", func(t *testing.T) {
		f := newQuickPriceFixture()
		userID := uuid.New()
		category := seedCategory(t, f.categories, userID, "Coffee shops")
		quickPrice := seedQuickPrice(t, f.quickPrices, userID, category.ID, "Espresso", "3.50", strPtr("double shot"))

		expense, _, err := f.svc.Instantiate(ctx, quickPrice.ID, userID, dto.InstantiateQuickPriceRequest{
			Description: strPtr(""),
		})
		require.NoError(t, err)
		require.NotNil(t, expense.Description)
		assert.Equal(t, "double shot", *expense.Description)
	})

	t.Run("bad date is rejected before writing", func(t *testing.T) {
		f := newQuickPriceFixture()
		userID := uuid.New()
		category := seedCategory(t, f.categories, userID, "Coffee shops")
		quickPrice := seedQuickPrice(t, f.quickPrices, userID, category.ID, "Espresso", "3.50", nil)

		_, _, err := f.svc.Instantiate(ctx, quickPrice.ID, userID, dto.InstantiateQuickPriceRequest{
			Date: strPtr("yesterday"),
		})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apperr.Status(err))
	})

	t.Run("fails when the category no longer exists", func(t *testing.T) {
		f := newQuickPriceFixture()
		userID := uuid.New()
		category := seedCategory(t, f.categories, userID, "Coffee shops")
		quickPrice := seedQuickPrice(t, f.quickPrices, userID, category.ID, "Espresso", "3.50", nil)
		require.NoError(t, f.categories.Delete(ctx, category.ID))

		_, _, err := f.svc.Instantiate(ctx, quickPrice.ID, userID, dto.InstantiateQuickPriceRequest{})
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, apperr.Status(err))
	})

	t.Run("foreign quick price is forbidden", func(t *testing.T) {
		f := newQuickPriceFixture()
		owner := uuid.New()
		category := seedCategory(t, f.categories, owner, "Coffee shops")
		quickPrice := seedQuickPrice(t, f.quickPrices, owner, category.ID, "Espresso", "3.50", nil)

		_, _, err := f.svc.Instantiate(ctx, quickPrice.ID, uuid.New(), dto.InstantiateQuickPriceRequest{})
		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, apperr.Status(err))
	})
}
