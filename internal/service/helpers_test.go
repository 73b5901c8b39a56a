package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"SPENDWISE_BACK-END/internal/config"
	"SPENDWISE_BACK-END/internal/models"
	"SPENDWISE_BACK-END/internal/store/memory"
)

func testJWTConfig() *config.JWTConfig {
	return &config.JWTConfig{
		Secret:         "test-secret",
		AccessTokenTTL: time.Hour,
	}
}

func strPtr(s string) *string {
	return &s
}

func seedCategory(t *testing.T, categories *memory.CategoryStore, userID uuid.UUID, name string) *models.Category {
	t.Helper()
	now := time.Now().UTC()
	category := &models.Category{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, categories.Create(context.Background(), category))
	return category
}

func seedExpense(t *testing.T, expenses *memory.ExpenseStore, userID, categoryID uuid.UUID, amount string, date time.Time) *models.Expense {
	t.Helper()
	parsed, err := decimal.NewFromString(amount)
	require.NoError(t, err)
	now := time.Now().UTC()
	expense := &models.Expense{
		ID:         uuid.New(),
		UserID:     userID,
		CategoryID: categoryID,
		Amount:     parsed,
		Date:       date,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	require.NoError(t, expenses.Create(context.Background(), expense))
	return expense
}

func seedQuickPrice(t *testing.T, quickPrices *memory.QuickPriceStore, userID, categoryID uuid.UUID, name, amount string, description *string) *models.QuickPrice {
	t.Helper()
	parsed, err := decimal.NewFromString(amount)
	require.NoError(t, err)
	now := time.Now().UTC()
	quickPrice := &models.QuickPrice{
		ID:          uuid.New(),
		UserID:      userID,
		CategoryID:  categoryID,
		Name:        name,
		Amount:      parsed,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, quickPrices.Create(context.Background(), quickPrice))
	return quickPrice
}
