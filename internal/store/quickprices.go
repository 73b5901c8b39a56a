package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"SPENDWISE_BACK-END/internal/models"
)

// PostgresQuickPriceStore implements QuickPriceStore over pgx
type PostgresQuickPriceStore struct {
	db *pgxpool.Pool
}

// NewPostgresQuickPriceStore creates a new PostgresQuickPriceStore
func NewPostgresQuickPriceStore(db *pgxpool.Pool) *PostgresQuickPriceStore {
	return &PostgresQuickPriceStore{db: db}
}

const quickPriceColumns = "id, user_id, category_id, name, amount, description, created_at, updated_at"

func scanQuickPrice(row pgx.Row) (*models.QuickPrice, error) {
	var q models.QuickPrice
	err := row.Scan(&q.ID, &q.UserID, &q.CategoryID, &q.Name, &q.Amount, &q.Description, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan quick price: %w", err)
	}
	return &q, nil
}

func (s *PostgresQuickPriceStore) Create(ctx context.Context, quickPrice *models.QuickPrice) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO quick_prices (id, user_id, category_id, name, amount, description, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		quickPrice.ID, quickPrice.UserID, quickPrice.CategoryID, quickPrice.Name,
		quickPrice.Amount, quickPrice.Description, quickPrice.CreatedAt, quickPrice.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert quick price: %w", err)
	}
	return nil
}

func (s *PostgresQuickPriceStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.QuickPrice, error) {
	rows, err := s.db.Query(ctx,
		"SELECT "+quickPriceColumns+" FROM quick_prices WHERE user_id = $1 ORDER BY created_at DESC", userID)
	if err != nil {
		return nil, fmt.Errorf("list quick prices: %w", err)
	}
	defer rows.Close()
	quickPrices := []models.QuickPrice{}
	for rows.Next() {
		q, err := scanQuickPrice(rows)
		if err != nil {
			return nil, err
		}
		quickPrices = append(quickPrices, *q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quick prices: %w", err)
	}
	return quickPrices, nil
}

func (s *PostgresQuickPriceStore) GetByID(ctx context.Context, id uuid.UUID) (*models.QuickPrice, error) {
	row := s.db.QueryRow(ctx,
		"SELECT "+quickPriceColumns+" FROM quick_prices WHERE id = $1", id)
	return scanQuickPrice(row)
}

func (s *PostgresQuickPriceStore) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRow(ctx,
		"SELECT COUNT(*) FROM quick_prices WHERE category_id = $1", categoryID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count quick prices by category: %w", err)
	}
	return count, nil
}

func (s *PostgresQuickPriceStore) Update(ctx context.Context, quickPrice *models.QuickPrice) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE quick_prices SET category_id = $2, name = $3, amount = $4, description = $5,
		 updated_at = $6 WHERE id = $1`,
		quickPrice.ID, quickPrice.CategoryID, quickPrice.Name, quickPrice.Amount,
		quickPrice.Description, quickPrice.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update quick price: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresQuickPriceStore) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM quick_prices WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete quick price: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
