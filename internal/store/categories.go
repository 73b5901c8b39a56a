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

// PostgresCategoryStore implements CategoryStore over pgx
type PostgresCategoryStore struct {
	db *pgxpool.Pool
}

// NewPostgresCategoryStore creates a new PostgresCategoryStore
func NewPostgresCategoryStore(db *pgxpool.Pool) *PostgresCategoryStore {
	return &PostgresCategoryStore{db: db}
}

const categoryColumns = "id, user_id, name, color, icon, created_at, updated_at"

func scanCategory(row pgx.Row) (*models.Category, error) {
	var c models.Category
	err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Color, &c.Icon, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan category: %w", err)
	}
	return &c, nil
}

func collectCategories(rows pgx.Rows) ([]models.Category, error) {
	defer rows.Close()
	categories := []models.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return categories, nil
}

func (s *PostgresCategoryStore) Create(ctx context.Context, category *models.Category) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO categories (id, user_id, name, color, icon, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		category.ID, category.UserID, category.Name, category.Color, category.Icon,
		category.CreatedAt, category.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (s *PostgresCategoryStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Category, error) {
	rows, err := s.db.Query(ctx,
		"SELECT "+categoryColumns+" FROM categories WHERE user_id = $1 ORDER BY created_at DESC", userID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return collectCategories(rows)
}

func (s *PostgresCategoryStore) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Category, error) {
	if len(ids) == 0 {
		return []models.Category{}, nil
	}
	rows, err := s.db.Query(ctx,
		"SELECT "+categoryColumns+" FROM categories WHERE id = ANY($1)", ids)
	if err != nil {
		return nil, fmt.Errorf("list categories by ids: %w", err)
	}
	return collectCategories(rows)
}

func (s *PostgresCategoryStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	row := s.db.QueryRow(ctx,
		"SELECT "+categoryColumns+" FROM categories WHERE id = $1", id)
	return scanCategory(row)
}

func (s *PostgresCategoryStore) Update(ctx context.Context, category *models.Category) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE categories SET name = $2, color = $3, icon = $4, updated_at = $5 WHERE id = $1`,
		category.ID, category.Name, category.Color, category.Icon, category.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresCategoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM categories WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
