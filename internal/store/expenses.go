package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"SPENDWISE_BACK-END/internal/models"
)

// PostgresExpenseStore implements ExpenseStore over pgx
type PostgresExpenseStore struct {
	db *pgxpool.Pool
}

// NewPostgresExpenseStore creates a new PostgresExpenseStore
func NewPostgresExpenseStore(db *pgxpool.Pool) *PostgresExpenseStore {
	return &PostgresExpenseStore{db: db}
}

const expenseColumns = "id, user_id, category_id, amount, description, date, created_at, updated_at"

func scanExpense(row pgx.Row) (*models.Expense, error) {
	var e models.Expense
	err := row.Scan(&e.ID, &e.UserID, &e.CategoryID, &e.Amount, &e.Description, &e.Date, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan expense: %w", err)
	}
	return &e, nil
}

func collectExpenses(rows pgx.Rows) ([]models.Expense, error) {
	defer rows.Close()
	expenses := []models.Expense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return expenses, nil
}

func (s *PostgresExpenseStore) Create(ctx context.Context, expense *models.Expense) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO expenses (id, user_id, category_id, amount, description, date, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		expense.ID, expense.UserID, expense.CategoryID, expense.Amount, expense.Description,
		expense.Date, expense.CreatedAt, expense.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

func (s *PostgresExpenseStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Expense, error) {
	row := s.db.QueryRow(ctx,
		"SELECT "+expenseColumns+" FROM expenses WHERE id = $1", id)
	return scanExpense(row)
}

// orderClause maps a validated sort key/direction pair to SQL. Keys outside
// the whitelist fall back to the effective date.
func orderClause(sortBy, sortOrder string) string {
	column := "date"
	switch sortBy {
	case SortByAmount:
		column = "amount"
	case SortByCreatedAt:
		column = "created_at"
	}
	direction := "DESC"
	if sortOrder == SortAsc {
		direction = "ASC"
	}
	return fmt.Sprintf("ORDER BY %s %s", column, direction)
}

func (s *PostgresExpenseStore) List(ctx context.Context, userID uuid.UUID, filter ExpenseFilter) ([]models.Expense, int, error) {
	where := "WHERE user_id = $1"
	args := []any{userID}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		where += fmt.Sprintf(" AND category_id = $%d", len(args))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		where += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		where += fmt.Sprintf(" AND date <= $%d", len(args))
	}
	if filter.MinAmount != nil {
		args = append(args, *filter.MinAmount)
		where += fmt.Sprintf(" AND amount >= $%d", len(args))
	}
	if filter.MaxAmount != nil {
		args = append(args, *filter.MaxAmount)
		where += fmt.Sprintf(" AND amount <= $%d", len(args))
	}

	var total int
	if err := s.db.QueryRow(ctx, "SELECT COUNT(*) FROM expenses "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count expenses: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	args = append(args, filter.Limit, offset)
	query := fmt.Sprintf("SELECT %s FROM expenses %s %s LIMIT $%d OFFSET $%d",
		expenseColumns, where, orderClause(filter.SortBy, filter.SortOrder), len(args)-1, len(args))

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list expenses: %w", err)
	}
	expenses, err := collectExpenses(rows)
	if err != nil {
		return nil, 0, err
	}
	return expenses, total, nil
}

func (s *PostgresExpenseStore) ListByDateRange(ctx context.Context, userID uuid.UUID, from, to *time.Time) ([]models.Expense, error) {
	where := "WHERE user_id = $1"
	args := []any{userID}
	if from != nil {
		args = append(args, *from)
		where += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		where += fmt.Sprintf(" AND date <= $%d", len(args))
	}
	rows, err := s.db.Query(ctx,
		"SELECT "+expenseColumns+" FROM expenses "+where+" ORDER BY date ASC", args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses by date range: %w", err)
	}
	return collectExpenses(rows)
}

func (s *PostgresExpenseStore) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRow(ctx,
		"SELECT COUNT(*) FROM expenses WHERE category_id = $1", categoryID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count expenses by category: %w", err)
	}
	return count, nil
}

func (s *PostgresExpenseStore) Update(ctx context.Context, expense *models.Expense) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE expenses SET category_id = $2, amount = $3, description = $4, date = $5,
		 updated_at = $6 WHERE id = $1`,
		expense.ID, expense.CategoryID, expense.Amount, expense.Description, expense.Date,
		expense.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresExpenseStore) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM expenses WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
