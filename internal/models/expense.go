package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense represents a single recorded expense. Date is the effective date
// the expense is attributed to, independent of CreatedAt.
type Expense struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	UserID      uuid.UUID       `json:"user_id" db:"user_id"`
	CategoryID  uuid.UUID       `json:"category_id" db:"category_id"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
	Description *string         `json:"description" db:"description"`
	Date        time.Time       `json:"date" db:"date"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}
