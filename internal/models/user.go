package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account. PasswordHash is nil for accounts
// created through Google sign-in only.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	Name         string    `json:"name" db:"name"`
	PasswordHash *string   `json:"-" db:"password_hash"` // Hidden from JSON responses
	GoogleID     *string   `json:"-" db:"google_id"`
	Picture      *string   `json:"picture" db:"picture"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
