// Package service holds the business logic behind the HTTP handlers. Every
// method validates its input, applies the existence-then-ownership guard for
// single-resource access, and only then mutates the store.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"SPENDWISE_BACK-END/internal/apperr"
	"SPENDWISE_BACK-END/internal/config"
	"SPENDWISE_BACK-END/internal/middleware"
	"SPENDWISE_BACK-END/internal/models"
	"SPENDWISE_BACK-END/internal/store"
)

// AuthService handles registration, login and federated sign-in
type AuthService struct {
	users  store.UserStore
	jwtCfg *config.JWTConfig
}

// NewAuthService creates a new AuthService
func NewAuthService(users store.UserStore, jwtCfg *config.JWTConfig) *AuthService {
	return &AuthService{users: users, jwtCfg: jwtCfg}
}

// Register creates a new account and returns it with a signed token.
// Fails with Conflict when the email is already registered.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*models.User, string, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", apperr.Conflict("User with this email already exists")
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, "", apperr.Internal("Failed to check existing user", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", apperr.Internal("Failed to hash password", err)
	}

	now := time.Now().UTC()
	hash := string(hashed)
	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: &hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", apperr.Internal("Failed to create user", err)
	}

	token, err := middleware.GenerateToken(user.ID, user.Email, s.jwtCfg)
	if err != nil {
		return nil, "", apperr.Internal("Failed to generate token", err)
	}
	return user, token, nil
}

// Login authenticates email/password credentials. The bcrypt comparison is
// constant-time; both unknown-email and bad-password fail identically.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, "", apperr.Unauthorized("Invalid credentials")
		}
		return nil, "", apperr.Internal("Failed to look up user", err)
	}
	if user.PasswordHash == nil {
		// Federated-only account, no password to verify
		return nil, "", apperr.Unauthorized("Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)); err != nil {
		return nil, "", apperr.Unauthorized("Invalid credentials")
	}

	token, err := middleware.GenerateToken(user.ID, user.Email, s.jwtCfg)
	if err != nil {
		return nil, "", apperr.Internal("Failed to generate token", err)
	}
	return user, token, nil
}

// LoginWithGoogle signs in a Google identity, creating the account on first
// sight. Lookup keys on the Google subject id, then falls back to email so
// an existing password account gets linked instead of duplicated.
func (s *AuthService) LoginWithGoogle(ctx context.Context, googleID, email, name string, picture *string) (*models.User, string, error) {
	user, err := s.users.GetByGoogleID(ctx, googleID)
	if errors.Is(err, store.ErrNotFound) {
		user, err = s.users.GetByEmail(ctx, email)
		if err == nil {
			user.GoogleID = &googleID
			user.Picture = picture
			user.UpdatedAt = time.Now().UTC()
			if err := s.users.Update(ctx, user); err != nil {
				return nil, "", apperr.Internal("Failed to link Google account", err)
			}
		} else if errors.Is(err, store.ErrNotFound) {
			now := time.Now().UTC()
			user = &models.User{
				ID:        uuid.New(),
				Email:     email,
				Name:      name,
				GoogleID:  &googleID,
				Picture:   picture,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := s.users.Create(ctx, user); err != nil {
				return nil, "", apperr.Internal("Failed to create user", err)
			}
		} else {
			return nil, "", apperr.Internal("Failed to look up user", err)
		}
	} else if err != nil {
		return nil, "", apperr.Internal("Failed to look up user", err)
	}

	token, err := middleware.GenerateToken(user.ID, user.Email, s.jwtCfg)
	if err != nil {
		return nil, "", apperr.Internal("Failed to generate token", err)
	}
	return user, token, nil
}

// GetUser returns the account for an authenticated identity
func (s *AuthService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, apperr.Internal("Failed to look up user", err)
	}
	return user, nil
}
