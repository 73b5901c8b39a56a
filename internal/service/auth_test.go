package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SPENDWISE_BACK-END/internal/apperr"
	"SPENDWISE_BACK-END/internal/middleware"
	"SPENDWISE_BACK-END/internal/store/memory"
)

func newAuthService() (*AuthService, *memory.UserStore) {
	users := memory.NewUserStore()
	return NewAuthService(users, testJWTConfig()), users
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService()

	user, token, err := svc.Register(ctx, "Alice", "alice@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, "Alice", user.Name)
	require.NotNil(t, user.PasswordHash)
	assert.NotEqual(t, "s3cret-pass", *user.PasswordHash)

	claims, err := middleware.ValidateToken(token, testJWTConfig())
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService()

	_, _, err := svc.Register(ctx, "Alice", "alice@example.com", "s3cret-pass")
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, "Other Alice", "alice@example.com", "different-pass")
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperr.Status(err))
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService()

	registered, _, err := svc.Register(ctx, "Alice", "alice@example.com", "s3cret-pass")
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		user, token, err := svc.Login(ctx, "alice@example.com", "s3cret-pass")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
		assert.NotEmpty(t, token)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "alice@example.com", "wrong-pass")
		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, apperr.Status(err))
	})

	t.Run("unknown email", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "nobody@example.com", "s3cret-pass")
		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, apperr.Status(err))
	})
}

func TestAuthService_Login_FederatedOnlyAccount(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService()

	_, _, err := svc.LoginWithGoogle(ctx, "google-sub-1", "bob@example.com", "Bob", nil)
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "bob@example.com", "anything")
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, apperr.Status(err))
}

func TestAuthService_LoginWithGoogle(t *testing.T) {
	ctx := context.Background()

	t.Run("creates account on first sight", func(t *testing.T) {
		svc, users := newAuthService()

		picture := strPtr("https://example.com/bob.png")
		user, token, err := svc.LoginWithGoogle(ctx, "google-sub-1", "bob@example.com", "Bob", picture)
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, "bob@example.com", user.Email)
		require.NotNil(t, user.GoogleID)
		assert.Equal(t, "google-sub-1", *user.GoogleID)
		assert.Nil(t, user.PasswordHash)

		stored, err := users.GetByGoogleID(ctx, "google-sub-1")
		require.NoError(t, err)
		assert.Equal(t, user.ID, stored.ID)
	})

	t.Run("links existing password account by email", func(t *testing.T) {
		svc, _ := newAuthService()

		registered, _, err := svc.Register(ctx, "Alice", "alice@example.com", "s3cret-pass")
		require.NoError(t, err)

		user, _, err := svc.LoginWithGoogle(ctx, "google-sub-2", "alice@example.com", "Alice", nil)
		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
		require.NotNil(t, user.GoogleID)
		assert.Equal(t, "google-sub-2", *user.GoogleID)
	})

	t.Run("repeat login resolves by google id", func(t *testing.T) {
		svc, _ := newAuthService()

		first, _, err := svc.LoginWithGoogle(ctx, "google-sub-3", "carol@example.com", "Carol", nil)
		require.NoError(t, err)
		second, _, err := svc.LoginWithGoogle(ctx, "google-sub-3", "carol@example.com", "Carol", nil)
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
	})
}

func TestAuthService_GetUser(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService()

	registered, _, err := svc.Register(ctx, "Alice", "alice@example.com", "s3cret-pass")
	require.NoError(t, err)

	user, err := svc.GetUser(ctx, registered.ID)
	require.NoError(t, err)
	assert.Equal(t, registered.Email, user.Email)

	_, err = svc.GetUser(ctx, uuid.New())
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.Status(err))
}
