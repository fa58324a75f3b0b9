package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petcarehub/internal/database"
	jwtsvc "petcarehub/internal/pkg/jwt"
	"petcarehub/internal/repository"
)

func setupAuth(t *testing.T) *Service {
	t.Helper()

	db, err := database.Connect(":memory:")
	require.NoError(t, err, "Failed to connect to test database")
	require.NoError(t, repository.Migrate(db))

	jwt := jwtsvc.New("test_secret_key_32_characters_min", 24*time.Hour)
	return NewService(repository.NewUserRepository(db), jwt)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := setupAuth(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, RegisterRequest{
		Email:    "Owner@Example.com",
		Password: "password123",
		Name:     "Pet Owner",
		Role:     "owner",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, reg.Token)
	assert.Equal(t, "owner@example.com", reg.User.Email)
	assert.Equal(t, "owner", reg.User.Role)

	login, err := svc.Login(ctx, LoginRequest{Email: "owner@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, login.User.ID)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := setupAuth(t)
	ctx := context.Background()

	req := RegisterRequest{Email: "owner@example.com", Password: "password123", Name: "Pet Owner", Role: "owner"}
	_, err := svc.Register(ctx, req)
	require.NoError(t, err)

	_, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestRegister_UnknownRole(t *testing.T) {
	svc := setupAuth(t)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "x@example.com",
		Password: "password123",
		Name:     "X",
		Role:     "admin",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := setupAuth(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Email: "owner@example.com", Password: "password123", Name: "Pet Owner", Role: "owner"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, LoginRequest{Email: "owner@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := setupAuth(t)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "nobody@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
