package services

import (
	"context"
	"testing"

	"github.com/selomitta/agenda-be/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser_And_Authenticate(t *testing.T) {
	svc := NewUserService(newTestDB(t))
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, "alice@example.com", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "alice@example.com", created.Email)
	assert.Empty(t, created.PasswordHash, "hash must never leave the service")

	user, err := svc.AuthenticateUser(ctx, "alice@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
	assert.Empty(t, user.PasswordHash)
}

func TestAuthenticateUser_WrongPassword(t *testing.T) {
	svc := NewUserService(newTestDB(t))
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, "alice@example.com", "hunter22")
	require.NoError(t, err)

	_, err = svc.AuthenticateUser(ctx, "alice@example.com", "wrong-password")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
}

func TestAuthenticateUser_UnknownEmail(t *testing.T) {
	svc := NewUserService(newTestDB(t))

	_, err := svc.AuthenticateUser(context.Background(), "nobody@example.com", "whatever1")
	// Unknown email and wrong password collapse into the same error.
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	svc := NewUserService(newTestDB(t))
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, "alice@example.com", "hunter22")
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, "alice@example.com", "another6")
	assert.ErrorIs(t, err, models.ErrDuplicateEmail)
}

func TestGetUserByID_NotFound(t *testing.T) {
	svc := NewUserService(newTestDB(t))

	_, err := svc.GetUserByID(context.Background(), "missing")
	assert.ErrorIs(t, err, models.ErrNotFound)
}
