package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autoparts/app/models"
	"autoparts/pkg/auth"
)

func TestRegisterAndLogin(t *testing.T) {
	setupDB(t)
	svc := NewAuthService()

	user, token, err := svc.Register("Ana", "ana@example.com", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, models.RoleCliente, user.Role)
	assert.NotEqual(t, "hunter22", user.Password, "password must be stored hashed")

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	logged, token2, err := svc.Login("ana@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
	assert.NotEmpty(t, token2)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	setupDB(t)
	svc := NewAuthService()

	_, _, err := svc.Register("Ana", "ana@example.com", "hunter22")
	require.NoError(t, err)

	_, _, err = svc.Register("Other", "ana@example.com", "different1")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	setupDB(t)
	svc := NewAuthService()

	_, _, err := svc.Register("Ana", "ana@example.com", "hunter22")
	require.NoError(t, err)

	_, _, err = svc.Login("ana@example.com", "wrongpass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Unknown accounts fail with the same error as wrong passwords.
	_, _, err = svc.Login("nobody@example.com", "whatever1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoadRoleReflectsCurrentRole(t *testing.T) {
	setupDB(t)
	svc := NewAuthService()

	user := makeUser(t, "staff@example.com", models.RoleVendedor)

	role, err := svc.LoadRole(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, string(models.RoleVendedor), role)

	// A role change is picked up on the next request, no re-login needed.
	user.Role = models.RoleCliente
	require.NoError(t, NewAdminService().users.Update(&user))

	role, err = svc.LoadRole(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, string(models.RoleCliente), role)
}
