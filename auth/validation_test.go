package auth_test

import (
	"testing"

	"github.com/jrsteele09/go-care-portal/auth"
	"github.com/jrsteele09/go-care-portal/internal/errors"
	"github.com/jrsteele09/go-care-portal/users"
	"github.com/stretchr/testify/require"
)

func TestValidator_ValidateUserCredentials(t *testing.T) {
	v := auth.NewValidator()

	t.Run("valid credentials", func(t *testing.T) {
		err := v.ValidateUserCredentials("user@example.com", "password123")
		require.NoError(t, err)
	})

	t.Run("empty email", func(t *testing.T) {
		err := v.ValidateUserCredentials("", "password123")
		require.Error(t, err)
		require.Contains(t, err.Error(), "email is required")
	})

	t.Run("invalid email format", func(t *testing.T) {
		err := v.ValidateUserCredentials("userexample.com", "password123")
		require.Error(t, err)
		require.Contains(t, err.Error(), "invalid email format")
	})

	t.Run("dot only before at", func(t *testing.T) {
		err := v.ValidateUserCredentials("user.name@localhost", "password123")
		require.Error(t, err)
		require.Contains(t, err.Error(), "invalid email format")
	})

	t.Run("empty password", func(t *testing.T) {
		err := v.ValidateUserCredentials("user@example.com", "")
		require.Error(t, err)
		require.Contains(t, err.Error(), "password is required")
	})
}

func TestValidator_ValidateRegistration(t *testing.T) {
	v := auth.NewValidator()
	valid := auth.RegisterRequest{Email: "ana@example.com", Password: "Password1", ConfirmPassword: "Password1"}

	require.NoError(t, v.ValidateRegistration(valid))

	mismatch := valid
	mismatch.ConfirmPassword = "Password2"
	err := v.ValidateRegistration(mismatch)
	require.Error(t, err)
	require.Contains(t, err.Error(), "passwords do not match")
	require.ErrorIs(t, err, errors.ErrInvalidInput)

	weak := valid
	weak.Password, weak.ConfirmPassword = "password", "password"
	require.ErrorIs(t, v.ValidateRegistration(weak), errors.ErrWeakPassword)
}

func TestValidator_ValidateUserState(t *testing.T) {
	v := auth.NewValidator()

	require.ErrorIs(t, v.ValidateUserState(nil), errors.ErrUserNotFound)
	require.ErrorIs(t, v.ValidateUserState(&users.User{Verified: true, Blocked: true}), errors.ErrUserBlocked)
	require.ErrorIs(t, v.ValidateUserState(&users.User{}), errors.ErrUserNotVerified)
	require.NoError(t, v.ValidateUserState(&users.User{Verified: true}))
}
