package auth

import (
	"fmt"
	"strings"

	"github.com/jrsteele09/go-care-portal/internal/errors"
	"github.com/jrsteele09/go-care-portal/users"
)

// Validator checks form input before it reaches the user directory.
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// ValidateUserCredentials validates login form input
func (v *Validator) ValidateUserCredentials(email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("%w: email is required", errors.ErrInvalidInput)
	}

	// Basic email format validation
	at := strings.Index(email, "@")
	if at < 1 || !strings.Contains(email[at:], ".") {
		return fmt.Errorf("%w: invalid email format", errors.ErrInvalidInput)
	}

	if password == "" {
		return fmt.Errorf("%w: password is required", errors.ErrInvalidInput)
	}

	return nil
}

// ValidateRegistration validates the sign up form
func (v *Validator) ValidateRegistration(req RegisterRequest) error {
	if err := v.ValidateUserCredentials(req.Email, req.Password); err != nil {
		return err
	}
	if req.Password != req.ConfirmPassword {
		return fmt.Errorf("%w: passwords do not match", errors.ErrInvalidInput)
	}
	return users.ValidatePasswordStrength(req.Password)
}

// ValidateUserState validates user account state (blocked, verified)
func (v *Validator) ValidateUserState(user *users.User) error {
	if user == nil {
		return errors.ErrUserNotFound
	}
	if user.Blocked {
		return errors.ErrUserBlocked
	}
	if !user.Verified {
		return errors.ErrUserNotVerified
	}
	return nil
}
