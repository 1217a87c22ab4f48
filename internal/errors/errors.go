package errors

import (
	"errors"
	"fmt"
)

// Common error types for the portal
var (
	// Authentication errors
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrUserBlocked           = errors.New("user is blocked")
	ErrUserNotVerified       = errors.New("user is not verified")
	ErrUserNotFound          = errors.New("user not found")
	ErrUserExists            = errors.New("user already exists")
	ErrInvalidActivationCode = errors.New("invalid activation code")
	ErrWeakPassword          = errors.New("password does not meet requirements")
	ErrInvalidInput          = errors.New("invalid input")

	// Token errors
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Application errors
	ErrUnknownApp = errors.New("unknown application")

	// Routing errors. These indicate a mismatch between code and the route
	// table and are never caused by user input.
	ErrUnknownRoute      = errors.New("unknown route")
	ErrUnknownLocale     = errors.New("unknown locale")
	ErrMissingRouteParam = errors.New("route parameter mismatch")
	ErrInvalidRouteTable = errors.New("invalid route table")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
