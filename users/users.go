package users

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/jrsteele09/go-care-portal/apps"
	"github.com/jrsteele09/go-care-portal/internal/errors"
	"github.com/jrsteele09/go-care-portal/sessions"
	"golang.org/x/crypto/bcrypt"
)

// User is an account of one application. The same email may exist in both
// applications as two unrelated accounts.
type User struct {
	ID             string    `json:"id,omitempty"`          // Unique identifier within the app
	App            apps.App  `json:"app"`                   // Application the account belongs to
	Email          string    `json:"email,omitempty"`       // User's email address
	PasswordHash   string    `json:"-"`                     // Hashed version of the user's password - never serialize
	FirstName      string    `json:"first_name,omitempty"`  // First name of the user
	LastName       string    `json:"last_name,omitempty"`   // Last name of the user
	DateJoined     time.Time `json:"date_joined,omitempty"` // Date and time when the user registered
	LastLogin      time.Time `json:"last_login,omitempty"`  // Last time the user logged in
	ActivationCode string    `json:"-"`                     // Pending activation code, cleared once used

	Verified bool `json:"verified,omitempty"` // Verified, has the user activated the account
	Blocked  bool `json:"blocked,omitempty"`  // Blocked, has the user been blocked from logging in
}

// ValidatePasswordStrength checks if password meets security requirements:
// - At least 8 characters long
// - Contains uppercase and lowercase letters
// - Contains at least one number
func ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long: %w", errors.ErrWeakPassword)
	}

	var (
		hasUpper  bool
		hasLower  bool
		hasNumber bool
	)

	for _, char := range password {
		if unicode.IsUpper(char) {
			hasUpper = true
		} else if unicode.IsLower(char) {
			hasLower = true
		} else if unicode.IsDigit(char) {
			hasNumber = true
		}
	}

	if !hasUpper {
		return fmt.Errorf("password must contain at least one uppercase letter: %w", errors.ErrWeakPassword)
	}
	if !hasLower {
		return fmt.Errorf("password must contain at least one lowercase letter: %w", errors.ErrWeakPassword)
	}
	if !hasNumber {
		return fmt.Errorf("password must contain at least one number: %w", errors.ErrWeakPassword)
	}

	return nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// NormalizeEmail is the form emails are stored and looked up in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ToPayload builds the session payload issued when the user signs in.
func (u *User) ToPayload(sessionID string) sessions.Payload {
	p := sessions.Payload{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.FirstName,
		LastName:    u.LastName,
		CreatedAt:   formatTime(u.DateJoined),
		LastLoginAt: formatTime(u.LastLogin),
	}
	if sessionID != "" {
		p.SessionID = &sessionID
	}
	return p
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
