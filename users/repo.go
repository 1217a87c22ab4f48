package users

import "github.com/jrsteele09/go-care-portal/apps"

// UserRepo stores accounts. Every lookup is scoped to one application.
type UserRepo interface {
	// Insert stores a new user. It fails with ErrUserExists when the app
	// already holds the email, checked under the same lock as the write.
	Insert(user *User) error
	Upsert(user *User) error
	Delete(app apps.App, email string) error
	GetByEmail(app apps.App, email string) (*User, error)
	GetByID(app apps.App, id string) (*User, error)
	GetByActivationCode(app apps.App, code string) (*User, error)
	List(app apps.App, offset, limit int) ([]*User, error)
	SetBlocked(app apps.App, email string, blocked bool) error
	SetVerified(app apps.App, email string, verified bool) error
}
