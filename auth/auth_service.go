package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-care-portal/apps"
	"github.com/jrsteele09/go-care-portal/internal/errors"
	"github.com/jrsteele09/go-care-portal/sessions"
	"github.com/jrsteele09/go-care-portal/users"
)

// RegisterRequest is the sign up form of either application.
type RegisterRequest struct {
	Email           string
	Password        string
	ConfirmPassword string
	FirstName       string
	LastName        string
}

// Service performs the account actions behind the login, registration and
// activation pages. It never touches cookies; handlers turn its results into
// sessions.
type Service struct {
	users     users.UserRepo
	validator *Validator
	nowTime   func() time.Time // injectable for testing
	newID     func() string
}

// ServiceOption defines a function type to modify the Service instance.
type ServiceOption func(*Service)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowTime = nowFunc
	}
}

// WithIDGenerator sets the generator for session ids and activation codes
func WithIDGenerator(newID func() string) ServiceOption {
	return func(s *Service) {
		s.newID = newID
	}
}

func NewService(repo users.UserRepo, opts ...ServiceOption) *Service {
	s := &Service{
		users:     repo,
		validator: NewValidator(),
		nowTime:   time.Now,
		newID:     func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login checks the credentials of an app account and returns the payload of
// the session to issue. Unknown emails and wrong passwords both return
// ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, app apps.App, email, password string) (*sessions.Payload, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateUserCredentials(email, password); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrInvalidCredentials, err)
	}

	user, err := s.users.GetByEmail(app, email)
	if err != nil {
		return nil, errors.ErrInvalidCredentials
	}
	if !users.CheckPasswordHash(password, user.PasswordHash) {
		return nil, errors.ErrInvalidCredentials
	}
	if err := s.validator.ValidateUserState(user); err != nil {
		return nil, err
	}

	user.LastLogin = s.nowTime()
	if err := s.users.Upsert(user); err != nil {
		return nil, errors.Wrapf(err, "[Service Login] failed to record login for %s", user.ID)
	}

	payload := user.ToPayload(s.newID())
	return &payload, nil
}

// Register creates an unverified account and returns it with its activation code.
func (s *Service) Register(ctx context.Context, app apps.App, req RegisterRequest) (*users.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateRegistration(req); err != nil {
		return nil, err
	}
	if _, err := s.users.GetByEmail(app, req.Email); err == nil {
		return nil, errors.ErrUserExists
	}

	hash, err := users.HashPassword(req.Password)
	if err != nil {
		return nil, errors.Wrapf(err, "[Service Register] failed to hash password")
	}
	user := &users.User{
		App:            app,
		Email:          users.NormalizeEmail(req.Email),
		PasswordHash:   hash,
		FirstName:      strings.TrimSpace(req.FirstName),
		LastName:       strings.TrimSpace(req.LastName),
		DateJoined:     s.nowTime(),
		ActivationCode: s.newID(),
	}
	if err := s.users.Insert(user); err != nil {
		if errors.Is(err, errors.ErrUserExists) {
			return nil, errors.ErrUserExists
		}
		return nil, errors.Wrapf(err, "[Service Register] failed to store user")
	}
	return user, nil
}

// Activate verifies the account holding code. Codes are single use.
func (s *Service) Activate(ctx context.Context, app apps.App, code string) (*users.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	user, err := s.users.GetByActivationCode(app, code)
	if err != nil {
		return nil, errors.ErrInvalidActivationCode
	}
	user.Verified = true
	user.ActivationCode = ""
	if err := s.users.Upsert(user); err != nil {
		return nil, errors.Wrapf(err, "[Service Activate] failed to store user")
	}
	return user, nil
}

// Seed creates a verified account unless one already exists for email.
func (s *Service) Seed(ctx context.Context, app apps.App, email, password string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if _, err := s.users.GetByEmail(app, email); err == nil {
		return false, nil
	}
	hash, err := users.HashPassword(password)
	if err != nil {
		return false, errors.Wrapf(err, "[Service Seed] failed to hash password")
	}
	err = s.users.Upsert(&users.User{
		App:          app,
		Email:        email,
		PasswordHash: hash,
		DateJoined:   s.nowTime(),
		Verified:     true,
	})
	if err != nil {
		return false, errors.Wrapf(err, "[Service Seed] failed to store user")
	}
	return true, nil
}
