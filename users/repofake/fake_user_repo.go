package fakeuserrepo

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-care-portal/apps"
	"github.com/jrsteele09/go-care-portal/internal/errors"
	"github.com/jrsteele09/go-care-portal/users"
)

var _ users.UserRepo = (*FakeUserRepo)(nil)

type appKey struct {
	app apps.App
	key string
}

// FakeUserRepo keeps accounts in memory. Returned users are copies.
type FakeUserRepo struct {
	users    map[appKey]*users.User // (app, id) to user
	emailIds map[appKey]string      // (app, email) to user id
	lock     sync.RWMutex
}

func NewFakeUserRepo() users.UserRepo {
	return &FakeUserRepo{
		users:    make(map[appKey]*users.User),
		emailIds: make(map[appKey]string),
	}
}

func (ur *FakeUserRepo) Insert(user *users.User) error {
	if !user.App.Valid() {
		return fmt.Errorf("insert %q: %w", user.App, errors.ErrUnknownApp)
	}
	ur.lock.Lock()
	defer ur.lock.Unlock()

	if _, ok := ur.emailIds[appKey{user.App, users.NormalizeEmail(user.Email)}]; ok {
		return errors.ErrUserExists
	}
	ur.store(user)
	return nil
}

func (ur *FakeUserRepo) Upsert(user *users.User) error {
	if !user.App.Valid() {
		return fmt.Errorf("upsert %q: %w", user.App, errors.ErrUnknownApp)
	}
	ur.lock.Lock()
	defer ur.lock.Unlock()

	ur.store(user)
	return nil
}

// store requires the write lock.
func (ur *FakeUserRepo) store(user *users.User) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	user.Email = users.NormalizeEmail(user.Email)
	stored := *user
	ur.users[appKey{user.App, user.ID}] = &stored
	ur.emailIds[appKey{user.App, user.Email}] = user.ID
}

func (ur *FakeUserRepo) Delete(app apps.App, email string) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	ek := appKey{app, users.NormalizeEmail(email)}
	userID, ok := ur.emailIds[ek]
	if !ok {
		return errors.ErrUserNotFound
	}
	delete(ur.emailIds, ek)
	delete(ur.users, appKey{app, userID})
	return nil
}

func (ur *FakeUserRepo) GetByEmail(app apps.App, email string) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	user, err := ur.byEmail(app, email)
	if err != nil {
		return nil, err
	}
	copied := *user
	return &copied, nil
}

func (ur *FakeUserRepo) byEmail(app apps.App, email string) (*users.User, error) {
	id, ok := ur.emailIds[appKey{app, users.NormalizeEmail(email)}]
	if !ok {
		return nil, errors.ErrUserNotFound
	}
	return ur.users[appKey{app, id}], nil
}

func (ur *FakeUserRepo) GetByID(app apps.App, id string) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	user, ok := ur.users[appKey{app, id}]
	if !ok {
		return nil, errors.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (ur *FakeUserRepo) GetByActivationCode(app apps.App, code string) (*users.User, error) {
	if code == "" {
		return nil, errors.ErrUserNotFound
	}
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	for k, user := range ur.users {
		if k.app == app && user.ActivationCode == code {
			copied := *user
			return &copied, nil
		}
	}
	return nil, errors.ErrUserNotFound
}

func (ur *FakeUserRepo) List(app apps.App, offset, limit int) ([]*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	userList := make([]*users.User, 0)
	for k, v := range ur.users {
		if k.app != app {
			continue
		}
		copied := *v
		userList = append(userList, &copied)
	}

	sort.Slice(userList, func(i, j int) bool {
		return userList[i].ID < userList[j].ID
	})

	if offset >= len(userList) {
		return []*users.User{}, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(userList) {
		end = len(userList)
	}
	return userList[offset:end], nil
}

func (ur *FakeUserRepo) SetBlocked(app apps.App, email string, blocked bool) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	user, err := ur.byEmail(app, email)
	if err != nil {
		return err
	}
	user.Blocked = blocked
	return nil
}

func (ur *FakeUserRepo) SetVerified(app apps.App, email string, verified bool) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	user, err := ur.byEmail(app, email)
	if err != nil {
		return err
	}
	user.Verified = verified
	return nil
}
