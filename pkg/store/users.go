package store

import (
	"errors"
	"sync"

	"github.com/kmcneely/bloodlink/pkg/core/model"
)

// ErrUserNotFound is returned when a user id is unknown
var ErrUserNotFound = errors.New("user not found")

// UserDirectory holds every account (donors and requesters) by id. Donor
// entries here mirror the DonorDirectory; availability state is owned by
// the donor directory.
type UserDirectory struct {
	mu    sync.Mutex
	users map[string]model.User
}

func NewUserDirectory() *UserDirectory {
	return &UserDirectory{users: make(map[string]model.User)}
}

// Add registers a user account
func (d *UserDirectory) Add(user model.User) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.users[user.ID] = user
}

// Get returns the user with the given id
func (d *UserDirectory) Get(id string) (model.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	user, ok := d.users[id]
	if !ok {
		return model.User{}, ErrUserNotFound
	}
	return user, nil
}
