package repository

import (
	"fmt"
	"sync"

	"kost-service/internal/model"
	"kost-service/pkg/textstore"

	"go.uber.org/zap"
)

// UserFile is the record file holding user accounts
const UserFile = "users.txt"

// UserRepository is the owning store for user accounts
type UserRepository struct {
	mu    sync.RWMutex
	store *textstore.Store
	log   *zap.Logger
	users []model.User
}

// NewUserRepository creates the repository and loads the user file
func NewUserRepository(store *textstore.Store, log *zap.Logger) (*UserRepository, error) {
	r := &UserRepository{
		store: store,
		log:   log.With(zap.String("repository", "users")),
	}
	if err := r.Refresh(); err != nil {
		return nil, err
	}
	return r, nil
}

// Refresh discards the in-memory list and reloads it from the record file
func (r *UserRepository) Refresh() error {
	lines, err := r.store.ReadAllLines(UserFile)
	if err != nil {
		return fmt.Errorf("load users: %w", err)
	}

	users, skipped := model.ParseUsers(lines)
	for _, s := range skipped {
		r.log.Warn("skipping malformed user record",
			zap.Int("line", s.Number),
			zap.String("reason", s.Reason))
	}

	r.mu.Lock()
	r.users = users
	r.mu.Unlock()
	return nil
}

func (r *UserRepository) save() error {
	lines := make([]string, len(r.users))
	for i, user := range r.users {
		lines[i] = user.Record()
	}
	return r.store.WriteAllLines(UserFile, lines)
}

// Create appends the user and persists the full list. On a failed save the
// appended user is removed again.
func (r *UserRepository) Create(user model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users = append(r.users, user)
	if err := r.save(); err != nil {
		r.users = r.users[:len(r.users)-1]
		return fmt.Errorf("create user %s: %w", user.ID, err)
	}
	return nil
}

// GetAll returns a copy of all users
func (r *UserRepository) GetAll() []model.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]model.User, len(r.users))
	copy(users, r.users)
	return users
}

// GetByID returns the user with the given id
func (r *UserRepository) GetByID(id string) (model.User, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.ID == id {
			return user, true
		}
	}
	return model.User{}, false
}

// GetByUsername returns the user with the given username
func (r *UserRepository) GetByUsername(username string) (model.User, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Username == username {
			return user, true
		}
	}
	return model.User{}, false
}

// Update replaces the user with the same id and persists the full list. On a
// failed save the previous record is restored.
func (r *UserRepository) Update(user model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(user.ID)
	if idx < 0 {
		return fmt.Errorf("update user %s: %w", user.ID, ErrNotFound)
	}

	prev := r.users[idx]
	r.users[idx] = user
	if err := r.save(); err != nil {
		r.users[idx] = prev
		return fmt.Errorf("update user %s: %w", user.ID, err)
	}
	return nil
}

// Delete removes the user and persists the full list. On a failed save the
// user is re-inserted.
func (r *UserRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("delete user %s: %w", id, ErrNotFound)
	}

	removed := r.users[idx]
	r.users = append(r.users[:idx], r.users[idx+1:]...)
	if err := r.save(); err != nil {
		r.users = append(r.users[:idx], append([]model.User{removed}, r.users[idx:]...)...)
		return fmt.Errorf("delete user %s: %w", id, err)
	}
	return nil
}

// GenerateNewID returns the next sequential user id (U001, U002, ...)
func (r *UserRepository) GenerateNewID() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, len(r.users))
	for i, user := range r.users {
		ids[i] = user.ID
	}
	return nextID(model.UserIDPrefix, ids)
}

// Count returns the number of user accounts
func (r *UserRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}

func (r *UserRepository) indexOf(id string) int {
	for i, user := range r.users {
		if user.ID == id {
			return i
		}
	}
	return -1
}
