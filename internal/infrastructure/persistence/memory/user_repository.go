package memory

import (
	"context"
	"sync"

	"github.com/opsbots/statusbot/internal/domain/entity"
)

// UserRepository provides an in-memory implementation of repository.UserRepository.
// Thread-safe for concurrent access.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]*entity.User // Slack user ID -> user
}

// NewUserRepository creates a new in-memory user repository.
func NewUserRepository() *UserRepository {
	return &UserRepository{
		users: make(map[string]*entity.User),
	}
}

// FindByID retrieves a user by their Slack ID. Returns nil, nil if not found.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}

	userCopy := *user
	return &userCopy, nil
}

// FindOrCreate retrieves a user, creating one with no status if absent.
func (r *UserRepository) FindOrCreate(ctx context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		user = &entity.User{ID: id}
		r.users[id] = user
	}

	userCopy := *user
	return &userCopy, nil
}

// UpsertStatus overwrites the user's status, creating the user if absent.
func (r *UserRepository) UpsertStatus(ctx context.Context, id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		user = &entity.User{ID: id}
		r.users[id] = user
	}
	user.Status = status

	return nil
}
