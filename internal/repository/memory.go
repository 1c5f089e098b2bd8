package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"user-admin/internal/entity"
)

// MemoryRepository keeps users in process. It follows the MySQL repository's
// contract, including unique emails, and backs the server's memory storage mode.
type MemoryRepository struct {
	mu     sync.RWMutex
	nextID int64
	users  map[int64]entity.User
	now    func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		users: make(map[int64]entity.User),
		now:   time.Now,
	}
}

func (r *MemoryRepository) ListUsers(_ context.Context) ([]entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]entity.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].ID > users[j].ID
	})
	return users, nil
}

func (r *MemoryRepository) GetUserByID(_ context.Context, id int64) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (r *MemoryRepository) CreateUser(_ context.Context, in entity.Payload) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.emailTaken(in.Email, 0) {
		return nil, ErrDuplicateEmail
	}

	r.nextID++
	u := entity.User{
		ID:        r.nextID,
		Name:      in.Name,
		Email:     in.Email,
		CreatedAt: r.now().UTC().Truncate(time.Second),
	}
	r.users[u.ID] = u
	return &u, nil
}

func (r *MemoryRepository) UpdateUser(_ context.Context, id int64, in entity.Payload) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	if r.emailTaken(in.Email, id) {
		return nil, ErrDuplicateEmail
	}

	u.Name = in.Name
	u.Email = in.Email
	r.users[id] = u
	return &u, nil
}

func (r *MemoryRepository) DeleteUser(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *MemoryRepository) emailTaken(email string, except int64) bool {
	for id, u := range r.users {
		if id != except && u.Email == email {
			return true
		}
	}
	return false
}
