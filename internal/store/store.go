package store

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"
	"user-admin/internal/entity"
)

// ErrMissingID is returned by UpdateUser for a user that has not been created yet.
var ErrMissingID = errors.New("Missing id")

// API is the backend the store synchronizes with. *client.Client implements it.
type API interface {
	FetchUsers(ctx context.Context) ([]entity.User, error)
	CreateUser(ctx context.Context, name, email string) (*entity.User, error)
	UpdateUser(ctx context.Context, id int64, name, email string) (*entity.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

// State is a point in time copy of the store.
type State struct {
	Users    []entity.User
	Selected *entity.User
	Loading  bool
	Error    string
}

// Store caches the user list of the backend together with the request lifecycle
// flags views render. It is safe for concurrent use. Actions do not cancel each
// other; when two overlap, whichever finishes last decides the shared fields.
type Store struct {
	api API
	log zerolog.Logger

	mu       sync.Mutex
	users    []entity.User
	selected *entity.User
	inflight int
	err      string
}

func New(api API, log zerolog.Logger) *Store {
	return &Store{
		api:   api,
		log:   log.With().Str("component", "store").Logger(),
		users: []entity.User{},
	}
}

// Users returns a copy of the cached list.
func (s *Store) Users() []entity.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]entity.User, len(s.users))
	copy(out, s.users)
	return out
}

// Selected returns a copy of the selected user, or nil.
func (s *Store) Selected() *entity.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	return cloneUser(s.selected)
}

// Loading reports whether at least one action is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.inflight > 0
}

// Err returns the message of the last failed action, or "".
func (s *Store) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.err
}

func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]entity.User, len(s.users))
	copy(users, s.users)
	return State{
		Users:    users,
		Selected: cloneUser(s.selected),
		Loading:  s.inflight > 0,
		Error:    s.err,
	}
}

// Select stores a copy of user as the selection, so edits to it leave the list
// alone until saved. A nil user clears the selection.
func (s *Store) Select(user *entity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.selected = cloneUser(user)
}

// FetchUsers replaces the cached list with the backend's.
func (s *Store) FetchUsers(ctx context.Context) error {
	s.begin()
	users, err := s.api.FetchUsers(ctx)
	return s.end("fetch users", err, func() {
		s.users = append(make([]entity.User, 0, len(users)), users...)
	})
}

// CreateUser creates user on the backend and puts the result first in the list.
func (s *Store) CreateUser(ctx context.Context, user entity.User) (*entity.User, error) {
	s.begin()
	created, err := s.api.CreateUser(ctx, user.Name, user.Email)
	err = s.end("create user", err, func() {
		s.users = append([]entity.User{*created}, s.users...)
	})
	if err != nil {
		return nil, err
	}
	return cloneUser(created), nil
}

// UpdateUser saves user on the backend and replaces the first cached entry with the
// same id by the backend's answer. The list is left as is when no entry matches.
func (s *Store) UpdateUser(ctx context.Context, user entity.User) (*entity.User, error) {
	if user.ID == 0 {
		s.fail("update user", ErrMissingID)
		return nil, ErrMissingID
	}

	s.begin()
	updated, err := s.api.UpdateUser(ctx, user.ID, user.Name, user.Email)
	err = s.end("update user", err, func() {
		for i := range s.users {
			if s.users[i].ID == updated.ID {
				s.users[i] = *updated
				return
			}
		}
		s.log.Debug().Int64("id", updated.ID).Msg("updated user is not cached")
	})
	if err != nil {
		return nil, err
	}
	return cloneUser(updated), nil
}

// DeleteUser deletes the user on the backend and drops every cached entry with that id.
func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	s.begin()
	err := s.api.DeleteUser(ctx, id)
	return s.end("delete user", err, func() {
		kept := make([]entity.User, 0, len(s.users))
		for _, u := range s.users {
			if u.ID != id {
				kept = append(kept, u)
			}
		}
		s.users = kept
	})
}

func (s *Store) begin() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.inflight++
	s.err = ""
}

// end finishes an action started with begin: on success apply runs under the lock,
// on failure the error message is recorded. err is returned unchanged.
func (s *Store) end(action string, err error, apply func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.inflight--
	if err != nil {
		s.err = err.Error()
		s.log.Error().Err(err).Msgf("Error during %s", action)
		return err
	}
	apply()
	return nil
}

func (s *Store) fail(action string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.err = err.Error()
	s.log.Warn().Err(err).Msgf("Rejected %s", action)
}

func cloneUser(u *entity.User) *entity.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
