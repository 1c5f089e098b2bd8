package service

import (
	"context"

	"github.com/rs/zerolog"
	"user-admin/internal/entity"
	"user-admin/internal/events"
)

// Repository is the user persistence. *repository.UserRepository implements it.
type Repository interface {
	ListUsers(ctx context.Context) ([]entity.User, error)
	GetUserByID(ctx context.Context, id int64) (*entity.User, error)
	CreateUser(ctx context.Context, in entity.Payload) (*entity.User, error)
	UpdateUser(ctx context.Context, id int64, in entity.Payload) (*entity.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

// Cache holds the user list between writes. Lists are stored per version and
// Invalidate moves to a new version.
type Cache interface {
	Version(ctx context.Context) (int64, error)
	GetUsers(ctx context.Context, version int64) ([]entity.User, bool, error)
	SetUsers(ctx context.Context, version int64, users []entity.User) error
	Invalidate(ctx context.Context) error
}

// Publisher announces committed writes.
type Publisher interface {
	Publish(ctx context.Context, kind events.Kind, user entity.User) error
}

type UserService struct {
	repo      Repository
	cache     Cache
	publisher Publisher
	log       zerolog.Logger
}

// NewUserService creates a new instance of UserService.
func NewUserService(repo Repository, cache Cache, publisher Publisher, log zerolog.Logger) *UserService {
	return &UserService{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		log:       log.With().Str("component", "user-service").Logger(),
	}
}

// ListUsers reads through the cache. Cache failures fall back to the repository.
// The list is stored under the version read before the repository was queried,
// so a write committed in between is never hidden by it.
func (s *UserService) ListUsers(ctx context.Context) ([]entity.User, error) {
	version, err := s.cache.Version(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("Error reading user list version from cache")
		return s.listFromRepository(ctx)
	}

	users, ok, err := s.cache.GetUsers(ctx, version)
	if err != nil {
		s.log.Warn().Err(err).Msg("Error reading user list from cache")
	}
	if ok {
		return users, nil
	}

	users, err = s.listFromRepository(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetUsers(ctx, version, users); err != nil {
		s.log.Warn().Err(err).Msg("Error writing user list to cache")
	}
	return users, nil
}

func (s *UserService) listFromRepository(ctx context.Context) ([]entity.User, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("Error listing users")
		return nil, err
	}
	return users, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id int64) (*entity.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		s.log.Error().Err(err).Msgf("Error getting user by ID %d", id)
		return nil, err
	}
	return user, nil
}

func (s *UserService) CreateUser(ctx context.Context, in entity.Payload) (*entity.User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	user, err := s.repo.CreateUser(ctx, in)
	if err != nil {
		s.log.Error().Err(err).Msg("Error creating user")
		return nil, err
	}

	s.afterWrite(ctx, events.Created, *user)
	return user, nil
}

func (s *UserService) UpdateUser(ctx context.Context, id int64, in entity.Payload) (*entity.User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	user, err := s.repo.UpdateUser(ctx, id, in)
	if err != nil {
		s.log.Error().Err(err).Msgf("Error updating user %d", id)
		return nil, err
	}

	s.afterWrite(ctx, events.Updated, *user)
	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	if err := s.repo.DeleteUser(ctx, id); err != nil {
		s.log.Error().Err(err).Msgf("Error deleting user %d", id)
		return err
	}

	s.afterWrite(ctx, events.Deleted, entity.User{ID: id})
	return nil
}

// afterWrite runs once a write is committed; its failures are only logged.
func (s *UserService) afterWrite(ctx context.Context, kind events.Kind, user entity.User) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn().Err(err).Msg("Error invalidating user list cache")
	}
	if err := s.publisher.Publish(ctx, kind, user); err != nil {
		s.log.Error().Err(err).Msgf("Error publishing user %s event for %d", kind, user.ID)
	}
}
