package store

import (
	"context"

	"github.com/stretchr/testify/mock"
	"user-admin/internal/entity"
)

type mockAPI struct {
	mock.Mock
}

func (m *mockAPI) FetchUsers(ctx context.Context) ([]entity.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]entity.User)
	return users, args.Error(1)
}

func (m *mockAPI) CreateUser(ctx context.Context, name, email string) (*entity.User, error) {
	args := m.Called(ctx, name, email)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *mockAPI) UpdateUser(ctx context.Context, id int64, name, email string) (*entity.User, error) {
	args := m.Called(ctx, id, name, email)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *mockAPI) DeleteUser(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
