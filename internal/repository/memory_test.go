package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"user-admin/internal/entity"
)

func TestMemoryRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	a, err := repo.CreateUser(ctx, entity.Payload{Name: "A", Email: "a@x.com"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), a.ID)
	assert.False(t, a.CreatedAt.IsZero())

	b, err := repo.CreateUser(ctx, entity.Payload{Name: "B", Email: "b@x.com"})
	require.NoError(t, err)

	_, err = repo.CreateUser(ctx, entity.Payload{Name: "C", Email: "a@x.com"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	users, err := repo.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, b.ID, users[0].ID, "newest first")

	_, err = repo.UpdateUser(ctx, b.ID, entity.Payload{Name: "B", Email: "a@x.com"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	updated, err := repo.UpdateUser(ctx, a.ID, entity.Payload{Name: "A2", Email: "a@x.com"})
	require.NoError(t, err)
	assert.Equal(t, "A2", updated.Name)
	assert.Equal(t, a.CreatedAt, updated.CreatedAt)

	_, err = repo.UpdateUser(ctx, 99, entity.Payload{Name: "Z", Email: "z@x.com"})
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.DeleteUser(ctx, a.ID))
	assert.ErrorIs(t, repo.DeleteUser(ctx, a.ID), ErrNotFound)

	_, err = repo.GetUserByID(ctx, a.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
