package view_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"user-admin/internal/entity"
	"user-admin/internal/store"
	"user-admin/internal/view"
)

type fakeAPI struct {
	users []entity.User
	err   error
}

func (f *fakeAPI) FetchUsers(context.Context) ([]entity.User, error) {
	return f.users, f.err
}

func (f *fakeAPI) CreateUser(context.Context, string, string) (*entity.User, error) {
	return nil, errors.New("not used")
}

func (f *fakeAPI) UpdateUser(context.Context, int64, string, string) (*entity.User, error) {
	return nil, errors.New("not used")
}

func (f *fakeAPI) DeleteUser(context.Context, int64) error {
	return errors.New("not used")
}

func newRouter(api *fakeAPI) (*view.Router, *store.Store) {
	s := store.New(api, zerolog.Nop())
	return view.NewRouter(view.NewUsersView(s)), s
}

func TestResolve(t *testing.T) {
	r, _ := newRouter(&fakeAPI{})

	for path, name := range map[string]string{"/": "home", "": "home", "/about": "about", "/about/": "about"} {
		route, err := r.Resolve(path)
		require.NoError(t, err, path)
		assert.Equal(t, name, route.Name, path)
	}

	_, err := r.Resolve("/missing")
	assert.ErrorIs(t, err, view.ErrNoRoute)
}

func TestRoutes(t *testing.T) {
	r, _ := newRouter(&fakeAPI{})

	routes := r.Routes()
	require.Len(t, routes, 2)
	assert.Equal(t, "/", routes[0].Path)
	assert.Equal(t, "/about", routes[1].Path)
}

func TestNavigate_Users(t *testing.T) {
	created := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	r, s := newRouter(&fakeAPI{users: []entity.User{
		{ID: 2, Name: "Bob", Email: "bob@x.com", CreatedAt: created},
		{ID: 1, Name: "Alice", Email: "alice@x.com"},
	}})
	s.Select(&entity.User{ID: 1})

	var buf bytes.Buffer
	require.NoError(t, r.Navigate(context.Background(), "/", &buf))

	out := buf.String()
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "bob@x.com")
	assert.Contains(t, out, "2025-01-15 12:00")
	assert.Regexp(t, `\*\s+1\s+Alice`, out)
}

func TestNavigate_UsersEmpty(t *testing.T) {
	r, _ := newRouter(&fakeAPI{})

	var buf bytes.Buffer
	require.NoError(t, r.Navigate(context.Background(), "/", &buf))
	assert.Equal(t, "No users yet.\n", buf.String())
}

func TestNavigate_UsersError(t *testing.T) {
	r, s := newRouter(&fakeAPI{err: errors.New("Failed to fetch users")})

	var buf bytes.Buffer
	err := r.Navigate(context.Background(), "/", &buf)
	assert.EqualError(t, err, "Failed to fetch users")
	assert.Equal(t, "error: Failed to fetch users\n", buf.String())
	assert.Equal(t, "Failed to fetch users", s.Err())
}

func TestNavigate_About(t *testing.T) {
	r, _ := newRouter(&fakeAPI{})

	var buf bytes.Buffer
	require.NoError(t, r.Navigate(context.Background(), "/about", &buf))
	assert.Contains(t, buf.String(), "user-admin")
}

func TestNavigate_Unknown(t *testing.T) {
	r, _ := newRouter(&fakeAPI{})
	assert.ErrorIs(t, r.Navigate(context.Background(), "/nope", &bytes.Buffer{}), view.ErrNoRoute)
}
