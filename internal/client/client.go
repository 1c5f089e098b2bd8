package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"user-admin/internal/entity"
)

const (
	msgFetchFailed  = "Failed to fetch users"
	msgGetFailed    = "Failed to fetch user"
	msgCreateFailed = "Create failed"
	msgUpdateFailed = "Update failed"
	msgDeleteFailed = "Delete failed"
)

// Client talks to the user API rooted at a base URL such as http://localhost:8080/api.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client entirely.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTimeout sets the HTTP client timeout. Requests never time out by default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithToken sends the token as a bearer Authorization header on every request.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchUsers lists every user known to the backend.
func (c *Client) FetchUsers(ctx context.Context) ([]entity.User, error) {
	var users []entity.User
	if err := c.do(ctx, http.MethodGet, "/users", nil, &users, msgFetchFailed); err != nil {
		return nil, err
	}
	if users == nil {
		users = []entity.User{}
	}
	return users, nil
}

// GetUser fetches a single user.
func (c *Client) GetUser(ctx context.Context, id int64) (*entity.User, error) {
	var user entity.User
	if err := c.do(ctx, http.MethodGet, userPath(id), nil, &user, msgGetFailed); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser creates a user and returns it with its backend-assigned id.
func (c *Client) CreateUser(ctx context.Context, name, email string) (*entity.User, error) {
	var user entity.User
	payload := entity.Payload{Name: name, Email: email}
	if err := c.do(ctx, http.MethodPost, "/users", payload, &user, msgCreateFailed); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser replaces the name and email of the user with the given id.
func (c *Client) UpdateUser(ctx context.Context, id int64, name, email string) (*entity.User, error) {
	var user entity.User
	payload := entity.Payload{Name: name, Email: email}
	if err := c.do(ctx, http.MethodPut, userPath(id), payload, &user, msgUpdateFailed); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes the user with the given id.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, userPath(id), nil, nil, msgDeleteFailed)
}

func userPath(id int64) string {
	return fmt.Sprintf("/users/%d", id)
}

// do performs a single round trip. Any 2xx status is a success; the response body
// is decoded into out when out is non-nil. Every failure is returned as *Error
// whose message is the server's error field, or fallback when there is none.
func (c *Client) do(ctx context.Context, method, path string, in, out any, fallback string) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return &Error{Message: fallback, Err: fmt.Errorf("encoding request: %w", err)}
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &Error{Message: fallback, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Message: fallback, Err: fmt.Errorf("making request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(resp.Body)
		return newResponseError(resp.StatusCode, raw, fallback)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{StatusCode: resp.StatusCode, Message: fallback, Err: fmt.Errorf("decoding response: %w", err)}
	}
	return nil
}
