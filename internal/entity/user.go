package entity

import (
	"errors"
	"net/mail"
	"strings"
	"time"
)

// ErrInvalidPayload is returned when a create or update body lacks a name or a usable email.
var ErrInvalidPayload = errors.New("name and valid email are required")

type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Payload is the body accepted by POST /users and PUT /users/:id.
type Payload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (p Payload) Validate() error {
	if strings.TrimSpace(p.Name) == "" || strings.TrimSpace(p.Email) == "" {
		return ErrInvalidPayload
	}
	addr, err := mail.ParseAddress(p.Email)
	if err != nil || addr.Address != p.Email {
		return ErrInvalidPayload
	}
	return nil
}

