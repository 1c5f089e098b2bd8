package client

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Error is the single error kind returned by Client. Message is meant to be shown to
// a user as is.
type Error struct {
	// StatusCode is zero when no response was received.
	StatusCode int
	Message    string
	// Body holds the raw response body of a non-2xx answer.
	Body string
	Err  error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

type errorBody struct {
	Error string `json:"error"`
}

func newResponseError(status int, raw []byte, fallback string) *Error {
	e := &Error{
		StatusCode: status,
		Message:    fallback,
		Body:       strings.TrimSpace(string(raw)),
		Err:        fmt.Errorf("unexpected status %d", status),
	}

	var eb errorBody
	if err := json.Unmarshal(raw, &eb); err == nil && eb.Error != "" {
		e.Message = eb.Error
	}
	return e
}
