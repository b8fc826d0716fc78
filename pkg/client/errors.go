package client

import (
	"errors"
	"fmt"
)

// ErrUnreachable covers transport failures and unparseable responses.
var ErrUnreachable = errors.New("server unreachable")

// ValidationError is a local rejection: the request never left the client.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// APIError is a backend rejection, carrying the server's message verbatim
// when one was supplied.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}
