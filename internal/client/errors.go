package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrTransport matches failures where no response was received
	ErrTransport = errors.New("api transport failure")
	// ErrRejected matches non-2xx responses
	ErrRejected = errors.New("api rejected request")
)

// TransportError reports a request that never produced a usable response
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
}

// Unwrap exposes the underlying network error
func (e *TransportError) Unwrap() error { return e.Err }

// Is matches ErrTransport
func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// APIError reports a response with a non-2xx status
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	// Code, Message and Field come from the server error envelope when present
	Code    string
	Message string
	Field   string
	Body    []byte
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, msg)
}

// Is matches ErrRejected
func (e *APIError) Is(target error) bool { return target == ErrRejected }

// StatusOf returns the HTTP status of a rejected request, or 0 when err is
// not an APIError
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
