package discourse

import (
	"errors"
	"fmt"
	"strings"
)

// Common static errors that can be wrapped with context.
var (
	ErrConfigRequired      = errors.New("config is required")
	ErrHostRequired        = errors.New("host is required")
	ErrAPIKeyRequired      = errors.New("API key is required")
	ErrUserNotFound        = errors.New("user not found")
	ErrHoneypotUnavailable = errors.New("honeypot challenge unavailable")
	ErrUnexpectedResponse  = errors.New("unexpected response from platform")
	ErrInvalidRequest      = errors.New("invalid request")
)

// TransportError is returned when a request never produced an HTTP response:
// DNS failures, refused connections, timeouts, TLS errors or a cancelled context.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
}

// Unwrap returns the underlying network error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// DomainError is returned by API client operations when a call cannot be
// interpreted as the expected success case. Op names the operation and
// Subject the offending identifier (user id, username, topic id).
type DomainError struct {
	Op      string
	Subject string
	Err     error
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err == nil {
		return e.Op + ": " + e.Subject
	}

	return fmt.Sprintf("%s: %s: %v", e.Op, e.Subject, e.Err)
}

// Unwrap returns the wrapped cause.
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError wraps err with the operation and identifier it concerns.
func NewDomainError(op, subject string, err error) *DomainError {
	return &DomainError{Op: op, Subject: subject, Err: err}
}

// PlatformError is a decoded non-success response body.
type PlatformError struct {
	StatusCode int      `json:"status_code"          yaml:"status_code"`
	Errors     []string `json:"errors"               yaml:"errors"`
	ErrorType  string   `json:"error_type,omitempty" yaml:"error_type,omitempty"`
}

// Error implements the error interface.
func (e *PlatformError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("platform returned status %d", e.StatusCode)
	}

	return fmt.Sprintf("platform returned status %d: %s", e.StatusCode, strings.Join(e.Errors, "; "))
}

// IsNotFound reports whether the platform answered with a not-found response.
func (e *PlatformError) IsNotFound() bool {
	return e.StatusCode == 404 || e.ErrorType == "not_found"
}

// IsTransportError checks if the error chain contains a TransportError.
func IsTransportError(err error) bool {
	transportErr := &TransportError{}

	return errors.As(err, &transportErr)
}

// IsDomainError checks if the error chain contains a DomainError.
func IsDomainError(err error) bool {
	domainErr := &DomainError{}

	return errors.As(err, &domainErr)
}
