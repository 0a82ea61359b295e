// Package errors provides custom error types for the Ollama chat client and
// the session store.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	ErrNoSession         = errors.New("no active session")
	ErrSessionNotFound   = errors.New("session not found")
	ErrServerUnreachable = errors.New("ollama server unreachable")
	ErrModelNotFound     = errors.New("model not found")
	ErrEmptyResponse     = errors.New("empty response from model")
	ErrInvalidRole       = errors.New("invalid message role")
)

// ConnectionError represents a failure to reach the Ollama server
type ConnectionError struct {
	BaseURL string
	Err     error
}

func (e *ConnectionError) Error() string {
	if e.BaseURL == "" {
		return "cannot connect to ollama server"
	}
	return fmt.Sprintf("cannot connect to ollama server at %s: %v", e.BaseURL, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// Is allows comparison with sentinel errors
func (e *ConnectionError) Is(target error) bool {
	if target == ErrServerUnreachable {
		return true
	}
	_, ok := target.(*ConnectionError)
	return ok
}

// NewConnectionError creates a new ConnectionError
func NewConnectionError(baseURL string, err error) *ConnectionError {
	return &ConnectionError{BaseURL: baseURL, Err: err}
}

// APIError represents an API request failure
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("API error [%d] at %s: %s", e.StatusCode, e.Endpoint, e.Message)
	}
	return fmt.Sprintf("API error at %s: %s", e.Endpoint, e.Message)
}

// Is allows comparison with ErrModelNotFound for 404 responses
func (e *APIError) Is(target error) bool {
	if target == ErrModelNotFound && e.StatusCode == 404 {
		return true
	}
	_, ok := target.(*APIError)
	return ok
}

// NewAPIError creates a new APIError
func NewAPIError(statusCode int, endpoint, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Endpoint:   endpoint,
		Message:    message,
	}
}

// TimeoutError represents a request timeout
type TimeoutError struct {
	Message string
}

func (e *TimeoutError) Error() string {
	if e.Message == "" {
		return "request timed out"
	}
	return fmt.Sprintf("request timed out: %s", e.Message)
}

// NewTimeoutError creates a new TimeoutError
func NewTimeoutError(message string) *TimeoutError {
	return &TimeoutError{Message: message}
}

// SessionError represents a session store failure
type SessionError struct {
	Filename string
	Message  string
}

func (e *SessionError) Error() string {
	if e.Filename == "" {
		return fmt.Sprintf("session error: %s", e.Message)
	}
	return fmt.Sprintf("session error (%s): %s", e.Filename, e.Message)
}

// NewSessionError creates a new SessionError
func NewSessionError(filename, message string) *SessionError {
	return &SessionError{Filename: filename, Message: message}
}

// ParseError represents a response or session file parsing error
type ParseError struct {
	Message string
	Path    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error: %s", e.Message)
}

// NewParseError creates a new ParseError
func NewParseError(message, path string) *ParseError {
	return &ParseError{Message: message, Path: path}
}

// Is allows comparison with sentinel errors
func (e *ParseError) Is(target error) bool {
	_, ok := target.(*ParseError)
	return ok
}

// IsConnectionError reports whether err is a connection failure to the server
func IsConnectionError(err error) bool {
	return errors.Is(err, ErrServerUnreachable)
}

// IsTimeout reports whether err is a timeout
func IsTimeout(err error) bool {
	var te *TimeoutError
	return errors.As(err, &te)
}

// GetHTTPStatus returns the HTTP status carried by err, or 0 when none
func GetHTTPStatus(err error) int {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.StatusCode
	}
	return 0
}
