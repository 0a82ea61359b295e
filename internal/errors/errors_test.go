package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestConnectionError(t *testing.T) {
	wrapped := errors.New("connection refused")
	err := NewConnectionError("http://localhost:11434/v1", wrapped)

	expected := "cannot connect to ollama server at http://localhost:11434/v1: connection refused"
	if err.Error() != expected {
		t.Errorf("Error() = %s, want %s", err.Error(), expected)
	}

	if !errors.Is(err, ErrServerUnreachable) {
		t.Error("Expected ConnectionError to match ErrServerUnreachable")
	}

	if !errors.Is(err, wrapped) {
		t.Error("Expected ConnectionError to unwrap to the underlying error")
	}

	// Empty base URL uses a generic message
	bare := &ConnectionError{}
	if bare.Error() != "cannot connect to ollama server" {
		t.Errorf("Error() = %s, want generic message", bare.Error())
	}
}

func TestAPIError(t *testing.T) {
	err := NewAPIError(500, "/v1/chat/completions", "internal error")

	expected := "API error [500] at /v1/chat/completions: internal error"
	if err.Error() != expected {
		t.Errorf("Error() = %s, want %s", err.Error(), expected)
	}

	// Without a status code the bracket section is omitted
	noStatus := NewAPIError(0, "/api/tags", "boom")
	expected = "API error at /api/tags: boom"
	if noStatus.Error() != expected {
		t.Errorf("Error() = %s, want %s", noStatus.Error(), expected)
	}
}

func TestAPIError_NotFoundMatchesModelSentinel(t *testing.T) {
	err := NewAPIError(404, "/v1/chat/completions", "model 'nope' not found")

	if !errors.Is(err, ErrModelNotFound) {
		t.Error("Expected 404 APIError to match ErrModelNotFound")
	}

	other := NewAPIError(500, "/v1/chat/completions", "boom")
	if errors.Is(other, ErrModelNotFound) {
		t.Error("Expected 500 APIError not to match ErrModelNotFound")
	}
}

func TestTimeoutError(t *testing.T) {
	err := NewTimeoutError("chat request")

	expected := "request timed out: chat request"
	if err.Error() != expected {
		t.Errorf("Error() = %s, want %s", err.Error(), expected)
	}

	if !IsTimeout(err) {
		t.Error("Expected IsTimeout to report true")
	}
	if !IsTimeout(fmt.Errorf("wrapped: %w", err)) {
		t.Error("Expected IsTimeout to see through wrapping")
	}
	if IsTimeout(errors.New("other")) {
		t.Error("Expected IsTimeout to report false for unrelated error")
	}
}

func TestSessionError(t *testing.T) {
	err := NewSessionError("20250101_120000.json", "corrupt file")

	expected := "session error (20250101_120000.json): corrupt file"
	if err.Error() != expected {
		t.Errorf("Error() = %s, want %s", err.Error(), expected)
	}

	noFile := NewSessionError("", "no backing file")
	expected = "session error: no backing file"
	if noFile.Error() != expected {
		t.Errorf("Error() = %s, want %s", noFile.Error(), expected)
	}
}

func TestParseError(t *testing.T) {
	err := NewParseError("bad json", "metadata.created")

	expected := "parse error: bad json"
	if err.Error() != expected {
		t.Errorf("Error() = %s, want %s", err.Error(), expected)
	}

	if !err.Is(NewParseError("other", "")) {
		t.Error("Expected ParseError to match its own type")
	}
	if err.Is(errors.New("parse error: bad json")) {
		t.Error("Expected ParseError not to match a plain error")
	}
}

func TestIsConnectionError(t *testing.T) {
	if !IsConnectionError(NewConnectionError("http://x", errors.New("refused"))) {
		t.Error("Expected true for ConnectionError")
	}
	if !IsConnectionError(ErrServerUnreachable) {
		t.Error("Expected true for the sentinel itself")
	}
	if IsConnectionError(NewTimeoutError("")) {
		t.Error("Expected false for TimeoutError")
	}
}

func TestGetHTTPStatus(t *testing.T) {
	if got := GetHTTPStatus(NewAPIError(429, "/v1/chat/completions", "slow down")); got != 429 {
		t.Errorf("GetHTTPStatus = %d, want 429", got)
	}
	if got := GetHTTPStatus(fmt.Errorf("wrap: %w", NewAPIError(503, "/api/tags", ""))); got != 503 {
		t.Errorf("GetHTTPStatus through wrap = %d, want 503", got)
	}
	if got := GetHTTPStatus(errors.New("plain")); got != 0 {
		t.Errorf("GetHTTPStatus = %d, want 0 for non-API error", got)
	}
}
