package backend

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrTransport    = errors.New("backend unreachable")
	ErrUnauthorized = errors.New("backend rejected credentials")
	ErrForbidden    = errors.New("backend denied access")
	ErrNotFound     = errors.New("backend resource not found")
	ErrConflict     = errors.New("backend reported a conflict")
	ErrBadRequest   = errors.New("backend rejected request")
	ErrServer       = errors.New("backend failed")
)

// conflictPhrases are how the backend words a seat lost to another buyer
// when it answers 400 instead of 409.
var conflictPhrases = []string{
	"already booked",
	"already taken",
	"not available",
	"unavailable",
	"sudah dipesan",
	"tidak tersedia",
}

// APIError is a non-2xx answer from the backend.
type APIError struct {
	Method  string
	Path    string
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Status)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Status, e.Message)
}

// Unwrap maps the status onto a sentinel so callers can use errors.Is.
func (e *APIError) Unwrap() error {
	switch {
	case e.Status == http.StatusUnauthorized:
		return ErrUnauthorized
	case e.Status == http.StatusForbidden:
		return ErrForbidden
	case e.Status == http.StatusNotFound:
		return ErrNotFound
	case e.Status == http.StatusConflict:
		return ErrConflict
	case e.Status == http.StatusBadRequest || e.Status == http.StatusUnprocessableEntity:
		if isConflictMessage(e.Message) {
			return ErrConflict
		}
		return ErrBadRequest
	case e.Status >= 500:
		return ErrServer
	default:
		return ErrBadRequest
	}
}

func isConflictMessage(msg string) bool {
	msg = strings.ToLower(msg)
	for _, phrase := range conflictPhrases {
		if strings.Contains(msg, phrase) {
			return true
		}
	}
	return false
}

// Message extracts the backend's message for display, falling back to err.Error().
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}
