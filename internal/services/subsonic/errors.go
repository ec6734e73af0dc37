package subsonic

import (
	"errors"
	"fmt"

	"navicull/internal/services"
)

// ErrAPI matches every *APIError via errors.Is.
var ErrAPI = errors.New("subsonic api error")

// Subsonic error codes that mean the credentials were refused.
const (
	codeWrongCredentials  = 40
	codeTokenAuthDisabled = 41
	codeInvalidAPIKey     = 44
	codeNotAuthorized     = 50
)

// APIError is a failed status envelope returned by the server.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "unknown"
	}
	return fmt.Sprintf("subsonic api error: %s (code %d)", msg, e.Code)
}

// Is matches ErrAPI, and services.ErrAuthentication when the server refused
// the credentials.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrAPI:
		return true
	case services.ErrAuthentication:
		return e.authFailure()
	}
	return false
}

func (e *APIError) authFailure() bool {
	switch e.Code {
	case codeWrongCredentials, codeTokenAuthDisabled, codeInvalidAPIKey, codeNotAuthorized:
		return true
	}
	return false
}
