package core

import (
	"errors"
	"fmt"
)

var (
	ErrBadCredentials    = errors.New("skyward: incorrect username or password")
	ErrUnreachable       = errors.New("skyward: portal unreachable")
	ErrNoLoginData       = errors.New("skyward: login keeps returning no data")
	ErrSessionExpired    = errors.New("skyward: session has expired")
	ErrMalformedResponse = errors.New("skyward: malformed response")
	ErrNoDataReturned    = errors.New("skyward: no grade data returned")
)

// MalformedResponseError is returned when a structural marker the parser
// depends on is missing. Stage names the step of the protocol that failed.
type MalformedResponseError struct {
	Stage  string
	Reason string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("skyward: malformed response (%s): %s", e.Stage, e.Reason)
}

func (e *MalformedResponseError) Unwrap() error {
	return ErrMalformedResponse
}

func Malformed(stage, format string, args ...any) error {
	return &MalformedResponseError{
		Stage:  stage,
		Reason: fmt.Sprintf(format, args...),
	}
}
