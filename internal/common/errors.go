// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Lookup errors.
	ErrNotFound = errors.New("not found")

	// Transport errors.
	ErrUnauthorized  = errors.New("unauthorized")
	ErrChallengePage = errors.New("edge proxy challenge page")
	ErrBlockedStatus = errors.New("blocked by edge proxy")

	// Payload errors.
	ErrInvalidPayload = errors.New("invalid payload")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// IsSoftBlock reports whether err came from the edge proxy rather than the backend.
func IsSoftBlock(err error) bool {
	return errors.Is(err, ErrChallengePage) || errors.Is(err, ErrBlockedStatus)
}
