package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned by stores when no matching record exists.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned for inputs a component refuses to process,
	// such as hashing an empty secret.
	ErrInvalidInput = errors.New("invalid input")

	// ErrAuthenticationFailed covers both unknown identifier and wrong
	// password. Deliberately undifferentiated to prevent account enumeration.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrTokenExpired is returned for tokens past their lifetime.
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenInvalid is returned for malformed or tampered tokens.
	ErrTokenInvalid = errors.New("token invalid")
)

// ValidationError reports a single violated input rule.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// ValidationErrors collects every violation found in one validation pass so a
// caller can report them all at once.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, v := range e {
		msgs[i] = v.Error()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// ConflictError reports a uniqueness violation on the named field.
type ConflictError struct {
	Field string
}

func (e ConflictError) Error() string {
	return fmt.Sprintf("%s is already taken", e.Field)
}
