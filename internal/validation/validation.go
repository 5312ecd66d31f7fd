// Package validation checks raw registration input before it reaches storage.
// Every rule is always evaluated so a caller receives the full violation list
// in one pass.
package validation

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/avollmer/userd/internal/model"
)

// Username length bounds in bytes.
const (
	MinUsernameLength = 3
	MaxUsernameLength = 30
)

// MinPasswordLength is the minimum password length in runes.
const MinPasswordLength = 6

// emailRegex matches local-part@domain with at least one dot-separated
// domain label.
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9\-]+(\.[a-zA-Z0-9\-]+)+$`)

// RegisterInput is raw registration input. FirstName and LastName are
// optional.
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// Validate evaluates every rule against the input. On success it returns a
// normalized copy: username and email trimmed, email lowercased. The password
// passes through unmodified; unicode and special characters are accepted.
func Validate(in RegisterInput) (RegisterInput, model.ValidationErrors) {
	normalized := RegisterInput{
		Username:  strings.TrimSpace(in.Username),
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		Password:  in.Password,
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
	}

	var violations model.ValidationErrors
	violations = append(violations, checkUsername(normalized.Username)...)
	violations = append(violations, checkEmail(normalized.Email)...)
	violations = append(violations, checkPassword(normalized.Password)...)

	if len(violations) > 0 {
		return RegisterInput{}, violations
	}
	return normalized, nil
}

func checkUsername(username string) model.ValidationErrors {
	var violations model.ValidationErrors
	switch {
	case username == "":
		violations = append(violations, model.ValidationError{Field: "username", Reason: "must not be empty"})
	case len(username) < MinUsernameLength:
		violations = append(violations, model.ValidationError{Field: "username", Reason: "must be at least 3 characters"})
	case len(username) > MaxUsernameLength:
		violations = append(violations, model.ValidationError{Field: "username", Reason: "must be at most 30 characters"})
	}
	return violations
}

func checkEmail(email string) model.ValidationErrors {
	var violations model.ValidationErrors
	if email == "" {
		violations = append(violations, model.ValidationError{Field: "email", Reason: "must not be empty"})
	} else if !emailRegex.MatchString(email) {
		violations = append(violations, model.ValidationError{Field: "email", Reason: "must be a valid email address"})
	}
	return violations
}

func checkPassword(password string) model.ValidationErrors {
	var violations model.ValidationErrors

	if utf8.RuneCountInString(password) < MinPasswordLength {
		violations = append(violations, model.ValidationError{Field: "password", Reason: "must be at least 6 characters"})
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	if !hasUpper {
		violations = append(violations, model.ValidationError{Field: "password", Reason: "must contain an uppercase letter"})
	}
	if !hasLower {
		violations = append(violations, model.ValidationError{Field: "password", Reason: "must contain a lowercase letter"})
	}
	if !hasDigit {
		violations = append(violations, model.ValidationError{Field: "password", Reason: "must contain a digit"})
	}
	return violations
}
