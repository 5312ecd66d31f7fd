package model

import (
	"time"

	"github.com/google/uuid"
)

// TokenManager issues and verifies self-contained authentication tokens.
// Validity is derivable entirely from the token contents; there is no
// server-side revocation list.
type TokenManager interface {
	Issue(subjectID uuid.UUID) (AuthToken, error)
	Parse(token string) (uuid.UUID, error)
}

// AuthToken is a signed, time-bounded proof of authenticated identity.
type AuthToken struct {
	Token     string
	SubjectID uuid.UUID
	IssuedAt  time.Time
	ExpiresAt time.Time
}
