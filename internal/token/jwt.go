// Package token issues and verifies stateless authentication tokens backed
// by HMAC-signed JWTs. A token is valid iff its signature checks out and its
// expiry has not passed; nothing is persisted server-side.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/avollmer/userd/internal/model"
)

// Claims carries the authenticated subject.
type Claims struct {
	jwt.RegisteredClaims
	SubjectID uuid.UUID `json:"sub_id"`
}

// JWT implements model.TokenManager backed by symmetric HMAC.
type JWT struct {
	secretKey string
	lifetime  time.Duration
}

// NewJWT creates a token manager with a process-wide secret key and a fixed
// token lifetime.
func NewJWT(secretKey string, lifetime time.Duration) *JWT {
	return &JWT{secretKey: secretKey, lifetime: lifetime}
}

// Issue creates a token for the subject, valid from now until now+lifetime.
func (j *JWT) Issue(subjectID uuid.UUID) (model.AuthToken, error) {
	now := time.Now()
	expiresAt := now.Add(j.lifetime)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		SubjectID: subjectID,
	})

	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return model.AuthToken{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return model.AuthToken{
		Token:     tokenString,
		SubjectID: subjectID,
		IssuedAt:  now,
		ExpiresAt: expiresAt,
	}, nil
}

// Parse verifies the signature and expiry and returns the subject ID.
// Expired tokens yield model.ErrTokenExpired; anything else that fails
// verification yields model.ErrTokenInvalid.
func (j *JWT) Parse(tokenString string) (uuid.UUID, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, model.ErrTokenExpired
		}
		return uuid.Nil, model.ErrTokenInvalid
	}
	if !token.Valid {
		return uuid.Nil, model.ErrTokenInvalid
	}
	if claims.SubjectID == uuid.Nil {
		return uuid.Nil, model.ErrTokenInvalid
	}
	return claims.SubjectID, nil
}
