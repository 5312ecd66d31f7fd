// Package service contains the authentication business logic. Auth is the
// only component the surrounding transport layer calls directly; it
// orchestrates validation, credential hashing, persistence, and token
// issuance.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/avollmer/userd/internal/logger"
	"github.com/avollmer/userd/internal/model"
	"github.com/avollmer/userd/internal/validation"
)

type Auth struct {
	users  model.UserStore
	hasher model.CredentialHasher
	tokens model.TokenManager
	logger *logger.Logger

	// dummyDigest is verified against when a login identifier matches no
	// account, so response timing does not reveal whether the account exists.
	dummyDigest string
}

func NewAuth(
	users model.UserStore,
	hasher model.CredentialHasher,
	tokens model.TokenManager,
	logger *logger.Logger,
) *Auth {
	// The digest of a throwaway secret; it only has to cost as much to verify
	// as a real one.
	dummy, err := hasher.Hash(uuid.NewString())
	if err != nil {
		logger.Error("Auth service: failed to prepare dummy digest", "error", err.Error())
	}

	return &Auth{
		users:       users,
		hasher:      hasher,
		tokens:      tokens,
		logger:      logger,
		dummyDigest: dummy,
	}
}

// Register validates the input, hashes the password, and creates the user.
// The plaintext password is discarded immediately after hashing and the
// returned view never contains the digest. Validation failures come back as
// model.ValidationErrors, uniqueness collisions as model.ConflictError.
func (a *Auth) Register(ctx context.Context, input validation.RegisterInput) (*model.PublicUser, error) {
	a.logger.Debug("Auth service: registering user", "username", input.Username)

	normalized, violations := validation.Validate(input)
	if len(violations) > 0 {
		a.logger.Info("Auth service: registration input rejected",
			"username", input.Username,
			"violations", len(violations))
		return nil, violations
	}

	digest, err := a.hasher.Hash(normalized.Password)
	if err != nil {
		a.logger.Error("Auth service: failed to hash password",
			"username", normalized.Username,
			"error", err.Error())
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := model.User{
		ID:             uuid.New(),
		Username:       normalized.Username,
		Email:          normalized.Email,
		PasswordDigest: digest,
		FirstName:      normalized.FirstName,
		LastName:       normalized.LastName,
		IsActive:       true,
		IsVerified:     false,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	saved, err := a.users.Create(ctx, user)
	if err != nil {
		var conflict model.ConflictError
		if errors.As(err, &conflict) {
			a.logger.Info("Auth service: registration conflict",
				"username", normalized.Username,
				"field", conflict.Field)
			return nil, conflict
		}
		a.logger.Error("Auth service: failed to create user",
			"username", normalized.Username,
			"error", err.Error())
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	a.logger.Info("Auth service: user registered",
		"username", saved.Username,
		"user_id", saved.ID)

	public := saved.Public()
	return &public, nil
}

// Login authenticates by username or email and returns a fresh token. Unknown
// identifier, wrong password, and deactivated account all fail with the same
// model.ErrAuthenticationFailed; a verification against a dummy digest keeps
// the unknown-identifier path as expensive as the wrong-password path.
func (a *Auth) Login(ctx context.Context, identifier, password string) (*model.AuthToken, error) {
	a.logger.Debug("Auth service: login attempt", "identifier", identifier)

	user, err := a.users.GetByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			a.hasher.Verify(password, a.dummyDigest)
			return nil, model.ErrAuthenticationFailed
		}
		a.logger.Error("Auth service: failed to get user",
			"identifier", identifier,
			"error", err.Error())
		return nil, fmt.Errorf("failed to get user by identifier: %w", err)
	}

	if !a.hasher.Verify(password, user.PasswordDigest) {
		return nil, model.ErrAuthenticationFailed
	}

	if !user.IsActive {
		return nil, model.ErrAuthenticationFailed
	}

	if err := a.users.TouchLastLogin(ctx, user.ID, time.Now()); err != nil {
		a.logger.Error("Auth service: failed to record login",
			"user_id", user.ID,
			"error", err.Error())
		return nil, fmt.Errorf("failed to record login: %w", err)
	}

	token, err := a.tokens.Issue(user.ID)
	if err != nil {
		a.logger.Error("Auth service: failed to issue token",
			"user_id", user.ID,
			"error", err.Error())
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Info("Auth service: login succeeded", "user_id", user.ID)

	return &token, nil
}

// VerifyToken checks a presented token and returns the subject user ID.
// Returns model.ErrTokenExpired or model.ErrTokenInvalid on failure.
func (a *Auth) VerifyToken(token string) (uuid.UUID, error) {
	return a.tokens.Parse(token)
}

// Deactivate soft-removes a user account; it is the only removal path.
func (a *Auth) Deactivate(ctx context.Context, id uuid.UUID) error {
	if err := a.users.Deactivate(ctx, id); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to deactivate user: %w", err)
	}
	a.logger.Info("Auth service: user deactivated", "user_id", id)
	return nil
}
