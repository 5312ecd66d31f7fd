// Package hasher implements credential hashing on top of bcrypt. Each digest
// carries its own fresh salt, so hashing the same secret twice never yields
// the same digest.
package hasher

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/avollmer/userd/internal/model"
)

// Bcrypt implements model.CredentialHasher. The work factor is fixed at
// construction time and is not user-controlled.
type Bcrypt struct {
	cost int
}

// NewBcrypt creates a hasher with the given work factor. Costs outside the
// bcrypt-supported range fall back to the library default.
func NewBcrypt(cost int) *Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Bcrypt{cost: cost}
}

// Hash produces a salted digest of the secret.
func (h *Bcrypt) Hash(secret string) (string, error) {
	if secret == "" {
		return "", model.ErrInvalidInput
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(secret), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash secret: %w", err)
	}

	return string(digest), nil
}

// Verify reports whether secret matches digest. Mismatch, malformed digest,
// and empty secret all collapse into false so callers cannot tell them apart.
// The comparison inside bcrypt is constant-time.
func (h *Bcrypt) Verify(secret, digest string) bool {
	if secret == "" || digest == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(secret)) == nil
}
