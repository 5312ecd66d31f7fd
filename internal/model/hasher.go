package model

// CredentialHasher turns a plaintext secret into a salted one-way digest and
// verifies a plaintext secret against a stored digest.
type CredentialHasher interface {
	// Hash produces a fresh-salted digest. Empty secrets fail with
	// ErrInvalidInput. Two calls with the same secret produce different
	// digests.
	Hash(secret string) (string, error)

	// Verify reports whether secret matches digest. It returns false for any
	// mismatch, malformed digest, or empty secret; the failure mode is never
	// distinguishable by error type.
	Verify(secret, digest string) bool
}
