package mocks

import (
	"github.com/stretchr/testify/mock"
)

type CredentialHasher struct {
	mock.Mock
}

func (m *CredentialHasher) Hash(secret string) (string, error) {
	args := m.Called(secret)
	return args.String(0), args.Error(1)
}

func (m *CredentialHasher) Verify(secret, digest string) bool {
	args := m.Called(secret, digest)
	return args.Bool(0)
}
