package mocks

import (
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/avollmer/userd/internal/model"
)

type TokenManager struct {
	mock.Mock
}

func (m *TokenManager) Issue(subjectID uuid.UUID) (model.AuthToken, error) {
	args := m.Called(subjectID)
	return args.Get(0).(model.AuthToken), args.Error(1)
}

func (m *TokenManager) Parse(token string) (uuid.UUID, error) {
	args := m.Called(token)
	return args.Get(0).(uuid.UUID), args.Error(1)
}
