package mocks

import (
	"context"

	"github.com/seatbook/api/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockScreeningRepo struct {
	mock.Mock
	domain.ScreeningRepository
}

func (m *MockScreeningRepo) Exists(ctx context.Context, key domain.ScreeningKey) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}
