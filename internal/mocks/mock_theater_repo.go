package mocks

import (
	"context"

	"github.com/seatbook/api/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockTheaterRepo struct {
	mock.Mock
	domain.TheaterRepository
}

func (m *MockTheaterRepo) GetAll(ctx context.Context) ([]domain.Theater, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Theater), args.Error(1)
}
