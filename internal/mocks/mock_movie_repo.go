package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/seatbook/api/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockMovieRepo struct {
	mock.Mock
	domain.MovieRepository
}

func (m *MockMovieRepo) GetAll(ctx context.Context) ([]domain.Movie, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Movie), args.Error(1)
}

func (m *MockMovieRepo) GetById(ctx context.Context, id uuid.UUID) (*domain.Movie, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Movie), args.Error(1)
}
