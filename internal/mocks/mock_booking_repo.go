package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/seatbook/api/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockBookingRepo struct {
	mock.Mock
	domain.BookingRepository
}

func (m *MockBookingRepo) FindConflicts(ctx context.Context, key domain.ScreeningKey, seats []string) ([]string, error) {
	args := m.Called(ctx, key, seats)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockBookingRepo) Create(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepo) GetById(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepo) Void(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBookingRepo) GetBookedSeats(ctx context.Context, key domain.ScreeningKey) ([]string, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockBookingRepo) GetBookingsByUserId(
	ctx context.Context,
	userID uuid.UUID,
	pagination domain.Pagination) ([]domain.BookingSummary, *domain.Metadata, error) {

	args := m.Called(ctx, userID, pagination)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.BookingSummary), args.Get(1).(*domain.Metadata), args.Error(2)
}

func (m *MockBookingRepo) GetAllBookings(
	ctx context.Context,
	pagination domain.Pagination) ([]domain.BookingSummary, *domain.Metadata, error) {

	args := m.Called(ctx, pagination)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.BookingSummary), args.Get(1).(*domain.Metadata), args.Error(2)
}
