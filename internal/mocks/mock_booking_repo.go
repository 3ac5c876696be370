package mocks

import (
	"context"
	"time"

	"github.com/risinglion/cinema-booking-api/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockBookingRepo struct {
	mock.Mock
	domain.BookingRepository
}

func (m *MockBookingRepo) Create(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepo) GetByUser(ctx context.Context, userID int) ([]domain.Booking, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepo) GetByScreening(ctx context.Context, screeningID int) ([]domain.Booking, error) {
	args := m.Called(ctx, screeningID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepo) TakenSeatIDs(ctx context.Context, screeningID int) (map[int]bool, error) {
	args := m.Called(ctx, screeningID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int]bool), args.Error(1)
}

func (m *MockBookingRepo) ExistsForMovieBefore(ctx context.Context, userID, movieID int, before time.Time) (bool, error) {
	args := m.Called(ctx, userID, movieID, before)
	return args.Bool(0), args.Error(1)
}
