package mocks

import (
	"context"
	"time"

	"github.com/risinglion/cinema-booking-api/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockScreeningRepo struct {
	mock.Mock
	domain.ScreeningRepository
}

func (m *MockScreeningRepo) GetById(ctx context.Context, id int) (*domain.Screening, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Screening), args.Error(1)
}

func (m *MockScreeningRepo) GetByDateRange(ctx context.Context, start, end time.Time) ([]domain.Screening, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Screening), args.Error(1)
}

func (m *MockScreeningRepo) GetByMovieAndDateRange(ctx context.Context, movieID int, start, end time.Time) ([]domain.Screening, error) {
	args := m.Called(ctx, movieID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Screening), args.Error(1)
}

func (m *MockScreeningRepo) GetByTheaterAndDateRange(ctx context.Context, theaterID int, start, end time.Time) ([]domain.Screening, error) {
	args := m.Called(ctx, theaterID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Screening), args.Error(1)
}

func (m *MockScreeningRepo) Create(ctx context.Context, screening *domain.Screening) error {
	args := m.Called(ctx, screening)
	return args.Error(0)
}

func (m *MockScreeningRepo) Update(ctx context.Context, screening *domain.Screening) error {
	args := m.Called(ctx, screening)
	return args.Error(0)
}

func (m *MockScreeningRepo) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
