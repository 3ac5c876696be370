package mocks

import (
	"context"

	"github.com/risinglion/cinema-booking-api/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockReviewRepo struct {
	mock.Mock
	domain.ReviewRepository
}

func (m *MockReviewRepo) GetByMovie(ctx context.Context, movieID int) ([]domain.Review, error) {
	args := m.Called(ctx, movieID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *MockReviewRepo) GetByMovieAndUser(ctx context.Context, movieID, userID int) (*domain.Review, error) {
	args := m.Called(ctx, movieID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *MockReviewRepo) Create(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepo) Update(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepo) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
