package service

import (
	"context"
	"testing"
	"time"

	"github.com/risinglion/cinema-booking-api/internal/domain"
	"github.com/risinglion/cinema-booking-api/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestHasConflict(t *testing.T) {
	start := time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)

	existing := domain.Screening{
		ID:            5,
		Datetime:      start,
		TheaterID:     2,
		MovieDuration: 120, // occupies 18:00-20:00
	}

	t.Run("rejects non-positive duration", func(t *testing.T) {
		svc := NewScheduleService(new(mocks.MockScreeningRepo))

		_, err := svc.HasConflict(context.Background(), 2, start, 0, 0)

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("brackets the lookup window around the proposed interval", func(t *testing.T) {
		screeningRepo := new(mocks.MockScreeningRepo)
		screeningRepo.On("GetByTheaterAndDateRange", mock.Anything, 2,
			start.Add(-domain.ConflictWindowMargin),
			start.Add(90*time.Minute).Add(domain.ConflictWindowMargin),
		).Return([]domain.Screening{}, nil)

		svc := NewScheduleService(screeningRepo)

		conflict, err := svc.HasConflict(context.Background(), 2, start, 90, 0)

		require.NoError(t, err)
		assert.False(t, conflict)
		screeningRepo.AssertExpectations(t)
	})

	t.Run("detects an overlapping screening", func(t *testing.T) {
		screeningRepo := new(mocks.MockScreeningRepo)
		screeningRepo.On("GetByTheaterAndDateRange", mock.Anything, 2, mock.Anything, mock.Anything).
			Return([]domain.Screening{existing}, nil)

		svc := NewScheduleService(screeningRepo)

		// proposed 19:00-21:00 against existing 18:00-20:00
		conflict, err := svc.HasConflict(context.Background(), 2, start.Add(time.Hour), 120, 0)

		require.NoError(t, err)
		assert.True(t, conflict)
	})

	t.Run("allows touching endpoints", func(t *testing.T) {
		screeningRepo := new(mocks.MockScreeningRepo)
		screeningRepo.On("GetByTheaterAndDateRange", mock.Anything, 2, mock.Anything, mock.Anything).
			Return([]domain.Screening{existing}, nil)

		svc := NewScheduleService(screeningRepo)

		// proposed 20:00-22:00 starts the instant the existing one ends
		conflict, err := svc.HasConflict(context.Background(), 2, start.Add(2*time.Hour), 120, 0)

		require.NoError(t, err)
		assert.False(t, conflict)
	})

	t.Run("excludes the screening being edited", func(t *testing.T) {
		screeningRepo := new(mocks.MockScreeningRepo)
		screeningRepo.On("GetByTheaterAndDateRange", mock.Anything, 2, mock.Anything, mock.Anything).
			Return([]domain.Screening{existing}, nil)

		svc := NewScheduleService(screeningRepo)

		// rescheduling screening 5 onto its own slot must not conflict with itself
		conflict, err := svc.HasConflict(context.Background(), 2, start.Add(30*time.Minute), 120, 5)

		require.NoError(t, err)
		assert.False(t, conflict)
	})

	t.Run("still conflicts with other screenings while editing", func(t *testing.T) {
		other := domain.Screening{
			ID:            6,
			Datetime:      start.Add(3 * time.Hour), // 21:00-23:00
			TheaterID:     2,
			MovieDuration: 120,
		}

		screeningRepo := new(mocks.MockScreeningRepo)
		screeningRepo.On("GetByTheaterAndDateRange", mock.Anything, 2, mock.Anything, mock.Anything).
			Return([]domain.Screening{existing, other}, nil)

		svc := NewScheduleService(screeningRepo)

		// editing screening 5 into 20:30-22:30, which overlaps screening 6
		conflict, err := svc.HasConflict(context.Background(), 2, start.Add(150*time.Minute), 120, 5)

		require.NoError(t, err)
		assert.True(t, conflict)
	})
}
