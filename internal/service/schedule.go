package service

import (
	"context"
	"fmt"
	"time"

	"github.com/risinglion/cinema-booking-api/internal/domain"
)

// ScheduleService decides whether a proposed screening interval collides
// with a theater's existing schedule. The check is advisory with respect to
// concurrent screening writes; screening creation is a low-frequency
// administrative action and exact-start duplicates are still rejected by the
// screenings(theater_id, datetime) constraint.
type ScheduleService struct {
	screenings domain.ScreeningRepository
}

func NewScheduleService(screenings domain.ScreeningRepository) *ScheduleService {
	return &ScheduleService{screenings: screenings}
}

// HasConflict reports whether a screening starting at proposedStart and
// running durationMinutes would overlap any other screening in the theater.
// excludeScreeningID skips the screening being edited; pass zero when
// creating. Touching endpoints are not conflicts.
func (s *ScheduleService) HasConflict(
	ctx context.Context,
	theaterID int,
	proposedStart time.Time,
	durationMinutes int,
	excludeScreeningID int) (bool, error) {

	if durationMinutes <= 0 {
		return false, fmt.Errorf("%w: duration must be positive", domain.ErrInvalidInput)
	}

	proposedEnd := proposedStart.Add(time.Duration(durationMinutes) * time.Minute)

	// Bracket the lookup generously so that any screening whose own interval
	// could reach into the proposed one is loaded regardless of its duration.
	windowStart := proposedStart.Add(-domain.ConflictWindowMargin)
	windowEnd := proposedEnd.Add(domain.ConflictWindowMargin)

	candidates, err := s.screenings.GetByTheaterAndDateRange(ctx, theaterID, windowStart, windowEnd)
	if err != nil {
		return false, err
	}

	for _, existing := range candidates {
		if existing.ID == excludeScreeningID {
			continue
		}

		if domain.Overlaps(proposedStart, proposedEnd, existing.Datetime, existing.EndTime()) {
			return true, nil
		}
	}

	return false, nil
}
