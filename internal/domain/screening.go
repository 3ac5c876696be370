package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Screening datetimes are naive local timestamps: they are stored in a
// plain timestamp column and compared without timezone conversion.
type Screening struct {
	ID          int
	Datetime    time.Time
	TicketPrice decimal.Decimal
	MovieID     int
	TheaterID   int

	// MovieDuration is the running time in minutes of the referenced movie,
	// joined in by queries that need the screening's occupied interval.
	MovieDuration int
}

// EndTime returns the instant the screening's interval ends. Intervals are
// half-open: a screening occupies [Datetime, EndTime).
func (s Screening) EndTime() time.Time {
	return s.Datetime.Add(time.Duration(s.MovieDuration) * time.Minute)
}

type ScreeningRepository interface {
	GetById(ctx context.Context, id int) (*Screening, error)
	GetByDateRange(ctx context.Context, start, end time.Time) ([]Screening, error)
	GetByMovieAndDateRange(ctx context.Context, movieID int, start, end time.Time) ([]Screening, error)
	GetByTheaterAndDateRange(ctx context.Context, theaterID int, start, end time.Time) ([]Screening, error)
	Create(ctx context.Context, screening *Screening) error
	Update(ctx context.Context, screening *Screening) error
	Delete(ctx context.Context, id int) error
}
