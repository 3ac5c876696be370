package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Booking owns its tickets: the pair is created atomically at purchase time
// and never mutated afterwards. There is no way to persist a ticket outside
// of a booking.
type Booking struct {
	ID          int
	UserID      int
	ScreeningID int
	TotalPrice  decimal.Decimal
	Tickets     []Ticket
	CreatedAt   time.Time
}

type Ticket struct {
	ID          int
	BookingID   int
	ScreeningID int
	SeatID      int
}

type BookingRepository interface {
	// Create persists the booking and all of its tickets in one transaction,
	// assigning identities. It returns ErrSeatTaken if the storage-level
	// uniqueness constraint on (screening, seat) rejects a ticket, and
	// ErrRecordNotFound if a referenced seat no longer exists. On error
	// nothing is persisted.
	Create(ctx context.Context, booking *Booking) error
	GetByUser(ctx context.Context, userID int) ([]Booking, error)
	GetByScreening(ctx context.Context, screeningID int) ([]Booking, error)
	// TakenSeatIDs returns the set of seat IDs already ticketed for the
	// screening.
	TakenSeatIDs(ctx context.Context, screeningID int) (map[int]bool, error)
	// ExistsForMovieBefore reports whether the user holds a booking for any
	// screening of the movie that started before the given instant.
	ExistsForMovieBefore(ctx context.Context, userID, movieID int, before time.Time) (bool, error)
}
