package domain

import "context"

type Theater struct {
	ID          int
	Name        string
	Rows        int
	SeatsPerRow int
}

type Seat struct {
	ID        int
	Row       string // A-Z
	Number    int
	TheaterID int
}

// SeatStatus is a seat annotated with its availability for one screening.
type SeatStatus struct {
	Seat
	Taken bool
}

type TheaterRepository interface {
	GetAll(ctx context.Context) ([]Theater, error)
	GetById(ctx context.Context, id int) (*Theater, error)
	// Create persists the theater and its full rows x seatsPerRow seat grid
	// in one transaction.
	Create(ctx context.Context, theater *Theater) error
	Delete(ctx context.Context, id int) error
}

type SeatRepository interface {
	// GetByTheater returns the theater's seats ordered by row label, then
	// seat number.
	GetByTheater(ctx context.Context, theaterID int) ([]Seat, error)
	GetByIds(ctx context.Context, ids []int) ([]Seat, error)
}
