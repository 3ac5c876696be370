package service

import (
	"context"
	"fmt"

	"github.com/risinglion/cinema-booking-api/internal/domain"
	"github.com/shopspring/decimal"
)

// BookingService implements the seat allocation workflow. The availability
// pre-check here is only an optimization to fail fast: two requests can both
// pass it for the same seat before either commits. The uniqueness constraint
// on tickets(screening_id, seat_id), surfaced by the repository as
// ErrSeatTaken, is the final arbiter under concurrency.
type BookingService struct {
	screenings domain.ScreeningRepository
	users      domain.UserRepository
	seats      domain.SeatRepository
	bookings   domain.BookingRepository
}

func NewBookingService(
	screenings domain.ScreeningRepository,
	users domain.UserRepository,
	seats domain.SeatRepository,
	bookings domain.BookingRepository) *BookingService {

	return &BookingService{
		screenings: screenings,
		users:      users,
		seats:      seats,
		bookings:   bookings,
	}
}

// Book atomically purchases the given seats for a screening on behalf of a
// user and returns the persisted booking with its tickets. It returns
// ErrRecordNotFound if the user, screening or any seat does not exist,
// ErrSeatNotInTheater if a seat belongs to another theater, and ErrSeatTaken
// if any seat is already ticketed for the screening. On error nothing is
// persisted.
func (s *BookingService) Book(ctx context.Context, userID, screeningID int, seatIDs []int) (*domain.Booking, error) {
	if len(seatIDs) == 0 {
		return nil, fmt.Errorf("%w: no seats selected", domain.ErrInvalidInput)
	}

	seen := make(map[int]bool, len(seatIDs))
	for _, id := range seatIDs {
		if id < 1 {
			return nil, fmt.Errorf("%w: seat ID must be greater than zero", domain.ErrInvalidInput)
		}
		if seen[id] {
			return nil, fmt.Errorf("%w: duplicate seat ID %d", domain.ErrInvalidInput, id)
		}
		seen[id] = true
	}

	screening, err := s.screenings.GetById(ctx, screeningID)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetById(ctx, userID)
	if err != nil {
		return nil, err
	}

	seats, err := s.seats.GetByIds(ctx, seatIDs)
	if err != nil {
		return nil, err
	}

	if len(seats) != len(seatIDs) {
		return nil, domain.ErrRecordNotFound
	}

	for _, seat := range seats {
		if seat.TheaterID != screening.TheaterID {
			return nil, domain.ErrSeatNotInTheater
		}
	}

	taken, err := s.bookings.TakenSeatIDs(ctx, screeningID)
	if err != nil {
		return nil, err
	}

	for _, id := range seatIDs {
		if taken[id] {
			return nil, domain.ErrSeatTaken
		}
	}

	booking := &domain.Booking{
		UserID:      user.ID,
		ScreeningID: screening.ID,
		TotalPrice:  screening.TicketPrice.Mul(decimal.NewFromInt(int64(len(seatIDs)))),
	}

	for _, id := range seatIDs {
		booking.Tickets = append(booking.Tickets, domain.Ticket{
			ScreeningID: screening.ID,
			SeatID:      id,
		})
	}

	err = s.bookings.Create(ctx, booking)
	if err != nil {
		return nil, err
	}

	return booking, nil
}

// SeatMap returns every seat of the screening's theater flagged with whether
// a ticket already exists for it, ordered by row label then seat number.
func (s *BookingService) SeatMap(ctx context.Context, screeningID int) ([]domain.SeatStatus, error) {
	screening, err := s.screenings.GetById(ctx, screeningID)
	if err != nil {
		return nil, err
	}

	seats, err := s.seats.GetByTheater(ctx, screening.TheaterID)
	if err != nil {
		return nil, err
	}

	taken, err := s.bookings.TakenSeatIDs(ctx, screeningID)
	if err != nil {
		return nil, err
	}

	seatMap := make([]domain.SeatStatus, len(seats))
	for i, seat := range seats {
		seatMap[i] = domain.SeatStatus{
			Seat:  seat,
			Taken: taken[seat.ID],
		}
	}

	return seatMap, nil
}
