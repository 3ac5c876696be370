package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/risinglion/cinema-booking-api/internal/domain"
)

type PostgresBookingRepository struct {
	db *pgxpool.Pool
}

func NewPostgresBookingRepository(db *pgxpool.Pool) *PostgresBookingRepository {
	return &PostgresBookingRepository{
		db: db,
	}
}

// Create inserts the booking and all of its tickets in one transaction. A
// unique violation on tickets(screening_id, seat_id) means a concurrent
// booking won the seat and is reported as domain.ErrSeatTaken; a foreign key
// violation on seat_id means the seat disappeared and is reported as
// domain.ErrRecordNotFound. Either way the transaction is rolled back and
// nothing remains visible.
func (p *PostgresBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO bookings (user_id, screening_id, total_price)
			VALUES ($1, $2, $3)
			RETURNING id, created_at
		`

		err := tx.QueryRow(
			ctx,
			query,
			booking.UserID,
			booking.ScreeningID,
			booking.TotalPrice).Scan(&booking.ID, &booking.CreatedAt)

		if err != nil {
			return err
		}

		query = `
			INSERT INTO tickets (booking_id, screening_id, seat_id)
			VALUES ($1, $2, $3)
			RETURNING id
		`

		for i := range booking.Tickets {
			ticket := &booking.Tickets[i]
			ticket.BookingID = booking.ID

			err = tx.QueryRow(ctx, query, ticket.BookingID, ticket.ScreeningID, ticket.SeatID).Scan(&ticket.ID)
			if err != nil {
				var pgErr *pgconn.PgError
				if errors.As(err, &pgErr) {
					switch pgErr.Code {
					case pgerrcode.UniqueViolation:
						return domain.ErrSeatTaken
					case pgerrcode.ForeignKeyViolation:
						return domain.ErrRecordNotFound
					}
				}

				return err
			}
		}

		return nil
	})
}

func (p *PostgresBookingRepository) GetByUser(ctx context.Context, userID int) ([]domain.Booking, error) {
	query := `
		SELECT id, user_id, screening_id, total_price, created_at
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := p.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return p.collectWithTickets(ctx, rows)
}

func (p *PostgresBookingRepository) GetByScreening(ctx context.Context, screeningID int) ([]domain.Booking, error) {
	query := `
		SELECT id, user_id, screening_id, total_price, created_at
		FROM bookings
		WHERE screening_id = $1
		ORDER BY id
	`

	rows, err := p.db.Query(ctx, query, screeningID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return p.collectWithTickets(ctx, rows)
}

func (p *PostgresBookingRepository) collectWithTickets(ctx context.Context, rows pgx.Rows) ([]domain.Booking, error) {
	bookings := make([]domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking

		err := rows.Scan(
			&booking.ID,
			&booking.UserID,
			&booking.ScreeningID,
			&booking.TotalPrice,
			&booking.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range bookings {
		tickets, err := p.retrieveTickets(ctx, bookings[i].ID)
		if err != nil {
			return nil, err
		}

		bookings[i].Tickets = tickets
	}

	return bookings, nil
}

func (p *PostgresBookingRepository) retrieveTickets(ctx context.Context, bookingID int) ([]domain.Ticket, error) {
	query := `
		SELECT id, booking_id, screening_id, seat_id
		FROM tickets
		WHERE booking_id = $1
		ORDER BY id
	`

	rows, err := p.db.Query(ctx, query, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make([]domain.Ticket, 0)

	for rows.Next() {
		var ticket domain.Ticket

		err = rows.Scan(&ticket.ID, &ticket.BookingID, &ticket.ScreeningID, &ticket.SeatID)
		if err != nil {
			return nil, err
		}

		tickets = append(tickets, ticket)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return tickets, nil
}

func (p *PostgresBookingRepository) TakenSeatIDs(ctx context.Context, screeningID int) (map[int]bool, error) {
	query := `
		SELECT seat_id
		FROM tickets
		WHERE screening_id = $1
	`

	rows, err := p.db.Query(ctx, query, screeningID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	taken := make(map[int]bool)

	for rows.Next() {
		var seatID int

		err = rows.Scan(&seatID)
		if err != nil {
			return nil, err
		}

		taken[seatID] = true
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return taken, nil
}

func (p *PostgresBookingRepository) ExistsForMovieBefore(
	ctx context.Context,
	userID, movieID int,
	before time.Time) (bool, error) {

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM bookings b
			JOIN screenings s ON b.screening_id = s.id
			WHERE b.user_id = $1 AND s.movie_id = $2 AND s.datetime < $3
		)
	`

	var exists bool

	err := p.db.QueryRow(ctx, query, userID, movieID, before).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}
