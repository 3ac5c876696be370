package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/risinglion/cinema-booking-api/internal/domain"
)

type PostgresSeatRepository struct {
	db *pgxpool.Pool
}

func NewPostgresSeatRepository(db *pgxpool.Pool) *PostgresSeatRepository {
	return &PostgresSeatRepository{
		db: db,
	}
}

func (p *PostgresSeatRepository) GetByTheater(ctx context.Context, theaterID int) ([]domain.Seat, error) {
	query := `
		SELECT id, row_label, number, theater_id
		FROM seats
		WHERE theater_id = $1
		ORDER BY row_label, number
	`

	rows, err := p.db.Query(ctx, query, theaterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectSeats(rows)
}

func (p *PostgresSeatRepository) GetByIds(ctx context.Context, ids []int) ([]domain.Seat, error) {
	query := `
		SELECT id, row_label, number, theater_id
		FROM seats
		WHERE id = ANY($1)
		ORDER BY id
	`

	rows, err := p.db.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectSeats(rows)
}

func collectSeats(rows pgx.Rows) ([]domain.Seat, error) {
	seats := make([]domain.Seat, 0)

	for rows.Next() {
		var seat domain.Seat

		err := rows.Scan(&seat.ID, &seat.Row, &seat.Number, &seat.TheaterID)
		if err != nil {
			return nil, err
		}

		seats = append(seats, seat)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return seats, nil
}
