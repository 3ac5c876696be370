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

type PostgresScreeningRepository struct {
	db *pgxpool.Pool
}

func NewPostgresScreeningRepository(db *pgxpool.Pool) *PostgresScreeningRepository {
	return &PostgresScreeningRepository{
		db: db,
	}
}

func (p *PostgresScreeningRepository) GetById(ctx context.Context, id int) (*domain.Screening, error) {
	query := `
		SELECT s.id, s.datetime, s.ticket_price, s.movie_id, s.theater_id, m.duration
		FROM screenings s
		JOIN movies m ON s.movie_id = m.id
		WHERE s.id = $1
	`

	var screening domain.Screening

	err := p.db.QueryRow(ctx, query, id).Scan(
		&screening.ID,
		&screening.Datetime,
		&screening.TicketPrice,
		&screening.MovieID,
		&screening.TheaterID,
		&screening.MovieDuration,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &screening, nil
}

func (p *PostgresScreeningRepository) GetByDateRange(ctx context.Context, start, end time.Time) ([]domain.Screening, error) {
	query := `
		SELECT s.id, s.datetime, s.ticket_price, s.movie_id, s.theater_id, m.duration
		FROM screenings s
		JOIN movies m ON s.movie_id = m.id
		WHERE s.datetime >= $1 AND s.datetime < $2
		ORDER BY s.datetime, s.id
	`

	rows, err := p.db.Query(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectScreenings(rows)
}

func (p *PostgresScreeningRepository) GetByMovieAndDateRange(
	ctx context.Context,
	movieID int,
	start, end time.Time) ([]domain.Screening, error) {

	query := `
		SELECT s.id, s.datetime, s.ticket_price, s.movie_id, s.theater_id, m.duration
		FROM screenings s
		JOIN movies m ON s.movie_id = m.id
		WHERE s.movie_id = $1 AND s.datetime >= $2 AND s.datetime < $3
		ORDER BY s.datetime, s.id
	`

	rows, err := p.db.Query(ctx, query, movieID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectScreenings(rows)
}

func (p *PostgresScreeningRepository) GetByTheaterAndDateRange(
	ctx context.Context,
	theaterID int,
	start, end time.Time) ([]domain.Screening, error) {

	query := `
		SELECT s.id, s.datetime, s.ticket_price, s.movie_id, s.theater_id, m.duration
		FROM screenings s
		JOIN movies m ON s.movie_id = m.id
		WHERE s.theater_id = $1 AND s.datetime >= $2 AND s.datetime < $3
		ORDER BY s.datetime, s.id
	`

	rows, err := p.db.Query(ctx, query, theaterID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectScreenings(rows)
}

func collectScreenings(rows pgx.Rows) ([]domain.Screening, error) {
	screenings := make([]domain.Screening, 0)

	for rows.Next() {
		var screening domain.Screening

		err := rows.Scan(
			&screening.ID,
			&screening.Datetime,
			&screening.TicketPrice,
			&screening.MovieID,
			&screening.TheaterID,
			&screening.MovieDuration,
		)
		if err != nil {
			return nil, err
		}

		screenings = append(screenings, screening)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return screenings, nil
}

func (p *PostgresScreeningRepository) Create(ctx context.Context, screening *domain.Screening) error {
	query := `
		INSERT INTO screenings (movie_id, theater_id, datetime, ticket_price)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := p.db.QueryRow(
		ctx,
		query,
		screening.MovieID,
		screening.TheaterID,
		screening.Datetime,
		screening.TicketPrice).Scan(&screening.ID)

	if err != nil {
		return translateScreeningError(err)
	}

	return nil
}

func (p *PostgresScreeningRepository) Update(ctx context.Context, screening *domain.Screening) error {
	query := `
		UPDATE screenings
		SET movie_id = $1, theater_id = $2, datetime = $3, ticket_price = $4
		WHERE id = $5
	`

	result, err := p.db.Exec(
		ctx,
		query,
		screening.MovieID,
		screening.TheaterID,
		screening.Datetime,
		screening.TicketPrice,
		screening.ID)

	if err != nil {
		return translateScreeningError(err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (p *PostgresScreeningRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM screenings WHERE id = $1`

	result, err := p.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

// translateScreeningError maps constraint failures to domain errors: two
// screenings cannot share a theater and exact start time, and the movie and
// theater references must resolve.
func translateScreeningError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return domain.ErrScreeningOverlap
		case pgerrcode.ForeignKeyViolation:
			return domain.ErrRecordNotFound
		}
	}

	return err
}
