package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/risinglion/cinema-booking-api/internal/domain"
)

type PostgresMovieRepository struct {
	db *pgxpool.Pool
}

func NewPostgresMovieRepository(db *pgxpool.Pool) *PostgresMovieRepository {
	return &PostgresMovieRepository{
		db: db,
	}
}

func (p *PostgresMovieRepository) Search(
	ctx context.Context,
	filters domain.MovieFilters) ([]domain.Movie, *domain.Metadata, error) {

	query := `
		SELECT
			COUNT(*) OVER(),
			m.id, m.title, m.duration, m.description, m.release_date, m.image_url,
			c.id, c.name
		FROM movies m
		JOIN categories c ON m.category_id = c.id
		WHERE ($1 = '' OR m.title ILIKE '%' || $1 || '%')
		AND ($2 = 0 OR m.category_id = $2)
		ORDER BY m.release_date DESC, m.id
		LIMIT $3 OFFSET $4
	`

	rows, err := p.db.Query(ctx, query, filters.Term, filters.CategoryID, filters.Limit(), filters.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	movies := make([]domain.Movie, 0)
	totalRecords := 0

	for rows.Next() {
		var movie domain.Movie

		err = rows.Scan(
			&totalRecords,
			&movie.ID,
			&movie.Title,
			&movie.Duration,
			&movie.Description,
			&movie.ReleaseDate,
			&movie.ImageURL,
			&movie.Category.ID,
			&movie.Category.Name,
		)
		if err != nil {
			return nil, nil, err
		}

		movies = append(movies, movie)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, filters.Page, filters.PageSize)

	return movies, metadata, nil
}

func (p *PostgresMovieRepository) GetById(ctx context.Context, id int) (*domain.Movie, error) {
	query := `
		SELECT m.id, m.title, m.duration, m.description, m.release_date, m.image_url, c.id, c.name
		FROM movies m
		JOIN categories c ON m.category_id = c.id
		WHERE m.id = $1
	`

	var movie domain.Movie

	err := p.db.QueryRow(ctx, query, id).Scan(
		&movie.ID,
		&movie.Title,
		&movie.Duration,
		&movie.Description,
		&movie.ReleaseDate,
		&movie.ImageURL,
		&movie.Category.ID,
		&movie.Category.Name,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &movie, nil
}

func (p *PostgresMovieRepository) Create(ctx context.Context, movie *domain.Movie) error {
	query := `
		INSERT INTO movies (title, duration, description, release_date, image_url, category_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := p.db.QueryRow(
		ctx,
		query,
		movie.Title,
		movie.Duration,
		movie.Description,
		movie.ReleaseDate,
		movie.ImageURL,
		movie.Category.ID).Scan(&movie.ID)

	if err != nil {
		return translateMovieError(err)
	}

	return nil
}

func (p *PostgresMovieRepository) Update(ctx context.Context, movie *domain.Movie) error {
	query := `
		UPDATE movies
		SET title = $1, duration = $2, description = $3, release_date = $4, image_url = $5, category_id = $6
		WHERE id = $7
	`

	result, err := p.db.Exec(
		ctx,
		query,
		movie.Title,
		movie.Duration,
		movie.Description,
		movie.ReleaseDate,
		movie.ImageURL,
		movie.Category.ID,
		movie.ID)

	if err != nil {
		return translateMovieError(err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (p *PostgresMovieRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM movies WHERE id = $1`

	result, err := p.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func translateMovieError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return domain.ErrDuplicateRecord
		case pgerrcode.ForeignKeyViolation:
			return domain.ErrRecordNotFound
		}
	}

	return err
}
