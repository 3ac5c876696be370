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

type PostgresReviewRepository struct {
	db *pgxpool.Pool
}

func NewPostgresReviewRepository(db *pgxpool.Pool) *PostgresReviewRepository {
	return &PostgresReviewRepository{
		db: db,
	}
}

func (p *PostgresReviewRepository) GetByMovie(ctx context.Context, movieID int) ([]domain.Review, error) {
	query := `
		SELECT id, rating, review_text, user_id, movie_id
		FROM reviews
		WHERE movie_id = $1
		ORDER BY id DESC
	`

	rows, err := p.db.Query(ctx, query, movieID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := make([]domain.Review, 0)

	for rows.Next() {
		var review domain.Review

		err = rows.Scan(&review.ID, &review.Rating, &review.Text, &review.UserID, &review.MovieID)
		if err != nil {
			return nil, err
		}

		reviews = append(reviews, review)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return reviews, nil
}

func (p *PostgresReviewRepository) GetByMovieAndUser(ctx context.Context, movieID, userID int) (*domain.Review, error) {
	query := `
		SELECT id, rating, review_text, user_id, movie_id
		FROM reviews
		WHERE movie_id = $1 AND user_id = $2
	`

	var review domain.Review

	err := p.db.QueryRow(ctx, query, movieID, userID).
		Scan(&review.ID, &review.Rating, &review.Text, &review.UserID, &review.MovieID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &review, nil
}

func (p *PostgresReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	query := `
		INSERT INTO reviews (rating, review_text, user_id, movie_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := p.db.QueryRow(ctx, query, review.Rating, review.Text, review.UserID, review.MovieID).Scan(&review.ID)
	if err != nil {
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

	return nil
}

func (p *PostgresReviewRepository) Update(ctx context.Context, review *domain.Review) error {
	query := `UPDATE reviews SET rating = $1, review_text = $2 WHERE id = $3`

	result, err := p.db.Exec(ctx, query, review.Rating, review.Text, review.ID)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (p *PostgresReviewRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM reviews WHERE id = $1`

	result, err := p.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}
