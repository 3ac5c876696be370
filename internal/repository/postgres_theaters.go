package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/risinglion/cinema-booking-api/internal/domain"
)

type PostgresTheaterRepository struct {
	db *pgxpool.Pool
}

func NewPostgresTheaterRepository(db *pgxpool.Pool) *PostgresTheaterRepository {
	return &PostgresTheaterRepository{
		db: db,
	}
}

func (p *PostgresTheaterRepository) GetAll(ctx context.Context) ([]domain.Theater, error) {
	query := `SELECT id, name, row_count, seats_per_row FROM theaters ORDER BY id`

	rows, err := p.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	theaters := make([]domain.Theater, 0)

	for rows.Next() {
		var theater domain.Theater

		err = rows.Scan(&theater.ID, &theater.Name, &theater.Rows, &theater.SeatsPerRow)
		if err != nil {
			return nil, err
		}

		theaters = append(theaters, theater)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return theaters, nil
}

func (p *PostgresTheaterRepository) GetById(ctx context.Context, id int) (*domain.Theater, error) {
	query := `SELECT id, name, row_count, seats_per_row FROM theaters WHERE id = $1`

	var theater domain.Theater

	err := p.db.QueryRow(ctx, query, id).Scan(&theater.ID, &theater.Name, &theater.Rows, &theater.SeatsPerRow)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &theater, nil
}

// Create inserts the theater together with its full seat grid: rows are
// labelled A, B, C, ... and seats are numbered from 1 within each row.
func (p *PostgresTheaterRepository) Create(ctx context.Context, theater *domain.Theater) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO theaters (name, row_count, seats_per_row)
			VALUES ($1, $2, $3)
			RETURNING id
		`

		err := tx.QueryRow(ctx, query, theater.Name, theater.Rows, theater.SeatsPerRow).Scan(&theater.ID)
		if err != nil {
			return err
		}

		rows := make([][]any, 0, theater.Rows*theater.SeatsPerRow)
		for row := 0; row < theater.Rows; row++ {
			label := string(rune('A' + row))
			for number := 1; number <= theater.SeatsPerRow; number++ {
				rows = append(rows, []any{theater.ID, label, number})
			}
		}

		_, err = tx.CopyFrom(
			ctx,
			pgx.Identifier{"seats"},
			[]string{"theater_id", "row_label", "number"},
			pgx.CopyFromRows(rows),
		)

		return err
	})
}

func (p *PostgresTheaterRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM theaters WHERE id = $1`

	result, err := p.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}
