package integration_test

import (
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/risinglion/cinema-booking-api/internal/app"
	"github.com/risinglion/cinema-booking-api/internal/mailer"
	"github.com/risinglion/cinema-booking-api/internal/repository"
	"github.com/risinglion/cinema-booking-api/internal/token"
	appvalidator "github.com/risinglion/cinema-booking-api/internal/validator"
)

type TestApp struct {
	App    *app.Application
	DB     *pgxpool.Pool
	Mailer *mailer.MockMailer
	Tokens *token.Maker
}

func newTestApp(cfg app.Config) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	validator := appvalidator.NewValidator()
	mockMailer := mailer.NewMockMailer()

	db, err := app.NewDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	tokens, err := token.NewMaker("integration-test-secret", time.Hour)
	if err != nil {
		db.Close()
		return nil, err
	}

	userRepo := repository.NewPostgresUserRepository(db)
	categoryRepo := repository.NewPostgresCategoryRepository(db)
	movieRepo := repository.NewPostgresMovieRepository(db)
	theaterRepo := repository.NewPostgresTheaterRepository(db)
	seatRepo := repository.NewPostgresSeatRepository(db)
	screeningRepo := repository.NewPostgresScreeningRepository(db)
	bookingRepo := repository.NewPostgresBookingRepository(db)
	reviewRepo := repository.NewPostgresReviewRepository(db)

	application := app.NewApp(
		cfg,
		logger,
		db,
		validator,
		mockMailer,
		tokens,
		userRepo,
		categoryRepo,
		movieRepo,
		theaterRepo,
		seatRepo,
		screeningRepo,
		bookingRepo,
		reviewRepo,
	)

	return &TestApp{
		App:    application,
		DB:     db,
		Mailer: mockMailer,
		Tokens: tokens,
	}, nil
}
