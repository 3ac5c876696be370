package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/exaring/otelpgx"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/golang-migrate/migrate/v4"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgxstd "github.com/jackc/pgx/v5/stdlib"
	"github.com/riandyrn/otelchi"
	"github.com/risinglion/cinema-booking-api/internal/domain"
	"github.com/risinglion/cinema-booking-api/internal/mailer"
	"github.com/risinglion/cinema-booking-api/internal/repository"
	"github.com/risinglion/cinema-booking-api/internal/service"
	"github.com/risinglion/cinema-booking-api/internal/token"
	appvalidator "github.com/risinglion/cinema-booking-api/internal/validator"
	"github.com/risinglion/cinema-booking-api/internal/vcs"
	"go.opentelemetry.io/contrib/bridges/otelslog"
)

var (
	version = vcs.Version()
)

type Application struct {
	config    Config
	logger    *slog.Logger
	db        *pgxpool.Pool
	validator *validator.Validate
	mailer    mailer.Mailer
	tokens    *token.Maker

	userRepo      domain.UserRepository
	categoryRepo  domain.CategoryRepository
	movieRepo     domain.MovieRepository
	theaterRepo   domain.TheaterRepository
	seatRepo      domain.SeatRepository
	screeningRepo domain.ScreeningRepository
	bookingRepo   domain.BookingRepository
	reviewRepo    domain.ReviewRepository

	bookings *service.BookingService
	schedule *service.ScheduleService
}

type Config struct {
	Port             int
	Env              string
	OtelCollectorUrl string
	DB               DBConfig
	SMTP             SMTPConfig
	JWT              JWTConfig
}

type DBConfig struct {
	DSN           string
	MaxOpenConns  int
	MaxIdleTime   time.Duration
	MigrationsDir string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
}

type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

func Run() error {
	var cfg Config

	flag.IntVar(&cfg.Port, "port", 3000, "server port")
	flag.StringVar(&cfg.Env, "env", "dev", "Environment (dev|staging|prod)")
	flag.StringVar(&cfg.OtelCollectorUrl, "otel-collector-url", "", "OpenTelemetry collector URL")

	flag.StringVar(&cfg.DB.DSN, "db-dsn", "", "PostgreSQL DSN")
	flag.IntVar(&cfg.DB.MaxOpenConns, "db-max-open-conns", 25, "PostgreSQL max open connections")
	flag.DurationVar(&cfg.DB.MaxIdleTime, "db-max-idle-time", 15*time.Minute, "PostgreSQL max idle time for connections")
	flag.StringVar(&cfg.DB.MigrationsDir, "db-migrations-dir", "", "Run database migrations from this directory on startup")

	flag.StringVar(&cfg.SMTP.Host, "smtp-host", "sandbox.smtp.mailtrap.io", "SMTP host")
	flag.IntVar(&cfg.SMTP.Port, "smtp-port", 2525, "SMTP port")
	flag.StringVar(&cfg.SMTP.Username, "smtp-username", "", "SMTP username")
	flag.StringVar(&cfg.SMTP.Password, "smtp-password", "", "SMTP password")
	flag.StringVar(&cfg.SMTP.Sender, "smtp-sender", "Cinema Booking <no-reply@cinema-booking.example.com>", "SMTP sender")

	flag.StringVar(&cfg.JWT.Secret, "jwt-secret", "", "JWT signing secret (falls back to APP_JWT_SECRET)")
	flag.DurationVar(&cfg.JWT.TTL, "jwt-ttl", 24*time.Hour, "JWT access token lifetime")

	displayVersion := flag.Bool("version", false, "Display version and exit")

	flag.Parse()

	if *displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	validator := appvalidator.NewValidator()

	db, err := NewDatabasePool(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.DB.MigrationsDir != "" {
		err = runMigrations(cfg)
		if err != nil {
			return err
		}
	}

	tokens, err := token.NewMaker(cfg.JWT.Secret, cfg.JWT.TTL)
	if err != nil {
		return err
	}

	userRepo := repository.NewPostgresUserRepository(db)
	categoryRepo := repository.NewPostgresCategoryRepository(db)
	movieRepo := repository.NewPostgresMovieRepository(db)
	theaterRepo := repository.NewPostgresTheaterRepository(db)
	seatRepo := repository.NewPostgresSeatRepository(db)
	screeningRepo := repository.NewPostgresScreeningRepository(db)
	bookingRepo := repository.NewPostgresBookingRepository(db)
	reviewRepo := repository.NewPostgresReviewRepository(db)

	smtpMailer := mailer.NewSmtpMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.Sender)

	app := NewApp(
		cfg,
		logger,
		db,
		validator,
		smtpMailer,
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

	shutdownTelemetry, err := app.InitTelemetry()
	if err != nil {
		return err
	}
	defer shutdownTelemetry(context.Background())

	if cfg.OtelCollectorUrl != "" {
		app.logger = slog.New(NewMultiHandler(
			slog.NewTextHandler(os.Stdout, nil),
			otelslog.NewHandler("cinema-booking-api"),
		))
	}

	return app.run()
}

func NewApp(
	cfg Config,
	logger *slog.Logger,
	db *pgxpool.Pool,
	validator *validator.Validate,
	appMailer mailer.Mailer,
	tokens *token.Maker,
	userRepo domain.UserRepository,
	categoryRepo domain.CategoryRepository,
	movieRepo domain.MovieRepository,
	theaterRepo domain.TheaterRepository,
	seatRepo domain.SeatRepository,
	screeningRepo domain.ScreeningRepository,
	bookingRepo domain.BookingRepository,
	reviewRepo domain.ReviewRepository,
) *Application {
	return &Application{
		config:        cfg,
		logger:        logger,
		db:            db,
		validator:     validator,
		mailer:        appMailer,
		tokens:        tokens,
		userRepo:      userRepo,
		categoryRepo:  categoryRepo,
		movieRepo:     movieRepo,
		theaterRepo:   theaterRepo,
		seatRepo:      seatRepo,
		screeningRepo: screeningRepo,
		bookingRepo:   bookingRepo,
		reviewRepo:    reviewRepo,
		bookings:      service.NewBookingService(screeningRepo, userRepo, seatRepo, bookingRepo),
		schedule:      service.NewScheduleService(screeningRepo),
	}
}

func NewDatabasePool(cfg Config) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(cfg.DB.DSN)
	if err != nil {
		return nil, err
	}

	config.MaxConnIdleTime = cfg.DB.MaxIdleTime
	config.MaxConns = int32(cfg.DB.MaxOpenConns)
	config.ConnConfig.Tracer = otelpgx.NewTracer()

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = db.Ping(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func runMigrations(cfg Config) error {
	config, err := pgx.ParseConfig(cfg.DB.DSN)
	if err != nil {
		return err
	}

	db := pgxstd.OpenDB(*config)
	defer db.Close()

	driver, err := pgxmigrate.WithInstance(db, &pgxmigrate.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+cfg.DB.MigrationsDir, "pgx5", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	return nil
}

func (app *Application) run() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.Port),
		Handler:      app.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		err := srv.Shutdown(ctx)
		if err != nil {
			shutdownError <- err
		}

		shutdownError <- nil
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)

	r.Use(middleware.Logger)
	r.Use(middleware.RequestID)
	r.Use(otelchi.Middleware("cinema-booking-api", otelchi.WithChiRoutes(r)))
	r.Use(app.recoverPanic)
	r.Use(app.authenticate)

	r.Get("/health", app.GetHealth)

	r.Post("/auth/signup", app.Signup)
	r.Post("/auth/login", app.Login)
	r.Post("/auth/reset-password", app.ResetPassword)

	r.Route("/categories", func(r chi.Router) {
		r.Get("/", app.ListCategories)
		r.With(app.requireAdmin).Post("/", app.CreateCategory)
		r.With(app.requireAdmin).Put("/{categoryId}", app.UpdateCategory)
		r.With(app.requireAdmin).Delete("/{categoryId}", app.DeleteCategory)
	})

	r.Route("/movies", func(r chi.Router) {
		r.Get("/", app.ListMovies)
		r.Get("/{movieId}", app.GetMovie)
		r.With(app.requireAdmin).Post("/", app.CreateMovie)
		r.With(app.requireAdmin).Put("/{movieId}", app.UpdateMovie)
		r.With(app.requireAdmin).Delete("/{movieId}", app.DeleteMovie)

		r.Get("/{movieId}/screenings", app.ListMovieScreenings)

		r.Get("/{movieId}/reviews", app.ListMovieReviews)
		r.With(app.requireAuthentication).Post("/{movieId}/reviews", app.UpsertMovieReview)
		r.With(app.requireAuthentication).Put("/{movieId}/reviews", app.UpsertMovieReview)
		r.With(app.requireAuthentication).Delete("/{movieId}/reviews", app.DeleteOwnMovieReview)
	})

	r.Route("/theaters", func(r chi.Router) {
		r.Get("/", app.ListTheaters)
		r.Get("/{theaterId}", app.GetTheater)
		r.With(app.requireAdmin).Post("/", app.CreateTheater)
		r.With(app.requireAdmin).Delete("/{theaterId}", app.DeleteTheater)
	})

	r.Route("/screenings", func(r chi.Router) {
		r.Get("/", app.ListScreenings)
		r.Get("/{screeningId}", app.GetScreening)
		r.Get("/{screeningId}/seats", app.GetScreeningSeatMap)
		r.With(app.requireAdmin).Post("/", app.CreateScreening)
		r.With(app.requireAdmin).Put("/{screeningId}", app.UpdateScreening)
		r.With(app.requireAdmin).Delete("/{screeningId}", app.DeleteScreening)
		r.With(app.requireAdmin).Get("/{screeningId}/bookings", app.ListScreeningBookings)
	})

	r.Route("/bookings", func(r chi.Router) {
		r.With(app.requireAuthentication).Post("/", app.CreateBooking)
	})

	r.With(app.requireAuthentication).Route("/users/me", func(r chi.Router) {
		r.Get("/", app.GetCurrentUser)
		r.Patch("/", app.UpdateCurrentUser)
		r.Get("/bookings", app.ListCurrentUserBookings)
	})

	r.With(app.requireAdmin).Route("/admin/users", func(r chi.Router) {
		r.Get("/", app.ListUsers)
		r.Put("/{userId}/admin", app.SetUserAdmin)
		r.Delete("/{userId}", app.DeleteUser)
	})

	r.With(app.requireAdmin).Delete("/reviews/{reviewId}", app.DeleteReview)

	return r
}
