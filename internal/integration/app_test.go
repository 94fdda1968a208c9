package integration_test

import (
	"io"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/seatbook/api/internal/app"
	"github.com/seatbook/api/internal/repository"
	appvalidator "github.com/seatbook/api/internal/validator"
)

type TestApp struct {
	App *app.Application
	DB  *pgxpool.Pool
}

func newTestApp(cfg app.Config) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	validator := appvalidator.NewValidator()

	db, err := app.NewDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := app.NewRedisClient(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	movieRepo := repository.NewPostgresMovieRepository(db)
	theaterRepo := repository.NewPostgresTheaterRepository(db)
	screeningRepo := repository.NewPostgresScreeningRepository(db)
	bookingRepo := repository.NewPostgresBookingRepository(db)

	application := app.NewApp(
		cfg,
		logger,
		db,
		redisClient,
		validator,
		movieRepo,
		theaterRepo,
		screeningRepo,
		bookingRepo,
	)

	return &TestApp{
		App: application,
		DB:  db,
	}, nil
}
