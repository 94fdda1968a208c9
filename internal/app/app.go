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
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"github.com/seatbook/api/internal/booking"
	"github.com/seatbook/api/internal/domain"
	"github.com/seatbook/api/internal/repository"
	appvalidator "github.com/seatbook/api/internal/validator"
	"github.com/seatbook/api/internal/vcs"
	"go.opentelemetry.io/contrib/bridges/otelslog"
)

var (
	version = vcs.Version()
)

type Config struct {
	Port             int
	Env              string
	JWTSecret        string
	OtelCollectorUrl string
	DB               DBConfig
	Redis            RedisConfig
}

type DBConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleTime  time.Duration
}

type RedisConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration
}

type Application struct {
	config    Config
	logger    *slog.Logger
	db        *pgxpool.Pool
	redis     redis.UniversalClient
	validator *validator.Validate

	movieRepo     domain.MovieRepository
	theaterRepo   domain.TheaterRepository
	screeningRepo domain.ScreeningRepository
	bookingRepo   domain.BookingRepository

	allocator *booking.Allocator
	canceller *booking.Canceller
}

func Run() error {
	var cfg Config

	flag.IntVar(&cfg.Port, "port", 3000, "server port")
	flag.StringVar(&cfg.Env, "env", "dev", "Environment (dev|staging|prod)")

	flag.StringVar(&cfg.DB.DSN, "db-dsn", "", "PostgreSQL DSN")
	flag.IntVar(&cfg.DB.MaxOpenConns, "db-max-open-conns", 25, "PostgreSQL max open connections")
	flag.DurationVar(&cfg.DB.MaxIdleTime, "db-max-idle-time", 15*time.Minute, "PostgreSQL max idle time for connections")

	flag.StringVar(&cfg.Redis.URL, "redis-url", "", "Redis URL")
	flag.IntVar(&cfg.Redis.MaxOpenConns, "redis-max-open-conns", 25, "Redis max open connections")
	flag.IntVar(&cfg.Redis.MaxIdleConns, "redis-max-idle-conns", 10, "Redis max idle connections")
	flag.DurationVar(&cfg.Redis.MaxIdleTime, "redis-max-idle-time", 2*time.Minute, "Redis max idle time for connections")

	flag.StringVar(&cfg.JWTSecret, "jwt-secret", "", "HMAC secret used to verify bearer tokens")
	flag.StringVar(&cfg.OtelCollectorUrl, "otel-collector-url", "", "OpenTelemetry collector URL")

	displayVersion := flag.Bool("version", false, "Display version and exit")

	flag.Parse()

	if *displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	app, err := New(cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	shutdownTelemetry, err := app.InitTelemetry()
	if err != nil {
		return err
	}
	defer shutdownTelemetry(context.Background())

	if cfg.OtelCollectorUrl != "" {
		app.logger = slog.New(NewMultiHandler(
			slog.NewTextHandler(os.Stdout, nil),
			otelslog.NewHandler("seatbook-api"),
		))
	}

	return app.Serve()
}

// New wires the application from config: database pool, redis client,
// repositories and the booking core.
func New(cfg Config) (*Application, error) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	db, err := NewDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := NewRedisClient(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	movieRepo := repository.NewPostgresMovieRepository(db)
	theaterRepo := repository.NewPostgresTheaterRepository(db)
	screeningRepo := repository.NewPostgresScreeningRepository(db)
	bookingRepo := repository.NewPostgresBookingRepository(db)

	return NewApp(cfg, logger, db, redisClient, appvalidator.NewValidator(),
		movieRepo, theaterRepo, screeningRepo, bookingRepo), nil
}

func NewApp(
	cfg Config,
	logger *slog.Logger,
	db *pgxpool.Pool,
	redisClient redis.UniversalClient,
	validator *validator.Validate,
	movieRepo domain.MovieRepository,
	theaterRepo domain.TheaterRepository,
	screeningRepo domain.ScreeningRepository,
	bookingRepo domain.BookingRepository,
) *Application {
	return &Application{
		config:        cfg,
		logger:        logger,
		db:            db,
		redis:         redisClient,
		validator:     validator,
		movieRepo:     movieRepo,
		theaterRepo:   theaterRepo,
		screeningRepo: screeningRepo,
		bookingRepo:   bookingRepo,
		allocator:     booking.NewAllocator(bookingRepo, screeningRepo),
		canceller:     booking.NewCanceller(bookingRepo),
	}
}

func (app *Application) Close() {
	app.db.Close()

	if err := app.redis.Close(); err != nil {
		app.logger.Error("failed to close redis client", "error", err)
	}
}

func NewRedisClient(cfg Config) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, err
	}

	opts.MaxIdleConns = cfg.Redis.MaxIdleConns
	opts.MaxActiveConns = cfg.Redis.MaxOpenConns
	opts.ConnMaxIdleTime = cfg.Redis.MaxIdleTime

	rdb := redis.NewClient(opts)

	if err := redisotel.InstrumentTracing(rdb); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = rdb.Ping(ctx).Err()
	if err != nil {
		return nil, err
	}

	return rdb, nil
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

func (app *Application) Serve() error {
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
