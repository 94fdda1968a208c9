package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/seatbook/api/internal/domain"
)

type PostgresMovieRepository struct {
	db *pgxpool.Pool
}

func NewPostgresMovieRepository(db *pgxpool.Pool) *PostgresMovieRepository {
	return &PostgresMovieRepository{
		db: db,
	}
}

func (p *PostgresMovieRepository) GetAll(ctx context.Context) ([]domain.Movie, error) {
	query := `
		SELECT id, title, description, genre, duration_minutes, poster_url, created_at
		FROM movies
		ORDER BY title
	`

	rows, err := p.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movies := make([]domain.Movie, 0)

	for rows.Next() {
		var movie domain.Movie

		err := rows.Scan(
			&movie.ID,
			&movie.Title,
			&movie.Description,
			&movie.Genre,
			&movie.Duration,
			&movie.PosterUrl,
			&movie.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		movies = append(movies, movie)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return movies, nil
}

func (p *PostgresMovieRepository) GetById(ctx context.Context, id uuid.UUID) (*domain.Movie, error) {
	query := `
		SELECT id, title, description, genre, duration_minutes, poster_url, created_at
		FROM movies
		WHERE id = $1
	`

	var movie domain.Movie

	err := p.db.QueryRow(ctx, query, id).Scan(
		&movie.ID,
		&movie.Title,
		&movie.Description,
		&movie.Genre,
		&movie.Duration,
		&movie.PosterUrl,
		&movie.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	showtimes, err := p.retrieveShowtimes(ctx, id)
	if err != nil {
		return nil, err
	}

	movie.Showtimes = showtimes

	return &movie, nil
}

func (p *PostgresMovieRepository) retrieveShowtimes(ctx context.Context, movieID uuid.UUID) ([]domain.MovieShowtime, error) {
	query := `
		SELECT theater_id, screen_name, showtime
		FROM screenings
		WHERE movie_id = $1
		ORDER BY showtime
	`

	rows, err := p.db.Query(ctx, query, movieID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	showtimes := make([]domain.MovieShowtime, 0)

	for rows.Next() {
		var showtime domain.MovieShowtime

		err := rows.Scan(&showtime.TheaterID, &showtime.Screen, &showtime.StartTime)
		if err != nil {
			return nil, err
		}

		showtimes = append(showtimes, showtime)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return showtimes, nil
}
