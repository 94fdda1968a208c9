package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/seatbook/api/internal/domain"
)

// PostgresScreeningRepository resolves screening keys against the
// screenings reference table. Showtime matching is exact.
type PostgresScreeningRepository struct {
	db *pgxpool.Pool
}

func NewPostgresScreeningRepository(db *pgxpool.Pool) *PostgresScreeningRepository {
	return &PostgresScreeningRepository{
		db: db,
	}
}

func (p *PostgresScreeningRepository) Exists(ctx context.Context, key domain.ScreeningKey) (bool, error) {
	key = key.Normalize()

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM screenings
			WHERE movie_id = $1 AND theater_id = $2 AND screen_name = $3 AND showtime = $4
		)
	`

	var exists bool

	err := p.db.QueryRow(ctx, query, key.MovieID, key.TheaterID, key.Screen, key.Showtime).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}
