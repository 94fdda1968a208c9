package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Movie struct {
	ID          uuid.UUID
	Title       string
	Description string
	Genre       string
	Duration    int
	PosterUrl   string
	CreatedAt   time.Time
	Showtimes   []MovieShowtime
}

// MovieShowtime is one scheduled performance of the movie, as served to
// clients building a seat selection. Together with the movie ID it forms
// a full screening key.
type MovieShowtime struct {
	TheaterID uuid.UUID
	Screen    string
	StartTime time.Time
}

type MovieRepository interface {
	GetAll(ctx context.Context) ([]Movie, error)
	GetById(ctx context.Context, id uuid.UUID) (*Movie, error)
}
