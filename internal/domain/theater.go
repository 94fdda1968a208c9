package domain

import (
	"context"

	"github.com/google/uuid"
)

type Theater struct {
	ID      uuid.UUID
	Name    string
	Address string
	Screens []Screen
}

// Screen describes one auditorium's seating geometry. Seat identifiers are
// derived from it by clients (row letter + index); the booking core treats
// them as opaque tokens.
type Screen struct {
	Name        string
	Rows        int
	SeatsPerRow int
}

type TheaterRepository interface {
	GetAll(ctx context.Context) ([]Theater, error)
}
