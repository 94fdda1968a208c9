package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusLive      = BookingStatus("live")
	BookingStatusCancelled = BookingStatus("cancelled")
)

// ScreeningKey is the composite identity of one scheduled performance:
// a movie on a specific screen of a theater at an exact start time.
// Showtimes are compared exactly, with no tolerance window, so they are
// normalized to UTC before storage and comparison.
type ScreeningKey struct {
	MovieID   uuid.UUID
	TheaterID uuid.UUID
	Screen    string
	Showtime  time.Time
}

// Normalize returns the key with its showtime converted to UTC and
// truncated to microseconds, matching timestamptz precision so that a key
// round-tripped through the database still compares equal.
func (k ScreeningKey) Normalize() ScreeningKey {
	k.Showtime = k.Showtime.UTC().Truncate(time.Microsecond)
	return k
}

// String renders the canonical form of the key. It is used as the lock
// table key for per-screening serialization of bookings.
func (k ScreeningKey) String() string {
	return fmt.Sprintf("%s|%s|%s|%s", k.MovieID, k.TheaterID, k.Screen, k.Showtime.UTC().Format(time.RFC3339Nano))
}

// Booking is a committed claim on one or more seats of a screening by one
// user. Once committed it is immutable except for a terminal cancellation
// marking; cancelled bookings are kept for audit, only their seats return
// to availability.
type Booking struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Screening   ScreeningKey
	Seats       []string
	Status      BookingStatus
	CreatedAt   time.Time
	CancelledAt *time.Time
}

// BookingSummary is the owner- and admin-facing list representation,
// joined with catalog reference data.
type BookingSummary struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	MovieTitle  string
	TheaterName string
	Screen      string
	Showtime    time.Time
	Seats       []string
	Status      BookingStatus
	CreatedAt   time.Time
}

// BookingRepository is the reservation ledger: the durable record of
// committed seat assignments per screening. It owns the invariant that no
// two live bookings for the same screening share a seat.
type BookingRepository interface {
	// FindConflicts returns the subset of seats already held by live
	// bookings for the screening.
	FindConflicts(ctx context.Context, key ScreeningKey, seats []string) ([]string, error)

	// Create commits a new live booking. It fails with a
	// *SeatsUnavailableError if any requested seat is occupied at commit
	// time, which defends the check-then-act gap against writers outside
	// the allocator's lock scope.
	Create(ctx context.Context, booking *Booking) error

	GetById(ctx context.Context, id uuid.UUID) (*Booking, error)

	// Void marks a booking cancelled and releases its seats. Voiding an
	// already-cancelled booking is a no-op, not an error.
	Void(ctx context.Context, id uuid.UUID) error

	// GetBookedSeats returns the live occupancy of a screening: the union
	// of seat sets across committed, non-cancelled bookings.
	GetBookedSeats(ctx context.Context, key ScreeningKey) ([]string, error)

	GetBookingsByUserId(ctx context.Context, userID uuid.UUID, pagination Pagination) ([]BookingSummary, *Metadata, error)
	GetAllBookings(ctx context.Context, pagination Pagination) ([]BookingSummary, *Metadata, error)
}
