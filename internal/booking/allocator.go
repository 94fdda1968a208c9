package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/seatbook/api/internal/domain"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Allocator is the transactional decision engine of the booking core.
// For each screening it serializes the conflict-check-then-commit sequence
// on an in-process keyed mutex, which yields precise conflict reporting;
// the ledger's storage constraint remains the final double-booking guard
// against writers outside this process.
type Allocator struct {
	bookings   domain.BookingRepository
	screenings domain.ScreeningRepository
	locks      *keyedMutex

	commitCount   metric.Int64Counter
	conflictCount metric.Int64Counter
}

func NewAllocator(bookings domain.BookingRepository, screenings domain.ScreeningRepository) *Allocator {
	meter := otel.Meter("github.com/seatbook/api/internal/booking")

	commitCount, _ := meter.Int64Counter("bookings.committed")
	conflictCount, _ := meter.Int64Counter("bookings.conflicted")

	return &Allocator{
		bookings:      bookings,
		screenings:    screenings,
		locks:         newKeyedMutex(),
		commitCount:   commitCount,
		conflictCount: conflictCount,
	}
}

// Book atomically reserves the requested seats for the screening, or
// rejects. Duplicate seat identifiers within the request are collapsed
// first; a request that is empty after deduplication is invalid input.
// An unresolvable screening key rejects the request (fail closed).
func (a *Allocator) Book(
	ctx context.Context,
	key domain.ScreeningKey,
	userID uuid.UUID,
	seats []string) (*domain.Booking, error) {

	seats = dedupeSeats(seats)
	if len(seats) == 0 {
		return nil, domain.ErrEmptySeatSet
	}

	key = key.Normalize()

	exists, err := a.screenings.Exists(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("resolving screening: %w", err)
	}
	if !exists {
		return nil, domain.ErrScreeningNotFound
	}

	lockKey := key.String()
	a.locks.Lock(lockKey)
	defer a.locks.Unlock(lockKey)

	conflicts, err := a.bookings.FindConflicts(ctx, key, seats)
	if err != nil {
		return nil, err
	}

	if len(conflicts) > 0 {
		a.conflictCount.Add(ctx, 1)
		return nil, &domain.SeatsUnavailableError{Seats: conflicts}
	}

	booking := &domain.Booking{
		ID:        uuid.New(),
		UserID:    userID,
		Screening: key,
		Seats:     seats,
		Status:    domain.BookingStatusLive,
		CreatedAt: time.Now().UTC(),
	}

	err = a.bookings.Create(ctx, booking)
	if err != nil {
		var unavailable *domain.SeatsUnavailableError
		if errors.As(err, &unavailable) {
			a.conflictCount.Add(ctx, 1)
		}

		return nil, err
	}

	a.commitCount.Add(ctx, 1)

	return booking, nil
}

func dedupeSeats(seats []string) []string {
	seen := make(map[string]bool, len(seats))
	deduped := make([]string, 0, len(seats))

	for _, seat := range seats {
		if seat == "" || seen[seat] {
			continue
		}

		seen[seat] = true
		deduped = append(deduped, seat)
	}

	return deduped
}
