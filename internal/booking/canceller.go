package booking

import (
	"context"

	"github.com/google/uuid"
	"github.com/seatbook/api/internal/domain"
)

// Canceller releases committed bookings back into availability. Only the
// booking's owner or an admin may cancel; who the requester is comes from
// the external auth collaborator.
type Canceller struct {
	bookings domain.BookingRepository
}

func NewCanceller(bookings domain.BookingRepository) *Canceller {
	return &Canceller{
		bookings: bookings,
	}
}

// Cancel voids the booking and returns it. Cancelling an already-cancelled
// booking succeeds, so a cancel is always safe to retry.
func (c *Canceller) Cancel(ctx context.Context, id uuid.UUID, requester domain.Identity) (*domain.Booking, error) {
	booking, err := c.bookings.GetById(ctx, id)
	if err != nil {
		return nil, err
	}

	if booking.UserID != requester.UserID && !requester.IsAdmin {
		return nil, domain.ErrForbidden
	}

	err = c.bookings.Void(ctx, booking.ID)
	if err != nil {
		return nil, err
	}

	return booking, nil
}
