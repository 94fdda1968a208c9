package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrRecordNotFound    = errors.New("record not found")
	ErrScreeningNotFound = errors.New("screening not found")
	ErrForbidden         = errors.New("operation not permitted")
	ErrEmptySeatSet      = errors.New("seat set must not be empty")
)

// SeatsUnavailableError reports a booking conflict together with the exact
// seats that are already taken, so the caller can adjust their selection
// and resubmit. Seat choice is a user decision, so the server never retries
// a conflicted booking on the caller's behalf.
type SeatsUnavailableError struct {
	Seats []string
}

func (e *SeatsUnavailableError) Error() string {
	if len(e.Seats) == 0 {
		return "some of the selected seats are already booked"
	}

	return fmt.Sprintf("seats already booked: %s", strings.Join(e.Seats, ", "))
}
