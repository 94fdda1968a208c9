package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/seatbook/api/internal/domain"
)

// Seat maps are refetched on every client refresh, so live occupancy is
// served through a short-lived cache. Commits and cancellations drop the
// cached entry, the TTL only bounds staleness across processes.
const bookedSeatsCacheTTL = 5 * time.Second

type BookedSeatsResponse struct {
	BookedSeats []string `json:"bookedSeats"`
}

func (app *Application) GetBookedSeatsHandler(w http.ResponseWriter, r *http.Request) {
	key, err := readScreeningKeyParams(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if seats, ok := app.cachedBookedSeats(r.Context(), key); ok {
		err = app.writeJSON(w, http.StatusOK, BookedSeatsResponse{BookedSeats: seats}, nil)
		if err != nil {
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	seats, err := app.bookingRepo.GetBookedSeats(r.Context(), key)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.storeBookedSeatsCache(r.Context(), key, seats)

	err = app.writeJSON(w, http.StatusOK, BookedSeatsResponse{BookedSeats: seats}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func readScreeningKeyParams(r *http.Request) (domain.ScreeningKey, error) {
	query := r.URL.Query()

	missing := make([]string, 0, 4)
	for _, param := range []string{"movieId", "theaterId", "screen", "showtime"} {
		if query.Get(param) == "" {
			missing = append(missing, param)
		}
	}

	if len(missing) > 0 {
		return domain.ScreeningKey{}, fmt.Errorf("missing required query parameters: %s", strings.Join(missing, ", "))
	}

	movieID, err := uuid.Parse(query.Get("movieId"))
	if err != nil {
		return domain.ScreeningKey{}, errors.New("invalid movieId parameter")
	}

	theaterID, err := uuid.Parse(query.Get("theaterId"))
	if err != nil {
		return domain.ScreeningKey{}, errors.New("invalid theaterId parameter")
	}

	showtime, err := time.Parse(time.RFC3339, query.Get("showtime"))
	if err != nil {
		return domain.ScreeningKey{}, errors.New("showtime must be an RFC 3339 timestamp")
	}

	key := domain.ScreeningKey{
		MovieID:   movieID,
		TheaterID: theaterID,
		Screen:    query.Get("screen"),
		Showtime:  showtime,
	}

	return key.Normalize(), nil
}

func bookedSeatsCacheKey(key domain.ScreeningKey) string {
	return "booked_seats:" + key.String()
}

func (app *Application) cachedBookedSeats(ctx context.Context, key domain.ScreeningKey) ([]string, bool) {
	if app.redis == nil {
		return nil, false
	}

	payload, err := app.redis.Get(ctx, bookedSeatsCacheKey(key)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			app.logger.Warn("booked seats cache read failed", "error", err)
		}
		return nil, false
	}

	var seats []string
	if err := json.Unmarshal([]byte(payload), &seats); err != nil {
		return nil, false
	}

	return seats, true
}

func (app *Application) storeBookedSeatsCache(ctx context.Context, key domain.ScreeningKey, seats []string) {
	if app.redis == nil {
		return
	}

	payload, err := json.Marshal(seats)
	if err != nil {
		return
	}

	err = app.redis.Set(ctx, bookedSeatsCacheKey(key), payload, bookedSeatsCacheTTL).Err()
	if err != nil {
		app.logger.Warn("booked seats cache write failed", "error", err)
	}
}

// invalidateBookedSeatsCache drops the cached occupancy after a commit or
// cancellation. A cache failure is logged, never surfaced: the database is
// the source of truth and the TTL bounds the staleness.
func (app *Application) invalidateBookedSeatsCache(ctx context.Context, key domain.ScreeningKey) {
	if app.redis == nil {
		return
	}

	err := app.redis.Del(ctx, bookedSeatsCacheKey(key)).Err()
	if err != nil {
		app.logger.Warn("booked seats cache invalidation failed", "error", err)
	}
}
