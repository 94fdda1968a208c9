package integration_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

var (
	testMovieID   = uuid.MustParse("6f1a1a80-6cbb-4d43-9a65-0f1c5f1e9b01")
	testTheaterID = uuid.MustParse("b4c9a3d2-2a07-4d7e-9a11-3d2f0c8e7a02")
	testShowtime  = time.Date(2026, 3, 14, 19, 30, 0, 0, time.UTC)
)

const testScreen = "Screen 1"

var keysToIgnore = map[string]struct{}{
	"timestamp": {},
	"requestId": {},
	"createdAt": {},
	"id":        {},
}

func prepareRequest(method, path string, body io.Reader, headers map[string]string) (*http.Request, error) {
	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req, nil
}

func compareResponse(t testing.TB, body io.Reader, expectedResponse string) {
	var actual map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	cleanMap(actual)

	var expected map[string]any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	// ignore indeterministic fields while comparing
	opts := cmpopts.IgnoreMapEntries(func(k string, _ any) bool {
		_, ok := keysToIgnore[k]
		return ok
	})

	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func cleanMap(m map[string]any) {
	for k := range m {
		if _, ok := keysToIgnore[k]; ok {
			delete(m, k)
			continue
		}
		if nested, ok := m[k].(map[string]any); ok {
			cleanMap(nested)
		}
	}
}

func bearerToken(t testing.TB, userID uuid.UUID, isAdmin bool) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub":     userID.String(),
		"isAdmin": isAdmin,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(jwtSecret))
	require.NoError(t, err)

	return "Bearer " + token
}

// seedCatalog inserts the fixed movie, theater, screen and screening every
// booking scenario runs against. Idempotent, safe to call per test.
func seedCatalog(t testing.TB, db *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	statements := []struct {
		sql  string
		args []any
	}{
		{
			sql: `INSERT INTO movies (id, title, description, genre, duration_minutes)
				  VALUES ($1, 'The Matrix', 'A hacker learns the truth', 'Sci-Fi', 136)
				  ON CONFLICT (id) DO NOTHING`,
			args: []any{testMovieID},
		},
		{
			sql: `INSERT INTO theaters (id, name, address)
				  VALUES ($1, 'Cinema City', '1 Main Street')
				  ON CONFLICT (id) DO NOTHING`,
			args: []any{testTheaterID},
		},
		{
			sql: `INSERT INTO screens (theater_id, name, seat_rows, seats_per_row)
				  VALUES ($1, $2, 10, 12)
				  ON CONFLICT (theater_id, name) DO NOTHING`,
			args: []any{testTheaterID, testScreen},
		},
		{
			sql: `INSERT INTO screenings (movie_id, theater_id, screen_name, showtime)
				  VALUES ($1, $2, $3, $4)
				  ON CONFLICT (movie_id, theater_id, screen_name, showtime) DO NOTHING`,
			args: []any{testMovieID, testTheaterID, testScreen, testShowtime},
		},
	}

	for _, stmt := range statements {
		_, err := db.Exec(ctx, stmt.sql, stmt.args...)
		require.NoError(t, err)
	}
}

// resetBookings clears all booking state so scenarios start from an empty
// seat map. The catalog rows stay.
func resetBookings(t testing.TB, db *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	_, err := db.Exec(ctx, "TRUNCATE booking_seats, bookings")
	require.NoError(t, err)
}

func liveSeats(t testing.TB, db *pgxpool.Pool) []string {
	t.Helper()

	rows, err := db.Query(context.Background(),
		`SELECT seat_label FROM booking_seats
		 WHERE movie_id = $1 AND theater_id = $2 AND screen_name = $3 AND showtime = $4
		 ORDER BY seat_label`,
		testMovieID, testTheaterID, testScreen, testShowtime)
	require.NoError(t, err)
	defer rows.Close()

	seats := []string{}
	for rows.Next() {
		var seat string
		require.NoError(t, rows.Scan(&seat))
		seats = append(seats, seat)
	}
	require.NoError(t, rows.Err())

	return seats
}
