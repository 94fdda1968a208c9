package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/seatbook/api/internal/booking"
	"github.com/seatbook/api/internal/domain"
	"github.com/seatbook/api/internal/validator"
)

const testJWTSecret = "test-secret"

func newTestApplication(opts ...func(*Application)) *Application {
	app := &Application{
		config: Config{
			Env:       "test",
			JWTSecret: testJWTSecret,
		},
		validator: validator.NewValidator(),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

func withBookingCore(bookingRepo domain.BookingRepository, screeningRepo domain.ScreeningRepository) func(*Application) {
	return func(app *Application) {
		app.bookingRepo = bookingRepo
		app.screeningRepo = screeningRepo
		app.allocator = booking.NewAllocator(bookingRepo, screeningRepo)
		app.canceller = booking.NewCanceller(bookingRepo)
	}
}

func executeRequest(t *testing.T, method, url string, body any) (*httptest.ResponseRecorder, *http.Request) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(jsonData)
	}

	r := httptest.NewRequest(method, url, reader)
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	return w, r
}

func asIdentity(r *http.Request, identity domain.Identity) *http.Request {
	return contextSetIdentity(r, identity)
}

func withURLParam(r *http.Request, name, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(name, value)

	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func signTestToken(t *testing.T, secret string, userID uuid.UUID, isAdmin bool) string {
	t.Helper()

	claims := tokenClaims{
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatal(err)
	}

	return token
}

func decodeResponse[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var resp T
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	return resp
}
