package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/riandyrn/otelchi"
)

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(app.recoverPanic)
	r.Use(otelchi.Middleware("seatbook-api", otelchi.WithChiRoutes(r)))
	r.Use(app.addRequestLogger)
	r.Use(app.authenticate)

	r.Get("/health", app.GetHealth)

	r.Get("/movies", app.GetMovies)
	r.Get("/movies/{movieId}", app.GetMovieById)
	r.Get("/theaters", app.GetTheaters)

	r.Route("/bookings", func(r chi.Router) {
		r.Get("/booked-seats", app.GetBookedSeatsHandler)

		r.With(app.requireAuthentication).Post("/", app.CreateBookingHandler)
		r.With(app.requireAuthentication).Get("/my", app.GetBookingsOfUserHandler)
		r.With(app.requireAuthentication).Delete("/{bookingId}", app.DeleteBookingHandler)

		r.With(app.requireAuthentication, app.requireAdmin).Get("/", app.GetAllBookingsHandler)
	})

	return r
}
