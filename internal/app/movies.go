package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/seatbook/api/internal/domain"
)

type MovieResponse struct {
	Id          uuid.UUID          `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Genre       string             `json:"genre,omitempty"`
	Duration    int                `json:"duration,omitempty"`
	PosterUrl   string             `json:"posterUrl,omitempty"`
	Showtimes   []ShowtimeResponse `json:"showtimes,omitempty"`
}

type ShowtimeResponse struct {
	TheaterId uuid.UUID `json:"theaterId"`
	Screen    string    `json:"screen"`
	StartTime time.Time `json:"startTime"`
}

func (app *Application) GetMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := app.movieRepo.GetAll(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := make([]MovieResponse, len(movies))
	for i, movie := range movies {
		resp[i] = toMovieResponse(movie)
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetMovieById(w http.ResponseWriter, r *http.Request) {
	movieID, err := app.readUUIDParam(r, "movieId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	movie, err := app.movieRepo.GetById(r.Context(), movieID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toMovieResponse(*movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toMovieResponse(movie domain.Movie) MovieResponse {
	resp := MovieResponse{
		Id:          movie.ID,
		Title:       movie.Title,
		Description: movie.Description,
		Genre:       movie.Genre,
		Duration:    movie.Duration,
		PosterUrl:   movie.PosterUrl,
	}

	for _, showtime := range movie.Showtimes {
		resp.Showtimes = append(resp.Showtimes, ShowtimeResponse{
			TheaterId: showtime.TheaterID,
			Screen:    showtime.Screen,
			StartTime: showtime.StartTime,
		})
	}

	return resp
}
