package app

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/seatbook/api/internal/domain"
)

type TheaterResponse struct {
	Id      uuid.UUID        `json:"id"`
	Name    string           `json:"name"`
	Address string           `json:"address,omitempty"`
	Screens []ScreenResponse `json:"screens"`
}

type ScreenResponse struct {
	Name        string `json:"name"`
	Rows        int    `json:"rows"`
	SeatsPerRow int    `json:"seatsPerRow"`
}

func (app *Application) GetTheaters(w http.ResponseWriter, r *http.Request) {
	theaters, err := app.theaterRepo.GetAll(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := make([]TheaterResponse, len(theaters))
	for i, theater := range theaters {
		resp[i] = toTheaterResponse(theater)
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toTheaterResponse(theater domain.Theater) TheaterResponse {
	resp := TheaterResponse{
		Id:      theater.ID,
		Name:    theater.Name,
		Address: theater.Address,
		Screens: make([]ScreenResponse, 0, len(theater.Screens)),
	}

	for _, screen := range theater.Screens {
		resp.Screens = append(resp.Screens, ScreenResponse{
			Name:        screen.Name,
			Rows:        screen.Rows,
			SeatsPerRow: screen.SeatsPerRow,
		})
	}

	return resp
}
