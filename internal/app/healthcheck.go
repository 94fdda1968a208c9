package app

import "net/http"

type HealthResponse struct {
	Status      string `json:"status"`
	Environment string `json:"environment"`
	Version     string `json:"version"`
}

func (app *Application) GetHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:      "available",
		Environment: app.config.Env,
		Version:     version,
	}

	err := app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
