package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	appvalidator "github.com/seatbook/api/internal/validator"
)

const (
	ErrInternalServer     = "The server encountered a problem and could not process your request"
	ErrNotFound           = "The requested resource not found"
	ErrUnauthorizedAccess = "You must be authenticated to access this resource"
	ErrForbiddenAccess    = "You do not have permission to perform this action"
)

type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	ValidationErrors []ValidationError `json:"validationErrors"`
}

type SeatsUnavailableResponse struct {
	Message          string   `json:"message"`
	ConflictingSeats []string `json:"conflictingSeats"`
}

func (app *Application) logError(r *http.Request, err error) {
	var (
		method = r.Method
		uri    = r.URL.RequestURI()
	)

	app.logger.Error(err.Error(), "method", method, "uri", uri)
}

// The errorResponse() method is a generic helper for sending JSON-formatted error
// messages to the client with a given status code.
func (app *Application) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	resp := ErrorResponse{
		Message:   message,
		RequestId: middleware.GetReqID(r.Context()),
		Timestamp: time.Now(),
	}

	err := app.writeJSON(w, status, resp, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(500)
	}
}

func (app *Application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)

	app.errorResponse(w, r, http.StatusInternalServerError, ErrInternalServer)
}

func (app *Application) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusNotFound, ErrNotFound)
}

func (app *Application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (app *Application) unauthorizedAccessResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusUnauthorized, ErrUnauthorizedAccess)
}

func (app *Application) forbiddenResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusForbidden, ErrForbiddenAccess)
}

func (app *Application) failedValidationResponse(w http.ResponseWriter, r *http.Request, err error) {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		app.serverErrorResponse(w, r, err)
		return
	}

	validationErrors := make([]ValidationError, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		validationErrors = append(validationErrors, ValidationError{
			Field: fieldErr.Field(),
			Issue: appvalidator.ValidationMessage(fieldErr),
		})
	}

	resp := ValidationErrorResponse{
		Message:          "The request contains invalid fields",
		ValidationErrors: validationErrors,
	}

	writeErr := app.writeJSON(w, http.StatusUnprocessableEntity, resp, nil)
	if writeErr != nil {
		app.logError(r, writeErr)
		w.WriteHeader(500)
	}
}

func (app *Application) seatsUnavailableResponse(w http.ResponseWriter, r *http.Request, seats []string) {
	if seats == nil {
		seats = []string{}
	}

	resp := SeatsUnavailableResponse{
		Message:          "Some of the selected seats are already booked for this showtime",
		ConflictingSeats: seats,
	}

	err := app.writeJSON(w, http.StatusConflict, resp, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(500)
	}
}
