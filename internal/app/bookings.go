package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/seatbook/api/internal/domain"
)

type CreateBookingRequest struct {
	MovieId   string    `json:"movieId" validate:"required,uuid"`
	TheaterId string    `json:"theaterId" validate:"required,uuid"`
	Screen    string    `json:"screen" validate:"required"`
	Showtime  time.Time `json:"showtime" validate:"required"`
	Seats     []string  `json:"seats" validate:"required,min=1"`
}

type BookingResponse struct {
	Id        uuid.UUID `json:"id"`
	MovieId   uuid.UUID `json:"movieId"`
	TheaterId uuid.UUID `json:"theaterId"`
	Screen    string    `json:"screen"`
	Showtime  time.Time `json:"showtime"`
	Seats     []string  `json:"seats"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type BookingSummaryResponse struct {
	Id          uuid.UUID `json:"id"`
	UserId      uuid.UUID `json:"userId"`
	MovieTitle  string    `json:"movieTitle"`
	TheaterName string    `json:"theaterName"`
	Screen      string    `json:"screen"`
	Showtime    time.Time `json:"showtime"`
	Seats       []string  `json:"seats"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

type BookingsResponse struct {
	Bookings []BookingSummaryResponse `json:"bookings"`
	Metadata MetadataResponse         `json:"metadata"`
}

type MetadataResponse struct {
	CurrentPage  int `json:"currentPage"`
	FirstPage    int `json:"firstPage"`
	LastPage     int `json:"lastPage"`
	PageSize     int `json:"pageSize"`
	TotalRecords int `json:"totalRecords"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func (app *Application) CreateBookingHandler(w http.ResponseWriter, r *http.Request) {
	var input CreateBookingRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	movieID, err := uuid.Parse(input.MovieId)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	theaterID, err := uuid.Parse(input.TheaterId)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	key := domain.ScreeningKey{
		MovieID:   movieID,
		TheaterID: theaterID,
		Screen:    input.Screen,
		Showtime:  input.Showtime,
	}

	identity := app.contextGetIdentity(r)
	logger := app.contextGetLogger(r)

	booked, err := app.allocator.Book(r.Context(), key, identity.UserID, input.Seats)
	if err != nil {
		var unavailable *domain.SeatsUnavailableError

		switch {
		case errors.Is(err, domain.ErrEmptySeatSet):
			app.badRequestResponse(w, r, err)
		case errors.Is(err, domain.ErrScreeningNotFound):
			app.errorResponse(w, r, http.StatusNotFound, "The requested screening does not exist")
		case errors.As(err, &unavailable):
			logger.Info("booking rejected on seat conflict", "seats", unavailable.Seats)
			app.seatsUnavailableResponse(w, r, unavailable.Seats)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	app.invalidateBookedSeatsCache(r.Context(), booked.Screening)

	logger.Info("booking committed", "booking_id", booked.ID, "seats", booked.Seats)

	err = app.writeJSON(w, http.StatusCreated, toBookingResponse(booked), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetBookingsOfUserHandler(w http.ResponseWriter, r *http.Request) {
	identity := app.contextGetIdentity(r)
	pagination := app.readPagination(r)

	bookings, metadata, err := app.bookingRepo.GetBookingsByUserId(r.Context(), identity.UserID, pagination)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toBookingsResponse(bookings, metadata), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetAllBookingsHandler(w http.ResponseWriter, r *http.Request) {
	pagination := app.readPagination(r)

	bookings, metadata, err := app.bookingRepo.GetAllBookings(r.Context(), pagination)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toBookingsResponse(bookings, metadata), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteBookingHandler(w http.ResponseWriter, r *http.Request) {
	bookingID, err := app.readUUIDParam(r, "bookingId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	identity := app.contextGetIdentity(r)

	cancelled, err := app.canceller.Cancel(r.Context(), bookingID, identity)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, domain.ErrForbidden):
			app.forbiddenResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	app.invalidateBookedSeatsCache(r.Context(), cancelled.Screening)

	app.contextGetLogger(r).Info("booking cancelled", "booking_id", cancelled.ID)

	err = app.writeJSON(w, http.StatusOK, MessageResponse{Message: "Booking cancelled successfully"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toBookingResponse(booking *domain.Booking) BookingResponse {
	return BookingResponse{
		Id:        booking.ID,
		MovieId:   booking.Screening.MovieID,
		TheaterId: booking.Screening.TheaterID,
		Screen:    booking.Screening.Screen,
		Showtime:  booking.Screening.Showtime,
		Seats:     booking.Seats,
		Status:    string(booking.Status),
		CreatedAt: booking.CreatedAt,
	}
}

func toBookingsResponse(bookings []domain.BookingSummary, metadata *domain.Metadata) BookingsResponse {
	summaries := make([]BookingSummaryResponse, len(bookings))

	for i, v := range bookings {
		summaries[i] = BookingSummaryResponse{
			Id:          v.ID,
			UserId:      v.UserID,
			MovieTitle:  v.MovieTitle,
			TheaterName: v.TheaterName,
			Screen:      v.Screen,
			Showtime:    v.Showtime,
			Seats:       v.Seats,
			Status:      string(v.Status),
			CreatedAt:   v.CreatedAt,
		}
	}

	return BookingsResponse{
		Bookings: summaries,
		Metadata: MetadataResponse{
			CurrentPage:  metadata.CurrentPage,
			FirstPage:    metadata.FirstPage,
			LastPage:     metadata.LastPage,
			PageSize:     metadata.PageSize,
			TotalRecords: metadata.TotalRecords,
		},
	}
}
