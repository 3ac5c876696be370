package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/risinglion/cinema-booking-api/api"
	"github.com/risinglion/cinema-booking-api/internal/domain"
)

func (app *Application) GetScreeningSeatMap(w http.ResponseWriter, r *http.Request) {
	screeningId, err := app.readIDParam(r, "screeningId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	seatStatuses, err := app.bookings.SeatMap(r.Context(), screeningId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	resp := toSeatMapResponse(screeningId, seatStatuses)

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateBooking(w http.ResponseWriter, r *http.Request) {
	userId := app.contextGetUserId(r)

	var input api.BookingCreateRequest

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

	booking, err := app.bookings.Book(r.Context(), userId, input.ScreeningID, input.SeatIDs)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSeatTaken):
			app.conflictResponse(w, r, domain.ErrSeatTaken)
		case errors.Is(err, domain.ErrSeatNotInTheater):
			app.badRequestResponse(w, r, domain.ErrSeatNotInTheater)
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, domain.ErrInvalidInput):
			app.badRequestResponse(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	seats, err := app.seatRepo.GetByIds(r.Context(), input.SeatIDs)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	go app.sendBookingConfirmation(booking, seats)

	resp := toBookingResponse(*booking, seats)

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) ListCurrentUserBookings(w http.ResponseWriter, r *http.Request) {
	userId := app.contextGetUserId(r)

	bookings, err := app.bookingRepo.GetByUser(r.Context(), userId)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toBookingResponses(bookings), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) ListScreeningBookings(w http.ResponseWriter, r *http.Request) {
	screeningId, err := app.readIDParam(r, "screeningId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	bookings, err := app.bookingRepo.GetByScreening(r.Context(), screeningId)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toBookingResponses(bookings), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) sendBookingConfirmation(booking *domain.Booking, seats []domain.Seat) {
	defer func() {
		if err := recover(); err != nil {
			app.logger.Error("panic occurred during sending booking confirmation mail", "panic", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := app.userRepo.GetById(ctx, booking.UserID)
	if err != nil {
		app.logger.Error("failed to load user for booking confirmation", "error", err)
		return
	}

	screening, err := app.screeningRepo.GetById(ctx, booking.ScreeningID)
	if err != nil {
		app.logger.Error("failed to load screening for booking confirmation", "error", err)
		return
	}

	movie, err := app.movieRepo.GetById(ctx, screening.MovieID)
	if err != nil {
		app.logger.Error("failed to load movie for booking confirmation", "error", err)
		return
	}

	seatLabels := make([]string, len(seats))
	for i, seat := range seats {
		seatLabels[i] = fmt.Sprintf("%s%d", seat.Row, seat.Number)
	}

	data := map[string]any{
		"Username":   user.Username,
		"BookingID":  booking.ID,
		"MovieTitle": movie.Title,
		"Datetime":   screening.Datetime.Format("Mon, 02 Jan 2006 15:04"),
		"Seats":      strings.Join(seatLabels, ", "),
		"Total":      booking.TotalPrice.StringFixed(2),
	}

	err = app.mailer.Send(user.Email, "booking_confirmation.tmpl", data)
	if err != nil {
		app.logger.Error("failed to send booking confirmation email", "error", err)
	}
}

func toSeatMapResponse(screeningId int, seatStatuses []domain.SeatStatus) api.SeatMapResponse {
	resp := api.SeatMapResponse{
		ScreeningID: screeningId,
		Rows:        make([]api.SeatMapRow, 0),
	}

	for _, status := range seatStatuses {
		seat := api.SeatResponse{
			ID:     status.ID,
			Row:    status.Row,
			Number: status.Number,
			Taken:  status.Taken,
		}

		if n := len(resp.Rows); n == 0 || resp.Rows[n-1].Row != status.Row {
			resp.Rows = append(resp.Rows, api.SeatMapRow{Row: status.Row})
		}

		last := len(resp.Rows) - 1
		resp.Rows[last].Seats = append(resp.Rows[last].Seats, seat)
	}

	return resp
}

func toBookingResponses(bookings []domain.Booking) []api.BookingResponse {
	resp := make([]api.BookingResponse, len(bookings))
	for i, booking := range bookings {
		resp[i] = toBookingResponse(booking, nil)
	}

	return resp
}

// toBookingResponse enriches tickets with seat positions when the seats are
// available to the caller.
func toBookingResponse(booking domain.Booking, seats []domain.Seat) api.BookingResponse {
	seatsById := make(map[int]domain.Seat, len(seats))
	for _, seat := range seats {
		seatsById[seat.ID] = seat
	}

	tickets := make([]api.TicketResponse, len(booking.Tickets))
	for i, ticket := range booking.Tickets {
		tickets[i] = api.TicketResponse{
			ID:     ticket.ID,
			SeatID: ticket.SeatID,
		}

		if seat, ok := seatsById[ticket.SeatID]; ok {
			tickets[i].Row = seat.Row
			tickets[i].Number = seat.Number
		}
	}

	return api.BookingResponse{
		ID:          booking.ID,
		ScreeningID: booking.ScreeningID,
		UserID:      booking.UserID,
		TotalPrice:  booking.TotalPrice,
		Tickets:     tickets,
		CreatedAt:   booking.CreatedAt,
	}
}
