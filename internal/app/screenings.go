package app

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/risinglion/cinema-booking-api/api"
	"github.com/risinglion/cinema-booking-api/internal/domain"
)

const dateLayout = "2006-01-02"

// DefaultScheduleWindow is the range of upcoming days listed when the
// caller does not narrow the schedule with from/to parameters.
const DefaultScheduleWindow = 7 * 24 * time.Hour

func (app *Application) ListScreenings(w http.ResponseWriter, r *http.Request) {
	start, end, err := app.readDateRange(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	screenings, err := app.screeningRepo.GetByDateRange(r.Context(), start, end)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toScreeningResponses(screenings), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) ListMovieScreenings(w http.ResponseWriter, r *http.Request) {
	movieId, err := app.readIDParam(r, "movieId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	start, end, err := app.readDateRange(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	screenings, err := app.screeningRepo.GetByMovieAndDateRange(r.Context(), movieId, start, end)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toScreeningResponses(screenings), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetScreening(w http.ResponseWriter, r *http.Request) {
	screeningId, err := app.readIDParam(r, "screeningId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	screening, err := app.screeningRepo.GetById(r.Context(), screeningId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toScreeningResponse(*screening), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateScreening(w http.ResponseWriter, r *http.Request) {
	input, movie, ok := app.readScreeningRequest(w, r)
	if !ok {
		return
	}

	conflict, err := app.schedule.HasConflict(r.Context(), input.TheaterID, input.Datetime, movie.Duration, 0)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	if conflict {
		app.conflictResponse(w, r, domain.ErrScreeningOverlap)
		return
	}

	screening := domain.Screening{
		Datetime:      input.Datetime,
		TicketPrice:   input.TicketPrice,
		MovieID:       input.MovieID,
		TheaterID:     input.TheaterID,
		MovieDuration: movie.Duration,
	}

	err = app.screeningRepo.Create(r.Context(), &screening)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrScreeningOverlap):
			app.conflictResponse(w, r, err)
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusCreated, toScreeningResponse(screening), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateScreening(w http.ResponseWriter, r *http.Request) {
	screeningId, err := app.readIDParam(r, "screeningId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	input, movie, ok := app.readScreeningRequest(w, r)
	if !ok {
		return
	}

	conflict, err := app.schedule.HasConflict(r.Context(), input.TheaterID, input.Datetime, movie.Duration, screeningId)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	if conflict {
		app.conflictResponse(w, r, domain.ErrScreeningOverlap)
		return
	}

	screening := domain.Screening{
		ID:            screeningId,
		Datetime:      input.Datetime,
		TicketPrice:   input.TicketPrice,
		MovieID:       input.MovieID,
		TheaterID:     input.TheaterID,
		MovieDuration: movie.Duration,
	}

	err = app.screeningRepo.Update(r.Context(), &screening)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrScreeningOverlap):
			app.conflictResponse(w, r, err)
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toScreeningResponse(screening), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteScreening(w http.ResponseWriter, r *http.Request) {
	screeningId, err := app.readIDParam(r, "screeningId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.screeningRepo.Delete(r.Context(), screeningId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// readScreeningRequest decodes and validates a screening payload and
// resolves its movie, writing the error response itself when it fails.
func (app *Application) readScreeningRequest(w http.ResponseWriter, r *http.Request) (api.ScreeningRequest, *domain.Movie, bool) {
	var input api.ScreeningRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return input, nil, false
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return input, nil, false
	}

	if input.TicketPrice.IsNegative() {
		app.badRequestResponse(w, r, fmt.Errorf("ticket price must not be negative"))
		return input, nil, false
	}

	movie, err := app.movieRepo.GetById(r.Context(), input.MovieID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return input, nil, false
	}

	return input, movie, true
}

func (app *Application) readDateRange(r *http.Request) (time.Time, time.Time, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.Add(DefaultScheduleWindow)

	if from := r.URL.Query().Get("from"); from != "" {
		parsed, err := time.Parse(dateLayout, from)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid from parameter, expected YYYY-MM-DD")
		}
		start = parsed
		end = start.Add(DefaultScheduleWindow)
	}

	if to := r.URL.Query().Get("to"); to != "" {
		parsed, err := time.Parse(dateLayout, to)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid to parameter, expected YYYY-MM-DD")
		}
		// make the range inclusive of the whole end day
		end = parsed.Add(24 * time.Hour)
	}

	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("to must not be before from")
	}

	return start, end, nil
}

func toScreeningResponses(screenings []domain.Screening) []api.ScreeningResponse {
	resp := make([]api.ScreeningResponse, len(screenings))
	for i, screening := range screenings {
		resp[i] = toScreeningResponse(screening)
	}

	return resp
}

func toScreeningResponse(screening domain.Screening) api.ScreeningResponse {
	return api.ScreeningResponse{
		ID:          screening.ID,
		MovieID:     screening.MovieID,
		TheaterID:   screening.TheaterID,
		Datetime:    screening.Datetime,
		EndTime:     screening.EndTime(),
		TicketPrice: screening.TicketPrice,
	}
}
