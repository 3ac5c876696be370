package app

import (
	"errors"
	"net/http"

	"github.com/risinglion/cinema-booking-api/api"
	"github.com/risinglion/cinema-booking-api/internal/domain"
)

func (app *Application) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := app.userRepo.GetAll(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := make([]api.UserResponse, len(users))
	for i := range users {
		resp[i] = toUserResponse(&users[i])
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) SetUserAdmin(w http.ResponseWriter, r *http.Request) {
	userId, err := app.readIDParam(r, "userId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input api.SetAdminRequest

	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.userRepo.SetAdmin(r.Context(), userId, input.IsAdmin)
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

func (app *Application) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userId, err := app.readIDParam(r, "userId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.userRepo.Delete(r.Context(), userId)
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
