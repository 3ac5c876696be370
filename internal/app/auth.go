package app

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/risinglion/cinema-booking-api/api"
	"github.com/risinglion/cinema-booking-api/internal/domain"
)

func (app *Application) Signup(w http.ResponseWriter, r *http.Request) {
	var input api.SignupRequest

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

	user := domain.User{
		Username: input.Username,
		Email:    input.Email,
	}

	err = user.Password.Set(input.Password)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.userRepo.Create(r.Context(), &user)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserAlreadyExists):
			app.logger.Warn("signup attempt for existing username or email")
			// do not reveal which accounts exist
			app.badRequestResponse(w, r, fmt.Errorf("invalid input data"))
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	go func() {
		defer func() {
			if err := recover(); err != nil {
				app.logger.Error("panic occurred during sending welcome mail", "panic", err)
			}
		}()

		data := map[string]any{
			"Username": user.Username,
		}

		err := app.mailer.Send(user.Email, "welcome.tmpl", data)
		if err != nil {
			app.logger.Error("failed to send welcome email", "error", err)
		}
	}()

	resp := toUserResponse(&user)

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// ResetPassword acknowledges a password reset request. Reset delivery is not
// implemented yet; the endpoint accepts any well-formed email and returns
// 204 without revealing whether an account exists.
func (app *Application) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var input api.ResetPasswordRequest

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

	app.logger.Info("password reset requested")

	w.WriteHeader(http.StatusNoContent)
}

func (app *Application) Login(w http.ResponseWriter, r *http.Request) {
	var input api.LoginRequest

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

	user, err := app.userRepo.GetByEmail(r.Context(), input.Email)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.unauthorizedAccessResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	matches, err := user.Password.Matches(input.Password)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	if !matches {
		app.unauthorizedAccessResponse(w, r)
		return
	}

	accessToken, expiresAt, err := app.tokens.Issue(user.ID, user.IsAdmin)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.AuthResponse{
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
		User:        toUserResponse(user),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
