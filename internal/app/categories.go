package app

import (
	"errors"
	"net/http"

	"github.com/risinglion/cinema-booking-api/api"
	"github.com/risinglion/cinema-booking-api/internal/domain"
)

func (app *Application) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := app.categoryRepo.GetAll(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := make([]api.CategoryResponse, len(categories))
	for i, category := range categories {
		resp[i] = api.CategoryResponse{ID: category.ID, Name: category.Name}
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var input api.CategoryRequest

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

	category := domain.Category{Name: input.Name}

	err = app.categoryRepo.Create(r.Context(), &category)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateRecord):
			app.conflictResponse(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	resp := api.CategoryResponse{ID: category.ID, Name: category.Name}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	categoryId, err := app.readIDParam(r, "categoryId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input api.CategoryRequest

	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	category := domain.Category{ID: categoryId, Name: input.Name}

	err = app.categoryRepo.Update(r.Context(), &category)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, domain.ErrDuplicateRecord):
			app.conflictResponse(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	resp := api.CategoryResponse{ID: category.ID, Name: category.Name}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	categoryId, err := app.readIDParam(r, "categoryId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.categoryRepo.Delete(r.Context(), categoryId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, domain.ErrDuplicateRecord):
			app.conflictResponse(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
