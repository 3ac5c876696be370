package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/risinglion/cinema-booking-api/api"
	"github.com/risinglion/cinema-booking-api/internal/domain"
)

func (app *Application) ListMovieReviews(w http.ResponseWriter, r *http.Request) {
	movieId, err := app.readIDParam(r, "movieId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	reviews, err := app.reviewRepo.GetByMovie(r.Context(), movieId)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := make([]api.ReviewResponse, len(reviews))
	for i, review := range reviews {
		resp[i] = toReviewResponse(review)
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// UpsertMovieReview creates or replaces the caller's review of a movie. A
// review is only accepted from a user who booked a screening of the movie
// that has already started.
func (app *Application) UpsertMovieReview(w http.ResponseWriter, r *http.Request) {
	userId := app.contextGetUserId(r)

	movieId, err := app.readIDParam(r, "movieId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input api.ReviewRequest

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

	_, err = app.movieRepo.GetById(r.Context(), movieId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	seen, err := app.bookingRepo.ExistsForMovieBefore(r.Context(), userId, movieId, time.Now())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	if !seen {
		app.forbiddenResponse(w, r)
		return
	}

	review := domain.Review{
		Rating:  domain.ClampRating(input.Rating),
		Text:    input.Text,
		UserID:  userId,
		MovieID: movieId,
	}

	existing, err := app.reviewRepo.GetByMovieAndUser(r.Context(), movieId, userId)
	switch {
	case err == nil:
		review.ID = existing.ID
		err = app.reviewRepo.Update(r.Context(), &review)
	case errors.Is(err, domain.ErrRecordNotFound):
		err = app.reviewRepo.Create(r.Context(), &review)
	default:
		app.serverErrorResponse(w, r, err)
		return
	}

	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateRecord):
			app.conflictResponse(w, r, err)
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toReviewResponse(review), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// DeleteOwnMovieReview removes the caller's review of a movie, if any.
func (app *Application) DeleteOwnMovieReview(w http.ResponseWriter, r *http.Request) {
	userId := app.contextGetUserId(r)

	movieId, err := app.readIDParam(r, "movieId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	review, err := app.reviewRepo.GetByMovieAndUser(r.Context(), movieId, userId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.reviewRepo.Delete(r.Context(), review.ID)
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

func (app *Application) DeleteReview(w http.ResponseWriter, r *http.Request) {
	reviewId, err := app.readIDParam(r, "reviewId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.reviewRepo.Delete(r.Context(), reviewId)
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

func toReviewResponse(review domain.Review) api.ReviewResponse {
	return api.ReviewResponse{
		ID:      review.ID,
		Rating:  review.Rating,
		Text:    review.Text,
		UserID:  review.UserID,
		MovieID: review.MovieID,
	}
}
