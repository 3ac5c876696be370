package domain

import "context"

type Review struct {
	ID      int
	Rating  int // 1-5
	Text    string
	UserID  int
	MovieID int
}

// ClampRating forces a rating into the accepted 1-5 range.
func ClampRating(rating int) int {
	if rating < 1 {
		return 1
	}
	if rating > 5 {
		return 5
	}
	return rating
}

type ReviewRepository interface {
	GetByMovie(ctx context.Context, movieID int) ([]Review, error)
	GetByMovieAndUser(ctx context.Context, movieID, userID int) (*Review, error)
	Create(ctx context.Context, review *Review) error
	Update(ctx context.Context, review *Review) error
	Delete(ctx context.Context, id int) error
}
