package api

type ReviewRequest struct {
	Rating int    `json:"rating" validate:"required"`
	Text   string `json:"text" validate:"max=2000"`
}

type ReviewResponse struct {
	ID      int    `json:"id"`
	Rating  int    `json:"rating"`
	Text    string `json:"text"`
	UserID  int    `json:"userId"`
	MovieID int    `json:"movieId"`
}
