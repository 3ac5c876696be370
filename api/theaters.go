package api

type TheaterRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Rows        int    `json:"rows" validate:"required,gte=1,lte=26"`
	SeatsPerRow int    `json:"seatsPerRow" validate:"required,gte=1,lte=100"`
}

type TheaterResponse struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Rows        int    `json:"rows"`
	SeatsPerRow int    `json:"seatsPerRow"`
}

type SeatResponse struct {
	ID     int    `json:"id"`
	Row    string `json:"row"`
	Number int    `json:"number"`
	Taken  bool   `json:"taken"`
}

// SeatMapResponse groups a screening's seats by row, in display order.
type SeatMapResponse struct {
	ScreeningID int          `json:"screeningId"`
	Rows        []SeatMapRow `json:"rows"`
}

type SeatMapRow struct {
	Row   string         `json:"row"`
	Seats []SeatResponse `json:"seats"`
}
