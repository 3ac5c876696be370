package api

import (
	"time"

	"github.com/shopspring/decimal"
)

type ScreeningRequest struct {
	MovieID     int             `json:"movieId" validate:"required,gt=0"`
	TheaterID   int             `json:"theaterId" validate:"required,gt=0"`
	Datetime    time.Time       `json:"datetime" validate:"required"`
	TicketPrice decimal.Decimal `json:"ticketPrice" validate:"required"`
}

type ScreeningResponse struct {
	ID          int             `json:"id"`
	MovieID     int             `json:"movieId"`
	TheaterID   int             `json:"theaterId"`
	Datetime    time.Time       `json:"datetime"`
	EndTime     time.Time       `json:"endTime"`
	TicketPrice decimal.Decimal `json:"ticketPrice"`
}
