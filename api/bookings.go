package api

import (
	"time"

	"github.com/shopspring/decimal"
)

type BookingCreateRequest struct {
	ScreeningID int   `json:"screeningId" validate:"required,gt=0"`
	SeatIDs     []int `json:"seatIds" validate:"required,min=1,max=10,dive,gt=0"`
}

type TicketResponse struct {
	ID     int    `json:"id"`
	SeatID int    `json:"seatId"`
	Row    string `json:"row,omitempty"`
	Number int    `json:"number,omitempty"`
}

type BookingResponse struct {
	ID          int              `json:"id"`
	ScreeningID int              `json:"screeningId"`
	UserID      int              `json:"userId"`
	TotalPrice  decimal.Decimal  `json:"totalPrice"`
	Tickets     []TicketResponse `json:"tickets"`
	CreatedAt   time.Time        `json:"createdAt"`
}
