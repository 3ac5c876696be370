package integration_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/risinglion/cinema-booking-api/api"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ScreeningsSuite struct {
	BaseSuite
}

func TestScreeningsIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}

	suite.Run(t, new(ScreeningsSuite))
}

func (s *ScreeningsSuite) screeningBody(movieId, theaterId int, datetime time.Time) *bytes.Reader {
	body, err := json.Marshal(api.ScreeningRequest{
		MovieID:     movieId,
		TheaterID:   theaterId,
		Datetime:    datetime,
		TicketPrice: decimal.RequireFromString("12.50"),
	})
	s.Require().NoError(err)
	return bytes.NewReader(body)
}

func (s *ScreeningsSuite) TestScreeningSchedulingConflicts() {
	adminId := createUser(s.T(), s.app, "scheduler", "scheduler@example.com")
	categoryId := createCategory(s.T(), s.app, "Drama")
	movieId := createMovie(s.T(), s.app, "The Insider", 120, categoryId)
	theaterId, _ := createTheater(s.T(), s.app, "Screen A", 1, 2)
	otherTheaterId, _ := createTheater(s.T(), s.app, "Screen B", 1, 2)

	// existing screening occupies 18:00-20:00 two days from now
	base := time.Now().Add(48 * time.Hour).Truncate(24 * time.Hour).Add(18 * time.Hour)
	createScreening(s.T(), s.app, movieId, theaterId, base, "12.50")

	adminHeaders := bearerHeader(s.T(), s.app, adminId, true)

	scenarios := []Scenario{
		{
			Name:           "rejects non-admin screening creation",
			Method:         http.MethodPost,
			URL:            "/screenings",
			Body:           s.screeningBody(movieId, theaterId, base.Add(6*time.Hour)),
			Headers:        bearerHeader(s.T(), s.app, adminId, false),
			ExpectedStatus: http.StatusForbidden,
		},
		{
			Name:           "rejects an overlapping screening in the same theater",
			Method:         http.MethodPost,
			URL:            "/screenings",
			Body:           s.screeningBody(movieId, theaterId, base.Add(time.Hour)),
			Headers:        adminHeaders,
			ExpectedStatus: http.StatusConflict,
		},
		{
			Name:           "allows the same slot in another theater",
			Method:         http.MethodPost,
			URL:            "/screenings",
			Body:           s.screeningBody(movieId, otherTheaterId, base.Add(time.Hour)),
			Headers:        adminHeaders,
			ExpectedStatus: http.StatusCreated,
		},
		{
			Name:           "allows a screening starting the instant another ends",
			Method:         http.MethodPost,
			URL:            "/screenings",
			Body:           s.screeningBody(movieId, theaterId, base.Add(2*time.Hour)),
			Headers:        adminHeaders,
			ExpectedStatus: http.StatusCreated,
		},
	}

	for _, scenario := range scenarios {
		scenario.Run(s.T(), s.app)
	}
}
