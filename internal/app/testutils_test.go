package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/risinglion/cinema-booking-api/api"
	"github.com/risinglion/cinema-booking-api/internal/mailer"
	"github.com/risinglion/cinema-booking-api/internal/service"
	"github.com/risinglion/cinema-booking-api/internal/token"
	"github.com/risinglion/cinema-booking-api/internal/validator"
)

func newTestApplication(t *testing.T, opts ...func(*Application)) *Application {
	t.Helper()

	tokens, err := token.NewMaker("test-secret-test-secret-test1234", time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	app := &Application{
		config:    Config{Env: "test"},
		validator: validator.NewValidator(),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		mailer:    mailer.NewMockMailer(),
		tokens:    tokens,
	}

	for _, opt := range opts {
		opt(app)
	}

	app.bookings = service.NewBookingService(app.screeningRepo, app.userRepo, app.seatRepo, app.bookingRepo)
	app.schedule = service.NewScheduleService(app.screeningRepo)

	return app
}

// serveRequest routes the request through the full middleware chain.
func serveRequest(t *testing.T, app *Application, method, url string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(jsonData)
	}

	r := httptest.NewRequest(method, url, reader)
	r.Header.Set("Content-Type", "application/json")

	for key, value := range headers {
		r.Header.Set(key, value)
	}

	w := httptest.NewRecorder()
	app.Routes().ServeHTTP(w, r)

	return w
}

func authHeader(t *testing.T, app *Application, userId int, isAdmin bool) map[string]string {
	t.Helper()

	accessToken, _, err := app.tokens.Issue(userId, isAdmin)
	if err != nil {
		t.Fatal(err)
	}

	return map[string]string{"Authorization": fmt.Sprintf("Bearer %s", accessToken)}
}

func checkErrorResponse(t *testing.T, w *httptest.ResponseRecorder, wantStatus int, wantErrMessage string) {
	t.Helper()

	if wantStatus >= 200 && wantStatus < 300 || wantErrMessage == "" {
		return
	}

	switch wantStatus {
	case http.StatusUnprocessableEntity:
		var validationResp api.ValidationErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&validationResp); err != nil {
			t.Fatalf("Failed to decode validation error response: %v", err)
		}

		errorSet := make(map[string]bool)
		for _, vErr := range validationResp.Errors {
			errorSet[vErr.Issue] = true
		}

		if !errorSet[wantErrMessage] {
			t.Errorf("Expected validation error message '%s' not found in response", wantErrMessage)
		}

	default:
		var errorResp api.ErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&errorResp); err != nil {
			t.Fatalf("Failed to decode error response: %v", err)
		}

		if errorResp.Message != wantErrMessage {
			t.Errorf("Error message = %v, want %v", errorResp.Message, wantErrMessage)
		}
	}
}
