package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/risinglion/cinema-booking-api/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var keysToIgnore = map[string]struct{}{
	"timestamp": {},
	"requestId": {},
	"createdAt": {},
}

func prepareRequest(method, path string, body io.Reader, headers map[string]string) (*http.Request, error) {
	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req, nil
}

func compareResponse(t *testing.T, body io.Reader, expectedResponse string) {
	var actual map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	cleanMap(actual)

	var expected map[string]any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	// ignore indeterministic fields while comparing
	opts := cmpopts.IgnoreMapEntries(func(k string, _ any) bool {
		_, ok := keysToIgnore[k]
		return ok
	})

	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func cleanMap(m map[string]any) {
	for k := range m {
		if _, ok := keysToIgnore[k]; ok {
			delete(m, k)
			continue
		}
		if nested, ok := m[k].(map[string]any); ok {
			cleanMap(nested)
		}
	}
}

func bearerHeader(t testing.TB, testApp *TestApp, userId int, isAdmin bool) map[string]string {
	t.Helper()

	accessToken, _, err := testApp.Tokens.Issue(userId, isAdmin)
	require.NoError(t, err)

	return map[string]string{"Authorization": "Bearer " + accessToken}
}

// createUser inserts a user directly and returns its ID.
func createUser(t testing.TB, testApp *TestApp, username, email string) int {
	t.Helper()

	user := domain.User{Username: username, Email: email}
	require.NoError(t, user.Password.Set("Str0ng!Pass"))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var id int
	err := testApp.DB.QueryRow(ctx,
		`INSERT INTO users (username, email, password_hash) VALUES ($1, $2, $3) RETURNING id`,
		user.Username, user.Email, user.Password.Hash,
	).Scan(&id)
	require.NoError(t, err)

	return id
}

func createCategory(t testing.TB, testApp *TestApp, name string) int {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var id int
	err := testApp.DB.QueryRow(ctx,
		`INSERT INTO categories (name) VALUES ($1) RETURNING id`, name,
	).Scan(&id)
	require.NoError(t, err)

	return id
}

func createMovie(t testing.TB, testApp *TestApp, title string, duration, categoryId int) int {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var id int
	err := testApp.DB.QueryRow(ctx,
		`INSERT INTO movies (title, description, duration, release_date, category_id)
		 VALUES ($1, '', $2, '2025-01-01', $3) RETURNING id`,
		title, duration, categoryId,
	).Scan(&id)
	require.NoError(t, err)

	return id
}

// createTheater inserts a theater plus its seat grid and returns the theater
// ID together with the seat IDs in row/number order.
func createTheater(t testing.TB, testApp *TestApp, name string, rows, seatsPerRow int) (int, []int) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var theaterId int
	err := testApp.DB.QueryRow(ctx,
		`INSERT INTO theaters (name, row_count, seats_per_row) VALUES ($1, $2, $3) RETURNING id`,
		name, rows, seatsPerRow,
	).Scan(&theaterId)
	require.NoError(t, err)

	seatIds := make([]int, 0, rows*seatsPerRow)
	for row := 0; row < rows; row++ {
		for number := 1; number <= seatsPerRow; number++ {
			var seatId int
			err := testApp.DB.QueryRow(ctx,
				`INSERT INTO seats (theater_id, row_label, number) VALUES ($1, $2, $3) RETURNING id`,
				theaterId, fmt.Sprintf("%c", 'A'+row), number,
			).Scan(&seatId)
			require.NoError(t, err)
			seatIds = append(seatIds, seatId)
		}
	}

	return theaterId, seatIds
}

func createScreening(t testing.TB, testApp *TestApp, movieId, theaterId int, datetime time.Time, price string) int {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var id int
	err := testApp.DB.QueryRow(ctx,
		`INSERT INTO screenings (movie_id, theater_id, datetime, ticket_price)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		movieId, theaterId, datetime, decimal.RequireFromString(price),
	).Scan(&id)
	require.NoError(t, err)

	return id
}

func countTicketsForScreening(t testing.TB, testApp *TestApp, screeningId int) int {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var count int
	err := testApp.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM tickets WHERE screening_id = $1`, screeningId,
	).Scan(&count)
	require.NoError(t, err)

	return count
}
