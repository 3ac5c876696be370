package app

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/risinglion/cinema-booking-api/api"
	"github.com/risinglion/cinema-booking-api/internal/domain"
	"github.com/risinglion/cinema-booking-api/internal/mailer"
	"github.com/risinglion/cinema-booking-api/internal/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AuthTestSuite struct {
	suite.Suite
	app      *Application
	userRepo *mocks.MockUserRepo
	mailer   *mailer.MockMailer
}

func (s *AuthTestSuite) SetupTest() {
	s.userRepo = new(mocks.MockUserRepo)
	s.mailer = mailer.NewMockMailer()

	s.app = newTestApplication(s.T(), func(a *Application) {
		a.userRepo = s.userRepo
		a.mailer = s.mailer
	})
}

func TestAuthSuite(t *testing.T) {
	suite.Run(t, new(AuthTestSuite))
}

func (s *AuthTestSuite) TestSignup() {
	tests := []struct {
		name           string
		body           api.SignupRequest
		setupMocks     func()
		wantStatus     int
		wantErrMessage string
	}{
		{
			name:       "should fail validation with a weak password",
			body:       api.SignupRequest{Username: "moviegoer", Email: "moviegoer@example.com", Password: "weak"},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "should fail validation with an invalid email",
			body:       api.SignupRequest{Username: "moviegoer", Email: "not-an-email", Password: "Str0ng!Pass"},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "should not reveal existing accounts",
			body: api.SignupRequest{Username: "moviegoer", Email: "moviegoer@example.com", Password: "Str0ng!Pass"},
			setupMocks: func() {
				s.userRepo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrUserAlreadyExists)
			},
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: "invalid input data",
		},
		{
			name: "should create a user with valid input",
			body: api.SignupRequest{Username: "moviegoer", Email: "moviegoer@example.com", Password: "Str0ng!Pass"},
			setupMocks: func() {
				s.userRepo.On("Create", mock.Anything, mock.Anything).
					Run(func(args mock.Arguments) {
						args.Get(1).(*domain.User).ID = 42
					}).
					Return(nil)
			},
			wantStatus: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			if tt.setupMocks != nil {
				tt.setupMocks()
			}

			w := serveRequest(s.T(), s.app, http.MethodPost, "/auth/signup", tt.body, nil)

			s.Equal(tt.wantStatus, w.Code)
			checkErrorResponse(s.T(), w, tt.wantStatus, tt.wantErrMessage)

			if tt.wantStatus != http.StatusCreated {
				return
			}

			var response api.UserResponse
			s.Require().NoError(json.NewDecoder(w.Body).Decode(&response))
			s.Equal(42, response.ID)
			s.Equal("moviegoer", response.Username)

			s.Eventually(func() bool {
				emails := s.mailer.GetSentEmails()
				return len(emails) == 1 &&
					emails[0].Recipient == "moviegoer@example.com" &&
					emails[0].TemplateFile == "welcome.tmpl"
			}, time.Second, 10*time.Millisecond, "welcome email was not sent")
		})
	}
}

func (s *AuthTestSuite) TestResetPassword() {
	s.Run("should fail validation with an invalid email", func() {
		s.SetupTest()

		w := serveRequest(s.T(), s.app, http.MethodPost, "/auth/reset-password",
			api.ResetPasswordRequest{Email: "not-an-email"}, nil)

		s.Equal(http.StatusUnprocessableEntity, w.Code)
	})

	s.Run("should accept any well-formed email", func() {
		s.SetupTest()

		w := serveRequest(s.T(), s.app, http.MethodPost, "/auth/reset-password",
			api.ResetPasswordRequest{Email: "nobody@example.com"}, nil)

		s.Equal(http.StatusNoContent, w.Code)
	})
}

func (s *AuthTestSuite) TestLogin() {
	user := func() *domain.User {
		u := &domain.User{ID: 42, Username: "moviegoer", Email: "moviegoer@example.com"}
		s.Require().NoError(u.Password.Set("Str0ng!Pass"))
		return u
	}

	s.Run("should fail for an unknown email", func() {
		s.SetupTest()

		s.userRepo.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, domain.ErrRecordNotFound)

		w := serveRequest(s.T(), s.app, http.MethodPost, "/auth/login",
			api.LoginRequest{Email: "nobody@example.com", Password: "Str0ng!Pass"}, nil)

		s.Equal(http.StatusUnauthorized, w.Code)
	})

	s.Run("should fail for a wrong password", func() {
		s.SetupTest()

		s.userRepo.On("GetByEmail", mock.Anything, "moviegoer@example.com").Return(user(), nil)

		w := serveRequest(s.T(), s.app, http.MethodPost, "/auth/login",
			api.LoginRequest{Email: "moviegoer@example.com", Password: "Wr0ng!Pass"}, nil)

		s.Equal(http.StatusUnauthorized, w.Code)
	})

	s.Run("should issue a token that authenticates subsequent requests", func() {
		s.SetupTest()

		u := user()
		s.userRepo.On("GetByEmail", mock.Anything, "moviegoer@example.com").Return(u, nil)
		s.userRepo.On("GetById", mock.Anything, 42).Return(u, nil)

		w := serveRequest(s.T(), s.app, http.MethodPost, "/auth/login",
			api.LoginRequest{Email: "moviegoer@example.com", Password: "Str0ng!Pass"}, nil)

		s.Require().Equal(http.StatusOK, w.Code)

		var response api.AuthResponse
		s.Require().NoError(json.NewDecoder(w.Body).Decode(&response))
		s.NotEmpty(response.AccessToken)
		s.Equal(42, response.User.ID)

		headers := map[string]string{"Authorization": "Bearer " + response.AccessToken}
		me := serveRequest(s.T(), s.app, http.MethodGet, "/users/me", nil, headers)

		s.Equal(http.StatusOK, me.Code)
	})

	s.Run("should reject a tampered token", func() {
		s.SetupTest()

		headers := map[string]string{"Authorization": "Bearer not-a-real-token"}
		w := serveRequest(s.T(), s.app, http.MethodGet, "/users/me", nil, headers)

		s.Equal(http.StatusUnauthorized, w.Code)
	})
}
