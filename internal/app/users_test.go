package app

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/risinglion/cinema-booking-api/api"
	"github.com/risinglion/cinema-booking-api/internal/domain"
	"github.com/risinglion/cinema-booking-api/internal/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type UsersTestSuite struct {
	suite.Suite
	app      *Application
	userRepo *mocks.MockUserRepo
}

func (s *UsersTestSuite) SetupTest() {
	s.userRepo = new(mocks.MockUserRepo)

	s.app = newTestApplication(s.T(), func(a *Application) {
		a.userRepo = s.userRepo
	})
}

func TestUsersSuite(t *testing.T) {
	suite.Run(t, new(UsersTestSuite))
}

func (s *UsersTestSuite) TestUpdateCurrentUser() {
	current := func() *domain.User {
		return &domain.User{ID: 42, Username: "moviegoer", Email: "moviegoer@example.com"}
	}

	body := api.UpdateUserRequest{Username: "cinephile", Email: "cinephile@example.com"}

	s.Run("should fail without authentication", func() {
		s.SetupTest()

		w := serveRequest(s.T(), s.app, http.MethodPatch, "/users/me", body, nil)

		s.Equal(http.StatusUnauthorized, w.Code)
	})

	s.Run("should fail when the new email is taken", func() {
		s.SetupTest()

		s.userRepo.On("GetById", mock.Anything, 42).Return(current(), nil)
		s.userRepo.On("Update", mock.Anything, mock.Anything).Return(domain.ErrUserAlreadyExists)

		w := serveRequest(s.T(), s.app, http.MethodPatch, "/users/me", body, authHeader(s.T(), s.app, 42, false))

		s.Equal(http.StatusConflict, w.Code)
	})

	s.Run("should update username and email", func() {
		s.SetupTest()

		s.userRepo.On("GetById", mock.Anything, 42).Return(current(), nil)
		s.userRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.ID == 42 && u.Username == "cinephile" && u.Email == "cinephile@example.com"
		})).Return(nil)

		w := serveRequest(s.T(), s.app, http.MethodPatch, "/users/me", body, authHeader(s.T(), s.app, 42, false))

		s.Require().Equal(http.StatusOK, w.Code)

		var response api.UserResponse
		s.Require().NoError(json.NewDecoder(w.Body).Decode(&response))
		s.Equal("cinephile", response.Username)
	})
}

func (s *UsersTestSuite) TestAdminUserManagement() {
	s.Run("should forbid non-admin access to the user list", func() {
		s.SetupTest()

		w := serveRequest(s.T(), s.app, http.MethodGet, "/admin/users", nil, authHeader(s.T(), s.app, 42, false))

		s.Equal(http.StatusForbidden, w.Code)
	})

	s.Run("should list users for an admin", func() {
		s.SetupTest()

		s.userRepo.On("GetAll", mock.Anything).Return([]domain.User{
			{ID: 1, Username: "admin", Email: "admin@example.com", IsAdmin: true},
			{ID: 42, Username: "moviegoer", Email: "moviegoer@example.com"},
		}, nil)

		w := serveRequest(s.T(), s.app, http.MethodGet, "/admin/users", nil, authHeader(s.T(), s.app, 1, true))

		s.Require().Equal(http.StatusOK, w.Code)

		var response []api.UserResponse
		s.Require().NoError(json.NewDecoder(w.Body).Decode(&response))
		s.Len(response, 2)
	})

	s.Run("should grant the admin role", func() {
		s.SetupTest()

		s.userRepo.On("SetAdmin", mock.Anything, 42, true).Return(nil)

		w := serveRequest(s.T(), s.app, http.MethodPut, "/admin/users/42/admin",
			api.SetAdminRequest{IsAdmin: true}, authHeader(s.T(), s.app, 1, true))

		s.Equal(http.StatusNoContent, w.Code)
		s.userRepo.AssertExpectations(s.T())
	})

	s.Run("should fail to delete an unknown user", func() {
		s.SetupTest()

		s.userRepo.On("Delete", mock.Anything, 99).Return(domain.ErrRecordNotFound)

		w := serveRequest(s.T(), s.app, http.MethodDelete, "/admin/users/99", nil, authHeader(s.T(), s.app, 1, true))

		s.Equal(http.StatusNotFound, w.Code)
	})
}
