//go:build e2e

package auth_test

import (
	"net/http"
	"testing"
	"time"

	"roadready/internal/domain/user"
	"roadready/internal/handler/dto/request"
	"roadready/internal/handler/dto/response"
	"roadready/tests/common/authtest"
	"roadready/tests/common/dbtest"
	"roadready/tests/common/httptest"
	"roadready/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	registerURL = "/api/auth/register"
	loginURL    = "/api/auth/login"
	logoutURL   = "/api/auth/logout"
	meURL       = "/api/auth/me"
	usersURL    = "/api/user"
)

type authSuite struct {
	e2e.SharedSuite
	jwt *authtest.JWTHelper
}

func TestAuthSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(authSuite))
}

func (s *authSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.jwt = authtest.NewJWTHelper(s.Config.JWT)
}

func (s *authSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()

	dbtest.CreateTestUser(s.T(), s.DB, "customer@example.com", string(user.RoleCustomer))
	dbtest.CreateTestUser(s.T(), s.DB, "admin@example.com", string(user.RoleAdmin))
	inactive := dbtest.CreateTestUser(s.T(), s.DB, "inactive@example.com", string(user.RoleCustomer))
	dbtest.DeactivateUser(s.T(), s.DB, inactive)
}

func (s *authSuite) TestLogin() {
	tests := []struct {
		name           string
		email          string
		password       string
		expectedStatus int
	}{
		{name: "valid credentials", email: "customer@example.com", password: dbtest.DefaultPassword, expectedStatus: http.StatusOK},
		{name: "unknown user", email: "nobody@example.com", password: dbtest.DefaultPassword, expectedStatus: http.StatusUnauthorized},
		{name: "wrong password", email: "customer@example.com", password: "wrongpassword", expectedStatus: http.StatusUnauthorized},
		{name: "inactive user", email: "inactive@example.com", password: dbtest.DefaultPassword, expectedStatus: http.StatusUnauthorized},
		{name: "empty email", email: "", password: dbtest.DefaultPassword, expectedStatus: http.StatusBadRequest},
		{name: "empty password", email: "customer@example.com", password: "", expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			t := s.T()

			w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL,
				request.LoginRequest{Email: tt.email, Password: tt.password}, "")
			require.Equal(t, tt.expectedStatus, w.Code, w.Body.String())

			if tt.expectedStatus != http.StatusOK {
				assert.Nil(t, httptest.ExtractCookie(w, "access_token"))
				return
			}

			var res response.LoginResponse
			httptest.AssertSuccessResponse(t, w, http.StatusOK, &res)
			require.NotEmpty(t, res.AccessToken)
			require.NotNil(t, res.User)
			assert.Equal(t, tt.email, res.User.Email)
			assert.Equal(t, string(user.RoleCustomer), res.User.Role)

			cookie := httptest.ExtractCookie(w, "access_token")
			require.NotNil(t, cookie)
			assert.Equal(t, res.AccessToken, cookie.Value)
			assert.True(t, cookie.HttpOnly)

			var lastLogin *time.Time
			err := s.DB.QueryRow(t.Context(), "SELECT last_login FROM users WHERE email = $1", tt.email).Scan(&lastLogin)
			require.NoError(t, err)
			require.NotNil(t, lastLogin, "last_login was not recorded")
		})
	}
}

func (s *authSuite) TestRegister() {
	s.Run("new customer can log in", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, registerURL,
			request.RegisterRequest{Email: "new@example.com", Password: "longenough1"}, "")
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created response.UserResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)
		assert.Equal(t, "new@example.com", created.Email)
		assert.Equal(t, string(user.RoleCustomer), created.Role)
		assert.Equal(t, "/api/user/"+created.ID.String(), w.Header().Get("Location"))

		token := authtest.LoginUser(t, s.Router, "new@example.com", "longenough1")
		assert.NotEmpty(t, token)
	})

	s.Run("duplicate email is a conflict", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, registerURL,
			request.RegisterRequest{Email: "customer@example.com", Password: "longenough1"}, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "email is already registered")
	})

	s.Run("email of a deactivated account can be reused", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, registerURL,
			request.RegisterRequest{Email: "inactive@example.com", Password: "longenough1"}, "")
		require.Equal(s.T(), http.StatusCreated, w.Code, w.Body.String())
	})

	s.Run("short password is rejected", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, registerURL,
			request.RegisterRequest{Email: "short@example.com", Password: "short"}, "")
		require.Equal(s.T(), http.StatusBadRequest, w.Code, w.Body.String())
	})
}

func (s *authSuite) TestMe() {
	s.Run("cookie session", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL,
			request.LoginRequest{Email: "admin@example.com", Password: dbtest.DefaultPassword}, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = httptest.PerformRequestWithCookies(t, s.Router, http.MethodGet, meURL, nil, httptest.ExtractCookies(w), "")
		var me response.UserResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &me)
		assert.Equal(t, "admin@example.com", me.Email)
		assert.Equal(t, string(user.RoleAdmin), me.Role)
	})

	s.Run("bearer token", func() {
		token := authtest.LoginUser(s.T(), s.Router, "customer@example.com", dbtest.DefaultPassword)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, meURL, nil, token)
		var me response.UserResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &me)
		assert.Equal(s.T(), "customer@example.com", me.Email)
	})

	tokenCases := []struct {
		name  string
		token func() string
		msg   string
	}{
		{name: "no token", token: func() string { return "" }, msg: "Access token required"},
		{name: "garbage token", token: func() string { return "not-a-jwt" }, msg: "Invalid or expired token"},
		{name: "expired token", token: func() string {
			return s.jwt.CreateExpiredToken(s.T(), uuid.New(), user.RoleCustomer)
		}, msg: "Invalid or expired token"},
		{name: "foreign signature", token: func() string {
			return s.jwt.ForeignToken(s.T(), uuid.New(), user.RoleAdmin)
		}, msg: "Invalid or expired token"},
	}
	for _, tc := range tokenCases {
		s.Run(tc.name, func() {
			w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, meURL, nil, tc.token())
			httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, tc.msg)
		})
	}

	s.Run("valid token for a deactivated user", func() {
		var inactiveID uuid.UUID
		err := s.DB.QueryRow(s.T().Context(), "SELECT id FROM users WHERE email = 'inactive@example.com'").Scan(&inactiveID)
		require.NoError(s.T(), err)

		token := s.jwt.GenerateToken(s.T(), inactiveID, user.RoleCustomer)
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, meURL, nil, token)
		httptest.AssertErrorResponse(s.T(), w, http.StatusForbidden, "user inactive")
	})
}

func (s *authSuite) TestLogout() {
	s.Run("clears the cookie", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL,
			request.LoginRequest{Email: "customer@example.com", Password: dbtest.DefaultPassword}, "")
		require.Equal(t, http.StatusOK, w.Code)
		cookies := httptest.ExtractCookies(w)

		w = httptest.PerformRequestWithCookies(t, s.Router, http.MethodPost, logoutURL, nil, cookies, "")
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		cleared := httptest.ExtractCookie(w, "access_token")
		require.NotNil(t, cleared)
		assert.Empty(t, cleared.Value)
		assert.Less(t, cleared.MaxAge, 0)
	})

	s.Run("requires a session", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, logoutURL, nil, "")
		require.Equal(s.T(), http.StatusUnauthorized, w.Code)
	})
}

func (s *authSuite) TestUserDirectory() {
	s.Run("admin lists users", func() {
		_, token := authtest.CreateAndLogin(s.T(), s.DB, s.Router, "admin@example.com", string(user.RoleAdmin))

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, usersURL, nil, token)
		var users []*response.UserResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &users)

		emails := make([]string, 0, len(users))
		for _, u := range users {
			emails = append(emails, u.Email)
		}
		assert.ElementsMatch(s.T(), []string{"customer@example.com", "admin@example.com", "inactive@example.com"}, emails)
	})

	s.Run("customer cannot list users", func() {
		_, token := authtest.CreateAndLogin(s.T(), s.DB, s.Router, "customer@example.com", string(user.RoleCustomer))

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, usersURL, nil, token)
		require.Equal(s.T(), http.StatusForbidden, w.Code, w.Body.String())
	})

	s.Run("customer reads self but not others", func() {
		selfID, token := authtest.CreateAndLogin(s.T(), s.DB, s.Router, "customer@example.com", string(user.RoleCustomer))
		adminID := dbtest.CreateTestUser(s.T(), s.DB, "admin@example.com", string(user.RoleAdmin))

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, usersURL+"/"+selfID.String(), nil, token)
		require.Equal(s.T(), http.StatusOK, w.Code, w.Body.String())

		w = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, usersURL+"/"+adminID.String(), nil, token)
		require.Equal(s.T(), http.StatusForbidden, w.Code, w.Body.String())
	})
}
