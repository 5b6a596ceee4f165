//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"roadready/internal/domain/auth"
	"roadready/internal/domain/user"
	"roadready/internal/handler/api"
	resdto "roadready/internal/handler/dto/response"
	"roadready/internal/pkg/config"
	"roadready/internal/pkg/cookie"
	"roadready/internal/pkg/jwt"
	"roadready/internal/usecase/commands"
	"roadready/internal/usecase/queries"
	"roadready/tests/common/builder"
	"roadready/tests/common/httptest"
	"roadready/tests/common/testutil"
	commandsmock "roadready/tests/mock/commands"
	queriesmock "roadready/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockAuthCommands
	mockQueries  *queriesmock.MockUserQueries
	principals   principals
}

func (s *AuthHandlerTestSuite) SetupTest() {
	s.router = newEngine()
	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockAuthCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockUserQueries(s.mockCtrl)
	s.principals = newPrincipals()

	cfg := config.NewTestConfig()
	tokens := jwt.NewService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience, time.Hour)
	h := api.NewAuthHandler(s.mockCommands, s.mockQueries, tokens, cfg)
	requireAuth := s.principals.middleware(s.mockCtrl).RequireAuth()

	s.router.POST("/auth/register", h.Register)
	s.router.POST("/auth/login", h.Login)
	s.router.POST("/auth/logout", requireAuth, h.Logout)
	s.router.GET("/auth/me", requireAuth, h.Me)
}

func (s *AuthHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

type testCaseAuth struct {
	name         string
	mutate       func(m map[string]any)
	expectCode   int
	expectInBody string
}

func (s *AuthHandlerTestSuite) TestRegister() {
	url := "/auth/register"
	reqBody := builder.NewAuthBuilder().WithEmail("new@example.com").BuildRegisterDTO()
	view := builder.NewUserBuilder().WithEmail("new@example.com").BuildView()

	s.Run("success: 201 with the new user", func() {
		s.mockCommands.EXPECT().Register(gomock.Any(), reqBody.ToCommand()).
			Return(&commands.RegisterResult{UserID: view.ID}, nil)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID, auth.NewPrincipal(view.ID)).Return(view, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var body resdto.UserResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal("new@example.com", body.Email)
		s.Equal("customer", body.Role)
		s.NotContains(rec.Body.String(), "password")
	})

	s.Run("error: taken email is 409", func() {
		s.mockCommands.EXPECT().Register(gomock.Any(), gomock.Any()).Return(nil, commands.ErrEmailTaken)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "already registered")
	})

	s.Run("error: validation", func() {
		testCases := []testCaseAuth{
			{name: "short password", mutate: testutil.Field("password", "short"), expectCode: http.StatusBadRequest},
			{name: "malformed email", mutate: testutil.Field("email", "nope"), expectCode: http.StatusBadRequest},
			{name: "missing email", mutate: testutil.Field("email", nil), expectCode: http.StatusBadRequest},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, tc.expectInBody)
			})
		}
	})
}

func (s *AuthHandlerTestSuite) TestLogin() {
	url := "/auth/login"
	reqBody := builder.NewAuthBuilder().BuildDTO()
	view := builder.NewUserBuilder().BuildView()
	expectedToken := "test-jwt-token"

	s.Run("success: token in body and cookie", func() {
		s.mockCommands.EXPECT().Login(gomock.Any(), reqBody.ToCommand()).
			Return(&commands.LoginResult{UserID: view.ID, Role: user.RoleCustomer, AccessToken: expectedToken}, nil)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID, auth.NewPrincipal(view.ID, user.RoleCustomer)).Return(view, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var body resdto.LoginResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(expectedToken, body.AccessToken)
		s.Require().NotNil(body.User)
		s.Equal(view.ID, body.User.ID)

		c := httptest.ExtractCookie(rec, cookie.AccessTokenCookieName)
		s.Require().NotNil(c)
		s.Equal(expectedToken, c.Value)
		s.True(c.HttpOnly)
		s.Equal(int(time.Hour.Seconds()), c.MaxAge)
	})

	s.Run("error: bad credentials are 401", func() {
		s.mockCommands.EXPECT().Login(gomock.Any(), gomock.Any()).Return(nil, auth.ErrInvalidCredentials)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid email or password")
		s.Nil(httptest.ExtractCookie(rec, cookie.AccessTokenCookieName))
	})

	s.Run("error: token generation failure is 500", func() {
		s.mockCommands.EXPECT().Login(gomock.Any(), gomock.Any()).Return(nil, commands.ErrTokenGeneration)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})

	s.Run("error: missing password is 400", func() {
		requestMap := testutil.DtoMap(s.T(), reqBody, testutil.Field("password", nil))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})
}

func (s *AuthHandlerTestSuite) TestLogout() {
	rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/logout", nil, customerToken)

	s.Equal(http.StatusNoContent, rec.Code)
	c := httptest.ExtractCookie(rec, cookie.AccessTokenCookieName)
	s.Require().NotNil(c)
	s.Empty(c.Value)
	s.Less(c.MaxAge, 0)
}

func (s *AuthHandlerTestSuite) TestMe() {
	s.Run("success", func() {
		view := builder.NewUserBuilder().WithID(s.principals.customer.UserID).BuildView()
		s.mockQueries.EXPECT().GetCurrentUser(gomock.Any(), s.principals.customer).Return(view, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/auth/me", nil, customerToken)

		var body resdto.UserResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(s.principals.customer.UserID, body.ID)
	})

	s.Run("error: 401 without a token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/auth/me", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "")
	})

	s.Run("error: 401 on an invalid token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/auth/me", nil, "forged")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid or expired token")
	})

	s.Run("error: vanished user is 404", func() {
		s.mockQueries.EXPECT().GetCurrentUser(gomock.Any(), s.principals.customer).Return(nil, queries.ErrUserNotFound)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/auth/me", nil, customerToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})
}

func (s *AuthHandlerTestSuite) TestUserRoutes() {
	h := api.NewUserHandler(s.mockQueries)
	s.router.GET("/user", s.principals.middleware(s.mockCtrl).RequireAuth(), h.List)
	s.router.GET("/user/:id", s.principals.middleware(s.mockCtrl).RequireAuth(), h.Get)

	s.Run("list: admin sees everyone", func() {
		views := []*queries.UserView{builder.NewUserBuilder().BuildView(), builder.NewUserBuilder().AsAdmin().BuildView()}
		s.mockQueries.EXPECT().List(gomock.Any(), s.principals.admin).Return(views, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/user", nil, adminToken)

		var body []resdto.UserResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body, 2)
	})

	s.Run("get: another customer is 403", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), id, s.principals.stranger).Return(nil, auth.ErrForbidden)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/user/"+id.String(), nil, strangerToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")
	})
}
