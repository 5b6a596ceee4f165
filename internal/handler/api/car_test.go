//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"roadready/internal/domain/auth"
	"roadready/internal/domain/car"
	"roadready/internal/domain/user"
	"roadready/internal/handler/api"
	resdto "roadready/internal/handler/dto/response"
	"roadready/internal/usecase/commands"
	"roadready/internal/usecase/queries"
	"roadready/tests/common/builder"
	"roadready/tests/common/httptest"
	"roadready/tests/common/testutil"
	commandsmock "roadready/tests/mock/commands"
	queriesmock "roadready/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CarHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockCarCommands
	mockQueries  *queriesmock.MockCarQueries
	principals   principals
}

func (s *CarHandlerTestSuite) SetupTest() {
	s.router = newEngine()
	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockCarCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockCarQueries(s.mockCtrl)
	s.principals = newPrincipals()

	h := api.NewCarHandler(s.mockCommands, s.mockQueries)
	mw := s.principals.middleware(s.mockCtrl)
	admin := []gin.HandlerFunc{mw.RequireAuth(), mw.RequireRole(user.RoleAdmin)}

	s.router.GET("/car", h.List)
	s.router.GET("/car/:id", h.Get)
	s.router.POST("/car", append(admin, h.Create)...)
	s.router.PUT("/car/:id", append(admin, h.Update)...)
	s.router.DELETE("/car/:id", append(admin, h.Retire)...)
}

func (s *CarHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCarHandlerSuite(t *testing.T) {
	suite.Run(t, new(CarHandlerTestSuite))
}

func (s *CarHandlerTestSuite) TestList() {
	views := []*queries.CarView{builder.NewCarBuilder().BuildView(), builder.NewCarBuilder().AsRetired().BuildView()}
	s.mockQueries.EXPECT().List(gomock.Any()).Return(views, nil)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/car", nil, "")

	var body []resdto.CarResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
	s.Require().Len(body, 2)
	s.Equal(views[0].DailyRateCents, body[0].DailyRateCents)
	s.Equal(car.StatusRetired.String(), body[1].Status)
}

func (s *CarHandlerTestSuite) TestCreate() {
	b := builder.NewCarBuilder()
	reqBody := b.BuildRequestDTO()
	view := b.BuildView()

	s.Run("success: admin creates", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), s.principals.admin, reqBody.ToCommand()).
			Return(&commands.CarResult{CarID: view.ID}, nil)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/car", reqBody, adminToken)

		var body resdto.CarResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(view.ID, body.ID)
		s.Equal(view.Make, body.Make)
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Location": "/api/car/" + view.ID.String()})
	})

	s.Run("error: customers are 403 before the handler runs", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/car", reqBody, customerToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")
	})

	s.Run("error: non-positive rate is 400", func() {
		requestMap := testutil.DtoMap(s.T(), reqBody, testutil.Field("daily_rate_cents", 0))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/car", requestMap, adminToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: rate above the ceiling is 400", func() {
		requestMap := testutil.DtoMap(s.T(), reqBody, testutil.Field("daily_rate_cents", car.MaxDailyRateCents+1))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/car", requestMap, adminToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})
}

func (s *CarHandlerTestSuite) TestRetire() {
	view := builder.NewCarBuilder().AsRetired().BuildView()
	url := "/car/" + view.ID.String()

	s.Run("success", func() {
		s.mockCommands.EXPECT().Retire(gomock.Any(), view.ID, s.principals.admin).Return(nil)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, adminToken)

		var body resdto.CarResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(car.StatusRetired.String(), body.Status)
	})

	s.Run("error: unknown car", func() {
		s.mockCommands.EXPECT().Retire(gomock.Any(), view.ID, s.principals.admin).Return(commands.ErrCarNotFound)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, adminToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})

	s.Run("error: core refusal still maps to 403", func() {
		s.mockCommands.EXPECT().Retire(gomock.Any(), view.ID, s.principals.admin).Return(auth.ErrRoleRequired)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, adminToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")
	})
}
