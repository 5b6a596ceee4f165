//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"roadready/internal/domain/auth"
	"roadready/internal/domain/reservation"
	"roadready/internal/handler/api"
	resdto "roadready/internal/handler/dto/response"
	"roadready/internal/pkg/errs"
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

type ReservationHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockReservationCommands
	mockQueries  *queriesmock.MockReservationQueries
	principals   principals
	now          time.Time
}

func (s *ReservationHandlerTestSuite) SetupTest() {
	s.router = newEngine()
	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockReservationCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockReservationQueries(s.mockCtrl)
	s.principals = newPrincipals()
	s.now = time.Date(2025, 1, 2, 12, 0, 0, 0, time.UTC)

	h := api.NewReservationHandler(s.mockCommands, s.mockQueries)
	mw := s.principals.middleware(s.mockCtrl)

	g := s.router.Group("/reservation", mw.RequireAuth())
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("/:id/cancel", h.Cancel)
	g.POST("/:id/complete", h.Complete)
}

func (s *ReservationHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerTestSuite))
}

func (s *ReservationHandlerTestSuite) TestCreate() {
	url := "/reservation"
	b := builder.NewReservationBuilder().WithUserID(s.principals.customer.UserID)
	reqBody := b.BuildRequestDTO()
	view := b.BuildView(s.now)

	s.Run("success: 201 with the computed state and Location", func() {
		s.mockCommands.EXPECT().
			RequestBooking(gomock.Any(), s.principals.customer, commands.BookingRequest{
				CarID: reqBody.CarID, StartDate: reqBody.StartDate, EndDate: reqBody.EndDate,
			}).
			Return(&commands.BookingResult{ReservationID: view.ID}, nil)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID, s.principals.customer).Return(view, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, customerToken)

		var body resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(view.ID, body.ID)
		s.Equal(reservation.StateActive.String(), body.State)
		s.Equal(int64(3), body.Nights)
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Location": "/api/reservation/" + view.ID.String()})
	})

	s.Run("error: 409 names the conflicting reservation", func() {
		blocking := uuid.New()
		s.mockCommands.EXPECT().RequestBooking(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errs.Wrap(&reservation.OverlapError{ConflictingID: blocking}, "request booking"))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, customerToken)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
		body := decodeError(s.T(), rec)
		s.Equal("Conflict", body.Detail["kind"])
		s.Equal(blocking.String(), body.Detail["conflicting_reservation_id"])
	})

	s.Run("error: kinds map to statuses", func() {
		testCases := []struct {
			name   string
			err    error
			status int
		}{
			{name: "unknown car", err: commands.ErrCarNotFound, status: http.StatusNotFound},
			{name: "start in the past", err: reservation.ErrStartInPast, status: http.StatusBadRequest},
			{name: "inverted period", err: reservation.ErrInvalidPeriod, status: http.StatusBadRequest},
			{name: "store failure", err: errs.WithKind(errs.New("boom"), errs.KindStoreFailure, "store failure"), status: http.StatusInternalServerError},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().RequestBooking(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, tc.err)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, customerToken)
				httptest.AssertErrorResponse(s.T(), rec, tc.status, "")
			})
		}
	})

	s.Run("error: 400 on malformed body", func() {
		for _, field := range []string{"car_id", "start_date", "end_date"} {
			s.Run("missing "+field, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, testutil.Field(field, nil))
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, customerToken)
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
			})
		}
	})

	s.Run("error: 401 without a token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Access token required")
	})
}

func (s *ReservationHandlerTestSuite) TestList() {
	views := []*queries.ReservationView{
		builder.NewReservationBuilder().WithUserID(s.principals.customer.UserID).BuildView(s.now),
		builder.NewReservationBuilder().WithUserID(s.principals.customer.UserID).BuildView(s.now),
	}

	s.Run("success: passes cursor and limit through", func() {
		s.mockQueries.EXPECT().
			List(gomock.Any(), s.principals.customer, &queries.Cursor{After: "abc"}, 2).
			Return(queries.Page[*queries.ReservationView]{Items: views, Next: &queries.Cursor{After: "next"}}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservation?limit=2&after=abc", nil, customerToken)

		var body resdto.ReservationPageResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body.Reservations, 2)
		s.Equal("next", body.NextCursor)
	})

	s.Run("success: default limit without a cursor", func() {
		s.mockQueries.EXPECT().
			List(gomock.Any(), s.principals.admin, (*queries.Cursor)(nil), queries.DefaultListLimit).
			Return(queries.Page[*queries.ReservationView]{}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservation?limit=zero", nil, adminToken)

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.NotContains(body, "next_cursor")
	})

	s.Run("error: bad cursor is 400", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(queries.Page[*queries.ReservationView]{}, queries.ErrInvalidCursor)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservation?after=garbage", nil, customerToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "invalid cursor")
	})
}

func (s *ReservationHandlerTestSuite) TestGet() {
	view := builder.NewReservationBuilder().WithUserID(s.principals.customer.UserID).BuildView(s.now)
	url := "/reservation/" + view.ID.String()

	s.Run("success", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID, s.principals.customer).Return(view, nil)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, customerToken)

		var body resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(view.CarID, body.CarID)
	})

	s.Run("error: another customer is 403", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID, s.principals.stranger).Return(nil, auth.ErrForbidden)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, strangerToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")
	})

	s.Run("error: 400 on a malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservation/not-a-uuid", nil, customerToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})
}

func (s *ReservationHandlerTestSuite) TestCancel() {
	b := builder.NewReservationBuilder().WithUserID(s.principals.customer.UserID).WithState(reservation.StateCancelled)
	view := b.BuildView(s.now)
	url := "/reservation/" + view.ID.String() + "/cancel"

	s.Run("success: returns the cancelled reservation", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), view.ID, s.principals.customer).Return(nil)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID, s.principals.customer).Return(view, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, customerToken)

		var body resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(reservation.StateCancelled.String(), body.State)
	})

	s.Run("error: completed reservations are 409", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), view.ID, s.principals.customer).Return(reservation.ErrAlreadyCompleted)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, customerToken)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
		s.Equal("InvalidStateTransition", decodeError(s.T(), rec).Detail["kind"])
	})

	s.Run("error: unknown reservation is 404", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), view.ID, s.principals.customer).Return(commands.ErrReservationNotFound)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, customerToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})
}

func (s *ReservationHandlerTestSuite) TestComplete() {
	view := builder.NewReservationBuilder().WithState(reservation.StateCompleted).BuildView(s.now)
	url := "/reservation/" + view.ID.String() + "/complete"

	s.Run("success: admin completes", func() {
		s.mockCommands.EXPECT().Complete(gomock.Any(), view.ID, s.principals.admin).Return(nil)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID, s.principals.admin).Return(view, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, adminToken)

		var body resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(reservation.StateCompleted.String(), body.State)
	})

	s.Run("error: customers are refused by the core", func() {
		s.mockCommands.EXPECT().Complete(gomock.Any(), view.ID, s.principals.customer).Return(auth.ErrRoleRequired)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, customerToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")
	})

	s.Run("error: not active is 409", func() {
		s.mockCommands.EXPECT().Complete(gomock.Any(), view.ID, s.principals.admin).Return(reservation.ErrNotActive)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, adminToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
	})
}
