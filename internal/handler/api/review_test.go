//go:build unit

package api_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"roadready/internal/domain/auth"
	domreview "roadready/internal/domain/review"
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
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReviewHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockReviewCommands
	mockQueries  *queriesmock.MockReviewQueries
	principals   principals
}

func (s *ReviewHandlerTestSuite) SetupTest() {
	s.router = newEngine()
	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockReviewCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockReviewQueries(s.mockCtrl)
	s.principals = newPrincipals()

	h := api.NewReviewHandler(s.mockCommands, s.mockQueries)
	requireAuth := s.principals.middleware(s.mockCtrl).RequireAuth()

	s.router.GET("/review", h.GetAll)
	s.router.GET("/review/:id", h.Get)
	s.router.GET("/review/car/:carId", h.GetByCar)
	s.router.POST("/review", requireAuth, h.Create)
	s.router.PUT("/review", requireAuth, h.Update)
	s.router.DELETE("/review/:id", requireAuth, h.Delete)
}

func (s *ReviewHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReviewHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReviewHandlerTestSuite))
}

type testCaseReview struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *ReviewHandlerTestSuite) TestCreate() {
	url := "/review"

	b := builder.NewReviewBuilder().WithUserID(s.principals.customer.UserID)
	reqBody := b.BuildCreateRequestDTO()
	returnView := b.BuildViewQuery()
	expectedResult := &commands.SubmitReviewResult{ReviewID: returnView.ID}

	bound := []testCaseReview{
		{name: "rating boundary OK (1)", mutate: testutil.Field("rating", 1), expectCode: http.StatusCreated},
		{name: "rating boundary OK (5)", mutate: testutil.Field("rating", 5), expectCode: http.StatusCreated},
		{name: "rating boundary invalid (0)", mutate: testutil.Field("rating", 0), expectCode: http.StatusBadRequest},
		{name: "rating boundary invalid (6)", mutate: testutil.Field("rating", 6), expectCode: http.StatusBadRequest},
		{name: "comment length OK (1000 chars)", mutate: testutil.Field("comment", strings.Repeat("a", 1000)), expectCode: http.StatusCreated},
		{name: "comment length invalid (1001 chars)", mutate: testutil.Field("comment", strings.Repeat("a", 1001)), expectCode: http.StatusBadRequest},
	}

	missing := []testCaseReview{
		{name: "missing field: reservation_id", mutate: testutil.Field("reservation_id", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: rating", mutate: testutil.Field("rating", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: comment", mutate: testutil.Field("comment", nil), expectCode: http.StatusBadRequest},
	}

	empty := []testCaseReview{
		{name: "empty comment", mutate: testutil.Field("comment", ""), expectCode: http.StatusBadRequest},
	}

	s.Run("success: 201 with Location and the full record", func() {
		s.mockCommands.EXPECT().
			Submit(gomock.Any(), s.principals.customer, commands.SubmitReviewRequest{
				ReservationID: reqBody.ReservationID, Rating: reqBody.Rating, Comment: reqBody.Comment,
			}).
			Return(expectedResult, nil)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), returnView.ID).Return(returnView, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, customerToken)

		var body resdto.ReviewResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(resdto.FromReviewView(returnView).ID, body.ID)
		s.Equal(returnView.CarID.String(), body.CarID)
		s.Equal(returnView.Comment, body.Comment)
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Location": "/api/review/" + returnView.ID.String()})
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		for _, group := range [][]testCaseReview{bound, missing, empty} {
			for _, tc := range group {
				s.Run(tc.name, func() {
					requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)

					if tc.expectCode == http.StatusCreated {
						s.mockCommands.EXPECT().Submit(gomock.Any(), gomock.Any(), gomock.Any()).Return(expectedResult, nil)
						s.mockQueries.EXPECT().GetByID(gomock.Any(), returnView.ID).Return(returnView, nil)
					}
					rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, customerToken)
					if tc.expectCode == http.StatusCreated {
						httptest.AssertSuccessResponse(s.T(), rec, tc.expectCode, nil)
					} else {
						httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
					}
				})
			}
		}
	})

	s.Run("error: eligibility failures map by kind", func() {
		testCases := []struct {
			name   string
			err    error
			status int
		}{
			{name: "reservation not completed", err: domreview.ErrReservationNotEligible, status: http.StatusConflict},
			{name: "not the renter", err: domreview.ErrNotReservationOwner, status: http.StatusForbidden},
			{name: "already reviewed", err: domreview.ErrReviewAlreadyExists, status: http.StatusConflict},
			{name: "unknown reservation", err: commands.ErrReservationNotFound, status: http.StatusNotFound},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Submit(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, tc.err)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, customerToken)
				httptest.AssertErrorResponse(s.T(), rec, tc.status, "")
			})
		}
	})

	s.Run("error: 401 without a token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "")
	})
}

// ================================================================================
// TestUpdate
// ================================================================================

func (s *ReviewHandlerTestSuite) TestUpdate() {
	url := "/review"
	b := builder.NewReviewBuilder().WithUserID(s.principals.customer.UserID).WithRating(3)
	reqBody := b.BuildUpdateRequestDTO()
	returnView := b.BuildViewQuery()

	s.Run("success: id travels in the body", func() {
		s.mockCommands.EXPECT().
			Update(gomock.Any(), s.principals.customer, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ auth.Principal, req commands.UpdateReviewRequest) error {
				s.Equal(returnView.ID, req.ID)
				s.Require().NotNil(req.Rating)
				s.Equal(3, *req.Rating)
				return nil
			})
		s.mockQueries.EXPECT().GetByID(gomock.Any(), returnView.ID).Return(returnView, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody, customerToken)

		var body resdto.ReviewResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(3, body.Rating)
	})

	s.Run("error: 400 without an id", func() {
		requestMap := testutil.DtoMap(s.T(), reqBody, testutil.Field("id", nil))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, requestMap, customerToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: changing the car reference is 400", func() {
		s.mockCommands.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(domreview.ErrImmutableReference)
		requestMap := testutil.DtoMap(s.T(), reqBody, testutil.Field("car_id", uuid.New().String()))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, requestMap, customerToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: someone else's review is 403", func() {
		s.mockCommands.EXPECT().Update(gomock.Any(), s.principals.stranger, gomock.Any()).Return(auth.ErrForbidden)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody, strangerToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")
	})
}

// ================================================================================
// TestDelete
// ================================================================================

func (s *ReviewHandlerTestSuite) TestDelete() {
	id := uuid.New()
	url := "/review/" + id.String()

	s.Run("success: 200", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), id, s.principals.admin).Return(nil)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, adminToken)

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(id.String(), body["id"])
	})

	s.Run("error: unknown review is 404", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), id, s.principals.customer).Return(commands.ErrReviewNotFound)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, customerToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "review not found")
	})
}

// ================================================================================
// Reads
// ================================================================================

func (s *ReviewHandlerTestSuite) TestGet() {
	view := builder.NewReviewBuilder().BuildViewQuery()

	s.Run("success", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/review/"+view.ID.String(), nil, "")

		var body resdto.ReviewResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(view.Rating, body.Rating)
	})

	s.Run("error: 404", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(nil, queries.ErrReviewNotFound)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/review/"+view.ID.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})

	s.Run("error: 400 on a malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/review/xyz", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})
}

func (s *ReviewHandlerTestSuite) TestGetAll() {
	views := []*queries.ReviewView{builder.NewReviewBuilder().BuildViewQuery(), builder.NewReviewBuilder().BuildViewQuery()}
	s.mockQueries.EXPECT().GetAll(gomock.Any()).Return(views, nil)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/review", nil, "")

	var body []resdto.ReviewResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
	s.Len(body, 2)
}

func (s *ReviewHandlerTestSuite) TestGetByCar() {
	car := builder.NewCarBuilder().BuildView()
	first := builder.NewReviewBuilder().WithCarID(car.ID).BuildViewQuery()
	second := builder.NewReviewBuilder().WithCarID(car.ID).BuildViewQuery()
	url := "/review/car/" + car.ID.String()

	s.Run("success: id-keyed graph", func() {
		s.mockQueries.EXPECT().GetByCarID(gomock.Any(), car.ID).
			Return(&queries.CarReviews{Car: car, Reviews: []*queries.ReviewView{first, second}}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var body struct {
			Cars map[string]struct {
				Make      string   `json:"make"`
				ReviewIDs []string `json:"review_ids"`
			} `json:"cars"`
			Reviews []struct {
				ID     string `json:"id"`
				CarRef string `json:"car_ref"`
			} `json:"reviews"`
		}
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)

		node, ok := body.Cars[car.ID.String()]
		s.Require().True(ok)
		s.Equal(car.Make, node.Make)
		s.Equal([]string{first.ID.String(), second.ID.String()}, node.ReviewIDs)
		s.Require().Len(body.Reviews, 2)
		for _, r := range body.Reviews {
			s.Equal(car.ID.String(), r.CarRef)
		}
	})

	s.Run("error: car without reviews is 404", func() {
		s.mockQueries.EXPECT().GetByCarID(gomock.Any(), car.ID).
			Return(&queries.CarReviews{Car: car, Reviews: []*queries.ReviewView{}}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		body := httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "no reviews found for this car")
		s.Equal("NotFound", body.Detail["kind"])
	})

	s.Run("error: unknown car is 404", func() {
		s.mockQueries.EXPECT().GetByCarID(gomock.Any(), car.ID).Return(nil, queries.ErrCarNotFound)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "car not found")
	})
}
