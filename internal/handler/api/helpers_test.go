//go:build unit

package api_test

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"roadready/internal/domain/auth"
	"roadready/internal/domain/user"
	"roadready/internal/handler/middleware"
	usecasemock "roadready/tests/mock/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	customerToken = "customer-token"
	strangerToken = "stranger-token"
	adminToken    = "admin-token"
)

// principals backs the bearer tokens above with a mocked validator so routes
// run behind the real auth middleware.
type principals struct {
	customer auth.Principal
	stranger auth.Principal
	admin    auth.Principal
}

func newPrincipals() principals {
	return principals{
		customer: auth.NewPrincipal(uuid.New(), user.RoleCustomer),
		stranger: auth.NewPrincipal(uuid.New(), user.RoleCustomer),
		admin:    auth.NewPrincipal(uuid.New(), user.RoleAdmin),
	}
}

func (p principals) middleware(ctrl *gomock.Controller) *middleware.AuthMiddleware {
	validator := usecasemock.NewMockTokenValidator(ctrl)
	validator.EXPECT().ValidateToken(gomock.Any()).DoAndReturn(func(token string) (auth.Principal, error) {
		switch token {
		case customerToken:
			return p.customer, nil
		case strangerToken:
			return p.stranger, nil
		case adminToken:
			return p.admin, nil
		}
		return auth.Principal{}, errors.New("invalid token")
	}).AnyTimes()
	return middleware.NewAuthMiddleware(validator)
}

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(middleware.ErrorHandler())
	return engine
}

type errorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail map[string]any `json:"detail"`
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}
