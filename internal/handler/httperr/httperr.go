package httperr

import (
	"net/http"

	"roadready/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

var statusByKind = map[errs.Kind]int{
	errs.KindNotFound:               http.StatusNotFound,
	errs.KindConflict:               http.StatusConflict,
	errs.KindForbidden:              http.StatusForbidden,
	errs.KindInvalidInput:           http.StatusBadRequest,
	errs.KindInvalidStateTransition: http.StatusConflict,
	errs.KindImmutableRecord:        http.StatusConflict,
	errs.KindStoreFailure:           http.StatusInternalServerError,
}

// StatusFor maps the kind of err to an HTTP status. Unknown kinds are 500.
func StatusFor(err error) int {
	if status, ok := statusByKind[errs.KindOf(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// AbortWithKind renders err with the status of its kind. Server errors get a
// generic message and no detail.
func AbortWithKind(c *gin.Context, err error, detail any) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		AbortWithError(c, status, err, "Internal server error", nil)
		return
	}
	if detail == nil {
		detail = gin.H{"kind": errs.KindOf(err).String()}
	}
	AbortWithError(c, status, err, errs.PublicMessage(err), detail)
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}
