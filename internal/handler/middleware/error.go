package middleware

import (
	"log/slog"
	"net/http"

	"roadready/internal/handler/httperr"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders errors that handlers attached with c.Error but did not
// write themselves. Public errors carry their response in Meta; private ones
// are mapped by kind.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}

		last := c.Errors.Last()
		if last.IsType(gin.ErrorTypePublic) {
			if resp, ok := last.Meta.(httperr.Response); ok {
				c.JSON(resp.Status, resp)
				return
			}
		}

		status := httperr.StatusFor(last.Err)
		resp := httperr.Response{Status: status}
		resp.Error.Message = http.StatusText(status)
		c.JSON(status, resp)
	}
}

func CustomRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				slog.Error("recovered from panic",
					"error", err,
					"path", c.Request.URL.Path,
					"request_id", GetRequestID(c))

				resp := httperr.Response{Status: http.StatusInternalServerError}
				resp.Error.Message = "Internal server error"

				c.AbortWithStatusJSON(http.StatusInternalServerError, resp)
			}
		}()
		c.Next()
	}
}
