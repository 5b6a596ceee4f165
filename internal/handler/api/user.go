package api

import (
	"net/http"

	resdto "roadready/internal/handler/dto/response"
	"roadready/internal/handler/httperr"
	"roadready/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	q queries.UserQueries
}

func NewUserHandler(q queries.UserQueries) *UserHandler {
	return &UserHandler{q: q}
}

// @Summary List users
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {array} resdto.UserResponse
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /user [get]
func (h *UserHandler) List(c *gin.Context) {
	views, err := h.q.List(c.Request.Context(), principalOf(c))
	if err != nil {
		httperr.AbortWithKind(c, err, nil)
		return
	}
	res, err := resdto.FromUserViews(views)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Get user
// @Description Readable by the user themselves or an admin
// @Tags users
// @Security BearerAuth
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} resdto.UserResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /user/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id, principalOf(c))
	if err != nil {
		httperr.AbortWithKind(c, err, nil)
		return
	}
	res, err := resdto.FromUserView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}
