package api

import (
	"net/http"

	reqdto "roadready/internal/handler/dto/request"
	resdto "roadready/internal/handler/dto/response"
	"roadready/internal/handler/httperr"
	"roadready/internal/usecase/commands"
	"roadready/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CarHandler struct {
	cmds commands.CarCommands
	q    queries.CarQueries
}

func NewCarHandler(cmds commands.CarCommands, q queries.CarQueries) *CarHandler {
	return &CarHandler{cmds: cmds, q: q}
}

// @Summary List cars
// @Tags cars
// @Produce json
// @Success 200 {array} resdto.CarResponse
// @Router /car [get]
func (h *CarHandler) List(c *gin.Context) {
	views, err := h.q.List(c.Request.Context())
	if err != nil {
		httperr.AbortWithKind(c, err, nil)
		return
	}
	res, err := resdto.FromCarViews(views)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Get car
// @Tags cars
// @Produce json
// @Param id path string true "Car ID"
// @Success 200 {object} resdto.CarResponse
// @Failure 404 {object} httperr.Response
// @Router /car/{id} [get]
func (h *CarHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	h.respond(c, http.StatusOK, id)
}

// @Summary Create car
// @Tags cars
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CarRequest true "Car"
// @Success 201 {object} resdto.CarResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /car [post]
func (h *CarHandler) Create(c *gin.Context) {
	var req reqdto.CarRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.cmds.Create(c.Request.Context(), principalOf(c), req.ToCommand())
	if err != nil {
		httperr.AbortWithKind(c, err, nil)
		return
	}
	c.Header("Location", "/api/car/"+result.CarID.String())
	h.respond(c, http.StatusCreated, result.CarID)
}

// @Summary Update car
// @Tags cars
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Car ID"
// @Param request body reqdto.CarRequest true "Car"
// @Success 200 {object} resdto.CarResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /car/{id} [put]
func (h *CarHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req reqdto.CarRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.cmds.Update(c.Request.Context(), id, principalOf(c), req.ToCommand()); err != nil {
		httperr.AbortWithKind(c, err, nil)
		return
	}
	h.respond(c, http.StatusOK, id)
}

// @Summary Retire car
// @Description Retired cars stay readable but can no longer be booked
// @Tags cars
// @Produce json
// @Security BearerAuth
// @Param id path string true "Car ID"
// @Success 200 {object} resdto.CarResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /car/{id} [delete]
func (h *CarHandler) Retire(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.cmds.Retire(c.Request.Context(), id, principalOf(c)); err != nil {
		httperr.AbortWithKind(c, err, nil)
		return
	}
	h.respond(c, http.StatusOK, id)
}

func (h *CarHandler) respond(c *gin.Context, status int, id uuid.UUID) {
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithKind(c, err, nil)
		return
	}
	res, err := resdto.FromCarView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(status, res)
}
