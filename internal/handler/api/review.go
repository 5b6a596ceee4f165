package api

import (
	"net/http"

	reqdto "roadready/internal/handler/dto/request"
	resdto "roadready/internal/handler/dto/response"
	"roadready/internal/handler/httperr"
	"roadready/internal/pkg/errs"
	"roadready/internal/usecase/commands"
	"roadready/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

var errNoReviewsForCar = errs.Define(errs.KindNotFound, "no reviews found for this car")

type ReviewHandler struct {
	cmds commands.ReviewCommands
	q    queries.ReviewQueries
}

func NewReviewHandler(cmds commands.ReviewCommands, q queries.ReviewQueries) *ReviewHandler {
	return &ReviewHandler{cmds: cmds, q: q}
}

// @Summary List reviews
// @Tags reviews
// @Produce json
// @Success 200 {array} resdto.ReviewResponse
// @Router /review [get]
func (h *ReviewHandler) GetAll(c *gin.Context) {
	views, err := h.q.GetAll(c.Request.Context())
	if err != nil {
		httperr.AbortWithKind(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReviewViews(views))
}

// @Summary Get review
// @Tags reviews
// @Produce json
// @Param id path string true "Review ID"
// @Success 200 {object} resdto.ReviewResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /review/{id} [get]
func (h *ReviewHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithKind(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReviewView(view))
}

// @Summary Car with its reviews
// @Description Returns an id-keyed graph: cars carry review_ids, reviews carry car_ref.
// @Description 404 when the car is unknown or has no reviews yet.
// @Tags reviews
// @Produce json
// @Param carId path string true "Car ID"
// @Success 200 {object} resdto.CarReviewGraph
// @Failure 404 {object} httperr.Response
// @Router /review/car/{carId} [get]
func (h *ReviewHandler) GetByCar(c *gin.Context) {
	carID, ok := parseIDParam(c, "carId")
	if !ok {
		return
	}
	cr, err := h.q.GetByCarID(c.Request.Context(), carID)
	if err != nil {
		httperr.AbortWithKind(c, err, nil)
		return
	}
	if len(cr.Reviews) == 0 {
		httperr.AbortWithKind(c, errNoReviewsForCar, nil)
		return
	}
	graph, err := resdto.FromCarReviews(cr)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, graph)
}

// @Summary Create review
// @Description Review a completed reservation you own
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateReviewRequest true "Create review request"
// @Success 201 {object} resdto.ReviewResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /review [post]
func (h *ReviewHandler) Create(c *gin.Context) {
	var req reqdto.CreateReviewRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.cmds.Submit(c.Request.Context(), principalOf(c), req.ToCommand())
	if err != nil {
		httperr.AbortWithKind(c, err, nil)
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), result.ReviewID)
	if err != nil {
		httperr.AbortWithKind(c, err, nil)
		return
	}
	c.Header("Location", "/api/review/"+result.ReviewID.String())
	c.JSON(http.StatusCreated, resdto.FromReviewView(view))
}

// @Summary Update review
// @Description Rating and comment are editable; the reservation and car references are not
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.UpdateReviewRequest true "Update review request"
// @Success 200 {object} resdto.ReviewResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /review [put]
func (h *ReviewHandler) Update(c *gin.Context) {
	var req reqdto.UpdateReviewRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.cmds.Update(c.Request.Context(), principalOf(c), req.ToCommand()); err != nil {
		httperr.AbortWithKind(c, err, nil)
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		httperr.AbortWithKind(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReviewView(view))
}

// @Summary Delete review
// @Description The author or an admin may delete
// @Tags reviews
// @Produce json
// @Security BearerAuth
// @Param id path string true "Review ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /review/{id} [delete]
func (h *ReviewHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.cmds.Delete(c.Request.Context(), id, principalOf(c)); err != nil {
		httperr.AbortWithKind(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id.String(), "deleted": true})
}
