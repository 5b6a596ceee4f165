package api

import (
	"net/http"

	reqdto "roadready/internal/handler/dto/request"
	resdto "roadready/internal/handler/dto/response"
	"roadready/internal/handler/httperr"
	"roadready/internal/usecase/commands"
	"roadready/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	cmds commands.PaymentCommands
	q    queries.PaymentQueries
}

func NewPaymentHandler(cmds commands.PaymentCommands, q queries.PaymentQueries) *PaymentHandler {
	return &PaymentHandler{cmds: cmds, q: q}
}

// @Summary Settle a reservation
// @Description Charges nights times the car's daily rate. One payment per reservation.
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.SettlePaymentRequest true "Settle request"
// @Success 201 {object} resdto.PaymentResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /payment [post]
func (h *PaymentHandler) Settle(c *gin.Context) {
	var req reqdto.SettlePaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.cmds.Settle(c.Request.Context(), req.ReservationID, principalOf(c))
	if err != nil {
		httperr.AbortWithKind(c, err, nil)
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), result.PaymentID, principalOf(c))
	if err != nil {
		httperr.AbortWithKind(c, err, nil)
		return
	}
	c.Header("Location", "/api/payment/"+result.PaymentID.String())
	c.JSON(http.StatusCreated, resdto.FromPaymentView(view))
}

// @Summary List payments
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max items (default 20)"
// @Param after query string false "Cursor for keyset pagination"
// @Success 200 {object} resdto.PaymentPageResponse
// @Failure 400 {object} httperr.Response
// @Router /payment [get]
func (h *PaymentHandler) List(c *gin.Context) {
	cursor, limit := pageParams(c)
	page, err := h.q.List(c.Request.Context(), principalOf(c), cursor, limit)
	if err != nil {
		httperr.AbortWithKind(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPaymentPage(page))
}

// @Summary Get payment
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payment ID"
// @Success 200 {object} resdto.PaymentResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /payment/{id} [get]
func (h *PaymentHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id, principalOf(c))
	if err != nil {
		httperr.AbortWithKind(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPaymentView(view))
}

// @Summary Amend payment
// @Description Payments are immutable once settled; this always fails with 409.
// @Tags payments
// @Security BearerAuth
// @Param id path string true "Payment ID"
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /payment/{id} [put]
func (h *PaymentHandler) Amend(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.cmds.Amend(c.Request.Context(), id, principalOf(c)); err != nil {
		httperr.AbortWithKind(c, err, nil)
		return
	}
	c.Status(http.StatusNoContent)
}
