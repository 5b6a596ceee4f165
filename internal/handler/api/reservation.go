package api

import (
	"errors"
	"net/http"

	"roadready/internal/domain/reservation"
	reqdto "roadready/internal/handler/dto/request"
	resdto "roadready/internal/handler/dto/response"
	"roadready/internal/handler/httperr"
	"roadready/internal/pkg/errs"
	"roadready/internal/usecase/commands"
	"roadready/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReservationHandler struct {
	cmds commands.ReservationCommands
	q    queries.ReservationQueries
}

func NewReservationHandler(cmds commands.ReservationCommands, q queries.ReservationQueries) *ReservationHandler {
	return &ReservationHandler{cmds: cmds, q: q}
}

// @Summary Book a car
// @Description Confirms a reservation for [start_date, end_date). Overlapping confirmed bookings on the same car are rejected with 409.
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateReservationRequest true "Booking request"
// @Success 201 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /reservation [post]
func (h *ReservationHandler) Create(c *gin.Context) {
	var req reqdto.CreateReservationRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.cmds.RequestBooking(c.Request.Context(), principalOf(c), req.ToCommand())
	if err != nil {
		httperr.AbortWithKind(c, err, bookingErrorDetail(err))
		return
	}
	c.Header("Location", "/api/reservation/"+result.ReservationID.String())
	h.respond(c, http.StatusCreated, result.ReservationID)
}

// bookingErrorDetail names the blocking reservation when the overlap is known.
func bookingErrorDetail(err error) any {
	var overlap *reservation.OverlapError
	if errors.As(err, &overlap) && overlap.ConflictingID != uuid.Nil {
		return gin.H{
			"kind":                       errs.KindOf(err).String(),
			"conflicting_reservation_id": overlap.ConflictingID.String(),
		}
	}
	return nil
}

// @Summary List reservations
// @Description Own reservations newest first; admins see everyone's
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max items (default 20)"
// @Param after query string false "Cursor for keyset pagination"
// @Success 200 {object} resdto.ReservationPageResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /reservation [get]
func (h *ReservationHandler) List(c *gin.Context) {
	cursor, limit := pageParams(c)
	page, err := h.q.List(c.Request.Context(), principalOf(c), cursor, limit)
	if err != nil {
		httperr.AbortWithKind(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationPage(page))
}

// @Summary Get reservation
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /reservation/{id} [get]
func (h *ReservationHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	h.respond(c, http.StatusOK, id)
}

// @Summary Cancel reservation
// @Description Cancelling twice is a no-op. Completed reservations cannot be cancelled.
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /reservation/{id}/cancel [post]
func (h *ReservationHandler) Cancel(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.cmds.Cancel(c.Request.Context(), id, principalOf(c)); err != nil {
		httperr.AbortWithKind(c, err, nil)
		return
	}
	h.respond(c, http.StatusOK, id)
}

// @Summary Complete reservation
// @Description Admin only. Allowed while the rental is active; frees the rest of the interval.
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /reservation/{id}/complete [post]
func (h *ReservationHandler) Complete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.cmds.Complete(c.Request.Context(), id, principalOf(c)); err != nil {
		httperr.AbortWithKind(c, err, nil)
		return
	}
	h.respond(c, http.StatusOK, id)
}

func (h *ReservationHandler) respond(c *gin.Context, status int, id uuid.UUID) {
	view, err := h.q.GetByID(c.Request.Context(), id, principalOf(c))
	if err != nil {
		httperr.AbortWithKind(c, err, nil)
		return
	}
	c.JSON(status, resdto.FromReservationView(view))
}
