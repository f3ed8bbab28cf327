package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"hotel-reservation/apperror"
	"hotel-reservation/models"
	"hotel-reservation/patch"
	"hotel-reservation/repository"
	"hotel-reservation/services"
)

type ReservationController struct {
	ReservationSvc *services.ReservationService
}

func NewReservationController(svc *services.ReservationService) *ReservationController {
	return &ReservationController{ReservationSvc: svc}
}

type createReservationRequest struct {
	RoomID   string `json:"roomId" binding:"required"`
	GuestID  string `json:"guestId" binding:"required"`
	CheckIn  string `json:"checkIn" binding:"required,datetime=2006-01-02"`
	CheckOut string `json:"checkOut" binding:"required,datetime=2006-01-02"`
}

type updateReservationRequest struct {
	RoomID   patch.Field[string] `json:"roomId"`
	GuestID  patch.Field[string] `json:"guestId"`
	CheckIn  patch.Field[string] `json:"checkIn"`
	CheckOut patch.Field[string] `json:"checkOut"`
}

func (r updateReservationRequest) toPatch() (services.ReservationPatch, error) {
	var c apperror.Collector
	p := services.ReservationPatch{RoomID: r.RoomID, GuestID: r.GuestID}
	p.CheckIn = dateField(&c, "checkIn", r.CheckIn)
	p.CheckOut = dateField(&c, "checkOut", r.CheckOut)
	return p, c.Err()
}

func dateField(c *apperror.Collector, field string, f patch.Field[string]) patch.Field[time.Time] {
	if f.IsNull() {
		return patch.Null[time.Time]()
	}
	raw, ok := f.Get()
	if !ok {
		return patch.Field[time.Time]{}
	}
	d, err := parseDate(field, raw)
	if err != nil {
		c.Merge(err)
		return patch.Field[time.Time]{}
	}
	return patch.Of(d)
}

// POST /api/reservations
func (c *ReservationController) CreateReservation(ctx *gin.Context) {
	var req createReservationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		handleBindError(ctx, err)
		return
	}

	var col apperror.Collector
	checkIn, err := parseDate("checkIn", req.CheckIn)
	col.Merge(err)
	checkOut, err := parseDate("checkOut", req.CheckOut)
	col.Merge(err)
	if err := col.Err(); err != nil {
		HandleServiceError(ctx, err)
		return
	}

	res, err := c.ReservationSvc.Create(ctx.Request.Context(), services.ReservationInput{
		RoomID:   req.RoomID,
		GuestID:  req.GuestID,
		CheckIn:  checkIn,
		CheckOut: checkOut,
	})
	if err != nil {
		HandleServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, toReservationView(res))
}

// GET /api/reservations?status=&roomId=&guestId=&active=
func (c *ReservationController) GetReservations(ctx *gin.Context) {
	filter := repository.ReservationFilter{
		Status:  models.ReservationStatus(ctx.Query("status")),
		RoomID:  ctx.Query("roomId"),
		GuestID: ctx.Query("guestId"),
	}
	if raw := ctx.Query("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			HandleServiceError(ctx, apperror.Validation("active", "must be true or false"))
			return
		}
		filter.ActiveOnly = active
	}

	list, err := c.ReservationSvc.List(ctx.Request.Context(), filter)
	if err != nil {
		HandleServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, mapViews(list, toReservationView))
}

// GET /api/reservations/:id
func (c *ReservationController) GetReservation(ctx *gin.Context) {
	res, err := c.ReservationSvc.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		HandleServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toReservationView(res))
}

// PUT|PATCH /api/reservations/:id
func (c *ReservationController) UpdateReservation(ctx *gin.Context) {
	var req updateReservationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		handleBindError(ctx, err)
		return
	}
	p, err := req.toPatch()
	if err != nil {
		HandleServiceError(ctx, err)
		return
	}

	res, err := c.ReservationSvc.Update(ctx.Request.Context(), ctx.Param("id"), p)
	if err != nil {
		HandleServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toReservationView(res))
}

// POST /api/reservations/:id/confirm
func (c *ReservationController) ConfirmReservation(ctx *gin.Context) {
	c.respond(ctx, c.ReservationSvc.Confirm)
}

// POST /api/reservations/:id/check-in
func (c *ReservationController) CheckIn(ctx *gin.Context) {
	c.respond(ctx, c.ReservationSvc.CheckIn)
}

// POST /api/reservations/:id/check-out
func (c *ReservationController) CheckOut(ctx *gin.Context) {
	c.respond(ctx, c.ReservationSvc.CheckOut)
}

// DELETE /api/reservations/:id cancels; reservations are never removed.
func (c *ReservationController) CancelReservation(ctx *gin.Context) {
	if _, err := c.ReservationSvc.Cancel(ctx.Request.Context(), ctx.Param("id")); err != nil {
		HandleServiceError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (c *ReservationController) respond(
	ctx *gin.Context,
	op func(ctx context.Context, id string) (*models.Reservation, error),
) {
	res, err := op(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		HandleServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toReservationView(res))
}
