package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"hotel-reservation/models"
	"hotel-reservation/services"
)

type RoomController struct {
	RoomSvc *services.RoomService
}

func NewRoomController(svc *services.RoomService) *RoomController {
	return &RoomController{RoomSvc: svc}
}

type createRoomRequest struct {
	Number          int              `json:"number" binding:"required,gt=0"`
	Capacity        int              `json:"capacity" binding:"required,gt=0"`
	Category        models.Category  `json:"category" binding:"required,oneof=BASIC MODERN LUXURY"`
	Price           decimal.Decimal  `json:"price"`
	Minibar         bool             `json:"minibar"`
	Breakfast       bool             `json:"breakfast"`
	AirConditioning bool             `json:"airConditioning"`
	TV              bool             `json:"tv"`
	Beds            []models.BedType `json:"beds" binding:"required,min=1,dive,oneof=SINGLE KING QUEEN"`
}

type availabilityRequest struct {
	Availability models.Availability `json:"availability" binding:"required,oneof=FREE OCCUPIED MAINTENANCE CLEANING"`
}

// POST /api/rooms
func (c *RoomController) CreateRoom(ctx *gin.Context) {
	var req createRoomRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		handleBindError(ctx, err)
		return
	}

	room, err := c.RoomSvc.Create(ctx.Request.Context(), models.RoomParams{
		Number:   req.Number,
		Capacity: req.Capacity,
		Category: req.Category,
		Price:    req.Price,
		Amenities: models.Amenities{
			Minibar:         req.Minibar,
			Breakfast:       req.Breakfast,
			AirConditioning: req.AirConditioning,
			TV:              req.TV,
		},
		BedTypes: req.Beds,
	})
	if err != nil {
		HandleServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, toRoomView(room))
}

// GET /api/rooms?availability=FREE
func (c *RoomController) GetRooms(ctx *gin.Context) {
	rooms, err := c.RoomSvc.List(ctx.Request.Context(), models.Availability(ctx.Query("availability")))
	if err != nil {
		HandleServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, mapViews(rooms, toRoomView))
}

// GET /api/rooms/:id
func (c *RoomController) GetRoom(ctx *gin.Context) {
	room, err := c.RoomSvc.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		HandleServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toRoomView(room))
}

// PUT|PATCH /api/rooms/:id
func (c *RoomController) UpdateRoom(ctx *gin.Context) {
	var p models.RoomPatch
	if err := ctx.ShouldBindJSON(&p); err != nil {
		handleBindError(ctx, err)
		return
	}

	room, err := c.RoomSvc.Update(ctx.Request.Context(), ctx.Param("id"), p)
	if err != nil {
		HandleServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toRoomView(room))
}

// PATCH /api/rooms/:id/availability
func (c *RoomController) ChangeAvailability(ctx *gin.Context) {
	var req availabilityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		handleBindError(ctx, err)
		return
	}

	room, err := c.RoomSvc.ChangeAvailability(ctx.Request.Context(), ctx.Param("id"), req.Availability)
	if err != nil {
		HandleServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toRoomView(room))
}

// DELETE /api/rooms/:id
func (c *RoomController) DeleteRoom(ctx *gin.Context) {
	if err := c.RoomSvc.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		HandleServiceError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
