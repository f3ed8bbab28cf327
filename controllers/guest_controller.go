package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-reservation/models"
	"hotel-reservation/services"
)

type GuestController struct {
	GuestSvc *services.GuestService
}

func NewGuestController(svc *services.GuestService) *GuestController {
	return &GuestController{GuestSvc: svc}
}

type createGuestRequest struct {
	FirstName string `json:"firstName" binding:"required,max=100"`
	LastName  string `json:"lastName" binding:"required,max=100"`
	CPF       string `json:"cpf" binding:"required"`
	Email     string `json:"email" binding:"required"`
}

// POST /api/guests
func (c *GuestController) CreateGuest(ctx *gin.Context) {
	var req createGuestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		handleBindError(ctx, err)
		return
	}

	guest, err := c.GuestSvc.Create(ctx.Request.Context(), services.GuestInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		CPF:       req.CPF,
		Email:     req.Email,
	})
	if err != nil {
		HandleServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, toGuestView(guest))
}

// GET /api/guests
func (c *GuestController) GetGuests(ctx *gin.Context) {
	guests, err := c.GuestSvc.List(ctx.Request.Context())
	if err != nil {
		HandleServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, mapViews(guests, toGuestView))
}

// GET /api/guests/:id
func (c *GuestController) GetGuestByID(ctx *gin.Context) {
	guest, err := c.GuestSvc.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		HandleServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toGuestView(guest))
}

// GET /api/guests/cpf/:cpf
func (c *GuestController) GetGuestByCPF(ctx *gin.Context) {
	guest, err := c.GuestSvc.GetByCPF(ctx.Request.Context(), ctx.Param("cpf"))
	if err != nil {
		HandleServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toGuestView(guest))
}

// PUT|PATCH /api/guests/:id
func (c *GuestController) UpdateGuest(ctx *gin.Context) {
	var p models.GuestPatch
	if err := ctx.ShouldBindJSON(&p); err != nil {
		handleBindError(ctx, err)
		return
	}

	guest, err := c.GuestSvc.Update(ctx.Request.Context(), ctx.Param("id"), p)
	if err != nil {
		HandleServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toGuestView(guest))
}

// DELETE /api/guests/:id
func (c *GuestController) DeleteGuest(ctx *gin.Context) {
	if err := c.GuestSvc.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		HandleServiceError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
