package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alikamatu/artisan-app-sub000/internal/middleware"
	"github.com/alikamatu/artisan-app-sub000/internal/models"
	"github.com/alikamatu/artisan-app-sub000/internal/services"
	"github.com/alikamatu/artisan-app-sub000/internal/services/dto"
)

type BookingHandler struct {
	*BaseHandler
	bookingService *services.BookingService
}

func NewBookingHandler(base *BaseHandler, bookingService *services.BookingService) *BookingHandler {
	return &BookingHandler{BaseHandler: base, bookingService: bookingService}
}

func (h *BookingHandler) RegisterRoutes(r *gin.RouterGroup) {
	bookings := r.Group("/bookings")
	bookings.Use(middleware.AuthMiddleware())
	{
		bookings.GET("", h.ListMine)
		bookings.GET("/:bookingId", h.Get)
		bookings.PATCH("/:bookingId", h.Update)
		bookings.POST("/:bookingId/complete", h.Complete)
		bookings.POST("/:bookingId/cancel", h.Cancel)
	}

	clientBookings := r.Group("/bookings")
	clientBookings.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleClient))
	{
		clientBookings.POST("", h.Create)
	}
}

func (h *BookingHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateBookingRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	booking, err := h.bookingService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

func (h *BookingHandler) Get(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	booking, err := h.bookingService.Get(c.Request.Context(), c.Param("bookingId"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) Update(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateBookingRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	booking, err := h.bookingService.Update(c.Request.Context(), c.Param("bookingId"), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) Complete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CompleteBookingRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	booking, err := h.bookingService.MarkCompleted(c.Request.Context(), c.Param("bookingId"), userID, req.CompletionProof)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CancelBookingRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	booking, err := h.bookingService.Cancel(c.Request.Context(), c.Param("bookingId"), userID, req.Reason)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) ListMine(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	page, limit := ParsePagination(c)

	bookings, err := h.bookingService.ListForUser(c.Request.Context(), userID, page, limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}
