package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alikamatu/artisan-app-sub000/internal/middleware"
	"github.com/alikamatu/artisan-app-sub000/internal/models"
	"github.com/alikamatu/artisan-app-sub000/internal/services"
	"github.com/alikamatu/artisan-app-sub000/internal/services/dto"
	"github.com/alikamatu/artisan-app-sub000/pkg/apperrors"
)

type ReviewHandler struct {
	*BaseHandler
	reviewService *services.ReviewService
}

func NewReviewHandler(base *BaseHandler, reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{BaseHandler: base, reviewService: reviewService}
}

func (h *ReviewHandler) RegisterRoutes(r *gin.RouterGroup) {
	public := r.Group("/reviews")
	{
		public.GET("/:reviewId", h.Get)
		public.GET("/workers/:workerId", h.ListByWorker)
		public.GET("/workers/:workerId/rating", h.GetWorkerRating)
	}

	reviews := r.Group("/reviews")
	reviews.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleClient))
	{
		reviews.POST("", h.Create)
		reviews.GET("/can-create", h.CanCreate)
		reviews.PUT("/:reviewId", h.Update)
		reviews.DELETE("/:reviewId", h.Delete)
	}
}

func (h *ReviewHandler) Get(c *gin.Context) {
	review, err := h.reviewService.Get(c.Request.Context(), c.Param("reviewId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

func (h *ReviewHandler) ListByWorker(c *gin.Context) {
	page, limit := ParsePagination(c)

	reviews, err := h.reviewService.ListByWorker(c.Request.Context(), c.Param("workerId"), page, limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

func (h *ReviewHandler) GetWorkerRating(c *gin.Context) {
	rating, err := h.reviewService.GetWorkerRating(c.Request.Context(), c.Param("workerId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rating)
}

func (h *ReviewHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateReviewRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	review, err := h.reviewService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

func (h *ReviewHandler) CanCreate(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	bookingID := c.Query("booking_id")
	if bookingID == "" {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Missing required query parameter: booking_id"))
		return
	}

	resp, err := h.reviewService.CanReview(c.Request.Context(), bookingID, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReviewHandler) Update(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateReviewRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	review, err := h.reviewService.Update(c.Request.Context(), c.Param("reviewId"), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.reviewService.Delete(c.Request.Context(), c.Param("reviewId"), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
