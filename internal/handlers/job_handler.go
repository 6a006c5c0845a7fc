package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alikamatu/artisan-app-sub000/internal/middleware"
	"github.com/alikamatu/artisan-app-sub000/internal/models"
	"github.com/alikamatu/artisan-app-sub000/internal/services"
	"github.com/alikamatu/artisan-app-sub000/internal/services/dto"
)

type JobHandler struct {
	*BaseHandler
	jobService *services.JobService
}

func NewJobHandler(base *BaseHandler, jobService *services.JobService) *JobHandler {
	return &JobHandler{BaseHandler: base, jobService: jobService}
}

func (h *JobHandler) RegisterRoutes(r *gin.RouterGroup) {
	jobs := r.Group("/jobs")
	jobs.Use(middleware.AuthMiddleware())
	{
		jobs.GET("", h.ListOpen)
		jobs.GET("/my", h.ListMine)
		jobs.GET("/:jobId", h.Get)
		jobs.DELETE("/:jobId", h.Remove)
		jobs.POST("/:jobId/transition", h.Transition)
	}

	clientJobs := r.Group("/jobs")
	clientJobs.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleClient))
	{
		clientJobs.POST("", h.Create)
	}
}

func (h *JobHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateJobRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	job, err := h.jobService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

func (h *JobHandler) Get(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	job, err := h.jobService.Get(c.Request.Context(), c.Param("jobId"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) Transition(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.TransitionJobRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	job, err := h.jobService.Transition(c.Request.Context(), c.Param("jobId"), userID, models.JobStatus(req.Status))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) Remove(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.jobService.Remove(c.Request.Context(), c.Param("jobId"), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *JobHandler) ListMine(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	jobs, err := h.jobService.ListByClient(c.Request.Context(), userID, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

func (h *JobHandler) ListOpen(c *gin.Context) {
	page, limit := ParsePagination(c)

	jobs, err := h.jobService.ListOpen(c.Request.Context(), page, limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}
