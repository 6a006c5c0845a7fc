package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alikamatu/artisan-app-sub000/internal/middleware"
	"github.com/alikamatu/artisan-app-sub000/internal/models"
	"github.com/alikamatu/artisan-app-sub000/internal/services"
	"github.com/alikamatu/artisan-app-sub000/internal/services/dto"
)

type ApplicationHandler struct {
	*BaseHandler
	applicationService *services.ApplicationService
}

func NewApplicationHandler(base *BaseHandler, applicationService *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{BaseHandler: base, applicationService: applicationService}
}

func (h *ApplicationHandler) RegisterRoutes(r *gin.RouterGroup) {
	apps := r.Group("/applications")
	apps.Use(middleware.AuthMiddleware())
	{
		apps.GET("/:applicationId", h.Get)
		apps.GET("/my", h.ListMine)
		apps.POST("/:applicationId/accept", h.Accept)
		apps.POST("/:applicationId/reject", h.Reject)
		apps.POST("/:applicationId/withdraw", h.Withdraw)
	}

	workerApps := r.Group("/applications")
	workerApps.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleWorker))
	{
		workerApps.POST("", h.Submit)
	}

	jobApps := r.Group("/jobs/:jobId/applications")
	jobApps.Use(middleware.AuthMiddleware())
	{
		jobApps.GET("", h.ListByJob)
	}
}

func (h *ApplicationHandler) Submit(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SubmitApplicationRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	app, err := h.applicationService.Submit(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, app)
}

func (h *ApplicationHandler) Get(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	app, err := h.applicationService.Get(c.Request.Context(), c.Param("applicationId"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

func (h *ApplicationHandler) Accept(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	app, err := h.applicationService.Accept(c.Request.Context(), c.Param("applicationId"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

func (h *ApplicationHandler) Reject(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.RejectApplicationRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	app, err := h.applicationService.Reject(c.Request.Context(), c.Param("applicationId"), userID, req.Reason)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

func (h *ApplicationHandler) Withdraw(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	app, err := h.applicationService.Withdraw(c.Request.Context(), c.Param("applicationId"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

// ListMine returns the caller's applications: the ones they submitted for a
// worker, the ones on their jobs for a client.
func (h *ApplicationHandler) ListMine(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var query dto.ApplicationListQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}

	var (
		apps *dto.ApplicationListResponse
		err  error
	)
	if middleware.GetRole(c) == models.UserRoleClient {
		apps, err = h.applicationService.ListByClient(c.Request.Context(), userID, userID, query)
	} else {
		apps, err = h.applicationService.ListByWorker(c.Request.Context(), userID, userID, query)
	}
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, apps)
}

func (h *ApplicationHandler) ListByJob(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var query dto.ApplicationListQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}

	apps, err := h.applicationService.ListByJob(c.Request.Context(), c.Param("jobId"), userID, query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, apps)
}
