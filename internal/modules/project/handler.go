package project

import (
	"errors"
	"net/http"

	"curtaincrm/internal/domain"
	"curtaincrm/internal/middleware"
	"curtaincrm/internal/pkg/response"
	"curtaincrm/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	projects := protected.Group("/projets")
	{
		projects.GET("", h.List)
		projects.POST("", h.Create)
		projects.GET("/stats", h.Stats)
		projects.GET("/:id", h.Get)
		projects.PUT("/:id", h.Update)
		projects.DELETE("/:id", h.Delete)
	}
}

// @Summary		List projects
// @Tags		Projects
// @Security	BearerAuth
// @Param		project_type	query	string	false	"CURTAIN or WALLPAPER"
// @Param		city			query	string	false	"substring, case-insensitive"
// @Router		/projets [GET]
func (h *Handler) List(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.ValidationError(c, validator.Fields(err))
		return
	}

	projects, err := h.service.List(c.Request.Context(), caller, q)
	if err != nil {
		response.Internal(c, err)
		return
	}
	response.List(c, projects, len(projects))
}

// @Summary		Create a project
// @Tags		Projects
// @Security	BearerAuth
// @Param		request	body	CreateProjectRequest	true	"project fields"
// @Success		201	{object}	map[string]interface{}
// @Router		/projets [POST]
func (h *Handler) Create(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, validator.Fields(err))
		return
	}

	p, err := h.service.Create(c.Request.Context(), caller, req)
	if err != nil {
		response.Internal(c, err)
		return
	}
	response.Message(c, http.StatusCreated, "Project created successfully", p)
}

// @Summary		Project counts by type
// @Tags		Projects
// @Security	BearerAuth
// @Router		/projets/stats [GET]
func (h *Handler) Stats(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	stats, err := h.service.Stats(c.Request.Context(), caller)
	if err != nil {
		response.Internal(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}

// @Summary		Get a project with its spaces
// @Tags		Projects
// @Security	BearerAuth
// @Router		/projets/{id} [GET]
func (h *Handler) Get(c *gin.Context) {
	caller, id, ok := callerAndID(c)
	if !ok {
		return
	}

	p, err := h.service.Get(c.Request.Context(), caller, id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

// @Summary		Update a project
// @Tags		Projects
// @Security	BearerAuth
// @Param		request	body	UpdateProjectRequest	true	"fields to change"
// @Router		/projets/{id} [PUT]
func (h *Handler) Update(c *gin.Context) {
	caller, id, ok := callerAndID(c)
	if !ok {
		return
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, validator.Fields(err))
		return
	}

	p, err := h.service.Update(c.Request.Context(), caller, id, req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Project updated successfully", p)
}

// @Summary		Delete a project and its spaces
// @Tags		Projects
// @Security	BearerAuth
// @Router		/projets/{id} [DELETE]
func (h *Handler) Delete(c *gin.Context) {
	caller, id, ok := callerAndID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), caller, id); err != nil {
		fail(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Project deleted successfully", nil)
}

func callerOrAbort(c *gin.Context) (domain.Caller, bool) {
	caller, ok := middleware.CurrentCaller(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Authentication required")
	}
	return caller, ok
}

func callerAndID(c *gin.Context) (domain.Caller, int64, bool) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return caller, 0, false
	}
	id, ok := validator.PathID(c, "id")
	if !ok {
		response.ValidationError(c, map[string]string{"id": "must be a positive integer"})
		return caller, 0, false
	}
	return caller, id, true
}

func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "PROJECT_NOT_FOUND", "Project not found")
	case errors.Is(err, ErrNoFields):
		response.Error(c, http.StatusBadRequest, "NO_FIELDS", "No fields to update")
	case errors.Is(err, ErrProjectTypeLocked):
		response.Error(c, http.StatusBadRequest, "PROJECT_TYPE_LOCKED", "Project type cannot change once the project has spaces")
	default:
		response.Internal(c, err)
	}
}
