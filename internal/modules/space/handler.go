package space

import (
	"errors"
	"net/http"
	"strings"

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
	spaces := protected.Group("/espaces")
	{
		spaces.POST("", h.Create)
		spaces.GET("/projet/:projetId", h.ListByProject)
		spaces.GET("/:id", h.Get)
		spaces.PUT("/:id", h.Update)
		spaces.DELETE("/:id", h.Delete)
	}
}

// @Summary		Create a space
// @Description	details.curtains is used for CURTAIN projects, details.wallpapers for WALLPAPER projects. The other list is ignored.
// @Tags		Spaces
// @Security	BearerAuth
// @Param		request	body	CreateSpaceRequest	true	"project_id, name, details"
// @Success		201	{object}	map[string]interface{}
// @Failure		404	{object}	map[string]interface{}	"Project not found"
// @Router		/espaces [POST]
func (h *Handler) Create(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	var req CreateSpaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, validator.Fields(err))
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		response.ValidationError(c, map[string]string{"name": "is required"})
		return
	}
	details, ok := bindDetails(c, req.Details)
	if !ok {
		return
	}

	sp, err := h.service.Create(c.Request.Context(), caller, req.ProjectID, req.Name, details)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "PROJECT_NOT_FOUND", "Project not found")
			return
		}
		response.Internal(c, err)
		return
	}
	response.Message(c, http.StatusCreated, "Space created successfully", sp)
}

// @Summary		List the spaces of a project
// @Tags		Spaces
// @Security	BearerAuth
// @Router		/espaces/projet/{projetId} [GET]
func (h *Handler) ListByProject(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	projectID, ok := validator.PathID(c, "projetId")
	if !ok {
		response.ValidationError(c, map[string]string{"projetId": "must be a positive integer"})
		return
	}

	list, err := h.service.ListByProject(c.Request.Context(), caller, projectID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "PROJECT_NOT_FOUND", "Project not found")
			return
		}
		response.Internal(c, err)
		return
	}
	response.List(c, list, len(list))
}

// @Summary		Get a space with its details
// @Tags		Spaces
// @Security	BearerAuth
// @Router		/espaces/{id} [GET]
func (h *Handler) Get(c *gin.Context) {
	caller, id, ok := callerAndID(c)
	if !ok {
		return
	}

	sp, err := h.service.Get(c.Request.Context(), caller, id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, sp)
}

// @Summary		Update a space
// @Description	A supplied details list replaces all existing details of that kind; an empty list clears them.
// @Tags		Spaces
// @Security	BearerAuth
// @Param		request	body	UpdateSpaceRequest	true	"name, details"
// @Router		/espaces/{id} [PUT]
func (h *Handler) Update(c *gin.Context) {
	caller, id, ok := callerAndID(c)
	if !ok {
		return
	}

	var req UpdateSpaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, validator.Fields(err))
		return
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		response.ValidationError(c, map[string]string{"name": "must not be empty"})
		return
	}
	details, ok := bindDetails(c, req.Details)
	if !ok {
		return
	}

	sp, err := h.service.Update(c.Request.Context(), caller, id, req.Name, details)
	if err != nil {
		fail(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Space updated successfully", sp)
}

// @Summary		Delete a space
// @Tags		Spaces
// @Security	BearerAuth
// @Router		/espaces/{id} [DELETE]
func (h *Handler) Delete(c *gin.Context) {
	caller, id, ok := callerAndID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), caller, id); err != nil {
		fail(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Space deleted successfully", nil)
}

func bindDetails(c *gin.Context, raw []byte) (*domain.SpaceDetails, bool) {
	payload := decodeDetails(raw)
	if payload == nil {
		return nil, true
	}
	if fields := validator.Validate(payload); len(fields) > 0 {
		details := make(map[string]string, len(fields))
		for k, v := range fields {
			details["details."+k] = v
		}
		response.ValidationError(c, details)
		return nil, false
	}
	return payload.toDomain(), true
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
	if errors.Is(err, ErrNotFound) {
		response.Error(c, http.StatusNotFound, "SPACE_NOT_FOUND", "Space not found")
		return
	}
	response.Internal(c, err)
}
