package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/studydash/internal/models"
	"github.com/noah-isme/studydash/internal/service"
	"github.com/noah-isme/studydash/pkg/response"
)

type moduleService interface {
	List(ctx context.Context) ([]models.Module, error)
	Get(ctx context.Context, id int64) (*models.Module, error)
	Create(ctx context.Context, req service.ModuleRequest) (*models.Module, error)
	Update(ctx context.Context, id int64, req service.ModuleRequest) (*models.Module, error)
	Delete(ctx context.Context, id int64) error
}

// ModuleHandler serves the module catalog.
type ModuleHandler struct {
	service moduleService
}

// NewModuleHandler constructs a module handler.
func NewModuleHandler(svc moduleService) *ModuleHandler {
	return &ModuleHandler{service: svc}
}

// List godoc
// @Summary List catalog modules
// @Tags Modules
// @Produce json
// @Success 200 {object} response.Envelope{data=[]models.Module}
// @Router /api/v1/modules [get]
func (h *ModuleHandler) List(c *gin.Context) {
	modules, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, modules)
}

// Get godoc
// @Summary Get module
// @Tags Modules
// @Produce json
// @Param id path int true "Module ID"
// @Success 200 {object} response.Envelope{data=models.Module}
// @Failure 404 {object} response.Envelope
// @Router /api/v1/modules/{id} [get]
func (h *ModuleHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	module, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, module)
}

// Create godoc
// @Summary Create module
// @Tags Modules
// @Accept json
// @Produce json
// @Param payload body service.ModuleRequest true "Module payload"
// @Success 201 {object} response.Envelope{data=models.Module}
// @Failure 409 {object} response.Envelope
// @Router /api/v1/modules [post]
func (h *ModuleHandler) Create(c *gin.Context) {
	var req service.ModuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}
	module, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, module)
}

// Update godoc
// @Summary Update module
// @Tags Modules
// @Accept json
// @Produce json
// @Param id path int true "Module ID"
// @Param payload body service.ModuleRequest true "Module payload"
// @Success 200 {object} response.Envelope{data=models.Module}
// @Router /api/v1/modules/{id} [put]
func (h *ModuleHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.ModuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}
	module, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, module)
}

// Delete godoc
// @Summary Delete module
// @Tags Modules
// @Param id path int true "Module ID"
// @Success 204
// @Failure 412 {object} response.Envelope
// @Router /api/v1/modules/{id} [delete]
func (h *ModuleHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
