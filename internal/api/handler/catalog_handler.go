package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/YuvrajS01/Anon-Feedback-System/internal/dto"
	"github.com/YuvrajS01/Anon-Feedback-System/internal/service"
	"github.com/YuvrajS01/Anon-Feedback-System/pkg/response"
)

// CatalogHandler manages the combo catalog and its templates.
type CatalogHandler struct {
	catalogSvc service.CatalogService
}

// NewCatalogHandler creates a CatalogHandler.
func NewCatalogHandler(catalogSvc service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogSvc: catalogSvc}
}

// GetCatalog returns the current combos, period and questions.
// GET /api/v1/admin/catalog
func (h *CatalogHandler) GetCatalog(c *gin.Context) {
	result, err := h.catalogSvc.Get(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// UpdateCatalog replaces the combo list and/or academic period. Running
// sessions keep the combo count they started with.
// PUT /api/v1/admin/catalog
func (h *CatalogHandler) UpdateCatalog(c *gin.Context) {
	var req dto.UpdateCatalogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request parameters")
		return
	}
	if req.Combos == nil && req.Period == nil {
		response.BadRequest(c, 10001, "nothing to update")
		return
	}
	if req.Combos != nil && len(*req.Combos) == 0 {
		response.BadRequest(c, 14001, "combo list must not be empty")
		return
	}

	result, err := h.catalogSvc.Update(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// ListTemplates returns all named catalog presets.
// GET /api/v1/admin/templates
func (h *CatalogHandler) ListTemplates(c *gin.Context) {
	result, err := h.catalogSvc.Templates(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// SaveTemplate stores a named catalog preset.
// POST /api/v1/admin/templates
func (h *CatalogHandler) SaveTemplate(c *gin.Context) {
	var req dto.SaveTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request parameters")
		return
	}

	if err := h.catalogSvc.SaveTemplate(c.Request.Context(), &req); err != nil {
		response.InternalError(c)
		return
	}
	response.Created(c, nil)
}

// DeleteTemplate removes a named catalog preset.
// DELETE /api/v1/admin/templates/:name
func (h *CatalogHandler) DeleteTemplate(c *gin.Context) {
	if err := h.catalogSvc.DeleteTemplate(c.Request.Context(), c.Param("name")); err != nil {
		if errors.Is(err, service.ErrTemplateNotFound) {
			response.NotFound(c, 14002, "template not found")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// ApplyTemplate makes a preset the current catalog.
// POST /api/v1/admin/templates/:name/apply
func (h *CatalogHandler) ApplyTemplate(c *gin.Context) {
	result, err := h.catalogSvc.ApplyTemplate(c.Request.Context(), c.Param("name"))
	if err != nil {
		if errors.Is(err, service.ErrTemplateNotFound) {
			response.NotFound(c, 14002, "template not found")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}
