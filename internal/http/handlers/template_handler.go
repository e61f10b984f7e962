package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/proposalgenie/backend/internal/dto"
	"github.com/proposalgenie/backend/internal/http/handlers/common"
	"github.com/proposalgenie/backend/internal/service"
)

// TemplateHandler предоставляет CRUD над шаблонами предложений.
type TemplateHandler struct {
	svc *service.TemplateService
}

func NewTemplateHandler(s *service.TemplateService) *TemplateHandler {
	return &TemplateHandler{svc: s}
}

// CreateTemplate POST /templates
func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	var req dto.TemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	t, err := h.svc.Create(c.Request.Context(), req.Name, req.Content)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

// ListTemplates GET /templates
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	limit, offset := common.GetPagination(c)

	templates, err := h.svc.List(c.Request.Context(), limit, offset)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, templates)
}

// GetTemplate GET /templates/:id
func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	t, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// UpdateTemplate PUT /templates/:id
func (h *TemplateHandler) UpdateTemplate(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	var req dto.TemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	t, err := h.svc.Update(c.Request.Context(), id, req.Name, req.Content)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// DeleteTemplate DELETE /templates/:id
func (h *TemplateHandler) DeleteTemplate(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "шаблон удалён"})
}
