package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/proposalgenie/backend/internal/dto"
	"github.com/proposalgenie/backend/internal/http/handlers/common"
	"github.com/proposalgenie/backend/internal/service"
)

// SectionHandler предоставляет CRUD над разделами предложений.
type SectionHandler struct {
	svc *service.ProposalService
}

func NewSectionHandler(s *service.ProposalService) *SectionHandler {
	return &SectionHandler{svc: s}
}

// CreateSection POST /proposals/:id/sections
func (h *SectionHandler) CreateSection(c *gin.Context) {
	proposalID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	var req dto.SectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	section, err := h.svc.CreateSection(c.Request.Context(), proposalID, service.SectionInput{
		Title:           req.Title,
		Content:         req.Content,
		AIMetadata:      req.AIMetadata,
		ConfidenceScore: req.ConfidenceScore,
		Order:           req.Order,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, section)
}

// ListSections GET /proposals/:id/sections
func (h *SectionHandler) ListSections(c *gin.Context) {
	proposalID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	sections, err := h.svc.ListSections(c.Request.Context(), proposalID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, sections)
}

// UpdateSection PUT /sections/:id
func (h *SectionHandler) UpdateSection(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	var req dto.SectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	section, err := h.svc.UpdateSection(c.Request.Context(), id, service.SectionInput{
		Title:           req.Title,
		Content:         req.Content,
		AIMetadata:      req.AIMetadata,
		ConfidenceScore: req.ConfidenceScore,
		Order:           req.Order,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, section)
}

// DeleteSection DELETE /sections/:id
func (h *SectionHandler) DeleteSection(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.svc.DeleteSection(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "раздел удалён"})
}
