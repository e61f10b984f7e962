package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/proposalgenie/backend/internal/dto"
	"github.com/proposalgenie/backend/internal/http/handlers/common"
	"github.com/proposalgenie/backend/internal/service"
)

// ProposalHandler предоставляет CRUD над предложениями.
type ProposalHandler struct {
	svc *service.ProposalService
}

func NewProposalHandler(s *service.ProposalService) *ProposalHandler {
	return &ProposalHandler{svc: s}
}

// CreateProposal POST /proposals
func (h *ProposalHandler) CreateProposal(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: err.Error()})
		return
	}

	var req dto.CreateProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	p, err := h.svc.Create(c.Request.Context(), userID, service.CreateProposalInput{
		Title:        req.Title,
		ClientName:   req.ClientName,
		Requirements: req.Requirements,
		TemplateID:   req.TemplateID,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// ListProposals GET /proposals
func (h *ProposalHandler) ListProposals(c *gin.Context) {
	limit, offset := common.GetPagination(c)

	proposals, err := h.svc.List(c.Request.Context(), limit, offset)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, proposals)
}

// GetProposal GET /proposals/:id — предложение вместе с разделами и соавторами.
func (h *ProposalHandler) GetProposal(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	p, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	sections, err := h.svc.ListSections(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	collaborators, err := h.svc.ListCollaborators(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.ProposalDetailResponse{
		Proposal:      p,
		Sections:      sections,
		Collaborators: collaborators,
	})
}

// UpdateProposal PUT /proposals/:id — полное обновление записи.
func (h *ProposalHandler) UpdateProposal(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	var req dto.UpdateProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	p, err := h.svc.Update(c.Request.Context(), id, service.UpdateProposalInput{
		Title:          req.Title,
		ClientName:     req.ClientName,
		Requirements:   req.Requirements,
		TemplateID:     req.TemplateID,
		WinProbability: req.WinProbability,
		Status:         req.Status,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// DeleteProposal DELETE /proposals/:id — разделы и соавторы удаляются каскадом.
func (h *ProposalHandler) DeleteProposal(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "предложение удалено"})
}
