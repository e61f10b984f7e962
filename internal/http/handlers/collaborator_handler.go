package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/proposalgenie/backend/internal/dto"
	"github.com/proposalgenie/backend/internal/http/handlers/common"
	"github.com/proposalgenie/backend/internal/service"
)

// CollaboratorHandler предоставляет управление соавторами предложений.
// Уровни доступа хранятся, но на этом слое не интерпретируются.
type CollaboratorHandler struct {
	svc *service.ProposalService
}

func NewCollaboratorHandler(s *service.ProposalService) *CollaboratorHandler {
	return &CollaboratorHandler{svc: s}
}

// AddCollaborator POST /proposals/:id/collaborators
func (h *CollaboratorHandler) AddCollaborator(c *gin.Context) {
	proposalID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	var req dto.AddCollaboratorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	collaborator, err := h.svc.AddCollaborator(c.Request.Context(), proposalID, req.UserID, req.Permission)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, collaborator)
}

// ListCollaborators GET /proposals/:id/collaborators
func (h *CollaboratorHandler) ListCollaborators(c *gin.Context) {
	proposalID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	collaborators, err := h.svc.ListCollaborators(c.Request.Context(), proposalID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, collaborators)
}

// UpdateCollaborator PUT /collaborators/:id
func (h *CollaboratorHandler) UpdateCollaborator(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	var req dto.UpdateCollaboratorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	collaborator, err := h.svc.UpdateCollaboratorPermission(c.Request.Context(), id, req.Permission)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, collaborator)
}

// RemoveCollaborator DELETE /collaborators/:id
func (h *CollaboratorHandler) RemoveCollaborator(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.svc.RemoveCollaborator(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "соавтор удалён"})
}
