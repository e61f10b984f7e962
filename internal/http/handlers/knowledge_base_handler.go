package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/proposalgenie/backend/internal/dto"
	"github.com/proposalgenie/backend/internal/http/handlers/common"
	"github.com/proposalgenie/backend/internal/service"
)

// KnowledgeBaseHandler предоставляет CRUD над записями базы знаний.
type KnowledgeBaseHandler struct {
	svc *service.KnowledgeBaseService
}

func NewKnowledgeBaseHandler(s *service.KnowledgeBaseService) *KnowledgeBaseHandler {
	return &KnowledgeBaseHandler{svc: s}
}

// CreateEntry POST /knowledge-base
func (h *KnowledgeBaseHandler) CreateEntry(c *gin.Context) {
	var req dto.KnowledgeBaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	entry, err := h.svc.Create(c.Request.Context(), service.KnowledgeBaseInput{
		Title:        req.Title,
		Content:      req.Content,
		Embeddings:   req.Embeddings,
		SuccessScore: req.SuccessScore,
		Metadata:     req.Metadata,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// ListEntries GET /knowledge-base
func (h *KnowledgeBaseHandler) ListEntries(c *gin.Context) {
	limit, offset := common.GetPagination(c)

	entries, err := h.svc.List(c.Request.Context(), limit, offset)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// GetEntry GET /knowledge-base/:id
func (h *KnowledgeBaseHandler) GetEntry(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	entry, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// UpdateEntry PUT /knowledge-base/:id
func (h *KnowledgeBaseHandler) UpdateEntry(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	var req dto.KnowledgeBaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	entry, err := h.svc.Update(c.Request.Context(), id, service.KnowledgeBaseInput{
		Title:        req.Title,
		Content:      req.Content,
		Embeddings:   req.Embeddings,
		SuccessScore: req.SuccessScore,
		Metadata:     req.Metadata,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// DeleteEntry DELETE /knowledge-base/:id
func (h *KnowledgeBaseHandler) DeleteEntry(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "запись удалена"})
}
