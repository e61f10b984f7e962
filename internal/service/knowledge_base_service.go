package service

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/proposalgenie/backend/internal/models"
	"github.com/proposalgenie/backend/internal/pkg/apperror"
	"github.com/proposalgenie/backend/internal/repository"
	"github.com/proposalgenie/backend/internal/validation"
)

// KnowledgeBaseService реализует CRUD над записями базы знаний.
// Embeddings и metadata хранятся как есть: никакие вычисления над ними
// здесь не выполняются.
type KnowledgeBaseService struct {
	repo *repository.KnowledgeBaseRepository
}

// KnowledgeBaseInput данные записи базы знаний.
type KnowledgeBaseInput struct {
	Title        string
	Content      string
	Embeddings   []byte
	SuccessScore float64
	Metadata     json.RawMessage
}

func NewKnowledgeBaseService(r *repository.KnowledgeBaseRepository) *KnowledgeBaseService {
	return &KnowledgeBaseService{repo: r}
}

func (s *KnowledgeBaseService) Create(ctx context.Context, in KnowledgeBaseInput) (*models.KnowledgeBaseEntry, error) {
	if err := validation.ValidateEntryTitle(in.Title); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}

	entry := &models.KnowledgeBaseEntry{
		Title:        in.Title,
		Content:      in.Content,
		Embeddings:   in.Embeddings,
		SuccessScore: in.SuccessScore,
		Metadata:     orEmptyObject(in.Metadata),
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *KnowledgeBaseService) Get(ctx context.Context, id uuid.UUID) (*models.KnowledgeBaseEntry, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *KnowledgeBaseService) List(ctx context.Context, limit, offset int) ([]models.KnowledgeBaseEntry, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *KnowledgeBaseService) Update(ctx context.Context, id uuid.UUID, in KnowledgeBaseInput) (*models.KnowledgeBaseEntry, error) {
	if err := validation.ValidateEntryTitle(in.Title); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}

	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	entry.Title = in.Title
	entry.Content = in.Content
	entry.Embeddings = in.Embeddings
	entry.SuccessScore = in.SuccessScore
	entry.Metadata = orEmptyObject(in.Metadata)

	if err := s.repo.Update(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *KnowledgeBaseService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
